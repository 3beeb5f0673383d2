package main

import (
	"strings"
	"testing"

	"github.com/rcarmo/envara/pkg/core"
	"github.com/rcarmo/envara/pkg/testutil"
)

func TestRunMissingWord(t *testing.T) {
	stdio, _, _ := testutil.CaptureStdio("")
	if code := run(stdio, nil); code != core.ExitUsage {
		t.Errorf("run(nil) = %d, want ExitUsage", code)
	}
}

func TestRunExpandsAgainstProcessEnvironment(t *testing.T) {
	t.Setenv("ENVEXPAND_TEST_VAR", "hello")
	stdio, out, _ := testutil.CaptureStdio("")
	if code := run(stdio, []string{"$ENVEXPAND_TEST_VAR world"}); code != core.ExitSuccess {
		t.Fatalf("run() = %d, want ExitSuccess", code)
	}
	if got := strings.TrimSpace(out.String()); got != "hello world" {
		t.Errorf("output = %q, want %q", got, "hello world")
	}
}

func TestRunReportsExpansionError(t *testing.T) {
	stdio, _, errBuf := testutil.CaptureStdio("")
	code := run(stdio, []string{"${MISSING:?required}"})
	if code != core.ExitFailure {
		t.Errorf("run() = %d, want ExitFailure", code)
	}
	if errBuf.Len() == 0 {
		t.Error("run() should write the expansion error to stderr")
	}
}
