// Command envexpand is a standalone driver for pkg/expand: it expands a
// word supplied on the command line against the current process
// environment and prints the result.
package main

import (
	"os"
	"strings"

	"github.com/rcarmo/envara/pkg/core"
	"github.com/rcarmo/envara/pkg/expand"
)

func main() {
	stdio := core.DefaultStdio()
	os.Exit(run(stdio, os.Args[1:]))
}

func run(stdio *core.Stdio, args []string) int {
	if len(args) == 0 {
		return core.UsageError(stdio, "envexpand", "missing word to expand")
	}

	word := strings.Join(args, " ")
	vars := environMap()

	out, err := expand.Expand(word, expand.DefaultFlags|expand.AllowShell, expand.Options{Vars: vars})
	if err != nil {
		stdio.Errorf("envexpand: %v\n", err)
		return core.ExitFailure
	}
	stdio.Println(out)
	return core.ExitSuccess
}

func environMap() map[string]string {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return vars
}
