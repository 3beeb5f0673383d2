package dotenv

import (
	"reflect"
	"testing"
)

func TestAccumulatorZeroValueUsable(t *testing.T) {
	var a Accumulator
	if a.Seen("/x/.env") {
		t.Error("a fresh Accumulator should not have seen anything")
	}
	a.Mark("/x/.env")
	if !a.Seen("/x/.env") {
		t.Error("Mark should make Seen report true")
	}
}

func TestAccumulatorReset(t *testing.T) {
	var a Accumulator
	a.Mark("/x/.env")
	a.Reset()
	if a.Seen("/x/.env") {
		t.Error("Reset should forget everything previously marked")
	}
}

func TestAccumulatorLoadedSorted(t *testing.T) {
	var a Accumulator
	a.Mark("/b/.env")
	a.Mark("/a/.env")
	got := a.Loaded()
	want := []string{"/a/.env", "/b/.env"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Loaded() = %v, want %v", got, want)
	}
}
