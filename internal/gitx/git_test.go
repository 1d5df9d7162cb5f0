package gitx

import (
	"reflect"
	"testing"
)

func TestParseNameStatus(t *testing.T) {
	out := "M\tinternal/app/run.go\n" +
		"A\tinternal/fallback/fallback.go\n" +
		"D\told/thing.go\n" +
		"R100\tcmd/old/main.go\tcmd/new/main.go\n" +
		"\n" +
		"garbage-without-path\n"

	got := parseNameStatus(out)
	want := []ChangeStat{
		{Path: "internal/app/run.go", Status: "M"},
		{Path: "internal/fallback/fallback.go", Status: "A"},
		{Path: "old/thing.go", Status: "D"},
		{Path: "cmd/new/main.go", Status: "R"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseNameStatus = %v, want %v", got, want)
	}
}

func TestSplitNonEmptyLines(t *testing.T) {
	got := splitNonEmptyLines("a\r\n\r\n  b  \nc\n\n")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitNonEmptyLines = %v, want %v", got, want)
	}
}
