package jsonx

import (
	"encoding/json"
	"reflect"
	"testing"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("decode %q: %v", s, err)
	}
	return v
}

func TestAsRecord(t *testing.T) {
	if got := AsRecord(decode(t, `{"a":1}`)); got == nil {
		t.Fatal("AsRecord(object) = nil")
	}
	for name, v := range map[string]any{
		"nil":    nil,
		"array":  decode(t, `[1,2]`),
		"string": "x",
		"number": 3.0,
	} {
		if got := AsRecord(v); got != nil {
			t.Errorf("AsRecord(%s) = %v, want nil", name, got)
		}
	}
	// Reading from the nil result must not panic.
	if got := AsString(AsRecord(nil)["missing"]); got != "" {
		t.Errorf("read from nil record = %q, want empty", got)
	}
}

func TestAsArray(t *testing.T) {
	if got := AsArray(decode(t, `[1,2,3]`)); len(got) != 3 {
		t.Fatalf("AsArray(array) len = %d, want 3", len(got))
	}
	if got := AsArray(decode(t, `{"a":1}`)); got != nil {
		t.Errorf("AsArray(object) = %v, want nil", got)
	}
	if got := AsArray(nil); got != nil {
		t.Errorf("AsArray(nil) = %v, want nil", got)
	}
}

func TestAsString(t *testing.T) {
	if got := AsString("hello"); got != "hello" {
		t.Errorf("AsString(string) = %q", got)
	}
	if got := AsString(5.0); got != "" {
		t.Errorf("AsString(number) = %q, want empty", got)
	}
	if got := AsString(nil); got != "" {
		t.Errorf("AsString(nil) = %q, want empty", got)
	}
}

func TestAsStringRecord(t *testing.T) {
	got := AsStringRecord(decode(t, `{"a":"x","b":"","c":3,"d":"y"}`))
	want := map[string]string{"a": "x", "d": "y"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AsStringRecord = %v, want %v", got, want)
	}
	if got := AsStringRecord(decode(t, `[1]`)); got != nil {
		t.Errorf("AsStringRecord(array) = %v, want nil", got)
	}
}
