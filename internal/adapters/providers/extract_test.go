package providers

import "testing"

func TestGetFloatCommaHandling(t *testing.T) {
	m := map[string]any{
		"thousands": "1,214",
		"decimal":   "8,5",
		"plain":     7.25,
		"nested":    map[string]any{"deep": "42"},
		"junk":      "n/a",
	}
	cases := []struct {
		path string
		want float64
		ok   bool
	}{
		{"thousands", 1214, true},
		{"decimal", 8.5, true},
		{"plain", 7.25, true},
		{"nested.deep", 42, true},
		{"junk", 0, false},
		{"absent", 0, false},
	}
	for _, tc := range cases {
		got, ok := getFloat(m, tc.path)
		if got != tc.want || ok != tc.ok {
			t.Errorf("getFloat(%q) = %v,%v want %v,%v", tc.path, got, ok, tc.want, tc.ok)
		}
	}
}

func TestFirstStrFallsThrough(t *testing.T) {
	m := map[string]any{"a": "  ", "b": map[string]any{"c": "hit"}}
	if got := firstStr(m, "a", "b.c", "d"); got != "hit" {
		t.Errorf("firstStr = %q", got)
	}
}

func TestAnyToStringNumericIDs(t *testing.T) {
	if got := anyToString(float64(12345)); got != "12345" {
		t.Errorf("whole float id = %q", got)
	}
	if got := anyToString("abc"); got != "abc" {
		t.Errorf("string id = %q", got)
	}
	if got := anyToString(nil); got != "" {
		t.Errorf("nil id = %q", got)
	}
}
