package security

import (
	"reflect"
	"testing"
)

func TestCleanStringStripsScriptBlocks(t *testing.T) {
	got := CleanString("<script>alert(1)</script>Hello")
	if got != "Hello" {
		t.Fatalf("got %q, want %q", got, "Hello")
	}
}

func TestCleanStringStripsSchemesAndHandlers(t *testing.T) {
	cases := map[string]string{
		"javascript:alert(1)":          "alert(1)",
		`<img onerror=alert(1) src=x>`: "<img alert(1) src=x>",
		"  padded  ":                   "padded",
		"plain text":                   "plain text",
	}
	for in, want := range cases {
		if got := CleanString(in); got != want {
			t.Fatalf("CleanString(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCleanStringIdempotent(t *testing.T) {
	inputs := []string{
		"<script>alert(1)</script>Hello",
		"<scr<script></script>ipt>alert(1)</script>",
		"javasjavascript:cript:alert(1)",
		"plain",
	}
	for _, in := range inputs {
		once := CleanString(in)
		twice := CleanString(once)
		if once != twice {
			t.Fatalf("CleanString not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestCleanValueWalksNestedStructures(t *testing.T) {
	in := map[string]any{
		"name": "<script>x</script>Sahara Star",
		"tags": []any{"javascript:run", "clean"},
		"nested": map[string]any{
			"note": "ok",
		},
	}
	got := CleanValue(in).(map[string]any)
	if got["name"] != "Sahara Star" {
		t.Fatalf("name = %q", got["name"])
	}
	tags := got["tags"].([]any)
	if tags[0] != "run" || tags[1] != "clean" {
		t.Fatalf("tags = %v", tags)
	}
}

func TestCleanFormCleansEveryValue(t *testing.T) {
	form := map[string][]string{
		"name": {"<script>a</script>Bold Emir", "plain"},
	}
	got := CleanForm(form)
	want := map[string][]string{
		"name": {"Bold Emir", "plain"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
