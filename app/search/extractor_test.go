package search

import (
	"strings"
	"testing"
)

func newTestExtractor() *Extractor {
	return NewExtractor(DefaultConfig().ProbeKeys)
}

func TestExtractorString(t *testing.T) {
	extractor := newTestExtractor()

	if got := extractor.Run("plain text"); got != "plain text" {
		t.Errorf("Expected string returned verbatim, got %q", got)
	}
}

func TestExtractorKnownKey(t *testing.T) {
	extractor := newTestExtractor()

	payload := map[string]interface{}{"content": "X"}
	if got := extractor.Run(payload); got != "X" {
		t.Errorf("Expected 'X', got %q", got)
	}
}

func TestExtractorKeyPriority(t *testing.T) {
	extractor := newTestExtractor()

	payload := map[string]interface{}{
		"content":         "lower priority",
		"website_content": "higher priority",
	}
	if got := extractor.Run(payload); got != "higher priority" {
		t.Errorf("Expected website_content to win, got %q", got)
	}
}

func TestExtractorSkipsEmptyKnownKey(t *testing.T) {
	extractor := newTestExtractor()

	payload := map[string]interface{}{
		"website_content": "",
		"content":         "fallback",
	}
	if got := extractor.Run(payload); got != "fallback" {
		t.Errorf("Expected empty known key to be skipped, got %q", got)
	}
}

func TestExtractorNestedKnownKey(t *testing.T) {
	extractor := newTestExtractor()

	payload := map[string]interface{}{
		"output": map[string]interface{}{
			"text": "nested value",
		},
	}
	if got := extractor.Run(payload); got != "nested value" {
		t.Errorf("Expected recursion into known key, got %q", got)
	}
}

func TestExtractorUnknownKeysConcatenated(t *testing.T) {
	extractor := newTestExtractor()

	payload := map[string]interface{}{
		"foo": "alpha",
		"bar": map[string]interface{}{"baz": "beta"},
	}
	got := extractor.Run(payload)
	if !strings.Contains(got, "alpha") || !strings.Contains(got, "beta") {
		t.Errorf("Expected concatenation of all values, got %q", got)
	}
}

func TestExtractorList(t *testing.T) {
	extractor := newTestExtractor()

	payload := []interface{}{"one", map[string]interface{}{"content": "two"}, "three"}
	if got := extractor.Run(payload); got != "one two three" {
		t.Errorf("Expected 'one two three', got %q", got)
	}
}

func TestExtractorScalars(t *testing.T) {
	extractor := newTestExtractor()

	tests := []struct {
		name  string
		input interface{}
		want  string
	}{
		{"nil", nil, ""},
		{"bool", true, "true"},
		{"integer", float64(42), "42"},
		{"float", 42.5, "42.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractor.Run(tt.input); got != tt.want {
				t.Errorf("Run(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractorNeverFails(t *testing.T) {
	extractor := newTestExtractor()

	inputs := []interface{}{
		nil,
		"",
		map[string]interface{}{},
		[]interface{}{},
		map[string]interface{}{"a": []interface{}{map[string]interface{}{"b": nil}}},
		[]interface{}{nil, float64(0), false, ""},
	}

	for _, input := range inputs {
		// must terminate and return a string for any shape
		_ = extractor.Run(input)
	}
}

func TestExtractorRunRaw(t *testing.T) {
	extractor := newTestExtractor()

	if got := extractor.RunRaw([]byte(`{"content": "from json"}`)); got != "from json" {
		t.Errorf("Expected 'from json', got %q", got)
	}

	if got := extractor.RunRaw([]byte("not json at all")); got != "not json at all" {
		t.Errorf("Expected invalid JSON treated as text, got %q", got)
	}

	if got := extractor.RunRaw(nil); got != "" {
		t.Errorf("Expected empty string for nil payload, got %q", got)
	}
}

func TestExtractorStatusPayloadSchemas(t *testing.T) {
	extractor := newTestExtractor()

	// the status payload has shipped with at least three shapes; all must
	// flatten to searchable text
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"outputs object", `{"state": "DONE", "outputs": {"website_content": "body text"}}`, "body text"},
		{"scraped_content", `{"scraped_content": "body text"}`, "body text"},
		{"generic data", `{"data": "body text"}`, "body text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractor.RunRaw([]byte(tt.payload))
			if !strings.Contains(got, tt.want) {
				t.Errorf("Expected flattened text to contain %q, got %q", tt.want, got)
			}
		})
	}
}
