package search

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Extractor flattens the opaque extraction payload into a single text string
// suitable for keyword search. It is total over arbitrary JSON: it never
// fails and always returns a string, possibly empty.
type Extractor struct {
	probeKeys []string
}

func NewExtractor(probeKeys []string) *Extractor {
	return &Extractor{probeKeys: probeKeys}
}

// RunRaw decodes a stored payload and flattens it. Payloads that are not
// valid JSON are treated as plain text.
func (e *Extractor) RunRaw(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return string(raw)
	}
	return e.Run(value)
}

// Run flattens a decoded JSON value. Mappings are probed for known content
// keys in priority order before falling back to concatenating everything.
func (e *Extractor) Run(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]interface{}:
		for _, key := range e.probeKeys {
			if inner, ok := v[key]; ok && nonEmpty(inner) {
				return e.Run(inner)
			}
		}

		// No known content key; concatenate every value. Keys are sorted so
		// the result is deterministic.
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		var parts []string
		for _, key := range keys {
			switch inner := v[key].(type) {
			case string:
				if inner != "" {
					parts = append(parts, inner)
				}
			case map[string]interface{}, []interface{}:
				if text := e.Run(inner); text != "" {
					parts = append(parts, text)
				}
			}
		}
		return strings.Join(parts, " ")
	case []interface{}:
		var parts []string
		for _, item := range v {
			if text := e.Run(item); text != "" {
				parts = append(parts, text)
			}
		}
		return strings.Join(parts, " ")
	case float64:
		return formatNumber(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func nonEmpty(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case map[string]interface{}:
		return len(v) > 0
	case []interface{}:
		return len(v) > 0
	case bool:
		return v
	case float64:
		return v != 0
	default:
		return true
	}
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
