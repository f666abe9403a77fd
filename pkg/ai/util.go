package ai

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/kaptinlin/jsonrepair"
)

// GenerateSchema creates a JSON Schema from the given Go type, suitable for
// structured-output requests.
func GenerateSchema(value any) any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	t := reflect.TypeOf(value)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	v := reflect.New(t).Interface()
	return reflector.Reflect(v)
}

// StripCodeFence removes a surrounding markdown code fence, with or without a
// language tag, from model output.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx != -1 {
		// drop a language tag like "json" on the fence line
		first := strings.TrimSpace(s[:idx])
		if len(first) <= 10 && !strings.ContainsAny(first, "{}[]") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// UnmarshalFlexible attempts to unmarshal JSON into the target with fallback
// strategies: standard unmarshaling, code-fence stripping, double-encoded
// strings, and finally jsonrepair for malformed output.
//
// This is for parsing AI-generated JSON, which may be wrapped or malformed.
func UnmarshalFlexible(input string, out any) error {
	input = StripCodeFence(input)

	if err := json.Unmarshal([]byte(input), out); err == nil {
		return nil
	}

	var asString string
	if err := json.Unmarshal([]byte(input), &asString); err == nil {
		asString = strings.TrimSpace(asString)
		if err := json.Unmarshal([]byte(asString), out); err == nil {
			return nil
		}
		input = asString
	}

	repaired, err := jsonrepair.JSONRepair(input)
	if err != nil {
		return fmt.Errorf("json repair failed: %w (input: %s)", err, input)
	}

	if err := json.Unmarshal([]byte(repaired), out); err != nil {
		return fmt.Errorf("failed to parse repaired json: %w", err)
	}
	return nil
}
