package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/abdidvp/keyalign/internal/domain"
	"github.com/fatih/camelcase"
	"github.com/xeipuuv/gojsonschema"
)

const optionsSchema = `{
  "definitions": {
    "mode":  {"enum": ["strict", "minimum"]},
    "on":    {"enum": ["colon", "value"]},
    "width": {"oneOf": [{"type": "integer", "minimum": 0}, {"type": "boolean"}]},
    "alignObject": {
      "type": "object",
      "properties": {
        "on":          {"$ref": "#/definitions/on"},
        "mode":        {"$ref": "#/definitions/mode"},
        "beforeColon": {"$ref": "#/definitions/width"},
        "afterColon":  {"$ref": "#/definitions/width"}
      },
      "additionalProperties": false
    },
    "align": {"oneOf": [{"$ref": "#/definitions/on"}, {"$ref": "#/definitions/alignObject"}]},
    "rule": {
      "type": "object",
      "properties": {
        "align":       {"$ref": "#/definitions/align"},
        "mode":        {"$ref": "#/definitions/mode"},
        "beforeColon": {"$ref": "#/definitions/width"},
        "afterColon":  {"$ref": "#/definitions/width"}
      },
      "additionalProperties": false
    }
  },
  "oneOf": [
    {"$ref": "#/definitions/on"},
    {
      "type": "object",
      "properties": {
        "align":       {"$ref": "#/definitions/align"},
        "mode":        {"$ref": "#/definitions/mode"},
        "beforeColon": {"$ref": "#/definitions/width"},
        "afterColon":  {"$ref": "#/definitions/width"},
        "singleLine":  {"$ref": "#/definitions/rule"},
        "multiLine":   {"$ref": "#/definitions/rule"}
      },
      "additionalProperties": false
    }
  ]
}`

var schemaLoader = gojsonschema.NewStringLoader(optionsSchema)

// OptionsError lists every schema violation found in an options value.
type OptionsError struct {
	Problems []string
}

func (e *OptionsError) Error() string {
	return "options: " + strings.Join(e.Problems, "; ")
}

// DecodeOptions turns a generic options value, as produced by a YAML or JSON
// decoder, into RawOptions. Keys may be written in snake, kebab or camel
// case. A nil value yields the zero options.
func DecodeOptions(v any) (domain.RawOptions, error) {
	if v == nil {
		return domain.RawOptions{}, nil
	}
	data, err := json.Marshal(canonicalize(v))
	if err != nil {
		return domain.RawOptions{}, fmt.Errorf("encoding options: %w", err)
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return domain.RawOptions{}, fmt.Errorf("validating options: %w", err)
	}
	if !result.Valid() {
		oe := &OptionsError{}
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "(root)" || field == "" {
				field = "options"
			} else {
				field = "options." + field
			}
			oe.Problems = append(oe.Problems, fmt.Sprintf("%s: %s", field, desc.Description()))
		}
		return domain.RawOptions{}, oe
	}

	var raw domain.RawOptions
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.RawOptions{}, fmt.Errorf("decoding options: %w", err)
	}
	return raw, nil
}

// DecodeOptionsJSON decodes options given as JSON text. Empty text yields
// the zero options.
func DecodeOptionsJSON(text string) (domain.RawOptions, error) {
	if strings.TrimSpace(text) == "" {
		return domain.RawOptions{}, nil
	}
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return domain.RawOptions{}, fmt.Errorf("parsing options JSON: %w", err)
	}
	return DecodeOptions(v)
}

func canonicalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[canonicalKey(k)] = canonicalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[canonicalKey(fmt.Sprint(k))] = canonicalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = canonicalize(val)
		}
		return out
	default:
		return v
	}
}

// canonicalKey rewrites before_colon, before-colon and BeforeColon as
// beforeColon.
func canonicalKey(key string) string {
	var words []string
	for _, part := range strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' || unicode.IsSpace(r) }) {
		words = append(words, camelcase.Split(part)...)
	}
	var b strings.Builder
	for i, w := range words {
		w = strings.ToLower(w)
		if i > 0 && w != "" {
			w = strings.ToUpper(w[:1]) + w[1:]
		}
		b.WriteString(w)
	}
	return b.String()
}
