package bank

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// bankSchema describes an importable question file: a JSON array of
// question records, each requiring at least question text. Grouping
// wrappers (a record carrying a "questions" array) are allowed one level
// deep, matching what flatten accepts.
var bankSchema = map[string]any{
	"type":  "array",
	"items": map[string]any{"$ref": "#/$defs/record"},
	"$defs": map[string]any{
		"question": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{
					"type":      "string",
					"minLength": 1,
				},
				"options": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
				"answer":      map[string]any{},
				"explanation": map[string]any{"type": "string"},
				"subject":     map[string]any{"type": "string"},
				"level":       map[string]any{"type": "string"},
				"image":       map[string]any{"type": "string"},
			},
			"required": []any{"question"},
		},
		"record": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string"},
				"subject":  map[string]any{"type": "string"},
				"level":    map[string]any{"type": "string"},
				"questions": map[string]any{
					"type":  "array",
					"items": map[string]any{"$ref": "#/$defs/question"},
				},
			},
			"anyOf": []any{
				map[string]any{"required": []any{"question"}},
				map[string]any{"required": []any{"questions"}},
			},
		},
	},
}

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

// DecodeImport validates raw against the bank schema and decodes it into
// entries. Validation runs before decoding so a bad file is rejected with
// a schema error instead of half-parsing.
func DecodeImport(raw []byte) ([]entry, error) {
	schema, err := getCompiledSchema()
	if err != nil {
		return nil, err
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("import file is not valid JSON: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("import file failed validation: %w", err)
	}

	var entries []entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode import file: %w", err)
	}
	return entries, nil
}

func getCompiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		defBytes, err := json.Marshal(bankSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal bank schema: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://question-bank.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}
