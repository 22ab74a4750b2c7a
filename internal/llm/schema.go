package llm

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildWorkItemJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. It is sent to the model as an output constraint and used
// locally to validate the answer.
func BuildWorkItemJSONSchema() map[string]any {
	props := map[string]any{
		"progressiveNumber": map[string]any{"type": "integer", "minimum": 1, "maximum": 100},
		"referenceCode":     nullableProp("string"),
		"description":       nullableProp("string"),
		"quantity":          nullableProp("number"),
		"unitPrice":         nullableProp("number"),
		"unitOfMeasurement": nullableProp("string"),
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             []string{"progressiveNumber"},
	}
}

// nullableProp allows the model to answer null for a missing field instead of
// omitting it.
func nullableProp(typ string) map[string]any {
	return map[string]any{"type": []string{typ, "null"}}
}

// ValidateJSONAgainstSchema checks data against a schema expressed as a
// generic map.
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return errors.Wrap(err, "marshal schema")
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return errors.Wrap(err, "add schema")
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return errors.Wrap(err, "compile schema")
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.Wrap(err, "unmarshal data")
	}
	if err := schema.Validate(v); err != nil {
		return errors.Wrap(err, "json does not match schema")
	}
	return nil
}
