package contract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/huangsam/ladder/schema"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// inputSchemaResource is the resource name the compiled schema is registered under.
const inputSchemaResource = "input.schema.json"

// CompileInputSchema loads a JSON Schema from a JSON or YAML file.
// Every input must satisfy it before it is scored.
func CompileInputSchema(path string) (*jsonschema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input schema %s: %w", path, err)
	}
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse input schema %s: %w", path, err)
	}
	doc, err := toJSONValue(normalize(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to convert input schema %s: %w", path, err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(inputSchemaResource, doc); err != nil {
		return nil, fmt.Errorf("failed to add input schema resource: %w", err)
	}
	sch, err := compiler.Compile(inputSchemaResource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile input schema %s: %w", path, err)
	}
	return sch, nil
}

// ValidateInput checks input against sch. A nil schema accepts everything.
func ValidateInput(sch *jsonschema.Schema, input schema.ComplexityInput) error {
	if sch == nil {
		return nil
	}
	doc, err := toJSONValue(map[string]any(input))
	if err != nil {
		return fmt.Errorf("input is not representable as JSON: %w", schema.ErrInvalidArgument)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("input does not match schema: %v: %w", err, schema.ErrInvalidArgument)
	}
	return nil
}

// toJSONValue round-trips v through encoding/json so numbers arrive as
// json.Number, the form the validator expects.
func toJSONValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(data))
}
