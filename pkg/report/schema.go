package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// SchemaID is the $id of the report schema.
const SchemaID = "https://github.com/justyntemme/vst3info/schemas/report.schema.json"

var (
	compileOnce sync.Once
	compiled    *jschema.Schema
	compileErr  error
)

// GenerateSchema generates a JSON Schema from the Report struct.
func GenerateSchema() ([]byte, error) {
	r := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := r.Reflect(&Report{})

	schema.ID = jsonschema.ID(SchemaID)
	schema.Title = "VST3 plugin report"
	schema.Description = "Metadata extracted from one VST3 plugin binary"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// Validate checks JSON report data against the schema.
func Validate(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("report data is empty")
	}

	doc, err := jschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compiledSchema() (*jschema.Schema, error) {
	compileOnce.Do(func() {
		var schemaBytes []byte
		schemaBytes, compileErr = GenerateSchema()
		if compileErr != nil {
			return
		}

		var schemaDoc any
		schemaDoc, compileErr = jschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if compileErr != nil {
			return
		}

		c := jschema.NewCompiler()
		if compileErr = c.AddResource("report.schema.json", schemaDoc); compileErr != nil {
			return
		}
		compiled, compileErr = c.Compile("report.schema.json")
	})
	return compiled, compileErr
}
