package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dgallion1/outliner/internal/outline"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func resultSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("outline.json", bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("load outline schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile("outline.json")
	})
	return compiledSchema, schemaErr
}

// Schema returns the raw JSON schema for outline results.
func Schema() []byte {
	return schemaJSON
}

// Validate checks that res serializes to a document matching the outline schema.
func Validate(res outline.Result) error {
	schema, err := resultSchema()
	if err != nil {
		return err
	}
	b, err := Marshal(res, FormatJSON)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("decode result for validation: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("result does not match schema: %w", err)
	}
	return nil
}
