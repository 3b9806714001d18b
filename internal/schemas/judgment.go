// Package schemas provides JSON Schema validation for structured LLM payloads.
package schemas

import (
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// judgmentSchema describes the strict-JSON judgment payload the scoring prompt
// asks the model to return. Keys are optional (the parser applies defaults),
// but present keys must carry the right types.
const judgmentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "score": {"type": "number"},
    "justification": {"type": "string"}
  }
}`

var (
	judgmentSchemaOnce     sync.Once
	judgmentSchemaCompiled *gojsonschema.Schema
	judgmentSchemaErr      error
)

// ValidateJudgment checks a candidate JSON document against the judgment
// schema. It returns an error when the document is not valid JSON, is not an
// object, or carries wrongly-typed score/justification fields.
func ValidateJudgment(document string) error {
	judgmentSchemaOnce.Do(func() {
		loader := gojsonschema.NewStringLoader(judgmentSchema)
		judgmentSchemaCompiled, judgmentSchemaErr = gojsonschema.NewSchema(loader)
	})
	if judgmentSchemaErr != nil {
		return fmt.Errorf("failed to compile judgment schema: %w", judgmentSchemaErr)
	}

	result, err := judgmentSchemaCompiled.Validate(gojsonschema.NewStringLoader(document))
	if err != nil {
		return fmt.Errorf("judgment payload is not valid JSON: %w", err)
	}

	if !result.Valid() {
		messages := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			messages = append(messages, desc.String())
		}
		return fmt.Errorf("judgment payload failed schema validation: %v", messages)
	}

	return nil
}
