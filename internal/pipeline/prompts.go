package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	_ "embed"

	"github.com/spigell/resume-evaluator/internal/schema"
)

//go:embed prompts/profile.md
var profilePromptTemplate string

//go:embed prompts/job_description.md
var jobPromptTemplate string

//go:embed prompts/evaluation.md
var evaluationPromptTemplate string

// systemPrompt renders a prompt template with the JSON schema of the expected
// record kind, so the model knows the exact response contract.
func systemPrompt(template string, kind schema.Kind) (string, error) {
	raw, err := schema.JSONSchema(kind)
	if err != nil {
		return "", err
	}

	schemaJSON, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal %s schema: %w", kind, err)
	}

	return strings.ReplaceAll(template, "{{SCHEMA_JSON}}", string(schemaJSON)), nil
}

// extractJSON strips markdown code fences some models wrap around their
// responses even when asked for plain JSON.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
