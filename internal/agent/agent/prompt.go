package agent

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Prompt is a reusable text/template wrapper for building system messages.
type Prompt struct {
	Template string `json:"template"`
}

func NewPrompt(template string) Prompt {
	return Prompt{
		Template: template,
	}
}

func (p Prompt) Render(args map[string]any) (string, error) {
	tmpl, err := template.New("prompt").Parse(p.Template)
	if err != nil {
		return "", fmt.Errorf("failed to parse prompt template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, args); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return buf.String(), nil
}

// RenderSystemMessage fills a prompt template with the agent's tool
// inventory, one "name: description" line per registered tool in schema
// order, under the key "tools".
func (p Prompt) RenderSystemMessage(schemas []SchemaDescriptor, args map[string]any) (string, error) {
	lines := make([]string, 0, len(schemas))
	for _, schema := range schemas {
		lines = append(lines, fmt.Sprintf("- %s: %s", schema.Name, schema.Description))
	}

	merged := make(map[string]any, len(args)+1)
	for k, v := range args {
		merged[k] = v
	}
	merged["tools"] = strings.Join(lines, "\n")

	return p.Render(merged)
}
