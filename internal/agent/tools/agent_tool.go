package tools

import (
	"context"
	"fmt"

	"agentsdk/internal/agent/agent"
)

type AgentToolArgs struct {
	Query string `json:"query" jsonschema:"description=Message to forward to the agent"`
}

// Runner is the slice of the agent surface the delegate tool needs.
type Runner interface {
	Run(ctx context.Context, input string) (string, error)
}

// AgentTool exposes a nested agent as a callable tool, so a coordinator
// agent can delegate tasks to a specialist. The nested agent owns its own
// memory; the two histories never mix. The outer loop blocks for the
// entire nested run.
type AgentTool struct {
	agent.ToolDef
	runner Runner
}

func NewAgentTool(runner Runner, name string, description string) (*AgentTool, error) {
	if description == "" {
		description = fmt.Sprintf("Calls agent: %s", name)
	}

	def, err := agent.NewToolDef(name, description, &AgentToolArgs{})
	if err != nil {
		return nil, err
	}

	return &AgentTool{
		ToolDef: def,
		runner:  runner,
	}, nil
}

func (t *AgentTool) Run(ctx context.Context, args map[string]any) (agent.ToolResult, error) {
	var parsed AgentToolArgs
	if err := decodeArgs(args, &parsed); err != nil {
		return agent.ToolResult{}, err
	}

	output, err := t.runner.Run(ctx, parsed.Query)
	if err != nil {
		return failure("agent execution failed: %s", err), nil
	}

	return success(output), nil
}
