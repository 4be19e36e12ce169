package tools

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"agentsdk/internal/agent/agent"
)

type AskUserArgs struct {
	Question string `json:"question" jsonschema:"description=The question to ask the user"`
}

// InputFunc prompts the user and returns their answer. Injectable so GUIs
// and tests can supply their own.
type InputFunc func(prompt string) (string, error)

// AskUserTool lets the agent ask the user a question mid-run and feed the
// answer back to the model.
type AskUserTool struct {
	agent.ToolDef
	input InputFunc
}

// NewAskUserTool builds the tool. A nil input falls back to reading one
// line from stdin.
func NewAskUserTool(input InputFunc) (*AskUserTool, error) {
	def, err := agent.NewToolDef(
		"ask_user",
		"Ask the user a question and get their response. Use this when you need clarification, additional information, or user decisions.",
		&AskUserArgs{},
	)
	if err != nil {
		return nil, err
	}

	if input == nil {
		input = stdinInput
	}

	return &AskUserTool{
		ToolDef: def,
		input:   input,
	}, nil
}

func (t *AskUserTool) Run(ctx context.Context, args map[string]any) (agent.ToolResult, error) {
	var parsed AskUserArgs
	if err := decodeArgs(args, &parsed); err != nil {
		return agent.ToolResult{}, err
	}

	answer, err := t.input(fmt.Sprintf("\n%s\nYour answer: ", parsed.Question))
	if err != nil {
		return failure("error getting user input: %s", err), nil
	}

	return success(answer), nil
}

func stdinInput(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
