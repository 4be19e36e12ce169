package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrLLMRequired      = errors.New("LLM is required")
	ErrLLMCall          = errors.New("LLM call error occurred")
	ErrDuplicateTool    = errors.New("duplicate tool name")
	ErrTurnLimitReached = errors.New("turn limit reached")
)

// LLM is the model-invocation port. Given the full history and the agent's
// tool schemas it returns the model's decision for one turn. Provider
// failures are not recovered by the loop and propagate out of Run.
type LLM interface {
	Generate(ctx context.Context, history []Message, tools []SchemaDescriptor) (LLMResponse, error)
}

// Agent drives the think/act/observe loop: it asks the LLM for a decision,
// dispatches any requested tool calls through its registry, folds the
// results back into memory and repeats until the model answers with text
// only.
type Agent struct {
	name          string
	systemMessage string
	llm           LLM
	tools         map[string]Tool
	schemas       []SchemaDescriptor
	memory        *Memory
	maxTurns      int
	log           logrus.FieldLogger
}

type AgentOption func(*Agent) error

func NewAgent(options ...AgentOption) (*Agent, error) {
	agent := &Agent{
		tools: make(map[string]Tool),
		log:   logrus.StandardLogger(),
	}
	for _, opt := range options {
		if err := opt(agent); err != nil {
			return nil, err
		}
	}

	if agent.llm == nil {
		return nil, ErrLLMRequired
	}
	if agent.memory == nil {
		agent.memory = NewMemory()
	}

	return agent, nil
}

func WithName(name string) AgentOption {
	return func(a *Agent) error {
		a.name = name
		return nil
	}
}

// WithAgentSystemMessage records the agent's behavioral instruction. It is
// informational identity only; seeding it into memory stays the caller's
// responsibility.
func WithAgentSystemMessage(content string) AgentOption {
	return func(a *Agent) error {
		a.systemMessage = content
		return nil
	}
}

func WithLLM(llm LLM) AgentOption {
	return func(a *Agent) error {
		a.llm = llm
		return nil
	}
}

func WithMemory(memory *Memory) AgentOption {
	return func(a *Agent) error {
		a.memory = memory
		return nil
	}
}

// WithTool registers one tool. The registry and the schema list advertised
// to the LLM are fixed once construction finishes; registering the same
// name twice is a construction-time error.
func WithTool(tool Tool) AgentOption {
	return func(a *Agent) error {
		if _, exists := a.tools[tool.Name()]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateTool, tool.Name())
		}
		a.tools[tool.Name()] = tool
		a.schemas = append(a.schemas, tool.Schema())
		return nil
	}
}

func WithTools(tools ...Tool) AgentOption {
	return func(a *Agent) error {
		for _, tool := range tools {
			if err := WithTool(tool)(a); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithMaxTurns caps the number of think steps per Run. Zero means
// unbounded.
func WithMaxTurns(maxTurns int) AgentOption {
	return func(a *Agent) error {
		a.maxTurns = maxTurns
		return nil
	}
}

func WithLogger(log logrus.FieldLogger) AgentOption {
	return func(a *Agent) error {
		a.log = log
		return nil
	}
}

func (a *Agent) Name() string {
	return a.name
}

func (a *Agent) SystemMessage() string {
	return a.systemMessage
}

func (a *Agent) Memory() *Memory {
	return a.memory
}

// Run executes the loop until the model produces a text-only decision,
// which becomes the return value. An empty userInput continues from
// whatever the memory already holds, supporting multi-call conversations.
func (a *Agent) Run(ctx context.Context, userInput string) (string, error) {
	log := a.log.WithFields(logrus.Fields{
		"agent":  a.name,
		"run_id": uuid.NewString(),
	})

	if userInput != "" {
		a.memory.AddUserMessage(userInput)
	}

	for turn := 0; ; turn++ {
		if a.maxTurns > 0 && turn >= a.maxTurns {
			return "", fmt.Errorf("%w: %d", ErrTurnLimitReached, a.maxTurns)
		}

		response, err := a.llm.Generate(ctx, a.memory.Messages(), a.schemas)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrLLMCall, err)
		}

		// The decision is recorded before branching, so the transcript
		// reflects exactly what the model produced.
		a.memory.AddAssistantMessage(response)

		if response.IsTextOnly() {
			log.WithField("turns", turn+1).Debug("run finished")
			return response.Text, nil
		}

		calls := response.Calls()
		results := a.execute(ctx, log, calls)

		for i, call := range calls {
			toolCallID := call.ID
			if toolCallID == "" {
				toolCallID = call.Name
			}
			a.memory.AddToolMessage(results[i], toolCallID)
		}
	}
}

// execute runs the calls sequentially in request order. Results are
// index-aligned with the input; a failing call never stops the ones after
// it.
func (a *Agent) execute(ctx context.Context, log logrus.FieldLogger, calls []ToolCall) []ToolResult {
	results := make([]ToolResult, 0, len(calls))
	for _, call := range calls {
		result := a.executeCall(ctx, call)
		log.WithFields(logrus.Fields{
			"tool":    call.Name,
			"success": result.Success,
		}).Debug("tool call executed")
		results = append(results, result)
	}
	return results
}

// executeCall always returns a ToolResult, whatever the registry state or
// the tool does: lookup misses, validation failures, run errors and panics
// all become failed results so the loop keeps going.
func (a *Agent) executeCall(ctx context.Context, call ToolCall) (result ToolResult) {
	tool, ok := a.tools[call.Name]
	if !ok {
		return ToolResult{
			Success: false,
			Error:   fmt.Sprintf("tool '%s' is not available in the agent's tool list", call.Name),
		}
	}

	defer func() {
		if r := recover(); r != nil {
			result = ToolResult{
				Success: false,
				Error:   fmt.Sprintf("error executing tool '%s': %v", call.Name, r),
			}
		}
	}()

	if err := tool.ValidateArgs(call.Arguments); err != nil {
		return ToolResult{
			Success: false,
			Error:   fmt.Sprintf("error executing tool '%s': %s", call.Name, err),
		}
	}

	result, err := tool.Run(ctx, call.Arguments)
	if err != nil {
		return ToolResult{
			Success: false,
			Error:   fmt.Sprintf("error executing tool '%s': %s", call.Name, err),
		}
	}

	return result
}
