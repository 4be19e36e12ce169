package agent_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"agentsdk/internal/agent/agent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedLLM replays a fixed sequence of responses and records the
// history it was called with on every turn.
type scriptedLLM struct {
	responses []agent.LLMResponse
	err       error
	calls     int
	histories [][]agent.Message
	schemas   [][]agent.SchemaDescriptor
}

func (s *scriptedLLM) Generate(_ context.Context, history []agent.Message, tools []agent.SchemaDescriptor) (agent.LLMResponse, error) {
	snapshot := make([]agent.Message, len(history))
	copy(snapshot, history)
	s.histories = append(s.histories, snapshot)
	s.schemas = append(s.schemas, tools)

	if s.err != nil {
		return agent.LLMResponse{}, s.err
	}
	if s.calls >= len(s.responses) {
		return agent.LLMResponse{}, fmt.Errorf("script exhausted at step %d", s.calls+1)
	}
	response := s.responses[s.calls]
	s.calls++
	return response, nil
}

type stubTool struct {
	name        string
	validateErr error
	run         func(ctx context.Context, args map[string]any) (agent.ToolResult, error)
}

func (t stubTool) Name() string        { return t.name }
func (t stubTool) Description() string { return "stub tool" }

func (t stubTool) Schema() agent.SchemaDescriptor {
	return agent.SchemaDescriptor{
		Name:        t.name,
		Description: "stub tool",
		Parameters:  map[string]any{"type": "object"},
	}
}

func (t stubTool) ValidateArgs(args map[string]any) error { return t.validateErr }

func (t stubTool) Run(ctx context.Context, args map[string]any) (agent.ToolResult, error) {
	return t.run(ctx, args)
}

func okTool(name string, result string) stubTool {
	return stubTool{
		name: name,
		run: func(_ context.Context, _ map[string]any) (agent.ToolResult, error) {
			return agent.ToolResult{Success: true, Result: result}, nil
		},
	}
}

func TestRunTextOnly(t *testing.T) {
	// given
	llm := &scriptedLLM{responses: []agent.LLMResponse{{Text: "Hello"}}}
	a, err := agent.NewAgent(agent.WithLLM(llm))
	require.NoError(t, err)

	// when
	answer, err := a.Run(context.Background(), "hi")

	// then
	require.NoError(t, err)
	assert.Equal(t, "Hello", answer)
	assert.Equal(t, 1, llm.calls, "should finish after exactly one think step")

	messages := a.Memory().Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, agent.RoleUser, messages[0].Role())
	assert.Equal(t, agent.RoleAssistant, messages[1].Role())
}

func TestRunToolCallThenText(t *testing.T) {
	// given
	call := agent.NewToolCall("call_1", "write_file", map[string]any{"file_path": "a.txt", "content": "hi"})
	llm := &scriptedLLM{responses: []agent.LLMResponse{
		{ToolCalls: []agent.ToolCall{call}},
		{Text: "Done"},
	}}
	a, err := agent.NewAgent(
		agent.WithLLM(llm),
		agent.WithTool(okTool("write_file", "File written to 'a.txt'.")),
	)
	require.NoError(t, err)

	// when
	answer, err := a.Run(context.Background(), "write a.txt")

	// then
	require.NoError(t, err)
	assert.Equal(t, "Done", answer)

	messages := a.Memory().Messages()
	require.Len(t, messages, 4)
	assert.Equal(t, agent.RoleUser, messages[0].Role())
	assert.Equal(t, agent.RoleAssistant, messages[1].Role())
	assert.Equal(t, agent.RoleTool, messages[2].Role())
	assert.Equal(t, agent.RoleAssistant, messages[3].Role())

	toolMessage := messages[2].(agent.ToolMessage)
	assert.Equal(t, "call_1", toolMessage.ToolCallID)
	assert.True(t, toolMessage.Result.Success)

	// the assistant turn keeps the full decision, tool calls included
	aiMessage := messages[1].(agent.AIMessage)
	require.Len(t, aiMessage.Response.Calls(), 1)
	assert.Equal(t, "write_file", aiMessage.Response.Calls()[0].Name)
}

func TestToolCallIDFallsBackToName(t *testing.T) {
	// given
	llm := &scriptedLLM{responses: []agent.LLMResponse{
		{ToolCalls: []agent.ToolCall{agent.NewToolCall("", "read_file", map[string]any{"file_path": "a.txt"})}},
		{Text: "Done"},
	}}
	a, err := agent.NewAgent(
		agent.WithLLM(llm),
		agent.WithTool(okTool("read_file", "contents")),
	)
	require.NoError(t, err)

	// when
	_, err = a.Run(context.Background(), "read a.txt")

	// then
	require.NoError(t, err)
	toolMessage := a.Memory().Messages()[2].(agent.ToolMessage)
	assert.Equal(t, "read_file", toolMessage.ToolCallID)
}

func TestUnknownToolBecomesFailedResult(t *testing.T) {
	// given
	llm := &scriptedLLM{responses: []agent.LLMResponse{
		{ToolCalls: []agent.ToolCall{agent.NewToolCall("call_1", "nonexistent", map[string]any{})}},
		{Text: "Done"},
	}}
	a, err := agent.NewAgent(agent.WithLLM(llm))
	require.NoError(t, err)

	// when
	answer, err := a.Run(context.Background(), "do something")

	// then
	require.NoError(t, err, "unknown tool must not abort the loop")
	assert.Equal(t, "Done", answer)

	toolMessage := a.Memory().Messages()[2].(agent.ToolMessage)
	assert.False(t, toolMessage.Result.Success)
	assert.Contains(t, toolMessage.Result.Error, "nonexistent")
}

func TestPanickingToolDoesNotAbortBatch(t *testing.T) {
	// given
	panicking := stubTool{
		name: "explode",
		run: func(_ context.Context, _ map[string]any) (agent.ToolResult, error) {
			panic("boom")
		},
	}
	llm := &scriptedLLM{responses: []agent.LLMResponse{
		{ToolCalls: []agent.ToolCall{
			agent.NewToolCall("call_1", "explode", map[string]any{}),
			agent.NewToolCall("call_2", "steady", map[string]any{}),
		}},
		{Text: "Done"},
	}}
	a, err := agent.NewAgent(
		agent.WithLLM(llm),
		agent.WithTools(panicking, okTool("steady", "still here")),
	)
	require.NoError(t, err)

	// when
	answer, err := a.Run(context.Background(), "go")

	// then
	require.NoError(t, err)
	assert.Equal(t, "Done", answer)

	messages := a.Memory().Messages()
	require.Len(t, messages, 5)

	first := messages[2].(agent.ToolMessage)
	assert.False(t, first.Result.Success)
	assert.Contains(t, first.Result.Error, "error executing tool 'explode'")
	assert.Contains(t, first.Result.Error, "boom")

	second := messages[3].(agent.ToolMessage)
	assert.True(t, second.Result.Success, "calls after a failing one must still execute")
	assert.Equal(t, "still here", second.Result.Result)
}

func TestToolErrorBecomesFailedResult(t *testing.T) {
	// given
	failing := stubTool{
		name: "flaky",
		run: func(_ context.Context, _ map[string]any) (agent.ToolResult, error) {
			return agent.ToolResult{}, errors.New("disk on fire")
		},
	}
	llm := &scriptedLLM{responses: []agent.LLMResponse{
		{ToolCalls: []agent.ToolCall{agent.NewToolCall("call_1", "flaky", map[string]any{})}},
		{Text: "Done"},
	}}
	a, err := agent.NewAgent(agent.WithLLM(llm), agent.WithTool(failing))
	require.NoError(t, err)

	// when
	_, err = a.Run(context.Background(), "go")

	// then
	require.NoError(t, err)
	toolMessage := a.Memory().Messages()[2].(agent.ToolMessage)
	assert.False(t, toolMessage.Result.Success)
	assert.Contains(t, toolMessage.Result.Error, "error executing tool 'flaky': disk on fire")
}

func TestValidationFailureBecomesFailedResult(t *testing.T) {
	// given
	strict := stubTool{
		name:        "strict",
		validateErr: fmt.Errorf("%w: file_path is required", agent.ErrInvalidArguments),
		run: func(_ context.Context, _ map[string]any) (agent.ToolResult, error) {
			t.Fatal("run must not be called when validation fails")
			return agent.ToolResult{}, nil
		},
	}
	llm := &scriptedLLM{responses: []agent.LLMResponse{
		{ToolCalls: []agent.ToolCall{agent.NewToolCall("call_1", "strict", map[string]any{})}},
		{Text: "Done"},
	}}
	a, err := agent.NewAgent(agent.WithLLM(llm), agent.WithTool(strict))
	require.NoError(t, err)

	// when
	_, err = a.Run(context.Background(), "go")

	// then
	require.NoError(t, err)
	toolMessage := a.Memory().Messages()[2].(agent.ToolMessage)
	assert.False(t, toolMessage.Result.Success)
	assert.Contains(t, toolMessage.Result.Error, "error executing tool 'strict'")
	assert.Contains(t, toolMessage.Result.Error, "file_path is required")
}

func TestSingleToolCallIsNormalized(t *testing.T) {
	// given
	call := agent.NewToolCall("", "steady", map[string]any{})
	llm := &scriptedLLM{responses: []agent.LLMResponse{
		{ToolCall: &call},
		{Text: "Done"},
	}}
	a, err := agent.NewAgent(agent.WithLLM(llm), agent.WithTool(okTool("steady", "ok")))
	require.NoError(t, err)

	// when
	_, err = a.Run(context.Background(), "go")

	// then
	require.NoError(t, err)

	toolMessages := 0
	for _, msg := range a.Memory().Messages() {
		if msg.Role() == agent.RoleTool {
			toolMessages++
		}
	}
	assert.Equal(t, 1, toolMessages, "single-call form must yield exactly one tool message")
}

func TestLLMErrorPropagates(t *testing.T) {
	// given
	llm := &scriptedLLM{err: errors.New("rate limited")}
	a, err := agent.NewAgent(agent.WithLLM(llm))
	require.NoError(t, err)

	// when
	_, err = a.Run(context.Background(), "hi")

	// then
	require.Error(t, err)
	assert.ErrorIs(t, err, agent.ErrLLMCall)
}

func TestTurnLimit(t *testing.T) {
	// given
	call := agent.NewToolCall("", "steady", map[string]any{})
	endless := []agent.LLMResponse{
		{ToolCalls: []agent.ToolCall{call}},
		{ToolCalls: []agent.ToolCall{call}},
		{ToolCalls: []agent.ToolCall{call}},
	}
	llm := &scriptedLLM{responses: endless}
	a, err := agent.NewAgent(
		agent.WithLLM(llm),
		agent.WithTool(okTool("steady", "ok")),
		agent.WithMaxTurns(2),
	)
	require.NoError(t, err)

	// when
	_, err = a.Run(context.Background(), "go")

	// then
	require.Error(t, err)
	assert.ErrorIs(t, err, agent.ErrTurnLimitReached)
	assert.Equal(t, 2, llm.calls)
}

func TestDuplicateToolNameFailsConstruction(t *testing.T) {
	// given / when
	_, err := agent.NewAgent(
		agent.WithLLM(&scriptedLLM{}),
		agent.WithTools(okTool("same", "a"), okTool("same", "b")),
	)

	// then
	require.Error(t, err)
	assert.ErrorIs(t, err, agent.ErrDuplicateTool)
}

func TestMissingLLMFailsConstruction(t *testing.T) {
	_, err := agent.NewAgent(agent.WithName("no-llm"))
	assert.ErrorIs(t, err, agent.ErrLLMRequired)
}

func TestRunWithoutInputContinuesConversation(t *testing.T) {
	// given
	llm := &scriptedLLM{responses: []agent.LLMResponse{{Text: "Hi"}, {Text: "Still here"}}}
	a, err := agent.NewAgent(agent.WithLLM(llm))
	require.NoError(t, err)

	_, err = a.Run(context.Background(), "hello")
	require.NoError(t, err)

	// when: no new input is supplied
	answer, err := a.Run(context.Background(), "")

	// then
	require.NoError(t, err)
	assert.Equal(t, "Still here", answer)

	messages := a.Memory().Messages()
	require.Len(t, messages, 3, "no extra user message should be appended")
	assert.Equal(t, agent.RoleUser, messages[0].Role())
	assert.Equal(t, agent.RoleAssistant, messages[1].Role())
	assert.Equal(t, agent.RoleAssistant, messages[2].Role())
}

func TestSchemasSnapshotPassedToLLM(t *testing.T) {
	// given
	llm := &scriptedLLM{responses: []agent.LLMResponse{{Text: "ok"}}}
	a, err := agent.NewAgent(
		agent.WithLLM(llm),
		agent.WithTools(okTool("first", ""), okTool("second", "")),
	)
	require.NoError(t, err)

	// when
	_, err = a.Run(context.Background(), "hi")

	// then
	require.NoError(t, err)
	require.Len(t, llm.schemas, 1)
	require.Len(t, llm.schemas[0], 2)
	assert.Equal(t, "first", llm.schemas[0][0].Name)
	assert.Equal(t, "second", llm.schemas[0][1].Name)
}
