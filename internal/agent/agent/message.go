package agent

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one entry in the conversation history. The role is derived
// from the concrete variant, so a UserMessage can never carry any role
// other than "user".
type Message interface {
	Role() Role
	message()
}

type SystemMessage struct {
	Content string `json:"content"`
}

func (SystemMessage) Role() Role { return RoleSystem }
func (SystemMessage) message()   {}

type UserMessage struct {
	Content string `json:"content"`
}

func (UserMessage) Role() Role { return RoleUser }
func (UserMessage) message()   {}

// AIMessage carries the full LLMResponse rather than just its text, so a
// stored assistant turn round-trips losslessly, tool calls included.
type AIMessage struct {
	Response LLMResponse `json:"response"`
}

func (AIMessage) Role() Role { return RoleAssistant }
func (AIMessage) message()   {}

type ToolMessage struct {
	Result     ToolResult `json:"result"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

func (ToolMessage) Role() Role { return RoleTool }
func (ToolMessage) message()   {}

// ToolCall is one requested tool invocation. Arguments are raw until they
// pass through the named tool's ValidateArgs.
type ToolCall struct {
	Name      string         `json:"name"`
	ID        string         `json:"id,omitempty"`
	Arguments map[string]any `json:"arguments"`
}

func NewToolCall(id string, name string, args map[string]any) ToolCall {
	return ToolCall{
		Name:      name,
		ID:        id,
		Arguments: args,
	}
}

// LLMResponse is the model's decision for one turn: text, tool calls, or
// both. A well-formed response has at least one of the two populated.
// Providers that emit a single call may set ToolCall instead of ToolCalls;
// Calls folds both forms into one ordered slice.
type LLMResponse struct {
	Text      string     `json:"text,omitempty"`
	ToolCall  *ToolCall  `json:"tool_call,omitempty"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

func (r LLMResponse) HasToolCalls() bool {
	return r.ToolCall != nil || len(r.ToolCalls) > 0
}

func (r LLMResponse) IsTextOnly() bool {
	return r.Text != "" && !r.HasToolCalls()
}

// Calls returns the requested invocations in request order.
func (r LLMResponse) Calls() []ToolCall {
	if r.ToolCall == nil {
		return r.ToolCalls
	}
	calls := make([]ToolCall, 0, 1+len(r.ToolCalls))
	calls = append(calls, *r.ToolCall)
	return append(calls, r.ToolCalls...)
}

// ToolResult is the uniform outcome of one tool call. The loop only reads
// Success; Result and Error are payload for the model.
type ToolResult struct {
	Success bool   `json:"success"`
	Result  string `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SchemaDescriptor is the machine-readable tool shape advertised to the
// model-invocation port.
type SchemaDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}
