package agent

// Memory is the ordered, append-only conversation history for one agent.
// It is exclusively owned by its agent; message order is never changed
// after append.
type Memory struct {
	messages []Message
}

type MemoryOption func(*Memory)

func NewMemory(options ...MemoryOption) *Memory {
	memory := &Memory{}
	for _, opt := range options {
		opt(memory)
	}
	return memory
}

// WithSystemMessage seeds the history with one system message.
func WithSystemMessage(content string) MemoryOption {
	return func(m *Memory) {
		m.AddSystemMessage(content)
	}
}

func (m *Memory) AddSystemMessage(content string) {
	m.messages = append(m.messages, SystemMessage{Content: content})
}

func (m *Memory) AddUserMessage(content string) {
	m.messages = append(m.messages, UserMessage{Content: content})
}

func (m *Memory) AddAssistantText(content string) {
	m.messages = append(m.messages, AIMessage{Response: LLMResponse{Text: content}})
}

func (m *Memory) AddAssistantMessage(response LLMResponse) {
	m.messages = append(m.messages, AIMessage{Response: response})
}

func (m *Memory) AddToolMessage(result ToolResult, toolCallID string) {
	m.messages = append(m.messages, ToolMessage{Result: result, ToolCallID: toolCallID})
}

// Messages returns the live history in insertion order. Callers must treat
// the returned slice as read-only.
func (m *Memory) Messages() []Message {
	return m.messages
}

// Clear empties the history, the seeded system message included. Callers
// that still want one must re-seed.
func (m *Memory) Clear() {
	m.messages = nil
}
