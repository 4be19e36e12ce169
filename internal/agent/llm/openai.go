package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"agentsdk/internal/agent/agent"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var ErrUnknownMessageType = errors.New("unknown message type")

type openAILLM struct {
	client      openai.Client
	apiKey      string
	temperature float64
	model       openai.ChatModel
}

type openAILLMOption func(o *openAILLM)

func withOpenAITemperature(temperature float64) openAILLMOption {
	return func(o *openAILLM) {
		o.temperature = temperature
	}
}

func withOpenAIModel(model string) openAILLMOption {
	return func(o *openAILLM) {
		o.model = openai.ChatModel(model)
	}
}

func withOpenAIAPIKey(apiKey string) openAILLMOption {
	return func(o *openAILLM) {
		o.apiKey = apiKey
		o.client = openai.NewClient(option.WithAPIKey(apiKey))
	}
}

func newOpenAILLM(options ...openAILLMOption) *openAILLM {
	llm := &openAILLM{}
	for _, opt := range options {
		opt(llm)
	}
	return llm
}

func (o *openAILLM) Generate(ctx context.Context, history []agent.Message, tools []agent.SchemaDescriptor) (agent.LLMResponse, error) {
	params, err := o.createParameters(history, tools)
	if err != nil {
		return agent.LLMResponse{}, err
	}

	completion, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return agent.LLMResponse{}, fmt.Errorf("OpenAI API call failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return agent.LLMResponse{}, fmt.Errorf("no response from OpenAI")
	}

	return o.parseMessage(completion.Choices[0].Message)
}

func (o *openAILLM) createParameters(history []agent.Message, tools []agent.SchemaDescriptor) (openai.ChatCompletionNewParams, error) {
	messages, err := o.createMessages(history)
	if err != nil {
		return openai.ChatCompletionNewParams{}, err
	}

	return openai.ChatCompletionNewParams{
		Messages:    messages,
		Model:       o.model,
		Temperature: openai.Float(o.temperature),
		Tools:       o.createToolParams(tools),
	}, nil
}

func (o *openAILLM) createToolParams(tools []agent.SchemaDescriptor) []openai.ChatCompletionToolParam {
	if len(tools) == 0 {
		return nil
	}

	toolParams := make([]openai.ChatCompletionToolParam, 0, len(tools))

	for _, tool := range tools {
		toolParams = append(toolParams, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        tool.Name,
				Description: openai.String(tool.Description),
				Parameters:  openai.FunctionParameters(tool.Parameters),
			},
		})
	}

	return toolParams
}

func (o *openAILLM) createMessages(history []agent.Message) ([]openai.ChatCompletionMessageParamUnion, error) {
	openAIMessages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history))

	for _, msg := range history {
		switch m := msg.(type) {
		case agent.SystemMessage:
			openAIMessages = append(openAIMessages, openai.SystemMessage(m.Content))
		case agent.UserMessage:
			openAIMessages = append(openAIMessages, openai.UserMessage(m.Content))
		case agent.AIMessage:
			openAIMessages = append(openAIMessages, o.createAssistantMessage(m))
		case agent.ToolMessage:
			openAIMessages = append(openAIMessages, openai.ToolMessage(toolResultContent(m.Result), m.ToolCallID))
		default:
			return nil, fmt.Errorf("%w: %T", ErrUnknownMessageType, msg)
		}
	}

	return openAIMessages, nil
}

func (o *openAILLM) createAssistantMessage(msg agent.AIMessage) openai.ChatCompletionMessageParamUnion {
	calls := msg.Response.Calls()
	if len(calls) == 0 {
		return openai.AssistantMessage(msg.Response.Text)
	}

	assistant := openai.ChatCompletionAssistantMessageParam{}
	if msg.Response.Text != "" {
		assistant.Content.OfString = openai.String(msg.Response.Text)
	}

	for _, call := range calls {
		assistant.ToolCalls = append(assistant.ToolCalls, openai.ChatCompletionMessageToolCallParam{
			ID: call.ID,
			Function: openai.ChatCompletionMessageToolCallFunctionParam{
				Name:      call.Name,
				Arguments: marshalArgs(call.Arguments),
			},
		})
	}

	return openai.ChatCompletionMessageParamUnion{OfAssistant: &assistant}
}

func (o *openAILLM) parseMessage(message openai.ChatCompletionMessage) (agent.LLMResponse, error) {
	response := agent.LLMResponse{
		Text: message.Content,
	}

	for _, toolCall := range message.ToolCalls {
		args := make(map[string]any)
		if err := json.Unmarshal([]byte(toolCall.Function.Arguments), &args); err != nil {
			return agent.LLMResponse{}, fmt.Errorf("failed to parse tool arguments for '%s': %w", toolCall.Function.Name, err)
		}
		response.ToolCalls = append(response.ToolCalls, agent.NewToolCall(toolCall.ID, toolCall.Function.Name, args))
	}

	return response, nil
}

// toolResultContent renders a ToolResult the way the model sees it: the
// raw result on success, an ERROR line otherwise.
func toolResultContent(result agent.ToolResult) string {
	if result.Success {
		return result.Result
	}
	return fmt.Sprintf("ERROR: %s", result.Error)
}

func marshalArgs(args map[string]any) string {
	if args == nil {
		return "{}"
	}

	bytes, err := json.Marshal(args)
	if err != nil {
		return "{}"
	}

	return string(bytes)
}
