package llm

import (
	"fmt"

	"agentsdk/internal/agent/agent"
)

var ErrUnsupportedLLMType = fmt.Errorf("unsupported LLM type")

// CreateLLM builds the model-invocation port for the configured provider.
// Credential and model selection happen before this call, in the outermost
// caller's configuration, never inside the loop.
func CreateLLM(cfg LLMConfig) (agent.LLM, error) {
	switch cfg.Type {
	case LLMTypeOpenAI:
		return newOpenAILLM(
			withOpenAIAPIKey(cfg.APIKey),
			withOpenAIModel(cfg.Model),
			withOpenAITemperature(cfg.Temperature),
		), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLLMType, cfg.Type)
	}
}
