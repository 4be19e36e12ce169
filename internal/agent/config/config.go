package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"agentsdk/internal/agent/llm"

	"github.com/joho/godotenv"
)

type Config struct {
	OpenAI *OpenAIConfig
}

type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// NewConfig resolves all environment configuration once, before any agent
// is constructed. The library itself never reads the environment.
func NewConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
		// Not fatal: the variables may be set through other means.
	}

	return &Config{
		OpenAI: &OpenAIConfig{
			APIKey:      getEnvStr("OPENAI_API_KEY", ""),
			Model:       getEnvStr("OPENAI_MODEL", "gpt-4o-mini"),
			MaxTokens:   getEnvInt("OPENAI_MAX_TOKENS", 4096),
			Temperature: getEnvFloat("OPENAI_TEMPERATURE", 0.0),
			Timeout:     time.Duration(getEnvInt("OPENAI_TIMEOUT_SECONDS", 30)) * time.Second,
		},
	}
}

// LLMConfig translates the resolved OpenAI settings into the provider
// factory's configuration struct.
func (c *Config) LLMConfig() llm.LLMConfig {
	return llm.LLMConfig{
		Type:        llm.LLMTypeOpenAI,
		APIKey:      c.OpenAI.APIKey,
		Model:       c.OpenAI.Model,
		Temperature: c.OpenAI.Temperature,
	}
}

// getEnvStr returns the value of an environment variable or a default value if it's not set
func getEnvStr(envVar string, defaultValue string) string {
	v := os.Getenv(envVar)
	if v == "" {
		if defaultValue == "" {
			log.Fatalf("environment variable cannot be empty and no default provided: %s", envVar)
		}
		return defaultValue
	}
	return v
}

// getEnvInt returns the value of an environment variable as an integer or a default value if it's not set
func getEnvInt(envVar string, defaultValue int) int {
	v := os.Getenv(envVar)
	if v == "" {
		return defaultValue
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("environment variable must be an integer: name = %s, value = %s", envVar, v)
	}
	return i
}

// getEnvFloat returns the value of an environment variable as a float64 or a default value if it's not set
func getEnvFloat(envVar string, defaultValue float64) float64 {
	v := os.Getenv(envVar)
	if v == "" {
		return defaultValue
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("environment variable must be a float: name = %s, value = %s", envVar, v)
	}
	return f
}
