package main

import (
	"context"
	"os"
	"strings"

	"agentsdk/internal/agent/agent"
	"agentsdk/internal/agent/config"
	"agentsdk/internal/agent/llm"
	"agentsdk/internal/agent/tools"

	"github.com/sirupsen/logrus"
)

var coordinatorPrompt = agent.NewPrompt(`You are a helpful assistant working inside a sandboxed workspace.
You can delegate file operations to the file agent and ask the user for clarification when needed.

TOOLS AVAILABLE TO USE:
{{.tools}}

Answer with plain text when you are done.
`)

var fileAgentPrompt = agent.NewPrompt(`You manage files in the workspace. Use your tools to read and write files as requested.

TOOLS AVAILABLE TO USE:
{{.tools}}

Answer with plain text when you are done.
`)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if len(os.Args) < 2 {
		log.Fatal("usage: agentdemo <request>")
	}
	input := strings.Join(os.Args[1:], " ")

	cfg := config.NewConfig()

	agentLLM, err := llm.CreateLLM(cfg.LLMConfig())
	if err != nil {
		log.Fatalf("failed to create LLM: %v", err)
	}

	fileAgent, err := newFileAgent(agentLLM, log)
	if err != nil {
		log.Fatalf("failed to create file agent: %v", err)
	}

	coordinator, err := newCoordinator(agentLLM, fileAgent, log)
	if err != nil {
		log.Fatalf("failed to create coordinator: %v", err)
	}

	answer, err := coordinator.Run(context.Background(), input)
	if err != nil {
		log.Fatalf("agent run failed: %v", err)
	}

	log.Info(answer)
}

func newFileAgent(agentLLM agent.LLM, log logrus.FieldLogger) (*agent.Agent, error) {
	readFile, err := tools.NewReadFileTool("./workspace")
	if err != nil {
		return nil, err
	}
	writeFile, err := tools.NewWriteFileTool("./workspace")
	if err != nil {
		return nil, err
	}

	systemMessage, err := fileAgentPrompt.RenderSystemMessage(
		[]agent.SchemaDescriptor{readFile.Schema(), writeFile.Schema()}, nil)
	if err != nil {
		return nil, err
	}

	fileAgent, err := agent.NewAgent(
		agent.WithName("file-agent"),
		agent.WithAgentSystemMessage(systemMessage),
		agent.WithLLM(agentLLM),
		agent.WithTools(readFile, writeFile),
		agent.WithMaxTurns(20),
		agent.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	fileAgent.Memory().AddSystemMessage(fileAgent.SystemMessage())

	return fileAgent, nil
}

func newCoordinator(agentLLM agent.LLM, fileAgent *agent.Agent, log logrus.FieldLogger) (*agent.Agent, error) {
	fileAgentTool, err := tools.NewAgentTool(fileAgent, "file_agent",
		"Delegate file reads and writes in the workspace to the file agent.")
	if err != nil {
		return nil, err
	}
	askUser, err := tools.NewAskUserTool(nil)
	if err != nil {
		return nil, err
	}

	systemMessage, err := coordinatorPrompt.RenderSystemMessage(
		[]agent.SchemaDescriptor{fileAgentTool.Schema(), askUser.Schema()}, nil)
	if err != nil {
		return nil, err
	}

	coordinator, err := agent.NewAgent(
		agent.WithName("coordinator"),
		agent.WithAgentSystemMessage(systemMessage),
		agent.WithLLM(agentLLM),
		agent.WithTools(fileAgentTool, askUser),
		agent.WithMaxTurns(20),
		agent.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	coordinator.Memory().AddSystemMessage(coordinator.SystemMessage())

	return coordinator, nil
}
