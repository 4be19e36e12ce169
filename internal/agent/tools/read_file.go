package tools

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"agentsdk/internal/agent/agent"
)

type ReadFileArgs struct {
	FilePath string `json:"file_path" jsonschema:"description=The name of the file to read from the workspace"`
}

// ReadFileTool reads UTF-8 files from a workspace directory. Only simple
// filenames are accepted, never paths, so reads cannot escape the root.
type ReadFileTool struct {
	agent.ToolDef
	rootDir string
}

func NewReadFileTool(rootDir string) (*ReadFileTool, error) {
	def, err := agent.NewToolDef(
		"read_file",
		"Reads the content of a file from the workspace. Only accepts filenames, not paths.",
		&ReadFileArgs{},
	)
	if err != nil {
		return nil, err
	}

	root, err := resolveRootDir(rootDir)
	if err != nil {
		return nil, err
	}

	return &ReadFileTool{
		ToolDef: def,
		rootDir: root,
	}, nil
}

func (t *ReadFileTool) Run(ctx context.Context, args map[string]any) (agent.ToolResult, error) {
	var parsed ReadFileArgs
	if err := decodeArgs(args, &parsed); err != nil {
		return agent.ToolResult{}, err
	}

	if err := checkFileName(parsed.FilePath); err != nil {
		return failure("%s", err), nil
	}

	target := filepath.Join(t.rootDir, parsed.FilePath)

	info, err := os.Stat(target)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return failure("file '%s' not found", parsed.FilePath), nil
	case errors.Is(err, fs.ErrPermission):
		return failure("permission denied to read '%s'", parsed.FilePath), nil
	case err != nil:
		return failure("error reading file: %s", err), nil
	case info.IsDir():
		return failure("'%s' is not a file", parsed.FilePath), nil
	}

	content, err := os.ReadFile(target)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return failure("permission denied to read '%s'", parsed.FilePath), nil
		}
		return failure("error reading file: %s", err), nil
	}

	if !utf8.Valid(content) {
		return failure("file '%s' is not a valid UTF-8 text file", parsed.FilePath), nil
	}

	return success(string(content)), nil
}

func resolveRootDir(rootDir string) (string, error) {
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root dir: %w", err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("failed to create root dir: %w", err)
	}
	return root, nil
}
