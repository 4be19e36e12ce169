package tools

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"agentsdk/internal/agent/agent"
)

const (
	writeModeTruncate = "w"
	writeModeAppend   = "a"
)

type WriteFileArgs struct {
	FilePath string `json:"file_path" jsonschema:"description=The name of the file to write in the workspace"`
	Content  string `json:"content" jsonschema:"description=The content to write to the file"`
	Mode     string `json:"mode,omitempty" jsonschema:"description=The file write mode: 'w' to overwrite or 'a' to append,enum=w,enum=a,default=w"`
}

// WriteFileTool writes UTF-8 content to files in a workspace directory,
// with the same filename-only confinement as ReadFileTool.
type WriteFileTool struct {
	agent.ToolDef
	rootDir string
}

func NewWriteFileTool(rootDir string) (*WriteFileTool, error) {
	def, err := agent.NewToolDef(
		"write_file",
		"Writes content to a file in the workspace. Only accepts filenames, not paths.",
		&WriteFileArgs{},
	)
	if err != nil {
		return nil, err
	}

	root, err := resolveRootDir(rootDir)
	if err != nil {
		return nil, err
	}

	return &WriteFileTool{
		ToolDef: def,
		rootDir: root,
	}, nil
}

func (t *WriteFileTool) Run(ctx context.Context, args map[string]any) (agent.ToolResult, error) {
	var parsed WriteFileArgs
	if err := decodeArgs(args, &parsed); err != nil {
		return agent.ToolResult{}, err
	}

	if err := checkFileName(parsed.FilePath); err != nil {
		return failure("%s", err), nil
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if parsed.Mode == writeModeAppend {
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}

	target := filepath.Join(t.rootDir, parsed.FilePath)

	file, err := os.OpenFile(target, flags, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return failure("permission denied to write to '%s'", parsed.FilePath), nil
		}
		return failure("cannot write to '%s': %s", parsed.FilePath, err), nil
	}
	defer file.Close()

	if _, err := file.WriteString(parsed.Content); err != nil {
		return failure("cannot write to '%s': %s", parsed.FilePath, err), nil
	}

	return success(fmt.Sprintf("File written to '%s'.", parsed.FilePath)), nil
}
