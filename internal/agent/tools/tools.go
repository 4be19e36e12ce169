// Package tools provides the built-in tool implementations: workspace file
// access, user prompting and delegation to a nested agent.
package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"agentsdk/internal/agent/agent"
)

var errFileNameOnly = errors.New("only filenames are allowed, directory paths are not permitted")

// decodeArgs converts a validated argument map into the tool's typed args
// struct.
func decodeArgs(args map[string]any, v any) error {
	bytes, err := json.Marshal(args)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, v)
}

// checkFileName confines file tools to the workspace root: simple
// filenames only, no separators, no traversal, no absolute paths.
func checkFileName(name string) error {
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return errFileNameOnly
	}
	if filepath.IsAbs(name) {
		return errFileNameOnly
	}
	return nil
}

func failure(format string, args ...any) agent.ToolResult {
	return agent.ToolResult{
		Success: false,
		Error:   fmt.Sprintf(format, args...),
	}
}

func success(result string) agent.ToolResult {
	return agent.ToolResult{
		Success: true,
		Result:  result,
	}
}
