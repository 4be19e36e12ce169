package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"
)

var (
	ErrInvalidArguments   = errors.New("invalid arguments")
	ErrCannotCreateSchema = errors.New("cannot create schema from args type")
)

// Tool is the capability contract every tool implements. ValidateArgs must
// be total over arbitrary argument maps, and Run is only invoked after
// validation succeeded; tool-level failures are encoded in the ToolResult
// or the returned error, both of which the loop folds into a failed result.
type Tool interface {
	Name() string
	Description() string
	Schema() SchemaDescriptor
	ValidateArgs(args map[string]any) error
	Run(ctx context.Context, args map[string]any) (ToolResult, error)
}

// ToolDef implements the schema and validation half of the Tool contract.
// It reflects a typed arguments struct into a JSON schema once at
// construction and precompiles the validator, so concrete tools only embed
// it and provide Run.
type ToolDef struct {
	name        string
	description string
	parameters  map[string]any
	validator   *gojsonschema.Schema
}

func NewToolDef(name string, description string, argsType any) (ToolDef, error) {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	schemaBytes, err := json.Marshal(reflector.Reflect(argsType))
	if err != nil {
		return ToolDef{}, fmt.Errorf("%w: %s", ErrCannotCreateSchema, err)
	}

	var parameters map[string]any
	if err := json.Unmarshal(schemaBytes, &parameters); err != nil {
		return ToolDef{}, fmt.Errorf("%w: %s", ErrCannotCreateSchema, err)
	}

	validator, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaBytes))
	if err != nil {
		return ToolDef{}, fmt.Errorf("%w: %s", ErrCannotCreateSchema, err)
	}

	return ToolDef{
		name:        name,
		description: description,
		parameters:  parameters,
		validator:   validator,
	}, nil
}

func (d ToolDef) Name() string {
	return d.name
}

func (d ToolDef) Description() string {
	return d.description
}

func (d ToolDef) Schema() SchemaDescriptor {
	return SchemaDescriptor{
		Name:        d.name,
		Description: d.description,
		Parameters:  d.parameters,
	}
}

func (d ToolDef) ValidateArgs(args map[string]any) error {
	res, err := d.validator.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidArguments, err)
	}
	if !res.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidArguments, res.Errors())
	}
	return nil
}
