package mcpserver

import (
	"context"
	"maps"
	"slices"

	"github.com/erraggy/oasvariant/document"
	"github.com/erraggy/oasvariant/pipeline"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type buildInput struct {
	Spec      specInput `json:"spec"                 jsonschema:"The AppVeyor v1 OpenAPI 3 document"`
	Only      []string  `json:"only,omitempty"       jsonschema:"Glob patterns selecting variants (e.g. openapi2-* or swagger)"`
	OutputDir string    `json:"output_dir,omitempty" jsonschema:"Directory to write <name>.json files. If omitted the variants are returned inline."`
}

type buildOutput struct {
	Variants  []string          `json:"variants"`
	WrittenTo string            `json:"written_to,omitempty"`
	Documents map[string]string `json:"documents,omitempty"`
}

func (t *tools) handleBuild(ctx context.Context, _ *mcp.CallToolRequest, input buildInput) (*mcp.CallToolResult, buildOutput, error) {
	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), buildOutput{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.BuildTimeout)
	defer cancel()
	variants, err := pipeline.BuildAll(ctx, doc,
		pipeline.WithLogger(t.logger),
		pipeline.WithConverter(t.conv),
		pipeline.WithParallelism(cfg.BuildParallelism),
		pipeline.WithOnly(input.Only...),
	)
	if err != nil {
		return errResult(err), buildOutput{}, nil
	}

	output := buildOutput{Variants: slices.Sorted(maps.Keys(variants))}
	if input.OutputDir != "" {
		if _, err := pipeline.WriteAll(input.OutputDir, variants, t.logger); err != nil {
			return errResult(err), buildOutput{}, nil
		}
		output.WrittenTo = input.OutputDir
		return nil, output, nil
	}

	output.Documents = make(map[string]string, len(variants))
	for name, v := range variants {
		data, err := document.Marshal(v)
		if err != nil {
			return errResult(err), buildOutput{}, nil
		}
		output.Documents[name] = string(data)
	}
	return nil, output, nil
}
