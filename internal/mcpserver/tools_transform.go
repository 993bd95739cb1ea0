package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/oasvariant/document"
	"github.com/erraggy/oasvariant/pipeline"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type transformInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The OpenAPI document to transform"`
	Pass   string    `json:"pass"             jsonschema:"Pass name (flatten\\, root-to-user\\, v2-to-v1\\, oas3-to-oas2\\, swagger)"`
	Output string    `json:"output,omitempty" jsonschema:"File path to write the result. If omitted the document is returned inline."`
}

type transformOutput struct {
	Pass      string `json:"pass"`
	Changed   bool   `json:"changed"`
	WrittenTo string `json:"written_to,omitempty"`
	Document  string `json:"document,omitempty"`
}

func (t *tools) handleTransform(ctx context.Context, _ *mcp.CallToolRequest, input transformInput) (*mcp.CallToolResult, transformOutput, error) {
	if input.Pass == "" {
		return errResult(fmt.Errorf("pass is required")), transformOutput{}, nil
	}
	pass, err := pipeline.LookupPass(input.Pass, t.conv)
	if err != nil {
		return errResult(err), transformOutput{}, nil
	}
	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), transformOutput{}, nil
	}

	out, err := pass(ctx, doc)
	if err != nil {
		document.PassLogger(t.logger, input.Pass).Warn("transform failed", "error", err)
		return errResult(err), transformOutput{}, nil
	}

	output := transformOutput{Pass: input.Pass, Changed: !document.Same(doc, out)}
	if input.Output != "" {
		if err := document.Store(input.Output, out); err != nil {
			return errResult(err), transformOutput{}, nil
		}
		output.WrittenTo = input.Output
		return nil, output, nil
	}

	data, err := document.Marshal(out)
	if err != nil {
		return errResult(err), transformOutput{}, nil
	}
	output.Document = string(data)
	return nil, output, nil
}
