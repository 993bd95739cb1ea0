// Package dialect converts documents between OpenAPI versions.
//
// The conversion itself is delegated to the oastools converter; this
// package adapts it to the document tree model and turns critical
// conversion issues into errors.
package dialect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/erraggy/oastools/converter"
	"github.com/erraggy/oastools/parser"
	"github.com/erraggy/oasvariant/document"
	"github.com/erraggy/oasvariant/oaserrors"
)

// Versions names the source and target dialects of a conversion. From may
// be a version prefix ("3") and may be empty to accept any source.
type Versions struct {
	From string
	To   string
}

// OAS3ToOAS2 converts an OpenAPI 3.x document to OpenAPI 2.0.
var OAS3ToOAS2 = Versions{From: "3", To: "2.0"}

// Converter converts a document between dialects.
type Converter interface {
	Convert(ctx context.Context, doc document.Object, v Versions) (document.Object, error)
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(ctx context.Context, doc document.Object, v Versions) (document.Object, error)

// Convert implements Converter.
func (f ConverterFunc) Convert(ctx context.Context, doc document.Object, v Versions) (document.Object, error) {
	return f(ctx, doc, v)
}

// OASConverter is a Converter backed by github.com/erraggy/oastools.
type OASConverter struct {
	logger document.Logger
}

// Option configures an OASConverter.
type Option func(*OASConverter)

// WithLogger sets the logger that receives conversion issues.
func WithLogger(l document.Logger) Option {
	return func(c *OASConverter) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewOASConverter creates an OASConverter.
func NewOASConverter(opts ...Option) *OASConverter {
	c := &OASConverter{logger: document.NopLogger{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ensure OASConverter implements Converter at compile time.
var _ Converter = (*OASConverter)(nil)

// Convert converts doc to v.To. Warnings and informational issues are
// logged; any critical issue fails the conversion.
func (c *OASConverter) Convert(ctx context.Context, doc document.Object, v Versions) (document.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := document.Marshal(doc)
	if err != nil {
		return nil, &oaserrors.ConversionError{TargetVersion: v.To, Message: "encoding source", Cause: err}
	}
	pr, err := parser.ParseWithOptions(parser.WithBytes(data))
	if err != nil {
		return nil, &oaserrors.ConversionError{TargetVersion: v.To, Message: "parsing source", Cause: err}
	}
	if len(pr.Errors) > 0 {
		return nil, &oaserrors.ConversionError{
			SourceVersion: pr.Version,
			TargetVersion: v.To,
			Message:       fmt.Sprintf("source has %d parse error(s)", len(pr.Errors)),
			Cause:         errors.Join(pr.Errors...),
		}
	}
	if v.From != "" && !strings.HasPrefix(pr.Version, v.From) {
		return nil, &oaserrors.ConversionError{
			SourceVersion: pr.Version,
			TargetVersion: v.To,
			Message:       fmt.Sprintf("expected a %s source document", v.From),
		}
	}

	result, err := converter.ConvertWithOptions(
		converter.WithParsed(*pr),
		converter.WithTargetVersion(v.To),
	)
	if err != nil {
		return nil, &oaserrors.ConversionError{SourceVersion: pr.Version, TargetVersion: v.To, Cause: err}
	}

	log := c.logger.With("from", result.SourceVersion, "to", result.TargetVersion)
	var critical *converter.ConversionIssue
	for i := range result.Issues {
		issue := &result.Issues[i]
		switch issue.Severity {
		case converter.SeverityCritical:
			log.Error("conversion issue", "path", issue.Path, "message", issue.Message)
			if critical == nil {
				critical = issue
			}
		case converter.SeverityWarning:
			log.Warn("conversion issue", "path", issue.Path, "message", issue.Message)
		default:
			log.Debug("conversion issue", "path", issue.Path, "message", issue.Message)
		}
	}
	if result.HasCriticalIssues() {
		cerr := &oaserrors.ConversionError{
			SourceVersion: result.SourceVersion,
			TargetVersion: result.TargetVersion,
			Message:       fmt.Sprintf("%d critical issue(s)", result.CriticalCount),
		}
		if critical != nil {
			cerr.Path = critical.Path
			cerr.Message += ", first: " + critical.Message
		}
		return nil, cerr
	}

	converted, err := json.Marshal(result.Document)
	if err != nil {
		return nil, &oaserrors.ConversionError{
			SourceVersion: result.SourceVersion,
			TargetVersion: result.TargetVersion,
			Message:       "encoding result",
			Cause:         err,
		}
	}
	out, err := document.Decode(converted)
	if err != nil {
		return nil, fmt.Errorf("dialect: decoding converted document: %w", err)
	}
	log.Info("converted document", "warnings", result.WarningCount)
	return out, nil
}
