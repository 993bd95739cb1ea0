package pipeline

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/erraggy/oasvariant/dialect"
	"github.com/erraggy/oasvariant/document"
)

// Option is a function that configures a build.
type Option func(*buildConfig) error

type buildConfig struct {
	logger      document.Logger
	converter   dialect.Converter
	only        []string
	parallelism int
	checkRefs   bool
}

func applyOptions(opts ...Option) (*buildConfig, error) {
	cfg := &buildConfig{
		logger:      document.NopLogger{},
		parallelism: -1,
		checkRefs:   true,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.converter == nil {
		cfg.converter = dialect.NewOASConverter(dialect.WithLogger(cfg.logger))
	}
	return cfg, nil
}

// WithLogger sets the logger for build progress and conversion issues.
func WithLogger(l document.Logger) Option {
	return func(cfg *buildConfig) error {
		if l != nil {
			cfg.logger = l
		}
		return nil
	}
}

// WithConverter replaces the OpenAPI 3 to 2.0 converter.
func WithConverter(c dialect.Converter) Option {
	return func(cfg *buildConfig) error {
		if c == nil {
			return fmt.Errorf("pipeline: converter cannot be nil")
		}
		cfg.converter = c
		return nil
	}
}

// WithOnly restricts the returned variants to names matching any of the
// glob patterns (e.g. "openapi2-*", "*-flat").
func WithOnly(patterns ...string) Option {
	return func(cfg *buildConfig) error {
		for _, p := range patterns {
			if !doublestar.ValidatePattern(p) {
				return fmt.Errorf("pipeline: invalid variant pattern %q", p)
			}
		}
		cfg.only = append(cfg.only, patterns...)
		return nil
	}
}

// WithParallelism limits the number of concurrent conversions. n <= 0
// means no limit.
func WithParallelism(n int) Option {
	return func(cfg *buildConfig) error {
		if n <= 0 {
			n = -1
		}
		cfg.parallelism = n
		return nil
	}
}

// WithRefCheck enables or disables the final dangling reference check of
// every variant. Enabled by default.
func WithRefCheck(enabled bool) Option {
	return func(cfg *buildConfig) error {
		cfg.checkRefs = enabled
		return nil
	}
}
