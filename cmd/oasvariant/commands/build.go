package commands

import (
	"github.com/erraggy/oasvariant/pipeline"
	"github.com/spf13/cobra"
)

func (a *app) newBuildCommand() *cobra.Command {
	var (
		only        []string
		parallelism int
		refCheck    bool
	)
	cmd := &cobra.Command{
		Use:   "build [input] [outdir]",
		Short: "Write every variant of an AppVeyor v1 OpenAPI 3 document to a directory",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("only") {
				a.cfg.Only = only
			}
			if flags.Changed("parallelism") {
				a.cfg.Parallelism = parallelism
			}
			if flags.Changed("ref-check") {
				a.cfg.RefCheck = refCheck
			}
			outDir := a.cfg.OutputDir
			if len(args) > 1 {
				outDir = args[1]
			}

			doc, err := loadInput(cmd, argAt(args, 0))
			if err != nil {
				return err
			}
			variants, err := pipeline.BuildAll(cmd.Context(), doc,
				pipeline.WithLogger(a.logger),
				pipeline.WithConverter(newConverter(a.logger)),
				pipeline.WithOnly(a.cfg.Only...),
				pipeline.WithParallelism(a.cfg.Parallelism),
				pipeline.WithRefCheck(a.cfg.RefCheck),
			)
			if err != nil {
				return err
			}

			code, err := pipeline.WriteAll(outDir, variants, a.logger)
			if err != nil {
				return &ExitError{Code: code, Err: err}
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&only, "only", nil, "glob patterns selecting the variants to write")
	cmd.Flags().IntVar(&parallelism, "parallelism", 0, "maximum concurrent conversions (0 means unlimited)")
	cmd.Flags().BoolVar(&refCheck, "ref-check", true, "fail when a variant contains a dangling $ref")
	return cmd
}
