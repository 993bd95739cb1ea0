package commands

import (
	"fmt"

	"github.com/erraggy/oasvariant/document"
	"github.com/erraggy/oasvariant/pipeline"
	"github.com/spf13/cobra"
)

var passCommandNames = pipeline.PassNames()

var passDescriptions = map[string]string{
	pipeline.PassFlatten:    "Flatten the notification discriminated unions",
	pipeline.PassRootToUser: "Convert v1 (account in token) addressing to v2 (account in URL)",
	pipeline.PassV2ToV1:     "Convert v2 (account in URL) addressing to v1 (account in token)",
	pipeline.PassOAS3ToOAS2: "Convert OpenAPI 3 to a tuned OpenAPI 2.0 document",
	pipeline.PassSwagger:    "Rename an OpenAPI 2.0 document to the legacy appveyor-swagger names",
}

func (a *app) newPassCommand(name string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [input] [output]",
		Short: passDescriptions[name],
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, output := argAt(args, 0), argAt(args, 1)
			if err := ValidateOutputPath(output, input); err != nil {
				return err
			}
			pass, err := pipeline.LookupPass(name, newConverter(a.logger))
			if err != nil {
				return err
			}

			doc, err := loadInput(cmd, input)
			if err != nil {
				return err
			}
			a.logger.Debug("loaded document", "input", FormatSpecPath(input))

			out, err := pass(cmd.Context(), doc)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			if document.Same(doc, out) {
				document.PassLogger(a.logger, name).Info("document unchanged")
			}
			return storeOutput(cmd, output, out)
		},
	}
}
