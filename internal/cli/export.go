package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/edgarrmondragon/citric-sub000/pkg/api"
)

// newExportCmd creates and returns a new export command
func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <survey-id>",
		Short: "Export survey responses",
		Long: `Export downloads the responses of a survey in the chosen format and
writes them to a file or standard output.

Example:
  citric export 123456 --format csv -o responses.csv
  citric export 123456 --format json --completion complete`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}

	cmd.Flags().String("format", "csv", "Export format (csv, json, xls, doc, pdf)")
	cmd.Flags().StringP("output", "o", "", "Output file; defaults to standard output")
	cmd.Flags().String("language", "", "Response language")
	cmd.Flags().String("completion", "all", "Completion filter (all, complete, incomplete)")
	cmd.Flags().String("heading", "code", "Heading type (code, full, abbreviated)")
	cmd.Flags().String("token", "", "Export only responses for this participant token")
	return cmd
}

// runExport handles the export command execution
func runExport(cmd *cobra.Command, args []string) error {
	surveyID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid survey ID %q", args[0])
	}

	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	language, _ := cmd.Flags().GetString("language")
	completion, _ := cmd.Flags().GetString("completion")
	heading, _ := cmd.Flags().GetString("heading")
	token, _ := cmd.Flags().GetString("token")

	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	options := &api.ExportOptions{
		Language:         language,
		CompletionStatus: api.CompletionStatus(completion),
		HeadingType:      api.HeadingType(heading),
	}

	return withClient(context.Background(), func(ctx context.Context, client *api.Client) error {
		var n int
		if token != "" {
			n, err = client.ExportResponsesByToken(ctx, out, surveyID, api.ResponsesExportFormat(format), token, options)
		} else {
			n, err = client.ExportResponses(ctx, out, surveyID, api.ResponsesExportFormat(format), options)
		}
		if err != nil {
			return fmt.Errorf("exporting responses: %w", err)
		}

		if output != "" {
			if jsonOutput {
				printJSON(map[string]any{"file": output, "bytes": n})
			} else {
				okLabel.Println("✓ Responses exported")
				fmt.Printf("Wrote %d bytes to %s\n", n, output)
			}
		}
		return nil
	})
}
