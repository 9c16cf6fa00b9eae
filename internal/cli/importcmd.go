package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edgarrmondragon/citric-sub000/pkg/api"
)

// newImportCmd creates and returns a new import command
func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a survey from an exported file",
		Long: `Import uploads an exported survey file (.lss, .lsa, .txt or .csv) and
creates a new survey from it. The file type is derived from the extension
unless --type says otherwise.

Example:
  citric import survey.lss --name "Imported survey"`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().String("type", "", "Survey file type (lss, lsa, txt, csv); default from extension")
	cmd.Flags().String("name", "", "Override the survey title")
	cmd.Flags().Int("id", 0, "Desired survey ID (the server may assign another)")
	return cmd
}

// runImport handles the import command execution
func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]

	fileType, _ := cmd.Flags().GetString("type")
	if fileType == "" {
		fileType = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	switch api.ImportSurveyType(fileType) {
	case api.ImportSurveyLSS, api.ImportSurveyLSA, api.ImportSurveyTXT, api.ImportSurveyCSV:
	default:
		return fmt.Errorf("unsupported survey file type %q", fileType)
	}

	name, _ := cmd.Flags().GetString("name")
	desiredID, _ := cmd.Flags().GetInt("id")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening survey file: %w", err)
	}
	defer f.Close()

	return withClient(context.Background(), func(ctx context.Context, client *api.Client) error {
		surveyID, err := client.ImportSurvey(ctx, f, api.ImportSurveyType(fileType), name, desiredID)
		if err != nil {
			return fmt.Errorf("importing survey: %w", err)
		}

		if jsonOutput {
			printJSON(map[string]any{"survey_id": surveyID})
		} else {
			okLabel.Println("✓ Survey imported")
			fmt.Printf("Survey ID: %d\n", surveyID)
		}
		return nil
	})
}
