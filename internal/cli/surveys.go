package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edgarrmondragon/citric-sub000/pkg/api"
)

// newSurveysCmd creates and returns a new surveys command
func newSurveysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "surveys",
		Short: "List surveys visible to the configured user",
		RunE:  runSurveys,
	}

	cmd.Flags().String("user", "", "List surveys belonging to another user (requires admin permission)")
	return cmd
}

// runSurveys handles the surveys command execution
func runSurveys(cmd *cobra.Command, args []string) error {
	user, _ := cmd.Flags().GetString("user")

	return withClient(context.Background(), func(ctx context.Context, client *api.Client) error {
		surveys, err := client.ListSurveys(ctx, user)
		if err != nil {
			return fmt.Errorf("listing surveys: %w", err)
		}

		if jsonOutput {
			printJSON(surveys)
			return nil
		}

		if len(surveys) == 0 {
			fmt.Println("No surveys found.")
			return nil
		}
		for _, s := range surveys {
			marker := "  "
			if s.Active == "Y" {
				marker = okLabel.Sprint("● ")
			}
			fmt.Printf("%s%d  %s\n", marker, s.ID, s.Title)
		}
		return nil
	})
}
