package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edgarrmondragon/citric-sub000/pkg/api"
)

// newLoginCmd creates and returns a new login command
func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify credentials against the LimeSurvey server",
		Long: `Login opens and releases a RemoteControl session to verify that the
configured URL and credentials work. With --save, the password is stored in
the configuration file so later commands need no prompt.

Example:
  citric login --passwd=mypassword --save
  citric login  # uses password from config file or LS_PASSWORD`,
		RunE: runLogin,
	}

	cmd.Flags().String("passwd", "", "Password for authentication")
	cmd.Flags().Bool("save", false, "Store credentials in the config file")
	return cmd
}

// runLogin handles the login command execution
func runLogin(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if cfg == nil {
		return fmt.Errorf("no configuration loaded")
	}

	passwd, _ := cmd.Flags().GetString("passwd")
	if passwd == "" {
		passwd = cfg.Password
		if passwd == "" {
			return fmt.Errorf("no password provided. Use --passwd flag, config file, or LS_PASSWORD")
		}
	}

	ctx := context.Background()
	client, err := api.Connect(ctx, cfg.URL, cfg.Username, passwd)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	defer client.Close(ctx)

	save, _ := cmd.Flags().GetBool("save")
	if save {
		cfg.Password = passwd
		configPath := configFile
		if configPath == "" {
			configPath, err = GetDefaultConfigPath()
			if err != nil {
				return fmt.Errorf("failed to get config path: %w", err)
			}
		}
		if err := cfg.WriteConfig(configPath); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}
	}

	if jsonOutput {
		kv := map[string]interface{}{
			"status":   "success",
			"message":  "Login successful",
			"username": cfg.Username,
			"url":      cfg.URL,
		}
		printJSON(kv)
	} else {
		okLabel.Println("✓ Login successful")
		fmt.Printf("Authenticated as %s at %s\n", cfg.Username, cfg.URL)
	}

	return nil
}
