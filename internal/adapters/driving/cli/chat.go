package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Manage the workspace chat transcript",
}

var chatShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored chat transcript",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if workspaceService == nil {
			return errors.New("workspace service not configured")
		}
		transcript, err := workspaceService.LoadChat(context.Background(), workspaceRoot)
		if err != nil {
			return fmt.Errorf("loading chat: %w", err)
		}
		cmd.Println(transcript)
		return nil
	},
}

var chatSaveCmd = &cobra.Command{
	Use:   "save [file]",
	Short: "Replace the chat transcript from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if workspaceService == nil {
			return errors.New("workspace service not configured")
		}

		var transcript []byte
		var err error
		if len(args) == 0 || args[0] == "-" {
			transcript, err = io.ReadAll(cmd.InOrStdin())
		} else {
			transcript, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("reading transcript: %w", err)
		}

		return workspaceService.SaveChat(context.Background(), workspaceRoot, string(transcript))
	},
}

func init() {
	chatCmd.AddCommand(chatShowCmd)
	chatCmd.AddCommand(chatSaveCmd)
	rootCmd.AddCommand(chatCmd)
}
