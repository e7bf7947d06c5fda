package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/studio-publisher/internal/app"
	"github.com/yungbote/studio-publisher/internal/modules/publish"
)

var (
	exportForce          bool
	exportForceExercises bool
	exportUserID         string
)

var exportCmd = &cobra.Command{
	Use:   "export [channel_id]",
	Short: "Publish one channel as a new immutable version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.New()
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}
		defer a.Log.Sync()

		opts := publish.Options{
			ChannelID:      args[0],
			Force:          exportForce,
			ForceExercises: exportForceExercises,
		}
		if exportUserID != "" {
			opts.UserID = &exportUserID
		}

		result, err := a.Publisher.Export(cmd.Context(), opts)
		if err != nil {
			return err
		}
		switch result.Outcome {
		case publish.OutcomeNothingChanged:
			fmt.Fprintln(cmd.OutOrStdout(), "No content has changed; nothing was published.")
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "Published version %d. You can find your database in %s\n", result.Version, result.DBPath)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().BoolVar(&exportForce, "force", false, "publish even when no node is marked changed")
	exportCmd.Flags().BoolVar(&exportForceExercises, "force-exercises", false, "rebuild every exercise bundle")
	exportCmd.Flags().StringVar(&exportUserID, "user-id", "", "attribute generated exercise files to this user")
}
