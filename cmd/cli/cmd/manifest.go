package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var manifestOutput string

var manifestCmd = &cobra.Command{
	Use:   "manifest <subtitle-id>",
	Short: "Fetch the DASH manifest of the clip around a subtitle cue",
	Long: `Fetches the MPEG-DASH manifest for the video clip surrounding the given
subtitle cue (an id printed by "vlcli search"). The manifest is written to
stdout, or to the file given by --output.`,
	Args: cobra.ExactArgs(1),
	RunE: runManifest,
}

func init() {
	RootCmd.AddCommand(manifestCmd)
	manifestCmd.Flags().StringVarP(&manifestOutput, "output", "o", "", "Write the manifest to this file instead of stdout")
}

func runManifest(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr())

	client, err := newClient(logger)
	if err != nil {
		return err
	}

	manifest, err := client.GetManifest(cmd.Context(), args[0])
	if err != nil {
		logger.WithError(err).Error("Manifest request failed")
		return fmt.Errorf("manifest request failed: %w", err)
	}

	if manifestOutput == "" {
		_, err = cmd.OutOrStdout().Write(manifest.Data)
		return err
	}

	if err := os.WriteFile(manifestOutput, manifest.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	logger.WithFields(logrus.Fields{
		"file":  manifestOutput,
		"bytes": len(manifest.Data),
	}).Info("Manifest written")
	return nil
}
