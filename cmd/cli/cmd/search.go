package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var searchQuery string

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search subtitle cues by text",
	Long: `Runs a full-text search over the subtitle cues stored on the backend.
The query is taken from the positional arguments (joined by spaces) or --query.

Examples:
  vlcli search hello there
  vlcli search --query "rock & roll"`,
	RunE: runSearch,
}

func init() {
	RootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "Search query")
}

func runSearch(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr())

	query := searchQuery
	if len(args) > 0 {
		query = strings.Join(args, " ")
	}
	if strings.TrimSpace(query) == "" {
		return errors.New("a search query is required (positional arguments or --query)")
	}

	client, err := newClient(logger)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"query": query,
	}).Debug("Searching subtitles...")

	results, err := client.SearchSubtitles(cmd.Context(), query)
	if err != nil {
		logger.WithError(err).Error("Subtitle search failed")
		return fmt.Errorf("subtitle search failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "No subtitles found.")
		return nil
	}

	fmt.Fprintf(out, "Found %d subtitles:\n", len(results))
	for _, sub := range results {
		fmt.Fprintf(out, "[%s -> %s] %s (video %s, #%d)\n",
			formatOffset(sub.Start()),
			formatOffset(sub.End()),
			sub.Text,
			sub.VideoID,
			sub.Sequence,
		)
	}
	return nil
}

// formatOffset renders d as HH:MM:SS.mmm.
func formatOffset(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	ms := d / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}
