package cmd

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	vocabulary "github.com/dewarrum/vocabulary-client"
	"github.com/dewarrum/vocabulary-client/pkg/core/metadata"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var uploadVideoName string

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload <video> <subtitles>",
	Short: "Upload a video with its subtitles (admin only)",
	Long: `Uploads a video file together with its subtitles file. The session given
by --cookie must belong to a user with the Admin role.

The video name defaults to what the video file name says when parsed as a
release name, e.g. "Some.Movie.2019.1080p.BluRay.x264-GRP.mkv" becomes
"Some Movie (2019)". Use --name to set it explicitly.`,
	Args: cobra.ExactArgs(2),
	RunE: runUploadCmd,
}

func init() {
	RootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().StringVarP(&uploadVideoName, "name", "n", "", "Video name (default: parsed from the video file name)")
}

// runUploadCmd initializes dependencies and calls runUpload
func runUploadCmd(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr())

	client, err := newClient(logger)
	if err != nil {
		return err
	}

	return runUpload(cmd.Context(), cmd.OutOrStdout(), client, args[0], args[1], uploadVideoName, logger)
}

// runUpload opens both files and uploads them.
func runUpload(ctx context.Context, out io.Writer, client VocabularyClient, videoPath, subtitlesPath, name string, logger *logrus.Logger) error {
	name = strings.TrimSpace(name)
	if name == "" {
		name = metadata.VideoName(videoPath)
		logger.WithFields(logrus.Fields{
			"file": filepath.Base(videoPath),
			"name": name,
		}).Debug("Video name derived from file name")
	}
	if name == "" {
		return fmt.Errorf("cannot derive a video name from %s, use --name", videoPath)
	}

	video, err := openUploadFile(videoPath)
	if err != nil {
		return err
	}
	defer video.Close()

	subtitles, err := openUploadFile(subtitlesPath)
	if err != nil {
		return err
	}
	defer subtitles.Close()

	logger.Infof("Uploading %s as %q", filepath.Base(videoPath), name)

	resp, err := client.UploadVideo(ctx, vocabulary.UploadVideoParams{
		VideoName: name,
		Video:     uploadFile(video, videoPath),
		Subtitles: uploadFile(subtitles, subtitlesPath),
	})
	if err != nil {
		logger.WithError(err).Error("Upload failed")
		return fmt.Errorf("upload failed: %w", err)
	}

	fmt.Fprintf(out, "Uploaded %q as video %s\n", name, resp.VideoID)
	return nil
}

func openUploadFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return f, nil
}

func uploadFile(r io.Reader, path string) vocabulary.UploadFile {
	return vocabulary.UploadFile{
		FileName:    filepath.Base(path),
		ContentType: contentTypeFor(path),
		Reader:      r,
	}
}

// contentTypeFor guesses from the extension; empty lets the transport default to application/octet-stream.
func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt":
		return "application/x-subrip"
	case ".vtt":
		return "text/vtt"
	}
	return mime.TypeByExtension(filepath.Ext(path))
}
