package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/andkntr/youtube-comments-extract/media"
	"github.com/andkntr/youtube-comments-extract/model"
)

var (
	downloadFormatCode string
	downloadAudioOnly  bool
	downloadOutDir     string
)

var downloadCmd = &cobra.Command{
	Use:   "download <video-url>",
	Short: "Download one encoding of a video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runner := &media.ExecRunner{
			Path:    cfg.YtdlpPath,
			Timeout: cfg.YtdlpTimeout,
		}

		kind := model.KindAudioVideo
		if downloadAudioOnly {
			kind = model.KindAudioOnly
		}

		orchestrator := media.NewOrchestrator(runner)
		artifact, err := orchestrator.Materialize(cmd.Context(), args[0], downloadFormatCode, kind)
		if err != nil {
			return userError(err)
		}
		defer artifact.Discard()

		name := SanitizeFilename(artifact.Title) + filepath.Ext(artifact.Path)
		destPath := filepath.Join(downloadOutDir, name)
		if err := copyFile(artifact.Path, destPath); err != nil {
			return fmt.Errorf("deliver artifact: %w", err)
		}

		log.Info().Str("file", destPath).Msg("Download delivered")
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", destPath)
		return nil
	},
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func init() {
	downloadCmd.Flags().StringVar(&downloadFormatCode, "format", "", "format code from the formats command (required)")
	downloadCmd.Flags().BoolVar(&downloadAudioOnly, "audio", false, "treat the chosen format as audio-only")
	downloadCmd.Flags().StringVar(&downloadOutDir, "out", ".", "directory for the downloaded file")
	_ = downloadCmd.MarkFlagRequired("format")
}
