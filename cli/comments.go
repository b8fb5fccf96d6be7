package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/andkntr/youtube-comments-extract/client"
	"github.com/andkntr/youtube-comments-extract/comments"
	"github.com/andkntr/youtube-comments-extract/resolve"
)

var (
	commentsMaxPages int
	commentsOutDir   string
)

var commentsCmd = &cobra.Command{
	Use:   "comments <video-url-or-id>",
	Short: "Collect a video's comments (replies included) and export them as CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RequireAPIKey(); err != nil {
			return err
		}

		ctx := cmd.Context()

		resolver := resolve.NewResolver(nil)
		videoID, err := resolver.ResolveVideo(args[0])
		if err != nil {
			return userError(err)
		}

		dataClient, err := client.NewYouTubeDataClient(cfg.APIKey, cfg.RequestTimeout)
		if err != nil {
			return err
		}
		if err := dataClient.Connect(ctx); err != nil {
			return userError(err)
		}
		defer dataClient.Disconnect(ctx)

		maxPages := commentsMaxPages
		if maxPages == 0 {
			maxPages = cfg.MaxCommentPages
		}

		collector := comments.NewCollector(dataClient)
		records, err := collector.Collect(ctx, videoID, maxPages)
		if err != nil {
			return userError(err)
		}

		channelTitle, videoTitle := comments.VideoDetails(ctx, dataClient, videoID)
		filename := ExportFilename(channelTitle, videoTitle)

		outPath := filepath.Join(commentsOutDir, filename)
		out, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer out.Close()

		if err := WriteCommentsCSV(out, records); err != nil {
			return err
		}

		log.Info().Str("file", outPath).Int("comment_count", len(records)).Msg("Comments exported")
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d comments to %s\n", len(records), outPath)
		return nil
	},
}

func init() {
	commentsCmd.Flags().IntVar(&commentsMaxPages, "max-pages", 0, "maximum comment pages to fetch (default from config)")
	commentsCmd.Flags().StringVar(&commentsOutDir, "out", ".", "directory for the exported CSV")
}
