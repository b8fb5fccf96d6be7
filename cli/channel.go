package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andkntr/youtube-comments-extract/client"
	"github.com/andkntr/youtube-comments-extract/resolve"
	"github.com/andkntr/youtube-comments-extract/stats"
)

var channelMaxVideos int

var channelCmd = &cobra.Command{
	Use:   "channel <channel-url-handle-or-id>",
	Short: "Summarize a channel and its recent-video statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RequireAPIKey(); err != nil {
			return err
		}

		ctx := cmd.Context()

		dataClient, err := client.NewYouTubeDataClient(cfg.APIKey, cfg.RequestTimeout)
		if err != nil {
			return err
		}
		if err := dataClient.Connect(ctx); err != nil {
			return userError(err)
		}
		defer dataClient.Disconnect(ctx)

		resolver := resolve.NewResolver(dataClient)
		channelID, err := resolver.ResolveChannel(ctx, args[0])
		if err != nil {
			return userError(err)
		}

		maxVideos := channelMaxVideos
		if maxVideos == 0 {
			maxVideos = cfg.MaxVideos
		}

		aggregator := stats.NewAggregator(dataClient)
		report, err := aggregator.Aggregate(ctx, channelID, maxVideos)
		if err != nil {
			return userError(err)
		}

		out := cmd.OutOrStdout()
		s := report.Summary
		fmt.Fprintf(out, "%s (%s)\n", s.Title, s.ID)
		if s.Country != "" {
			fmt.Fprintf(out, "Country:      %s\n", s.Country)
		}
		if !s.CreatedAt.IsZero() {
			fmt.Fprintf(out, "Created:      %s\n", s.CreatedAt.Format("2006-01-02"))
		}
		fmt.Fprintf(out, "Subscribers:  %s\n", stats.FormatCount(s.SubscriberCount))
		fmt.Fprintf(out, "Total views:  %s\n", stats.FormatCount(s.ViewCount))
		fmt.Fprintf(out, "Videos:       %s\n", stats.FormatCount(s.VideoCount))
		fmt.Fprintf(out, "\nRecent videos (%d):\n", len(report.Videos))

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "PUBLISHED\tVIEWS\tLIKES\tCOMMENTS\tTITLE")
		for _, v := range report.Videos {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				v.PublishedAt.Format("2006-01-02"),
				stats.FormatCount(v.ViewCount),
				stats.FormatCount(v.LikeCount),
				stats.FormatCount(v.CommentCount),
				v.Title,
			)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		fmt.Fprintf(out, "\nMean views:    %s\n", report.MeanViewsDisplay())
		fmt.Fprintf(out, "Median views:  %s\n", report.MedianViewsDisplay())
		fmt.Fprintf(out, "Like ratio:    %s\n", report.LikeRatioDisplay())
		return nil
	},
}

func init() {
	channelCmd.Flags().IntVar(&channelMaxVideos, "max-videos", 0, "recent videos to aggregate, up to 50 (default from config)")
}
