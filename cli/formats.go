package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andkntr/youtube-comments-extract/media"
)

var formatsCmd = &cobra.Command{
	Use:   "formats <video-url>",
	Short: "List a video's downloadable encodings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runner := &media.ExecRunner{
			Path:    cfg.YtdlpPath,
			Timeout: cfg.YtdlpTimeout,
		}

		catalog := media.NewCatalog(runner)
		formats, err := catalog.ListFormats(cmd.Context(), args[0])
		if err != nil {
			return userError(err)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CODE\tTYPE\tRESOLUTION\tSIZE")
		for _, f := range formats {
			size := "unknown"
			if f.SizeMB != nil {
				size = fmt.Sprintf("%.2f MB", *f.SizeMB)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.Code, f.Kind, f.Resolution, size)
		}
		return tw.Flush()
	},
}
