package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/koki-develop/img2txt/internal/dimension"
	"github.com/koki-develop/img2txt/internal/job"
	"github.com/spf13/cobra"
)

var (
	flagWidth  int
	flagHeight int
)

var convertCmd = &cobra.Command{
	Use:   "convert <image>",
	Short: "Convert an image without the interactive prompt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagWidth < 0 || flagHeight < 0 {
			return fmt.Errorf("%w: width and height must be positive", dimension.ErrInvalidDimension)
		}
		logger := newLogger(cmd.ErrOrStderr(), flagDebug, color.NoColor)
		return runConvert(cmd.OutOrStdout(), args[0], dimension.Request{Width: flagWidth, Height: flagHeight}, &job.Option{OutDir: flagOutDir, Logger: logger})
	},
}

func init() {
	convertCmd.Flags().IntVarP(&flagWidth, "width", "W", 0, "output width in characters (default: image width)")
	convertCmd.Flags().IntVarP(&flagHeight, "height", "H", 0, "output height in lines (default: image height)")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(w io.Writer, path string, req dimension.Request, opt *job.Option) error {
	j, ev := job.Accept(path, opt)
	if j == nil {
		return ev.(job.RejectedImage).Err
	}

	ok := color.New(color.FgGreen)
	last := -1
	return j.Run(req, func(ev job.Event) {
		switch ev := ev.(type) {
		case job.ProgressUpdate:
			pct := ev.Percent()
			if pct != last {
				fmt.Fprintf(w, "\rProcessing image... (%d%%)", pct)
				last = pct
			}
			if ev.Final {
				fmt.Fprintln(w)
			}
		case job.ConversionComplete:
			ok.Fprintf(w, "ASCII art successfully written to %s!\n", ev.OutputPath)
		case job.ConversionFailed:
			fmt.Fprintln(w)
		}
	})
}
