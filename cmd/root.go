package cmd

import (
	"os"

	"github.com/koki-develop/img2txt/internal/ui"
	"github.com/spf13/cobra"
)

var (
	flagOutDir  string
	flagLogFile string
	flagDebug   bool
)

var rootCmd = &cobra.Command{
	Use:   "img2txt [image]",
	Short: "Convert images to ASCII art text files",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, closeLog, err := newFileLogger(flagLogFile, flagDebug)
		if err != nil {
			return err
		}
		defer closeLog()

		opt := &ui.Option{OutDir: flagOutDir, Logger: logger}
		if len(args) > 0 {
			opt.Path = args[0]
		}
		if err := ui.Start(opt); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagOutDir, "out-dir", "o", ".", "directory the text file is written to")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
