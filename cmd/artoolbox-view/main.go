package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/artoolbox/internal/app"
	"github.com/philipparndt/artoolbox/internal/config"
	"github.com/philipparndt/artoolbox/internal/logging"
	"github.com/philipparndt/artoolbox/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	outputPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "artoolbox-view [reference.stl]",
	Short: "Draw strokes and measure on the ground plane",
	Long: `artoolbox-view opens a window for drawing tube strokes and placing measurement
chains. An optional STL file is shown as a reference and reloaded when it
changes on disk. Press S to save the drawings.`,
	Version:      version.GetFullVersion(),
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Log.Level = "debug"
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		opts := app.Options{
			Output: outputPath,
			Config: cfg,
			Logger: logger,
		}
		if len(args) == 1 {
			opts.Reference = args[0]
		}
		return app.Run(opts)
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", app.DefaultOutput, "File the drawings are saved to")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (debug logging)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
