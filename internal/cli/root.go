package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/diatonic/internal/infra/fsworkspace"
	"github.com/aalvaropc/diatonic/internal/infra/logger"
	"github.com/aalvaropc/diatonic/internal/infra/workspacefinder"
	"github.com/aalvaropc/diatonic/internal/interval"
	"github.com/aalvaropc/diatonic/internal/ui/tui"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	var cleanup func() error

	cmd := &cobra.Command{
		Use:          "diatonic",
		Short:        "diatonic: construct and identify intervals between note names",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			cleanup = setupLogging(debug)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if cleanup != nil {
				_ = cleanup()
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, _, err := loadSettings("")
			if err != nil {
				return err
			}

			deps := tui.Deps{
				WorkspaceLocator:     workspacefinder.NewFinder(),
				WorkspaceInitializer: fsworkspace.NewInitializer(),
				Engine:               interval.Default(),
				DefaultDirection:     cfg.Defaults.Direction,
				Logger:               logger.L(),
				Debug:                debug,
			}

			return tui.Run(deps)
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .diatonic/logs/diatonic.log")

	cmd.AddCommand(
		constructCmd(),
		identifyCmd(),
		intervalsCmd(),
		sheetsCmd(),
		sheetCmd(),
		initCmd(),
		versionCmd(),
	)
	return cmd
}

// setupLogging logs into the enclosing workspace, if any. Outside a workspace
// the logger keeps discarding.
func setupLogging(debug bool) func() error {
	wd, err := os.Getwd()
	if err != nil {
		return nil
	}
	wd, _ = filepath.Abs(wd)

	root, err := workspacefinder.NewFinder().FindRoot(wd)
	if err != nil || root == "" {
		return nil
	}

	cleanup, _ := logger.Setup(logger.Config{
		Root:  root,
		Debug: debug,
	})
	return cleanup
}
