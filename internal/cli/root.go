package cli

import (
	"os"

	"github.com/BrandonKowalski/navshell/pkg/navshell"
	"github.com/BrandonKowalski/navshell/pkg/navshell/config"
	"github.com/BrandonKowalski/navshell/pkg/navshell/constants"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "navsim",
	Short: "navsim - drive the navshell navigation core without a UI",
	Long: `navsim exercises the navigation and preload core from the command line.

It replays navigation scripts, resolves deep links, prints the preload
policy for a screen and, on Linux, turns a real touchscreen into edge
swipes.

Example:
  navsim run --script testdata/consumer.toml
  navsim resolve /quotes/detail/12`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

// Execute runs the root command
func Execute() error {
	defer navshell.Shutdown()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $"+constants.ConfigPathEnvVar+" or navshell.toml)")
	rootCmd.PersistentFlags().String("log-level", "", "override the configured log level")
}

func initConfig(cmd *cobra.Command) error {
	path := cfgFile
	if path == "" {
		path = os.Getenv(constants.ConfigPathEnvVar)
	}
	if path == "" {
		path = "navshell.toml"
	}

	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		loaded.Log.Level = level
	}

	cfg = loaded
	navshell.Init(cfg)
	return nil
}
