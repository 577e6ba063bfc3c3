package cli

import (
	"fmt"
	"os"

	"github.com/BrandonKowalski/navshell/pkg/navshell"
	"github.com/BrandonKowalski/navshell/pkg/navshell/config"
	"github.com/BrandonKowalski/navshell/pkg/navshell/loader"
	"github.com/BrandonKowalski/navshell/pkg/navshell/preload"
	"github.com/BrandonKowalski/navshell/pkg/navshell/screens"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay a navigation script",
	Long: `Replay a navigation script against a fresh shell.

Each step prints the active screen and the transition it produced. When
[preload].bundle_url is configured, screen bundles are fetched from it;
otherwise every screen loads a placeholder view.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("script")
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		script, err := ParseScript(string(raw))
		if err != nil {
			return err
		}

		shell, err := newShell(cfg, script.Role, script.Start)
		if err != nil {
			return err
		}

		log := navshell.GetLogger().With("session", shell.ID())
		log.Info("Replaying script", "path", path, "steps", len(script.Steps))

		if err := shell.Start(); err != nil {
			return err
		}
		Replay(cmd.OutOrStdout(), shell, script)
		shell.Close()

		stats := shell.CacheStats()
		fmt.Fprintf(cmd.OutOrStdout(), "cache\tentries=%d loads=%d failed=%d\n", stats.Entries, stats.Loads, stats.Failed)
		log.Info("Script finished", "entries", stats.Entries, "failed", stats.Failed)
		return nil
	},
}

// newShell builds a shell for the CLI with the configured loader table.
func newShell(cfg config.Config, role, start string) (*navshell.Shell, error) {
	startID, err := screens.Parse(start)
	if err != nil {
		return nil, err
	}

	loaders, err := loaderTable(cfg)
	if err != nil {
		return nil, err
	}

	r := screens.ParseRole(role)
	return navshell.New(navshell.Options{
		Config:  &cfg,
		Loaders: loaders,
		Role:    func() screens.Role { return r },
		Start:   startID,
	})
}

func loaderTable(cfg config.Config) (preload.Loaders, error) {
	if cfg.Preload.BundleURL == "" {
		return loader.Placeholder(), nil
	}
	l, err := loader.NewHTTP(cfg.Preload.BundleURL, nil)
	if err != nil {
		return nil, err
	}
	return l.Table(), nil
}

func init() {
	runCmd.Flags().String("script", "", "TOML navigation script")
	_ = runCmd.MarkFlagRequired("script")
	rootCmd.AddCommand(runCmd)
}
