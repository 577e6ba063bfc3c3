package cli

import (
	"fmt"

	"github.com/BrandonKowalski/navshell/pkg/navshell/preload"
	"github.com/BrandonKowalski/navshell/pkg/navshell/screens"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <path>...",
	Short: "Print the screen each URL path resolves to",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, path := range args {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", path, screens.Resolve(path))
		}
	},
}

var policyCmd = &cobra.Command{
	Use:   "policy <screen>",
	Short: "Print the screens preloaded after visiting a screen",
	Long: `Print the screens preloaded after visiting a screen.

With --critical, print the screens preloaded shortly after startup instead.`,
	Args: cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		critical, _ := cmd.Flags().GetBool("critical")
		if critical {
			printScreens(cmd, preload.CriticalTargets())
			return nil
		}
		if len(args) == 0 {
			return fmt.Errorf("policy: screen name required")
		}

		screen, err := screens.Parse(args[0])
		if err != nil {
			return err
		}
		roleName, _ := cmd.Flags().GetString("role")
		printScreens(cmd, preload.TargetsFor(screen, screens.ParseRole(roleName)))
		return nil
	},
}

func printScreens(cmd *cobra.Command, ids []screens.ID) {
	for _, id := range ids {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
}

func init() {
	policyCmd.Flags().String("role", "", "user role: consumer or vendor")
	policyCmd.Flags().Bool("critical", false, "print the startup preload set")
	rootCmd.AddCommand(resolveCmd, policyCmd)
}
