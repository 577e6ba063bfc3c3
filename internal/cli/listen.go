//go:build linux

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BrandonKowalski/navshell/pkg/navshell"
	"github.com/BrandonKowalski/navshell/pkg/navshell/gesture/touchdev"
	"github.com/BrandonKowalski/navshell/pkg/navshell/router"
	"github.com/BrandonKowalski/navshell/pkg/navshell/screens"
	"github.com/spf13/cobra"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Turn edge swipes on a touchscreen into back navigation",
	Long: `Read a Linux evdev touchscreen and feed it to the edge-swipe recogniser.

The shell starts on --start with --depth copies of history below it, so
every committed swipe pops one level. Press Ctrl+C to stop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		device, _ := cmd.Flags().GetString("device")
		if device == "" {
			device = cfg.Touch.Device
		}
		if device == "" {
			return errors.New("listen: no touch device; use --device or [touch].device")
		}

		role, _ := cmd.Flags().GetString("role")
		start, _ := cmd.Flags().GetString("start")
		depth, _ := cmd.Flags().GetInt("depth")

		shell, err := newShell(cfg, role, screens.HomeFor(screens.ParseRole(role)).String())
		if err != nil {
			return err
		}
		defer shell.Close()

		target, err := screens.Parse(start)
		if err != nil {
			return err
		}
		for i := 0; i < depth; i++ {
			shell.Navigate(screens.Profile)
			shell.Navigate(target)
		}
		shell.TakeTransition()

		out := cmd.OutOrStdout()
		shell.OnTransition(func(t router.Transition) {
			fmt.Fprintf(out, "%s -> %s (%s)\n", t.From, t.To, t.Direction)
		})

		axis := touchdev.Axis{Min: cfg.Touch.MinX, Max: cfg.Touch.MaxX, Width: cfg.Gesture.ViewportWidth}
		dev, err := touchdev.Open(device, axis, shell)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		navshell.GetLogger().Info("Listening for edge swipes", "device", device, "session", shell.ID())
		if err := shell.Start(); err != nil {
			return err
		}
		go animate(ctx, shell)

		if err := dev.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

// animate drives snap-back animations at roughly 60 frames per second.
func animate(ctx context.Context, shell *navshell.Shell) {
	const frame = 16 * time.Millisecond
	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			shell.Tick(frame)
		}
	}
}

func init() {
	listenCmd.Flags().String("device", "", "evdev node, e.g. /dev/input/event1")
	listenCmd.Flags().String("role", "consumer", "user role: consumer or vendor")
	listenCmd.Flags().String("start", "chat", "screen to start swiping back from")
	listenCmd.Flags().Int("depth", 3, "history entries below the start screen")
	rootCmd.AddCommand(listenCmd)
}
