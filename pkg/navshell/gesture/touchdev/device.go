//go:build linux

package touchdev

import (
	"context"
	"fmt"
	"sync"

	"github.com/BrandonKowalski/navshell/pkg/navshell/gesture"
	"github.com/BrandonKowalski/navshell/pkg/navshell/internal"
	"github.com/holoplot/go-evdev"
)

// Device is an open touchscreen bound to a gesture machine.
type Device struct {
	path    string
	dev     *evdev.InputDevice
	decoder *Decoder
	machine gesture.Pointer

	closeOnce sync.Once
	closeErr  error
}

// Open opens the evdev node at path.
func Open(path string, axis Axis, machine gesture.Pointer) (*Device, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("touchdev: open %s: %w", path, err)
	}

	machine.SetViewportWidth(axis.Width)
	return &Device{
		path:    path,
		dev:     dev,
		decoder: NewDecoder(axis),
		machine: machine,
	}, nil
}

// Run reads events until ctx is done or the device fails. A read failure
// while a swipe is tracked cancels that swipe. Run closes the device on
// return.
func (d *Device) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { d.Close() })
	defer stop()
	defer d.Close()

	log := internal.GetInternalLogger().With("device", d.path)
	log.Debug("Reading touch events")

	for {
		ev, err := d.dev.ReadOne()
		if err != nil {
			d.machine.PointerLost()
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Error("Touch device read failed", "error", err)
			return fmt.Errorf("touchdev: read %s: %w", d.path, err)
		}

		if action, ok := d.decoder.Feed(*ev); ok {
			Apply(d.machine, action)
		}
	}
}

// Close releases the device. It is safe to call more than once.
func (d *Device) Close() error {
	d.closeOnce.Do(func() {
		d.closeErr = d.dev.Close()
	})
	return d.closeErr
}
