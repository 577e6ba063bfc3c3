package preload

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BrandonKowalski/navshell/pkg/navshell/screens"
)

// LoadFunc loads the code behind one screen and returns its renderable
// default view. The returned value is opaque to navshell.
type LoadFunc func(ctx context.Context) (any, error)

// Loaders is the closed lookup table from screen to loader.
type Loaders map[screens.ID]LoadFunc

// Validate reports every defined screen that has no loader, and every key
// that is not a defined screen.
func (l Loaders) Validate() error {
	var missing, unknown []string
	for _, id := range screens.All() {
		if l[id] == nil {
			missing = append(missing, id.String())
		}
	}
	for id := range l {
		if !id.Valid() {
			unknown = append(unknown, id.String())
		}
	}

	if len(missing) == 0 && len(unknown) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("preload: incomplete loader table")
	if len(missing) > 0 {
		fmt.Fprintf(&b, "; missing: %s", strings.Join(missing, ", "))
	}
	if len(unknown) > 0 {
		fmt.Fprintf(&b, "; unknown: %s", strings.Join(unknown, ", "))
	}
	return errors.New(b.String())
}

// LoaderFor builds a complete table by calling fn for every defined screen.
func LoaderFor(fn func(id screens.ID) LoadFunc) Loaders {
	out := make(Loaders, screens.Count())
	for _, id := range screens.All() {
		out[id] = fn(id)
	}
	return out
}
