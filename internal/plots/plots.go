// Package plots is the client-side catalog of survey plots. It mirrors the
// remote plot list, tracks at most one selected plot and keeps that
// selection coherent across reloads and removals.
package plots

import (
	"context"
	"io"
	"sync"

	"github.com/florisys/field.report/internal/field"
)

// Store is the remote plot API the catalog talks to. *remote.Client
// satisfies it.
type Store interface {
	ListPlots(ctx context.Context) ([]field.Plot, error)
	AddPlot(ctx context.Context, filename string, r io.Reader) (*field.Plot, error)
	DeletePlot(ctx context.Context, plotID string) error
}

// State is the snapshot handed to the shell after every change.
type State struct {
	Plots     []field.Plot
	Selected  *field.Plot
	Loading   bool
	Uploading bool
}

// Catalog holds the plot list and selection. All methods are safe for
// concurrent use.
type Catalog struct {
	store   Store
	onState func(State)

	mu         sync.Mutex
	plots      []field.Plot
	selectedID string
	loading    bool
	uploading  bool
}

// New builds a catalog. onState may be nil.
func New(store Store, onState func(State)) *Catalog {
	return &Catalog{store: store, onState: onState}
}

// State returns a copy of the current state.
func (c *Catalog) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Catalog) stateLocked() State {
	s := State{
		Plots:     append([]field.Plot(nil), c.plots...),
		Loading:   c.loading,
		Uploading: c.uploading,
	}
	if p := c.findLocked(c.selectedID); p != nil {
		copied := *p
		s.Selected = &copied
	}
	return s
}

func (c *Catalog) findLocked(id string) *field.Plot {
	if id == "" {
		return nil
	}
	for i := range c.plots {
		if c.plots[i].ID == id {
			return &c.plots[i]
		}
	}
	return nil
}

func (c *Catalog) notify() {
	if c.onState == nil {
		return
	}
	c.onState(c.State())
}

// Load refreshes the catalog from the remote store. A selection that still
// exists in the fresh list is preserved; one that does not is cleared.
func (c *Catalog) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()
	c.notify()

	fetched, err := c.store.ListPlots(ctx)

	c.mu.Lock()
	c.loading = false
	if err != nil {
		c.mu.Unlock()
		c.notify()
		return err
	}
	c.plots = fetched
	if c.findLocked(c.selectedID) == nil {
		c.selectedID = ""
	}
	c.mu.Unlock()
	c.notify()
	return nil
}

// Select makes the given plot current. An empty id clears the selection;
// an id not present in the catalog is rejected.
func (c *Catalog) Select(id string) error {
	c.mu.Lock()
	if id != "" && c.findLocked(id) == nil {
		c.mu.Unlock()
		return ErrUnknownPlot
	}
	c.selectedID = id
	c.mu.Unlock()
	c.notify()
	return nil
}

// Add uploads a new plot image and, on success, prepends the created plot
// to the catalog and selects it.
func (c *Catalog) Add(ctx context.Context, filename string, r io.Reader) (*field.Plot, error) {
	c.mu.Lock()
	c.uploading = true
	c.mu.Unlock()
	c.notify()

	created, err := c.store.AddPlot(ctx, filename, r)

	c.mu.Lock()
	c.uploading = false
	if err != nil {
		c.mu.Unlock()
		c.notify()
		return nil, err
	}
	c.plots = append([]field.Plot{*created}, c.plots...)
	c.selectedID = created.ID
	c.mu.Unlock()
	c.notify()
	return created, nil
}

// Remove deletes a plot remotely, then drops it from the catalog. The
// selection is cleared only when it referenced the removed plot.
func (c *Catalog) Remove(ctx context.Context, id string) error {
	if err := c.store.DeletePlot(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	for i := range c.plots {
		if c.plots[i].ID == id {
			c.plots = append(c.plots[:i], c.plots[i+1:]...)
			break
		}
	}
	if c.selectedID == id {
		c.selectedID = ""
	}
	c.mu.Unlock()
	c.notify()
	return nil
}
