package bedcore

import (
	"context"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/florisys/field.report/internal/field"
	"github.com/florisys/field.report/internal/geo"
	"github.com/florisys/field.report/internal/monitoring"
	"github.com/florisys/field.report/internal/raster"
)

// Controller implements the editing state machine. All exported methods are
// safe for concurrent use; remote calls run outside the lock and their
// completions are revalidated against the scene epoch, so a completion from
// a superseded plot is never applied.
type Controller struct {
	store   Store
	draw    Draw
	labels  LabelHost
	onState func(State)

	mu sync.Mutex

	// epoch is bumped by every scene change; async completions captured
	// under an older epoch are discarded.
	epoch int
	// session is bumped whenever an add/edit session starts or ends, so a
	// save completing after a cancel only applies its durable effects.
	session int

	plotID   string
	projCode string
	ready    bool

	features []*Feature          // committed layer, render order
	index    map[string]*Feature // by bed id

	mode        Mode
	pending     *Pending
	selected    *field.Bed
	editingName string
	busy        bool
}

// New builds a controller around its collaborators. onState may be nil when
// no shell is attached (tests, tooling).
func New(store Store, draw Draw, labels LabelHost, onState func(State)) *Controller {
	return &Controller{
		store:   store,
		draw:    draw,
		labels:  labels,
		onState: onState,
		index:   make(map[string]*Feature),
		mode:    ModeIdle,
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	s := State{
		PlotID:      c.plotID,
		Mode:        c.mode,
		EditingName: c.editingName,
		Busy:        c.busy,
	}
	if c.pending != nil {
		p := *c.pending
		p.Ring = append(orb.Ring(nil), c.pending.Ring...)
		s.Pending = &p
	}
	if c.selected != nil {
		b := *c.selected
		s.Selected = &b
	}
	s.Features = make([]Feature, len(c.features))
	for i, f := range c.features {
		s.Features[i] = Feature{ID: f.ID, Name: f.Name, Ring: append(orb.Ring(nil), f.Ring...)}
	}
	return s
}

func (c *Controller) notify() {
	if c.onState == nil {
		return
	}
	c.onState(c.State())
}

// SetScene switches the controller to a new plot/raster combination. The
// reset (layers, overlays, draw interaction, pending state, selection) runs
// to completion before any data load for the new plot starts. When the plot
// is present and the raster binding ready, the committed layer is populated
// from the remote store; a load that resolves after a later scene change is
// dropped.
func (c *Controller) SetScene(ctx context.Context, plot *field.Plot, b raster.Binding) error {
	ready := b != nil && b.Ready()
	var projCode string
	if ready {
		projCode = b.ProjectionCode()
	}

	c.mu.Lock()
	c.epoch++
	c.session++
	epoch := c.epoch
	c.resetLocked()

	active := plot != nil && ready && projCode != ""
	if active {
		c.plotID = plot.ID
		c.projCode = projCode
		c.ready = true
	}
	plotID := c.plotID
	c.mu.Unlock()

	c.draw.Cancel()
	c.labels.SetLabels(nil)
	c.notify()

	if !active {
		return nil
	}

	beds, err := c.store.ListBeds(ctx, plotID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.epoch != epoch {
		c.mu.Unlock()
		return nil // superseded by a later scene change
	}
	for i := range beds {
		ring := beds[i].Ring()
		if len(ring) < 4 {
			continue
		}
		working, werr := geo.RingToWorking(ring, projCode)
		if werr != nil {
			monitoring.Logf("bedcore: skip bed %s: %v", beds[i].ID, werr)
			continue
		}
		c.addFeatureLocked(&Feature{ID: beds[i].ID, Name: beds[i].Name, Ring: working})
	}
	labels := c.labelsLocked()
	c.mu.Unlock()

	c.labels.SetLabels(labels)
	c.notify()
	return nil
}

// resetLocked clears everything tied to the previous scene. No state leaks
// across plots.
func (c *Controller) resetLocked() {
	c.plotID = ""
	c.projCode = ""
	c.ready = false
	c.features = nil
	c.index = make(map[string]*Feature)
	c.mode = ModeIdle
	c.pending = nil
	c.selected = nil
	c.editingName = ""
	c.busy = false
}

func (c *Controller) addFeatureLocked(f *Feature) {
	c.features = append(c.features, f)
	c.index[f.ID] = f
}

func (c *Controller) removeFeatureLocked(id string) {
	delete(c.index, id)
	for i, f := range c.features {
		if f.ID == id {
			c.features = append(c.features[:i], c.features[i+1:]...)
			return
		}
	}
}

// labelsLocked derives the label descriptors for the committed layer. The
// position is the ring centroid; label positions depend on the working
// projection, so the set is rebuilt on every feature or scene change.
func (c *Controller) labelsLocked() []Label {
	labels := make([]Label, 0, len(c.features))
	for _, f := range c.features {
		pos, _ := planar.CentroidArea(f.Ring)
		labels = append(labels, Label{BedID: f.ID, Text: f.Name, Position: pos})
	}
	return labels
}

// Click performs an idle-mode hit test against the committed layer at a
// point in working coordinates. The first matching feature in render order
// wins and its detail view is opened. Clicks while adding or editing are
// ignored (drawing takes input priority). Returns whether a feature was
// hit.
func (c *Controller) Click(ctx context.Context, at orb.Point) (bool, error) {
	c.mu.Lock()
	if c.mode != ModeIdle {
		c.mu.Unlock()
		return false, nil
	}
	var hit string
	for _, f := range c.features {
		if planar.RingContains(f.Ring, at) {
			hit = f.ID
			break
		}
	}
	c.mu.Unlock()

	if hit == "" {
		return false, nil
	}
	return true, c.Select(ctx, hit)
}

// Select opens a bed's detail view. The full record (with spatial-map
// attachments) is fetched from the remote store; when that fails the
// selection degrades to a minimal view built from the local feature.
// Selection is only permitted while idle.
func (c *Controller) Select(ctx context.Context, bedID string) error {
	c.mu.Lock()
	if c.mode != ModeIdle {
		c.mu.Unlock()
		return nil
	}
	f, ok := c.index[bedID]
	if !ok {
		c.mu.Unlock()
		return ErrUnknownBed
	}
	epoch := c.epoch
	plotID := c.plotID
	local := c.localBedLocked(f)
	c.mu.Unlock()

	full, err := c.store.GetBed(ctx, plotID, bedID)

	c.mu.Lock()
	if c.epoch != epoch || c.mode != ModeIdle {
		c.mu.Unlock()
		return nil
	}
	if err != nil || full == nil {
		monitoring.Logf("bedcore: detail fetch for bed %s failed, using local view: %v", bedID, err)
		c.selected = local
	} else {
		field.SortSpatialMaps(full.SpatialMaps)
		c.selected = full
	}
	c.mu.Unlock()
	c.notify()
	return nil
}

// ClearSelection closes the detail view.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	c.selected = nil
	c.mu.Unlock()
	c.notify()
}

// localBedLocked builds the degraded detail view from the committed
// feature alone: id, name and the closed geographic ring.
func (c *Controller) localBedLocked(f *Feature) *field.Bed {
	ring, err := geo.RingToGeographic(geo.CloseRing(f.Ring), c.projCode)
	if err != nil {
		ring = nil
	}
	return &field.Bed{ID: f.ID, Name: f.Name, Coordinates: orb.Polygon{ring}}
}
