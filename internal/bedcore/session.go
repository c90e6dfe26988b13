package bedcore

import (
	"context"

	"github.com/paulmach/orb"

	"github.com/florisys/field.report/internal/field"
	"github.com/florisys/field.report/internal/geo"
	"github.com/florisys/field.report/internal/monitoring"
	"github.com/florisys/field.report/internal/remote"
)

// StartAdd opens an add session: clears any selection and arms a fresh
// four-point draw on the scratch layer. Starting a new session implicitly
// discards any prior pending ring. Fails when no plot is active or the
// raster has not supplied a projection yet.
func (c *Controller) StartAdd() error {
	c.mu.Lock()
	if err := c.readyErrLocked(); err != nil {
		c.mu.Unlock()
		monitoring.Logf("bedcore: start add ignored: %v", err)
		return err
	}
	c.session++
	session := c.session
	epoch := c.epoch
	code := c.projCode
	c.mode = ModeAdding
	c.pending = nil
	c.selected = nil
	c.editingName = ""
	c.mu.Unlock()

	c.draw.Cancel()
	c.draw.Begin(func(ring orb.Ring) {
		c.drawComplete(epoch, session, code, Pending{Kind: PendingAdd}, ring)
	})
	c.notify()
	return nil
}

// CancelAdd discards the scratch geometry and returns to idle. It is
// synchronous and always succeeds; it never waits on network I/O.
func (c *Controller) CancelAdd() {
	c.cancelSession(ModeAdding)
}

// StartEdit opens an edit session for a committed bed: a fresh four-point
// draw replaces its geometry on save, while the old geometry stays
// untouched until then.
func (c *Controller) StartEdit(bedID string) error {
	c.mu.Lock()
	if err := c.readyErrLocked(); err != nil {
		c.mu.Unlock()
		monitoring.Logf("bedcore: start edit ignored: %v", err)
		return err
	}
	f, ok := c.index[bedID]
	if !ok {
		c.mu.Unlock()
		return ErrUnknownBed
	}
	c.session++
	session := c.session
	epoch := c.epoch
	code := c.projCode
	name := f.Name
	c.mode = ModeEditing
	c.pending = nil
	c.selected = nil
	c.editingName = name
	c.mu.Unlock()

	c.draw.Cancel()
	c.draw.Begin(func(ring orb.Ring) {
		c.drawComplete(epoch, session, code, Pending{Kind: PendingEdit, BedID: bedID, BedName: name}, ring)
	})
	c.notify()
	return nil
}

// CancelEdit discards the pending ring and returns to idle.
func (c *Controller) CancelEdit() {
	c.cancelSession(ModeEditing)
}

func (c *Controller) cancelSession(from Mode) {
	c.mu.Lock()
	if c.mode != from {
		c.mu.Unlock()
		return
	}
	c.session++
	c.mode = ModeIdle
	c.pending = nil
	c.editingName = ""
	c.mu.Unlock()

	c.draw.Cancel()
	c.notify()
}

func (c *Controller) readyErrLocked() error {
	if c.plotID == "" {
		return ErrNoActivePlot
	}
	if !c.ready || c.projCode == "" {
		return ErrNotReady
	}
	return nil
}

// drawComplete runs the draw-to-pending pipeline: close the drawn ring,
// cap it at five points (four vertices plus the closing repeat), reproject
// every vertex to geographic coordinates and stage the result for explicit
// confirmation. Completions from a superseded scene or session are dropped.
func (c *Controller) drawComplete(epoch, session int, code string, template Pending, ring orb.Ring) {
	closed := geo.CloseRing(ring)
	if len(closed) > 5 {
		closed = closed[:5]
	}
	geoRing, err := geo.RingToGeographic(closed, code)
	if err != nil {
		monitoring.Logf("bedcore: discard drawn ring: %v", err)
		return
	}

	c.mu.Lock()
	if c.epoch != epoch || c.session != session {
		c.mu.Unlock()
		return
	}
	template.Ring = geoRing
	c.pending = &template
	c.mu.Unlock()
	c.notify()
}

// SaveAdd confirms a pending add under the given name. On success the
// server-assigned bed is materialized in the committed layer, selected, and
// the controller returns to idle. On failure the pending ring and the add
// session are left intact so the user can retry or cancel.
func (c *Controller) SaveAdd(ctx context.Context, name string) (*field.Bed, error) {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	if c.mode != ModeAdding || c.pending == nil || c.pending.Kind != PendingAdd {
		c.mu.Unlock()
		return nil, ErrNoPending
	}
	epoch := c.epoch
	session := c.session
	plotID := c.plotID
	code := c.projCode
	ring := append(orb.Ring(nil), c.pending.Ring...)
	c.busy = true
	c.mu.Unlock()
	c.notify()

	created, err := c.store.CreateBed(ctx, plotID, name, ring)
	if err != nil {
		c.clearBusy()
		return nil, err
	}
	return created, c.commitSaved(epoch, session, code, created, "")
}

// SaveEdit confirms a pending edit: the target committed feature's geometry
// is replaced with the new ring. Only geometry is sent; name and other
// fields stay untouched.
func (c *Controller) SaveEdit(ctx context.Context) (*field.Bed, error) {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	if c.mode != ModeEditing || c.pending == nil || c.pending.Kind != PendingEdit {
		c.mu.Unlock()
		return nil, ErrNoPending
	}
	epoch := c.epoch
	session := c.session
	plotID := c.plotID
	code := c.projCode
	bedID := c.pending.BedID
	ring := append(orb.Ring(nil), c.pending.Ring...)
	c.busy = true
	c.mu.Unlock()
	c.notify()

	updated, err := c.store.UpdateBed(ctx, plotID, bedID, remote.BedPatch{
		Coordinates: orb.Polygon{ring},
	})
	if err != nil {
		c.clearBusy()
		return nil, err
	}
	return updated, c.commitSaved(epoch, session, code, updated, bedID)
}

// commitSaved applies a successful create/update to the committed layer.
// The durable copy exists remotely by now, so the local feature is updated
// whenever the scene is still current, even if the session was cancelled
// while the request was in flight; session-scoped state (mode, selection)
// is only touched when the session is still the one that issued the save.
func (c *Controller) commitSaved(epoch, session int, code string, saved *field.Bed, editedID string) error {
	working, err := geo.RingToWorking(saved.Ring(), code)

	c.mu.Lock()
	if c.epoch != epoch {
		c.busy = false
		c.mu.Unlock()
		c.notify()
		return nil
	}
	if err != nil {
		// The bed persisted but cannot be projected into this scene.
		monitoring.Logf("bedcore: saved bed %s not projectable: %v", saved.ID, err)
		c.busy = false
		c.mu.Unlock()
		c.notify()
		return err
	}

	if editedID != "" {
		if f, ok := c.index[editedID]; ok {
			f.Ring = working
			f.Name = saved.Name
		} else {
			monitoring.Logf("bedcore: edited bed %s missing from layer", editedID)
		}
	} else if existing, ok := c.index[saved.ID]; ok {
		existing.Ring = working
		existing.Name = saved.Name
	} else {
		c.addFeatureLocked(&Feature{ID: saved.ID, Name: saved.Name, Ring: working})
	}

	sameSession := c.session == session
	if sameSession {
		c.session++
		c.mode = ModeIdle
		c.pending = nil
		c.editingName = ""
		b := *saved
		c.selected = &b
	}
	c.busy = false
	labels := c.labelsLocked()
	c.mu.Unlock()

	if sameSession {
		c.draw.Cancel()
	}
	c.labels.SetLabels(labels)
	c.notify()
	return nil
}

// Delete removes a bed remotely and, on success, from the committed layer.
// There is no optimistic delete: a failed call leaves the local feature and
// any selection untouched.
func (c *Controller) Delete(ctx context.Context, bedID string) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.plotID == "" {
		c.mu.Unlock()
		return ErrNoActivePlot
	}
	epoch := c.epoch
	plotID := c.plotID
	c.busy = true
	c.mu.Unlock()
	c.notify()

	if err := c.store.DeleteBed(ctx, plotID, bedID); err != nil {
		c.clearBusy()
		return err
	}

	c.mu.Lock()
	if c.epoch != epoch {
		c.busy = false
		c.mu.Unlock()
		c.notify()
		return nil
	}
	c.removeFeatureLocked(bedID)
	if c.selected != nil && c.selected.ID == bedID {
		c.selected = nil
	}
	c.busy = false
	labels := c.labelsLocked()
	c.mu.Unlock()

	c.labels.SetLabels(labels)
	c.notify()
	return nil
}

func (c *Controller) clearBusy() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
	c.notify()
}
