// Package bedcore is the stateful controller behind the bed editor. It owns
// the committed vector features (one per persisted bed), a scratch ring for
// in-progress drawings, the draw/edit/select mode machine, and the sync
// protocol against the remote bed store. Rendering, raster decoding and the
// actual draw gesture live behind small injected interfaces so any mapping
// engine can drive the core.
package bedcore

import (
	"context"
	"errors"

	"github.com/paulmach/orb"

	"github.com/florisys/field.report/internal/field"
	"github.com/florisys/field.report/internal/remote"
)

// Mode is the editing-session state.
type Mode string

const (
	ModeIdle    Mode = "idle"
	ModeAdding  Mode = "adding"
	ModeEditing Mode = "editing"
)

// PendingKind distinguishes what a captured ring is waiting to become.
type PendingKind string

const (
	PendingAdd  PendingKind = "add"
	PendingEdit PendingKind = "edit"
)

// Pending is a drawn ring awaiting explicit user confirmation. The ring is
// closed, capped at five points and already reprojected to geographic
// coordinates; nothing reaches the committed layer or the backend until the
// user confirms.
type Pending struct {
	Kind    PendingKind
	Ring    orb.Ring
	BedID   string // edit only
	BedName string // edit only
}

// Feature is the committed-layer projection of one persisted bed: its id,
// name and ring in working coordinates.
type Feature struct {
	ID   string
	Name string
	Ring orb.Ring
}

// Label is a clickable name marker at a bed's interior point, in working
// coordinates. The rendering adapter decides what UI primitive it becomes.
type Label struct {
	BedID    string
	Text     string
	Position orb.Point
}

// Draw is the vertex-by-vertex polygon capture supplied by the mapping
// engine. Begin arms a fresh four-point capture on the scratch layer and
// reports the drawn ring (working coordinates) through onComplete; Cancel
// tears down any armed capture and clears the scratch layer.
type Draw interface {
	Begin(onComplete func(ring orb.Ring))
	Cancel()
}

// LabelHost renders the current label set. It is handed the full set on
// every change; passing nil or an empty slice clears all labels.
type LabelHost interface {
	SetLabels(labels []Label)
}

// Store is the remote surface the controller needs. *remote.Client
// implements it.
type Store interface {
	ListBeds(ctx context.Context, plotID string) ([]field.Bed, error)
	GetBed(ctx context.Context, plotID, bedID string) (*field.Bed, error)
	CreateBed(ctx context.Context, plotID, name string, ring orb.Ring) (*field.Bed, error)
	UpdateBed(ctx context.Context, plotID, bedID string, patch remote.BedPatch) (*field.Bed, error)
	DeleteBed(ctx context.Context, plotID, bedID string) error
}

// State is the snapshot handed to the presentation shell after every
// change. The shell only reads it and issues intent calls back.
type State struct {
	PlotID      string
	Mode        Mode
	Pending     *Pending
	Selected    *field.Bed
	EditingName string
	Features    []Feature
	Busy        bool // a save/delete round-trip is outstanding
}

// Sentinel errors for intent calls that cannot proceed.
var (
	ErrNotReady     = errors.New("bedcore: raster not ready")
	ErrNoPending    = errors.New("bedcore: no pending ring to save")
	ErrUnknownBed   = errors.New("bedcore: unknown bed id")
	ErrBusy         = errors.New("bedcore: a remote mutation is already in flight")
	ErrNoActivePlot = errors.New("bedcore: no active plot")
)
