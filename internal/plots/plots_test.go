package plots

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florisys/field.report/internal/field"
)

type fakePlotStore struct {
	mu sync.Mutex

	plots      []field.Plot
	listErr    error
	addErr     error
	deleteErr  error
	deleted    []string
	addedFiles []string
	nextID     int
}

func (s *fakePlotStore) ListPlots(ctx context.Context) ([]field.Plot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]field.Plot(nil), s.plots...), nil
}

func (s *fakePlotStore) AddPlot(ctx context.Context, filename string, r io.Reader) (*field.Plot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.addErr != nil {
		return nil, s.addErr
	}
	s.addedFiles = append(s.addedFiles, filename)
	s.nextID++
	return &field.Plot{ID: "p-new", Name: filename}, nil
}

func (s *fakePlotStore) DeletePlot(ctx context.Context, plotID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, plotID)
	return nil
}

func twoPlots() []field.Plot {
	return []field.Plot{
		{ID: "p1", Name: "East field"},
		{ID: "p2", Name: "West field"},
	}
}

func TestLoadPreservesValidSelection(t *testing.T) {
	store := &fakePlotStore{plots: twoPlots()}
	c := New(store, nil)

	require.NoError(t, c.Load(context.Background()))
	require.NoError(t, c.Select("p2"))

	require.NoError(t, c.Load(context.Background()))
	s := c.State()
	require.NotNil(t, s.Selected)
	assert.Equal(t, "p2", s.Selected.ID)
	assert.False(t, s.Loading)
}

func TestLoadClearsStaleSelection(t *testing.T) {
	store := &fakePlotStore{plots: twoPlots()}
	c := New(store, nil)
	require.NoError(t, c.Load(context.Background()))
	require.NoError(t, c.Select("p2"))

	store.mu.Lock()
	store.plots = []field.Plot{{ID: "p1", Name: "East field"}}
	store.mu.Unlock()

	require.NoError(t, c.Load(context.Background()))
	assert.Nil(t, c.State().Selected)
}

func TestLoadFailureKeepsCatalog(t *testing.T) {
	store := &fakePlotStore{plots: twoPlots()}
	c := New(store, nil)
	require.NoError(t, c.Load(context.Background()))

	store.mu.Lock()
	store.listErr = errors.New("backend down")
	store.mu.Unlock()

	require.Error(t, c.Load(context.Background()))
	s := c.State()
	assert.Len(t, s.Plots, 2)
	assert.False(t, s.Loading)
}

func TestSelectUnknown(t *testing.T) {
	c := New(&fakePlotStore{plots: twoPlots()}, nil)
	require.NoError(t, c.Load(context.Background()))
	assert.ErrorIs(t, c.Select("ghost"), ErrUnknownPlot)
	assert.NoError(t, c.Select(""))
}

func TestAddPrependsAndSelects(t *testing.T) {
	store := &fakePlotStore{plots: twoPlots()}
	c := New(store, nil)
	require.NoError(t, c.Load(context.Background()))

	created, err := c.Add(context.Background(), "ortho.tif", strings.NewReader("bytes"))
	require.NoError(t, err)

	s := c.State()
	require.Len(t, s.Plots, 3)
	assert.Equal(t, created.ID, s.Plots[0].ID, "new plot goes first")
	require.NotNil(t, s.Selected)
	assert.Equal(t, created.ID, s.Selected.ID)
	assert.False(t, s.Uploading)
	assert.Equal(t, []string{"ortho.tif"}, store.addedFiles)
}

func TestAddFailureLeavesSelection(t *testing.T) {
	store := &fakePlotStore{plots: twoPlots(), addErr: errors.New("backend down")}
	c := New(store, nil)
	require.NoError(t, c.Load(context.Background()))
	require.NoError(t, c.Select("p1"))

	_, err := c.Add(context.Background(), "ortho.tif", strings.NewReader("bytes"))
	require.Error(t, err)

	s := c.State()
	assert.Len(t, s.Plots, 2)
	require.NotNil(t, s.Selected)
	assert.Equal(t, "p1", s.Selected.ID)
	assert.False(t, s.Uploading)
}

func TestRemoveClearsMatchingSelection(t *testing.T) {
	store := &fakePlotStore{plots: twoPlots()}
	c := New(store, nil)
	require.NoError(t, c.Load(context.Background()))
	require.NoError(t, c.Select("p1"))

	require.NoError(t, c.Remove(context.Background(), "p1"))
	s := c.State()
	assert.Len(t, s.Plots, 1)
	assert.Nil(t, s.Selected)
	assert.Equal(t, []string{"p1"}, store.deleted)
}

func TestRemoveOtherKeepsSelection(t *testing.T) {
	store := &fakePlotStore{plots: twoPlots()}
	c := New(store, nil)
	require.NoError(t, c.Load(context.Background()))
	require.NoError(t, c.Select("p1"))

	require.NoError(t, c.Remove(context.Background(), "p2"))
	s := c.State()
	require.NotNil(t, s.Selected)
	assert.Equal(t, "p1", s.Selected.ID)
}

func TestRemoveFailureChangesNothing(t *testing.T) {
	store := &fakePlotStore{plots: twoPlots(), deleteErr: errors.New("backend down")}
	c := New(store, nil)
	require.NoError(t, c.Load(context.Background()))
	require.NoError(t, c.Select("p1"))

	require.Error(t, c.Remove(context.Background(), "p1"))
	s := c.State()
	assert.Len(t, s.Plots, 2)
	require.NotNil(t, s.Selected)
}

func TestCallbackSeesLoadingTransitions(t *testing.T) {
	store := &fakePlotStore{plots: twoPlots()}
	var mu sync.Mutex
	var states []State
	c := New(store, func(s State) {
		mu.Lock()
		states = append(states, s)
		mu.Unlock()
	})

	require.NoError(t, c.Load(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, len(states), 2)
	assert.True(t, states[0].Loading)
	last := states[len(states)-1]
	assert.False(t, last.Loading)
	assert.Len(t, last.Plots, 2)
}
