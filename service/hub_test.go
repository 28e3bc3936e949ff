package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	name    string
	deps    []string
	initErr error
	log     *[]string
	args    []any
	onInit  func(h *Hub) error
}

func (f *fakeService) Name() string           { return f.name }
func (f *fakeService) Dependencies() []string { return f.deps }
func (f *fakeService) Init(args ...any) error {
	f.args = args
	*f.log = append(*f.log, "init:"+f.name)
	if f.onInit != nil {
		if err := f.onInit(args[0].(*Hub)); err != nil {
			return err
		}
	}
	return f.initErr
}
func (f *fakeService) Start() error { *f.log = append(*f.log, "start:"+f.name); return nil }
func (f *fakeService) Stop() error  { *f.log = append(*f.log, "stop:"+f.name); return nil }

func TestHubDependencyOrder(t *testing.T) {
	var calls []string
	h := NewHub()
	require.NoError(t, h.Register(&fakeService{name: "network", deps: []string{"status"}, log: &calls}))
	require.NoError(t, h.Register(&fakeService{name: "audio", log: &calls}))
	require.NoError(t, h.Register(&fakeService{name: "status", log: &calls}))

	require.NoError(t, h.InitAll("cfg"))
	require.NoError(t, h.StartAll())
	h.StopAll()

	assert.Equal(t, []string{"audio", "status", "network"}, h.Order())
	assert.Equal(t, []string{
		"init:audio", "init:status", "init:network",
		"start:audio", "start:status", "start:network",
		"stop:network", "stop:status", "stop:audio",
	}, calls)

	net := MustGet[*fakeService](h, "network")
	assert.Equal(t, []any{h, "cfg"}, net.args)
}

func TestHubLookupFromInit(t *testing.T) {
	var calls []string
	h := NewHub()
	var got *fakeService
	require.NoError(t, h.Register(&fakeService{
		name: "audio", deps: []string{"status"}, log: &calls,
		onInit: func(h *Hub) error {
			var err error
			got, err = Lookup[*fakeService](h, "status")
			return err
		},
	}))
	require.NoError(t, h.Register(&fakeService{name: "status", log: &calls}))

	require.NoError(t, h.InitAll())
	assert.Equal(t, []string{"status", "audio"}, h.Order())
	require.NotNil(t, got)
	assert.Equal(t, "status", got.name)
}

func TestLookupRequiresInit(t *testing.T) {
	var calls []string
	h := NewHub()
	require.NoError(t, h.Register(&fakeService{name: "status", log: &calls}))

	_, err := Lookup[*fakeService](h, "status")
	assert.ErrorContains(t, err, "not initialized")
	_, err = Lookup[*fakeService](h, "ghost")
	assert.ErrorContains(t, err, "not found")

	require.NoError(t, h.InitAll())
	_, err = Lookup[Service](h, "status")
	assert.NoError(t, err)
	_, err = Lookup[*Hub](h, "status")
	assert.ErrorContains(t, err, "type mismatch")

	h.StopAll()
	_, err = Lookup[*fakeService](h, "status")
	assert.Error(t, err, "stopped services are not ready")
}

func TestHubStopAllOnlyInitialized(t *testing.T) {
	var calls []string
	h := NewHub()
	require.NoError(t, h.Register(&fakeService{name: "a", log: &calls}))
	h.StopAll()
	assert.Empty(t, calls)

	require.NoError(t, h.InitAll())
	h.StopAll()
	h.StopAll()
	assert.Equal(t, []string{"init:a", "stop:a"}, calls)
}

func TestHubDuplicateAndMissing(t *testing.T) {
	var calls []string
	h := NewHub()
	require.NoError(t, h.Register(&fakeService{name: "a", deps: []string{"ghost"}, log: &calls}))
	assert.Error(t, h.Register(&fakeService{name: "a", log: &calls}))
	assert.Error(t, h.InitAll())
}

func TestHubCycle(t *testing.T) {
	var calls []string
	h := NewHub()
	_ = h.Register(&fakeService{name: "a", deps: []string{"b"}, log: &calls})
	_ = h.Register(&fakeService{name: "b", deps: []string{"a"}, log: &calls})
	assert.ErrorContains(t, h.InitAll(), "circular")
}

func TestHubInitRollback(t *testing.T) {
	var calls []string
	h := NewHub()
	_ = h.Register(&fakeService{name: "a", log: &calls})
	_ = h.Register(&fakeService{name: "b", deps: []string{"a"}, initErr: errors.New("boom"), log: &calls})

	err := h.InitAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service b init failed")
	assert.Equal(t, []string{"init:a", "init:b", "stop:a"}, calls)
}

func TestMustGetPanics(t *testing.T) {
	h := NewHub()
	assert.Panics(t, func() { MustGet[*fakeService](h, "nope") })
}
