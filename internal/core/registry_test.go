package core

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingFeature struct {
	*BaseFeature
	events  *[]string
	initErr error
	routes  []Route
}

func newRecordingFeature(name string, enabled bool, events *[]string) *recordingFeature {
	logger := NewLoggerWithWriter(&bytes.Buffer{}, slog.LevelInfo)
	return &recordingFeature{
		BaseFeature: NewBaseFeature(name, name+" feature", enabled, logger, nil),
		events:      events,
	}
}

func (f *recordingFeature) Init(ctx context.Context) error {
	*f.events = append(*f.events, "init "+f.Name())
	return f.initErr
}

func (f *recordingFeature) Shutdown(ctx context.Context) error {
	*f.events = append(*f.events, "shutdown "+f.Name())
	return nil
}

func (f *recordingFeature) Routes() []Route {
	return f.routes
}

func newTestRegistry() *Registry {
	return NewRegistry(NewLoggerWithWriter(&bytes.Buffer{}, slog.LevelInfo))
}

func TestRegistry_LifecycleOrder(t *testing.T) {
	var events []string
	registry := newTestRegistry()

	require.NoError(t, registry.Register(newRecordingFeature("catalog", true, &events)))
	require.NoError(t, registry.Register(newRecordingFeature("disabled", false, &events)))
	require.NoError(t, registry.Register(newRecordingFeature("sitemap", true, &events)))

	ctx := context.Background()
	require.NoError(t, registry.InitAll(ctx))
	require.NoError(t, registry.ShutdownAll(ctx))

	assert.Equal(t, []string{
		"init catalog",
		"init sitemap",
		"shutdown sitemap",
		"shutdown catalog",
	}, events)
}

func TestRegistry_DuplicateName(t *testing.T) {
	var events []string
	registry := newTestRegistry()

	require.NoError(t, registry.Register(newRecordingFeature("sitemap", true, &events)))
	assert.Error(t, registry.Register(newRecordingFeature("sitemap", true, &events)))
}

func TestRegistry_InitFailureIsFeatureError(t *testing.T) {
	var events []string
	var logs bytes.Buffer
	registry := NewRegistry(NewLoggerWithWriter(&logs, slog.LevelInfo))

	broken := newRecordingFeature("catalog", true, &events)
	broken.initErr = errors.New("seed file missing")
	require.NoError(t, registry.Register(broken))

	err := registry.InitAll(context.Background())

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ErrCodeFeature, appErr.Code)
	assert.Contains(t, appErr.Message, "[catalog]")

	assert.Contains(t, logs.String(), "Failed to initialize feature")
	assert.Contains(t, logs.String(), "feature=catalog")
	assert.Contains(t, logs.String(), "seed file missing")
}

func TestRegistry_RoutesAndStatus(t *testing.T) {
	var events []string
	registry := newTestRegistry()
	noop := func(w http.ResponseWriter, r *http.Request) {}

	enabled := newRecordingFeature("sitemap", true, &events)
	enabled.routes = []Route{{Method: http.MethodGet, Path: "/video-sitemap.xml", Handler: noop}}
	disabled := newRecordingFeature("other", false, &events)
	disabled.routes = []Route{{Method: http.MethodGet, Path: "/other", Handler: noop}}

	require.NoError(t, registry.Register(enabled))
	require.NoError(t, registry.Register(disabled))

	routes := registry.GetAllRoutes()
	require.Len(t, routes, 1)
	assert.Equal(t, "/video-sitemap.xml", routes[0].Path)

	status := registry.GetFeatureStatus()
	require.Len(t, status, 2)
	assert.Equal(t, "sitemap", status[0].Name)
	assert.Equal(t, []string{"/video-sitemap.xml"}, status[0].Paths)
	assert.False(t, status[1].Enabled)
	assert.Empty(t, status[1].Paths)
}
