package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilityProfile_Helpers(t *testing.T) {
	p := CapabilityProfile{
		Domain:             "code",
		Tasks:              []string{"generation", "review"},
		LanguageSupport:    []string{"go"},
		Specializations:    []string{"code"},
		PerformanceMetrics: map[string]float64{"accuracy": 0.75},
	}

	assert.True(t, p.HasTask("review"))
	assert.False(t, p.HasTask("translate"))
	assert.True(t, p.SupportsLanguage("go"))
	assert.False(t, p.SupportsLanguage("cobol"))
	assert.True(t, p.HasSpecialization("code"))
	assert.Equal(t, 0.75, p.Accuracy())
	assert.Equal(t, 0.0, CapabilityProfile{}.Accuracy())
}

func TestMockBackend_Complete(t *testing.T) {
	b := NewMockBackend("mock")
	b.WithResponse("ping", "pong")

	art, err := b.Complete(context.Background(), "", "ping", Options{})
	require.NoError(t, err)
	assert.Equal(t, "pong", art.Content)
	assert.Equal(t, "mock", art.Backend)
	assert.Equal(t, "mock-1", art.Model)

	art, err = b.Complete(context.Background(), "", "unknown", Options{})
	require.NoError(t, err)
	assert.Contains(t, art.Content, "unknown")
}

func TestMockBackend_UnreachableCompleteFails(t *testing.T) {
	b := NewMockBackend("mock")
	b.SetReachable(false)

	_, err := b.Complete(context.Background(), "", "ping", Options{})
	require.Error(t, err)

	var backendErr *BackendError
	require.True(t, errors.As(err, &backendErr))
	assert.True(t, backendErr.Temporary)
}

func TestProbeCache_CachesWithinTTL(t *testing.T) {
	b := NewMockBackend("cached")
	cache := NewProbeCache(time.Minute)

	assert.True(t, cache.Reachable(context.Background(), b))
	assert.True(t, cache.Reachable(context.Background(), b))
	assert.Equal(t, 1, b.ProbeCount())
}

func TestProbeCache_StaleResultIsServed(t *testing.T) {
	// The cache is explicitly best-effort: flipping the backend down does
	// not invalidate a fresh entry.
	b := NewMockBackend("flappy")
	cache := NewProbeCache(time.Minute)

	require.True(t, cache.Reachable(context.Background(), b))
	b.SetReachable(false)
	assert.True(t, cache.Reachable(context.Background(), b))

	cache.Invalidate("flappy")
	assert.False(t, cache.Reachable(context.Background(), b))
}

func TestProbeCache_ZeroTTLProbesEveryTime(t *testing.T) {
	b := NewMockBackend("direct")
	cache := NewProbeCache(0)

	cache.Reachable(context.Background(), b)
	cache.Reachable(context.Background(), b)
	assert.Equal(t, 2, b.ProbeCount())
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"deadline", context.DeadlineExceeded, true},
		{"canceled", context.Canceled, false},
		{"temporary backend error", &BackendError{Temporary: true}, true},
		{"rate limited", &BackendError{Status: 429}, true},
		{"server error", &BackendError{Status: 503}, true},
		{"client error", &BackendError{Status: 400}, false},
		{"plain error", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestDescribe(t *testing.T) {
	b := NewMockBackend("m", CapabilityProfile{Domain: "code"})
	info := Describe(context.Background(), b)
	assert.Equal(t, "m", info.Name)
	assert.Equal(t, "mock", info.Kind)
	assert.Equal(t, "", info.URL)
	assert.Equal(t, "mock-1", info.Model)
	assert.True(t, info.Reachable)
	require.Len(t, info.Profiles, 1)

	b.SetReachable(false)
	assert.False(t, Describe(context.Background(), b).Reachable)
}

func TestBackendEndpoints(t *testing.T) {
	o := NewOllamaBackend("o", "http://localhost:11434", "m", nil)
	assert.Equal(t, "ollama", o.Kind())
	assert.Equal(t, "http://localhost:11434", o.URL())

	s, err := NewOpenAICompatBackend("s", "http://localhost:1234/v1", "", "m", nil)
	require.NoError(t, err)
	assert.Equal(t, "openai", s.Kind())
	assert.Equal(t, "http://localhost:1234/v1", s.URL())
}

func TestNewOllamaBackend_BadURLFallsBack(t *testing.T) {
	b := NewOllamaBackend("o", "::not-a-url", "m", nil)
	assert.Equal(t, "o", b.Name())
	assert.Equal(t, "m", b.DefaultModel())
}

func TestNewOpenAICompatBackend_RequiresURL(t *testing.T) {
	_, err := NewOpenAICompatBackend("s", "", "", "m", nil)
	assert.Error(t, err)

	b, err := NewOpenAICompatBackend("s", "http://localhost:1234/v1", "", "m", nil)
	require.NoError(t, err)
	assert.Equal(t, "s", b.Name())
}
