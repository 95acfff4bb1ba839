package insights

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adilsaaly/trackport/internal/services/task"
)

type fakeStats struct {
	stats []*task.ProjectStats
	err   error
}

func (f *fakeStats) StatsByProject(ctx context.Context) ([]*task.ProjectStats, error) {
	return f.stats, f.err
}

type fakeGenerator struct {
	text   string
	err    error
	prompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.text, f.err
}

func sampleStats() []*task.ProjectStats {
	return []*task.ProjectStats{
		{Name: "Line Monitor", TaskCount: 10, Completed: 7, Ongoing: 2, Pending: 1},
		{Name: "QC Portal", TaskCount: 4, Completed: 0, Ongoing: 1, Pending: 3},
	}
}

func TestSummarizeIncludesNarrative(t *testing.T) {
	gen := &fakeGenerator{text: " QC Portal is falling behind. "}
	svc := NewInsightsService(&fakeStats{stats: sampleStats()}, gen)

	got, err := svc.Summarize(context.Background())
	require.NoError(t, err)
	assert.Len(t, got.Stats, 2)
	assert.Equal(t, "QC Portal is falling behind.", got.Narrative)
	assert.Contains(t, gen.prompt, "QC Portal: 4 assignments")
}

func TestSummarizeDegradesWhenModelFails(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("upstream timeout")}
	svc := NewInsightsService(&fakeStats{stats: sampleStats()}, gen)

	got, err := svc.Summarize(context.Background())
	require.NoError(t, err, "model failure must not fail the summary")
	assert.Len(t, got.Stats, 2)
	assert.Empty(t, got.Narrative)
}

func TestSummarizeSkipsModelWithoutStats(t *testing.T) {
	gen := &fakeGenerator{text: "should not be called"}
	svc := NewInsightsService(&fakeStats{}, gen)

	got, err := svc.Summarize(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Narrative)
	assert.Empty(t, gen.prompt)
}

func TestSummarizeFailsWhenStatsFail(t *testing.T) {
	svc := NewInsightsService(&fakeStats{err: errors.New("db down")}, nil)
	_, err := svc.Summarize(context.Background())
	assert.Error(t, err)
}

func TestClientGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Contains(t, r.URL.Path, ":generateContent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"All projects on track."}],"role":"model"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(&ClientOptions{BaseURL: srv.URL, ApiKey: "test-key"})
	got, err := c.Generate(context.Background(), "summarize")
	require.NoError(t, err)
	assert.Equal(t, "All projects on track.", got)
}

func TestClientGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	}))
	defer srv.Close()

	c := NewClient(&ClientOptions{BaseURL: srv.URL, ApiKey: "bad"})
	_, err := c.Generate(context.Background(), "summarize")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestClientGenerateEmptyCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := NewClient(&ClientOptions{BaseURL: srv.URL})
	_, err := c.Generate(context.Background(), "summarize")
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}
