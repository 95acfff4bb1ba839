// Package insights builds the project analytics summary: per-project
// assignment counts plus an optional model-written narrative.
package insights

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/adilsaaly/trackport/internal/services/task"
)

// generateTimeout bounds the model call so a slow upstream cannot stall the
// analytics page.
const generateTimeout = 15 * time.Second

// StatsSource supplies the per-project aggregates the summary is built from.
type StatsSource interface {
	StatsByProject(ctx context.Context) ([]*task.ProjectStats, error)
}

// Generator produces a short narrative from a prompt. A nil Generator
// disables the narrative entirely.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Summary is the analytics payload. Narrative is empty when the model is
// unavailable or misconfigured; the stats are always present.
type Summary struct {
	Stats     []*task.ProjectStats `json:"stats"`
	Narrative string               `json:"narrative,omitempty"`
}

type InsightsService struct {
	stats StatsSource
	gen   Generator
}

func NewInsightsService(stats StatsSource, gen Generator) *InsightsService {
	return &InsightsService{stats: stats, gen: gen}
}

// Summarize aggregates assignment status per project and asks the model for
// a narrative. A model failure degrades to a stats-only summary.
func (s *InsightsService) Summarize(ctx context.Context) (*Summary, error) {
	stats, err := s.stats.StatsByProject(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate project stats: %w", err)
	}

	summary := &Summary{Stats: stats}
	if s.gen == nil || len(stats) == 0 {
		return summary, nil
	}

	genCtx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	narrative, err := s.gen.Generate(genCtx, buildPrompt(stats))
	if err != nil {
		slog.WarnContext(ctx, "analytics narrative unavailable", "error", err)
		return summary, nil
	}

	summary.Narrative = strings.TrimSpace(narrative)
	return summary, nil
}

func buildPrompt(stats []*task.ProjectStats) string {
	var b strings.Builder
	b.WriteString("You are reviewing task progress across software projects. ")
	b.WriteString("Write a short plain-text summary (at most four sentences) of the workload below, ")
	b.WriteString("calling out projects that are falling behind.\n\n")
	for _, st := range stats {
		fmt.Fprintf(&b, "- %s: %d assignments (%d complete, %d ongoing, %d pending)\n",
			st.Name, st.TaskCount, st.Completed, st.Ongoing, st.Pending)
	}
	return b.String()
}
