// Package questionbank defines the read-only lookup contract the session
// engine builds from. The backing store (question collection plus
// previous-year papers) is immutable from the engine's perspective.
package questionbank

import (
	"context"

	"quiz-session-service/internal/models"
)

// Filter narrows a lookup. Subject is the only field modes always set;
// everything else is optional.
type Filter struct {
	Subject         string
	Syllabus        string
	Standard        string
	Topics          []string
	Difficulties    []string
	Years           []int
	Units           []string
	FrequentlyAsked bool
	ExcludeIDs      []string
}

// Lookup is the question bank boundary. Sample draws from the question
// collection, SamplePapers from questions embedded in previous-year papers
// (surfaced under synthetic paper ids). Both may return fewer than count
// when the pool is smaller; callers must check.
type Lookup interface {
	Sample(ctx context.Context, filter Filter, count int) ([]models.Question, error)
	SamplePapers(ctx context.Context, filter Filter, count int) ([]models.Question, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Question, error)
	DistinctTopics(ctx context.Context, filter Filter) ([]string, error)
	DistinctYears(ctx context.Context, filter Filter) ([]int, error)
}
