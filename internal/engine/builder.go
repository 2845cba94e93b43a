package engine

import (
	"math/rand"
	"time"

	"quiz-session-service/internal/models"
)

// SourcePool is one candidate source feeding a session build. Single-source
// modes pass exactly one pool with weight 1; weighted modes pass one pool
// per source with the configured split.
type SourcePool struct {
	Source    string
	Weight    float64
	Questions []models.Question
}

// Sizing determines how many questions a session holds. When
// ChallengeSeconds is set the total is derived from the time budget and
// normalized onto the fixed three-section layout; otherwise PerSection is
// used directly (builder default when zero).
type Sizing struct {
	PerSection         int
	ChallengeSeconds   int
	SecondsPerQuestion int
}

const (
	defaultPerSection         = 10
	defaultSecondsPerQuestion = 30
)

// QuestionsPerSection resolves the effective per-section count.
func (z Sizing) QuestionsPerSection() int {
	if z.ChallengeSeconds > 0 {
		per := z.SecondsPerQuestion
		if per <= 0 {
			per = defaultSecondsPerQuestion
		}
		total := z.ChallengeSeconds / per
		if total < models.SectionCount {
			return 1
		}
		return total / models.SectionCount
	}
	if z.PerSection > 0 {
		return z.PerSection
	}
	return defaultPerSection
}

// BuildResult is the section layout of a new session before persistence.
type BuildResult struct {
	Sections   [models.SectionCount][]models.SectionEntry
	Cursor     models.Cursor
	PerSection int
}

// Builder turns candidate pools into the three-section layout.
type Builder struct {
	rand *rand.Rand
}

func NewBuilder() *Builder {
	return &Builder{rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Build merges the pools, deduplicates, shuffles and slices the result into
// three equal sections. It fails with InsufficientQuestionsError when the
// pools cannot supply 3 x perSection unique questions; nothing partial is
// ever returned.
func (b *Builder) Build(pools []SourcePool, sizing Sizing) (*BuildResult, error) {
	perSection := sizing.QuestionsPerSection()
	required := perSection * models.SectionCount

	chosen := b.merge(pools, required)
	if len(chosen) < required {
		return nil, &InsufficientQuestionsError{
			Required: required,
			Found:    uniqueCount(pools),
		}
	}

	b.rand.Shuffle(len(chosen), func(i, j int) {
		chosen[i], chosen[j] = chosen[j], chosen[i]
	})

	result := &BuildResult{PerSection: perSection}
	for s := 0; s < models.SectionCount; s++ {
		entries := make([]models.SectionEntry, perSection)
		for i := 0; i < perSection; i++ {
			entries[i] = models.SectionEntry{
				QuestionID: chosen[s*perSection+i].ID,
				// Numbering continues across sections: 1..3n.
				Number:   s*perSection + i + 1,
				Status:   models.StatusPending,
				Attempts: 0,
			}
		}
		result.Sections[s] = entries
	}
	result.Cursor = models.Cursor{
		Section:    1,
		Index:      0,
		QuestionID: result.Sections[0][0].QuestionID,
	}
	return result, nil
}

// merge draws floor(weight x required) unique questions from each pool in
// declared order, then fills any shortfall from the random source (or, when
// absent, from whatever pools still have unused questions).
func (b *Builder) merge(pools []SourcePool, required int) []models.Question {
	if len(pools) == 1 {
		return dedupe(pools[0].Questions, required)
	}

	seen := make(map[string]bool)
	chosen := make([]models.Question, 0, required)
	take := func(pool SourcePool, quota int) {
		for _, q := range pool.Questions {
			if quota <= 0 || len(chosen) >= required {
				return
			}
			if q.ID == "" || seen[q.ID] {
				continue
			}
			seen[q.ID] = true
			chosen = append(chosen, q)
			quota--
		}
	}

	for _, pool := range pools {
		take(pool, int(pool.Weight*float64(required)))
	}

	// Shortfall: the random pool is the designated fallback.
	if len(chosen) < required {
		for _, pool := range pools {
			if pool.Source == SourceRandom {
				take(pool, required-len(chosen))
			}
		}
	}
	if len(chosen) < required {
		for _, pool := range pools {
			take(pool, required-len(chosen))
		}
	}
	return chosen
}

func dedupe(questions []models.Question, limit int) []models.Question {
	seen := make(map[string]bool, len(questions))
	out := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		if len(out) >= limit {
			break
		}
		if q.ID == "" || seen[q.ID] {
			continue
		}
		seen[q.ID] = true
		out = append(out, q)
	}
	return out
}

func uniqueCount(pools []SourcePool) int {
	seen := make(map[string]bool)
	for _, pool := range pools {
		for _, q := range pool.Questions {
			if q.ID != "" {
				seen[q.ID] = true
			}
		}
	}
	return len(seen)
}
