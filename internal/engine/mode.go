package engine

import "quiz-session-service/internal/models"

// Definition is the per-mode strategy: how a session of this mode is sized,
// whether creation resumes an existing active session or replaces it, and
// whether the wrong-answer cutoff applies. One definition per mode replaces
// the per-mode controller copies this engine unifies.
type Definition struct {
	Mode models.Mode

	// DefaultPerSection is used when the request carries no explicit count.
	// Zero means the mode has no opinion and the deployment default applies.
	DefaultPerSection int

	// ExclusivePerUser modes (previous-year, personalized) deactivate any
	// other active session of the same mode for the user and build fresh.
	// All other modes resume the active session instead of duplicating it.
	ExclusivePerUser bool

	// Weighted modes draw from multiple sources with the default
	// topic/previous-year/attempted/random split.
	Weighted bool

	// TimedSizing derives the question count from the challenge duration and
	// enables the wrong-answer limit.
	TimedSizing bool

	// FrequentlyAskedOnly restricts the pool to frequently-asked questions.
	FrequentlyAskedOnly bool

	// PaperSourced pools are drawn from previous-year papers instead of the
	// question collection.
	PaperSourced bool
}

var definitions = map[models.Mode]Definition{
	models.ModeRandom: {
		Mode: models.ModeRandom,
	},
	models.ModePracticePlan: {
		Mode: models.ModePracticePlan,
	},
	models.ModePersonalized: {
		Mode:             models.ModePersonalized,
		ExclusivePerUser: true,
		Weighted:         true,
	},
	models.ModeMockBattle: {
		Mode:                models.ModeMockBattle,
		FrequentlyAskedOnly: true,
	},
	models.ModeTimed: {
		Mode:        models.ModeTimed,
		TimedSizing: true,
	},
	models.ModePreviousYear: {
		Mode:             models.ModePreviousYear,
		ExclusivePerUser: true,
		PaperSourced:     true,
	},
	// The daily set is 10 questions in the legacy flow; normalized onto the
	// three-section layout that becomes 3 per section.
	models.ModeDaily: {
		Mode:              models.ModeDaily,
		DefaultPerSection: 3,
	},
}

// ModeDefinition returns the strategy for a mode. ok is false for unknown
// modes.
func ModeDefinition(mode models.Mode) (Definition, bool) {
	def, ok := definitions[mode]
	return def, ok
}

// Default source weights for weighted (personalized) generation.
const (
	WeightTopics       = 0.4
	WeightPreviousYear = 0.3
	WeightAttempted    = 0.2
	WeightRandom       = 0.1
)

// Source names used by the weighted builder. The random source doubles as
// the fallback that fills any shortfall left by the others.
const (
	SourceTopics       = "topics"
	SourcePreviousYear = "previous_year"
	SourceAttempted    = "attempted"
	SourceRandom       = "random"
)
