package engine

import (
	"fmt"
	"math"

	"quiz-session-service/internal/models"
)

// VerifyProgress checks the aggregate identity the state machine maintains:
// completed == correct + wrong, counters non-negative, known status.
func VerifyProgress(p models.Progress) error {
	if p.CorrectAnswers < 0 || p.WrongAnswers < 0 || p.CompletedQuestions < 0 {
		return fmt.Errorf("%w: negative progress counter", ErrValidation)
	}
	if p.CompletedQuestions != p.CorrectAnswers+p.WrongAnswers {
		return fmt.Errorf("%w: completed %d != correct %d + wrong %d",
			ErrValidation, p.CompletedQuestions, p.CorrectAnswers, p.WrongAnswers)
	}
	switch p.Status {
	case models.ProgressNotStarted, models.ProgressInProgress,
		models.ProgressCompleted, models.ProgressAborted:
		return nil
	}
	return fmt.Errorf("%w: unknown progress status %q", ErrValidation, p.Status)
}

// TopicPerformance is per-topic accuracy over the answered questions of a
// session, percentage rounded to an integer.
type TopicPerformance struct {
	Topic          string `json:"topic"`
	Total          int    `json:"total"`
	Correct        int    `json:"correct"`
	CorrectPercent int    `json:"correctPercent"`
}

// ComputeTopicPerformance groups the union of correct and wrong question ids
// by topic. questions maps id to the hydrated question; ids that do not
// resolve are skipped rather than failing the whole report.
func ComputeTopicPerformance(p models.Progress, questions map[string]models.Question) []TopicPerformance {
	type tally struct {
		total   int
		correct int
	}
	stats := make(map[string]*tally)
	var order []string

	count := func(id string, correct bool) {
		q, ok := questions[id]
		if !ok {
			return
		}
		t, ok := stats[q.Topic]
		if !ok {
			t = &tally{}
			stats[q.Topic] = t
			order = append(order, q.Topic)
		}
		t.total++
		if correct {
			t.correct++
		}
	}

	for _, id := range p.CorrectAnswerList {
		count(id, true)
	}
	for _, w := range p.WrongAnswerList {
		count(w.QuestionID, false)
	}

	performance := make([]TopicPerformance, 0, len(order))
	for _, topic := range order {
		t := stats[topic]
		performance = append(performance, TopicPerformance{
			Topic:          topic,
			Total:          t.total,
			Correct:        t.correct,
			CorrectPercent: int(math.Round(float64(t.correct) / float64(t.total) * 100)),
		})
	}
	return performance
}

// ScorePercent is the overall session accuracy, rounded to two decimals.
func ScorePercent(p models.Progress) float64 {
	if p.CompletedQuestions == 0 {
		return 0
	}
	pct := float64(p.CorrectAnswers) / float64(p.CompletedQuestions) * 100
	return math.Round(pct*100) / 100
}
