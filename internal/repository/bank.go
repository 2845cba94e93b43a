package repository

import (
	"context"

	"quiz-session-service/internal/models"
	"quiz-session-service/internal/questionbank"
)

// Bank composes the question and paper repositories into the single lookup
// surface the session service consumes. Plain ids route to the question
// collection, synthetic "paperID#index" ids to the paper collection.
type Bank struct {
	Questions *QuestionRepository
	Papers    *PaperRepository
}

func NewBank(questions *QuestionRepository, papers *PaperRepository) *Bank {
	return &Bank{Questions: questions, Papers: papers}
}

func (b *Bank) Sample(ctx context.Context, filter questionbank.Filter, count int) ([]models.Question, error) {
	return b.Questions.Sample(ctx, filter, count)
}

func (b *Bank) SamplePapers(ctx context.Context, filter questionbank.Filter, count int) ([]models.Question, error) {
	return b.Papers.SampleQuestions(ctx, filter, count)
}

func (b *Bank) FindByIDs(ctx context.Context, ids []string) ([]models.Question, error) {
	var plain, synthetic []string
	for _, id := range ids {
		if _, _, ok := models.SplitPaperQuestionID(id); ok {
			synthetic = append(synthetic, id)
		} else {
			plain = append(plain, id)
		}
	}

	questions, err := b.Questions.FindByIDs(ctx, plain)
	if err != nil {
		return nil, err
	}
	if len(synthetic) > 0 {
		fromPapers, err := b.Papers.FindQuestionsByIDs(ctx, synthetic)
		if err != nil {
			return nil, err
		}
		questions = append(questions, fromPapers...)
	}
	return questions, nil
}

func (b *Bank) DistinctTopics(ctx context.Context, filter questionbank.Filter) ([]string, error) {
	return b.Questions.DistinctTopics(ctx, filter)
}

func (b *Bank) DistinctYears(ctx context.Context, filter questionbank.Filter) ([]int, error) {
	return b.Papers.DistinctYears(ctx, filter)
}
