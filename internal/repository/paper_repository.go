package repository

import (
	"context"
	"math/rand"

	"quiz-session-service/internal/models"
	"quiz-session-service/internal/questionbank"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type PaperRepository struct {
	Col *mongo.Collection
}

func NewPaperRepository(db *mongo.Database) *PaperRepository {
	return &PaperRepository{Col: db.Collection("question_papers")}
}

func paperMatch(filter questionbank.Filter) bson.M {
	match := bson.M{}
	if filter.Subject != "" {
		match["subject"] = filter.Subject
	}
	if filter.Syllabus != "" {
		match["syllabus"] = filter.Syllabus
	}
	if filter.Standard != "" {
		match["standard"] = filter.Standard
	}
	if len(filter.Years) > 0 {
		match["exam_year"] = bson.M{"$in": filter.Years}
	}
	if len(filter.Units) > 0 {
		match["unit"] = bson.M{"$in": filter.Units}
	}
	return match
}

func (r *PaperRepository) Create(ctx context.Context, paper *models.QuestionPaper) error {
	if paper.ID == "" {
		paper.ID = uuid.NewString()
	}
	_, err := r.Col.InsertOne(ctx, paper)
	return err
}

func (r *PaperRepository) FindByID(ctx context.Context, id string) (*models.QuestionPaper, error) {
	var paper models.QuestionPaper
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&paper)
	if err != nil {
		return nil, err
	}
	return &paper, nil
}

// SampleQuestions flattens the embedded questions of every matching paper into
// standalone questions under synthetic paper-derived ids, shuffles them and
// returns up to count. Exclusions apply to the synthetic ids.
func (r *PaperRepository) SampleQuestions(ctx context.Context, filter questionbank.Filter, count int) ([]models.Question, error) {
	cur, err := r.Col.Find(ctx, paperMatch(filter))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var papers []models.QuestionPaper
	if err := cur.All(ctx, &papers); err != nil {
		return nil, err
	}

	exclude := make(map[string]bool, len(filter.ExcludeIDs))
	for _, id := range filter.ExcludeIDs {
		exclude[id] = true
	}

	var pool []models.Question
	for _, paper := range papers {
		for idx := range paper.Questions {
			q, err := paper.QuestionAt(idx)
			if err != nil {
				continue
			}
			if exclude[q.ID] {
				continue
			}
			if filter.FrequentlyAsked && !q.FrequentlyAsked {
				continue
			}
			pool = append(pool, q)
		}
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > count {
		pool = pool[:count]
	}
	return pool, nil
}

// FindQuestionsByIDs resolves synthetic "paperID#index" ids back to the
// embedded questions. Ids whose paper or index no longer resolves are skipped.
func (r *PaperRepository) FindQuestionsByIDs(ctx context.Context, ids []string) ([]models.Question, error) {
	byPaper := make(map[string][]int)
	var paperIDs []string
	for _, id := range ids {
		paperID, idx, ok := models.SplitPaperQuestionID(id)
		if !ok {
			continue
		}
		if _, seen := byPaper[paperID]; !seen {
			paperIDs = append(paperIDs, paperID)
		}
		byPaper[paperID] = append(byPaper[paperID], idx)
	}
	if len(paperIDs) == 0 {
		return nil, nil
	}

	cur, err := r.Col.Find(ctx, bson.M{"_id": bson.M{"$in": paperIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var papers []models.QuestionPaper
	if err := cur.All(ctx, &papers); err != nil {
		return nil, err
	}

	var questions []models.Question
	for _, paper := range papers {
		for _, idx := range byPaper[paper.ID] {
			q, err := paper.QuestionAt(idx)
			if err != nil {
				continue
			}
			questions = append(questions, q)
		}
	}
	return questions, nil
}

func (r *PaperRepository) DistinctYears(ctx context.Context, filter questionbank.Filter) ([]int, error) {
	values, err := r.Col.Distinct(ctx, "exam_year", paperMatch(filter))
	if err != nil {
		return nil, err
	}
	years := make([]int, 0, len(values))
	for _, v := range values {
		switch year := v.(type) {
		case int32:
			years = append(years, int(year))
		case int64:
			years = append(years, int(year))
		case float64:
			years = append(years, int(year))
		case int:
			years = append(years, year)
		}
	}
	return years, nil
}
