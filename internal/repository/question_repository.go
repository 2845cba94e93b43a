package repository

import (
	"context"

	"quiz-session-service/internal/models"
	"quiz-session-service/internal/questionbank"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type QuestionRepository struct {
	Col *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{Col: db.Collection("questions")}
}

func questionMatch(filter questionbank.Filter) bson.M {
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
	if len(filter.Topics) > 0 {
		match["topic"] = bson.M{"$in": filter.Topics}
	}
	if len(filter.Difficulties) > 0 {
		match["difficulty"] = bson.M{"$in": filter.Difficulties}
	}
	if filter.FrequentlyAsked {
		match["frequently_asked"] = true
	}
	if len(filter.ExcludeIDs) > 0 {
		match["_id"] = bson.M{"$nin": filter.ExcludeIDs}
	}
	return match
}

// Sample returns up to count random questions matching the filter, using
// database-level random sampling.
func (r *QuestionRepository) Sample(ctx context.Context, filter questionbank.Filter, count int) ([]models.Question, error) {
	pipeline := []bson.M{
		{"$match": questionMatch(filter)},
		{"$sample": bson.M{"size": count}},
	}
	cur, err := r.Col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var questions []models.Question
	if err := cur.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*models.Question, error) {
	var question models.Question
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := r.Col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var questions []models.Question
	if err := cur.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	if question.ID == "" {
		question.ID = uuid.NewString()
	}
	_, err := r.Col.InsertOne(ctx, question)
	return err
}

func (r *QuestionRepository) CreateBulk(ctx context.Context, questions []models.Question) (int, error) {
	docs := make([]interface{}, 0, len(questions))
	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = uuid.NewString()
		}
		docs = append(docs, questions[i])
	}
	res, err := r.Col.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

func (r *QuestionRepository) DistinctTopics(ctx context.Context, filter questionbank.Filter) ([]string, error) {
	values, err := r.Col.Distinct(ctx, "topic", questionMatch(filter))
	if err != nil {
		return nil, err
	}
	topics := make([]string, 0, len(values))
	for _, v := range values {
		if topic, ok := v.(string); ok && topic != "" {
			topics = append(topics, topic)
		}
	}
	return topics, nil
}
