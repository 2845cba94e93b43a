package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"quiz-session-service/internal/engine"
	"quiz-session-service/internal/models"
	"quiz-session-service/internal/repository"
)

// ContentService handles question-bank ingestion: standalone questions and
// previous-year papers. Payload options arrive in legacy shapes and are
// normalized once here.
type ContentService struct {
	Questions *repository.QuestionRepository
	Papers    *repository.PaperRepository
}

func NewContentService(questions *repository.QuestionRepository, papers *repository.PaperRepository) *ContentService {
	return &ContentService{Questions: questions, Papers: papers}
}

// QuestionInput is a question as submitted for ingestion. Options carry raw
// JSON so legacy shapes survive binding.
type QuestionInput struct {
	Question        string            `json:"question"`
	Options         []json.RawMessage `json:"options"`
	CorrectAnswer   string            `json:"correctAnswer"`
	Explanation     string            `json:"explanation"`
	Difficulty      string            `json:"difficulty"`
	Subject         string            `json:"subject"`
	Topic           string            `json:"topic"`
	Syllabus        string            `json:"syllabus"`
	Standard        string            `json:"standard"`
	FrequentlyAsked bool              `json:"frequentlyAsked"`
}

func (in QuestionInput) toModel() (*models.Question, error) {
	if strings.TrimSpace(in.Question) == "" {
		return nil, fmt.Errorf("%w: question text is required", engine.ErrValidation)
	}
	if strings.TrimSpace(in.CorrectAnswer) == "" {
		return nil, fmt.Errorf("%w: correctAnswer is required", engine.ErrValidation)
	}
	if strings.TrimSpace(in.Subject) == "" {
		return nil, fmt.Errorf("%w: subject is required", engine.ErrValidation)
	}
	options := models.NormalizeOptions(in.Options)
	if len(options) < 2 {
		return nil, fmt.Errorf("%w: at least two options are required", engine.ErrValidation)
	}

	difficulty := strings.ToLower(strings.TrimSpace(in.Difficulty))
	switch difficulty {
	case "":
		difficulty = models.DifficultyMedium
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
	default:
		return nil, fmt.Errorf("%w: unknown difficulty %q", engine.ErrValidation, in.Difficulty)
	}

	return &models.Question{
		Question:        strings.TrimSpace(in.Question),
		Options:         options,
		CorrectAnswer:   strings.TrimSpace(in.CorrectAnswer),
		Explanation:     strings.TrimSpace(in.Explanation),
		Difficulty:      difficulty,
		Subject:         strings.TrimSpace(in.Subject),
		Topic:           strings.TrimSpace(in.Topic),
		Syllabus:        strings.TrimSpace(in.Syllabus),
		Standard:        strings.TrimSpace(in.Standard),
		FrequentlyAsked: in.FrequentlyAsked,
	}, nil
}

func (c *ContentService) CreateQuestion(ctx context.Context, in QuestionInput) (*models.Question, error) {
	question, err := in.toModel()
	if err != nil {
		return nil, err
	}
	if err := c.Questions.Create(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// CreateQuestions ingests a batch. The whole batch is validated before any
// insert, so a bad element rejects the request instead of half-applying it.
func (c *ContentService) CreateQuestions(ctx context.Context, inputs []QuestionInput) (int, error) {
	if len(inputs) == 0 {
		return 0, fmt.Errorf("%w: empty batch", engine.ErrValidation)
	}
	questions := make([]models.Question, 0, len(inputs))
	for i, in := range inputs {
		q, err := in.toModel()
		if err != nil {
			return 0, fmt.Errorf("question %d: %w", i, err)
		}
		questions = append(questions, *q)
	}
	return c.Questions.CreateBulk(ctx, questions)
}

func (c *ContentService) GetQuestion(ctx context.Context, id string) (*models.Question, error) {
	question, err := c.Questions.FindByID(ctx, id)
	if err != nil {
		return nil, engine.ErrQuestionNotFound
	}
	return question, nil
}

// PaperQuestionInput mirrors QuestionInput for questions embedded in a paper.
type PaperQuestionInput struct {
	Question        string            `json:"question"`
	Options         []json.RawMessage `json:"options"`
	CorrectAnswer   string            `json:"correctAnswer"`
	DiagramURL      string            `json:"diagramUrl"`
	FrequentlyAsked bool              `json:"frequentlyAsked"`
}

type PaperInput struct {
	ExamYear   int                  `json:"examYear"`
	ExamType   string               `json:"examType"`
	Subject    string               `json:"subject"`
	Syllabus   string               `json:"syllabus"`
	Standard   string               `json:"standard"`
	PaperName  string               `json:"paperName"`
	Unit       string               `json:"unit"`
	Difficulty string               `json:"difficulty"`
	Questions  []PaperQuestionInput `json:"questions"`
}

func (c *ContentService) CreatePaper(ctx context.Context, in PaperInput) (*models.QuestionPaper, error) {
	if strings.TrimSpace(in.Subject) == "" {
		return nil, fmt.Errorf("%w: subject is required", engine.ErrValidation)
	}
	if in.ExamYear <= 0 {
		return nil, fmt.Errorf("%w: examYear is required", engine.ErrValidation)
	}
	if len(in.Questions) == 0 {
		return nil, fmt.Errorf("%w: paper has no questions", engine.ErrValidation)
	}

	questions := make([]models.PaperQuestion, 0, len(in.Questions))
	for i, pq := range in.Questions {
		if strings.TrimSpace(pq.Question) == "" || strings.TrimSpace(pq.CorrectAnswer) == "" {
			return nil, fmt.Errorf("%w: paper question %d is incomplete", engine.ErrValidation, i)
		}
		options := models.NormalizeOptions(pq.Options)
		if len(options) < 2 {
			return nil, fmt.Errorf("%w: paper question %d needs at least two options", engine.ErrValidation, i)
		}
		questions = append(questions, models.PaperQuestion{
			Question:        strings.TrimSpace(pq.Question),
			Options:         options,
			CorrectAnswer:   strings.TrimSpace(pq.CorrectAnswer),
			DiagramURL:      strings.TrimSpace(pq.DiagramURL),
			FrequentlyAsked: pq.FrequentlyAsked,
		})
	}

	paper := &models.QuestionPaper{
		ExamYear:   in.ExamYear,
		ExamType:   strings.TrimSpace(in.ExamType),
		Subject:    strings.TrimSpace(in.Subject),
		Syllabus:   strings.TrimSpace(in.Syllabus),
		Standard:   strings.TrimSpace(in.Standard),
		PaperName:  strings.TrimSpace(in.PaperName),
		Unit:       strings.TrimSpace(in.Unit),
		Difficulty: strings.ToLower(strings.TrimSpace(in.Difficulty)),
		Questions:  questions,
	}
	if err := c.Papers.Create(ctx, paper); err != nil {
		return nil, err
	}
	return paper, nil
}
