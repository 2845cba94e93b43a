package service

import (
	"context"

	"quiz-session-service/internal/engine"
	"quiz-session-service/internal/models"
	"quiz-session-service/internal/questionbank"
)

// ReviewQuestion is a fully revealed question for post-session review,
// including the correct answer and explanation.
type ReviewQuestion struct {
	ID             string          `json:"id"`
	Question       string          `json:"question"`
	Options        []models.Option `json:"options"`
	CorrectAnswer  string          `json:"correctAnswer"`
	Explanation    string          `json:"explanation,omitempty"`
	Topic          string          `json:"topic,omitempty"`
	Difficulty     string          `json:"difficulty,omitempty"`
	SelectedOption string          `json:"selectedOption,omitempty"`
}

// AnalysisReport is the per-session performance breakdown.
type AnalysisReport struct {
	SessionID          string                    `json:"sessionId"`
	Mode               models.Mode               `json:"mode"`
	Subject            string                    `json:"subject"`
	Status             string                    `json:"status"`
	CompletedQuestions int                       `json:"completedQuestions"`
	CorrectAnswers     int                       `json:"correctAnswers"`
	WrongAnswers       int                       `json:"wrongAnswers"`
	ScorePercent       float64                   `json:"scorePercent"`
	TopicPerformance   []engine.TopicPerformance `json:"topicPerformance"`
	CorrectQuestions   []ReviewQuestion          `json:"correctQuestions"`
	WrongQuestions     []ReviewQuestion          `json:"wrongQuestions"`
}

// Report builds the analysis report over the answered questions of a session.
// Questions that no longer resolve in the bank are skipped, not fatal.
func (s *SessionService) Report(ctx context.Context, sessionID, userID string) (*AnalysisReport, error) {
	session, err := s.Store.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, engine.ErrSessionNotFound
	}

	questions, err := s.answeredQuestions(ctx, session)
	if err != nil {
		return nil, err
	}

	report := &AnalysisReport{
		SessionID:          session.ID,
		Mode:               session.Mode,
		Subject:            session.Subject,
		Status:             session.Progress.Status,
		CompletedQuestions: session.Progress.CompletedQuestions,
		CorrectAnswers:     session.Progress.CorrectAnswers,
		WrongAnswers:       session.Progress.WrongAnswers,
		ScorePercent:       engine.ScorePercent(session.Progress),
		TopicPerformance:   engine.ComputeTopicPerformance(session.Progress, questions),
		CorrectQuestions:   []ReviewQuestion{},
		WrongQuestions:     []ReviewQuestion{},
	}

	for _, id := range session.Progress.CorrectAnswerList {
		if q, ok := questions[id]; ok {
			report.CorrectQuestions = append(report.CorrectQuestions, reviewQuestion(q, ""))
		}
	}
	for _, wrong := range session.Progress.WrongAnswerList {
		if q, ok := questions[wrong.QuestionID]; ok {
			report.WrongQuestions = append(report.WrongQuestions, reviewQuestion(q, wrong.SelectedOption))
		}
	}
	return report, nil
}

// MissedQuestions returns the incorrectly answered questions of a session,
// revealed for review.
func (s *SessionService) MissedQuestions(ctx context.Context, sessionID, userID string) ([]ReviewQuestion, error) {
	session, err := s.Store.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, engine.ErrSessionNotFound
	}

	questions, err := s.answeredQuestions(ctx, session)
	if err != nil {
		return nil, err
	}

	missed := []ReviewQuestion{}
	for _, wrong := range session.Progress.WrongAnswerList {
		if q, ok := questions[wrong.QuestionID]; ok {
			missed = append(missed, reviewQuestion(q, wrong.SelectedOption))
		}
	}
	return missed, nil
}

// Topics lists the distinct topics available for a subject.
func (s *SessionService) Topics(ctx context.Context, subject, syllabus, standard string) ([]string, error) {
	return s.Bank.DistinctTopics(ctx, questionbank.Filter{
		Subject:  subject,
		Syllabus: syllabus,
		Standard: standard,
	})
}

// Years lists the distinct exam years with previous-year papers for a subject.
func (s *SessionService) Years(ctx context.Context, subject string) ([]int, error) {
	return s.Bank.DistinctYears(ctx, questionbank.Filter{Subject: subject})
}

func (s *SessionService) answeredQuestions(ctx context.Context, session *models.Session) (map[string]models.Question, error) {
	ids := make([]string, 0, session.Progress.CompletedQuestions)
	ids = append(ids, session.Progress.CorrectAnswerList...)
	for _, wrong := range session.Progress.WrongAnswerList {
		ids = append(ids, wrong.QuestionID)
	}

	found, err := s.Bank.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	questions := make(map[string]models.Question, len(found))
	for _, q := range found {
		questions[q.ID] = q
	}
	return questions, nil
}

func reviewQuestion(q models.Question, selected string) ReviewQuestion {
	return ReviewQuestion{
		ID:             q.ID,
		Question:       q.Question,
		Options:        q.Options,
		CorrectAnswer:  q.CorrectAnswer,
		Explanation:    q.Explanation,
		Topic:          q.Topic,
		Difficulty:     q.Difficulty,
		SelectedOption: selected,
	}
}
