package service

import (
	"quiz-session-service/internal/models"
)

// QuestionView is a question as shown to the test taker. The correct answer
// and explanation are never part of it; they surface only after an incorrect
// submission or in the post-session report.
type QuestionView struct {
	ID         string          `json:"id"`
	Question   string          `json:"question"`
	Options    []models.Option `json:"options"`
	Difficulty string          `json:"difficulty,omitempty"`
	Subject    string          `json:"subject,omitempty"`
	Topic      string          `json:"topic,omitempty"`
	ExamYear   int             `json:"examYear,omitempty"`
}

func newQuestionView(q models.Question) QuestionView {
	return QuestionView{
		ID:         q.ID,
		Question:   q.Question,
		Options:    q.Options,
		Difficulty: q.Difficulty,
		Subject:    q.Subject,
		Topic:      q.Topic,
		ExamYear:   q.ExamYear,
	}
}

// SessionView is the client-facing session snapshot: the layout, the cursor,
// progress and the hydrated current question.
type SessionView struct {
	ID       string      `json:"id"`
	Token    string      `json:"token"`
	UserID   string      `json:"userId"`
	Mode     models.Mode `json:"mode"`
	Subject  string      `json:"subject"`
	Syllabus string      `json:"syllabus,omitempty"`
	Standard string      `json:"standard,omitempty"`

	Sections [models.SectionCount][]models.SectionEntry `json:"sections"`
	Cursor   *models.Cursor                             `json:"currentQuestion,omitempty"`
	Progress models.Progress                            `json:"progress"`
	IsActive bool                                       `json:"isActive"`

	CurrentQuestion *QuestionView `json:"question,omitempty"`

	WrongAnswersLimit  int `json:"wrongAnswersLimit,omitempty"`
	ChallengeSeconds   int `json:"challengeSeconds,omitempty"`
	SecondsPerQuestion int `json:"secondsPerQuestion,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func newSessionView(s *models.Session, current *QuestionView) *SessionView {
	return &SessionView{
		ID:                 s.ID,
		Token:              s.Token,
		UserID:             s.UserID,
		Mode:               s.Mode,
		Subject:            s.Subject,
		Syllabus:           s.Syllabus,
		Standard:           s.Standard,
		Sections:           s.Sections,
		Cursor:             s.Cursor,
		Progress:           s.Progress,
		IsActive:           s.IsActive,
		CurrentQuestion:    current,
		WrongAnswersLimit:  s.WrongAnswersLimit,
		ChallengeSeconds:   s.ChallengeSeconds,
		SecondsPerQuestion: s.SecondsPerQuestion,
		CreatedAt:          s.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:          s.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
