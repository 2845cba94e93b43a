package service

import (
	"context"
	"fmt"
	"strings"

	"quiz-session-service/internal/config"
	"quiz-session-service/internal/engine"
	"quiz-session-service/internal/event"
	"quiz-session-service/internal/models"
	"quiz-session-service/internal/questionbank"

	"github.com/google/uuid"
)

// historyLimit caps how many past sessions are mined for previously
// attempted questions.
const historyLimit = 20

// SessionStore is the persistence boundary of the session service.
// *repository.SessionRepository implements it; tests use an in-memory fake.
type SessionStore interface {
	FindByID(ctx context.Context, id string) (*models.Session, error)
	FindActive(ctx context.Context, userID, subject, syllabus, standard string, mode models.Mode) (*models.Session, error)
	Insert(ctx context.Context, session *models.Session) error
	ReplaceVersioned(ctx context.Context, session *models.Session) error
	DeactivateUserMode(ctx context.Context, userID string, mode models.Mode) error
	FindHistory(ctx context.Context, userID, subject string, limit int64) ([]models.Session, error)
}

type SessionService struct {
	Store   SessionStore
	Bank    questionbank.Lookup
	Events  event.Publisher
	builder *engine.Builder
	cfg     config.SessionConfig
}

func NewSessionService(store SessionStore, bank questionbank.Lookup, events event.Publisher, cfg config.SessionConfig) *SessionService {
	return &SessionService{
		Store:   store,
		Bank:    bank,
		Events:  events,
		builder: engine.NewBuilder(),
		cfg:     cfg,
	}
}

// StartSessionRequest carries the creation criteria. Mode decides which
// optional fields apply.
type StartSessionRequest struct {
	UserID   string      `json:"-"`
	Mode     models.Mode `json:"mode"`
	Subject  string      `json:"subject"`
	Syllabus string      `json:"syllabus"`
	Standard string      `json:"standard"`

	Topics       []string `json:"topics"`
	Difficulties []string `json:"difficulties"`
	Years        []int    `json:"years"`
	Units        []string `json:"units"`

	QuestionsPerSection int `json:"questionsPerSection"`
	ChallengeSeconds    int `json:"challengeSeconds"`
	WrongAnswersLimit   int `json:"wrongAnswersLimit"`
}

type StartSessionResult struct {
	Session *SessionView `json:"session"`
	Resumed bool         `json:"resumed"`
}

// StartSession returns the user's active session for the mode, or builds a
// new one. Exclusive modes deactivate the old session and always build fresh.
func (s *SessionService) StartSession(ctx context.Context, req StartSessionRequest) (*StartSessionResult, error) {
	if req.UserID == "" || strings.TrimSpace(req.Subject) == "" {
		return nil, fmt.Errorf("%w: userId and subject are required", engine.ErrValidation)
	}
	def, ok := engine.ModeDefinition(req.Mode)
	if !ok {
		return nil, fmt.Errorf("%w: unknown mode %q", engine.ErrValidation, req.Mode)
	}

	if def.ExclusivePerUser {
		// Exclusive per user across all subjects, not per (user, subject).
		if err := s.Store.DeactivateUserMode(ctx, req.UserID, req.Mode); err != nil {
			return nil, err
		}
	} else {
		existing, err := s.Store.FindActive(ctx, req.UserID, req.Subject, req.Syllabus, req.Standard, req.Mode)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			view, err := s.hydrate(ctx, existing)
			if err != nil {
				return nil, err
			}
			return &StartSessionResult{Session: view, Resumed: true}, nil
		}
	}

	sizing := engine.Sizing{
		PerSection:         req.QuestionsPerSection,
		SecondsPerQuestion: s.cfg.SecondsPerQuestion,
	}
	if sizing.PerSection <= 0 {
		sizing.PerSection = def.DefaultPerSection
	}
	if sizing.PerSection <= 0 {
		sizing.PerSection = s.cfg.QuestionsPerSection
	}
	if def.TimedSizing && req.ChallengeSeconds > 0 {
		sizing.ChallengeSeconds = req.ChallengeSeconds
	}
	required := sizing.QuestionsPerSection() * models.SectionCount

	pools, err := s.assemblePools(ctx, req, def, required)
	if err != nil {
		return nil, err
	}

	built, err := s.builder.Build(pools, sizing)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		Token:    uuid.NewString(),
		UserID:   req.UserID,
		Mode:     req.Mode,
		Subject:  req.Subject,
		Syllabus: req.Syllabus,
		Standard: req.Standard,
		Sections: built.Sections,
		Cursor:   &built.Cursor,
		Progress: models.Progress{
			CorrectAnswerList: []string{},
			WrongAnswerList:   []models.WrongAnswer{},
			Status:            models.ProgressNotStarted,
		},
		IsActive: true,
	}
	if def.TimedSizing {
		session.WrongAnswersLimit = s.cfg.WrongAnswersLimit
		if req.WrongAnswersLimit > 0 {
			session.WrongAnswersLimit = req.WrongAnswersLimit
		}
		session.ChallengeSeconds = sizing.ChallengeSeconds
		session.SecondsPerQuestion = s.cfg.SecondsPerQuestion
	}

	if err := s.Store.Insert(ctx, session); err != nil {
		return nil, err
	}
	s.publish("session.started", map[string]interface{}{
		"sessionId": session.ID,
		"userId":    session.UserID,
		"mode":      session.Mode,
		"subject":   session.Subject,
	})

	view, err := s.hydrate(ctx, session)
	if err != nil {
		return nil, err
	}
	return &StartSessionResult{Session: view}, nil
}

// assemblePools picks the source pools for the mode. Weighted mode draws from
// four sources; everything else is a single filtered pool.
func (s *SessionService) assemblePools(ctx context.Context, req StartSessionRequest, def engine.Definition, required int) ([]engine.SourcePool, error) {
	base := questionbank.Filter{
		Subject:  req.Subject,
		Syllabus: req.Syllabus,
		Standard: req.Standard,
	}

	if def.Weighted {
		return s.weightedPools(ctx, req, base, required)
	}

	if def.PaperSourced {
		filter := base
		filter.Years = req.Years
		filter.Units = req.Units
		filter.ExcludeIDs = s.attemptedQuestionIDs(ctx, req.UserID, req.Subject)
		pool, err := s.Bank.SamplePapers(ctx, filter, required)
		if err != nil {
			return nil, err
		}
		return []engine.SourcePool{{Source: engine.SourcePreviousYear, Weight: 1, Questions: pool}}, nil
	}

	filter := base
	filter.Topics = req.Topics
	filter.Difficulties = req.Difficulties
	filter.FrequentlyAsked = def.FrequentlyAskedOnly
	pool, err := s.Bank.Sample(ctx, filter, required)
	if err != nil {
		return nil, err
	}
	return []engine.SourcePool{{Source: engine.SourceRandom, Weight: 1, Questions: pool}}, nil
}

// weightedPools assembles the personalized split: requested topics, paper
// questions, previously attempted questions and a random fallback. Every pool
// is fetched at full size so the builder can fill a shortfall from any of
// them.
func (s *SessionService) weightedPools(ctx context.Context, req StartSessionRequest, base questionbank.Filter, required int) ([]engine.SourcePool, error) {
	topicFilter := base
	topicFilter.Topics = req.Topics
	topicPool, err := s.Bank.Sample(ctx, topicFilter, required)
	if err != nil {
		return nil, err
	}

	paperPool, err := s.Bank.SamplePapers(ctx, base, required)
	if err != nil {
		return nil, err
	}

	var attemptedPool []models.Question
	if ids := s.attemptedQuestionIDs(ctx, req.UserID, req.Subject); len(ids) > 0 {
		attemptedPool, err = s.Bank.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	randomPool, err := s.Bank.Sample(ctx, base, required)
	if err != nil {
		return nil, err
	}

	return []engine.SourcePool{
		{Source: engine.SourceTopics, Weight: engine.WeightTopics, Questions: topicPool},
		{Source: engine.SourcePreviousYear, Weight: engine.WeightPreviousYear, Questions: paperPool},
		{Source: engine.SourceAttempted, Weight: engine.WeightAttempted, Questions: attemptedPool},
		{Source: engine.SourceRandom, Weight: engine.WeightRandom, Questions: randomPool},
	}, nil
}

// attemptedQuestionIDs mines recent inactive sessions for answered question
// ids. History failures degrade to an empty list rather than blocking
// creation.
func (s *SessionService) attemptedQuestionIDs(ctx context.Context, userID, subject string) []string {
	history, err := s.Store.FindHistory(ctx, userID, subject, historyLimit)
	if err != nil {
		return nil
	}
	seen := make(map[string]bool)
	var ids []string
	for _, past := range history {
		for _, entry := range past.AllEntries() {
			if entry.Status == models.StatusPending || seen[entry.QuestionID] {
				continue
			}
			seen[entry.QuestionID] = true
			ids = append(ids, entry.QuestionID)
		}
	}
	return ids
}

// SubmitRequest addresses one pending entry and carries the chosen answer.
type SubmitRequest struct {
	UserID  string `json:"-"`
	Section int    `json:"section"`
	Index   int    `json:"questionIndex"`
	Answer  string `json:"answer"`
}

// SubmitResult mirrors the machine outcome plus the hydrated next question.
type SubmitResult struct {
	IsCorrect     bool            `json:"isCorrect"`
	CorrectAnswer string          `json:"correctAnswer,omitempty"`
	Explanation   string          `json:"explanation,omitempty"`
	Completed     bool            `json:"completed"`
	Terminated    bool            `json:"terminated"`
	Progress      models.Progress `json:"progress"`
	NextCursor    *models.Cursor  `json:"currentQuestion,omitempty"`
	NextQuestion  *QuestionView   `json:"nextQuestion,omitempty"`
}

// Submit scores one answer and persists the session with a single
// version-conditional write. A concurrent writer surfaces as ErrStaleSession.
func (s *SessionService) Submit(ctx context.Context, sessionID string, req SubmitRequest) (*SubmitResult, error) {
	if strings.TrimSpace(req.Answer) == "" {
		return nil, fmt.Errorf("%w: answer is required", engine.ErrValidation)
	}

	session, err := s.Store.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != req.UserID {
		return nil, engine.ErrSessionNotFound
	}

	var question *models.Question
	if entry := session.Entry(req.Section, req.Index); entry != nil {
		found, err := s.Bank.FindByIDs(ctx, []string{entry.QuestionID})
		if err != nil {
			return nil, err
		}
		if len(found) == 1 {
			question = &found[0]
		}
	}

	outcome, err := engine.SubmitAnswer(session, req.Section, req.Index, question, req.Answer, timeNow())
	if err != nil {
		return nil, err
	}

	if err := s.Store.ReplaceVersioned(ctx, session); err != nil {
		return nil, err
	}

	if outcome.Completed {
		s.publishTerminal("session.completed", session)
	}
	if outcome.Terminated {
		s.publishTerminal("session.aborted", session)
	}

	result := &SubmitResult{
		IsCorrect:     outcome.IsCorrect,
		CorrectAnswer: outcome.CorrectAnswer,
		Completed:     outcome.Completed,
		Terminated:    outcome.Terminated,
		Progress:      session.Progress,
		NextCursor:    outcome.NextCursor,
	}
	if !outcome.IsCorrect && question != nil {
		result.Explanation = question.Explanation
	}
	if outcome.NextCursor != nil && !outcome.Terminated {
		next, err := s.questionView(ctx, outcome.NextCursor.QuestionID)
		if err == nil {
			result.NextQuestion = next
		}
	}
	return result, nil
}

func (s *SessionService) GetSession(ctx context.Context, sessionID, userID string) (*SessionView, error) {
	session, err := s.Store.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, engine.ErrSessionNotFound
	}
	return s.hydrate(ctx, session)
}

func (s *SessionService) GetActiveSession(ctx context.Context, userID, subject, syllabus, standard string, mode models.Mode) (*SessionView, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown mode %q", engine.ErrValidation, mode)
	}
	session, err := s.Store.FindActive(ctx, userID, subject, syllabus, standard, mode)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, engine.ErrSessionNotFound
	}
	return s.hydrate(ctx, session)
}

func (s *SessionService) hydrate(ctx context.Context, session *models.Session) (*SessionView, error) {
	var current *QuestionView
	if session.Cursor != nil {
		view, err := s.questionView(ctx, session.Cursor.QuestionID)
		if err != nil {
			return nil, err
		}
		current = view
	}
	return newSessionView(session, current), nil
}

func (s *SessionService) questionView(ctx context.Context, questionID string) (*QuestionView, error) {
	found, err := s.Bank.FindByIDs(ctx, []string{questionID})
	if err != nil {
		return nil, err
	}
	if len(found) != 1 {
		return nil, engine.ErrQuestionNotFound
	}
	view := newQuestionView(found[0])
	return &view, nil
}

func (s *SessionService) publish(eventType string, payload interface{}) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(eventType, payload); err != nil {
		// Session state is already persisted; a lost event is not fatal.
		return
	}
}

func (s *SessionService) publishTerminal(eventType string, session *models.Session) {
	s.publish(eventType, map[string]interface{}{
		"sessionId": session.ID,
		"userId":    session.UserID,
		"mode":      session.Mode,
		"subject":   session.Subject,
		"score":     engine.ScorePercent(session.Progress),
		"progress":  session.Progress,
	})
}
