package models

import "time"

// Mode selects the session flavor. All modes share the same engine and
// differ only in builder criteria, sizing and termination rule.
type Mode string

const (
	ModeRandom       Mode = "random"
	ModePracticePlan Mode = "practice_plan"
	ModePersonalized Mode = "personalized"
	ModeMockBattle   Mode = "mock_battle"
	ModeTimed        Mode = "timed"
	ModePreviousYear Mode = "previous_year"
	ModeDaily        Mode = "daily"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeRandom, ModePracticePlan, ModePersonalized, ModeMockBattle,
		ModeTimed, ModePreviousYear, ModeDaily:
		return true
	}
	return false
}

// Entry statuses.
const (
	StatusPending   = "pending"
	StatusAttempted = "attempted"
	StatusCorrect   = "correct"
	StatusIncorrect = "incorrect"
)

// Session progress statuses.
const (
	ProgressNotStarted = "not_started"
	ProgressInProgress = "in_progress"
	ProgressCompleted  = "completed"
	ProgressAborted    = "aborted"
)

// SectionEntry is one slot of a section. Membership is fixed at build time;
// only Status, Attempts and AnsweredAt mutate, exactly once per submission.
type SectionEntry struct {
	QuestionID string     `bson:"question_id" json:"questionId"`
	Number     int        `bson:"number" json:"number"`
	Status     string     `bson:"status" json:"status"`
	Attempts   int        `bson:"attempts" json:"attempts"`
	AnsweredAt *time.Time `bson:"answered_at,omitempty" json:"answeredAt,omitempty"`
}

// Cursor points at the next pending entry. Section is 1-based, Index is the
// 0-based position inside that section. A nil cursor means the session is
// terminal.
type Cursor struct {
	Section    int    `bson:"section" json:"section"`
	Index      int    `bson:"question_index" json:"questionIndex"`
	QuestionID string `bson:"question_id" json:"questionId"`
}

type WrongAnswer struct {
	QuestionID     string    `bson:"question_id" json:"questionId"`
	SelectedOption string    `bson:"selected_option" json:"selectedOption"`
	AnsweredAt     time.Time `bson:"answered_at" json:"answeredAt"`
}

// Progress is the derived aggregate kept consistent by the state machine:
// CompletedQuestions == CorrectAnswers + WrongAnswers always holds.
type Progress struct {
	CompletedQuestions int           `bson:"completed_questions" json:"completedQuestions"`
	CorrectAnswers     int           `bson:"correct_answers" json:"correctAnswers"`
	WrongAnswers       int           `bson:"wrong_answers" json:"wrongAnswers"`
	CorrectAnswerList  []string      `bson:"correct_answer_list" json:"correctAnswerList"`
	WrongAnswerList    []WrongAnswer `bson:"wrong_answer_list" json:"wrongAnswerList"`
	Status             string        `bson:"status" json:"status"`
}

const SectionCount = 3

// Session is one quiz attempt instance: three fixed sections, a cursor, the
// progress aggregate and an active flag. Version is the optimistic
// concurrency token; every persisted update is conditional on it.
type Session struct {
	ID       string `bson:"_id,omitempty" json:"id"`
	Token    string `bson:"token" json:"token"`
	UserID   string `bson:"user_id" json:"userId"`
	Mode     Mode   `bson:"mode" json:"mode"`
	Subject  string `bson:"subject" json:"subject"`
	Syllabus string `bson:"syllabus,omitempty" json:"syllabus,omitempty"`
	Standard string `bson:"standard,omitempty" json:"standard,omitempty"`

	Sections [SectionCount][]SectionEntry `bson:"sections" json:"sections"`
	Cursor   *Cursor                      `bson:"cursor,omitempty" json:"cursor,omitempty"`
	Progress Progress                     `bson:"progress" json:"progress"`

	IsActive bool  `bson:"is_active" json:"isActive"`
	Version  int64 `bson:"version" json:"version"`

	// Timed mode only: hard cutoff and the advisory time budget computed at
	// build time. The server enforces the wrong-answer limit; elapsed time is
	// the caller's concern.
	WrongAnswersLimit  int `bson:"wrong_answers_limit,omitempty" json:"wrongAnswersLimit,omitempty"`
	ChallengeSeconds   int `bson:"challenge_seconds,omitempty" json:"challengeSeconds,omitempty"`
	SecondsPerQuestion int `bson:"seconds_per_question,omitempty" json:"secondsPerQuestion,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Entry returns the entry at (section 1..3, index) or nil when out of range.
func (s *Session) Entry(section, index int) *SectionEntry {
	if section < 1 || section > SectionCount {
		return nil
	}
	entries := s.Sections[section-1]
	if index < 0 || index >= len(entries) {
		return nil
	}
	return &entries[index]
}

// AllEntries returns the entries of all sections in order.
func (s *Session) AllEntries() []SectionEntry {
	var all []SectionEntry
	for _, sec := range s.Sections {
		all = append(all, sec...)
	}
	return all
}

// QuestionIDs returns every question id referenced by the session, in order.
func (s *Session) QuestionIDs() []string {
	entries := s.AllEntries()
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.QuestionID)
	}
	return ids
}

func (s *Session) Terminal() bool {
	return s.Progress.Status == ProgressCompleted || s.Progress.Status == ProgressAborted
}
