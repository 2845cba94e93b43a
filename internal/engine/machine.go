package engine

import (
	"strings"
	"time"

	"quiz-session-service/internal/models"
)

// SubmitOutcome is the result of one answer submission. CorrectAnswer is set
// only for incorrect submissions; Terminated marks the timed-mode
// wrong-answer cutoff, distinct from normal Completed.
type SubmitOutcome struct {
	IsCorrect     bool
	CorrectAnswer string
	Completed     bool
	Terminated    bool
	NextCursor    *models.Cursor
}

// SubmitAnswer processes one answer against the session in memory. All
// preconditions are checked before any mutation, so a failed call leaves the
// session untouched. The caller persists the mutated session with a
// version-conditional write; the machine itself never touches Version.
func SubmitAnswer(s *models.Session, section, index int, question *models.Question, answer string, now time.Time) (*SubmitOutcome, error) {
	if s == nil || !s.IsActive || s.Terminal() {
		return nil, ErrSessionNotActive
	}
	entry := s.Entry(section, index)
	if entry == nil || entry.Status != models.StatusPending {
		return nil, ErrAlreadyAnswered
	}
	if question == nil || question.ID != entry.QuestionID {
		return nil, ErrQuestionNotFound
	}

	isCorrect := answersEqual(question.CorrectAnswer, answer)

	entry.Attempts++
	entry.AnsweredAt = &now
	s.Progress.CompletedQuestions++
	if isCorrect {
		entry.Status = models.StatusCorrect
		s.Progress.CorrectAnswers++
		s.Progress.CorrectAnswerList = append(s.Progress.CorrectAnswerList, question.ID)
	} else {
		entry.Status = models.StatusIncorrect
		s.Progress.WrongAnswers++
		s.Progress.WrongAnswerList = append(s.Progress.WrongAnswerList, models.WrongAnswer{
			QuestionID:     question.ID,
			SelectedOption: answer,
			AnsweredAt:     now,
		})
	}

	outcome := &SubmitOutcome{IsCorrect: isCorrect}
	if !isCorrect {
		outcome.CorrectAnswer = question.CorrectAnswer
	}

	// Timed cutoff: the triggering entry stays scored, the cursor stays put,
	// and the remaining entries stay pending.
	if s.WrongAnswersLimit > 0 && s.Progress.WrongAnswers >= s.WrongAnswersLimit {
		s.Progress.Status = models.ProgressAborted
		s.IsActive = false
		outcome.Terminated = true
		outcome.NextCursor = s.Cursor
		return outcome, nil
	}

	advanceCursor(s, section, index)
	if s.Progress.Status == models.ProgressCompleted {
		outcome.Completed = true
	}
	outcome.NextCursor = s.Cursor
	return outcome, nil
}

// advanceCursor moves the cursor to the position after the answered entry,
// rolling over section boundaries. Past the last entry of the last section
// the session completes. The cursor never moves backwards, so answering an
// earlier still-pending entry cannot regress it.
func advanceCursor(s *models.Session, section, index int) {
	nextSection, nextIndex := section, index+1
	for nextSection <= models.SectionCount && nextIndex >= len(s.Sections[nextSection-1]) {
		nextSection++
		nextIndex = 0
	}

	if nextSection > models.SectionCount {
		s.Progress.Status = models.ProgressCompleted
		s.IsActive = false
		s.Cursor = nil
		return
	}

	if s.Cursor != nil {
		if nextSection < s.Cursor.Section ||
			(nextSection == s.Cursor.Section && nextIndex < s.Cursor.Index) {
			s.Progress.Status = models.ProgressInProgress
			return
		}
	}
	s.Cursor = &models.Cursor{
		Section:    nextSection,
		Index:      nextIndex,
		QuestionID: s.Sections[nextSection-1][nextIndex].QuestionID,
	}
	s.Progress.Status = models.ProgressInProgress
}

// answersEqual applies the scoring rule: case-insensitive, whitespace-trimmed
// string equality. Exact equality, never substring or fuzzy matching.
func answersEqual(correct, submitted string) bool {
	return strings.EqualFold(strings.TrimSpace(correct), strings.TrimSpace(submitted))
}
