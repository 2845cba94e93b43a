package engine

import (
	"errors"
	"testing"

	"quiz-session-service/internal/models"
)

func TestVerifyProgress(t *testing.T) {
	tests := []struct {
		name     string
		progress models.Progress
		wantErr  bool
	}{
		{
			"consistent",
			models.Progress{CompletedQuestions: 5, CorrectAnswers: 3, WrongAnswers: 2, Status: models.ProgressInProgress},
			false,
		},
		{
			"zero",
			models.Progress{Status: models.ProgressNotStarted},
			false,
		},
		{
			"broken identity",
			models.Progress{CompletedQuestions: 5, CorrectAnswers: 3, WrongAnswers: 1, Status: models.ProgressInProgress},
			true,
		},
		{
			"negative counter",
			models.Progress{CompletedQuestions: -1, CorrectAnswers: -1, Status: models.ProgressInProgress},
			true,
		},
		{
			"unknown status",
			models.Progress{Status: "paused"},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyProgress(tt.progress)
			if (err != nil) != tt.wantErr {
				t.Errorf("VerifyProgress() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("Expected validation error, got %v", err)
			}
		})
	}
}

func TestComputeTopicPerformance(t *testing.T) {
	questions := map[string]models.Question{
		"q1": {ID: "q1", Topic: "optics"},
		"q2": {ID: "q2", Topic: "optics"},
		"q3": {ID: "q3", Topic: "optics"},
		"q4": {ID: "q4", Topic: "waves"},
	}
	progress := models.Progress{
		CompletedQuestions: 4,
		CorrectAnswers:     2,
		WrongAnswers:       2,
		CorrectAnswerList:  []string{"q1", "q4"},
		WrongAnswerList: []models.WrongAnswer{
			{QuestionID: "q2", SelectedOption: "B"},
			{QuestionID: "q3", SelectedOption: "C"},
		},
		Status: models.ProgressCompleted,
	}

	performance := ComputeTopicPerformance(progress, questions)
	if len(performance) != 2 {
		t.Fatalf("Expected 2 topics, got %d", len(performance))
	}
	// First-seen order: optics appears first in the correct list.
	optics := performance[0]
	if optics.Topic != "optics" || optics.Total != 3 || optics.Correct != 1 {
		t.Errorf("Optics tally wrong: %+v", optics)
	}
	// 1/3 rounds to 33.
	if optics.CorrectPercent != 33 {
		t.Errorf("Expected 33 percent, got %d", optics.CorrectPercent)
	}
	waves := performance[1]
	if waves.Topic != "waves" || waves.Total != 1 || waves.CorrectPercent != 100 {
		t.Errorf("Waves tally wrong: %+v", waves)
	}
}

func TestComputeTopicPerformanceSkipsUnresolved(t *testing.T) {
	progress := models.Progress{
		CorrectAnswerList: []string{"gone"},
		WrongAnswerList:   []models.WrongAnswer{{QuestionID: "also-gone"}},
	}
	performance := ComputeTopicPerformance(progress, map[string]models.Question{})
	if len(performance) != 0 {
		t.Errorf("Unresolved ids must be skipped, got %+v", performance)
	}
}

func TestScorePercent(t *testing.T) {
	tests := []struct {
		name     string
		progress models.Progress
		want     float64
	}{
		{"nothing answered", models.Progress{}, 0},
		{"two thirds", models.Progress{CompletedQuestions: 3, CorrectAnswers: 2, WrongAnswers: 1}, 66.67},
		{"perfect", models.Progress{CompletedQuestions: 4, CorrectAnswers: 4}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScorePercent(tt.progress); got != tt.want {
				t.Errorf("ScorePercent() = %v, want %v", got, tt.want)
			}
		})
	}
}
