package engine

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"quiz-session-service/internal/models"
)

func makeQuestions(prefix string, n int) []models.Question {
	questions := make([]models.Question, n)
	for i := 0; i < n; i++ {
		questions[i] = models.Question{
			ID:            fmt.Sprintf("%s-%d", prefix, i),
			Question:      fmt.Sprintf("question %s-%d", prefix, i),
			CorrectAnswer: "A",
		}
	}
	return questions
}

func TestBuildSectionsAndNumbering(t *testing.T) {
	b := NewBuilder()
	pools := []SourcePool{{Source: SourceRandom, Weight: 1, Questions: makeQuestions("q", 40)}}

	result, err := b.Build(pools, Sizing{PerSection: 10})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if result.PerSection != 10 {
		t.Errorf("Expected 10 per section, got %d", result.PerSection)
	}

	seen := map[string]bool{}
	number := 0
	for s := 0; s < models.SectionCount; s++ {
		if len(result.Sections[s]) != 10 {
			t.Fatalf("Section %d has %d entries, expected 10", s+1, len(result.Sections[s]))
		}
		for _, entry := range result.Sections[s] {
			number++
			if entry.Number != number {
				t.Errorf("Expected number %d, got %d", number, entry.Number)
			}
			if entry.Status != models.StatusPending {
				t.Errorf("Expected pending status, got %q", entry.Status)
			}
			if entry.Attempts != 0 {
				t.Errorf("Expected 0 attempts, got %d", entry.Attempts)
			}
			if seen[entry.QuestionID] {
				t.Errorf("Duplicate question %s in layout", entry.QuestionID)
			}
			seen[entry.QuestionID] = true
		}
	}

	if result.Cursor.Section != 1 || result.Cursor.Index != 0 {
		t.Errorf("Cursor should start at section 1 index 0, got %+v", result.Cursor)
	}
	if result.Cursor.QuestionID != result.Sections[0][0].QuestionID {
		t.Errorf("Cursor question id does not match first entry")
	}
}

func TestBuildInsufficientQuestions(t *testing.T) {
	b := NewBuilder()
	pools := []SourcePool{{Source: SourceRandom, Weight: 1, Questions: makeQuestions("q", 5)}}

	_, err := b.Build(pools, Sizing{PerSection: 10})
	var insufficient *InsufficientQuestionsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("Expected InsufficientQuestionsError, got %v", err)
	}
	if insufficient.Required != 30 || insufficient.Found != 5 {
		t.Errorf("Expected required 30 found 5, got %+v", insufficient)
	}
}

func TestBuildDeduplicates(t *testing.T) {
	b := NewBuilder()
	// 10 unique questions repeated three times cannot fill 30 slots.
	base := makeQuestions("q", 10)
	var duplicated []models.Question
	for i := 0; i < 3; i++ {
		duplicated = append(duplicated, base...)
	}
	pools := []SourcePool{{Source: SourceRandom, Weight: 1, Questions: duplicated}}

	_, err := b.Build(pools, Sizing{PerSection: 10})
	var insufficient *InsufficientQuestionsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("Expected InsufficientQuestionsError, got %v", err)
	}
	if insufficient.Found != 10 {
		t.Errorf("Expected 10 unique found, got %d", insufficient.Found)
	}
}

func TestTimedSizing(t *testing.T) {
	tests := []struct {
		name   string
		sizing Sizing
		want   int
	}{
		{"fifteen minute challenge", Sizing{ChallengeSeconds: 900, SecondsPerQuestion: 30}, 10},
		{"five minute challenge", Sizing{ChallengeSeconds: 300, SecondsPerQuestion: 30}, 3},
		{"tiny challenge never goes below one", Sizing{ChallengeSeconds: 60, SecondsPerQuestion: 30}, 1},
		{"default seconds per question", Sizing{ChallengeSeconds: 900}, 10},
		{"explicit per section", Sizing{PerSection: 5}, 5},
		{"all defaults", Sizing{}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sizing.QuestionsPerSection(); got != tt.want {
				t.Errorf("QuestionsPerSection() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWeightedMergeHonorsQuotas(t *testing.T) {
	b := NewBuilder()
	pools := []SourcePool{
		{Source: SourceTopics, Weight: WeightTopics, Questions: makeQuestions("topic", 30)},
		{Source: SourcePreviousYear, Weight: WeightPreviousYear, Questions: makeQuestions("paper", 30)},
		{Source: SourceAttempted, Weight: WeightAttempted, Questions: makeQuestions("attempted", 30)},
		{Source: SourceRandom, Weight: WeightRandom, Questions: makeQuestions("random", 30)},
	}

	result, err := b.Build(pools, Sizing{PerSection: 10})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	counts := map[string]int{}
	for s := 0; s < models.SectionCount; s++ {
		for _, entry := range result.Sections[s] {
			prefix := strings.SplitN(entry.QuestionID, "-", 2)[0]
			counts[prefix]++
		}
	}
	want := map[string]int{"topic": 12, "paper": 9, "attempted": 6, "random": 3}
	for prefix, expected := range want {
		if counts[prefix] != expected {
			t.Errorf("Expected %d %s questions, got %d", expected, prefix, counts[prefix])
		}
	}
}

func TestWeightedMergeFillsShortfallFromRandom(t *testing.T) {
	b := NewBuilder()
	pools := []SourcePool{
		{Source: SourceTopics, Weight: WeightTopics, Questions: nil},
		{Source: SourcePreviousYear, Weight: WeightPreviousYear, Questions: makeQuestions("paper", 5)},
		{Source: SourceAttempted, Weight: WeightAttempted, Questions: nil},
		{Source: SourceRandom, Weight: WeightRandom, Questions: makeQuestions("random", 40)},
	}

	result, err := b.Build(pools, Sizing{PerSection: 10})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	total := 0
	for s := 0; s < models.SectionCount; s++ {
		total += len(result.Sections[s])
	}
	if total != 30 {
		t.Errorf("Expected 30 entries, got %d", total)
	}
}
