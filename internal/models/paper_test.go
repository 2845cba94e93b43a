package models

import "testing"

func TestPaperQuestionIDRoundTrip(t *testing.T) {
	id := PaperQuestionID("paper-123", 7)
	paperID, idx, ok := SplitPaperQuestionID(id)
	if !ok {
		t.Fatalf("SplitPaperQuestionID(%q) not ok", id)
	}
	if paperID != "paper-123" || idx != 7 {
		t.Errorf("Got %q/%d, want paper-123/7", paperID, idx)
	}
}

func TestSplitPaperQuestionIDRejectsPlainIDs(t *testing.T) {
	for _, id := range []string{"abc123", "paper#", "paper#x", "paper#-1", ""} {
		if _, _, ok := SplitPaperQuestionID(id); ok {
			t.Errorf("SplitPaperQuestionID(%q) should not be ok", id)
		}
	}
}

func TestQuestionAt(t *testing.T) {
	paper := QuestionPaper{
		ID:         "paper-1",
		ExamYear:   2019,
		Subject:    "physics",
		Syllabus:   "state",
		Standard:   "10",
		Unit:       "optics",
		Difficulty: DifficultyMedium,
		Questions: []PaperQuestion{
			{
				Question:      "What is the focal length?",
				Options:       []Option{{Text: "10 cm"}, {Text: "20 cm"}},
				CorrectAnswer: "20 cm",
			},
		},
	}

	q, err := paper.QuestionAt(0)
	if err != nil {
		t.Fatalf("QuestionAt(0) failed: %v", err)
	}
	if q.ID != PaperQuestionID("paper-1", 0) {
		t.Errorf("Expected synthetic id, got %q", q.ID)
	}
	if q.Topic != "optics" || q.ExamYear != 2019 || q.Subject != "physics" {
		t.Errorf("Paper metadata not carried onto question: %+v", q)
	}
	if q.CorrectAnswer != "20 cm" {
		t.Errorf("Correct answer not carried: %q", q.CorrectAnswer)
	}

	if _, err := paper.QuestionAt(1); err == nil {
		t.Error("QuestionAt(1) should fail for out-of-range index")
	}
	if _, err := paper.QuestionAt(-1); err == nil {
		t.Error("QuestionAt(-1) should fail")
	}
}
