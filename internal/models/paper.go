package models

import (
	"fmt"
	"strconv"
	"strings"
)

// PaperQuestion is a question embedded in a previous-year paper. Papers are
// the unit of storage; individual questions are addressed by their index and
// surface in sessions under a synthetic id (see PaperQuestionID).
type PaperQuestion struct {
	Question        string   `bson:"question" json:"question"`
	Options         []Option `bson:"options" json:"options"`
	CorrectAnswer   string   `bson:"correct_answer" json:"correctAnswer"`
	DiagramURL      string   `bson:"diagram_url,omitempty" json:"diagramUrl,omitempty"`
	FrequentlyAsked bool     `bson:"frequently_asked,omitempty" json:"frequentlyAsked,omitempty"`
}

type QuestionPaper struct {
	ID         string          `bson:"_id,omitempty" json:"id"`
	ExamYear   int             `bson:"exam_year" json:"examYear"`
	ExamType   string          `bson:"exam_type" json:"examType"`
	Subject    string          `bson:"subject" json:"subject"`
	Syllabus   string          `bson:"syllabus" json:"syllabus"`
	Standard   string          `bson:"standard" json:"standard"`
	PaperName  string          `bson:"paper_name" json:"paperName"`
	Unit       string          `bson:"unit,omitempty" json:"unit,omitempty"`
	Difficulty string          `bson:"difficulty" json:"difficulty"`
	Questions  []PaperQuestion `bson:"questions" json:"questions"`
}

const paperIDSeparator = "#"

// PaperQuestionID builds the synthetic question id for question idx of a
// paper, so paper-derived questions flow through the engine like any other.
func PaperQuestionID(paperID string, idx int) string {
	return paperID + paperIDSeparator + strconv.Itoa(idx)
}

// SplitPaperQuestionID reverses PaperQuestionID. ok is false for ids that do
// not reference a paper question.
func SplitPaperQuestionID(id string) (paperID string, idx int, ok bool) {
	paperID, suffix, found := strings.Cut(id, paperIDSeparator)
	if !found {
		return "", 0, false
	}
	idx, err := strconv.Atoi(suffix)
	if err != nil || idx < 0 {
		return "", 0, false
	}
	return paperID, idx, true
}

// QuestionAt flattens the embedded question at idx into a bank Question.
func (p *QuestionPaper) QuestionAt(idx int) (Question, error) {
	if idx < 0 || idx >= len(p.Questions) {
		return Question{}, fmt.Errorf("paper %s has no question at index %d", p.ID, idx)
	}
	pq := p.Questions[idx]
	return Question{
		ID:              PaperQuestionID(p.ID, idx),
		Question:        pq.Question,
		Options:         pq.Options,
		CorrectAnswer:   pq.CorrectAnswer,
		Difficulty:      p.Difficulty,
		Subject:         p.Subject,
		Topic:           p.Unit,
		Syllabus:        p.Syllabus,
		Standard:        p.Standard,
		FrequentlyAsked: pq.FrequentlyAsked,
		ExamYear:        p.ExamYear,
	}, nil
}
