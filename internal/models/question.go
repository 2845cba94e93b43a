package models

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Option is the one canonical option shape. Legacy payloads carry options as
// plain strings, {text, diagramUrl} objects, or objects whose keys are digit
// strings holding text fragments; NormalizeOptions folds all of them into
// this shape once, at ingestion.
type Option struct {
	Text       string `bson:"text" json:"text"`
	DiagramURL string `bson:"diagram_url,omitempty" json:"diagramUrl,omitempty"`
}

type Question struct {
	ID              string   `bson:"_id,omitempty" json:"id"`
	Question        string   `bson:"question" json:"question"`
	Options         []Option `bson:"options" json:"options"`
	CorrectAnswer   string   `bson:"correct_answer" json:"correctAnswer,omitempty"`
	Explanation     string   `bson:"explanation,omitempty" json:"explanation,omitempty"`
	Difficulty      string   `bson:"difficulty" json:"difficulty"`
	Subject         string   `bson:"subject" json:"subject"`
	Topic           string   `bson:"topic" json:"topic"`
	Syllabus        string   `bson:"syllabus" json:"syllabus"`
	Standard        string   `bson:"standard" json:"standard"`
	FrequentlyAsked bool     `bson:"frequently_asked,omitempty" json:"frequentlyAsked,omitempty"`
	// Set on questions derived from a previous-year paper.
	ExamYear int `bson:"exam_year,omitempty" json:"examYear,omitempty"`
}

// Difficulty levels accepted by the question bank.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// NormalizeOptions converts raw option values from an ingestion payload into
// canonical Options. Accepted inputs per element:
//   - string: becomes {text}
//   - map with "text"/"diagramUrl": used as-is (trimmed)
//   - map with digit-string keys ("0", "1", ...): fragments joined in key order
//   - anything else: empty option
func NormalizeOptions(raw []json.RawMessage) []Option {
	options := make([]Option, 0, len(raw))
	for _, r := range raw {
		options = append(options, normalizeOption(r))
	}
	return options
}

func normalizeOption(raw json.RawMessage) Option {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return Option{Text: strings.TrimSpace(s)}
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return Option{}
	}

	opt := Option{}
	if v, ok := m["diagramUrl"].(string); ok {
		opt.DiagramURL = strings.TrimSpace(v)
	}
	if v, ok := m["text"].(string); ok && strings.TrimSpace(v) != "" {
		opt.Text = strings.TrimSpace(v)
		return opt
	}

	// Numeric-keyed fragments: {"0":"H","1":"e","2":"llo"} -> "Hello".
	type fragment struct {
		order int
		text  string
	}
	var fragments []fragment
	for k, v := range m {
		idx, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		if text, ok := v.(string); ok {
			fragments = append(fragments, fragment{order: idx, text: text})
		}
	}
	sort.Slice(fragments, func(i, j int) bool { return fragments[i].order < fragments[j].order })

	var b strings.Builder
	for _, f := range fragments {
		b.WriteString(f.text)
	}
	if joined := b.String(); strings.TrimSpace(joined) != "" {
		opt.Text = joined
	}
	return opt
}
