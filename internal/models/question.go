package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionEssay          QuestionType = "essay"
	QuestionCoding         QuestionType = "coding"
	QuestionTrueFalse      QuestionType = "true-false"
	QuestionShortAnswer    QuestionType = "short-answer"
	QuestionMatching       QuestionType = "matching"
)

// Question is the closed set of question kinds. Each kind carries exactly its
// own fields, so a true-false question holding options is unrepresentable.
//
// CheckAnswer reports whether a submitted answer value is well-formed for the
// kind (an index in range, a non-empty string, and so on). Grade returns the
// points earned for the answer: only multiple-choice and true-false carry a
// machine-checkable correct answer, every other kind always grades to zero
// and is expected to be scored out-of-band.
type Question interface {
	QuestionID() string
	QuestionType() QuestionType
	PointsValue() float64
	Base() *QuestionBase
	CheckAnswer(answer any) error
	Grade(answer any) float64
}

// QuestionBase holds the fields shared by every question kind.
type QuestionBase struct {
	ID          string       `json:"id"`
	Type        QuestionType `json:"type"`
	Text        string       `json:"question"`
	Explanation string       `json:"explanation,omitempty"`
	Points      float64      `json:"points"`
}

func (b *QuestionBase) QuestionID() string         { return b.ID }
func (b *QuestionBase) QuestionType() QuestionType { return b.Type }
func (b *QuestionBase) PointsValue() float64       { return b.Points }
func (b *QuestionBase) Base() *QuestionBase        { return b }

type RubricCriterion struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Points      float64 `json:"points"`
}

type Rubric struct {
	Criteria []RubricCriterion `json:"criteria"`
}

type MultipleChoiceQuestion struct {
	QuestionBase
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	AllowMultiple bool     `json:"allowMultiple,omitempty"`
}

func (q *MultipleChoiceQuestion) CheckAnswer(answer any) error {
	idx, ok := answerIndex(answer)
	if !ok {
		return fmt.Errorf("answer must be an option index")
	}
	if idx < 0 || idx >= len(q.Options) {
		return fmt.Errorf("option index %d out of range [0, %d)", idx, len(q.Options))
	}
	return nil
}

func (q *MultipleChoiceQuestion) Grade(answer any) float64 {
	if idx, ok := answerIndex(answer); ok && idx == q.CorrectAnswer {
		return q.Points
	}
	return 0
}

type EssayQuestion struct {
	QuestionBase
	MinWords int     `json:"minWords,omitempty"`
	MaxWords int     `json:"maxWords,omitempty"`
	Rubric   *Rubric `json:"rubric,omitempty"`
}

func (q *EssayQuestion) CheckAnswer(answer any) error { return checkNonEmptyText(answer) }
func (q *EssayQuestion) Grade(any) float64            { return 0 }

type CodingQuestion struct {
	QuestionBase
	InitialCode string     `json:"initialCode"`
	TestCases   []TestCase `json:"testCases"`
}

func (q *CodingQuestion) CheckAnswer(answer any) error { return checkNonEmptyText(answer) }
func (q *CodingQuestion) Grade(any) float64            { return 0 }

type TrueFalseQuestion struct {
	QuestionBase
	CorrectAnswer bool `json:"correctAnswer"`
}

func (q *TrueFalseQuestion) CheckAnswer(answer any) error {
	if _, ok := answer.(bool); !ok {
		return fmt.Errorf("answer must be true or false")
	}
	return nil
}

func (q *TrueFalseQuestion) Grade(answer any) float64 {
	if v, ok := answer.(bool); ok && v == q.CorrectAnswer {
		return q.Points
	}
	return 0
}

type ShortAnswerQuestion struct {
	QuestionBase
	SampleAnswer string   `json:"sampleAnswer,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
}

func (q *ShortAnswerQuestion) CheckAnswer(answer any) error { return checkNonEmptyText(answer) }
func (q *ShortAnswerQuestion) Grade(any) float64            { return 0 }

type MatchPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

type MatchingQuestion struct {
	QuestionBase
	Pairs []MatchPair `json:"pairs"`
}

func (q *MatchingQuestion) CheckAnswer(answer any) error {
	switch v := answer.(type) {
	case map[string]any:
		if len(v) > 0 {
			return nil
		}
	case []any:
		if len(v) > 0 {
			return nil
		}
	}
	return fmt.Errorf("answer must be a non-empty set of matches")
}

func (q *MatchingQuestion) Grade(any) float64 { return 0 }

// UnmarshalQuestion decodes one question from its JSON envelope, dispatching
// on the type discriminant. Decoding into the concrete struct means fields
// from other kinds present in the input are dropped rather than carried
// along. An unrecognized type is an error naming the offending value; this
// is the single place to extend when a new question kind is added.
func UnmarshalQuestion(data []byte) (Question, error) {
	var head struct {
		Type QuestionType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decoding question: %w", err)
	}

	var q Question
	switch head.Type {
	case QuestionMultipleChoice:
		q = &MultipleChoiceQuestion{}
	case QuestionEssay:
		q = &EssayQuestion{}
	case QuestionCoding:
		q = &CodingQuestion{}
	case QuestionTrueFalse:
		q = &TrueFalseQuestion{}
	case QuestionShortAnswer:
		q = &ShortAnswerQuestion{}
	case QuestionMatching:
		q = &MatchingQuestion{}
	default:
		return nil, fmt.Errorf("unrecognized question type %q", head.Type)
	}

	if err := json.Unmarshal(data, q); err != nil {
		return nil, fmt.Errorf("decoding %s question: %w", head.Type, err)
	}
	return q, nil
}

func unmarshalQuestionList(data []byte) ([]Question, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	questions := make([]Question, 0, len(raws))
	for _, raw := range raws {
		q, err := UnmarshalQuestion(raw)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// answerIndex coerces a submitted answer to an option index. JSON numbers
// decode as float64, so fractional values are rejected rather than truncated.
func answerIndex(answer any) (int, bool) {
	switch v := answer.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	}
	return 0, false
}

func checkNonEmptyText(answer any) error {
	s, ok := answer.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return fmt.Errorf("answer must be a non-empty text")
	}
	return nil
}
