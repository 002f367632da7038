package models

import "encoding/json"

// Quiz is a pure definition; one learner's run through it is a quiz attempt,
// a separate ephemeral entity.
type Quiz struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Questions    []Question `json:"questions"`
	TimeLimit    int        `json:"timeLimit,omitempty"` // seconds
	PassingScore float64    `json:"passingScore,omitempty"`
	Instructions string     `json:"instructions,omitempty"`
}

func (q *Quiz) UnmarshalJSON(data []byte) error {
	type alias Quiz
	aux := struct {
		*alias
		Questions json.RawMessage `json:"questions"`
	}{alias: (*alias)(q)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Questions) == 0 {
		return nil
	}
	questions, err := unmarshalQuestionList(aux.Questions)
	if err != nil {
		return err
	}
	q.Questions = questions
	return nil
}

// MaxScore sums the points of the auto-gradable questions, the ceiling of
// the score the attempt runtime can produce on its own.
func (q *Quiz) MaxScore() float64 {
	var total float64
	for _, question := range q.Questions {
		switch question.QuestionType() {
		case QuestionMultipleChoice, QuestionTrueFalse:
			total += question.PointsValue()
		}
	}
	return total
}

type Assignment struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     string     `json:"dueDate"`
	Points      float64    `json:"points"`
	Questions   []Question `json:"questions,omitempty"`
	Rubric      *Rubric    `json:"rubric,omitempty"`
}

func (a *Assignment) UnmarshalJSON(data []byte) error {
	type alias Assignment
	aux := struct {
		*alias
		Questions json.RawMessage `json:"questions"`
	}{alias: (*alias)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Questions) == 0 {
		return nil
	}
	questions, err := unmarshalQuestionList(aux.Questions)
	if err != nil {
		return err
	}
	a.Questions = questions
	return nil
}
