package curriculum

import (
	"bytes"
	"encoding/json"
	"fmt"

	"curriculum-service/internal/models"

	"github.com/google/uuid"
)

// Tables supplies the course and module lookup tables used to resolve bare-id
// references in a cross-referencing import. A self-contained document needs
// neither.
type Tables struct {
	Courses map[string]json.RawMessage
	Modules map[string]json.RawMessage
}

// Normalize turns a raw import document into a fully-typed, id-complete
// curriculum. It is pure: no I/O, the input is never mutated, and re-running
// it on an already-normalized document changes nothing but ids that were
// missing. A document that fails the required shape yields a *FormatError
// naming the offending field.
func Normalize(raw []byte) (*models.Curriculum, error) {
	return NormalizeWith(raw, Tables{})
}

// NormalizeWith is Normalize with reference resolution against the supplied
// tables. Every bare-id course or module entry is inlined before the rest of
// the pipeline runs; an id absent from its table is a format error.
func NormalizeWith(raw []byte, tables Tables) (*models.Curriculum, error) {
	if err := checkSchema(raw); err != nil {
		return nil, err
	}

	var in curriculumInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, &FormatError{Detail: err.Error()}
	}

	cur := &models.Curriculum{
		ID:          in.ID,
		Name:        in.Name,
		Description: in.Description,
		Degrees:     make([]models.Degree, 0, len(in.Degrees)),
	}
	for i, d := range in.Degrees {
		deg, err := normalizeDegree(d, tables, fmt.Sprintf("degrees[%d]", i))
		if err != nil {
			return nil, err
		}
		cur.Degrees = append(cur.Degrees, deg)
	}
	return cur, nil
}

type curriculumInput struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Degrees     []degreeInput `json:"degrees"`
}

type degreeInput struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Description string `json:"description"`
	// degree type is passed through verbatim, see models.Degree
	RequiredCredits int       `json:"requiredCredits"`
	Courses         []nodeRef `json:"courses"`
}

type courseInput struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Credits     int       `json:"credits"`
	Level       string    `json:"level"`
	Modules     []nodeRef `json:"modules"`
}

type moduleInput struct {
	ID                 string                     `json:"id"`
	Title              string                     `json:"title"`
	Description        string                     `json:"description"`
	Credits            int                        `json:"credits"`
	Metadata           models.ModuleMetadata      `json:"metadata"`
	LearningObjectives []models.LearningObjective `json:"learningObjectives"`
	Resources          []json.RawMessage          `json:"resources"`
	Assignments        []json.RawMessage          `json:"assignments"`
	Quizzes            []quizInput                `json:"quizzes"`
}

type quizInput struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Questions    []json.RawMessage `json:"questions"`
	TimeLimit    int               `json:"timeLimit"`
	PassingScore float64           `json:"passingScore"`
	Instructions string            `json:"instructions"`
}

// nodeRef is the two-case course/module entry: a bare id string referencing a
// separately supplied table, or a fully inlined object.
type nodeRef struct {
	ID  string
	Raw json.RawMessage
}

func (r *nodeRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	r.Raw = append(json.RawMessage(nil), data...)
	return nil
}

func (r nodeRef) resolve(table map[string]json.RawMessage, kind, path string) (json.RawMessage, error) {
	if r.Raw != nil {
		return r.Raw, nil
	}
	if raw, ok := table[r.ID]; ok {
		return raw, nil
	}
	return nil, &FormatError{Field: path, Detail: fmt.Sprintf("unresolved %s reference %q", kind, r.ID)}
}

func normalizeDegree(in degreeInput, tables Tables, path string) (models.Degree, error) {
	deg := models.Degree{
		ID:              orGenerated(in.ID),
		Title:           in.Title,
		Type:            in.Type,
		Description:     in.Description,
		RequiredCredits: maxInt(in.RequiredCredits, 0),
		Courses:         make([]models.Course, 0, len(in.Courses)),
	}
	for i, ref := range in.Courses {
		coursePath := fmt.Sprintf("%s.courses[%d]", path, i)
		raw, err := ref.resolve(tables.Courses, "course", coursePath)
		if err != nil {
			return models.Degree{}, err
		}
		var ci courseInput
		if err := json.Unmarshal(raw, &ci); err != nil {
			return models.Degree{}, &FormatError{Field: coursePath, Detail: err.Error()}
		}
		course, err := normalizeCourse(ci, tables, coursePath)
		if err != nil {
			return models.Degree{}, err
		}
		deg.Courses = append(deg.Courses, course)
	}
	return deg, nil
}

func normalizeCourse(in courseInput, tables Tables, path string) (models.Course, error) {
	course := models.Course{
		ID:          orGenerated(in.ID),
		Title:       in.Title,
		Description: in.Description,
		Credits:     maxInt(in.Credits, 0),
		Level:       in.Level,
		Modules:     make([]models.Module, 0, len(in.Modules)),
	}
	for i, ref := range in.Modules {
		modulePath := fmt.Sprintf("%s.modules[%d]", path, i)
		raw, err := ref.resolve(tables.Modules, "module", modulePath)
		if err != nil {
			return models.Course{}, err
		}
		var mi moduleInput
		if err := json.Unmarshal(raw, &mi); err != nil {
			return models.Course{}, &FormatError{Field: modulePath, Detail: err.Error()}
		}
		module, err := normalizeModule(mi, modulePath)
		if err != nil {
			return models.Course{}, err
		}
		course.Modules = append(course.Modules, module)
	}
	return course, nil
}

func normalizeModule(in moduleInput, path string) (models.Module, error) {
	mod := models.Module{
		ID:          orGenerated(in.ID),
		Title:       in.Title,
		Description: in.Description,
		Credits:     maxInt(in.Credits, 0),
		Metadata:    normalizeMetadata(in.Metadata),
	}

	mod.LearningObjectives = make([]models.LearningObjective, 0, len(in.LearningObjectives))
	for _, lo := range in.LearningObjectives {
		lo.ID = orGenerated(lo.ID)
		mod.LearningObjectives = append(mod.LearningObjectives, lo)
	}

	mod.Resources = make([]models.Resource, 0, len(in.Resources))
	for i, raw := range in.Resources {
		var res models.Resource
		if err := json.Unmarshal(raw, &res); err != nil {
			return models.Module{}, &FormatError{Field: fmt.Sprintf("%s.resources[%d]", path, i), Detail: err.Error()}
		}
		res.ID = orGenerated(res.ID)
		mod.Resources = append(mod.Resources, res)
	}

	mod.Assignments = make([]models.Assignment, 0, len(in.Assignments))
	for i, raw := range in.Assignments {
		asg, err := normalizeAssignment(raw, fmt.Sprintf("%s.assignments[%d]", path, i))
		if err != nil {
			return models.Module{}, err
		}
		mod.Assignments = append(mod.Assignments, asg)
	}

	mod.Quizzes = make([]models.Quiz, 0, len(in.Quizzes))
	for i, qi := range in.Quizzes {
		quiz, err := normalizeQuiz(qi, fmt.Sprintf("%s.quizzes[%d]", path, i))
		if err != nil {
			return models.Module{}, err
		}
		mod.Quizzes = append(mod.Quizzes, quiz)
	}
	return mod, nil
}

func normalizeMetadata(in models.ModuleMetadata) models.ModuleMetadata {
	if in.Prerequisites == nil {
		in.Prerequisites = []string{}
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}
	if in.Skills == nil {
		in.Skills = []string{}
	}
	if in.EstimatedTime < 0 {
		in.EstimatedTime = 0
	}
	return in
}

func normalizeAssignment(raw json.RawMessage, path string) (models.Assignment, error) {
	var aux struct {
		ID          string            `json:"id"`
		Title       string            `json:"title"`
		Description string            `json:"description"`
		DueDate     string            `json:"dueDate"`
		Points      float64           `json:"points"`
		Questions   []json.RawMessage `json:"questions"`
		Rubric      *models.Rubric    `json:"rubric"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return models.Assignment{}, &FormatError{Field: path, Detail: err.Error()}
	}
	asg := models.Assignment{
		ID:          orGenerated(aux.ID),
		Title:       aux.Title,
		Description: aux.Description,
		DueDate:     aux.DueDate,
		Points:      maxFloat(aux.Points, 0),
		Rubric:      aux.Rubric,
	}
	if len(aux.Questions) > 0 {
		asg.Questions = make([]models.Question, 0, len(aux.Questions))
		for i, qraw := range aux.Questions {
			q, err := normalizeQuestion(qraw, fmt.Sprintf("%s.questions[%d]", path, i))
			if err != nil {
				return models.Assignment{}, err
			}
			asg.Questions = append(asg.Questions, q)
		}
	}
	return asg, nil
}

func normalizeQuiz(in quizInput, path string) (models.Quiz, error) {
	quiz := models.Quiz{
		ID:           orGenerated(in.ID),
		Title:        in.Title,
		Description:  in.Description,
		TimeLimit:    maxInt(in.TimeLimit, 0),
		PassingScore: maxFloat(in.PassingScore, 0),
		Instructions: in.Instructions,
		Questions:    make([]models.Question, 0, len(in.Questions)),
	}
	for i, raw := range in.Questions {
		q, err := normalizeQuestion(raw, fmt.Sprintf("%s.questions[%d]", path, i))
		if err != nil {
			return models.Quiz{}, err
		}
		quiz.Questions = append(quiz.Questions, q)
	}
	return quiz, nil
}

// normalizeQuestion builds one question through the exhaustive per-type
// dispatch in models.UnmarshalQuestion, then fills the shared defaults. The
// concrete decode only reads the fields legal for the kind, so a
// multiple-choice object carrying a stray testCases field loses it here.
func normalizeQuestion(raw json.RawMessage, path string) (models.Question, error) {
	q, err := models.UnmarshalQuestion(raw)
	if err != nil {
		return nil, &FormatError{Field: path, Detail: err.Error()}
	}

	base := q.Base()
	if base.ID == "" {
		base.ID = uuid.NewString()
	}
	if base.Text == "" {
		// Some authoring tools emit the prompt under "title".
		var aux struct {
			Title string `json:"title"`
		}
		if json.Unmarshal(raw, &aux) == nil {
			base.Text = aux.Title
		}
	}
	if base.Points < 0 {
		base.Points = 0
	}
	return q, nil
}

func orGenerated(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func maxInt(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}

func maxFloat(v, floor float64) float64 {
	if v < floor {
		return floor
	}
	return v
}
