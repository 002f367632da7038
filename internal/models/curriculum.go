package models

// Curriculum is the root document describing one complete program of study.
// The tree is immutable once normalized; edits go through a fresh re-import.
type Curriculum struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Degrees     []Degree `json:"degrees"`
}

type Degree struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	// Type is an open string at this layer (associate, bachelor, master,
	// doctorate, certificate are the known values). Stricter enumeration
	// belongs to display logic so forward-compatible data is not rejected.
	Type            string   `json:"type"`
	Description     string   `json:"description"`
	RequiredCredits int      `json:"requiredCredits"`
	Courses         []Course `json:"courses"`
}

type Course struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Credits     int      `json:"credits"`
	Level       string   `json:"level"`
	Modules     []Module `json:"modules"`
}

type ModuleMetadata struct {
	EstimatedTime int      `json:"estimatedTime"`
	Difficulty    string   `json:"difficulty"`
	Prerequisites []string `json:"prerequisites"`
	Tags          []string `json:"tags"`
	Skills        []string `json:"skills"`
}

type LearningObjective struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Module is the unit of study and the unit of progress tracking.
type Module struct {
	ID                 string              `json:"id"`
	Title              string              `json:"title"`
	Description        string              `json:"description"`
	Credits            int                 `json:"credits"`
	Metadata           ModuleMetadata      `json:"metadata"`
	LearningObjectives []LearningObjective `json:"learningObjectives"`
	Resources          []Resource          `json:"resources"`
	Assignments        []Assignment        `json:"assignments"`
	Quizzes            []Quiz              `json:"quizzes"`
}

// TotalItems counts the completable items of a module: resources,
// assignments and quizzes each contribute one unit.
func (m *Module) TotalItems() int {
	return len(m.Resources) + len(m.Assignments) + len(m.Quizzes)
}
