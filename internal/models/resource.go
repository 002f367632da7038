package models

type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
}

// CodePayload carries the interactive parts of a code resource.
type CodePayload struct {
	InitialCode string     `json:"initialCode"`
	Solution    string     `json:"solution"`
	TestCases   []TestCase `json:"testCases"`
}

// Resource is a single piece of learning content within a module. Completion
// state is tracked per learner in the module progress record, never here.
type Resource struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Type      string       `json:"type"` // video, pdf, epub, article, document, code
	Content   string       `json:"content"`
	Duration  int          `json:"duration,omitempty"`
	URL       string       `json:"url,omitempty"`
	EmbedType string       `json:"embedType,omitempty"` // only "youtube" today
	Code      *CodePayload `json:"code,omitempty"`
}
