package curriculum

import "curriculum-service/internal/models"

// Index is an explicitly-constructed lookup over one normalized curriculum.
// Build one wherever fast id lookups are needed; two curricula never share an
// index, so they cannot cross-contaminate.
type Index struct {
	curriculum *models.Curriculum
	degrees    map[string]*models.Degree
	courses    map[string]*models.Course
	modules    map[string]*models.Module
	quizzes    map[string]*models.Quiz
	quizModule map[string]string
}

// NewIndex builds the lookup maps for a normalized curriculum. The tree is
// treated as read-only from here on.
func NewIndex(cur *models.Curriculum) *Index {
	idx := &Index{
		curriculum: cur,
		degrees:    make(map[string]*models.Degree),
		courses:    make(map[string]*models.Course),
		modules:    make(map[string]*models.Module),
		quizzes:    make(map[string]*models.Quiz),
		quizModule: make(map[string]string),
	}
	for i := range cur.Degrees {
		deg := &cur.Degrees[i]
		idx.degrees[deg.ID] = deg
		for j := range deg.Courses {
			course := &deg.Courses[j]
			idx.courses[course.ID] = course
			for k := range course.Modules {
				mod := &course.Modules[k]
				idx.modules[mod.ID] = mod
				for l := range mod.Quizzes {
					quiz := &mod.Quizzes[l]
					idx.quizzes[quiz.ID] = quiz
					idx.quizModule[quiz.ID] = mod.ID
				}
			}
		}
	}
	return idx
}

func (idx *Index) Curriculum() *models.Curriculum { return idx.curriculum }

func (idx *Index) Degree(id string) (*models.Degree, bool) {
	d, ok := idx.degrees[id]
	return d, ok
}

func (idx *Index) Course(id string) (*models.Course, bool) {
	c, ok := idx.courses[id]
	return c, ok
}

func (idx *Index) Module(id string) (*models.Module, bool) {
	m, ok := idx.modules[id]
	return m, ok
}

func (idx *Index) Quiz(id string) (*models.Quiz, bool) {
	q, ok := idx.quizzes[id]
	return q, ok
}

// ModuleForQuiz returns the module a quiz belongs to.
func (idx *Index) ModuleForQuiz(quizID string) (*models.Module, bool) {
	moduleID, ok := idx.quizModule[quizID]
	if !ok {
		return nil, false
	}
	return idx.modules[moduleID], true
}
