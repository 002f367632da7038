package models

import (
	"math"
	"time"
)

// ModuleProgress is the learner-scoped summary of how much of a module has
// been completed. One record per (user, module) pair.
type ModuleProgress struct {
	ID                   string    `bson:"_id,omitempty" json:"id,omitempty"`
	UserID               string    `bson:"user_id" json:"userId"`
	ModuleID             string    `bson:"module_id" json:"moduleId"`
	CompletedResources   []string  `bson:"completed_resources" json:"completedResources"`
	CompletedQuizzes     []float64 `bson:"completed_quizzes" json:"completedQuizzes"`
	CompletedAssignments []string  `bson:"completed_assignments" json:"completedAssignments"`
	OverallProgress      int       `bson:"overall_progress" json:"overallProgress"`
	UpdatedAt            time.Time `bson:"updated_at" json:"updatedAt"`
}

// NewModuleProgress returns the zero record for a (user, module) pair,
// created lazily on first interaction with the module.
func NewModuleProgress(userID, moduleID string) *ModuleProgress {
	return &ModuleProgress{
		UserID:               userID,
		ModuleID:             moduleID,
		CompletedResources:   []string{},
		CompletedQuizzes:     []float64{},
		CompletedAssignments: []string{},
	}
}

// HasResource reports whether the resource id is already recorded.
func (p *ModuleProgress) HasResource(id string) bool {
	return containsString(p.CompletedResources, id)
}

// HasAssignment reports whether the assignment id is already recorded.
func (p *ModuleProgress) HasAssignment(id string) bool {
	return containsString(p.CompletedAssignments, id)
}

// CompletedCount counts completed units. Quiz completions are append-only
// entries, one unit each, even for repeated attempts at the same quiz.
func (p *ModuleProgress) CompletedCount() int {
	return len(p.CompletedResources) + len(p.CompletedQuizzes) + len(p.CompletedAssignments)
}

// Recompute derives the overall percentage from the module's item total.
// A module with no completable items keeps whatever value it last had, so
// an empty module never divides by zero.
func (p *ModuleProgress) Recompute(totalItems int) {
	if totalItems <= 0 {
		return
	}
	p.OverallProgress = int(math.Round(100 * float64(p.CompletedCount()) / float64(totalItems)))
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
