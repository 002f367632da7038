package models

import "testing"

func TestRecomputeProgress(t *testing.T) {
	testCases := []struct {
		name       string
		resources  []string
		quizzes    []float64
		assignments []string
		totalItems int
		want       int
	}{
		{"nothing done", nil, nil, nil, 4, 0},
		{"three of four", []string{"r1", "r2"}, nil, []string{"a1"}, 4, 75},
		{"all done", []string{"r1", "r2"}, []float64{80}, []string{"a1"}, 4, 100},
		{"one of three rounds", []string{"r1"}, nil, nil, 3, 33},
		{"two of three rounds up", []string{"r1", "r2"}, nil, nil, 3, 67},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := NewModuleProgress("u1", "m1")
			rec.CompletedResources = append(rec.CompletedResources, tc.resources...)
			rec.CompletedQuizzes = append(rec.CompletedQuizzes, tc.quizzes...)
			rec.CompletedAssignments = append(rec.CompletedAssignments, tc.assignments...)

			rec.Recompute(tc.totalItems)
			if rec.OverallProgress != tc.want {
				t.Errorf("OverallProgress = %d, want %d", rec.OverallProgress, tc.want)
			}
		})
	}
}

// An empty module never divides by zero; the record keeps its last value.
func TestRecomputeEmptyModule(t *testing.T) {
	rec := NewModuleProgress("u1", "m1")
	rec.Recompute(0)
	if rec.OverallProgress != 0 {
		t.Errorf("OverallProgress = %d, want 0", rec.OverallProgress)
	}

	rec.OverallProgress = 40
	rec.Recompute(0)
	if rec.OverallProgress != 40 {
		t.Errorf("OverallProgress = %d, want unchanged 40", rec.OverallProgress)
	}
}
