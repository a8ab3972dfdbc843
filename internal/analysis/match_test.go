package analysis

import (
	"reflect"
	"testing"
)

func TestComputeSkillMatch(t *testing.T) {
	tests := []struct {
		name     string
		resume   []string
		required []string
		matched  []string
		missing  []string
	}{
		{
			name:     "partial overlap",
			resume:   []string{"React", "SQL", "Docker"},
			required: []string{"React", "Node", "SQL"},
			matched:  []string{"React", "SQL"},
			missing:  []string{"Node"},
		},
		{
			name:     "case-insensitive match",
			resume:   []string{"react", "NODE"},
			required: []string{"React", "Node"},
			matched:  []string{"React", "Node"},
			missing:  []string{},
		},
		{
			name:     "empty required falls back to defaults",
			resume:   []string{"React", "MongoDB"},
			required: nil,
			matched:  []string{"React", "MongoDB"},
			missing:  []string{"Node", "System Design"},
		},
		{
			name:     "blank required entries dropped",
			resume:   []string{"Go"},
			required: []string{"  Go  ", "", "   "},
			matched:  []string{"Go"},
			missing:  []string{},
		},
		{
			name:     "no resume skills",
			resume:   nil,
			required: []string{"Python"},
			matched:  []string{},
			missing:  []string{"Python"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := ComputeSkillMatch(tt.resume, tt.required)

			if !reflect.DeepEqual(match.MatchedSkills, tt.matched) {
				t.Errorf("matched = %v, want %v", match.MatchedSkills, tt.matched)
			}
			if !reflect.DeepEqual(match.MissingSkills, tt.missing) {
				t.Errorf("missing = %v, want %v", match.MissingSkills, tt.missing)
			}
		})
	}
}

func TestComputeSkillMatchPreservesRequiredOrder(t *testing.T) {
	match := ComputeSkillMatch(nil, []string{"Zig", "Ada", "COBOL"})

	want := []string{"Zig", "Ada", "COBOL"}
	if !reflect.DeepEqual(match.RequiredSkills, want) {
		t.Errorf("required = %v, want %v", match.RequiredSkills, want)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		matched  int
		total    int
		expected int
	}{
		{"all matched", 4, 4, 100},
		{"none matched", 0, 4, 0},
		{"two of three rounds up", 2, 3, 67},
		{"one of three rounds down", 1, 3, 33},
		{"zero total", 3, 0, 0},
		{"negative total", 1, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.matched, tt.total); got != tt.expected {
				t.Errorf("Score(%d, %d) = %d, want %d", tt.matched, tt.total, got, tt.expected)
			}
		})
	}
}
