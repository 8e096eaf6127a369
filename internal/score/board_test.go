package score

import "testing"

func TestAddPointsIgnoresNonPositive(t *testing.T) {
	b := NewBoard(1000)
	b.AddPoints(30)
	b.AddPoints(0)
	b.AddPoints(-50)
	if b.Score() != 30 {
		t.Errorf("Score() = %d, want 30", b.Score())
	}
}

func TestTakeMilestones(t *testing.T) {
	tests := []struct {
		name  string
		adds  []int
		start int
		want  int
	}{
		{"below first milestone", []int{999}, 0, 0},
		{"exactly one", []int{600, 400}, 0, 1},
		{"several at once", []int{3500}, 0, 3},
		{"loaded score is spent", []int{100}, 2950, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard(1000)
			b.SetScore(tt.start)
			for _, n := range tt.adds {
				b.AddPoints(n)
			}
			if got := b.TakeMilestones(); got != tt.want {
				t.Errorf("TakeMilestones() = %d, want %d", got, tt.want)
			}
			if got := b.TakeMilestones(); got != 0 {
				t.Errorf("second TakeMilestones() = %d, want 0", got)
			}
		})
	}
}

func TestMilestonesDisabled(t *testing.T) {
	b := NewBoard(0)
	b.AddPoints(1 << 20)
	if got := b.TakeMilestones(); got != 0 {
		t.Errorf("TakeMilestones() = %d, want 0", got)
	}
}
