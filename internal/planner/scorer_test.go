package planner

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func dueIn(days float64) *time.Time {
	d := testNow.Add(time.Duration(days * 24 * float64(time.Hour)))
	return &d
}

func TestDifficultyWeights(t *testing.T) {
	want := map[int]float64{1: 1.0, 2: 1.5, 3: 2.0, 4: 2.5, 5: 3.0}
	prev := 0.0
	for d := 1; d <= 5; d++ {
		got := DifficultyWeight(d)
		if got != want[d] {
			t.Fatalf("DifficultyWeight(%d) = %v, want %v", d, got, want[d])
		}
		if got <= prev {
			t.Fatalf("difficulty weight not increasing at %d: %v <= %v", d, got, prev)
		}
		prev = got
	}
	for _, d := range []int{0, 6, -1, 100} {
		if got := DifficultyWeight(d); got != 1.0 {
			t.Fatalf("DifficultyWeight(%d) = %v, want default 1.0", d, got)
		}
	}
}

func TestPriorityWeights(t *testing.T) {
	cases := []struct {
		status Status
		want   float64
	}{
		{StatusPending, 1.0},
		{StatusOngoing, 2.0},
		{StatusCompleted, 0.0},
		{Status("Unknown"), 1.0},
	}
	for _, c := range cases {
		if got := PriorityWeight(c.status); got != c.want {
			t.Fatalf("PriorityWeight(%q) = %v, want %v", c.status, got, c.want)
		}
	}
}

func TestTimeWeightBuckets(t *testing.T) {
	cases := []struct {
		name string
		due  *time.Time
		want float64
	}{
		{"no due date", nil, 1.0},
		{"overdue", dueIn(-2), 5.0},
		{"due right now", dueIn(0), 5.0},
		{"within a day", dueIn(0.5), 4.5},
		{"exactly one day", dueIn(1), 4.5},
		{"within three days", dueIn(2), 3.5},
		{"exactly three days", dueIn(3), 3.5},
		{"within a week", dueIn(5), 2.5},
		{"exactly a week", dueIn(7), 2.5},
		{"within two weeks", dueIn(10), 1.5},
		{"exactly two weeks", dueIn(14), 1.5},
		{"later", dueIn(30), 1.0},
	}
	prevDays := -100.0
	for _, c := range cases {
		if got := TimeWeight(c.due, testNow); got != c.want {
			t.Fatalf("%s: TimeWeight = %v, want %v", c.name, got, c.want)
		}
		if c.due != nil {
			days := c.due.Sub(testNow).Hours() / 24
			if days < prevDays {
				t.Fatalf("test cases must run in increasing days order")
			}
			prevDays = days
		}
	}
	// Monotone non-increasing as days remaining grows.
	prev := 5.0
	for _, days := range []float64{-1, 0, 0.5, 1, 2, 3, 5, 7, 10, 14, 20} {
		w := TimeWeight(dueIn(days), testNow)
		if w > prev {
			t.Fatalf("TimeWeight not monotone at %v days: %v > %v", days, w, prev)
		}
		prev = w
	}
}

func TestCompletedAlwaysScoresZero(t *testing.T) {
	for d := 1; d <= 5; d++ {
		task := Task{Name: "done", Difficulty: d, Priority: StatusCompleted, DueAt: dueIn(-1)}
		if got := ScoreAt(task, testNow); got != 0 {
			t.Fatalf("completed task with difficulty %d scored %v, want 0", d, got)
		}
	}
}

func TestScoreExample(t *testing.T) {
	// difficulty 3 (2.0) x Pending (1.0) x due in 2 days (3.5) = 7.0
	task := Task{Name: "calculus", Difficulty: 3, Priority: StatusPending, DueAt: dueIn(2)}
	if got := ScoreAt(task, testNow); got != 7.0 {
		t.Fatalf("ScoreAt = %v, want 7.0", got)
	}
}

func TestScoreDeterministic(t *testing.T) {
	task := Task{Name: "physics", Difficulty: 4, Priority: StatusOngoing, DueAt: dueIn(6)}
	first := ScoreAt(task, testNow)
	for i := 0; i < 10; i++ {
		if got := ScoreAt(task, testNow); got != first {
			t.Fatalf("ScoreAt not reproducible: %v then %v", first, got)
		}
	}
}
