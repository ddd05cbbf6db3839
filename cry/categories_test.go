package cry

import "testing"

// TestClassifyHungryScenario verifies the reference window classifies as hungry at full confidence
func TestClassifyHungryScenario(t *testing.T) {
	f := Features{Volume: 60, Intensity: 45, Frequency: 400, Variability: 35}
	c, score := Classify(f)

	if c.Type != "hungry" {
		t.Errorf("Expected hungry, got %s", c.Type)
	}
	if score != 100 {
		t.Errorf("Expected score 100, got %d", score)
	}
	if conf := Confidence(score); conf != 98 {
		t.Errorf("Expected confidence 98, got %f", conf)
	}
}

// TestClassifyTieBreak verifies the first declared category wins equal scores
func TestClassifyTieBreak(t *testing.T) {
	f := Features{Volume: 60, Intensity: 45, Frequency: 400, Variability: 35}
	wet := Categories[2]
	if wet.Type != "wet" || Score(wet, f) != 100 {
		t.Fatalf("Expected wet to also score 100, got %d", Score(wet, f))
	}
	if c, _ := Classify(f); c.Type != "hungry" {
		t.Errorf("Expected hungry to win the tie, got %s", c.Type)
	}

	// Nothing matches: every category scores 0, first wins
	c, score := Classify(Features{Volume: 500})
	if c.Type != "hungry" || score != 0 {
		t.Errorf("Expected hungry with 0, got %s with %d", c.Type, score)
	}
}

// TestClassifyPain verifies a loud high window lands on pain
func TestClassifyPain(t *testing.T) {
	c, score := Classify(Features{Volume: 90, Intensity: 80, Frequency: 700, Variability: 70})
	if c.Type != "pain" || score != 100 {
		t.Errorf("Expected pain with 100, got %s with %d", c.Type, score)
	}
}

// TestScorePartial verifies 25 points per matching feature
func TestScorePartial(t *testing.T) {
	f := Features{Volume: 60, Intensity: 45, Frequency: 400, Variability: 35}
	if got := Score(Categories[1], f); got != 25 {
		t.Errorf("Expected tired to score 25, got %d", got)
	}
}

// TestRangeInclusive verifies both bounds are inside
func TestRangeInclusive(t *testing.T) {
	r := Range{20, 50}
	if !r.Contains(20) || !r.Contains(50) || r.Contains(19.999) || r.Contains(50.001) {
		t.Error("Expected inclusive bounds")
	}
}

// TestConfidenceMonotonic verifies confidence spans 90-98 and never decreases
func TestConfidenceMonotonic(t *testing.T) {
	if Confidence(0) != 90 {
		t.Errorf("Expected 90 at 0, got %f", Confidence(0))
	}
	prev := Confidence(0)
	for s := 1; s <= 100; s++ {
		c := Confidence(s)
		if c < prev {
			t.Fatalf("Expected non-decreasing confidence at %d: %f < %f", s, c, prev)
		}
		prev = c
	}
	if Confidence(150) != 98 || Confidence(-5) != 90 {
		t.Error("Expected out-of-range scores clamped")
	}
}

// TestCategoryOrder verifies the declared order of the table
func TestCategoryOrder(t *testing.T) {
	want := []string{"hungry", "tired", "wet", "pain", "bored"}
	if len(Categories) != len(want) {
		t.Fatalf("Expected %d categories, got %d", len(want), len(Categories))
	}
	for i, c := range Categories {
		if c.Type != want[i] {
			t.Errorf("Expected %s at %d, got %s", want[i], i, c.Type)
		}
		if c.Icon == "" || c.Title == "" || c.Description == "" {
			t.Errorf("Expected display fields for %s", c.Type)
		}
	}
}
