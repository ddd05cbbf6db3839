package cry

import "github.com/portfolio-lab/summit/parameter"

// Range is an inclusive feature interval
type Range struct {
	Min, Max float64
}

// Contains reports Min <= v <= Max
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Category is a need with its expected feature profile
type Category struct {
	Type        string
	Icon        string
	Title       string
	Description string

	Volume      Range
	Intensity   Range
	Frequency   Range
	Variability Range
}

// Categories in declaration order, which is also the tie-break order
var Categories = []Category{
	{
		Type:        "hungry",
		Icon:        "🍼",
		Title:       "Hungry",
		Description: "Rhythmic, rising cry that builds when ignored. Try a feed.",
		Volume:      Range{40, 80},
		Intensity:   Range{30, 60},
		Frequency:   Range{300, 500},
		Variability: Range{20, 50},
	},
	{
		Type:        "tired",
		Icon:        "😴",
		Title:       "Tired",
		Description: "Whiny, low-energy cry with yawns between bursts. Time to settle down.",
		Volume:      Range{20, 50},
		Intensity:   Range{15, 40},
		Frequency:   Range{200, 400},
		Variability: Range{10, 30},
	},
	{
		Type:        "wet",
		Icon:        "🧷",
		Title:       "Needs a change",
		Description: "Fussy, uncomfortable cry that starts and stops. Check the diaper.",
		Volume:      Range{30, 60},
		Intensity:   Range{20, 50},
		Frequency:   Range{250, 450},
		Variability: Range{15, 40},
	},
	{
		Type:        "pain",
		Icon:        "😣",
		Title:       "Discomfort",
		Description: "Sudden, loud, high-pitched cry. Look for gas, teething or something pinching.",
		Volume:      Range{60, 100},
		Intensity:   Range{50, 90},
		Frequency:   Range{400, 800},
		Variability: Range{40, 80},
	},
	{
		Type:        "bored",
		Icon:        "🧸",
		Title:       "Wants attention",
		Description: "Intermittent cry that stops when picked up. A change of scene may help.",
		Volume:      Range{25, 55},
		Intensity:   Range{20, 45},
		Frequency:   Range{250, 400},
		Variability: Range{25, 55},
	},
}

// Score awards points for each feature inside the category range, 0-100
func Score(c Category, f Features) int {
	score := 0
	for _, m := range [...]struct {
		r Range
		v float64
	}{
		{c.Volume, f.Volume},
		{c.Intensity, f.Intensity},
		{c.Frequency, f.Frequency},
		{c.Variability, f.Variability},
	} {
		if m.r.Contains(m.v) {
			score += parameter.CryPointsPerFeature
		}
	}
	return score
}

// Classify returns the best scoring category; the earliest declared wins ties
func Classify(f Features) (Category, int) {
	best, bestScore := Categories[0], -1
	for _, c := range Categories {
		if s := Score(c, f); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best, bestScore
}

// Confidence maps a 0-100 score onto 90-98
func Confidence(score int) float64 {
	s := float64(score)
	if s < 0 {
		s = 0
	}
	if s > 100 {
		s = 100
	}
	return parameter.CryConfidenceBase + s/100*parameter.CryConfidenceSpan
}
