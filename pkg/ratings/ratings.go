package ratings

import (
	"sort"

	"github.com/tunisiajockeyclub/club/pkg/models"
)

// recentFormRuns is how many latest runs feed the form score.
const recentFormRuns = 5

// HorseRating aggregates a horse's results into the figures the club
// publishes: career record plus a recency-weighted form score.
type HorseRating struct {
	HorseID   int64   `json:"horse_id"`
	HorseName string  `json:"horse_name"`
	Starts    int     `json:"starts"`
	Wins      int     `json:"wins"`
	Places    int     `json:"places"`
	WinRate   float64 `json:"win_rate"`
	FormScore float64 `json:"form_score"`
}

// positionPoints maps a finishing position to form points. Winning pays
// most, minor placings still count, unplaced runs score nothing.
func positionPoints(position int) float64 {
	switch position {
	case 1:
		return 10
	case 2:
		return 6
	case 3:
		return 4
	case 4:
		return 2
	case 5:
		return 1
	}
	return 0
}

// Compute builds a rating per horse from its full result history. Results
// must be ordered oldest first per horse; the storage layer returns them
// keyed by insertion order which tracks when results were recorded.
func Compute(horses []models.Horse, resultsByHorse map[int64][]models.RaceResult) []HorseRating {
	names := make(map[int64]string, len(horses))
	for _, h := range horses {
		names[h.HorseID] = h.Name
	}

	out := make([]HorseRating, 0, len(resultsByHorse))
	for horseID, results := range resultsByHorse {
		r := HorseRating{
			HorseID:   horseID,
			HorseName: names[horseID],
			Starts:    len(results),
		}
		for _, res := range results {
			if res.Position == 1 {
				r.Wins++
			}
			if res.Position >= 1 && res.Position <= 3 {
				r.Places++
			}
		}
		if r.Starts > 0 {
			r.WinRate = float64(r.Wins) / float64(r.Starts)
		}
		r.FormScore = formScore(results)
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].FormScore != out[j].FormScore {
			return out[i].FormScore > out[j].FormScore
		}
		if out[i].WinRate != out[j].WinRate {
			return out[i].WinRate > out[j].WinRate
		}
		return out[i].HorseName < out[j].HorseName
	})
	return out
}

// formScore weights the latest runs highest: the most recent run counts
// full, each older run half the previous. Only the last few runs count.
func formScore(results []models.RaceResult) float64 {
	start := len(results) - recentFormRuns
	if start < 0 {
		start = 0
	}
	recent := results[start:]

	score := 0.0
	weight := 1.0
	for i := len(recent) - 1; i >= 0; i-- {
		score += positionPoints(recent[i].Position) * weight
		weight /= 2
	}
	return score
}

// GroupByHorse buckets a flat result list per horse preserving order.
func GroupByHorse(results []models.RaceResult) map[int64][]models.RaceResult {
	grouped := make(map[int64][]models.RaceResult)
	for _, res := range results {
		grouped[res.HorseID] = append(grouped[res.HorseID], res)
	}
	return grouped
}
