package ratings

import (
	"testing"

	"github.com/tunisiajockeyclub/club/pkg/models"
)

func results(horseID int64, positions ...int) []models.RaceResult {
	out := make([]models.RaceResult, 0, len(positions))
	for i, pos := range positions {
		out = append(out, models.RaceResult{
			ResultID: int64(i + 1),
			HorseID:  horseID,
			Position: pos,
		})
	}
	return out
}

func TestComputeCareerFigures(t *testing.T) {
	horses := []models.Horse{{HorseID: 1, Name: "Sahara Star"}}
	rated := Compute(horses, map[int64][]models.RaceResult{
		1: results(1, 1, 3, 5, 2, 1),
	})

	if len(rated) != 1 {
		t.Fatalf("ratings = %d, want 1", len(rated))
	}
	r := rated[0]
	if r.HorseName != "Sahara Star" {
		t.Fatalf("name = %q", r.HorseName)
	}
	if r.Starts != 5 || r.Wins != 2 || r.Places != 4 {
		t.Fatalf("starts/wins/places = %d/%d/%d, want 5/2/4", r.Starts, r.Wins, r.Places)
	}
	if r.WinRate != 0.4 {
		t.Fatalf("win rate = %v, want 0.4", r.WinRate)
	}
}

func TestFormScoreWeightsRecency(t *testing.T) {
	// Latest run counts full weight, so a horse finishing with a win must
	// outscore one that won first and faded, over the same positions.
	improving := formScore(results(1, 5, 4, 3, 2, 1))
	fading := formScore(results(2, 1, 2, 3, 4, 5))
	if improving <= fading {
		t.Fatalf("improving = %v should beat fading = %v", improving, fading)
	}
}

func TestFormScoreOnlyRecentRunsCount(t *testing.T) {
	short := formScore(results(1, 1, 1, 1, 1, 1))
	long := formScore(results(2, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1))
	if short != long {
		t.Fatalf("older runs must not count: %v != %v", short, long)
	}
}

func TestComputeOrdersByFormScore(t *testing.T) {
	horses := []models.Horse{
		{HorseID: 1, Name: "Backmarker"},
		{HorseID: 2, Name: "Topweight"},
	}
	rated := Compute(horses, map[int64][]models.RaceResult{
		1: results(1, 8, 9),
		2: results(2, 1, 1),
	})
	if rated[0].HorseName != "Topweight" {
		t.Fatalf("first = %q, want Topweight", rated[0].HorseName)
	}
}

func TestGroupByHorsePreservesOrder(t *testing.T) {
	flat := []models.RaceResult{
		{ResultID: 1, HorseID: 1, Position: 4},
		{ResultID: 2, HorseID: 2, Position: 1},
		{ResultID: 3, HorseID: 1, Position: 1},
	}
	grouped := GroupByHorse(flat)
	if len(grouped[1]) != 2 || grouped[1][0].ResultID != 1 || grouped[1][1].ResultID != 3 {
		t.Fatalf("grouping broke order: %+v", grouped[1])
	}
}
