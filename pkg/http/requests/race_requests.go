package requests

import (
	"time"

	"github.com/tunisiajockeyclub/club/pkg/models"
	"github.com/tunisiajockeyclub/club/pkg/security"
)

type RaceRequest struct {
	Name       string `json:"name" form:"name"`
	Racecourse string `json:"racecourse" form:"racecourse"`
	StartsAt   string `json:"starts_at" form:"starts_at"`
	DistanceM  int    `json:"distance_m" form:"distance_m"`
	PurseTND   int    `json:"purse_tnd" form:"purse_tnd"`
	Category   string `json:"category" form:"category"`
	Status     string `json:"status" form:"status"`
}

// StartTime parses the submitted start, accepting RFC 3339 or the
// datetime-local format browsers post.
func (r RaceRequest) StartTime() (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, r.StartsAt); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04", r.StartsAt)
}

func (r RaceRequest) Validate() *security.ValidationError {
	var issues []security.FieldIssue
	if r.Name == "" {
		issues = append(issues, security.FieldIssue{Field: "name", Message: "name is required"})
	}
	if r.Racecourse == "" {
		issues = append(issues, security.FieldIssue{Field: "racecourse", Message: "racecourse is required"})
	}
	if _, err := r.StartTime(); err != nil {
		issues = append(issues, security.FieldIssue{Field: "starts_at", Message: "invalid start time"})
	}
	if r.DistanceM < 800 || r.DistanceM > 4000 {
		issues = append(issues, security.FieldIssue{Field: "distance_m", Message: "distance must be between 800 and 4000 meters"})
	}
	if r.Status != "" && r.Status != models.RaceScheduled && r.Status != models.RaceFinished && r.Status != models.RaceAbandoned {
		issues = append(issues, security.FieldIssue{Field: "status", Message: "unknown status"})
	}
	if len(issues) > 0 {
		return &security.ValidationError{Issues: issues}
	}
	return nil
}

type EntryRequest struct {
	HorseID  int64   `json:"horse_id" form:"horse_id"`
	JockeyID int64   `json:"jockey_id" form:"jockey_id"`
	Draw     int     `json:"draw" form:"draw"`
	WeightKg float64 `json:"weight_kg" form:"weight_kg"`
}

func (r EntryRequest) Validate() *security.ValidationError {
	var issues []security.FieldIssue
	if r.HorseID == 0 {
		issues = append(issues, security.FieldIssue{Field: "horse_id", Message: "horse is required"})
	}
	if r.JockeyID == 0 {
		issues = append(issues, security.FieldIssue{Field: "jockey_id", Message: "jockey is required"})
	}
	if r.Draw < 0 {
		issues = append(issues, security.FieldIssue{Field: "draw", Message: "draw cannot be negative"})
	}
	if len(issues) > 0 {
		return &security.ValidationError{Issues: issues}
	}
	return nil
}

type ResultRequest struct {
	HorseID    int64   `json:"horse_id" form:"horse_id"`
	JockeyID   int64   `json:"jockey_id" form:"jockey_id"`
	Position   int     `json:"position" form:"position"`
	FinishMs   int64   `json:"finish_ms" form:"finish_ms"`
	MarginLens float64 `json:"margin_lens" form:"margin_lens"`
}

func (r ResultRequest) Validate() *security.ValidationError {
	var issues []security.FieldIssue
	if r.HorseID == 0 {
		issues = append(issues, security.FieldIssue{Field: "horse_id", Message: "horse is required"})
	}
	if r.Position < 1 {
		issues = append(issues, security.FieldIssue{Field: "position", Message: "position must be at least 1"})
	}
	if r.FinishMs < 0 {
		issues = append(issues, security.FieldIssue{Field: "finish_ms", Message: "finish time cannot be negative"})
	}
	if len(issues) > 0 {
		return &security.ValidationError{Issues: issues}
	}
	return nil
}
