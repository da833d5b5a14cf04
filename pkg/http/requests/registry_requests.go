package requests

import (
	"time"

	"github.com/tunisiajockeyclub/club/pkg/security"
)

type HorseRequest struct {
	Name      string `json:"name" form:"name"`
	Sire      string `json:"sire" form:"sire"`
	Dam       string `json:"dam" form:"dam"`
	BirthYear int    `json:"birth_year" form:"birth_year"`
	Coat      string `json:"coat" form:"coat"`
	OwnerID   int64  `json:"owner_id" form:"owner_id"`
	TrainerID int64  `json:"trainer_id" form:"trainer_id"`
}

func (r HorseRequest) Validate() *security.ValidationError {
	var issues []security.FieldIssue
	if r.Name == "" {
		issues = append(issues, security.FieldIssue{Field: "name", Message: "name is required"})
	}
	currentYear := time.Now().Year()
	if r.BirthYear != 0 && (r.BirthYear < 1990 || r.BirthYear > currentYear) {
		issues = append(issues, security.FieldIssue{Field: "birth_year", Message: "birth year out of range"})
	}
	if len(issues) > 0 {
		return &security.ValidationError{Issues: issues}
	}
	return nil
}

type JockeyRequest struct {
	Name      string  `json:"name" form:"name"`
	LicenseNo string  `json:"license_no" form:"license_no"`
	WeightKg  float64 `json:"weight_kg" form:"weight_kg"`
}

func (r JockeyRequest) Validate() *security.ValidationError {
	var issues []security.FieldIssue
	if r.Name == "" {
		issues = append(issues, security.FieldIssue{Field: "name", Message: "name is required"})
	}
	if r.WeightKg != 0 && (r.WeightKg < 40 || r.WeightKg > 70) {
		issues = append(issues, security.FieldIssue{Field: "weight_kg", Message: "riding weight out of range"})
	}
	if len(issues) > 0 {
		return &security.ValidationError{Issues: issues}
	}
	return nil
}

type TrainerRequest struct {
	Name   string `json:"name" form:"name"`
	Stable string `json:"stable" form:"stable"`
}

func (r TrainerRequest) Validate() *security.ValidationError {
	if r.Name == "" {
		return &security.ValidationError{Issues: []security.FieldIssue{
			{Field: "name", Message: "name is required"},
		}}
	}
	return nil
}

type OwnerRequest struct {
	Name  string `json:"name" form:"name"`
	Silks string `json:"silks" form:"silks"`
}

func (r OwnerRequest) Validate() *security.ValidationError {
	if r.Name == "" {
		return &security.ValidationError{Issues: []security.FieldIssue{
			{Field: "name", Message: "name is required"},
		}}
	}
	return nil
}
