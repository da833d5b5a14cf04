package requests

import "testing"

func TestLoginRequestValidate(t *testing.T) {
	ok := LoginRequest{Email: "admin@club.tn", Password: "secret"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	bad := LoginRequest{Email: "not-an-email", Password: ""}
	verr := bad.Validate()
	if verr == nil {
		t.Fatal("invalid request accepted")
	}
	if len(verr.Issues) != 2 {
		t.Fatalf("issues = %d, want 2", len(verr.Issues))
	}
}

func TestHorseRequestValidate(t *testing.T) {
	if err := (HorseRequest{Name: "Sahara Star", BirthYear: 2020}).Validate(); err != nil {
		t.Fatalf("valid horse rejected: %v", err)
	}
	verr := HorseRequest{BirthYear: 1700}.Validate()
	if verr == nil || len(verr.Issues) != 2 {
		t.Fatalf("want name and birth_year issues, got %v", verr)
	}
}

func TestRaceRequestValidate(t *testing.T) {
	valid := RaceRequest{
		Name:       "Grand Prix de Tunis",
		Racecourse: "Kassar Said",
		StartsAt:   "2026-09-12T15:00",
		DistanceM:  2000,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid race rejected: %v", err)
	}

	invalid := RaceRequest{
		StartsAt:  "yesterday",
		DistanceM: 100,
		Status:    "cancelled",
	}
	verr := invalid.Validate()
	if verr == nil {
		t.Fatal("invalid race accepted")
	}
	fields := map[string]bool{}
	for _, issue := range verr.Issues {
		fields[issue.Field] = true
	}
	for _, want := range []string{"name", "racecourse", "starts_at", "distance_m", "status"} {
		if !fields[want] {
			t.Fatalf("missing issue for %s: %v", want, verr.Issues)
		}
	}
}

func TestRaceRequestStartTimeFormats(t *testing.T) {
	if _, err := (RaceRequest{StartsAt: "2026-09-12T15:00:00Z"}).StartTime(); err != nil {
		t.Fatalf("RFC3339 rejected: %v", err)
	}
	if _, err := (RaceRequest{StartsAt: "2026-09-12T15:00"}).StartTime(); err != nil {
		t.Fatalf("datetime-local rejected: %v", err)
	}
}

func TestResultRequestValidate(t *testing.T) {
	verr := ResultRequest{Position: 0}.Validate()
	if verr == nil {
		t.Fatal("result without horse and position accepted")
	}
}

func TestEntryRequestValidate(t *testing.T) {
	if err := (EntryRequest{HorseID: 1, JockeyID: 2, Draw: 4}).Validate(); err != nil {
		t.Fatalf("valid entry rejected: %v", err)
	}
	if (EntryRequest{}).Validate() == nil {
		t.Fatal("empty entry accepted")
	}
}
