package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/oarkflow/xid/wuid"

	"github.com/tunisiajockeyclub/club/pkg/http/requests"
	"github.com/tunisiajockeyclub/club/pkg/http/responses"
	"github.com/tunisiajockeyclub/club/pkg/models"
	"github.com/tunisiajockeyclub/club/pkg/objects"
	"github.com/tunisiajockeyclub/club/pkg/security"
	"github.com/tunisiajockeyclub/club/pkg/utils"
)

func DashboardPage(c *fiber.Ctx, sc *security.Context) error {
	vault := objects.Manager.Vault()
	counts, err := vault.Counts()
	if err != nil {
		return err
	}
	upcoming, err := vault.ListUpcomingRaces(5)
	if err != nil {
		return err
	}
	return responses.Render(c, utils.DashboardTemplate, fiber.Map{
		"Title":     "Club Administration",
		"User":      sc.User,
		"Counts":    counts,
		"Upcoming":  upcoming,
		"CSRFToken": csrfToken(sc),
	})
}

// adminList renders one registry section with its rows and a fresh form token.
func adminList(c *fiber.Ctx, sc *security.Context, section string, rows any) error {
	return responses.Render(c, utils.AdminListTemplate, fiber.Map{
		"Title":     "Manage " + section,
		"Section":   section,
		"Rows":      rows,
		"User":      sc.User,
		"CSRFToken": csrfToken(sc),
	})
}

// --- Horses ---

func AdminHorsesPage(c *fiber.Ctx, sc *security.Context) error {
	horses, err := objects.Manager.Vault().ListHorses()
	if err != nil {
		return err
	}
	return adminList(c, sc, "Horses", horses)
}

func PostHorse(c *fiber.Ctx, sc *security.Context) error {
	var req requests.HorseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request")
	}
	if verr := req.Validate(); verr != nil {
		return verr
	}
	horse := models.Horse{
		HorseID:   wuid.New().Int64(),
		Name:      req.Name,
		Sire:      req.Sire,
		Dam:       req.Dam,
		BirthYear: req.BirthYear,
		Coat:      req.Coat,
		OwnerID:   req.OwnerID,
		TrainerID: req.TrainerID,
		Active:    true,
	}
	if err := objects.Manager.Vault().CreateHorse(horse); err != nil {
		return err
	}
	return c.Redirect(utils.AdminHorsesURI)
}

func PutHorse(c *fiber.Ctx, sc *security.Context) error {
	horseID, err := paramID(c)
	if err != nil {
		return err
	}
	existing, err := objects.Manager.Vault().GetHorse(horseID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "horse not found")
	}
	var req requests.HorseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request")
	}
	if verr := req.Validate(); verr != nil {
		return verr
	}
	existing.Name = req.Name
	existing.Sire = req.Sire
	existing.Dam = req.Dam
	existing.BirthYear = req.BirthYear
	existing.Coat = req.Coat
	existing.OwnerID = req.OwnerID
	existing.TrainerID = req.TrainerID
	if err := objects.Manager.Vault().UpdateHorse(existing); err != nil {
		return err
	}
	return c.Redirect(utils.AdminHorsesURI)
}

func DeleteHorse(c *fiber.Ctx, sc *security.Context) error {
	horseID, err := paramID(c)
	if err != nil {
		return err
	}
	if err := objects.Manager.Vault().DeleteHorse(horseID); err != nil {
		return err
	}
	return c.Redirect(utils.AdminHorsesURI)
}

// --- Jockeys ---

func AdminJockeysPage(c *fiber.Ctx, sc *security.Context) error {
	jockeys, err := objects.Manager.Vault().ListJockeys()
	if err != nil {
		return err
	}
	return adminList(c, sc, "Jockeys", jockeys)
}

func PostJockey(c *fiber.Ctx, sc *security.Context) error {
	var req requests.JockeyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request")
	}
	if verr := req.Validate(); verr != nil {
		return verr
	}
	jockey := models.Jockey{
		JockeyID:  wuid.New().Int64(),
		Name:      req.Name,
		LicenseNo: req.LicenseNo,
		WeightKg:  req.WeightKg,
	}
	if err := objects.Manager.Vault().CreateJockey(jockey); err != nil {
		return err
	}
	return c.Redirect(utils.AdminJockeysURI)
}

// --- Trainers ---

func AdminTrainersPage(c *fiber.Ctx, sc *security.Context) error {
	trainers, err := objects.Manager.Vault().ListTrainers()
	if err != nil {
		return err
	}
	return adminList(c, sc, "Trainers", trainers)
}

func PostTrainer(c *fiber.Ctx, sc *security.Context) error {
	var req requests.TrainerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request")
	}
	if verr := req.Validate(); verr != nil {
		return verr
	}
	trainer := models.Trainer{
		TrainerID: wuid.New().Int64(),
		Name:      req.Name,
		Stable:    req.Stable,
	}
	if err := objects.Manager.Vault().CreateTrainer(trainer); err != nil {
		return err
	}
	return c.Redirect(utils.AdminTrainersURI)
}

// --- Owners ---

func AdminOwnersPage(c *fiber.Ctx, sc *security.Context) error {
	owners, err := objects.Manager.Vault().ListOwners()
	if err != nil {
		return err
	}
	return adminList(c, sc, "Owners", owners)
}

func PostOwner(c *fiber.Ctx, sc *security.Context) error {
	var req requests.OwnerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request")
	}
	if verr := req.Validate(); verr != nil {
		return verr
	}
	owner := models.Owner{
		OwnerID: wuid.New().Int64(),
		Name:    req.Name,
		Silks:   req.Silks,
	}
	if err := objects.Manager.Vault().CreateOwner(owner); err != nil {
		return err
	}
	return c.Redirect(utils.AdminOwnersURI)
}

// --- Races ---

func AdminRacesPage(c *fiber.Ctx, sc *security.Context) error {
	races, err := objects.Manager.Vault().ListRaces()
	if err != nil {
		return err
	}
	return adminList(c, sc, "Races", races)
}

func PostRace(c *fiber.Ctx, sc *security.Context) error {
	var req requests.RaceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request")
	}
	if verr := req.Validate(); verr != nil {
		return verr
	}
	startsAt, _ := req.StartTime()
	status := req.Status
	if status == "" {
		status = models.RaceScheduled
	}
	race := models.Race{
		RaceID:     wuid.New().Int64(),
		Name:       req.Name,
		Racecourse: req.Racecourse,
		StartsAt:   startsAt,
		DistanceM:  req.DistanceM,
		PurseTND:   req.PurseTND,
		Category:   req.Category,
		Status:     status,
	}
	if err := objects.Manager.Vault().CreateRace(race); err != nil {
		return err
	}
	return c.Redirect(utils.AdminRacesURI)
}

func PutRace(c *fiber.Ctx, sc *security.Context) error {
	raceID, err := paramID(c)
	if err != nil {
		return err
	}
	existing, err := objects.Manager.Vault().GetRace(raceID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "race not found")
	}
	var req requests.RaceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request")
	}
	if verr := req.Validate(); verr != nil {
		return verr
	}
	startsAt, _ := req.StartTime()
	existing.Name = req.Name
	existing.Racecourse = req.Racecourse
	existing.StartsAt = startsAt
	existing.DistanceM = req.DistanceM
	existing.PurseTND = req.PurseTND
	existing.Category = req.Category
	if req.Status != "" {
		existing.Status = req.Status
	}
	if err := objects.Manager.Vault().UpdateRace(existing); err != nil {
		return err
	}
	return c.Redirect(utils.AdminRacesURI)
}

// --- Entries ---

func PostEntry(c *fiber.Ctx, sc *security.Context) error {
	raceID, err := paramID(c)
	if err != nil {
		return err
	}
	vault := objects.Manager.Vault()
	race, err := vault.GetRace(raceID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "race not found")
	}
	if race.Status != models.RaceScheduled {
		return fiber.NewError(fiber.StatusConflict, "race is not open for entries")
	}
	var req requests.EntryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request")
	}
	if verr := req.Validate(); verr != nil {
		return verr
	}
	entry := models.RaceEntry{
		EntryID:  wuid.New().Int64(),
		RaceID:   raceID,
		HorseID:  req.HorseID,
		JockeyID: req.JockeyID,
		Draw:     req.Draw,
		WeightKg: req.WeightKg,
	}
	if err := vault.CreateEntry(entry); err != nil {
		return err
	}
	return c.Redirect(utils.AdminRacesURI)
}

func ScratchEntry(c *fiber.Ctx, sc *security.Context) error {
	entryID, err := paramID(c)
	if err != nil {
		return err
	}
	if err := objects.Manager.Vault().ScratchEntry(entryID); err != nil {
		return err
	}
	return c.Redirect(utils.AdminRacesURI)
}

// --- Results ---

// PostResult records one finisher. The first recorded result moves the race
// out of the scheduled state.
func PostResult(c *fiber.Ctx, sc *security.Context) error {
	raceID, err := paramID(c)
	if err != nil {
		return err
	}
	vault := objects.Manager.Vault()
	race, err := vault.GetRace(raceID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "race not found")
	}
	var req requests.ResultRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request")
	}
	if verr := req.Validate(); verr != nil {
		return verr
	}
	result := models.RaceResult{
		ResultID:   wuid.New().Int64(),
		RaceID:     raceID,
		HorseID:    req.HorseID,
		JockeyID:   req.JockeyID,
		Position:   req.Position,
		FinishMs:   req.FinishMs,
		MarginLens: req.MarginLens,
	}
	if err := vault.RecordResult(result); err != nil {
		return err
	}
	if race.Status == models.RaceScheduled {
		race.Status = models.RaceFinished
		if err := vault.UpdateRace(race); err != nil {
			return err
		}
	}
	return c.Redirect(utils.AdminRacesURI)
}
