package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tunisiajockeyclub/club/pkg/http/responses"
	"github.com/tunisiajockeyclub/club/pkg/objects"
	"github.com/tunisiajockeyclub/club/pkg/ratings"
	"github.com/tunisiajockeyclub/club/pkg/security"
	"github.com/tunisiajockeyclub/club/pkg/utils"
)

func LandingPage(c *fiber.Ctx, sc *security.Context) error {
	upcoming, err := objects.Manager.Vault().ListUpcomingRaces(5)
	if err != nil {
		return err
	}
	return responses.Render(c, utils.LandingTemplate, fiber.Map{
		"Title":    appName(),
		"Upcoming": upcoming,
		"URIs":     utils.GetURIs(),
	})
}

func RacesPage(c *fiber.Ctx, sc *security.Context) error {
	races, err := objects.Manager.Vault().ListRaces()
	if err != nil {
		return err
	}
	return responses.Render(c, utils.RacesTemplate, fiber.Map{
		"Title": "Race Calendar",
		"Races": races,
	})
}

func RaceDetailPage(c *fiber.Ctx, sc *security.Context) error {
	raceID, err := paramID(c)
	if err != nil {
		return err
	}
	vault := objects.Manager.Vault()
	race, err := vault.GetRace(raceID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "race not found")
	}
	entries, err := vault.ListEntries(raceID)
	if err != nil {
		return err
	}
	results, err := vault.ListResults(raceID)
	if err != nil {
		return err
	}
	return responses.Render(c, utils.RaceDetailTemplate, fiber.Map{
		"Title":   race.Name,
		"Race":    race,
		"Entries": entries,
		"Results": results,
	})
}

func HorsesPage(c *fiber.Ctx, sc *security.Context) error {
	horses, err := objects.Manager.Vault().ListHorses()
	if err != nil {
		return err
	}
	return responses.Render(c, utils.HorsesTemplate, fiber.Map{
		"Title":  "Registered Horses",
		"Horses": horses,
	})
}

func HorseDetailPage(c *fiber.Ctx, sc *security.Context) error {
	horseID, err := paramID(c)
	if err != nil {
		return err
	}
	vault := objects.Manager.Vault()
	horse, err := vault.GetHorse(horseID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "horse not found")
	}
	results, err := vault.ResultsByHorse(horseID)
	if err != nil {
		return err
	}
	return responses.Render(c, utils.HorseTemplate, fiber.Map{
		"Title":   horse.Name,
		"Horse":   horse,
		"Results": results,
	})
}

func JockeysPage(c *fiber.Ctx, sc *security.Context) error {
	jockeys, err := objects.Manager.Vault().ListJockeys()
	if err != nil {
		return err
	}
	return responses.Render(c, utils.JockeysTemplate, fiber.Map{
		"Title":   "Licensed Jockeys",
		"Jockeys": jockeys,
	})
}

func JockeyDetailPage(c *fiber.Ctx, sc *security.Context) error {
	jockeyID, err := paramID(c)
	if err != nil {
		return err
	}
	jockey, err := objects.Manager.Vault().GetJockey(jockeyID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "jockey not found")
	}
	return responses.Render(c, utils.JockeyTemplate, fiber.Map{
		"Title":  jockey.Name,
		"Jockey": jockey,
	})
}

func RatingsPage(c *fiber.Ctx, sc *security.Context) error {
	vault := objects.Manager.Vault()
	horses, err := vault.ListHorses()
	if err != nil {
		return err
	}
	results, err := vault.ListAllResults()
	if err != nil {
		return err
	}
	rated := ratings.Compute(horses, ratings.GroupByHorse(results))
	return responses.Render(c, utils.RatingsTemplate, fiber.Map{
		"Title":   "Club Ratings",
		"Ratings": rated,
	})
}
