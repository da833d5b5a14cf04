package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tunisiajockeyclub/club/pkg/http/handlers"
	"github.com/tunisiajockeyclub/club/pkg/http/middlewares"
	"github.com/tunisiajockeyclub/club/pkg/models"
	"github.com/tunisiajockeyclub/club/pkg/objects"
	"github.com/tunisiajockeyclub/club/pkg/security"
	"github.com/tunisiajockeyclub/club/pkg/utils"
)

func publicLimit() *security.RateLimitRule {
	return &security.RateLimitRule{
		Window:      objects.Config.GetDuration("club.rate_limit_window", "1m"),
		MaxRequests: objects.Config.GetInt("club.rate_limit_requests", 100),
	}
}

func loginLimit() *security.RateLimitRule {
	return &security.RateLimitRule{
		Window:      objects.Config.GetDuration("club.rate_limit_window", "1m"),
		MaxRequests: objects.Config.GetInt("club.login_rate_requests", 10),
	}
}

// Setup registers the public site and the auth flow.
func Setup(prefix string, router fiber.Router) {
	route := router.Group(prefix)
	public := security.Options{RateLimit: publicLimit()}

	route.Get(utils.HealthURI, handlers.HealthCheck)
	route.Get(utils.LandingURI, middlewares.SecureLoader(public, handlers.LandingPage))
	route.Get(utils.RacesURI, middlewares.SecureLoader(public, handlers.RacesPage))
	route.Get(utils.RaceDetailURI, middlewares.SecureLoader(public, handlers.RaceDetailPage))
	route.Get(utils.HorsesURI, middlewares.SecureLoader(public, handlers.HorsesPage))
	route.Get(utils.HorseURI, middlewares.SecureLoader(public, handlers.HorseDetailPage))
	route.Get(utils.JockeysURI, middlewares.SecureLoader(public, handlers.JockeysPage))
	route.Get(utils.JockeyURI, middlewares.SecureLoader(public, handlers.JockeyDetailPage))
	route.Get(utils.RatingsURI, middlewares.SecureLoader(public, handlers.RatingsPage))

	// The login flow throttles harder and sanitizes the posted body. CSRF
	// cannot apply before a session exists.
	login := security.Options{RateLimit: loginLimit()}
	route.Get(utils.LoginURI, middlewares.SecureLoader(login, handlers.LoginPage))
	route.Post(utils.LoginURI, objects.Pipeline.Wrap(security.Options{
		RateLimit:     loginLimit(),
		SanitizeInput: true,
	}, handlers.PostLogin))
	route.Get(utils.MFAVerifyURI, middlewares.SecureLoader(login, handlers.MFAVerifyPage))
	route.Post(utils.MFAVerifyURI, objects.Pipeline.Wrap(security.Options{
		RateLimit:     loginLimit(),
		SanitizeInput: true,
	}, handlers.PostMFAVerify))
	route.Get(utils.LogoutURI, middlewares.SecureLoader(security.Options{
		RequireAuth: true,
		RateLimit:   publicLimit(),
	}, handlers.LogoutPage))
}

// AdminRoutes registers the gated management surface. Stewards share the
// read pages; mutations stay admin-only except race-day operations.
func AdminRoutes(router fiber.Router) {
	staff := security.Options{
		RequireAuth: true,
		RequireRole: []string{models.RoleAdmin, models.RoleSteward},
		RateLimit:   publicLimit(),
	}
	admin := security.Options{
		RequireAuth: true,
		RequireRole: []string{models.RoleAdmin},
		RateLimit:   publicLimit(),
	}

	router.Get(utils.AdminURI, middlewares.SecureLoader(staff, handlers.DashboardPage))

	router.Get(utils.AdminHorsesURI, middlewares.SecureLoader(staff, handlers.AdminHorsesPage))
	router.Post(utils.AdminHorsesURI, middlewares.SecureAction(admin, handlers.PostHorse))
	router.Put(utils.AdminHorseURI, middlewares.SecureAction(admin, handlers.PutHorse))
	router.Delete(utils.AdminHorseURI, middlewares.SecureAction(admin, handlers.DeleteHorse))

	router.Get(utils.AdminJockeysURI, middlewares.SecureLoader(staff, handlers.AdminJockeysPage))
	router.Post(utils.AdminJockeysURI, middlewares.SecureAction(admin, handlers.PostJockey))

	router.Get(utils.AdminTrainersURI, middlewares.SecureLoader(staff, handlers.AdminTrainersPage))
	router.Post(utils.AdminTrainersURI, middlewares.SecureAction(admin, handlers.PostTrainer))

	router.Get(utils.AdminOwnersURI, middlewares.SecureLoader(staff, handlers.AdminOwnersPage))
	router.Post(utils.AdminOwnersURI, middlewares.SecureAction(admin, handlers.PostOwner))

	router.Get(utils.AdminRacesURI, middlewares.SecureLoader(staff, handlers.AdminRacesPage))
	router.Post(utils.AdminRacesURI, middlewares.SecureAction(admin, handlers.PostRace))
	router.Put(utils.AdminRaceURI, middlewares.SecureAction(admin, handlers.PutRace))

	router.Post(utils.AdminRaceEntriesURI, middlewares.SecureAction(staff, handlers.PostEntry))
	router.Post(utils.AdminEntryScratchURI, middlewares.SecureAction(staff, handlers.ScratchEntry))
	router.Post(utils.AdminRaceResultsURI, middlewares.SecureAction(staff, handlers.PostResult))

	router.Get(utils.MFASetupURI, middlewares.SecureLoader(admin, handlers.MFASetupPage))
	router.Post(utils.MFASetupURI, middlewares.SecureAction(admin, handlers.PostMFASetup))
	router.Post(utils.MFADisableURI, middlewares.SecureAction(admin, handlers.PostMFADisable))
}
