package utils

var (
	LandingURI = "/"
	HealthURI  = "/health"

	RacesURI      = "/races"
	RaceDetailURI = "/races/:id"
	HorsesURI     = "/horses"
	HorseURI      = "/horses/:id"
	JockeysURI    = "/jockeys"
	JockeyURI     = "/jockeys/:id"
	RatingsURI    = "/ratings"

	LoginURI     = "/login"
	LogoutURI    = "/logout"
	MFAVerifyURI = "/mfa/verify"

	AdminURI             = "/admin"
	AdminHorsesURI       = "/admin/horses"
	AdminHorseURI        = "/admin/horses/:id"
	AdminJockeysURI      = "/admin/jockeys"
	AdminTrainersURI     = "/admin/trainers"
	AdminOwnersURI       = "/admin/owners"
	AdminRacesURI        = "/admin/races"
	AdminRaceURI         = "/admin/races/:id"
	AdminRaceEntriesURI  = "/admin/races/:id/entries"
	AdminRaceResultsURI  = "/admin/races/:id/results"
	AdminEntryScratchURI = "/admin/entries/:id/scratch"
	MFASetupURI          = "/admin/mfa/setup"
	MFADisableURI        = "/admin/mfa/disable"
)

var (
	LandingTemplate    = "club/index"
	RacesTemplate      = "club/races"
	RaceDetailTemplate = "club/race-detail"
	HorsesTemplate     = "club/horses"
	HorseTemplate      = "club/horse-detail"
	JockeysTemplate    = "club/jockeys"
	JockeyTemplate     = "club/jockey-detail"
	RatingsTemplate    = "club/ratings"
	LoginTemplate      = "club/login"
	MFAVerifyTemplate  = "club/mfa-verify"
	DashboardTemplate  = "club/dashboard"
	AdminListTemplate  = "club/admin-list"
	MFASetupTemplate   = "club/mfa-setup"
	ErrorTemplate      = "club/error"
)

func GetURIs() map[string]string {
	return map[string]string{
		"Landing":   LandingURI,
		"Races":     RacesURI,
		"Horses":    HorsesURI,
		"Jockeys":   JockeysURI,
		"Ratings":   RatingsURI,
		"Login":     LoginURI,
		"Logout":    LogoutURI,
		"Admin":     AdminURI,
		"MFAVerify": MFAVerifyURI,
		"MFASetup":  MFASetupURI,
	}
}

var DefaultSessionName = "tjc_session"
