package objects

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tunisiajockeyclub/club/pkg/contracts"
	"github.com/tunisiajockeyclub/club/pkg/security"
)

var (
	Manager    contracts.Manager
	Config     contracts.Config
	Pipeline   *security.Pipeline
	ViewEngine fiber.Views
	Layout     string
)
