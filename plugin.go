package club

import (
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/oarkflow/squealx"
	"github.com/oarkflow/squealx/drivers/sqlite"

	"github.com/tunisiajockeyclub/club/pkg/http/routes"
	"github.com/tunisiajockeyclub/club/pkg/libs"
	"github.com/tunisiajockeyclub/club/pkg/objects"
	"github.com/tunisiajockeyclub/club/pkg/security"
	"github.com/tunisiajockeyclub/club/pkg/storage"
	"github.com/tunisiajockeyclub/club/pkg/utils"
)

//go:embed club
var Assets embed.FS

type Plugin struct {
	App    *fiber.App
	Prefix string
	Assets embed.FS
	DB     *squealx.DB

	// Overridable collaborators for the request pipeline. Nil fields get
	// production defaults in Register.
	RateLimits security.RateLimitStore
	EventSink  security.EventSink
	Alerter    security.Alerter
}

func (p *Plugin) Register() {
	var db *squealx.DB
	cfg := libs.LoadConfig()
	if p.DB != nil {
		db = p.DB
	} else if cfg.DB != nil {
		db = cfg.DB
	} else {
		sqliteDB, err := sqlite.Open("club.db", "sqlite")
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		db = sqliteDB
	}
	vault, err := storage.NewDatabaseStorage(db)
	if err != nil {
		log.Fatalf("failed to initialize club storage: %v", err)
	}
	manager := libs.NewManager(vault, cfg)
	objects.Manager = manager

	if p.RateLimits == nil {
		p.RateLimits = security.NewMemoryStore()
	}
	var events *security.EventLogger
	if cfg.EnableSecurityEvents {
		events = security.NewEventLogger(p.EventSink, p.Alerter)
	}
	resolver := &security.PasetoResolver{
		Secret:     cfg.Secret,
		CookieName: cfg.SessionName,
		Revoked:    manager.LogoutTracker(),
	}
	objects.Pipeline = security.NewPipeline(p.RateLimits, resolver, cfg.Secret, events)

	if p.App != nil {
		routes.Setup(p.Prefix, p.App)
		routes.AdminRoutes(p.App.Group(p.Prefix))
	}
}

func (p *Plugin) Init() {
}

func (p *Plugin) Name() string {
	return "Club"
}

func (p *Plugin) DependsOn() []string {
	return []string{"Database"}
}

func (p *Plugin) Close() error {
	return nil
}

func NewPlugin(prefix string, apps ...*fiber.App) *Plugin {
	var app *fiber.App
	if len(apps) > 0 {
		app = apps[0]
	}
	if prefix == "" {
		prefix = "/"
	}

	engine := html.NewFileSystem(http.FS(Assets), ".html")
	engine.Reload(true)
	engine.AddFuncMap(map[string]any{
		"unescape": func(s string) template.HTML {
			return template.HTML(s)
		},
		"uris": func() map[string]string {
			return utils.GetURIs()
		},
	})
	objects.ViewEngine = engine
	return &Plugin{
		Prefix: prefix,
		App:    app,
		Assets: Assets,
	}
}
