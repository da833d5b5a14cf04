package security

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tunisiajockeyclub/club/pkg/utils"
)

// Handler is the wrapped business handler, invoked only after every
// configured stage has passed.
type Handler func(c *fiber.Ctx, sc *Context) error

// HeaderCSRF is where mutating requests carry their token; form submissions
// may use the csrf_token field instead.
const (
	HeaderCSRF    = "X-CSRF-Token"
	FormFieldCSRF = "csrf_token"
)

// Pipeline composes the security stages in a fixed order per request:
// rate limit, auth, role, CSRF, sanitization, access event, handler. The
// first failing stage short-circuits the request.
type Pipeline struct {
	Store      RateLimitStore
	Sessions   SessionResolver
	CSRFSecret []byte
	Events     *EventLogger
}

func NewPipeline(store RateLimitStore, sessions SessionResolver, csrfSecret []byte, events *EventLogger) *Pipeline {
	return &Pipeline{
		Store:      store,
		Sessions:   sessions,
		CSRFSecret: csrfSecret,
		Events:     events,
	}
}

func (p *Pipeline) Wrap(opts Options, handler Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sc := &Context{
			IPAddress: utils.GetClientIP(c),
			UserAgent: c.Get(fiber.HeaderUserAgent),
		}

		if opts.RateLimit != nil && p.Store != nil {
			decision := p.Store.Take(sc.IPAddress, opts.RateLimit.Window, opts.RateLimit.MaxRequests)
			if !decision.Allowed {
				p.log(c, sc, EventSuspicious, map[string]any{
					"reason":      "rate_limited",
					"retry_after": int(decision.RetryAfter.Seconds()),
				})
				return &RateLimitError{
					Limit:      opts.RateLimit.MaxRequests,
					RetryAfter: decision.RetryAfter,
					ResetTime:  decision.ResetTime,
				}
			}
		}

		mutating := !IsSafeMethod(c.Method())

		var sess Session
		if opts.RequireAuth || (opts.ValidateCSRF && mutating) {
			sess = p.Sessions.Resolve(c)
		}
		if opts.RequireAuth {
			if sess.User == nil {
				return ErrUnauthenticated
			}
			sc.User = sess.User
			sc.SessionID = sess.SessionID
			if !CheckRole(sc.User, opts.RequireRole) {
				return &ForbiddenError{Reason: "insufficient role"}
			}
		} else if sess.SessionID != "" {
			sc.SessionID = sess.SessionID
		}

		if opts.ValidateCSRF && mutating {
			submitted := c.Get(HeaderCSRF)
			if submitted == "" {
				submitted = c.FormValue(FormFieldCSRF)
			}
			if !ValidateCSRF(p.CSRFSecret, submitted, sc.SessionID) {
				p.log(c, sc, EventSuspicious, map[string]any{"reason": "csrf_failed"})
				return ErrCSRF
			}
		}

		if opts.SanitizeInput && mutating {
			p.sanitizeBody(c)
		}

		p.log(c, sc, EventAccess, nil)

		if err := handler(c, sc); err != nil {
			if !IsDenial(err) {
				p.log(c, sc, EventError, map[string]any{"error": err.Error()})
			}
			return err
		}
		return nil
	}
}

// sanitizeBody cleans every string leaf of the parsed request body and puts
// the cleaned body back so downstream parsers see only cleaned values. Best
// effort: unparseable bodies pass through untouched.
func (p *Pipeline) sanitizeBody(c *fiber.Ctx) {
	body := c.Body()
	if len(body) == 0 {
		return
	}
	contentType := c.Get(fiber.HeaderContentType)
	switch {
	case strings.HasPrefix(contentType, fiber.MIMEApplicationJSON):
		var parsed any
		if err := json.Unmarshal(body, &parsed); err != nil {
			return
		}
		cleaned, err := json.Marshal(CleanValue(parsed))
		if err != nil {
			return
		}
		c.Request().SetBody(cleaned)
	case strings.HasPrefix(contentType, fiber.MIMEApplicationForm):
		form, err := url.ParseQuery(string(body))
		if err != nil {
			return
		}
		cleaned := CleanForm(form)
		c.Request().SetBody([]byte(url.Values(cleaned).Encode()))
		// Reading the token field during CSRF validation leaves fasthttp's
		// parsed form args cached with the original values. Refill the cache
		// so FormValue and BodyParser see the cleaned body.
		args := c.Request().PostArgs()
		args.Reset()
		for key, values := range cleaned {
			for _, value := range values {
				args.Add(key, value)
			}
		}
	}
}

func (p *Pipeline) log(c *fiber.Ctx, sc *Context, eventType EventType, details map[string]any) {
	if p.Events == nil {
		return
	}
	event := Event{
		Type:      eventType,
		Method:    c.Method(),
		URL:       c.OriginalURL(),
		UserAgent: sc.UserAgent,
		IPAddress: sc.IPAddress,
		SessionID: sc.SessionID,
		Details:   details,
	}
	if sc.User != nil {
		event.UserID = sc.User.ID
	}
	p.Events.Log(event, c.OriginalURL())
}
