package security

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

type stubResolver struct {
	session Session
}

func (r *stubResolver) Resolve(c *fiber.Ctx) Session {
	return r.session
}

func newTestPipeline(resolver SessionResolver, sink *recordingSink) *Pipeline {
	if resolver == nil {
		resolver = &stubResolver{}
	}
	return NewPipeline(NewMemoryStore(), resolver, csrfSecret, NewEventLogger(sink, nil))
}

func okHandler(calls *int) Handler {
	return func(c *fiber.Ctx, sc *Context) error {
		*calls++
		return c.SendString("ok")
	}
}

func TestPipelineRateLimitDeniesThirdCall(t *testing.T) {
	sink := &recordingSink{}
	pipeline := newTestPipeline(nil, sink)

	calls := 0
	app := fiber.New()
	app.Get("/data", pipeline.Wrap(Options{
		RateLimit: &RateLimitRule{Window: time.Minute, MaxRequests: 2},
	}, okHandler(&calls)))

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/data", nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("request %d: status = %d", i+1, resp.StatusCode)
		}
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/data", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError && resp.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("third request: status = %d", resp.StatusCode)
	}
	if calls != 2 {
		t.Fatalf("handler ran %d times, want 2", calls)
	}

	var suspicious int
	for _, event := range sink.events {
		if event.Type == EventSuspicious {
			suspicious++
		}
	}
	if suspicious != 1 {
		t.Fatalf("suspicious events = %d, want 1", suspicious)
	}
}

func TestPipelineUnauthenticatedIsDenied(t *testing.T) {
	pipeline := newTestPipeline(&stubResolver{}, &recordingSink{})

	calls := 0
	errs := make([]error, 0, 1)
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			errs = append(errs, err)
			return c.SendStatus(fiber.StatusUnauthorized)
		},
	})
	app.Get("/admin", pipeline.Wrap(Options{RequireAuth: true}, okHandler(&calls)))

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if calls != 0 {
		t.Fatal("handler must not run without a session")
	}
	if len(errs) != 1 || errs[0] != ErrUnauthenticated {
		t.Fatalf("errs = %v, want ErrUnauthenticated", errs)
	}
}

func TestPipelineRoleGateDeniesWrongRole(t *testing.T) {
	resolver := &stubResolver{session: Session{
		User:      &User{ID: 7, Email: "m@club.tn", Role: "member"},
		SessionID: "sid-7",
	}}
	pipeline := newTestPipeline(resolver, &recordingSink{})

	calls := 0
	var got error
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			got = err
			return c.SendStatus(fiber.StatusForbidden)
		},
	})
	app.Get("/admin", pipeline.Wrap(Options{
		RequireAuth: true,
		RequireRole: []string{"admin"},
	}, okHandler(&calls)))

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if calls != 0 {
		t.Fatal("handler must not run for a denied role")
	}
	if _, ok := got.(*ForbiddenError); !ok {
		t.Fatalf("error = %T, want *ForbiddenError", got)
	}
}

func TestPipelineCSRFOnMutatingOnly(t *testing.T) {
	resolver := &stubResolver{session: Session{
		User:      &User{ID: 7, Email: "a@club.tn", Role: "admin"},
		SessionID: "sid-7",
	}}
	pipeline := newTestPipeline(resolver, &recordingSink{})

	getCalls, postCalls := 0, 0
	app := fiber.New()
	opts := Options{RequireAuth: true, ValidateCSRF: true}
	app.Get("/thing", pipeline.Wrap(opts, okHandler(&getCalls)))
	app.Post("/thing", pipeline.Wrap(opts, okHandler(&postCalls)))

	resp, err := app.Test(httptest.NewRequest("GET", "/thing", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK || getCalls != 1 {
		t.Fatalf("GET should bypass CSRF: status=%d calls=%d", resp.StatusCode, getCalls)
	}

	resp, err = app.Test(httptest.NewRequest("POST", "/thing", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode == fiber.StatusOK || postCalls != 0 {
		t.Fatalf("POST without token should be denied: status=%d calls=%d", resp.StatusCode, postCalls)
	}

	req := httptest.NewRequest("POST", "/thing", nil)
	req.Header.Set(HeaderCSRF, CSRFToken(csrfSecret, "sid-7"))
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK || postCalls != 1 {
		t.Fatalf("POST with valid token should pass: status=%d calls=%d", resp.StatusCode, postCalls)
	}
}

func TestPipelineSanitizesJSONBody(t *testing.T) {
	pipeline := newTestPipeline(nil, &recordingSink{})

	var seen string
	app := fiber.New()
	app.Post("/notes", pipeline.Wrap(Options{SanitizeInput: true}, func(c *fiber.Ctx, sc *Context) error {
		seen = string(c.Body())
		return c.SendString("ok")
	}))

	body := strings.NewReader(`{"note":"<script>alert(1)</script>Hello"}`)
	req := httptest.NewRequest("POST", "/notes", body)
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	if _, err := app.Test(req); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(seen, `"Hello"`) || strings.Contains(seen, "script") {
		t.Fatalf("body not sanitized: %s", seen)
	}
}

func TestPipelineLogsOneErrorEventAndRethrows(t *testing.T) {
	sink := &recordingSink{}
	pipeline := newTestPipeline(nil, sink)

	calls := 0
	var got error
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			got = err
			return c.SendStatus(fiber.StatusInternalServerError)
		},
	})
	app.Get("/boom", pipeline.Wrap(Options{}, func(c *fiber.Ctx, sc *Context) error {
		calls++
		return fiber.NewError(fiber.StatusInternalServerError, "boom")
	}))

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
	if got == nil || got.Error() != "boom" {
		t.Fatalf("error = %v, want boom", got)
	}

	var errorEvents int
	for _, event := range sink.events {
		if event.Type == EventError {
			errorEvents++
		}
	}
	if errorEvents != 1 {
		t.Fatalf("error events = %d, want exactly 1", errorEvents)
	}
}

func TestPipelineAccessEventCarriesIdentity(t *testing.T) {
	resolver := &stubResolver{session: Session{
		User:      &User{ID: 42, Email: "a@club.tn", Role: "admin"},
		SessionID: "sid-42",
	}}
	sink := &recordingSink{}
	pipeline := newTestPipeline(resolver, sink)

	calls := 0
	app := fiber.New()
	app.Get("/admin", pipeline.Wrap(Options{RequireAuth: true}, okHandler(&calls)))

	if _, err := app.Test(httptest.NewRequest("GET", "/admin", nil)); err != nil {
		t.Fatal(err)
	}
	if len(sink.events) != 1 {
		t.Fatalf("events = %d, want 1", len(sink.events))
	}
	event := sink.events[0]
	if event.Type != EventAccess || event.UserID != 42 || event.SessionID != "sid-42" {
		t.Fatalf("unexpected access event: %+v", event)
	}
}

func TestPipelineSanitizesFormAfterCSRFRead(t *testing.T) {
	resolver := &stubResolver{session: Session{
		User:      &User{ID: 7, Email: "a@club.tn", Role: "admin"},
		SessionID: "sid-7",
	}}
	pipeline := newTestPipeline(resolver, &recordingSink{})

	var fromFormValue, fromParser string
	app := fiber.New()
	opts := Options{RequireAuth: true, ValidateCSRF: true, SanitizeInput: true}
	app.Post("/horses", pipeline.Wrap(opts, func(c *fiber.Ctx, sc *Context) error {
		fromFormValue = c.FormValue("name")
		var payload struct {
			Name string `form:"name"`
		}
		if err := c.BodyParser(&payload); err != nil {
			return err
		}
		fromParser = payload.Name
		return c.SendString("ok")
	}))

	form := url.Values{}
	form.Set(FormFieldCSRF, CSRFToken(csrfSecret, "sid-7"))
	form.Set("name", "<script>alert(1)</script>Hello")
	req := httptest.NewRequest("POST", "/horses", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if fromFormValue != "Hello" {
		t.Fatalf("FormValue saw %q, want %q", fromFormValue, "Hello")
	}
	if fromParser != "Hello" {
		t.Fatalf("BodyParser saw %q, want %q", fromParser, "Hello")
	}
}

func TestPipelineSanitizesFormWithoutCSRF(t *testing.T) {
	pipeline := newTestPipeline(nil, &recordingSink{})

	var seen string
	app := fiber.New()
	app.Post("/login", pipeline.Wrap(Options{SanitizeInput: true}, func(c *fiber.Ctx, sc *Context) error {
		seen = c.FormValue("email")
		return c.SendString("ok")
	}))

	form := url.Values{}
	form.Set("email", "javascript:steal@club.tn")
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	if _, err := app.Test(req); err != nil {
		t.Fatal(err)
	}
	if seen != "steal@club.tn" {
		t.Fatalf("FormValue saw %q, want %q", seen, "steal@club.tn")
	}
}

func TestPipelineValidationErrorIsNotAnErrorEvent(t *testing.T) {
	sink := &recordingSink{}
	pipeline := newTestPipeline(nil, sink)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.SendStatus(fiber.StatusBadRequest)
		},
	})
	app.Post("/horses", pipeline.Wrap(Options{}, func(c *fiber.Ctx, sc *Context) error {
		return &ValidationError{Issues: []FieldIssue{{Field: "name", Message: "name is required"}}}
	}))

	resp, err := app.Test(httptest.NewRequest("POST", "/horses", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, event := range sink.events {
		if event.Type == EventError {
			t.Fatalf("validation failure logged as error event: %+v", event)
		}
	}
}

func TestPipelineAuthAndRoleDenialsLogNoErrorEvent(t *testing.T) {
	resolver := &stubResolver{session: Session{
		User:      &User{ID: 7, Email: "m@club.tn", Role: "member"},
		SessionID: "sid-7",
	}}
	sink := &recordingSink{}
	pipeline := newTestPipeline(resolver, sink)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.SendStatus(fiber.StatusForbidden)
		},
	})
	app.Get("/admin", pipeline.Wrap(Options{
		RequireAuth: true,
		RequireRole: []string{"admin"},
	}, okHandler(new(int))))

	if _, err := app.Test(httptest.NewRequest("GET", "/admin", nil)); err != nil {
		t.Fatal(err)
	}
	for _, event := range sink.events {
		if event.Type == EventError {
			t.Fatalf("role denial logged as error event: %+v", event)
		}
	}
}
