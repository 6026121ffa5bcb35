package routes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cardauth/cardauth/internal/config"
	"github.com/cardauth/cardauth/internal/logging"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	cfg := config.Config{
		AppName:   "CardAuth",
		AppEnv:    "test",
		JWTSecret: "test-secret",
		TokenTTL:  time.Minute,
	}
	if err := Setup(app, Deps{Cfg: cfg, Logger: logging.Discard()}); err != nil {
		t.Fatalf("setup routes: %v", err)
	}
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token, body string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test %s %s: %v", method, path, err)
	}
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp, out
}

func registerAndLogin(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/identity/register", "", `{"email":"ana@example.com","password":"s3cret!"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}
	resp, body := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/login", "", `{"email":"ana@example.com","password":"s3cret!"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("login response missing token")
	}
	return token
}

func TestSubmitApprovedEndToEnd(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app)

	resp, rec := doJSON(t, app, fiber.MethodPost, "/api/v1/transactions", token,
		`{"card_number":"4111111111111111","brand":"visa","amount":500}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if rec["status"] != "approved" {
		t.Fatalf("expected approved, got %v (%v)", rec["status"], rec["reason"])
	}
	code, _ := rec["authorization_code"].(string)
	if len(code) != 6 {
		t.Fatalf("expected 6-digit authorization code, got %q", code)
	}
	masked, _ := rec["card_number"].(string)
	if masked != "**** **** **** 1111" {
		t.Fatalf("card number not masked in response: %q", masked)
	}
	if _, present := rec["reason"]; present {
		t.Fatalf("approved record must omit the reason, got %v", rec["reason"])
	}
}

func TestSubmitDeclinedEndToEnd(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app)

	resp, rec := doJSON(t, app, fiber.MethodPost, "/api/v1/transactions", token,
		`{"card_number":"123","brand":"visa","amount":500}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("declines are normal results: expected 201, got %d", resp.StatusCode)
	}
	if rec["status"] != "declined" || rec["reason"] != "PAN must have 16 digits" {
		t.Fatalf("expected PAN decline, got %v (%v)", rec["status"], rec["reason"])
	}
	if _, present := rec["authorization_code"]; present {
		t.Fatal("declined record must omit the authorization code")
	}
}

func TestUnauthenticatedLedgerAccess(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app)

	// No token at all.
	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/transactions", "",
		`{"card_number":"4111111111111111","brand":"visa","amount":500}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}

	// Forged token.
	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/v1/transactions", "forged-token", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 with forged token, got %d", resp.StatusCode)
	}

	// The rejected submission must not have produced a record.
	resp, page := doJSON(t, app, fiber.MethodGet, "/api/v1/transactions", token, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", resp.StatusCode)
	}
	if total, _ := page["total_items"].(float64); total != 0 {
		t.Fatalf("unauthenticated submit created a record, total=%v", total)
	}
}

func TestListPaginationEndToEnd(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app)

	for i := 0; i < 25; i++ {
		body := fmt.Sprintf(`{"card_number":"4111111111111111","brand":"visa","amount":%d}`, i)
		resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/transactions", token, body)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("submit %d: expected 201, got %d", i, resp.StatusCode)
		}
	}

	resp, page := doJSON(t, app, fiber.MethodGet, "/api/v1/transactions?page=1&page_size=10", token, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	records, _ := page["transactions"].([]any)
	if len(records) != 10 {
		t.Fatalf("expected 10 records, got %d", len(records))
	}
	if page["total_pages"].(float64) != 3 || page["total_items"].(float64) != 25 {
		t.Fatalf("unexpected pagination metadata: %v", page)
	}
	newest, _ := records[0].(map[string]any)
	if newest["amount"].(float64) != 24 {
		t.Fatalf("expected newest record first, got amount %v", newest["amount"])
	}

	resp, page = doJSON(t, app, fiber.MethodGet, "/api/v1/transactions?page=4&page_size=10", token, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("past-the-end page must not error, got %d", resp.StatusCode)
	}
	records, _ = page["transactions"].([]any)
	if len(records) != 0 || page["total_pages"].(float64) != 3 || page["total_items"].(float64) != 25 {
		t.Fatalf("expected empty page with intact metadata, got %v", page)
	}
}

func TestRegisterConflictAndLoginFailure(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/identity/register", "", `{"email":"ana@example.com","password":"s3cret!"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/identity/register", "", `{"email":"ana@example.com","password":"other-pass"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate register: expected 400, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/auth/login", "", `{"email":"ana@example.com","password":"wrong"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/auth/login", "", `{"email":"nobody@example.com","password":"s3cret!"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unknown login: expected 401, got %d", resp.StatusCode)
	}
}

func TestSubmitMalformedBody(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app)

	// Non-numeric amount is rejected at the input boundary, never reaching the engine.
	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/transactions", token,
		`{"card_number":"4111111111111111","brand":"visa","amount":"lots"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric amount, got %d", resp.StatusCode)
	}

	// Missing required fields.
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/transactions", token, `{"brand":"visa"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %d", resp.StatusCode)
	}

	// No partial record may exist after rejected submissions.
	_, page := doJSON(t, app, fiber.MethodGet, "/api/v1/transactions", token, "")
	if total, _ := page["total_items"].(float64); total != 0 {
		t.Fatalf("malformed submit created a record, total=%v", total)
	}
}
