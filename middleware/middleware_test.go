package middleware_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"jobboard/api/middleware"
)

const secret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func authApp() *fiber.App {
	app := fiber.New()
	app.Post("/", middleware.RequireBearer(secret), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(middleware.UserIDKey).(string))
	})
	return app
}

func TestRequireBearer(t *testing.T) {
	valid := sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.RegisteredClaims{
		Subject:   "user_1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	expired := sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.RegisteredClaims{
		Subject:   "user_1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	wrongKey := sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.RegisteredClaims{Subject: "user_1"})
	noSubject := sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.RegisteredClaims{})

	cases := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid", "Bearer " + valid, 200, "user_1"},
		{"lowercase scheme", "bearer " + valid, 200, "user_1"},
		{"missing", "", 401, `{"error":"Missing bearer token"}`},
		{"basic auth", "Basic dXNlcjpwYXNz", 401, `{"error":"Missing bearer token"}`},
		{"expired", "Bearer " + expired, 401, `{"error":"Token expired"}`},
		{"wrong key", "Bearer " + wrongKey, 401, `{"error":"Invalid token"}`},
		{"no subject", "Bearer " + noSubject, 401, `{"error":"Token has no subject"}`},
	}

	app := authApp()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", nil)
			if c.header != "" {
				req.Header.Set("Authorization", c.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != c.wantStatus || string(body) != c.wantBody {
				t.Errorf("got %d %s, want %d %s", resp.StatusCode, body, c.wantStatus, c.wantBody)
			}
		})
	}
}

func TestRequireBearer_Disabled(t *testing.T) {
	app := fiber.New()
	app.Post("/", middleware.RequireBearer(""), func(c *fiber.Ctx) error { return c.SendStatus(204) })
	resp, err := app.Test(httptest.NewRequest("POST", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 204 {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	app := fiber.New()
	app.Use(middleware.RequestLogger(log))
	app.Get("/missing", func(c *fiber.Ctx) error {
		if middleware.RequestID(c) == "" {
			t.Error("request id not set")
		}
		return c.Status(404).JSON(fiber.Map{"error": "nope"})
	})

	req := httptest.NewRequest("GET", "/missing", nil)
	req.Header.Set("X-Request-ID", "req-42")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if got := resp.Header.Get("X-Request-ID"); got != "req-42" {
		t.Errorf("X-Request-ID = %q", got)
	}

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line %q: %v", buf.String(), err)
	}
	if line["request_id"] != "req-42" || line["status_code"] != float64(404) || line["level"] != "warning" {
		t.Errorf("unexpected log line: %v", line)
	}
}
