package utils_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"jobboard/api/utils"
)

func TestQueryValues(t *testing.T) {
	app := fiber.New()
	var got []string
	app.Get("/", func(c *fiber.Ctx) error {
		got = utils.QueryValues(c, "industry")
		return c.SendStatus(204)
	})
	if _, err := app.Test(httptest.NewRequest("GET", "/?industry=Fintech&industry=Health%20Care&other=x", nil)); err != nil {
		t.Fatal(err)
	}
	if want := []string{"Fintech", "Health Care"}; !reflect.DeepEqual(got, want) {
		t.Errorf("QueryValues = %v, want %v", got, want)
	}
}

func TestRespondWithError(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return utils.RespondWithError(c, fiber.StatusNotFound, "Company not found")
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 404 || string(body) != `{"error":"Company not found"}` {
		t.Errorf("got %d %s", resp.StatusCode, body)
	}
}

func TestFormatValidationErrors(t *testing.T) {
	type payload struct {
		Name string `validate:"required"`
		Kind string `validate:"oneof=a b"`
	}
	err := validator.New().Struct(payload{Kind: "c"})
	got := utils.FormatValidationErrors(err)
	if len(got) != 2 {
		t.Fatalf("got %v", got)
	}
	if !strings.Contains(got[0], "'Name'") || !strings.Contains(got[1], "(value: a b)") {
		t.Errorf("unexpected messages: %v", got)
	}

	if utils.FormatValidationErrors(nil) != nil {
		t.Error("nil error should format to nil")
	}
}

func TestRespondWithValidationError(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		type payload struct {
			Title string `validate:"required"`
		}
		return utils.RespondWithValidationError(c, "Missing required fields", validator.New().Struct(payload{}))
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	var body utils.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 400 || body.Error != "Missing required fields" || len(body.Details) != 1 {
		t.Errorf("got %d %+v", resp.StatusCode, body)
	}
}
