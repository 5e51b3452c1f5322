package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"jobboard/api/internal/counter"
	"jobboard/api/internal/events"
	"jobboard/api/internal/store"
	"jobboard/api/middleware"
	"jobboard/api/models"
	"jobboard/api/utils"
)

// LogoSigner issues signed upload URLs for company logos.
type LogoSigner interface {
	SignedUploadURL(path string) (string, error)
}

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Store   store.Store
	Counter *counter.Maintainer
	Events  events.Publisher
	Storage LogoSigner // nil when logo uploads are not configured
	Logger  *logrus.Logger

	validate *validator.Validate
}

// NewApplicationHandler creates a new ApplicationHandler with the given dependencies.
func NewApplicationHandler(st store.Store, ctr *counter.Maintainer, pub events.Publisher, storage LogoSigner, logger *logrus.Logger) *ApplicationHandler {
	if pub == nil {
		pub = events.Noop{}
	}
	return &ApplicationHandler{
		Store:    st,
		Counter:  ctr,
		Events:   pub,
		Storage:  storage,
		Logger:   logger,
		validate: validator.New(),
	}
}

// RegisterRoutes mounts the company and job endpoints on router. auth guards
// every write route.
func (h *ApplicationHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	companies := router.Group("/companies")
	companies.Get("", h.ListCompanies)
	companies.Post("", auth, h.CreateCompany)
	companies.Post("/logo-upload", auth, h.CreateLogoUpload)
	companies.Get("/:id", h.GetCompany)
	companies.Get("/:id/jobs", h.ListCompanyJobs)
	companies.Post("/:id/jobs", auth, h.CreateCompanyJob)
	companies.Post("/:id/reconcile", auth, h.ReconcileCompany)

	jobs := router.Group("/jobs")
	jobs.Get("", h.ListJobs)
	jobs.Post("", auth, h.CreateJob)
	jobs.Get("/:id", h.GetJob)
	jobs.Put("/:id", auth, h.UpdateJob)
	jobs.Delete("/:id", auth, h.DeleteJob)
}

// ErrorHandler answers errors that escape a handler with a JSON body.
func ErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return utils.RespondWithError(c, fe.Code, fe.Message)
		}
		log.WithField("request_id", middleware.RequestID(c)).WithError(err).Error("Unhandled error")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, msgInternal)
	}
}

const (
	msgInternal        = "Internal server error"
	msgInvalidBody     = "Invalid request body"
	msgMissingFields   = "Missing required fields"
	msgCompanyNotFound = "Company not found"
	msgJobNotFound     = "Job not found"
)

// internalError logs err against the request and answers with a generic 500.
func (h *ApplicationHandler) internalError(c *fiber.Ctx, err error, what string) error {
	h.Logger.WithFields(logrus.Fields{
		"request_id": middleware.RequestID(c),
		"path":       c.Path(),
	}).WithError(err).Error(what)
	return utils.RespondWithError(c, fiber.StatusInternalServerError, msgInternal)
}

// validID reports whether id can name a stored record. Every driver issues
// UUIDs, so anything else cannot exist.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// publish sends a job event. Failures only get logged.
func (h *ApplicationHandler) publish(ctx context.Context, eventType string, job *models.Job) {
	e := events.Event{Type: eventType, JobID: job.ID, CompanyID: job.CompanyID, At: time.Now().UTC()}
	if err := h.Events.Publish(ctx, e); err != nil {
		h.Logger.WithFields(logrus.Fields{
			"event":  eventType,
			"job_id": job.ID,
		}).WithError(err).Warn("Event publish failed")
	}
}

// Health reports whether the store answers.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *ApplicationHandler) Health(c *fiber.Ctx) error {
	resp := HealthResponse{Status: "ok", Store: h.Store.Driver()}
	if err := h.Store.Ping(c.UserContext()); err != nil {
		h.Logger.WithError(err).Error("Store ping failed")
		resp.Status = "unavailable"
		resp.Error = "store unreachable"
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
	Error  string `json:"error,omitempty"`
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
