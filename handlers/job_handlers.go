package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"jobboard/api/internal/events"
	"jobboard/api/internal/query"
	"jobboard/api/internal/store"
	"jobboard/api/middleware"
	"jobboard/api/models"
	"jobboard/api/utils"
)

// CreateJobRequest is the body of POST /jobs and POST /companies/:id/jobs.
// CompanyID comes from the path on the nested route.
type CreateJobRequest struct {
	CompanyID           string     `json:"companyId" validate:"required"`
	Title               string     `json:"title" validate:"required"`
	Description         string     `json:"description" validate:"required"`
	Location            string     `json:"location" validate:"required"`
	JobType             string     `json:"jobType" validate:"required"`
	Salary              *string    `json:"salary,omitempty"`
	Requirements        []string   `json:"requirements,omitempty"`
	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`
	IsActive            *bool      `json:"isActive,omitempty"`
}

func (r *CreateJobRequest) sanitize() {
	r.CompanyID = utils.SanitizeInput(r.CompanyID)
	r.Title = utils.SanitizeInput(r.Title)
	r.Description = utils.SanitizeInput(r.Description)
	r.Location = utils.SanitizeInput(r.Location)
	r.JobType = utils.SanitizeInput(r.JobType)
}

func (r CreateJobRequest) job() models.Job {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return models.Job{
		CompanyID:           r.CompanyID,
		Title:               r.Title,
		Description:         r.Description,
		Location:            r.Location,
		JobType:             r.JobType,
		Salary:              r.Salary,
		Requirements:        r.Requirements,
		ApplicationDeadline: r.ApplicationDeadline,
		IsActive:            active,
	}
}

// Nullable is a body field that tells an absent key apart from an explicit
// null. Set is true when the key was present; Value is nil for null.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// UpdateJobRequest is the body of PUT /jobs/:id. Absent fields keep their
// stored value; companyId is ignored. salary and applicationDeadline may be
// sent as null to remove them.
type UpdateJobRequest struct {
	Title               *string             `json:"title,omitempty"`
	Description         *string             `json:"description,omitempty"`
	Location            *string             `json:"location,omitempty"`
	JobType             *string             `json:"jobType,omitempty"`
	Salary              Nullable[string]    `json:"salary" swaggertype:"string"`
	Requirements        *[]string           `json:"requirements,omitempty"`
	ApplicationDeadline Nullable[time.Time] `json:"applicationDeadline" swaggertype:"string" format:"date-time"`
	IsActive            *bool               `json:"isActive,omitempty"`
}

// update trims the text fields and returns a client-facing message when a
// field is unacceptable.
func (r UpdateJobRequest) update() (models.JobUpdate, string) {
	required := []struct {
		name string
		val  *string
	}{
		{"title", r.Title},
		{"description", r.Description},
		{"location", r.Location},
		{"jobType", r.JobType},
	}
	var blank []string
	for _, f := range required {
		if f.val == nil {
			continue
		}
		*f.val = utils.SanitizeInput(*f.val)
		if *f.val == "" {
			blank = append(blank, f.name)
		}
	}
	if len(blank) > 0 {
		return models.JobUpdate{}, "Fields cannot be empty: " + strings.Join(blank, ", ")
	}
	if r.JobType != nil && !models.IsValidJobType(*r.JobType) {
		return models.JobUpdate{}, msgInvalidJobType
	}
	return models.JobUpdate{
		Title:                    r.Title,
		Description:              r.Description,
		Location:                 r.Location,
		JobType:                  r.JobType,
		Salary:                   r.Salary.Value,
		ClearSalary:              r.Salary.Set && r.Salary.Value == nil,
		Requirements:             r.Requirements,
		ApplicationDeadline:      r.ApplicationDeadline.Value,
		ClearApplicationDeadline: r.ApplicationDeadline.Set && r.ApplicationDeadline.Value == nil,
		IsActive:                 r.IsActive,
	}, ""
}

var msgInvalidJobType = "Invalid jobType, must be one of: " + strings.Join(models.JobTypes, ", ")

// JobListResponse is the body of GET /jobs.
type JobListResponse struct {
	Jobs       []models.JobView  `json:"jobs"`
	Pagination models.Pagination `json:"pagination"`
}

// ListJobs godoc
// @Summary List jobs
// @Description Filters, paginates and returns jobs newest first. Each job's companyId is resolved to the company's id, name and logo.
// @Tags jobs
// @Produce json
// @Param companyId query string false "Exact company id"
// @Param jobType query string false "Exact job type"
// @Param location query string false "Case-insensitive substring"
// @Param isActive query string false "Only the literal true filters"
// @Param page query int false "Page, default 1"
// @Param limit query int false "Page size, default 10"
// @Success 200 {object} JobListResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /jobs [get]
func (h *ApplicationHandler) ListJobs(c *fiber.Ctx) error {
	q := query.ForJobs(query.JobParams{
		CompanyID: c.Query("companyId"),
		JobType:   c.Query("jobType"),
		Location:  c.Query("location"),
		IsActive:  c.Query("isActive"),
		Page:      c.Query("page"),
		Limit:     c.Query("limit"),
	})

	// No stored job can reference a company id that is not a UUID.
	if id := c.Query("companyId"); id != "" && !validID(id) {
		return utils.RespondWithJSON(c, fiber.StatusOK, JobListResponse{
			Jobs:       []models.JobView{},
			Pagination: models.NewPagination(0, q.Page, q.Limit),
		})
	}

	ctx := c.UserContext()
	jobs, total, err := h.Store.ListJobs(ctx, q)
	if err != nil {
		return h.internalError(c, err, "List jobs failed")
	}

	ids := make([]string, 0, len(jobs))
	seen := make(map[string]bool, len(jobs))
	for _, j := range jobs {
		if !seen[j.CompanyID] {
			seen[j.CompanyID] = true
			ids = append(ids, j.CompanyID)
		}
	}
	companies, err := h.Store.GetCompanies(ctx, ids)
	if err != nil {
		return h.internalError(c, err, "Resolve job companies failed")
	}

	views := make([]models.JobView, 0, len(jobs))
	for _, j := range jobs {
		var summary *models.CompanySummary
		if co, ok := companies[j.CompanyID]; ok {
			summary = co.ListSummary()
		}
		views = append(views, j.View(summary))
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, JobListResponse{
		Jobs:       views,
		Pagination: models.NewPagination(total, q.Page, q.Limit),
	})
}

// GetJob godoc
// @Summary Get a job
// @Description Returns one job with companyId resolved to the company's profile summary.
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} models.JobView
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /jobs/{id} [get]
func (h *ApplicationHandler) GetJob(c *fiber.Ctx) error {
	id := c.Params("id")
	if !validID(id) {
		return utils.RespondWithError(c, fiber.StatusNotFound, msgJobNotFound)
	}

	ctx := c.UserContext()
	job, err := h.Store.GetJob(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return utils.RespondWithError(c, fiber.StatusNotFound, msgJobNotFound)
	}
	if err != nil {
		return h.internalError(c, err, "Get job failed")
	}

	var summary *models.CompanySummary
	co, err := h.Store.GetCompany(ctx, job.CompanyID)
	switch {
	case err == nil:
		summary = co.DetailSummary()
	case !errors.Is(err, store.ErrNotFound):
		return h.internalError(c, err, "Resolve job company failed")
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, job.View(summary))
}

// CreateJob godoc
// @Summary Post a job
// @Description Creates a job under an existing company and bumps the company's openPositions.
// @Tags jobs
// @Accept json
// @Produce json
// @Param job body CreateJobRequest true "Job to create"
// @Success 201 {object} models.Job
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /jobs [post]
func (h *ApplicationHandler) CreateJob(c *fiber.Ctx) error {
	req := new(CreateJobRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, msgInvalidBody)
	}
	return h.createJob(c, req)
}

// createJob validates req, checks the company exists, writes the job and
// then adjusts the counter.
func (h *ApplicationHandler) createJob(c *fiber.Ctx, req *CreateJobRequest) error {
	req.sanitize()
	if err := h.validate.Struct(req); err != nil {
		return utils.RespondWithValidationError(c, msgMissingFields, err)
	}
	if !models.IsValidJobType(req.JobType) {
		return utils.RespondWithError(c, fiber.StatusBadRequest, msgInvalidJobType)
	}
	if !validID(req.CompanyID) {
		return utils.RespondWithError(c, fiber.StatusNotFound, msgCompanyNotFound)
	}

	ctx := c.UserContext()
	if _, err := h.Store.GetCompany(ctx, req.CompanyID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.RespondWithError(c, fiber.StatusNotFound, msgCompanyNotFound)
		}
		return h.internalError(c, err, "Look up company failed")
	}

	job := req.job()
	if err := h.Store.CreateJob(ctx, &job); err != nil {
		return h.internalError(c, err, "Create job failed")
	}

	// The job stands even if the counter cannot be bumped; Reconcile repairs it.
	if err := h.Counter.JobCreated(ctx, job.CompanyID); err != nil {
		h.counterFailed(c, &job, err)
	}
	h.publish(ctx, events.TypeJobCreated, &job)

	h.Logger.WithFields(logrus.Fields{
		"request_id": middleware.RequestID(c),
		"job_id":     job.ID,
		"company_id": job.CompanyID,
	}).Info("Job created")
	return utils.RespondWithJSON(c, fiber.StatusCreated, job)
}

// UpdateJob godoc
// @Summary Update a job
// @Description Overwrites the supplied fields. salary and applicationDeadline accept null to clear them. The owning company cannot change and openPositions is not touched.
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param job body UpdateJobRequest true "Fields to overwrite"
// @Success 200 {object} models.Job
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /jobs/{id} [put]
func (h *ApplicationHandler) UpdateJob(c *fiber.Ctx) error {
	id := c.Params("id")
	if !validID(id) {
		return utils.RespondWithError(c, fiber.StatusNotFound, msgJobNotFound)
	}

	req := new(UpdateJobRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, msgInvalidBody)
	}
	update, msg := req.update()
	if msg != "" {
		return utils.RespondWithError(c, fiber.StatusBadRequest, msg)
	}

	job, err := h.Store.UpdateJob(c.UserContext(), id, update)
	if errors.Is(err, store.ErrNotFound) {
		return utils.RespondWithError(c, fiber.StatusNotFound, msgJobNotFound)
	}
	if err != nil {
		return h.internalError(c, err, "Update job failed")
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, job)
}

// DeleteJob godoc
// @Summary Delete a job
// @Description Deletes a job and decrements its company's openPositions, never below zero.
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /jobs/{id} [delete]
func (h *ApplicationHandler) DeleteJob(c *fiber.Ctx) error {
	id := c.Params("id")
	if !validID(id) {
		return utils.RespondWithError(c, fiber.StatusNotFound, msgJobNotFound)
	}

	ctx := c.UserContext()
	job, err := h.Store.GetJob(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return utils.RespondWithError(c, fiber.StatusNotFound, msgJobNotFound)
	}
	if err != nil {
		return h.internalError(c, err, "Look up job failed")
	}

	if err := h.Store.DeleteJob(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.RespondWithError(c, fiber.StatusNotFound, msgJobNotFound)
		}
		return h.internalError(c, err, "Delete job failed")
	}

	if err := h.Counter.JobDeleted(ctx, job.CompanyID); err != nil {
		h.counterFailed(c, job, err)
	}
	h.publish(ctx, events.TypeJobDeleted, job)

	return utils.RespondWithJSON(c, fiber.StatusOK, MessageResponse{Message: "Job deleted successfully"})
}

func (h *ApplicationHandler) counterFailed(c *fiber.Ctx, job *models.Job, err error) {
	h.Logger.WithFields(logrus.Fields{
		"request_id": middleware.RequestID(c),
		"job_id":     job.ID,
		"company_id": job.CompanyID,
	}).WithError(err).Warn("openPositions adjustment failed, counter left stale")
}
