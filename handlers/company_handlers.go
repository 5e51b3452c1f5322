package handlers

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"jobboard/api/internal/query"
	"jobboard/api/internal/store"
	"jobboard/api/middleware"
	"jobboard/api/models"
	"jobboard/api/utils"
)

// CreateCompanyRequest is the body of POST /companies.
type CreateCompanyRequest struct {
	Name          string   `json:"name" validate:"required"`
	Industry      string   `json:"industry" validate:"required"`
	Location      string   `json:"location" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	Logo          *string  `json:"logo,omitempty"`
	OpenPositions *int     `json:"openPositions,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	Featured      *bool    `json:"featured,omitempty"`
	JobTypes      []string `json:"jobTypes,omitempty"`
}

func (r *CreateCompanyRequest) sanitize() {
	r.Name = utils.SanitizeInput(r.Name)
	r.Industry = utils.SanitizeInput(r.Industry)
	r.Location = utils.SanitizeInput(r.Location)
	r.Description = utils.SanitizeInput(r.Description)
}

func (r CreateCompanyRequest) company() models.Company {
	c := models.Company{
		Name:        r.Name,
		Logo:        models.DefaultCompanyLogo,
		Industry:    r.Industry,
		Location:    r.Location,
		Description: r.Description,
		JobTypes:    r.JobTypes,
	}
	if r.Logo != nil && utils.SanitizeInput(*r.Logo) != "" {
		c.Logo = utils.SanitizeInput(*r.Logo)
	}
	if r.OpenPositions != nil {
		c.OpenPositions = *r.OpenPositions
	}
	if r.Rating != nil {
		c.Rating = models.ClampRating(*r.Rating)
	}
	if r.Featured != nil {
		c.Featured = *r.Featured
	}
	return c
}

// CompanyListResponse is the body of GET /companies.
type CompanyListResponse struct {
	Companies  []models.Company  `json:"companies"`
	Pagination models.Pagination `json:"pagination"`
}

// CompanyResponse pairs a company with a confirmation message.
type CompanyResponse struct {
	Message string         `json:"message"`
	Company models.Company `json:"company"`
}

// CompanyJobsResponse is the body of GET /companies/:id/jobs.
type CompanyJobsResponse struct {
	Jobs       []models.Job      `json:"jobs"`
	Pagination models.Pagination `json:"pagination"`
}

// ListCompanies godoc
// @Summary List companies
// @Description Filters and paginates companies, sorted on openPositions.
// @Tags companies
// @Produce json
// @Param search query string false "Case-insensitive substring of name, description or industry"
// @Param industry query []string false "Repeatable, exact" collectionFormat(multi)
// @Param location query []string false "Repeatable, exact" collectionFormat(multi)
// @Param jobType query []string false "Repeatable, company offers any of them" collectionFormat(multi)
// @Param minRating query number false "Minimum rating"
// @Param featured query string false "Only the literal true filters"
// @Param sortOrder query string false "asc or desc (default)"
// @Param page query int false "Page, default 1"
// @Param limit query int false "Page size, default 10"
// @Success 200 {object} CompanyListResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /companies [get]
func (h *ApplicationHandler) ListCompanies(c *fiber.Ctx) error {
	q := query.ForCompanies(query.CompanyParams{
		Search:     c.Query("search"),
		Industries: utils.QueryValues(c, "industry"),
		Locations:  utils.QueryValues(c, "location"),
		JobTypes:   utils.QueryValues(c, "jobType"),
		MinRating:  c.Query("minRating"),
		Featured:   c.Query("featured"),
		SortOrder:  c.Query("sortOrder"),
		Page:       c.Query("page"),
		Limit:      c.Query("limit"),
	})

	companies, total, err := h.Store.ListCompanies(c.UserContext(), q)
	if err != nil {
		return h.internalError(c, err, "List companies failed")
	}
	if companies == nil {
		companies = []models.Company{}
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, CompanyListResponse{
		Companies:  companies,
		Pagination: models.NewPagination(total, q.Page, q.Limit),
	})
}

// GetCompany godoc
// @Summary Get a company
// @Tags companies
// @Produce json
// @Param id path string true "Company ID"
// @Success 200 {object} models.Company
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /companies/{id} [get]
func (h *ApplicationHandler) GetCompany(c *fiber.Ctx) error {
	co, status, err := h.lookupCompany(c, c.Params("id"))
	if co == nil {
		return h.companyLookupFailed(c, status, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, co)
}

// CreateCompany godoc
// @Summary Register a company
// @Description Creates a company. rating is clamped into [0, 5] and logo falls back to a placeholder.
// @Tags companies
// @Accept json
// @Produce json
// @Param company body CreateCompanyRequest true "Company to create"
// @Success 201 {object} CompanyResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /companies [post]
func (h *ApplicationHandler) CreateCompany(c *fiber.Ctx) error {
	req := new(CreateCompanyRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, msgInvalidBody)
	}
	req.sanitize()
	if req.OpenPositions != nil && *req.OpenPositions < 0 {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "openPositions must not be negative")
	}
	if err := h.validate.Struct(req); err != nil {
		return utils.RespondWithValidationError(c, msgMissingFields, err)
	}

	company := req.company()
	if err := h.Store.CreateCompany(c.UserContext(), &company); err != nil {
		return h.internalError(c, err, "Create company failed")
	}

	h.Logger.WithFields(logrus.Fields{
		"request_id": middleware.RequestID(c),
		"company_id": company.ID,
	}).Info("Company created")
	return utils.RespondWithJSON(c, fiber.StatusCreated, CompanyResponse{
		Message: "Company created successfully",
		Company: company,
	})
}

// ListCompanyJobs godoc
// @Summary List a company's jobs
// @Tags companies
// @Produce json
// @Param id path string true "Company ID"
// @Param jobType query string false "Exact job type"
// @Param isActive query string false "Only the literal true filters"
// @Param page query int false "Page, default 1"
// @Param limit query int false "Page size, default 10"
// @Success 200 {object} CompanyJobsResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /companies/{id}/jobs [get]
func (h *ApplicationHandler) ListCompanyJobs(c *fiber.Ctx) error {
	co, status, err := h.lookupCompany(c, c.Params("id"))
	if co == nil {
		return h.companyLookupFailed(c, status, err)
	}

	q := query.ForJobs(query.JobParams{
		CompanyID: co.ID,
		JobType:   c.Query("jobType"),
		IsActive:  c.Query("isActive"),
		Page:      c.Query("page"),
		Limit:     c.Query("limit"),
	})
	jobs, total, err := h.Store.ListJobs(c.UserContext(), q)
	if err != nil {
		return h.internalError(c, err, "List company jobs failed")
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, CompanyJobsResponse{
		Jobs:       jobs,
		Pagination: models.NewPagination(total, q.Page, q.Limit),
	})
}

// CreateCompanyJob godoc
// @Summary Post a job under a company
// @Description Same as POST /jobs with companyId taken from the path.
// @Tags companies
// @Accept json
// @Produce json
// @Param id path string true "Company ID"
// @Param job body CreateJobRequest true "Job to create; companyId is ignored"
// @Success 201 {object} models.Job
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /companies/{id}/jobs [post]
func (h *ApplicationHandler) CreateCompanyJob(c *fiber.Ctx) error {
	req := new(CreateJobRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, msgInvalidBody)
	}
	req.CompanyID = c.Params("id")
	return h.createJob(c, req)
}

// ReconcileCompany godoc
// @Summary Recompute openPositions
// @Description Counts the jobs referencing the company and stores the result as openPositions.
// @Tags companies
// @Produce json
// @Param id path string true "Company ID"
// @Success 200 {object} CompanyResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /companies/{id}/reconcile [post]
func (h *ApplicationHandler) ReconcileCompany(c *fiber.Ctx) error {
	id := c.Params("id")
	if !validID(id) {
		return utils.RespondWithError(c, fiber.StatusNotFound, msgCompanyNotFound)
	}

	ctx := c.UserContext()
	if _, err := h.Counter.Reconcile(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.RespondWithError(c, fiber.StatusNotFound, msgCompanyNotFound)
		}
		return h.internalError(c, err, "Reconcile failed")
	}

	co, status, err := h.lookupCompany(c, id)
	if co == nil {
		return h.companyLookupFailed(c, status, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, CompanyResponse{
		Message: "openPositions reconciled",
		Company: *co,
	})
}

// LogoUploadRequest is the body of POST /companies/logo-upload.
type LogoUploadRequest struct {
	FileName    string `json:"fileName" validate:"required"`
	ContentType string `json:"contentType" validate:"required"`
}

// LogoUploadResponse tells the client where to PUT the logo file.
type LogoUploadResponse struct {
	UploadURL   string            `json:"uploadUrl"`
	Method      string            `json:"method"`
	StoragePath string            `json:"storagePath"`
	Headers     map[string]string `json:"headers"`
}

// CreateLogoUpload godoc
// @Summary Get a signed logo upload URL
// @Description Issues a Supabase Storage signed URL. Store the resulting public URL as the company logo.
// @Tags companies
// @Accept json
// @Produce json
// @Param upload body LogoUploadRequest true "File to upload"
// @Success 201 {object} LogoUploadResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /companies/logo-upload [post]
func (h *ApplicationHandler) CreateLogoUpload(c *fiber.Ctx) error {
	if h.Storage == nil {
		return utils.RespondWithError(c, fiber.StatusServiceUnavailable, "Logo storage is not configured")
	}

	req := new(LogoUploadRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, msgInvalidBody)
	}
	req.FileName = utils.SanitizeInput(req.FileName)
	req.ContentType = utils.SanitizeInput(req.ContentType)
	if err := h.validate.Struct(req); err != nil {
		return utils.RespondWithValidationError(c, msgMissingFields, err)
	}
	if !strings.HasPrefix(req.ContentType, "image/") {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "contentType must be an image type")
	}

	storagePath := "logos/" + uuid.NewString() + strings.ToLower(filepath.Ext(req.FileName))
	uploadURL, err := h.Storage.SignedUploadURL(storagePath)
	if err != nil {
		return h.internalError(c, err, "Signed upload URL failed")
	}

	return utils.RespondWithJSON(c, fiber.StatusCreated, LogoUploadResponse{
		UploadURL:   uploadURL,
		Method:      fiber.MethodPut,
		StoragePath: storagePath,
		Headers:     map[string]string{fiber.HeaderContentType: req.ContentType},
	})
}

// lookupCompany returns the company or the status to answer with.
func (h *ApplicationHandler) lookupCompany(c *fiber.Ctx, id string) (*models.Company, int, error) {
	if !validID(id) {
		return nil, fiber.StatusNotFound, nil
	}
	co, err := h.Store.GetCompany(c.UserContext(), id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fiber.StatusNotFound, nil
	}
	if err != nil {
		return nil, fiber.StatusInternalServerError, err
	}
	return co, fiber.StatusOK, nil
}

func (h *ApplicationHandler) companyLookupFailed(c *fiber.Ctx, status int, err error) error {
	if status == fiber.StatusNotFound {
		return utils.RespondWithError(c, fiber.StatusNotFound, msgCompanyNotFound)
	}
	return h.internalError(c, err, "Get company failed")
}
