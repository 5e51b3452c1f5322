package store

import (
	"time"

	"jobboard/api/internal/query"
	"jobboard/api/models"
)

// Table names shared by the SQL and PostgREST drivers.
const (
	companiesTable = "companies"
	jobsTable      = "jobs"
)

// companyRow is the storage shape of a company (snake_case columns).
type companyRow struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Logo          string    `json:"logo" db:"logo"`
	Industry      string    `json:"industry" db:"industry"`
	Location      string    `json:"location" db:"location"`
	OpenPositions int       `json:"open_positions" db:"open_positions"`
	Rating        float64   `json:"rating" db:"rating"`
	Featured      bool      `json:"featured" db:"featured"`
	Description   string    `json:"description" db:"description"`
	JobTypes      []string  `json:"job_types" db:"job_types"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

func (r companyRow) model() models.Company {
	jobTypes := r.JobTypes
	if jobTypes == nil {
		jobTypes = []string{}
	}
	return models.Company{
		ID:            r.ID,
		Name:          r.Name,
		Logo:          r.Logo,
		Industry:      r.Industry,
		Location:      r.Location,
		OpenPositions: r.OpenPositions,
		Rating:        r.Rating,
		Featured:      r.Featured,
		Description:   r.Description,
		JobTypes:      jobTypes,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// companyInsert lists the columns written on insert. id and timestamps are
// generated by the database.
func companyInsert(c *models.Company) map[string]interface{} {
	jobTypes := c.JobTypes
	if jobTypes == nil {
		jobTypes = []string{}
	}
	return map[string]interface{}{
		"name":           c.Name,
		"logo":           c.Logo,
		"industry":       c.Industry,
		"location":       c.Location,
		"open_positions": c.OpenPositions,
		"rating":         c.Rating,
		"featured":       c.Featured,
		"description":    c.Description,
		"job_types":      jobTypes,
	}
}

// jobRow is the storage shape of a job.
type jobRow struct {
	ID                  string     `json:"id" db:"id"`
	CompanyID           string     `json:"company_id" db:"company_id"`
	Title               string     `json:"title" db:"title"`
	Description         string     `json:"description" db:"description"`
	Location            string     `json:"location" db:"location"`
	JobType             string     `json:"job_type" db:"job_type"`
	Salary              *string    `json:"salary" db:"salary"`
	Requirements        []string   `json:"requirements" db:"requirements"`
	ApplicationDeadline *time.Time `json:"application_deadline" db:"application_deadline"`
	IsActive            bool       `json:"is_active" db:"is_active"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}

func (r jobRow) model() models.Job {
	reqs := r.Requirements
	if reqs == nil {
		reqs = []string{}
	}
	return models.Job{
		ID:                  r.ID,
		CompanyID:           r.CompanyID,
		Title:               r.Title,
		Description:         r.Description,
		Location:            r.Location,
		JobType:             r.JobType,
		Salary:              r.Salary,
		Requirements:        reqs,
		ApplicationDeadline: r.ApplicationDeadline,
		IsActive:            r.IsActive,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

func jobInsert(j *models.Job) map[string]interface{} {
	reqs := j.Requirements
	if reqs == nil {
		reqs = []string{}
	}
	data := map[string]interface{}{
		"company_id":   j.CompanyID,
		"title":        j.Title,
		"description":  j.Description,
		"location":     j.Location,
		"job_type":     j.JobType,
		"requirements": reqs,
		"is_active":    j.IsActive,
	}
	if j.Salary != nil {
		data["salary"] = *j.Salary
	}
	if j.ApplicationDeadline != nil {
		data["application_deadline"] = *j.ApplicationDeadline
	}
	return data
}

// jobUpdateColumns lists the columns a JobUpdate overwrites. updated_at is
// not included; each driver stamps it itself.
func jobUpdateColumns(u models.JobUpdate) map[string]interface{} {
	data := make(map[string]interface{})
	if u.Title != nil {
		data["title"] = *u.Title
	}
	if u.Description != nil {
		data["description"] = *u.Description
	}
	if u.Location != nil {
		data["location"] = *u.Location
	}
	if u.JobType != nil {
		data["job_type"] = *u.JobType
	}
	if u.Salary != nil {
		data["salary"] = *u.Salary
	} else if u.ClearSalary {
		data["salary"] = nil
	}
	if u.Requirements != nil {
		data["requirements"] = *u.Requirements
	}
	if u.ApplicationDeadline != nil {
		data["application_deadline"] = *u.ApplicationDeadline
	} else if u.ClearApplicationDeadline {
		data["application_deadline"] = nil
	}
	if u.IsActive != nil {
		data["is_active"] = *u.IsActive
	}
	return data
}

// Filterable columns per table. Anything else in a query is rejected.
var (
	companyColumns = map[string]bool{
		query.FieldName:          true,
		query.FieldDescription:   true,
		query.FieldIndustry:      true,
		query.FieldLocation:      true,
		query.FieldRating:        true,
		query.FieldFeatured:      true,
		query.FieldJobTypes:      true,
		query.FieldOpenPositions: true,
		query.FieldCreatedAt:     true,
	}
	jobColumns = map[string]bool{
		query.FieldCompanyID: true,
		query.FieldJobType:   true,
		query.FieldLocation:  true,
		query.FieldIsActive:  true,
		query.FieldCreatedAt: true,
	}
)
