package models

import (
	"time"
)

// Allowed values for Job.JobType.
const (
	JobTypeFullTime   = "Full-time"
	JobTypePartTime   = "Part-time"
	JobTypeContract   = "Contract"
	JobTypeInternship = "Internship"
	JobTypeRemote     = "Remote"
)

// JobTypes lists every accepted job type in display order.
var JobTypes = []string{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeRemote}

// IsValidJobType reports whether t is one of JobTypes.
func IsValidJobType(t string) bool {
	for _, jt := range JobTypes {
		if jt == t {
			return true
		}
	}
	return false
}

// Job represents a position posted under a company.
type Job struct {
	ID                  string     `json:"id"`
	CompanyID           string     `json:"companyId"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Location            string     `json:"location"`
	JobType             string     `json:"jobType"`
	Salary              *string    `json:"salary,omitempty"`
	Requirements        []string   `json:"requirements"`
	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`
	IsActive            bool       `json:"isActive"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// JobView is a job whose companyId has been resolved to a company summary.
// A nil Company means the owning company no longer exists.
type JobView struct {
	ID                  string          `json:"id"`
	Company             *CompanySummary `json:"companyId"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	Location            string          `json:"location"`
	JobType             string          `json:"jobType"`
	Salary              *string         `json:"salary,omitempty"`
	Requirements        []string        `json:"requirements"`
	ApplicationDeadline *time.Time      `json:"applicationDeadline,omitempty"`
	IsActive            bool            `json:"isActive"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// View embeds the given company summary into a copy of the job.
func (j Job) View(company *CompanySummary) JobView {
	return JobView{
		ID:                  j.ID,
		Company:             company,
		Title:               j.Title,
		Description:         j.Description,
		Location:            j.Location,
		JobType:             j.JobType,
		Salary:              j.Salary,
		Requirements:        j.Requirements,
		ApplicationDeadline: j.ApplicationDeadline,
		IsActive:            j.IsActive,
		CreatedAt:           j.CreatedAt,
		UpdatedAt:           j.UpdatedAt,
	}
}

// JobUpdate carries the fields a PUT request may overwrite. Nil pointers are
// left untouched. The optional fields are removed when their Clear flag is
// set. The owning company can never be changed.
type JobUpdate struct {
	Title                    *string
	Description              *string
	Location                 *string
	JobType                  *string
	Salary                   *string
	ClearSalary              bool
	Requirements             *[]string
	ApplicationDeadline      *time.Time
	ClearApplicationDeadline bool
	IsActive                 *bool
}

// Apply writes the non-nil fields of u onto j.
func (u JobUpdate) Apply(j *Job) {
	if u.Title != nil {
		j.Title = *u.Title
	}
	if u.Description != nil {
		j.Description = *u.Description
	}
	if u.Location != nil {
		j.Location = *u.Location
	}
	if u.JobType != nil {
		j.JobType = *u.JobType
	}
	if u.Salary != nil {
		s := *u.Salary
		j.Salary = &s
	} else if u.ClearSalary {
		j.Salary = nil
	}
	if u.Requirements != nil {
		j.Requirements = append([]string{}, (*u.Requirements)...)
	}
	if u.ApplicationDeadline != nil {
		d := *u.ApplicationDeadline
		j.ApplicationDeadline = &d
	} else if u.ClearApplicationDeadline {
		j.ApplicationDeadline = nil
	}
	if u.IsActive != nil {
		j.IsActive = *u.IsActive
	}
}
