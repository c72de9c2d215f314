package domain

import (
	"time"
)

// Motorcycle is a vehicle in the logbook.
type Motorcycle struct {
	ID                 int64     `json:"id" db:"id"`
	Brand              string    `json:"brand" db:"brand"`
	Model              string    `json:"model" db:"model"`
	Year               *int64    `json:"year" db:"year"`
	RegistrationNumber *string   `json:"registration_number" db:"registration_number"`
	CurrentMileage     *int64    `json:"current_mileage" db:"current_mileage"`
	ImageFilename      *string   `json:"image_filename" db:"image_filename"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// MotorcycleStats aggregates the jobs attached to a motorcycle.
type MotorcycleStats struct {
	TotalCost float64 `json:"total_cost" db:"total_cost"`
	JobCount  int64   `json:"job_count" db:"job_count"`
}

// MotorcycleSummary is a motorcycle row as listed, with its stats inlined.
type MotorcycleSummary struct {
	Motorcycle
	MotorcycleStats
}

// MotorcycleDetail is the single-motorcycle view including its jobs.
type MotorcycleDetail struct {
	Motorcycle
	MotorcycleStats
	Jobs []Job `json:"jobs"`
}

// Job is one maintenance task. MotorcycleID is nil when the motorcycle was deleted.
type Job struct {
	ID           int64     `json:"id" db:"id"`
	MotorcycleID *int64    `json:"motorcycle_id" db:"motorcycle_id"`
	Title        string    `json:"title" db:"title"`
	Description  *string   `json:"description" db:"description"`
	Date         string    `json:"date" db:"date"`
	Mileage      *int64    `json:"mileage" db:"mileage"`
	Cost         *float64  `json:"cost" db:"cost"`
	Completed    Flag      `json:"completed" db:"completed"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// JobDetail is the single-job view including its children.
type JobDetail struct {
	Job
	Images        []Image        `json:"images"`
	Notes         []Note         `json:"notes"`
	ShoppingItems []ShoppingItem `json:"shoppingItems"`
}

type Image struct {
	ID           int64     `json:"id" db:"id"`
	JobID        int64     `json:"job_id" db:"job_id"`
	Filename     string    `json:"filename" db:"filename"`
	OriginalName string    `json:"original_name" db:"original_name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type Note struct {
	ID        int64     `json:"id" db:"id"`
	JobID     int64     `json:"job_id" db:"job_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type ShoppingItem struct {
	ID        int64     `json:"id" db:"id"`
	JobID     int64     `json:"job_id" db:"job_id"`
	ItemName  string    `json:"item_name" db:"item_name"`
	Quantity  int64     `json:"quantity" db:"quantity"`
	Purchased Flag      `json:"purchased" db:"purchased"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// FeatureStatus is the lifecycle state of a backlog entry.
type FeatureStatus string

const (
	FeatureStatusBacklog    FeatureStatus = "backlog"
	FeatureStatusPlanned    FeatureStatus = "planned"
	FeatureStatusInProgress FeatureStatus = "in_progress"
	FeatureStatusDone       FeatureStatus = "done"
)

func (s FeatureStatus) Valid() bool {
	switch s {
	case FeatureStatusBacklog, FeatureStatusPlanned, FeatureStatusInProgress, FeatureStatusDone:
		return true
	}
	return false
}

// Feature is an entry in the application's own feature backlog.
type Feature struct {
	ID          int64         `json:"id" db:"id"`
	Title       string        `json:"title" db:"title"`
	Description string        `json:"description" db:"description"`
	Status      FeatureStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}
