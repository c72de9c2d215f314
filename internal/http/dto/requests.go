package dto

import (
	"net/url"

	"github.com/cesargomez89/mekkompis/internal/domain"
)

type MotorcycleRequest struct {
	Brand              string      `json:"brand"`
	Model              string      `json:"model"`
	Year               OptionalInt `json:"year"`
	RegistrationNumber string      `json:"registration_number"`
	CurrentMileage     OptionalInt `json:"current_mileage"`
}

// MotorcycleFromForm reads the multipart variant of the request.
func MotorcycleFromForm(form url.Values) (*MotorcycleRequest, error) {
	year, err := ParseInt(form.Get("year"))
	if err != nil {
		return nil, err
	}
	mileage, err := ParseInt(form.Get("current_mileage"))
	if err != nil {
		return nil, err
	}
	return &MotorcycleRequest{
		Brand:              form.Get("brand"),
		Model:              form.Get("model"),
		Year:               OptionalInt{year},
		RegistrationNumber: form.Get("registration_number"),
		CurrentMileage:     OptionalInt{mileage},
	}, nil
}

func (r *MotorcycleRequest) ToDomain() *domain.Motorcycle {
	return &domain.Motorcycle{
		Brand:              r.Brand,
		Model:              r.Model,
		Year:               r.Year.Value,
		RegistrationNumber: optionalString(r.RegistrationNumber),
		CurrentMileage:     r.CurrentMileage.Value,
	}
}

type JobRequest struct {
	MotorcycleID OptionalInt   `json:"motorcycle_id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Date         string        `json:"date"`
	Mileage      OptionalInt   `json:"mileage"`
	Cost         OptionalFloat `json:"cost"`
}

func (r *JobRequest) ToDomain() *domain.Job {
	return &domain.Job{
		MotorcycleID: r.MotorcycleID.Value,
		Title:        r.Title,
		Description:  optionalString(r.Description),
		Date:         r.Date,
		Mileage:      r.Mileage.Value,
		Cost:         r.Cost.Value,
	}
}

type NoteRequest struct {
	Content string `json:"content"`
}

// ShoppingItemRequest accepts both itemName and item_name.
type ShoppingItemRequest struct {
	ItemName      *string     `json:"itemName"`
	ItemNameSnake *string     `json:"item_name"`
	Quantity      OptionalInt `json:"quantity"`
}

func (r *ShoppingItemRequest) Name() *string {
	if r.ItemName != nil && *r.ItemName != "" {
		return r.ItemName
	}
	if r.ItemNameSnake != nil {
		return r.ItemNameSnake
	}
	return r.ItemName
}

type FeatureRequest struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Status      domain.FeatureStatus `json:"status"`
}

func (r *FeatureRequest) ToDomain() *domain.Feature {
	return &domain.Feature{Title: r.Title, Description: r.Description, Status: r.Status}
}

type FeatureStatusRequest struct {
	Status domain.FeatureStatus `json:"status"`
}

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn string `json:"expiresIn"`
	Message   string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
