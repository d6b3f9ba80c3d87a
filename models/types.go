package models

import "time"

// Appointment status constants
const (
	StatusPending   = "pending"
	StatusQuoted    = "quoted"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Account roles
const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// DefaultDurationHours is used when a booking has no style or the style has no duration
const DefaultDurationHours = 3

// Request types

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SetupAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type UpdateOwnAccountRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type UpdateAdminRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type BookAppointmentRequest struct {
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Phone           string  `json:"phone"`
	StyleID         *string `json:"style_id"`
	Date            string  `json:"date"` // YYYY-MM-DD
	Time            string  `json:"time"` // HH:MM
	SpecialRequests string  `json:"special_requests"`
}

// Either field may be omitted
type UpdateAppointmentRequest struct {
	Status     *string  `json:"status"`
	PriceQuote *float64 `json:"price_quote"`
}

type ServiceRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	BasePrice     *float64 `json:"base_price"`
	DurationHours *int     `json:"duration_hours"`
}

type PortfolioImageRequest struct {
	Title          string  `json:"title"`
	ImageURL       string  `json:"image_url"`
	StyleID        *string `json:"style_id"`
	ClientName     *string `json:"client_name"`
	CompletionDate *string `json:"completion_date"`
	Description    *string `json:"description"`
	IsFeatured     bool    `json:"is_featured"`
	DisplayOrder   int     `json:"display_order"`
}

// Response types

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user,omitempty"`
}

type PortfolioResponse struct {
	Images         []PortfolioImage `json:"images"`
	Total          int              `json:"total"`
	AvailableYears []int            `json:"available_years"`
	Styles         []string         `json:"styles"`
}

type FixImageURLsResponse struct {
	Fixed int `json:"fixed"`
}

type AdminSummary struct {
	AppointmentsByStatus map[string]int `json:"appointments_by_status"`
	Services             int            `json:"services"`
	PortfolioImages      int            `json:"portfolio_images"`
	Clients              int            `json:"clients"`
}

// Domain types

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	IsAdmin      bool      `json:"is_admin"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Profile struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
}

type Service struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	BasePrice     *float64  `json:"base_price"`
	DurationHours *int      `json:"duration_hours"`
	CreatedAt     time.Time `json:"created_at"`
}

type Appointment struct {
	ID                string    `json:"id"`
	ClientID          string    `json:"client_id"`
	StyleID           *string   `json:"style_id"`
	StyleName         string    `json:"style_name"`
	AppointmentDate   string    `json:"appointment_date"`
	AppointmentTime   string    `json:"appointment_time"`
	SpecialRequests   *string   `json:"special_requests,omitempty"`
	EstimatedDuration int       `json:"estimated_duration"`
	PriceQuote        *float64  `json:"price_quote"`
	Status            string    `json:"status"`
	NextAction        string    `json:"next_action,omitempty"`
	Client            *Profile  `json:"client,omitempty"`
	ClientEmail       string    `json:"client_email,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type PortfolioImage struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	ImageURL       string    `json:"image_url"`
	StyleID        *string   `json:"style_id"`
	StyleName      string    `json:"style_name"`
	ClientName     *string   `json:"client_name,omitempty"`
	CompletionDate *string   `json:"completion_date,omitempty"`
	Description    *string   `json:"description,omitempty"`
	IsFeatured     bool      `json:"is_featured"`
	DisplayOrder   int       `json:"display_order"`
	CreatedAt      time.Time `json:"created_at"`
}

type ClientStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Upcoming  int `json:"upcoming"`
}

type ClientSummary struct {
	User         User          `json:"user"`
	Profile      Profile       `json:"profile"`
	Appointments []Appointment `json:"appointments"`
	Stats        ClientStats   `json:"stats"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
