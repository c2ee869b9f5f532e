package entities

import (
	"time"
)

// UserRole represents the side of the marketplace an account belongs to
type UserRole string

const (
	UserRoleRequester UserRole = "requester"
	UserRoleFixer     UserRole = "fixer"
)

// User represents an account, either a requester or a fixer
type User struct {
	ID        string        `json:"id" db:"id"`
	Name      string        `json:"name" db:"name"`
	Email     string        `json:"email" db:"email"`
	Phone     string        `json:"telefono" db:"telefono"`
	WhatsApp  string        `json:"whatsapp,omitempty" db:"whatsapp"`
	Role      UserRole      `json:"role" db:"role"`
	Fixer     *FixerProfile `json:"fixerProfile,omitempty" db:"-"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// ContactNumber returns the messaging-capable number for the user.
// The WhatsApp field wins over the plain phone field; first non-empty.
func (u *User) ContactNumber() string {
	if u.WhatsApp != "" {
		return u.WhatsApp
	}
	return u.Phone
}

// Reachable reports whether the user can be targeted by notifications.
// Both an email and a messaging number are required.
func (u *User) Reachable() bool {
	return u.Email != "" && u.ContactNumber() != ""
}

// Experience describes one item of a fixer's work history
type Experience struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Years       int    `json:"years"`
	Description string `json:"description,omitempty"`
}

// PaymentMethod is a payment option a fixer accepts
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentQR   PaymentMethod = "qr"
	PaymentCard PaymentMethod = "card"
)

// FixerProfile carries the fixer-only profile data
type FixerProfile struct {
	CI           string          `json:"ci,omitempty"`
	Services     []string        `json:"services"`
	Payments     []PaymentMethod `json:"payments"`
	Experiences  []Experience    `json:"experiences,omitempty"`
	Availability *Availability   `json:"availability,omitempty"`
	HasVehicle   bool            `json:"hasVehicle"`
	VehicleType  string          `json:"vehicleType,omitempty"`
	PhotoURL     string          `json:"photoUrl,omitempty"`
}

// Availability is a fixed-shape record with one ordered list of open
// hour-slots per weekday. It is stored exactly as given, wholesale-replaced
// on every write; no overlap or range validation is performed.
type Availability struct {
	Monday    []int `json:"lunes"`
	Tuesday   []int `json:"martes"`
	Wednesday []int `json:"miercoles"`
	Thursday  []int `json:"jueves"`
	Friday    []int `json:"viernes"`
	Saturday  []int `json:"sabado"`
	Sunday    []int `json:"domingo"`
}
