package pets

import "time"

// Status define la disponibilidad de adopción.
// @Enum available, pending, adopted
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusAdopted   Status = "adopted"
)

// ValidStatus reporta si s es uno de los tres estados soportados.
func ValidStatus(s Status) bool {
	switch s {
	case StatusAvailable, StatusPending, StatusAdopted:
		return true
	default:
		return false
	}
}

// Pet representa una mascota publicada para adopción.
type Pet struct {
	ID string

	Name        string
	Species     string
	Breed       string
	Age         int
	Description string
	PhotoURL    string

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
