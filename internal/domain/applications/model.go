package applications

import "time"

// Status define el ciclo de vida de una solicitud.
// pending es el único estado inicial; approved y rejected son terminales.
// @Enum pending, approved, rejected
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Application vincula un usuario con la mascota que quiere adoptar.
// Nunca se borra; el par (UserID, PetID) es único a nivel storage.
type Application struct {
	ID string

	UserID string
	PetID  string

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
