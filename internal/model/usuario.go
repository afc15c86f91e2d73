package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario stores system users with role-based access.
// Rol: "cobrador" | "admin" | "superadmin"
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Rol          string `gorm:"type:varchar(20);not null"`
	// AdminID is the operational admin identity movements are ledgered under.
	// For a cobrador it points at the admin they collect for; for an admin it
	// is their own id.
	AdminID  string  `gorm:"not null;index"`
	TenantID *string `gorm:"type:varchar(60);index"`
	// RutaID restricts a cobrador to one collection route; nil = unrestricted
	RutaID    *string `gorm:"type:varchar(60)"`
	Activo    bool    `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
