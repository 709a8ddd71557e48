package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a fuel distribution customer (gas stations, fleets, individuals).
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"index;not null"`
	CreatedAt time.Time
}

func (Cliente) TableName() string { return "clientes" }
