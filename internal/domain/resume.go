package domain

import (
	"time"

	"github.com/google/uuid"
)

// Resume is an uploaded LaTeX source file.
type Resume struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Filename  string    `json:"filename"`
	Content   string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
