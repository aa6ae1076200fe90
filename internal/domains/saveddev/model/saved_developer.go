package model

import (
	"time"

	"github.com/google/uuid"

	usermodel "devfolio-backend/internal/domains/user/model"
)

// SavedDeveloper is a recruiter's bookmark of a developer profile.
// (recruiter_id, developer_id) is unique.
type SavedDeveloper struct {
	ID          uuid.UUID `json:"id"`
	RecruiterID uuid.UUID `json:"recruiter_id"`
	DeveloperID uuid.UUID `json:"developer_id"`
	CreatedAt   time.Time `json:"created_at"`

	Developer *usermodel.ProfileResponse `json:"developer,omitempty"`
}

// SavedStatusResponse is returned by the status check endpoint.
type SavedStatusResponse struct {
	IsSaved bool `json:"is_saved"`
}
