package model

import (
	"time"

	"github.com/google/uuid"

	skillmodel "devfolio-backend/internal/domains/skill/model"
	usermodel "devfolio-backend/internal/domains/user/model"
)

type ProjectStatus string

const (
	StatusDraft     ProjectStatus = "draft"
	StatusPublished ProjectStatus = "published"
)

func (s ProjectStatus) IsValid() bool {
	return s == StatusDraft || s == StatusPublished
}

func (s ProjectStatus) String() string {
	return string(s)
}

// Project is the case-study aggregate. The slug is derived from the title
// once at creation and never recomputed; (user_id, slug) is unique.
type Project struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`

	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`

	// Case-study narrative
	Goals              *string `json:"goals"`
	DevelopmentProcess *string `json:"development_process"`
	Challenges         *string `json:"challenges"`
	Outcomes           *string `json:"outcomes"`

	ProjectURL   *string `json:"project_url"`
	RepoURL      *string `json:"repo_url"`
	ThumbnailURL *string `json:"thumbnail_url"`

	Status      ProjectStatus `json:"status"`
	PublishedAt *time.Time    `json:"published_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TechStack []*skillmodel.Skill        `json:"tech_stack,omitempty"`
	Images    []*ProjectImage            `json:"images,omitempty"`
	Owner     *usermodel.ProfileResponse `json:"owner,omitempty"`
}

// ProjectImage is owned by exactly one project and is cascade-deleted with
// it. SortOrder drives display order; it is not required to be unique or
// contiguous.
type ProjectImage struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	ImageURL  string    `json:"image_url"`
	Caption   *string   `json:"caption"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}
