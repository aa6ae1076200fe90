package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateProjectRequest creates a new draft project.
type CreateProjectRequest struct {
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	Goals              *string `json:"goals"`
	DevelopmentProcess *string `json:"development_process"`
	Challenges         *string `json:"challenges"`
	Outcomes           *string `json:"outcomes"`
	ProjectURL         *string `json:"project_url"`
	RepoURL            *string `json:"repo_url"`
	ThumbnailURL       *string `json:"thumbnail_url"`
	TechStackIDs       []int   `json:"tech_stack_ids"`
}

func (r CreateProjectRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 200).Error("title must be at most 200 characters"),
		),
		validation.Field(&r.Description,
			validation.Required.Error("description is required"),
		),
		validation.Field(&r.ProjectURL, validation.Length(0, 500)),
		validation.Field(&r.RepoURL, validation.Length(0, 500)),
		validation.Field(&r.ThumbnailURL, validation.Length(0, 500)),
	)
}

// UpdateProjectRequest is a partial update; nil fields are left unchanged.
// A non-nil TechStackIDs fully replaces the association, even when empty.
// The slug is never regenerated, regardless of title changes.
type UpdateProjectRequest struct {
	Title              *string `json:"title"`
	Description        *string `json:"description"`
	Goals              *string `json:"goals"`
	DevelopmentProcess *string `json:"development_process"`
	Challenges         *string `json:"challenges"`
	Outcomes           *string `json:"outcomes"`
	ProjectURL         *string `json:"project_url"`
	RepoURL            *string `json:"repo_url"`
	ThumbnailURL       *string `json:"thumbnail_url"`
	TechStackIDs       *[]int  `json:"tech_stack_ids"`
}

func (r UpdateProjectRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 200).Error("title must be at most 200 characters")),
		validation.Field(&r.Description, validation.NilOrNotEmpty),
		validation.Field(&r.ProjectURL, validation.Length(0, 500)),
		validation.Field(&r.RepoURL, validation.Length(0, 500)),
		validation.Field(&r.ThumbnailURL, validation.Length(0, 500)),
	)
}

// AddImageRequest carries the attachment metadata alongside the uploaded
// file. SortOrder defaults to 0; existing images are never re-sequenced.
type AddImageRequest struct {
	Caption   *string `json:"caption"`
	SortOrder *int    `json:"sort_order"`
}

func (r AddImageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Caption, validation.Length(0, 300)),
		validation.Field(&r.SortOrder, validation.Min(0)),
	)
}
