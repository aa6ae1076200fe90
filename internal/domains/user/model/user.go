package model

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity entity shared by developers and recruiters.
// Sensitive columns are never serialized; handlers return ProfileResponse.
type User struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	FullName string    `json:"full_name"`
	Role     Role      `json:"role"`

	PasswordHash string `json:"-"`

	// Developer profile
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatar_url"`
	Location    *string `json:"location"`
	WebsiteURL  *string `json:"website_url"`
	GithubURL   *string `json:"github_url"`
	LinkedinURL *string `json:"linkedin_url"`
	TwitterURL  *string `json:"twitter_url"`

	// Recruiter profile
	CompanyName *string `json:"company_name"`
	CompanyURL  *string `json:"company_url"`
	Industry    *string `json:"industry"`

	// Verification
	WorkEmail                 *string    `json:"work_email"`
	IsWorkEmailVerified       bool       `json:"is_work_email_verified"`
	IsEmailVerified           bool       `json:"is_email_verified"`
	EmailVerificationCode     *string    `json:"-"`
	EmailVerificationExpiry   *time.Time `json:"-"`
	WorkEmailVerificationCode *string    `json:"-"`
	WorkEmailVerificationExp  *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Role string

const (
	RoleDeveloper Role = "developer"
	RoleRecruiter Role = "recruiter"
)

// IsValid reports whether the role is one of the two supported roles.
func (r Role) IsValid() bool {
	return r == RoleDeveloper || r == RoleRecruiter
}

func (r Role) String() string {
	return string(r)
}

// HasPendingEmailCode reports whether an email verification code is set and
// not yet expired.
func (u *User) HasPendingEmailCode() bool {
	return u.EmailVerificationCode != nil && u.EmailVerificationExpiry != nil
}

// HasPendingWorkEmailCode reports whether a work-email verification code is
// set and not yet expired.
func (u *User) HasPendingWorkEmailCode() bool {
	return u.WorkEmailVerificationCode != nil && u.WorkEmailVerificationExp != nil
}

// ProfileResponse is the sanitized user representation returned by the API.
// Credentials and verification codes are stripped.
type ProfileResponse struct {
	ID                  uuid.UUID `json:"id"`
	Email               string    `json:"email"`
	Username            string    `json:"username"`
	FullName            string    `json:"full_name"`
	Role                Role      `json:"role"`
	Bio                 *string   `json:"bio"`
	AvatarURL           *string   `json:"avatar_url"`
	Location            *string   `json:"location"`
	WebsiteURL          *string   `json:"website_url"`
	GithubURL           *string   `json:"github_url"`
	LinkedinURL         *string   `json:"linkedin_url"`
	TwitterURL          *string   `json:"twitter_url"`
	CompanyName         *string   `json:"company_name"`
	CompanyURL          *string   `json:"company_url"`
	Industry            *string   `json:"industry"`
	WorkEmail           *string   `json:"work_email"`
	IsWorkEmailVerified bool      `json:"is_work_email_verified"`
	IsEmailVerified     bool      `json:"is_email_verified"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Profile converts the entity to its sanitized API representation.
func (u *User) Profile() *ProfileResponse {
	return &ProfileResponse{
		ID:                  u.ID,
		Email:               u.Email,
		Username:            u.Username,
		FullName:            u.FullName,
		Role:                u.Role,
		Bio:                 u.Bio,
		AvatarURL:           u.AvatarURL,
		Location:            u.Location,
		WebsiteURL:          u.WebsiteURL,
		GithubURL:           u.GithubURL,
		LinkedinURL:         u.LinkedinURL,
		TwitterURL:          u.TwitterURL,
		CompanyName:         u.CompanyName,
		CompanyURL:          u.CompanyURL,
		Industry:            u.Industry,
		WorkEmail:           u.WorkEmail,
		IsWorkEmailVerified: u.IsWorkEmailVerified,
		IsEmailVerified:     u.IsEmailVerified,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

// DeveloperListing is a developer profile with their published project count,
// returned by the public developer directory.
type DeveloperListing struct {
	*ProfileResponse
	ProjectCount int `json:"project_count"`
}
