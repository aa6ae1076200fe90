package model

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var usernameRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// SignupRequest registers a new developer or recruiter account.
type SignupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	CompanyName string `json:"company_name"`
}

func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 50).Error("password must be 8-50 characters"),
		),
		validation.Field(&r.FullName,
			validation.Required.Error("full name is required"),
			validation.Length(2, 150),
		),
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(3, 50),
			validation.Match(usernameRe).Error("username must be lowercase alphanumeric with optional hyphens"),
		),
		validation.Field(&r.Role,
			validation.Required.Error("role is required"),
			validation.In("developer", "recruiter").Error("role must be developer or recruiter"),
		),
		validation.Field(&r.CompanyName,
			validation.Length(0, 200),
		),
	)
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r SigninRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r RefreshTokenRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

type VerifyCodeRequest struct {
	Code string `json:"code"`
}

func (r VerifyCodeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code,
			validation.Required.Error("code is required"),
			validation.Length(6, 6).Error("code must be 6 digits"),
		),
	)
}

// AuthResponse carries tokens plus the sanitized user.
type AuthResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	User         *ProfileResponse `json:"user"`
}

// TokenResponse carries refreshed tokens only.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UpdateProfileRequest is a partial update; nil fields are left unchanged.
type UpdateProfileRequest struct {
	FullName    *string `json:"full_name"`
	Bio         *string `json:"bio"`
	Location    *string `json:"location"`
	WebsiteURL  *string `json:"website_url"`
	GithubURL   *string `json:"github_url"`
	LinkedinURL *string `json:"linkedin_url"`
	TwitterURL  *string `json:"twitter_url"`
	CompanyName *string `json:"company_name"`
	CompanyURL  *string `json:"company_url"`
	Industry    *string `json:"industry"`
	WorkEmail   *string `json:"work_email"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.NilOrNotEmpty, validation.Length(2, 150)),
		validation.Field(&r.Bio, validation.Length(0, 500)),
		validation.Field(&r.Location, validation.Length(0, 150)),
		validation.Field(&r.WebsiteURL, validation.Length(0, 500)),
		validation.Field(&r.GithubURL, validation.Length(0, 500)),
		validation.Field(&r.LinkedinURL, validation.Length(0, 500)),
		validation.Field(&r.TwitterURL, validation.Length(0, 500)),
		validation.Field(&r.CompanyName, validation.Length(0, 200)),
		validation.Field(&r.CompanyURL, validation.Length(0, 500)),
		validation.Field(&r.Industry, validation.Length(0, 150)),
		validation.Field(&r.WorkEmail, validation.When(r.WorkEmail != nil && *r.WorkEmail != "", is.Email)),
	)
}
