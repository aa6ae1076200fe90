package model

import (
	"errors"
	"fmt"
	"net/http"
)

// UserError is the domain error for the user/auth module.
type UserError struct {
	Code    string
	Message string
	Err     error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// Error codes
const (
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeEmailTaken         = "EMAIL_TAKEN"
	CodeUsernameTaken      = "USERNAME_TAKEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeNoCodePending      = "NO_CODE_PENDING"
	CodeCodeExpired        = "CODE_EXPIRED"
	CodeCodeInvalid        = "CODE_INVALID"
	CodeNoWorkEmail        = "NO_WORK_EMAIL"
	CodeValidation         = "VALIDATION_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
)

func NewUserNotFound() *UserError {
	return &UserError{Code: CodeUserNotFound, Message: "User not found"}
}

func NewEmailTaken() *UserError {
	return &UserError{Code: CodeEmailTaken, Message: "Email already registered"}
}

func NewUsernameTaken() *UserError {
	return &UserError{Code: CodeUsernameTaken, Message: "Username already taken"}
}

func NewInvalidCredentials() *UserError {
	return &UserError{Code: CodeInvalidCredentials, Message: "Invalid credentials"}
}

func NewInvalidToken() *UserError {
	return &UserError{Code: CodeInvalidToken, Message: "Invalid refresh token"}
}

func NewNoCodePending() *UserError {
	return &UserError{Code: CodeNoCodePending, Message: "No verification code pending. Request a new one."}
}

func NewCodeExpired() *UserError {
	return &UserError{Code: CodeCodeExpired, Message: "Verification code expired. Request a new one."}
}

func NewCodeInvalid() *UserError {
	return &UserError{Code: CodeCodeInvalid, Message: "Invalid verification code"}
}

func NewNoWorkEmail() *UserError {
	return &UserError{Code: CodeNoWorkEmail, Message: "Set a work email first"}
}

func NewValidationError(err error) *UserError {
	return &UserError{Code: CodeValidation, Message: err.Error(), Err: err}
}

func NewInternalError(message string, err error) *UserError {
	return &UserError{Code: CodeInternal, Message: message, Err: err}
}

// GetErrorResponse maps a user domain error to its HTTP representation.
func GetErrorResponse(err error) (statusCode int, code, message string) {
	var userErr *UserError
	if !errors.As(err, &userErr) {
		return http.StatusInternalServerError, CodeInternal, "Internal server error"
	}

	switch userErr.Code {
	case CodeUserNotFound:
		return http.StatusNotFound, userErr.Code, userErr.Message
	case CodeEmailTaken, CodeUsernameTaken:
		return http.StatusConflict, userErr.Code, userErr.Message
	case CodeInvalidCredentials, CodeInvalidToken:
		return http.StatusUnauthorized, userErr.Code, userErr.Message
	case CodeNoCodePending, CodeCodeExpired, CodeCodeInvalid, CodeNoWorkEmail, CodeValidation:
		return http.StatusBadRequest, userErr.Code, userErr.Message
	default:
		return http.StatusInternalServerError, userErr.Code, "Internal server error"
	}
}
