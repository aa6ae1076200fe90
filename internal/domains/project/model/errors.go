package model

import (
	"errors"
	"fmt"
	"net/http"
)

// ProjectError is the domain error for the project module.
type ProjectError struct {
	Code    string
	Message string
	Err     error
}

func (e *ProjectError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *ProjectError) Unwrap() error {
	return e.Err
}

// Error codes
const (
	CodeProjectNotFound = "PROJECT_NOT_FOUND"
	CodeImageNotFound   = "IMAGE_NOT_FOUND"
	CodeForbidden       = "FORBIDDEN"
	CodeValidation      = "VALIDATION_ERROR"
	CodeInternal        = "INTERNAL_ERROR"
)

func NewProjectNotFound() *ProjectError {
	return &ProjectError{Code: CodeProjectNotFound, Message: "Project not found"}
}

func NewImageNotFound() *ProjectError {
	return &ProjectError{Code: CodeImageNotFound, Message: "Image not found"}
}

func NewForbidden() *ProjectError {
	return &ProjectError{Code: CodeForbidden, Message: "You do not own this project"}
}

func NewValidationError(err error) *ProjectError {
	return &ProjectError{Code: CodeValidation, Message: err.Error(), Err: err}
}

func NewInternalError(message string, err error) *ProjectError {
	return &ProjectError{Code: CodeInternal, Message: message, Err: err}
}

// GetErrorResponse maps a project domain error to its HTTP representation.
func GetErrorResponse(err error) (statusCode int, code, message string) {
	var projErr *ProjectError
	if !errors.As(err, &projErr) {
		return http.StatusInternalServerError, CodeInternal, "Internal server error"
	}

	switch projErr.Code {
	case CodeProjectNotFound, CodeImageNotFound:
		return http.StatusNotFound, projErr.Code, projErr.Message
	case CodeForbidden:
		return http.StatusForbidden, projErr.Code, projErr.Message
	case CodeValidation:
		return http.StatusBadRequest, projErr.Code, projErr.Message
	default:
		return http.StatusInternalServerError, projErr.Code, "Internal server error"
	}
}
