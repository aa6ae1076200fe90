package model

import (
	"errors"
	"fmt"
	"net/http"
)

// SavedDevError is the domain error for the saved-developer module.
type SavedDevError struct {
	Code    string
	Message string
	Err     error
}

func (e *SavedDevError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *SavedDevError) Unwrap() error {
	return e.Err
}

// Error codes
const (
	CodeDeveloperNotFound = "DEVELOPER_NOT_FOUND"
	CodeNotSaved          = "NOT_SAVED"
	CodeAlreadySaved      = "ALREADY_SAVED"
	CodeInternal          = "INTERNAL_ERROR"
)

func NewDeveloperNotFound() *SavedDevError {
	return &SavedDevError{Code: CodeDeveloperNotFound, Message: "Developer not found"}
}

func NewNotSaved() *SavedDevError {
	return &SavedDevError{Code: CodeNotSaved, Message: "Developer is not saved"}
}

func NewAlreadySaved() *SavedDevError {
	return &SavedDevError{Code: CodeAlreadySaved, Message: "Developer already saved"}
}

func NewInternalError(message string, err error) *SavedDevError {
	return &SavedDevError{Code: CodeInternal, Message: message, Err: err}
}

// GetErrorResponse maps a saved-developer domain error to its HTTP
// representation.
func GetErrorResponse(err error) (statusCode int, code, message string) {
	var sdErr *SavedDevError
	if !errors.As(err, &sdErr) {
		return http.StatusInternalServerError, CodeInternal, "Internal server error"
	}

	switch sdErr.Code {
	case CodeDeveloperNotFound, CodeNotSaved:
		return http.StatusNotFound, sdErr.Code, sdErr.Message
	case CodeAlreadySaved:
		return http.StatusConflict, sdErr.Code, sdErr.Message
	default:
		return http.StatusInternalServerError, sdErr.Code, "Internal server error"
	}
}
