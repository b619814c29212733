package api

import "encoding/json"

// envelope is the uniform response wrapper every backend route uses:
// {success: bool, data?: any, message?: string, errors?: {field: msg}}.
// Screens interpret their own data shape; this package only decides
// success/failure and extracts validation maps.
type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// failure converts an unsuccessful envelope into the matching error value.
func (e *envelope) failure(status int) error {
	if len(e.Errors) > 0 {
		return &ValidationError{Fields: e.Errors}
	}
	return &RequestError{Status: status, Message: e.Message}
}
