package apiutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

type HandlerError struct {
	Status  int
	Message string
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteError writes a JSON error body. A FieldError names the offending field.
func WriteError(w http.ResponseWriter, status int, err error) error {
	response := ErrorResponse{Error: err.Error()}
	if fieldErr, ok := err.(FieldError); ok {
		response.Field = fieldErr.Field
	}
	if handlerErr, ok := err.(HandlerError); ok {
		response.Error = handlerErr.Message
	}
	return WriteJSON(w, status, response)
}
