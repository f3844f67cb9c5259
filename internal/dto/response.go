package dto

import "time"

type BasicResponse struct {
	Ok        bool      `json:"ok"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBasicResponse(ok bool, details string) BasicResponse {
	return BasicResponse{
		Ok:        ok,
		Details:   details,
		Timestamp: time.Now(),
	}
}

type FieldErrorResponse struct {
	BasicResponse
	Field string `json:"field"`
}

func NewFieldErrorResponse(field string, details string) FieldErrorResponse {
	return FieldErrorResponse{
		BasicResponse: NewBasicResponse(false, details),
		Field:         field,
	}
}
