package dto

import "time"

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Message      string    `json:"message" example:"Invalid request parameters"`
	ErrorDetails string    `json:"error,omitempty" example:"issuer is required"`
	RequestID    string    `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Timestamp    time.Time `json:"timestamp" example:"2024-03-05T10:00:00Z"`
}

// Error implements the error interface so the response can travel through gin's error chain.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse stamped with the current UTC time.
// err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}

// WithRequestID returns a copy of e carrying the request id echoed in X-Request-ID.
func (e ErrorResponse) WithRequestID(id string) ErrorResponse {
	e.RequestID = id
	return e
}
