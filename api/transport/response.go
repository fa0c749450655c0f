package transport

import "encoding/json"

// Envelope is the standard API response wrapper used for both success and error payloads.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

// NewError returns an error envelope with optional metadata.
func NewError(code string, err interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
		Meta:   meta,
	}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}

// Fixed-shape responses kept wire-compatible with the original portal's
// consumers; these endpoints do not use the envelope.

// PredictionResponse is the standalone prediction body. Probability is a
// percentage rounded to two decimals.
type PredictionResponse struct {
	Prediction  string  `json:"prediction"`
	Probability float64 `json:"probability"`
	Timestamp   string  `json:"timestamp"`
}

// FraudCheckResponse is the admin fraud-check body. Probability is 0-1.
type FraudCheckResponse struct {
	IsFraud     bool    `json:"is_fraud"`
	Probability float64 `json:"probability"`
	Message     string  `json:"message"`
}

// StatusUpdateResponse acknowledges a disposition write.
type StatusUpdateResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse is the fixed-shape error body of the compatibility endpoints.
type ErrorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp,omitempty"`
}
