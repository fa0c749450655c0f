package audit

import (
	"time"

	"github.com/google/uuid"
)

// Review actions recorded in the audit trail.
const (
	ActionFraudCheck  = "fraud_check"
	ActionDisposition = "disposition"
)

// Entry records one administrator action against an application.
type Entry struct {
	ID            string    `json:"id"`
	ApplicationID int64     `json:"application_id"`
	Actor         string    `json:"actor"`
	Action        string    `json:"action"`
	Detail        string    `json:"detail,omitempty"`
	At            time.Time `json:"at"`
}

func (e *Entry) normalize() {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}
}
