package domain

import (
	"strings"
	"time"
)

// Application statuses. The set is open: administrators may assign any
// label at disposition time, but these two drive the review queues.
const (
	StatusPending  = "pending"
	StatusReviewed = "reviewed"
)

// FraudVerdict is the tri-state outcome of a fraud check.
type FraudVerdict string

const (
	VerdictUnknown    FraudVerdict = "unknown"
	VerdictFraudulent FraudVerdict = "fraudulent"
	VerdictLegitimate FraudVerdict = "legitimate"
)

// Application represents a single subsidy request and its review lifecycle.
type Application struct {
	ID               int64        `json:"id"`
	Name             string       `json:"name"`
	Aadhaar          string       `json:"aadhaar"`
	PAN              string       `json:"pan,omitempty"`
	Phone            string       `json:"phone"`
	Email            string       `json:"email,omitempty"`
	Address          string       `json:"address"`
	SubsidyType      string       `json:"subsidy_type"`
	Income           float64      `json:"income"`
	FamilyMembers    int          `json:"family_members"`
	ExistingBenefits string       `json:"existing_benefits,omitempty"`
	SubmittedAt      time.Time    `json:"submitted_at"`
	Status           string       `json:"status"`
	Verdict          FraudVerdict `json:"is_fraud"`
	FraudProbability *float64     `json:"fraud_probability,omitempty"`
	AdminNotes       string       `json:"admin_notes,omitempty"`
}

// BenefitCount returns the number of entries in the comma-separated
// existing-benefits list.
func (a *Application) BenefitCount() int {
	if a == nil || strings.TrimSpace(a.ExistingBenefits) == "" {
		return 0
	}
	return len(strings.Split(a.ExistingBenefits, ","))
}
