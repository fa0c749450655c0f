package transport

// LoginRequest carries credentials, from either a JSON body or form fields.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// StatusUpdateRequest is the admin disposition body.
type StatusUpdateRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// PredictRequiredFields lists the keys the standalone prediction endpoint
// demands, in the order they are reported when missing.
var PredictRequiredFields = []string{
	"applicant_income",
	"claimed_subsidy_amount",
	"land_owned_acres",
	"number_of_dependents",
	"previous_claims",
	"region",
	"is_employed",
}
