package domain

// Canonical feature columns expected by the fraud model. Region columns are
// one-hot encoded with East as the implicit baseline.
const (
	FeatureApplicantIncome      = "applicant_income"
	FeatureClaimedSubsidyAmount = "claimed_subsidy_amount"
	FeatureLandOwnedAcres       = "land_owned_acres"
	FeatureNumberOfDependents   = "number_of_dependents"
	FeaturePreviousClaims       = "previous_claims"
	FeatureIsEmployed           = "is_employed"
	FeatureRegionNorth          = "region_North"
	FeatureRegionSouth          = "region_South"
	FeatureRegionWest           = "region_West"
)

// CanonicalFeatures lists every column of the canonical schema in order.
var CanonicalFeatures = []string{
	FeatureApplicantIncome,
	FeatureClaimedSubsidyAmount,
	FeatureLandOwnedAcres,
	FeatureNumberOfDependents,
	FeaturePreviousClaims,
	FeatureIsEmployed,
	FeatureRegionNorth,
	FeatureRegionSouth,
	FeatureRegionWest,
}

// FeatureVector is the named-column representation handed to the classifier
// for one prediction. It is derived per call and never persisted.
type FeatureVector map[string]float64

// NewFeatureVector returns a vector with every canonical column zeroed.
func NewFeatureVector() FeatureVector {
	fv := make(FeatureVector, len(CanonicalFeatures))
	for _, name := range CanonicalFeatures {
		fv[name] = 0
	}
	return fv
}

// SetRegion applies the one-hot region encoding. Any region outside
// North/South/West maps to the baseline (all three columns zero).
func (fv FeatureVector) SetRegion(region string) {
	fv[FeatureRegionNorth] = 0
	fv[FeatureRegionSouth] = 0
	fv[FeatureRegionWest] = 0
	switch region {
	case "North":
		fv[FeatureRegionNorth] = 1
	case "South":
		fv[FeatureRegionSouth] = 1
	case "West":
		fv[FeatureRegionWest] = 1
	}
}

// FromApplication derives the canonical vector for the review path.
// Columns the intake form does not capture stay at zero.
func (fv FeatureVector) FromApplication(app *Application) FeatureVector {
	if app == nil {
		return fv
	}
	fv[FeatureApplicantIncome] = app.Income
	fv[FeatureNumberOfDependents] = float64(app.FamilyMembers)
	fv[FeaturePreviousClaims] = float64(app.BenefitCount())
	return fv
}
