package intake

import (
	"context"

	"go.uber.org/zap"

	"github.com/subsidyhub/backend/domain"
	"github.com/subsidyhub/backend/repository"
)

// SubmitInput carries the validated-at-transport form fields of a new
// application. Numeric fields already parsed; zero values mean "not given".
type SubmitInput struct {
	Name             string
	Aadhaar          string
	PAN              string
	Phone            string
	Email            string
	Address          string
	SubsidyType      string
	Income           float64
	FamilyMembers    int
	ExistingBenefits string
}

// missingFields reports required fields that are absent, in form order.
func (in SubmitInput) missingFields() []string {
	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"name", in.Name},
		{"aadhaar", in.Aadhaar},
		{"phone", in.Phone},
		{"address", in.Address},
		{"subsidy_type", in.SubsidyType},
	} {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

type UseCase struct {
	applications repository.ApplicationRepository
	logger       *zap.Logger
}

func New(applications repository.ApplicationRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		applications: applications,
		logger:       logger,
	}
}

// Submit validates and persists a new application. Fraud review is a
// separate, administrator-triggered step and never runs here.
func (uc *UseCase) Submit(ctx context.Context, in SubmitInput) (int64, error) {
	if missing := in.missingFields(); len(missing) > 0 {
		return 0, domain.NewValidationError(missing)
	}

	if in.FamilyMembers <= 0 {
		in.FamilyMembers = 1
	}

	app := &domain.Application{
		Name:             in.Name,
		Aadhaar:          in.Aadhaar,
		PAN:              in.PAN,
		Phone:            in.Phone,
		Email:            in.Email,
		Address:          in.Address,
		SubsidyType:      in.SubsidyType,
		Income:           in.Income,
		FamilyMembers:    in.FamilyMembers,
		ExistingBenefits: in.ExistingBenefits,
		Status:           domain.StatusPending,
	}

	id, err := uc.applications.Create(ctx, app)
	if err != nil {
		return 0, err
	}

	uc.logger.Info("application submitted",
		zap.Int64("id", id), zap.String("subsidy_type", in.SubsidyType))
	return id, nil
}

// Get loads one application for the result view.
func (uc *UseCase) Get(ctx context.Context, id int64) (*domain.Application, error) {
	return uc.applications.GetByID(ctx, id)
}
