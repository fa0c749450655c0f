package review

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/subsidyhub/backend/domain"
	"github.com/subsidyhub/backend/internal/classifier"
	"github.com/subsidyhub/backend/repository"
	"github.com/subsidyhub/backend/usecase"
	"github.com/subsidyhub/backend/usecase/auth"
)

// FraudClassifier abstracts the model adapter so the service can be tested
// against fixed artifacts.
type FraudClassifier interface {
	Classify(features domain.FeatureVector) (classifier.Result, error)
	Ready() bool
}

// CheckResult is the outcome of a fraud check against a stored application.
type CheckResult struct {
	IsFraud     bool    `json:"is_fraud"`
	Probability float64 `json:"probability"`
	Message     string  `json:"message"`
}

// Queue partitions the application backlog for the admin view.
type Queue struct {
	Pending   []domain.Application `json:"pending"`
	Processed []domain.Application `json:"processed"`
}

type UseCase struct {
	applications repository.ApplicationRepository
	model        FraudClassifier
	audit        usecase.AuditTrail
	logger       *zap.Logger
}

func New(applications repository.ApplicationRepository, model FraudClassifier, audit usecase.AuditTrail, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		applications: applications,
		model:        model,
		audit:        audit,
		logger:       logger,
	}
}

// Queue lists pending and processed applications, id ascending. The filter
// pages both partitions; a zero filter yields the first page.
func (uc *UseCase) Queue(ctx context.Context, actor *auth.Actor, filter repository.ApplicationFilter) (*Queue, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	pending, err := uc.applications.ListByStatus(ctx, domain.StatusPending, filter)
	if err != nil {
		return nil, err
	}
	processed, err := uc.applications.ListExceptStatus(ctx, domain.StatusPending, filter)
	if err != nil {
		return nil, err
	}
	return &Queue{Pending: pending, Processed: processed}, nil
}

// RunFraudCheck classifies one stored application, persists the verdict and
// advances its status to reviewed. Repeated calls leave the status at
// reviewed and simply overwrite the verdict.
func (uc *UseCase) RunFraudCheck(ctx context.Context, actor *auth.Actor, id int64) (*CheckResult, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	app, err := uc.applications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	features := domain.NewFeatureVector().FromApplication(app)
	result, err := uc.model.Classify(features)
	if err != nil {
		return nil, err
	}

	verdict := domain.VerdictLegitimate
	message := "Likely legitimate"
	if result.IsFraud() {
		verdict = domain.VerdictFraudulent
		message = "Fraud detected"
	}

	if err := uc.applications.UpdateReview(ctx, id, verdict, result.Probability, domain.StatusReviewed); err != nil {
		return nil, err
	}

	uc.recordAudit(ctx, id, actor, true,
		fmt.Sprintf("verdict=%s probability=%.4f", verdict, result.Probability))

	uc.logger.Info("fraud check completed",
		zap.Int64("application_id", id),
		zap.String("verdict", string(verdict)),
		zap.Float64("probability", result.Probability))

	return &CheckResult{
		IsFraud:     verdict == domain.VerdictFraudulent,
		Probability: result.Probability,
		Message:     message,
	}, nil
}

// Finalize records the administrator's disposition. The status is
// overwritten unconditionally: an application can be finalized straight
// from pending without an intervening fraud check.
func (uc *UseCase) Finalize(ctx context.Context, actor *auth.Actor, id int64, status, notes string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if status == "" {
		return domain.NewError(domain.ErrCodeInvalid, "status is required")
	}

	if err := uc.applications.UpdateDisposition(ctx, id, status, notes); err != nil {
		return err
	}

	uc.recordAudit(ctx, id, actor, false, "status="+status)

	uc.logger.Info("application finalized",
		zap.Int64("application_id", id), zap.String("status", status))
	return nil
}

func (uc *UseCase) recordAudit(ctx context.Context, id int64, actor *auth.Actor, fraudCheck bool, detail string) {
	if uc.audit == nil {
		return
	}
	var err error
	if fraudCheck {
		err = uc.audit.RecordFraudCheck(ctx, id, actor.Username, detail)
	} else {
		err = uc.audit.RecordDisposition(ctx, id, actor.Username, detail)
	}
	if err != nil {
		uc.logger.Error("failed to record audit entry",
			zap.Int64("application_id", id), zap.Error(err))
	}
}

func requireAdmin(actor *auth.Actor) error {
	if actor == nil || !actor.IsAdmin {
		return domain.ErrUnauthorized
	}
	return nil
}
