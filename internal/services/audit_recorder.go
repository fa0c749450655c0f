package services

import (
	"context"

	"github.com/subsidyhub/backend/internal/infrastructure/audit"
	"github.com/subsidyhub/backend/usecase"
)

// AuditRecorder bridges the review use case onto the local audit store.
type AuditRecorder struct {
	store *audit.Store
}

func NewAuditRecorder(store *audit.Store) *AuditRecorder {
	return &AuditRecorder{store: store}
}

func (r *AuditRecorder) RecordFraudCheck(ctx context.Context, applicationID int64, actor, detail string) error {
	return r.record(applicationID, actor, audit.ActionFraudCheck, detail)
}

func (r *AuditRecorder) RecordDisposition(ctx context.Context, applicationID int64, actor, detail string) error {
	return r.record(applicationID, actor, audit.ActionDisposition, detail)
}

func (r *AuditRecorder) record(applicationID int64, actor, action, detail string) error {
	if r == nil || r.store == nil {
		return nil
	}
	return r.store.Append(audit.Entry{
		ApplicationID: applicationID,
		Actor:         actor,
		Action:        action,
		Detail:        detail,
	})
}

var _ usecase.AuditTrail = (*AuditRecorder)(nil)
