package usecase

import "context"

// AuditTrail abstracts the audit recorder so use cases stay storage-agnostic.
type AuditTrail interface {
	RecordFraudCheck(ctx context.Context, applicationID int64, actor, detail string) error
	RecordDisposition(ctx context.Context, applicationID int64, actor, detail string) error
}
