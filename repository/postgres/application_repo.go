package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/subsidyhub/backend/domain"
	"github.com/subsidyhub/backend/repository"
)

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository instantiates a Postgres-backed application repository.
func NewApplicationRepository(pool *pgxpool.Pool) repository.ApplicationRepository {
	return &applicationRepository{pool: pool}
}

const applicationColumns = `
	id, name, aadhaar, pan, phone, email, address, subsidy_type,
	income, family_members, existing_benefits, submitted_at,
	status, is_fraud, fraud_probability, admin_notes
`

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) (int64, error) {
	if app == nil {
		return 0, domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO applications (
		name, aadhaar, pan, phone, email, address, subsidy_type,
		income, family_members, existing_benefits, status
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING id, submitted_at
	`

	if app.Status == "" {
		app.Status = domain.StatusPending
	}

	if err := r.pool.QueryRow(ctx, query,
		app.Name,
		app.Aadhaar,
		app.PAN,
		app.Phone,
		app.Email,
		app.Address,
		app.SubsidyType,
		app.Income,
		app.FamilyMembers,
		app.ExistingBenefits,
		app.Status,
	).Scan(&app.ID, &app.SubmittedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, domain.ErrDuplicateAadhaar
		}
		return 0, err
	}

	app.Verdict = domain.VerdictUnknown
	return app.ID, nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	const query = `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanApplication(row)
}

func (r *applicationRepository) ListByStatus(ctx context.Context, status string, filter repository.ApplicationFilter) ([]domain.Application, error) {
	const query = `
	SELECT ` + applicationColumns + `
	FROM applications
	WHERE status = $1
	ORDER BY id ASC
	LIMIT $2 OFFSET $3
	`
	return r.list(ctx, query, status, filter)
}

func (r *applicationRepository) ListExceptStatus(ctx context.Context, status string, filter repository.ApplicationFilter) ([]domain.Application, error) {
	const query = `
	SELECT ` + applicationColumns + `
	FROM applications
	WHERE status <> $1
	ORDER BY id ASC
	LIMIT $2 OFFSET $3
	`
	return r.list(ctx, query, status, filter)
}

func (r *applicationRepository) list(ctx context.Context, query, status string, filter repository.ApplicationFilter) ([]domain.Application, error) {
	rows, err := r.pool.Query(ctx, query, status, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

func (r *applicationRepository) UpdateReview(ctx context.Context, id int64, verdict domain.FraudVerdict, probability float64, status string) error {
	const query = `
	UPDATE applications
	SET is_fraud = $2,
		fraud_probability = $3,
		status = $4
	WHERE id = $1
	RETURNING id
	`
	var returned int64
	if err := r.pool.QueryRow(ctx, query, id, verdict == domain.VerdictFraudulent, probability, status).Scan(&returned); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrApplicationNotFound
		}
		return err
	}
	return nil
}

func (r *applicationRepository) UpdateDisposition(ctx context.Context, id int64, status, notes string) error {
	const query = `
	UPDATE applications
	SET status = $2,
		admin_notes = $3
	WHERE id = $1
	RETURNING id
	`
	var returned int64
	if err := r.pool.QueryRow(ctx, query, id, status, notes).Scan(&returned); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrApplicationNotFound
		}
		return err
	}
	return nil
}

func scanApplication(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Application, error) {
	var app domain.Application
	var (
		isFraud     *bool
		probability *float64
		pan         *string
		email       *string
		benefits    *string
		notes       *string
	)

	if err := row.Scan(
		&app.ID,
		&app.Name,
		&app.Aadhaar,
		&pan,
		&app.Phone,
		&email,
		&app.Address,
		&app.SubsidyType,
		&app.Income,
		&app.FamilyMembers,
		&benefits,
		&app.SubmittedAt,
		&app.Status,
		&isFraud,
		&probability,
		&notes,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}

	app.Verdict = verdictFromNullable(isFraud)
	app.FraudProbability = probability
	app.PAN = deref(pan)
	app.Email = deref(email)
	app.ExistingBenefits = deref(benefits)
	app.AdminNotes = deref(notes)

	return &app, nil
}

func verdictFromNullable(isFraud *bool) domain.FraudVerdict {
	switch {
	case isFraud == nil:
		return domain.VerdictUnknown
	case *isFraud:
		return domain.VerdictFraudulent
	default:
		return domain.VerdictLegitimate
	}
}
