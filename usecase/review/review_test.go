package review

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/subsidyhub/backend/domain"
	"github.com/subsidyhub/backend/internal/classifier"
	"github.com/subsidyhub/backend/repository"
	"github.com/subsidyhub/backend/usecase/auth"
)

type fakeApplicationRepo struct {
	apps map[int64]*domain.Application
}

func newFakeApplicationRepo(apps ...*domain.Application) *fakeApplicationRepo {
	repo := &fakeApplicationRepo{apps: make(map[int64]*domain.Application)}
	for _, app := range apps {
		repo.apps[app.ID] = app
	}
	return repo
}

func (f *fakeApplicationRepo) Create(ctx context.Context, app *domain.Application) (int64, error) {
	f.apps[app.ID] = app
	return app.ID, nil
}

func (f *fakeApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	app, ok := f.apps[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	copied := *app
	return &copied, nil
}

func (f *fakeApplicationRepo) ListByStatus(ctx context.Context, status string, filter repository.ApplicationFilter) ([]domain.Application, error) {
	var out []domain.Application
	for _, app := range f.apps {
		if app.Status == status {
			out = append(out, *app)
		}
	}
	sortByID(out)
	return page(out, filter), nil
}

func (f *fakeApplicationRepo) ListExceptStatus(ctx context.Context, status string, filter repository.ApplicationFilter) ([]domain.Application, error) {
	var out []domain.Application
	for _, app := range f.apps {
		if app.Status != status {
			out = append(out, *app)
		}
	}
	sortByID(out)
	return page(out, filter), nil
}

func page(apps []domain.Application, filter repository.ApplicationFilter) []domain.Application {
	if filter.Offset >= len(apps) {
		return nil
	}
	apps = apps[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(apps) {
		apps = apps[:filter.Limit]
	}
	return apps
}

func (f *fakeApplicationRepo) UpdateReview(ctx context.Context, id int64, verdict domain.FraudVerdict, probability float64, status string) error {
	app, ok := f.apps[id]
	if !ok {
		return domain.ErrApplicationNotFound
	}
	app.Verdict = verdict
	app.FraudProbability = &probability
	app.Status = status
	return nil
}

func (f *fakeApplicationRepo) UpdateDisposition(ctx context.Context, id int64, status, notes string) error {
	app, ok := f.apps[id]
	if !ok {
		return domain.ErrApplicationNotFound
	}
	app.Status = status
	app.AdminNotes = notes
	return nil
}

func sortByID(apps []domain.Application) {
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID < apps[j].ID })
}

type fakeClassifier struct {
	result classifier.Result
	err    error
	calls  int
}

func (f *fakeClassifier) Classify(features domain.FeatureVector) (classifier.Result, error) {
	f.calls++
	if f.err != nil {
		return classifier.Result{}, f.err
	}
	return f.result, nil
}

func (f *fakeClassifier) Ready() bool { return f.err == nil }

type recordedAudit struct {
	fraudChecks  []int64
	dispositions []int64
}

func (r *recordedAudit) RecordFraudCheck(ctx context.Context, id int64, actor, detail string) error {
	r.fraudChecks = append(r.fraudChecks, id)
	return nil
}

func (r *recordedAudit) RecordDisposition(ctx context.Context, id int64, actor, detail string) error {
	r.dispositions = append(r.dispositions, id)
	return nil
}

func admin() *auth.Actor {
	return &auth.Actor{UserID: 1, Username: "admin", IsAdmin: true}
}

func pendingApp(id int64) *domain.Application {
	return &domain.Application{
		ID:            id,
		Name:          "A",
		Aadhaar:       "123",
		Income:        30000,
		FamilyMembers: 2,
		Status:        domain.StatusPending,
		Verdict:       domain.VerdictUnknown,
	}
}

func TestQueue_Partition(t *testing.T) {
	apps := []*domain.Application{
		pendingApp(1),
		pendingApp(3),
		{ID: 2, Status: domain.StatusReviewed},
		{ID: 4, Status: "approved"},
	}
	uc := New(newFakeApplicationRepo(apps...), &fakeClassifier{}, nil, zaptest.NewLogger(t))

	queue, err := uc.Queue(context.Background(), admin(), repository.ApplicationFilter{})
	require.NoError(t, err)

	require.Len(t, queue.Pending, 2)
	assert.Equal(t, int64(1), queue.Pending[0].ID)
	assert.Equal(t, int64(3), queue.Pending[1].ID)

	require.Len(t, queue.Processed, 2)
	assert.Equal(t, int64(2), queue.Processed[0].ID)
	assert.Equal(t, int64(4), queue.Processed[1].ID)
}

func TestQueue_RequiresAdmin(t *testing.T) {
	uc := New(newFakeApplicationRepo(), &fakeClassifier{}, nil, zaptest.NewLogger(t))

	for _, actor := range []*auth.Actor{nil, {UserID: 2, Username: "visitor"}} {
		_, err := uc.Queue(context.Background(), actor, repository.ApplicationFilter{})
		require.Error(t, err)
		assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnauthorized))
	}
}

func TestQueue_Pagination(t *testing.T) {
	apps := make([]*domain.Application, 0, 5)
	for id := int64(1); id <= 5; id++ {
		apps = append(apps, pendingApp(id))
	}
	uc := New(newFakeApplicationRepo(apps...), &fakeClassifier{}, nil, zaptest.NewLogger(t))

	// Every row stays reachable by paging past the first window.
	queue, err := uc.Queue(context.Background(), admin(), repository.ApplicationFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)

	require.Len(t, queue.Pending, 2)
	assert.Equal(t, int64(3), queue.Pending[0].ID)
	assert.Equal(t, int64(4), queue.Pending[1].ID)

	queue, err = uc.Queue(context.Background(), admin(), repository.ApplicationFilter{Limit: 2, Offset: 4})
	require.NoError(t, err)
	require.Len(t, queue.Pending, 1)
	assert.Equal(t, int64(5), queue.Pending[0].ID)
}

func TestRunFraudCheck_FraudulentVerdict(t *testing.T) {
	repo := newFakeApplicationRepo(pendingApp(1))
	model := &fakeClassifier{result: classifier.Result{Label: classifier.LabelFraudulent, Probability: 0.91}}
	audit := &recordedAudit{}
	uc := New(repo, model, audit, zaptest.NewLogger(t))

	result, err := uc.RunFraudCheck(context.Background(), admin(), 1)
	require.NoError(t, err)

	assert.True(t, result.IsFraud)
	assert.Equal(t, 0.91, result.Probability)
	assert.Equal(t, "Fraud detected", result.Message)

	stored := repo.apps[1]
	assert.Equal(t, domain.StatusReviewed, stored.Status)
	assert.Equal(t, domain.VerdictFraudulent, stored.Verdict)
	require.NotNil(t, stored.FraudProbability)
	assert.Equal(t, 0.91, *stored.FraudProbability)

	assert.Equal(t, []int64{1}, audit.fraudChecks)
}

func TestRunFraudCheck_LegitimateVerdict(t *testing.T) {
	repo := newFakeApplicationRepo(pendingApp(1))
	model := &fakeClassifier{result: classifier.Result{Label: classifier.LabelLegitimate, Probability: 0.12}}
	uc := New(repo, model, nil, zaptest.NewLogger(t))

	result, err := uc.RunFraudCheck(context.Background(), admin(), 1)
	require.NoError(t, err)

	assert.False(t, result.IsFraud)
	assert.Equal(t, "Likely legitimate", result.Message)
	assert.Equal(t, domain.VerdictLegitimate, repo.apps[1].Verdict)
}

func TestRunFraudCheck_IdempotentOnStatus(t *testing.T) {
	repo := newFakeApplicationRepo(pendingApp(1))
	model := &fakeClassifier{result: classifier.Result{Label: classifier.LabelLegitimate, Probability: 0.2}}
	uc := New(repo, model, nil, zaptest.NewLogger(t))

	for i := 0; i < 3; i++ {
		_, err := uc.RunFraudCheck(context.Background(), admin(), 1)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusReviewed, repo.apps[1].Status)
	}
	assert.Equal(t, 3, model.calls)
}

func TestRunFraudCheck_Errors(t *testing.T) {
	tests := []struct {
		name     string
		actor    *auth.Actor
		id       int64
		model    *fakeClassifier
		wantCode domain.ErrorCode
	}{
		{
			name:     "unauthorized",
			actor:    &auth.Actor{Username: "visitor"},
			id:       1,
			model:    &fakeClassifier{},
			wantCode: domain.ErrCodeUnauthorized,
		},
		{
			name:     "not found",
			actor:    admin(),
			id:       42,
			model:    &fakeClassifier{},
			wantCode: domain.ErrCodeNotFound,
		},
		{
			name:     "model unavailable",
			actor:    admin(),
			id:       1,
			model:    &fakeClassifier{err: domain.ErrModelUnavailable},
			wantCode: domain.ErrCodeUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeApplicationRepo(pendingApp(1))
			uc := New(repo, tt.model, nil, zaptest.NewLogger(t))

			_, err := uc.RunFraudCheck(context.Background(), tt.actor, tt.id)
			require.Error(t, err)
			assert.True(t, domain.IsDomainError(err, tt.wantCode))
			assert.Equal(t, domain.StatusPending, repo.apps[1].Status, "status untouched on failure")
		})
	}
}

func TestFinalize(t *testing.T) {
	repo := newFakeApplicationRepo(pendingApp(1))
	audit := &recordedAudit{}
	uc := New(repo, &fakeClassifier{}, audit, zaptest.NewLogger(t))

	// Finalizing straight from pending, skipping review, is allowed.
	err := uc.Finalize(context.Background(), admin(), 1, "approved", "verified in person")
	require.NoError(t, err)

	assert.Equal(t, "approved", repo.apps[1].Status)
	assert.Equal(t, "verified in person", repo.apps[1].AdminNotes)
	assert.Equal(t, []int64{1}, audit.dispositions)
}

func TestFinalize_Errors(t *testing.T) {
	repo := newFakeApplicationRepo(pendingApp(1))
	uc := New(repo, &fakeClassifier{}, nil, zaptest.NewLogger(t))

	err := uc.Finalize(context.Background(), nil, 1, "approved", "")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnauthorized))

	err = uc.Finalize(context.Background(), admin(), 1, "", "")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	err = uc.Finalize(context.Background(), admin(), 42, "approved", "")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}
