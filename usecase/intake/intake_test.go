package intake

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/subsidyhub/backend/domain"
	"github.com/subsidyhub/backend/repository"
)

type fakeApplicationRepo struct {
	apps   map[int64]*domain.Application
	nextID int64
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[int64]*domain.Application), nextID: 1}
}

func (f *fakeApplicationRepo) Create(ctx context.Context, app *domain.Application) (int64, error) {
	for _, existing := range f.apps {
		if existing.Aadhaar == app.Aadhaar {
			return 0, domain.ErrDuplicateAadhaar
		}
	}
	stored := *app
	stored.ID = f.nextID
	stored.Verdict = domain.VerdictUnknown
	f.apps[stored.ID] = &stored
	f.nextID++
	return stored.ID, nil
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
	return nil, nil
}

func (f *fakeApplicationRepo) ListExceptStatus(ctx context.Context, status string, filter repository.ApplicationFilter) ([]domain.Application, error) {
	return nil, nil
}

func (f *fakeApplicationRepo) UpdateReview(ctx context.Context, id int64, verdict domain.FraudVerdict, probability float64, status string) error {
	return nil
}

func (f *fakeApplicationRepo) UpdateDisposition(ctx context.Context, id int64, status, notes string) error {
	return nil
}

func validInput() SubmitInput {
	return SubmitInput{
		Name:        "A",
		Aadhaar:     "123",
		Phone:       "555",
		Address:     "X",
		SubsidyType: "food",
	}
}

func TestSubmit_Success(t *testing.T) {
	repo := newFakeApplicationRepo()
	uc := New(repo, zaptest.NewLogger(t))

	id, err := uc.Submit(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	app, err := uc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, app.Status)
	assert.Equal(t, domain.VerdictUnknown, app.Verdict)
	assert.Equal(t, 1, app.FamilyMembers, "family_members defaults to 1")
}

func TestSubmit_DistinctAadhaarsGetDistinctIDs(t *testing.T) {
	repo := newFakeApplicationRepo()
	uc := New(repo, zaptest.NewLogger(t))

	first := validInput()
	second := validInput()
	second.Aadhaar = "456"

	id1, err := uc.Submit(context.Background(), first)
	require.NoError(t, err)
	id2, err := uc.Submit(context.Background(), second)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
}

func TestSubmit_DuplicateAadhaar(t *testing.T) {
	repo := newFakeApplicationRepo()
	uc := New(repo, zaptest.NewLogger(t))

	_, err := uc.Submit(context.Background(), validInput())
	require.NoError(t, err)

	_, err = uc.Submit(context.Background(), validInput())
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeConflict))
	assert.Len(t, repo.apps, 1, "no new record on duplicate")
}

func TestSubmit_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SubmitInput)
		missing string
	}{
		{name: "name", mutate: func(in *SubmitInput) { in.Name = "" }, missing: "name"},
		{name: "aadhaar", mutate: func(in *SubmitInput) { in.Aadhaar = "" }, missing: "aadhaar"},
		{name: "phone", mutate: func(in *SubmitInput) { in.Phone = "" }, missing: "phone"},
		{name: "address", mutate: func(in *SubmitInput) { in.Address = "" }, missing: "address"},
		{name: "subsidy_type", mutate: func(in *SubmitInput) { in.SubsidyType = "" }, missing: "subsidy_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeApplicationRepo()
			uc := New(repo, zaptest.NewLogger(t))

			in := validInput()
			tt.mutate(&in)

			_, err := uc.Submit(context.Background(), in)
			require.Error(t, err)
			assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
			assert.Equal(t, "Missing required fields: "+tt.missing, err.Error())
			assert.Empty(t, repo.apps)
		})
	}
}

func TestSubmit_AllFieldsMissing(t *testing.T) {
	uc := New(newFakeApplicationRepo(), zaptest.NewLogger(t))

	_, err := uc.Submit(context.Background(), SubmitInput{})
	require.Error(t, err)
	assert.Equal(t, "Missing required fields: name, aadhaar, phone, address, subsidy_type", err.Error())
}
