package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/biodata-intake/internal/common"
	"github.com/joseph-ayodele/biodata-intake/internal/mapper"
	"github.com/joseph-ayodele/biodata-intake/internal/repository"
)

type fakeProfiles struct {
	rows []*repository.StoredProfile
}

func (f *fakeProfiles) Insert(context.Context, *mapper.FinalProfile, uuid.UUID, []byte) (*repository.StoredProfile, error) {
	return nil, common.ErrInternal
}

func (f *fakeProfiles) GetByID(context.Context, uuid.UUID) (*repository.StoredProfile, error) {
	return nil, common.ErrNotFound
}

func (f *fakeProfiles) List(_ context.Context, limit int) ([]*repository.StoredProfile, error) {
	if limit > 0 && limit < len(f.rows) {
		return f.rows[:limit], nil
	}
	return f.rows, nil
}

func storedProfile(first, last, gender string) *repository.StoredProfile {
	return &repository.StoredProfile{
		ID: uuid.New(),
		Profile: mapper.FinalProfile{
			FirstName:       first,
			LastName:        last,
			Gender:          gender,
			DatetimeOfBirth: "1995-01-01",
			CurrentLocation: "Foster City, CA, USA",
			Status:          "verified",
		},
		CreatedAt: time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC),
	}
}

func TestExportProfilesXLSX(t *testing.T) {
	repo := &fakeProfiles{rows: []*repository.StoredProfile{
		storedProfile("Asha", "Rao", "Female"),
		storedProfile("Ravi", "Kumar", "Male"),
	}}
	svc := NewService(repo, nil)

	b, err := svc.ExportProfilesXLSX(context.Background(), 0)
	require.NoError(t, err)
	require.NotEmpty(t, b)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Profiles")
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two profiles")

	assert.Equal(t, "First Name", rows[0][0])
	assert.Equal(t, "Asha", rows[1][0])
	assert.Equal(t, "Rao", rows[1][1])
	assert.Equal(t, "Female", rows[1][2])
	assert.Equal(t, "1995-01-01", rows[1][3])
	assert.Equal(t, "Ravi", rows[2][0])
}

func TestExportProfilesXLSXLimit(t *testing.T) {
	repo := &fakeProfiles{rows: []*repository.StoredProfile{
		storedProfile("Asha", "Rao", "Female"),
		storedProfile("Ravi", "Kumar", "Male"),
	}}
	svc := NewService(repo, nil)

	b, err := svc.ExportProfilesXLSX(context.Background(), 1)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Profiles")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestExportProfilesXLSXEmpty(t *testing.T) {
	svc := NewService(&fakeProfiles{}, nil)
	b, err := svc.ExportProfilesXLSX(context.Background(), 0)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Profiles")
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}
