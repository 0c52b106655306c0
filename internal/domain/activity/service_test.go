package activity

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Log(ctx context.Context, entry *Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockRepository) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestService_LogStampsTime(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Log", mock.Anything, mock.AnythingOfType("*activity.Entry")).Return(nil)

	svc := NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	entry := &Entry{ProjectID: "p1", Type: TypeProjectCreated, Summary: "created"}
	require.NoError(t, svc.Log(context.Background(), entry))
	require.False(t, entry.CreatedAt.IsZero())
}

func TestService_LogRejectsNil(t *testing.T) {
	svc := NewService(new(mockRepository), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.ErrorIs(t, svc.Log(context.Background(), nil), ErrInvalidInput)
}

func TestService_Recent(t *testing.T) {
	repo := new(mockRepository)
	entries := []Entry{{ID: 1, ProjectID: "p1", Type: TypeVideoUploaded, Summary: "uploaded teaser v1"}}
	repo.On("List", mock.Anything, ListOptions{ProjectID: "p1", Limit: 10}).Return(entries, nil)

	svc := NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	got, err := svc.Recent(context.Background(), ListOptions{ProjectID: "p1", Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 1)
}
