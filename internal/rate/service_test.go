package rate

import (
	"context"
	"testing"

	"fxcache/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestService_GetLatest_Delegates(t *testing.T) {
	mockRepo := new(MockSnapshotRepository)
	s := NewService(mockRepo)
	snap := testSnapshot()

	mockRepo.On("Latest", mock.Anything).Return(&snap, nil).Once()

	got, err := s.GetLatest(context.Background())
	require.NoError(t, err)
	require.Equal(t, snap.BaseCode, got.BaseCode)
	mockRepo.AssertExpectations(t)
}

func TestService_GetCurrencyRate_PassesCodeThrough(t *testing.T) {
	mockRepo := new(MockSnapshotRepository)
	s := NewService(mockRepo)

	mockRepo.On("CurrencyRate", mock.Anything, "eur").Return(0.9, nil).Once()

	value, err := s.GetCurrencyRate(context.Background(), "eur")
	require.NoError(t, err)
	require.InDelta(t, 0.9, value, 1e-9)
	mockRepo.AssertExpectations(t)
}

func TestService_EmptyCache_SurfacesNotFound(t *testing.T) {
	mockRepo := new(MockSnapshotRepository)
	s := NewService(mockRepo)

	mockRepo.On("AllRates", mock.Anything).Return(nil, domain.ErrNotFound).Once()
	mockRepo.On("Metadata", mock.Anything).Return(nil, domain.ErrNotFound).Once()

	_, err := s.GetAllRates(context.Background())
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.GetMetadata(context.Background())
	require.ErrorIs(t, err, domain.ErrNotFound)
}
