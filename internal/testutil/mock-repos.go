package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"permeability-service/internal/core/domain"
)

// MockRegressor is a mock of ports.Regressor.
type MockRegressor struct {
	mock.Mock
}

func (m *MockRegressor) Predict(rows [][]float64) ([]float64, error) {
	args := m.Called(rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}

func (m *MockRegressor) Features() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

// MockReferenceSource is a mock of ports.ReferenceSource.
type MockReferenceSource struct {
	mock.Mock
}

func (m *MockReferenceSource) Load(ctx context.Context) (*domain.Table, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Table), args.Error(1)
}

// MockUploadSessionRepo is a mock of ports.UploadSessionRepository.
type MockUploadSessionRepo struct {
	mock.Mock
}

func (m *MockUploadSessionRepo) Save(ctx context.Context, session *domain.UploadSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockUploadSessionRepo) Get(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadSession), args.Error(1)
}

func (m *MockUploadSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
