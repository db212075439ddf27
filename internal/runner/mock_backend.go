package runner

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockBackend is a mock implementation of Backend using testify/mock.
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockBackend) Process(ctx context.Context, req Request, emit EmitFunc) error {
	args := m.Called(ctx, req, emit)
	return args.Error(0)
}
