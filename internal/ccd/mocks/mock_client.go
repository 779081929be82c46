package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bulkscan/internal/model"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) CreateCase(ctx context.Context, req model.CaseCreationRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
