package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockLookup struct {
	mock.Mock
}

func (m *MockLookup) Exists(ctx context.Context, postcode string) (bool, error) {
	args := m.Called(ctx, postcode)
	return args.Bool(0), args.Error(1)
}
