package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bulkscan/internal/model"
	"bulkscan/internal/pipeline"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ProcessExceptionRecord(ctx context.Context, rec *model.ExceptionRecord) (*pipeline.Result, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.Result), args.Error(1)
}

func (m *MockService) ValidateRecord(ctx context.Context, rec *model.ExceptionRecord, combineErrors bool) (*pipeline.Result, error) {
	args := m.Called(ctx, rec, combineErrors)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.Result), args.Error(1)
}
