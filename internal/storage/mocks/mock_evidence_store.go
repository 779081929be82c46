package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"bulkscan/internal/storage"
)

type MockEvidenceStore struct {
	mock.Mock
}

func (m *MockEvidenceStore) Fetch(ctx context.Context, key string) (io.ReadCloser, storage.EvidenceInfo, error) {
	args := m.Called(ctx, key)
	var rc io.ReadCloser
	if args.Get(0) != nil {
		rc = args.Get(0).(io.ReadCloser)
	}
	return rc, args.Get(1).(storage.EvidenceInfo), args.Error(2)
}

func (m *MockEvidenceStore) PresignDownload(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}
