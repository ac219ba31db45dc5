package service

import (
	"context"
	"net/url"

	"rental-frontend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUpstream
type MockUpstream struct {
	mock.Mock
}

func (m *MockUpstream) Do(ctx context.Context, api domain.APIIdentity, method, path string, query url.Values, body, out any) error {
	args := m.Called(ctx, api, method, path, query, body, out)
	return args.Error(0)
}

// fill returns a Run func that copies v into the out argument of Do.
func fill[T any](v T) func(mock.Arguments) {
	return func(args mock.Arguments) {
		*args.Get(6).(*T) = v
	}
}
