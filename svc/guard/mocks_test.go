package guard

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockOwnerResolver struct {
	mock.Mock
}

func (m *MockOwnerResolver) StoreOwner(ctx context.Context, storeID int64) (int64, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOwnerResolver) ProductOwner(ctx context.Context, productID int64) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}
