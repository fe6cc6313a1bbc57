package mocks

import (
	"context"

	"tableside/order-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// BoardRepository is a mock type for the BoardRepository type
type BoardRepository struct {
	mock.Mock
}

// ListActiveOrders provides a mock function with given fields: ctx, restaurantID
func (_m *BoardRepository) ListActiveOrders(ctx context.Context, restaurantID int) ([]domain.Order, error) {
	ret := _m.Called(ctx, restaurantID)

	if len(ret) == 0 {
		panic("no return value specified for ListActiveOrders")
	}

	var r0 []domain.Order
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int) ([]domain.Order, error)); ok {
		return rf(ctx, restaurantID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int) []domain.Order); ok {
		r0 = rf(ctx, restaurantID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]domain.Order)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int) error); ok {
		r1 = rf(ctx, restaurantID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ListTerminalOrders provides a mock function with given fields: ctx, restaurantID, limit
func (_m *BoardRepository) ListTerminalOrders(ctx context.Context, restaurantID int, limit int) ([]domain.Order, error) {
	ret := _m.Called(ctx, restaurantID, limit)

	if len(ret) == 0 {
		panic("no return value specified for ListTerminalOrders")
	}

	var r0 []domain.Order
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int, int) ([]domain.Order, error)); ok {
		return rf(ctx, restaurantID, limit)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int, int) []domain.Order); ok {
		r0 = rf(ctx, restaurantID, limit)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]domain.Order)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int, int) error); ok {
		r1 = rf(ctx, restaurantID, limit)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewBoardRepository creates a new instance of BoardRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewBoardRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *BoardRepository {
	mock := &BoardRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
