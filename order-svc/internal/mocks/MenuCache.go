package mocks

import (
	"context"

	"tableside/order-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// MenuCache is a mock type for the MenuCache type
type MenuCache struct {
	mock.Mock
}

// GetMenu provides a mock function with given fields: ctx, restaurantID
func (_m *MenuCache) GetMenu(ctx context.Context, restaurantID int) (*domain.Menu, bool, error) {
	ret := _m.Called(ctx, restaurantID)

	if len(ret) == 0 {
		panic("no return value specified for GetMenu")
	}

	var r0 *domain.Menu
	var r1 bool
	var r2 error
	if rf, ok := ret.Get(0).(func(context.Context, int) (*domain.Menu, bool, error)); ok {
		return rf(ctx, restaurantID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int) *domain.Menu); ok {
		r0 = rf(ctx, restaurantID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*domain.Menu)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int) bool); ok {
		r1 = rf(ctx, restaurantID)
	} else {
		r1 = ret.Get(1).(bool)
	}

	if rf, ok := ret.Get(2).(func(context.Context, int) error); ok {
		r2 = rf(ctx, restaurantID)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// SetMenu provides a mock function with given fields: ctx, menu
func (_m *MenuCache) SetMenu(ctx context.Context, menu *domain.Menu) error {
	ret := _m.Called(ctx, menu)

	if len(ret) == 0 {
		panic("no return value specified for SetMenu")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *domain.Menu) error); ok {
		r0 = rf(ctx, menu)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// InvalidateMenu provides a mock function with given fields: ctx, restaurantID
func (_m *MenuCache) InvalidateMenu(ctx context.Context, restaurantID int) error {
	ret := _m.Called(ctx, restaurantID)

	if len(ret) == 0 {
		panic("no return value specified for InvalidateMenu")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int) error); ok {
		r0 = rf(ctx, restaurantID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMenuCache creates a new instance of MenuCache. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMenuCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *MenuCache {
	mock := &MenuCache{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
