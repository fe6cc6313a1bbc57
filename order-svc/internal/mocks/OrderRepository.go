package mocks

import (
	"context"

	"tableside/order-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// OrderRepository is a mock type for the OrderRepository type
type OrderRepository struct {
	mock.Mock
}

// ResolveTable provides a mock function with given fields: ctx, restaurantID, tableNumber
func (_m *OrderRepository) ResolveTable(ctx context.Context, restaurantID int, tableNumber int) (*domain.RestaurantTable, error) {
	ret := _m.Called(ctx, restaurantID, tableNumber)

	if len(ret) == 0 {
		panic("no return value specified for ResolveTable")
	}

	var r0 *domain.RestaurantTable
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int, int) (*domain.RestaurantTable, error)); ok {
		return rf(ctx, restaurantID, tableNumber)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int, int) *domain.RestaurantTable); ok {
		r0 = rf(ctx, restaurantID, tableNumber)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*domain.RestaurantTable)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int, int) error); ok {
		r1 = rf(ctx, restaurantID, tableNumber)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetMenuItems provides a mock function with given fields: ctx, ids
func (_m *OrderRepository) GetMenuItems(ctx context.Context, ids []int) (map[int]domain.MenuItem, error) {
	ret := _m.Called(ctx, ids)

	if len(ret) == 0 {
		panic("no return value specified for GetMenuItems")
	}

	var r0 map[int]domain.MenuItem
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, []int) (map[int]domain.MenuItem, error)); ok {
		return rf(ctx, ids)
	}
	if rf, ok := ret.Get(0).(func(context.Context, []int) map[int]domain.MenuItem); ok {
		r0 = rf(ctx, ids)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(map[int]domain.MenuItem)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, []int) error); ok {
		r1 = rf(ctx, ids)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// CreateOrder provides a mock function with given fields: ctx, order
func (_m *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	ret := _m.Called(ctx, order)

	if len(ret) == 0 {
		panic("no return value specified for CreateOrder")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *domain.Order) error); ok {
		r0 = rf(ctx, order)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// GetOrder provides a mock function with given fields: ctx, orderID
func (_m *OrderRepository) GetOrder(ctx context.Context, orderID int) (*domain.Order, error) {
	ret := _m.Called(ctx, orderID)

	if len(ret) == 0 {
		panic("no return value specified for GetOrder")
	}

	var r0 *domain.Order
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int) (*domain.Order, error)); ok {
		return rf(ctx, orderID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int) *domain.Order); ok {
		r0 = rf(ctx, orderID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*domain.Order)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int) error); ok {
		r1 = rf(ctx, orderID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// UpdateOrderStatus provides a mock function with given fields: ctx, orderID, from, to
func (_m *OrderRepository) UpdateOrderStatus(ctx context.Context, orderID int, from domain.OrderStatus, to domain.OrderStatus) (*domain.Order, bool, error) {
	ret := _m.Called(ctx, orderID, from, to)

	if len(ret) == 0 {
		panic("no return value specified for UpdateOrderStatus")
	}

	var r0 *domain.Order
	var r1 bool
	var r2 error
	if rf, ok := ret.Get(0).(func(context.Context, int, domain.OrderStatus, domain.OrderStatus) (*domain.Order, bool, error)); ok {
		return rf(ctx, orderID, from, to)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int, domain.OrderStatus, domain.OrderStatus) *domain.Order); ok {
		r0 = rf(ctx, orderID, from, to)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*domain.Order)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int, domain.OrderStatus, domain.OrderStatus) bool); ok {
		r1 = rf(ctx, orderID, from, to)
	} else {
		r1 = ret.Get(1).(bool)
	}

	if rf, ok := ret.Get(2).(func(context.Context, int, domain.OrderStatus, domain.OrderStatus) error); ok {
		r2 = rf(ctx, orderID, from, to)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// TouchOrder provides a mock function with given fields: ctx, orderID, status
func (_m *OrderRepository) TouchOrder(ctx context.Context, orderID int, status domain.OrderStatus) (*domain.Order, bool, error) {
	ret := _m.Called(ctx, orderID, status)

	if len(ret) == 0 {
		panic("no return value specified for TouchOrder")
	}

	var r0 *domain.Order
	var r1 bool
	var r2 error
	if rf, ok := ret.Get(0).(func(context.Context, int, domain.OrderStatus) (*domain.Order, bool, error)); ok {
		return rf(ctx, orderID, status)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int, domain.OrderStatus) *domain.Order); ok {
		r0 = rf(ctx, orderID, status)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*domain.Order)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int, domain.OrderStatus) bool); ok {
		r1 = rf(ctx, orderID, status)
	} else {
		r1 = ret.Get(1).(bool)
	}

	if rf, ok := ret.Get(2).(func(context.Context, int, domain.OrderStatus) error); ok {
		r2 = rf(ctx, orderID, status)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// NewOrderRepository creates a new instance of OrderRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewOrderRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderRepository {
	mock := &OrderRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
