package mocks

import (
	"context"

	"tableside/order-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// StatusPublisher is a mock type for the StatusPublisher type
type StatusPublisher struct {
	mock.Mock
}

// PublishStatus provides a mock function with given fields: ctx, event
func (_m *StatusPublisher) PublishStatus(ctx context.Context, event domain.StatusEvent) error {
	ret := _m.Called(ctx, event)

	if len(ret) == 0 {
		panic("no return value specified for PublishStatus")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.StatusEvent) error); ok {
		r0 = rf(ctx, event)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewStatusPublisher creates a new instance of StatusPublisher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewStatusPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *StatusPublisher {
	mock := &StatusPublisher{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
