package mocks

import (

	mock "github.com/stretchr/testify/mock"
)

// TableQRInterface is a mock type for the TableQRInterface type
type TableQRInterface struct {
	mock.Mock
}

// Signed provides a mock function with given fields: 
func (_m *TableQRInterface) Signed() bool {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Signed")
	}

	var r0 bool
	if rf, ok := ret.Get(0).(func() bool); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(bool)
	}

	return r0
}

// Link provides a mock function with given fields: restaurantID, tableNumber
func (_m *TableQRInterface) Link(restaurantID int, tableNumber int) (string, error) {
	ret := _m.Called(restaurantID, tableNumber)

	if len(ret) == 0 {
		panic("no return value specified for Link")
	}

	var r0 string
	var r1 error
	if rf, ok := ret.Get(0).(func(int, int) (string, error)); ok {
		return rf(restaurantID, tableNumber)
	}
	if rf, ok := ret.Get(0).(func(int, int) string); ok {
		r0 = rf(restaurantID, tableNumber)
	} else {
		r0 = ret.Get(0).(string)
	}

	if rf, ok := ret.Get(1).(func(int, int) error); ok {
		r1 = rf(restaurantID, tableNumber)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// PNG provides a mock function with given fields: restaurantID, tableNumber
func (_m *TableQRInterface) PNG(restaurantID int, tableNumber int) ([]byte, error) {
	ret := _m.Called(restaurantID, tableNumber)

	if len(ret) == 0 {
		panic("no return value specified for PNG")
	}

	var r0 []byte
	var r1 error
	if rf, ok := ret.Get(0).(func(int, int) ([]byte, error)); ok {
		return rf(restaurantID, tableNumber)
	}
	if rf, ok := ret.Get(0).(func(int, int) []byte); ok {
		r0 = rf(restaurantID, tableNumber)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]byte)
		}
	}

	if rf, ok := ret.Get(1).(func(int, int) error); ok {
		r1 = rf(restaurantID, tableNumber)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Verify provides a mock function with given fields: token
func (_m *TableQRInterface) Verify(token string) (int, int, error) {
	ret := _m.Called(token)

	if len(ret) == 0 {
		panic("no return value specified for Verify")
	}

	var r0 int
	var r1 int
	var r2 error
	if rf, ok := ret.Get(0).(func(string) (int, int, error)); ok {
		return rf(token)
	}
	if rf, ok := ret.Get(0).(func(string) int); ok {
		r0 = rf(token)
	} else {
		r0 = ret.Get(0).(int)
	}

	if rf, ok := ret.Get(1).(func(string) int); ok {
		r1 = rf(token)
	} else {
		r1 = ret.Get(1).(int)
	}

	if rf, ok := ret.Get(2).(func(string) error); ok {
		r2 = rf(token)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// NewTableQRInterface creates a new instance of TableQRInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewTableQRInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *TableQRInterface {
	mock := &TableQRInterface{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
