package domain

import "fmt"

type OrderStatus string

const (
	StatusReceived  OrderStatus = "received"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusServed    OrderStatus = "served"
	StatusCancelled OrderStatus = "cancelled"
)

var TerminalStatuses = []OrderStatus{StatusServed, StatusCancelled}

var forward = map[OrderStatus]OrderStatus{
	StatusReceived:  StatusPreparing,
	StatusPreparing: StatusReady,
	StatusReady:     StatusServed,
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusReceived, StatusPreparing, StatusReady, StatusServed, StatusCancelled:
		return OrderStatus(s), nil
	default:
		return "", &ValidationError{Reason: fmt.Sprintf("unknown order status %q", s)}
	}
}

func (s OrderStatus) IsTerminal() bool {
	return s == StatusServed || s == StatusCancelled
}

func (s OrderStatus) IsActive() bool {
	return !s.IsTerminal()
}

// NextStatus returns the single forward step, if any.
func (s OrderStatus) NextStatus() (OrderStatus, bool) {
	next, ok := forward[s]
	return next, ok
}

// CanTransition reports whether from -> to is allowed. Re-applying the
// current status is always allowed and is a no-op.
func CanTransition(from, to OrderStatus) bool {
	if from == to {
		return true
	}
	if from.IsTerminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	next, ok := forward[from]
	return ok && next == to
}
