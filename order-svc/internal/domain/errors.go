package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrTransitionRejected = errors.New("transition rejected")
	ErrPartialWrite       = errors.New("order recorded but line items may be incomplete")
	ErrEventsMissed       = errors.New("status events may have been missed")

	ErrRestaurantNotFound = fmt.Errorf("restaurant %w", ErrNotFound)
	ErrTableNotFound      = fmt.Errorf("table %w", ErrNotFound)
	ErrOrderNotFound      = fmt.Errorf("order %w", ErrNotFound)
)

type LineError struct {
	MenuItemID int    `json:"menu_item_id"`
	Reason     string `json:"reason"`
}

type ValidationError struct {
	Reason string      `json:"reason"`
	Lines  []LineError `json:"lines,omitempty"`
}

func (e *ValidationError) Error() string {
	if len(e.Lines) == 0 {
		return e.Reason
	}
	parts := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		parts = append(parts, fmt.Sprintf("item %d: %s", l.MenuItemID, l.Reason))
	}
	return e.Reason + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

type TransitionError struct {
	OrderID int
	From    OrderStatus
	To      OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("order %d: cannot move from %s to %s", e.OrderID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrTransitionRejected }

// ConflictError is returned when the order kept changing under a transition
// request. Current is the state read after giving up.
type ConflictError struct {
	OrderID int
	Current OrderStatus
	To      OrderStatus
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("order %d changed while applying %s and is now %s; reload and retry", e.OrderID, e.To, e.Current)
}

func (e *ConflictError) Unwrap() error { return ErrTransitionRejected }

// PartialWriteError is returned by repositories that committed the order
// header but failed on one or more line items.
type PartialWriteError struct {
	Order   *Order
	Written int
	Err     error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("order %d: wrote %d of %d items: %v", e.Order.ID, e.Written, len(e.Order.Items), e.Err)
}

func (e *PartialWriteError) Unwrap() []error { return []error{ErrPartialWrite, e.Err} }
