package service

import (
	"context"
	"fmt"

	"tableside/order-svc/internal/domain"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 100
)

type BoardService struct {
	repo         BoardRepository
	historyLimit int
}

func NewBoardService(repo BoardRepository, historyLimit int) *BoardService {
	switch {
	case historyLimit <= 0:
		historyLimit = DefaultHistoryLimit
	case historyLimit > MaxHistoryLimit:
		historyLimit = MaxHistoryLimit
	}
	return &BoardService{repo: repo, historyLimit: historyLimit}
}

func (s *BoardService) ListActive(ctx context.Context, restaurantID int) ([]domain.Order, error) {
	return s.repo.ListActiveOrders(ctx, restaurantID)
}

// ListHistory returns served and cancelled orders, most recent first. A
// non-positive limit means the configured default.
func (s *BoardService) ListHistory(ctx context.Context, restaurantID, limit int) ([]domain.Order, error) {
	return s.repo.ListTerminalOrders(ctx, restaurantID, s.clamp(limit))
}

func (s *BoardService) Board(ctx context.Context, restaurantID int) (*domain.Board, error) {
	active, err := s.repo.ListActiveOrders(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active orders: %w", err)
	}
	history, err := s.repo.ListTerminalOrders(ctx, restaurantID, s.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list order history: %w", err)
	}

	board := &domain.Board{
		RestaurantID: restaurantID,
		Active:       make([]domain.BoardCard, 0, len(active)),
		History:      history,
	}
	for _, order := range active {
		board.Active = append(board.Active, Card(order))
	}
	return board, nil
}

// Card offers only the single next forward step plus cancel.
func Card(order domain.Order) domain.BoardCard {
	card := domain.BoardCard{Order: order, CanCancel: order.Status.IsActive()}
	if next, ok := order.Status.NextStatus(); ok {
		card.NextStatus = &next
	}
	return card
}

func (s *BoardService) clamp(limit int) int {
	switch {
	case limit <= 0:
		return s.historyLimit
	case limit > MaxHistoryLimit:
		return MaxHistoryLimit
	default:
		return limit
	}
}
