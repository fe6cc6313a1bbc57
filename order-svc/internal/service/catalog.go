package service

import (
	"context"
	"fmt"

	"tableside/order-svc/internal/domain"

	"go.uber.org/zap"
)

type CatalogService struct {
	repo   CatalogRepository
	cache  MenuCache
	logger *zap.Logger
}

func NewCatalogService(repo CatalogRepository, cache MenuCache, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{repo: repo, cache: cache, logger: logger}
}

// FetchMenu returns active categories and available items only.
func (s *CatalogService) FetchMenu(ctx context.Context, restaurantID int) (*domain.Menu, error) {
	if s.cache != nil {
		menu, ok, err := s.cache.GetMenu(ctx, restaurantID)
		if err != nil {
			s.logger.Warn("Menu cache read failed", zap.Int("restaurant_id", restaurantID), zap.Error(err))
		} else if ok {
			return menu, nil
		}
	}

	if _, err := s.repo.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}

	categories, err := s.repo.ListCategories(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	items, err := s.repo.ListAvailableItems(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}

	menu := &domain.Menu{RestaurantID: restaurantID, Categories: categories, Items: items}

	if s.cache != nil {
		if err := s.cache.SetMenu(ctx, menu); err != nil {
			s.logger.Warn("Menu cache write failed", zap.Int("restaurant_id", restaurantID), zap.Error(err))
		}
	}
	return menu, nil
}

func (s *CatalogService) InvalidateMenu(ctx context.Context, restaurantID int) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.InvalidateMenu(ctx, restaurantID)
}
