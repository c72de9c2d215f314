package app

import (
	"context"
	"fmt"

	"github.com/cesargomez89/mekkompis/internal/domain"
	"github.com/cesargomez89/mekkompis/internal/logger"
	"github.com/cesargomez89/mekkompis/internal/store"
)

type ShoppingService struct {
	Repo   *store.DB
	Logger *logger.Logger
}

func NewShoppingService(repo *store.DB, log *logger.Logger) *ShoppingService {
	return &ShoppingService{Repo: repo, Logger: log}
}

// Create adds an item (quantity defaults to 1) and returns all items of the job.
func (s *ShoppingService) Create(ctx context.Context, jobID int64, name string, quantity *int64) ([]domain.ShoppingItem, error) {
	if blank(name) {
		return nil, Invalid("Artikelnamn krävs")
	}
	v := &validator{}
	v.quantity(quantity)
	if err := v.err(); err != nil {
		return nil, err
	}

	if _, err := s.Repo.GetJob(ctx, jobID); err != nil {
		return nil, err
	}

	item := &domain.ShoppingItem{JobID: jobID, ItemName: name, Quantity: 1}
	if quantity != nil {
		item.Quantity = *quantity
	}
	if _, err := s.Repo.CreateShoppingItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create shopping item: %w", err)
	}
	return s.Repo.ListShoppingItemsByJob(ctx, jobID)
}

// Update changes only the fields that are provided.
func (s *ShoppingService) Update(ctx context.Context, id int64, name *string, quantity *int64) (*domain.ShoppingItem, error) {
	v := &validator{}
	if name != nil && blank(*name) {
		v.add("item_name", "får inte vara tom")
	}
	v.quantity(quantity)
	if err := v.err(); err != nil {
		return nil, err
	}

	item, err := s.Repo.GetShoppingItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		item.ItemName = *name
	}
	if quantity != nil {
		item.Quantity = *quantity
	}
	if err := s.Repo.UpdateShoppingItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ShoppingService) TogglePurchased(ctx context.Context, id int64) (domain.Flag, error) {
	return s.Repo.ToggleShoppingItemPurchased(ctx, id)
}

func (s *ShoppingService) Delete(ctx context.Context, id int64) error {
	return s.Repo.DeleteShoppingItem(ctx, id)
}
