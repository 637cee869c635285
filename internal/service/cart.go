package service

import (
	"context"
	"errors"

	"artisan_market/internal/apperr"
	"artisan_market/internal/domain"
	"artisan_market/internal/repository"
)

// CartView is a cart with every line joined to its listing
type CartView struct {
	ID     uint                  `json:"id"`
	UserID uint                  `json:"userId"`
	Items  []repository.CartLine `json:"items"`
}

// CartService mutates a user's cart
type CartService struct {
	carts repository.CartRepository
	arts  repository.ArtRepository
}

func NewCartService(carts repository.CartRepository, arts repository.ArtRepository) *CartService {
	return &CartService{carts: carts, arts: arts}
}

// Get returns the cart, creating an empty one on first access
func (s *CartService) Get(ctx context.Context, userID uint) (*CartView, error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("Error fetching cart", err)
	}
	return s.view(ctx, cart, "Error fetching cart")
}

// Add puts one unit of artID in the cart, bumping the line if it is already there
func (s *CartService) Add(ctx context.Context, userID, artID uint) (*CartView, error) {
	if err := ensureArt(ctx, s.arts, artID); err != nil {
		return nil, err
	}
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("Error adding to cart", err)
	}
	if err := s.carts.AddUnit(ctx, cart.ID, artID); err != nil {
		return nil, apperr.Internal("Error adding to cart", err)
	}
	return s.view(ctx, cart, "Error adding to cart")
}

// UpdateQuantity overwrites the quantity of an existing line
func (s *CartService) UpdateQuantity(ctx context.Context, userID, artID uint, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, apperr.Validation("Quantity must be at least 1")
	}
	cart, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	item := cart.Find(artID)
	if item == nil {
		return nil, apperr.NotFound("Item not found in cart")
	}
	if err := s.carts.UpdateItemQuantity(ctx, item.ID, quantity); err != nil {
		return nil, apperr.Internal("Error updating cart", err)
	}
	return s.view(ctx, cart, "Error updating cart")
}

// Remove drops the line for artID. Removing an absent line is not an error.
func (s *CartService) Remove(ctx context.Context, userID, artID uint) (*CartView, error) {
	cart, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.carts.RemoveItem(ctx, cart.ID, artID); err != nil {
		return nil, apperr.Internal("Error removing from cart", err)
	}
	return s.view(ctx, cart, "Error removing from cart")
}

// Clear empties the cart if the user has one
func (s *CartService) Clear(ctx context.Context, userID uint) error {
	cart, err := s.carts.FindByUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	} else if err != nil {
		return apperr.Internal("Error clearing cart", err)
	}
	if err := s.carts.ClearItems(ctx, cart.ID); err != nil {
		return apperr.Internal("Error clearing cart", err)
	}
	return nil
}

func (s *CartService) find(ctx context.Context, userID uint) (*domain.Cart, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("Cart not found")
	} else if err != nil {
		return nil, apperr.Internal("Error updating cart", err)
	}
	return cart, nil
}

func (s *CartService) view(ctx context.Context, cart *domain.Cart, failMsg string) (*CartView, error) {
	lines, err := s.carts.Lines(ctx, cart.ID)
	if err != nil {
		return nil, apperr.Internal(failMsg, err)
	}
	return &CartView{ID: cart.ID, UserID: cart.UserID, Items: lines}, nil
}

func ensureArt(ctx context.Context, arts repository.ArtRepository, artID uint) error {
	_, err := arts.FindByID(ctx, artID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("Artwork not found")
	} else if err != nil {
		return apperr.Internal("Error loading artwork", err)
	}
	return nil
}
