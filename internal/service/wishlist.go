package service

import (
	"context"
	"errors"

	"artisan_market/internal/apperr"
	"artisan_market/internal/domain"
	"artisan_market/internal/repository"
)

// WishlistView is a wishlist with its saved listings
type WishlistView struct {
	ID     uint                    `json:"id"`
	UserID uint                    `json:"userId"`
	Items  []repository.ArtSummary `json:"items"`
}

// WishlistService mutates a user's wishlist
type WishlistService struct {
	wishlists repository.WishlistRepository
	arts      repository.ArtRepository
}

func NewWishlistService(wishlists repository.WishlistRepository, arts repository.ArtRepository) *WishlistService {
	return &WishlistService{wishlists: wishlists, arts: arts}
}

// Get returns the wishlist, creating an empty one on first access
func (s *WishlistService) Get(ctx context.Context, userID uint) (*WishlistView, error) {
	wl, err := s.wishlists.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("Error fetching wishlist", err)
	}
	return s.view(ctx, wl, "Error fetching wishlist")
}

// Add saves artID once; saving it again is a no-op
func (s *WishlistService) Add(ctx context.Context, userID, artID uint) (*WishlistView, error) {
	if err := ensureArt(ctx, s.arts, artID); err != nil {
		return nil, err
	}
	wl, err := s.wishlists.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("Error adding to wishlist", err)
	}
	if !wl.Contains(artID) {
		if err := s.wishlists.AddItem(ctx, wl.ID, artID); err != nil {
			return nil, apperr.Internal("Error adding to wishlist", err)
		}
	}
	return s.view(ctx, wl, "Error adding to wishlist")
}

// Remove drops artID from the wishlist
func (s *WishlistService) Remove(ctx context.Context, userID, artID uint) (*WishlistView, error) {
	wl, err := s.wishlists.FindByUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("Wishlist not found")
	} else if err != nil {
		return nil, apperr.Internal("Error removing from wishlist", err)
	}
	if err := s.wishlists.RemoveItem(ctx, wl.ID, artID); err != nil {
		return nil, apperr.Internal("Error removing from wishlist", err)
	}
	return s.view(ctx, wl, "Error removing from wishlist")
}

// Clear empties the wishlist if the user has one
func (s *WishlistService) Clear(ctx context.Context, userID uint) error {
	wl, err := s.wishlists.FindByUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	} else if err != nil {
		return apperr.Internal("Error clearing wishlist", err)
	}
	if err := s.wishlists.ClearItems(ctx, wl.ID); err != nil {
		return apperr.Internal("Error clearing wishlist", err)
	}
	return nil
}

func (s *WishlistService) view(ctx context.Context, wl *domain.Wishlist, failMsg string) (*WishlistView, error) {
	entries, err := s.wishlists.Entries(ctx, wl.ID)
	if err != nil {
		return nil, apperr.Internal(failMsg, err)
	}
	return &WishlistView{ID: wl.ID, UserID: wl.UserID, Items: entries}, nil
}
