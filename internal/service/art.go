package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"artisan_market/internal/apperr"
	"artisan_market/internal/domain"
	"artisan_market/internal/repository"
	"artisan_market/internal/utils"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// relatedLimit caps the related listings shown on a detail page
const relatedLimit = 4

// ArtInput carries the fields of a new listing
type ArtInput struct {
	Title       string
	Description string
	Price       float64
	Category    string
	ImageURL    string
}

// ArtUpdate carries the fields to change; nil fields are left alone
type ArtUpdate struct {
	Title       *string
	Description *string
	Price       *float64
	Category    *string
	ImageURL    *string
}

// ArtPage is a listing detail with related listings
type ArtPage struct {
	Art        repository.ArtDetail    `json:"art"`
	RelatedArt []repository.ArtSummary `json:"relatedArt"`
}

// ArtService manages listings and their read caches
type ArtService struct {
	arts repository.ArtRepository
	rdb  *redis.Client
	ttl  time.Duration
}

// NewArtService creates an ArtService. rdb may be nil to disable caching.
func NewArtService(arts repository.ArtRepository, rdb *redis.Client, ttl time.Duration) *ArtService {
	return &ArtService{arts: arts, rdb: rdb, ttl: ttl}
}

// List returns every listing, newest first
func (s *ArtService) List(ctx context.Context) ([]repository.ArtSummary, error) {
	var cached []repository.ArtSummary
	if s.cached(ctx, utils.ArtListCacheKey, &cached) {
		return cached, nil
	}
	rows, err := s.arts.ListSummaries(ctx)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch artworks", err)
	}
	s.store(ctx, utils.ArtListCacheKey, rows)
	return rows, nil
}

// Page returns one listing with its artist and up to four related listings
func (s *ArtService) Page(ctx context.Context, id uint) (*ArtPage, error) {
	key := utils.ArtDetailCacheKey(id)
	var cached ArtPage
	if s.cached(ctx, key, &cached) {
		return &cached, nil
	}
	detail, err := s.arts.Detail(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("Artwork not found")
	} else if err != nil {
		return nil, apperr.Internal("Error fetching artwork", err)
	}
	related, err := s.arts.Related(ctx, detail.Category, id, relatedLimit)
	if err != nil {
		return nil, apperr.Internal("Error fetching artwork", err)
	}
	page := &ArtPage{Art: *detail, RelatedArt: related}
	s.store(ctx, key, page)
	return page, nil
}

// Create adds a listing owned by artistID
func (s *ArtService) Create(ctx context.Context, artistID uint, in ArtInput) (*domain.Art, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || in.ImageURL == "" || in.Category == "" {
		return nil, apperr.Validation("Missing required fields")
	}
	if in.Price <= 0 {
		return nil, apperr.Validation("Price must be greater than zero")
	}
	if !domain.IsValidCategory(in.Category) {
		return nil, apperr.Validation("Invalid category")
	}
	art := &domain.Art{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		ArtistID:    artistID,
	}
	if err := s.arts.Create(ctx, art); err != nil {
		return nil, apperr.Internal("Failed to create artwork", err)
	}
	s.invalidate(ctx, art.ID, artistID)
	logrus.WithFields(logrus.Fields{
		"art_id":    art.ID,
		"artist_id": artistID,
	}).Info("Artwork created")
	return art, nil
}

// Update changes a listing owned by artistID
func (s *ArtService) Update(ctx context.Context, artistID, id uint, in ArtUpdate) (*domain.Art, error) {
	if _, err := s.owned(ctx, artistID, id, "edit"); err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apperr.Validation("Title cannot be empty")
		}
		fields["title"] = title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return nil, apperr.Validation("Price must be greater than zero")
		}
		fields["price"] = *in.Price
	}
	if in.Category != nil {
		if !domain.IsValidCategory(*in.Category) {
			return nil, apperr.Validation("Invalid category")
		}
		fields["category"] = *in.Category
	}
	if in.ImageURL != nil && *in.ImageURL != "" {
		fields["image_url"] = *in.ImageURL
	}
	art, err := s.arts.Update(ctx, id, fields)
	if err != nil {
		return nil, apperr.Internal("Error updating artwork", err)
	}
	s.invalidate(ctx, id, artistID)
	return art, nil
}

// Delete removes a listing owned by artistID. Purchases of it keep their snapshot.
func (s *ArtService) Delete(ctx context.Context, artistID, id uint) error {
	if _, err := s.owned(ctx, artistID, id, "delete"); err != nil {
		return err
	}
	if err := s.arts.Delete(ctx, id); errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("Artwork not found")
	} else if err != nil {
		return apperr.Internal("Error deleting artwork", err)
	}
	s.invalidate(ctx, id, artistID)
	logrus.WithFields(logrus.Fields{
		"art_id":    id,
		"artist_id": artistID,
	}).Info("Artwork deleted")
	return nil
}

func (s *ArtService) owned(ctx context.Context, artistID, id uint, verb string) (*domain.Art, error) {
	art, err := s.arts.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("Artwork not found")
	} else if err != nil {
		return nil, apperr.Internal("Error loading artwork", err)
	}
	if art.ArtistID != artistID {
		return nil, apperr.Forbidden("You can only " + verb + " your own artwork")
	}
	return art, nil
}

func (s *ArtService) cached(ctx context.Context, key string, dest any) bool {
	hit, err := utils.GetCache(ctx, s.rdb, key, dest)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cache read failed")
		return false
	}
	return hit
}

func (s *ArtService) store(ctx context.Context, key string, value any) {
	if err := utils.SetCache(ctx, s.rdb, key, value, s.ttl); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
}

// invalidate drops every cached view a listing write can change.
// Related lists on other detail pages expire with their TTL.
func (s *ArtService) invalidate(ctx context.Context, artID, artistID uint) {
	keys := []string{utils.ArtListCacheKey, utils.ArtDetailCacheKey(artID), utils.ArtistStatsCacheKey(artistID)}
	if err := utils.DeleteCache(ctx, s.rdb, keys...); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate art cache")
	}
}
