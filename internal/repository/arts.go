package repository

import (
	"context"

	"artisan_market/internal/domain"

	"gorm.io/gorm"
)

const artSummaryColumns = "arts.id, arts.title, arts.description, arts.price, arts.category, arts.image_url, " +
	"arts.artist_id, COALESCE(users.name, '') AS artist_name, arts.created_at"

// ArtRepo is the GORM-backed ArtRepository
type ArtRepo struct {
	db *gorm.DB
}

// NewArtRepository creates an ArtRepo
func NewArtRepository(db *gorm.DB) *ArtRepo {
	return &ArtRepo{db: db}
}

// Create inserts a listing
func (r *ArtRepo) Create(ctx context.Context, art *domain.Art) error {
	return r.db.WithContext(ctx).Create(art).Error
}

// FindByID loads one listing
func (r *ArtRepo) FindByID(ctx context.Context, id uint) (*domain.Art, error) {
	var art domain.Art
	if err := r.db.WithContext(ctx).First(&art, id).Error; err != nil {
		return nil, translate(err)
	}
	return &art, nil
}

// FindByIDs returns the listings that still exist among ids, each at most once
func (r *ArtRepo) FindByIDs(ctx context.Context, ids []uint) ([]domain.Art, error) {
	var arts []domain.Art
	if len(ids) == 0 {
		return arts, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&arts).Error
	return arts, err
}

func (r *ArtRepo) summaries(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("arts").
		Select(artSummaryColumns).
		Joins("LEFT JOIN users ON users.id = arts.artist_id")
}

// ListSummaries returns every listing, newest first
func (r *ArtRepo) ListSummaries(ctx context.Context) ([]ArtSummary, error) {
	rows := []ArtSummary{}
	err := r.summaries(ctx).Order("arts.created_at DESC, arts.id DESC").Scan(&rows).Error
	return rows, err
}

// Detail returns one listing with its artist's public profile
func (r *ArtRepo) Detail(ctx context.Context, id uint) (*ArtDetail, error) {
	var rows []ArtDetail
	err := r.db.WithContext(ctx).
		Table("arts").
		Select(artSummaryColumns+", COALESCE(users.bio, '') AS artist_bio, COALESCE(users.email, '') AS artist_email").
		Joins("LEFT JOIN users ON users.id = arts.artist_id").
		Where("arts.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// Related returns up to limit other listings in the same category
func (r *ArtRepo) Related(ctx context.Context, category string, excludeID uint, limit int) ([]ArtSummary, error) {
	rows := []ArtSummary{}
	err := r.summaries(ctx).
		Where("arts.category = ? AND arts.id <> ?", category, excludeID).
		Order("arts.created_at DESC, arts.id DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// ListByArtist returns an artist's listings, newest first
func (r *ArtRepo) ListByArtist(ctx context.Context, artistID uint) ([]domain.Art, error) {
	arts := []domain.Art{}
	err := r.db.WithContext(ctx).
		Where("artist_id = ?", artistID).
		Order("created_at DESC, id DESC").
		Find(&arts).Error
	return arts, err
}

// Update applies the given columns and returns the reloaded listing
func (r *ArtRepo) Update(ctx context.Context, id uint, fields map[string]any) (*domain.Art, error) {
	art, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(art).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.FindByID(ctx, id)
}

// Delete removes a listing. Purchases keep their own snapshot and are untouched.
func (r *ArtRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Art{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
