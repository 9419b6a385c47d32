package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"daily-quest/internal/model"
)

// QuoteRepository stores motivational quotes.
type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// GetOrCreate inserts the quote unless one with the same text exists.
func (r *QuoteRepository) GetOrCreate(ctx context.Context, quote model.Quote) (*model.Quote, error) {
	var existing model.Quote
	db := r.db.WithContext(ctx)
	err := db.Where("text = ?", quote.Text).First(&existing).Error
	switch {
	case err == nil:
		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := db.Create(&quote).Error; err != nil {
			return nil, fmt.Errorf("create quote: %w", err)
		}
		return &quote, nil
	default:
		return nil, fmt.Errorf("find quote: %w", err)
	}
}

func (r *QuoteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Quote{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count quotes: %w", err)
	}
	return n, nil
}

// At returns the quote at the given offset in id order.
func (r *QuoteRepository) At(ctx context.Context, offset int) (*model.Quote, error) {
	var quote model.Quote
	if err := r.db.WithContext(ctx).Order("id ASC").Offset(offset).Take(&quote).Error; err != nil {
		return nil, fmt.Errorf("find quote: %w", err)
	}
	return &quote, nil
}
