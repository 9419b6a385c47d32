package service

import (
	"context"
	"math/rand"
	"strings"

	"daily-quest/internal/model"
	"daily-quest/internal/repository"
)

// DefaultQuotes seeds an empty quote table.
var DefaultQuotes = []model.Quote{
	{Text: "I alone level up.", Character: "Sung Jin-Woo"},
	{Text: "Daily Quest has been issued. Time Limit: 24 hours.", Character: "System"},
	{Text: "You have been chosen as the Player. Complete all missions to level up.", Character: "System"},
	{Text: "The strong prey on the weak. That is the absolute law of this world.", Character: "Sung Jin-Woo"},
}

// QuoteService hands out motivational quotes.
type QuoteService struct {
	repo *repository.QuoteRepository
	pick func(n int) int
}

func NewQuoteService(repo *repository.QuoteRepository) *QuoteService {
	return &QuoteService{repo: repo, pick: rand.Intn}
}

func (s *QuoteService) Seed(ctx context.Context, quotes []model.Quote) error {
	for _, q := range quotes {
		if _, err := s.Create(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (s *QuoteService) Create(ctx context.Context, quote model.Quote) (*model.Quote, error) {
	quote.Text = strings.TrimSpace(quote.Text)
	if quote.Text == "" {
		return nil, invalid("quote text is required")
	}
	created, err := s.repo.GetOrCreate(ctx, quote)
	if err != nil {
		return nil, translate(err)
	}
	return created, nil
}

// Random returns a uniformly chosen quote, or ErrNotFound when there are none.
func (s *QuoteService) Random(ctx context.Context) (*model.Quote, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return nil, translate(err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	quote, err := s.repo.At(ctx, s.pick(int(n)))
	if err != nil {
		return nil, translate(err)
	}
	return quote, nil
}
