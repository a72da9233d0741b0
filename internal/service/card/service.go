package card

import (
	"context"
	"errors"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/prashantgrg01/funcards-backend/internal/domain"
	"github.com/prashantgrg01/funcards-backend/internal/repository"
)

var (
	errMissingTitle       = errors.New("title is required")
	errMissingFunction    = errors.New("function name is required")
	errMissingDescription = errors.New("description is required")
)

// Service orchestrates card management.
type Service struct {
	cards  repository.CardRepository
	logger *slog.Logger
}

// New returns a card service.
func New(cards repository.CardRepository, logger *slog.Logger) Service {
	return Service{cards: cards, logger: logger}
}

// CreateInput encapsulates card creation attributes.
type CreateInput struct {
	Title        string   `json:"title"`
	FunctionName string   `json:"function_name"`
	Description  string   `json:"description"`
	Parameters   []string `json:"parameters"`
	ExampleCode  string   `json:"example_code"`
}

// UpdateInput holds a partial card update; nil fields are left as is.
type UpdateInput struct {
	Title        *string  `json:"title"`
	FunctionName *string  `json:"function_name"`
	Description  *string  `json:"description"`
	Parameters   []string `json:"parameters"`
	ExampleCode  *string  `json:"example_code"`
}

// Create stores a new card.
func (s Service) Create(ctx context.Context, input CreateInput) (*domain.Card, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, errMissingTitle
	}
	if strings.TrimSpace(input.FunctionName) == "" {
		return nil, errMissingFunction
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, errMissingDescription
	}
	card := &domain.Card{
		ID:           uuid.NewString(),
		Title:        input.Title,
		FunctionName: input.FunctionName,
		Description:  input.Description,
		Parameters:   input.Parameters,
		ExampleCode:  input.ExampleCode,
		CreatedAt:    time.Now().UTC(),
	}
	if card.Parameters == nil {
		card.Parameters = []string{}
	}
	if err := s.cards.CreateCard(ctx, card); err != nil {
		return nil, err
	}
	s.logger.Info("card created", "card_id", card.ID)
	return card, nil
}

// Get fetches a single card.
func (s Service) Get(ctx context.Context, id string) (*domain.Card, error) {
	return s.cards.GetCardByID(ctx, id)
}

// List returns all cards, newest first.
func (s Service) List(ctx context.Context) ([]domain.Card, error) {
	return s.cards.ListCards(ctx)
}

// Update applies the provided fields to an existing card.
func (s Service) Update(ctx context.Context, id string, input UpdateInput) (*domain.Card, error) {
	card, err := s.cards.GetCardByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		card.Title = *input.Title
	}
	if input.FunctionName != nil {
		card.FunctionName = *input.FunctionName
	}
	if input.Description != nil {
		card.Description = *input.Description
	}
	if input.Parameters != nil {
		card.Parameters = input.Parameters
	}
	if input.ExampleCode != nil {
		card.ExampleCode = *input.ExampleCode
	}
	if err := s.cards.UpdateCard(ctx, card); err != nil {
		return nil, err
	}
	s.logger.Info("card updated", "card_id", card.ID)
	return card, nil
}

// Delete removes a card.
func (s Service) Delete(ctx context.Context, id string) error {
	if err := s.cards.DeleteCard(ctx, id); err != nil {
		return err
	}
	s.logger.Info("card deleted", "card_id", id)
	return nil
}
