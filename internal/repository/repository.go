package repository

import (
	"context"

	"github.com/prashantgrg01/funcards-backend/internal/domain"
)

// UserRepository persists user accounts and their session state.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	// ReplaceUserTokens overwrites the stored token set in one write.
	ReplaceUserTokens(ctx context.Context, id string, tokens domain.TokenSet) error
}

// CardRepository persists cards.
type CardRepository interface {
	CreateCard(ctx context.Context, card *domain.Card) error
	GetCardByID(ctx context.Context, id string) (*domain.Card, error)
	ListCards(ctx context.Context) ([]domain.Card, error)
	UpdateCard(ctx context.Context, card *domain.Card) error
	DeleteCard(ctx context.Context, id string) error
}
