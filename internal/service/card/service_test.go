package card

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"log/slog"

	"github.com/prashantgrg01/funcards-backend/internal/domain"
	"github.com/prashantgrg01/funcards-backend/internal/repository"
)

func TestCreateRequiresCoreFields(t *testing.T) {
	svc := New(cardRepoMock{}, newLogger())

	cases := []CreateInput{
		{FunctionName: "fmt.Println", Description: "prints"},
		{Title: "Println", Description: "prints"},
		{Title: "Println", FunctionName: "fmt.Println"},
	}
	for _, input := range cases {
		if _, err := svc.Create(context.Background(), input); err == nil {
			t.Fatalf("expected validation error for %+v", input)
		}
	}
}

func TestCreateAssignsIDAndDefaults(t *testing.T) {
	var created *domain.Card
	repo := cardRepoMock{
		createFunc: func(_ context.Context, card *domain.Card) error {
			created = card
			return nil
		},
	}
	svc := New(repo, newLogger())

	card, err := svc.Create(context.Background(), CreateInput{
		Title:        "Println",
		FunctionName: "fmt.Println",
		Description:  "prints its arguments",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil || created.ID == "" {
		t.Fatalf("expected persisted card with assigned id")
	}
	if card.Parameters == nil {
		t.Fatalf("expected empty parameter slice, got nil")
	}
	if card.CreatedAt.IsZero() {
		t.Fatalf("expected creation timestamp")
	}
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	stored := &domain.Card{
		ID:           "card-1",
		Title:        "Println",
		FunctionName: "fmt.Println",
		Description:  "prints its arguments",
		Parameters:   []string{"a ...any"},
		ExampleCode:  `fmt.Println("hi")`,
		CreatedAt:    time.Now().UTC(),
	}
	var updated *domain.Card
	repo := cardRepoMock{
		getFunc: func(_ context.Context, id string) (*domain.Card, error) {
			if id != "card-1" {
				return nil, repository.ErrNotFound
			}
			copied := *stored
			return &copied, nil
		},
		updateFunc: func(_ context.Context, card *domain.Card) error {
			updated = card
			return nil
		},
	}
	svc := New(repo, newLogger())

	newTitle := "Print line"
	result, err := svc.Update(context.Background(), "card-1", UpdateInput{Title: &newTitle})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Title != "Print line" {
		t.Fatalf("expected title updated, got %q", result.Title)
	}
	if updated.FunctionName != stored.FunctionName || updated.Description != stored.Description {
		t.Fatalf("expected untouched fields preserved")
	}
	if updated.ExampleCode != stored.ExampleCode {
		t.Fatalf("expected example code preserved")
	}
}

func TestUpdateMissingCard(t *testing.T) {
	svc := New(cardRepoMock{}, newLogger())

	title := "x"
	if _, err := svc.Update(context.Background(), "ghost", UpdateInput{Title: &title}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type cardRepoMock struct {
	createFunc func(context.Context, *domain.Card) error
	getFunc    func(context.Context, string) (*domain.Card, error)
	listFunc   func(context.Context) ([]domain.Card, error)
	updateFunc func(context.Context, *domain.Card) error
	deleteFunc func(context.Context, string) error
}

func (m cardRepoMock) CreateCard(ctx context.Context, card *domain.Card) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, card)
	}
	return nil
}

func (m cardRepoMock) GetCardByID(ctx context.Context, id string) (*domain.Card, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m cardRepoMock) ListCards(ctx context.Context) ([]domain.Card, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []domain.Card{}, nil
}

func (m cardRepoMock) UpdateCard(ctx context.Context, card *domain.Card) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, card)
	}
	return nil
}

func (m cardRepoMock) DeleteCard(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}
