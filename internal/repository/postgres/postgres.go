package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prashantgrg01/funcards-backend/internal/domain"
	"github.com/prashantgrg01/funcards-backend/internal/repository"
)

const uniqueViolationCode = "23505"

// Repository implements persistence interfaces on PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// New constructs a Repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ensure Repository satisfies interfaces.
var (
	_ repository.UserRepository = (*Repository)(nil)
	_ repository.CardRepository = (*Repository)(nil)
)

// CreateUser inserts a user together with its initial token set.
func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	const query = `INSERT INTO users (id, first_name, last_name, email, password_hash, tokens, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	tokens, err := marshalTokens(user.Tokens)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, query, user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash, tokens, user.CreatedAt)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	return err
}

// GetUserByEmail fetches a user by email.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT id, first_name, last_name, email, password_hash, tokens, created_at
		FROM users WHERE email = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

// GetUserByID retrieves a user by identifier.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT id, first_name, last_name, email, password_hash, tokens, created_at
		FROM users WHERE id = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

// ReplaceUserTokens overwrites the stored token set. The set is a
// single jsonb document, so two concurrent read-then-replace cycles
// for the same user follow last-write-wins semantics.
func (r *Repository) ReplaceUserTokens(ctx context.Context, id string, tokens domain.TokenSet) error {
	const query = `UPDATE users SET tokens = $2 WHERE id = $1`
	payload, err := marshalTokens(tokens)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, query, id, payload)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *Repository) scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var tokens []byte
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &tokens, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if len(tokens) > 0 {
		if err := json.Unmarshal(tokens, &u.Tokens); err != nil {
			return nil, fmt.Errorf("decode token set: %w", err)
		}
	}
	return &u, nil
}

// CreateCard inserts a card.
func (r *Repository) CreateCard(ctx context.Context, card *domain.Card) error {
	const query = `INSERT INTO cards (id, title, function_name, description, parameters, example_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query, card.ID, card.Title, card.FunctionName, card.Description, card.Parameters, card.ExampleCode, card.CreatedAt)
	return err
}

// GetCardByID fetches a single card.
func (r *Repository) GetCardByID(ctx context.Context, id string) (*domain.Card, error) {
	const query = `SELECT id, title, function_name, description, parameters, example_code, created_at
		FROM cards WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	var c domain.Card
	if err := row.Scan(&c.ID, &c.Title, &c.FunctionName, &c.Description, &c.Parameters, &c.ExampleCode, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListCards returns every card, newest first.
func (r *Repository) ListCards(ctx context.Context) ([]domain.Card, error) {
	const query = `SELECT id, title, function_name, description, parameters, example_code, created_at
		FROM cards ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := make([]domain.Card, 0)
	for rows.Next() {
		var c domain.Card
		if err := rows.Scan(&c.ID, &c.Title, &c.FunctionName, &c.Description, &c.Parameters, &c.ExampleCode, &c.CreatedAt); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// UpdateCard replaces the mutable card fields.
func (r *Repository) UpdateCard(ctx context.Context, card *domain.Card) error {
	const query = `UPDATE cards SET title = $2, function_name = $3, description = $4, parameters = $5, example_code = $6
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, card.ID, card.Title, card.FunctionName, card.Description, card.Parameters, card.ExampleCode)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteCard removes a card.
func (r *Repository) DeleteCard(ctx context.Context, id string) error {
	const query = `DELETE FROM cards WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func marshalTokens(tokens domain.TokenSet) ([]byte, error) {
	if tokens == nil {
		tokens = domain.TokenSet{}
	}
	payload, err := json.Marshal(tokens)
	if err != nil {
		return nil, fmt.Errorf("encode token set: %w", err)
	}
	return payload, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
