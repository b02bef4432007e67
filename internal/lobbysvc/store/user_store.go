package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/goldenreel/lobby-services/internal/lobbysvc/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserStore struct {
	db *pgxpool.Pool
}

func NewUserStore(db *pgxpool.Pool) *UserStore {
	return &UserStore{db: db}
}

// CreateUser inserts a new account. The id is generated here; timestamps
// come from the store defaults. A duplicate email or username surfaces
// as models.ErrDuplicateUser.
func (s *UserStore) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = uuid.NewString()

	query := `
        INSERT INTO users (id, email, username, name, password)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at;
    `

	err := s.db.QueryRow(ctx, query,
		user.ID, user.Email, user.Username, user.Name, user.Password,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.ErrDuplicateUser
		}
		return fmt.Errorf("could not create user: %w", err)
	}

	return nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, email, username, name, password, created_at, updated_at
        FROM users
        WHERE email = $1
    `, email)

	u := &models.User{}
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.Name,
		&u.Password,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // user not found
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, email, username, name, password, created_at, updated_at
        FROM users
        WHERE id = $1
    `, id)

	u := &models.User{}
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.Name,
		&u.Password,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return u, nil
}

// ExistsByEmailOrUsername reports whether either identity attribute is taken.
func (s *UserStore) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
        SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR username = $2)
    `, email, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}
