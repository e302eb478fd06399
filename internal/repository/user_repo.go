package repository

import (
	"context"

	"social-api/internal/domain"
)

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	AdjustFollow(ctx context.Context, id string, delta int) (int, error)
}

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool DBTX
}

func NewPgUserRepository(pool DBTX) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (id, name, email, password_hash, confirmation_hash, follow, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.ConfirmationHash,
		user.Follow,
		user.CreatedAt,
	)
	return classify(err)
}

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	const query = `
		SELECT id, name, email, password_hash, confirmation_hash, follow, created_at
		FROM users
		WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `
		SELECT id, name, email, password_hash, confirmation_hash, follow, created_at
		FROM users
		WHERE email = $1
	`
	return r.getOne(ctx, query, email)
}

// AdjustFollow aplica delta al contador en una sola sentencia y devuelve el valor nuevo.
// No hay piso: el contador puede quedar negativo.
func (r *PgUserRepository) AdjustFollow(ctx context.Context, id string, delta int) (int, error) {
	const query = `
		UPDATE users
		SET follow = follow + $2
		WHERE id = $1
		RETURNING follow
	`
	var follow int
	if err := r.pool.QueryRow(ctx, query, id, delta).Scan(&follow); err != nil {
		return 0, err
	}
	return follow, nil
}

func (r *PgUserRepository) getOne(ctx context.Context, query string, arg string) (domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.ConfirmationHash,
		&u.Follow,
		&u.CreatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}
