package repositories

import (
	"context"
	"errors"
	"fmt"

	"quote-system/internal/entities"
	apperrors "quote-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepositoryInterface interface {
	FindByLogin(ctx context.Context, login string) (*entities.User, error)
	FindByID(ctx context.Context, id uint64) (*entities.User, error)
	CreateUser(ctx context.Context, user entities.User) (int, error)
	GetUsers(ctx context.Context, limit, offset uint64) ([]entities.User, uint64, error)
	SetActive(ctx context.Context, id uint64, active bool) error
}

type UserRepository struct {
	storage *pgxpool.Pool
}

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &UserRepository{storage: storage}
}

func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*entities.User, error) {
	var u entities.User
	err := r.storage.QueryRow(ctx, `
		SELECT id, login, password_hash, role, is_active
		FROM users WHERE login = $1`, login).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска пользователя по логину: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	var u entities.User
	err := r.storage.QueryRow(ctx, `
		SELECT id, login, password_hash, role, is_active
		FROM users WHERE id = $1`, id).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска пользователя: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user entities.User) (int, error) {
	var id int
	err := r.storage.QueryRow(ctx, `
		INSERT INTO users (login, password_hash, role, is_active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING id`, user.Login, user.PasswordHash, user.Role).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания пользователя: %w", err)
	}
	return id, nil
}

func (r *UserRepository) GetUsers(ctx context.Context, limit, offset uint64) ([]entities.User, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета пользователей: %w", err)
	}

	rows, err := r.storage.Query(ctx, `
		SELECT id, login, password_hash, role, is_active
		FROM users
		ORDER BY id
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения пользователей: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		var u entities.User
		if err := rows.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.IsActive); err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования пользователя: %w", err)
		}
		users = append(users, u)
	}
	return users, total, nil
}

func (r *UserRepository) SetActive(ctx context.Context, id uint64, active bool) error {
	tag, err := r.storage.Exec(ctx, `UPDATE users SET is_active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("ошибка изменения активности пользователя: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
