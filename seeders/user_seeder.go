package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// seedUsers создает стартовые учетные записи. Пароли из usersData
// предназначены только для локальной разработки.
func seedUsers(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'users'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, u := range usersData {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO users (login, password_hash, role, is_active)
			VALUES ($1, $2, $3, TRUE)
			ON CONFLICT (login) DO NOTHING`, u.Login, string(hash), u.Role); err != nil {
			log.Printf("Ошибка при вставке пользователя '%s': %v", u.Login, err)
			return err
		}
	}

	return tx.Commit(ctx)
}
