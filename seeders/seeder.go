package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedDictionaries наполняет справочники: зоны, номенклатуру, технику
// с двигателями и синонимами.
func SeedDictionaries(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("🌱 Сидирование справочников...")

	if err := seedZones(ctx, db); err != nil {
		log.Fatalf("Ошибка сидирования зон: %v", err)
	}
	if err := seedSkus(ctx, db); err != nil {
		log.Fatalf("Ошибка сидирования номенклатуры: %v", err)
	}
	if err := seedTechniques(ctx, db); err != nil {
		log.Fatalf("Ошибка сидирования техники: %v", err)
	}

	log.Println("✅ Справочники наполнены.")
}

// SeedRules наполняет демонстрационные правила расчета.
// Зависит от справочников.
func SeedRules(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("🌱 Сидирование правил расчета...")

	if err := seedRules(ctx, db); err != nil {
		log.Fatalf("Ошибка сидирования правил: %v", err)
	}

	log.Println("✅ Правила наполнены.")
}

// SeedUsers создает стартовых пользователей admin/manager/sklad.
func SeedUsers(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("🌱 Сидирование пользователей...")

	if err := seedUsers(ctx, db); err != nil {
		log.Fatalf("Ошибка сидирования пользователей: %v", err)
	}

	log.Println("✅ Пользователи созданы.")
}
