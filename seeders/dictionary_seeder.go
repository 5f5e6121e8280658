package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedZones(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'zones'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, z := range zonesData {
		if _, err := tx.Exec(ctx, `
			INSERT INTO zones (code, title_ru, active) VALUES ($1, $2, TRUE)
			ON CONFLICT (code) DO NOTHING`, z.Code, z.TitleRu); err != nil {
			log.Printf("Ошибка при вставке зоны '%s': %v", z.Code, err)
			return err
		}
	}

	return tx.Commit(ctx)
}

func seedSkus(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'sku'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, s := range skusData {
		if _, err := tx.Exec(ctx, `
			INSERT INTO sku (code, name, unit, active) VALUES ($1, $2, $3, TRUE)
			ON CONFLICT (code) DO NOTHING`, s.Code, s.Name, s.Unit); err != nil {
			log.Printf("Ошибка при вставке СКЮ '%s': %v", s.Code, err)
			return err
		}
	}

	return tx.Commit(ctx)
}

func seedTechniques(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблиц 'technique', 'engine_option', 'technique_alias'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, t := range techniquesData {
		var techniqueID int
		err := tx.QueryRow(ctx, `
			SELECT id FROM technique WHERE manufacturer = $1 AND model = $2`,
			t.Manufacturer, t.Model).Scan(&techniqueID)
		if err != nil {
			if err := tx.QueryRow(ctx, `
				INSERT INTO technique (manufacturer, model, series, active)
				VALUES ($1, $2, $3, TRUE)
				RETURNING id`, t.Manufacturer, t.Model, t.Series).Scan(&techniqueID); err != nil {
				log.Printf("Ошибка при вставке техники '%s %s': %v", t.Manufacturer, t.Model, err)
				return err
			}
		}

		for _, e := range t.Engines {
			if _, err := tx.Exec(ctx, `
				INSERT INTO engine_option (technique_id, engine_name, year_from, year_to, source, active)
				SELECT $1, $2, $3, $4, 'seed', TRUE
				WHERE NOT EXISTS (
					SELECT 1 FROM engine_option WHERE technique_id = $1 AND engine_name = $2
				)`, techniqueID, e.EngineName, e.YearFrom, e.YearTo); err != nil {
				log.Printf("Ошибка при вставке двигателя '%s': %v", e.EngineName, err)
				return err
			}
		}

		for _, a := range t.Aliases {
			if _, err := tx.Exec(ctx, `
				INSERT INTO technique_alias (alias_text, technique_id)
				SELECT $1, $2
				WHERE NOT EXISTS (
					SELECT 1 FROM technique_alias WHERE alias_text = $1 AND technique_id = $2
				)`, a, techniqueID); err != nil {
				log.Printf("Ошибка при вставке синонима '%s': %v", a, err)
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

func seedRules(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'rules'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, r := range rulesData {
		var techniqueID int
		if err := tx.QueryRow(ctx, `
			SELECT id FROM technique WHERE manufacturer = $1 AND model = $2`,
			r.Manufacturer, r.Model).Scan(&techniqueID); err != nil {
			log.Printf("Техника '%s %s' для правила не найдена: %v", r.Manufacturer, r.Model, err)
			return err
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO rules (technique_id, conditions_json, actions_json, version, active)
			SELECT $1, $2::jsonb, $3::jsonb, 1, TRUE
			WHERE NOT EXISTS (
				SELECT 1 FROM rules
				WHERE technique_id = $1 AND conditions_json = $2::jsonb AND actions_json = $3::jsonb
			)`, techniqueID, r.ConditionsJSON, r.ActionsJSON); err != nil {
			log.Printf("Ошибка при вставке правила для техники %d: %v", techniqueID, err)
			return err
		}
	}

	return tx.Commit(ctx)
}
