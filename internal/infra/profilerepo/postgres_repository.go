package profilerepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/chore-planner/internal/domain/planner"
)

// PostgresRepository persists profiles in Postgres, one JSONB-backed row per
// user. A missing row is the expected not-found branch, not an error.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get fetches the stored profile for a user.
func (r *PostgresRepository) Get(ctx context.Context, userID int64) (planner.PartialProfile, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT chores, items, schedule, has_humidifier, has_air_conditioner, has_dryer
		FROM user_profiles
		WHERE user_id = $1
		LIMIT 1
	`, userID)
	if err != nil {
		return planner.PartialProfile{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return planner.PartialProfile{}, false, rows.Err()
	}

	var (
		choresJSON   []byte
		itemsJSON    []byte
		scheduleJSON []byte
		partial      planner.PartialProfile
	)
	if err := rows.Scan(&choresJSON, &itemsJSON, &scheduleJSON, &partial.HasHumidifier, &partial.HasAirConditioner, &partial.HasDryer); err != nil {
		return planner.PartialProfile{}, false, err
	}
	if err := unmarshalColumn(choresJSON, &partial.Chores); err != nil {
		return planner.PartialProfile{}, false, fmt.Errorf("decode chores column: %w", err)
	}
	if err := unmarshalColumn(itemsJSON, &partial.Items); err != nil {
		return planner.PartialProfile{}, false, fmt.Errorf("decode items column: %w", err)
	}
	if err := unmarshalColumn(scheduleJSON, &partial.Schedule); err != nil {
		return planner.PartialProfile{}, false, fmt.Errorf("decode schedule column: %w", err)
	}
	return partial, true, rows.Err()
}

// Upsert writes the profile row, insert-or-replace, last writer wins.
func (r *PostgresRepository) Upsert(ctx context.Context, userID int64, profile planner.Profile) error {
	choresJSON, err := json.Marshal(profile.Chores)
	if err != nil {
		return fmt.Errorf("encode chores column: %w", err)
	}
	itemsJSON, err := json.Marshal(profile.Items)
	if err != nil {
		return fmt.Errorf("encode items column: %w", err)
	}
	scheduleJSON, err := json.Marshal(profile.Schedule)
	if err != nil {
		return fmt.Errorf("encode schedule column: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO user_profiles (user_id, chores, items, schedule, has_humidifier, has_air_conditioner, has_dryer)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			chores = EXCLUDED.chores,
			items = EXCLUDED.items,
			schedule = EXCLUDED.schedule,
			has_humidifier = EXCLUDED.has_humidifier,
			has_air_conditioner = EXCLUDED.has_air_conditioner,
			has_dryer = EXCLUDED.has_dryer,
			updated_at = now()
	`, userID, choresJSON, itemsJSON, scheduleJSON, profile.HasHumidifier, profile.HasAirConditioner, profile.HasDryer)
	return err
}

// unmarshalColumn leaves dest untouched for NULL columns so absence stays
// distinguishable from an empty list.
func unmarshalColumn(raw []byte, dest any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dest)
}

var _ planner.Repository = (*PostgresRepository)(nil)
