package store

import (
	"context"
	"database/sql"

	entsql "entgo.io/ent/dialect/sql"
)

const directionKey = "learning_direction"

// settingsRepo implements SettingsRepo.
type settingsRepo struct {
	s *Store
}

func (r *settingsRepo) LearningDirection(ctx context.Context) (Direction, error) {
	query, args := builder.Select("value").
		From(builder.Table("settings")).
		Where(entsql.EQ("key", directionKey)).
		Query()
	var rows entsql.Rows
	if err := r.s.drv.Query(ctx, query, args, &rows); err != nil {
		return DefaultDirection, mapError("learning direction", err)
	}
	defer rows.Close()

	var raw sql.NullString
	if !rows.Next() {
		return DefaultDirection, mapError("learning direction", rows.Err())
	}
	if err := rows.Scan(&raw); err != nil {
		return DefaultDirection, mapError("learning direction", err)
	}
	if !raw.Valid {
		return DefaultDirection, nil
	}
	d, err := ParseDirection(raw.String)
	if err != nil {
		r.s.logger.Warn("ignoring stored learning direction", "value", raw.String, "default", DefaultDirection.String())
		return DefaultDirection, nil
	}
	return d, nil
}

func (r *settingsRepo) SetLearningDirection(ctx context.Context, d Direction) error {
	_, err := exec(ctx, r.s.drv, builder.Insert("settings").
		Columns("key", "value").
		Values(directionKey, d.String()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		))
	return mapError("set learning direction", err)
}
