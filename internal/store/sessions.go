package store

import (
	"context"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// snapshotQuery copies every term of a set into sessions as unmastered.
const snapshotQuery = `INSERT INTO sessions (set_id, term_id, mastered)
SELECT set_id, id, 0 FROM terms WHERE set_id = ?`

// sessionRepo implements SessionRepo.
type sessionRepo struct {
	s *Store
}

func (r *sessionRepo) SessionExists(ctx context.Context, setID int64) (bool, error) {
	ok, err := sessionExists(ctx, r.s.drv, setID)
	return ok, mapError("session exists", err)
}

func (r *sessionRepo) CreateSessionSnapshot(ctx context.Context, setID int64) error {
	err := r.s.withTx(ctx, func(tx dialect.Tx) error {
		_, err := execRaw(ctx, tx, snapshotQuery, setID)
		return err
	})
	return mapError("create session snapshot", err)
}

func (r *sessionRepo) EnsureSession(ctx context.Context, setID int64) (bool, error) {
	var created bool
	err := r.s.withTx(ctx, func(tx dialect.Tx) error {
		exists, err := sessionExists(ctx, tx, setID)
		if err != nil || exists {
			return err
		}
		if _, err := execRaw(ctx, tx, snapshotQuery, setID); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, mapError("ensure session", err)
	}
	return created, nil
}

func (r *sessionRepo) UnmasteredEntries(ctx context.Context, setID int64) ([]Entry, error) {
	// Join aliases an unaliased table, so both sides are named explicitly.
	s := builder.Table("sessions").As("s")
	t := builder.Table("terms").As("t")
	query, args := builder.Select(t.C("id"), t.C("term"), t.C("definition")).
		From(s).
		Join(t).On(s.C("term_id"), t.C("id")).
		Where(entsql.And(
			entsql.EQ(s.C("set_id"), setID),
			entsql.EQ(s.C("mastered"), false),
		)).
		Query()
	var rows entsql.Rows
	if err := r.s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, mapError("unmastered entries", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.TermID, &e.Term, &e.Definition); err != nil {
			return nil, mapError("unmastered entries", err)
		}
		entries = append(entries, e)
	}
	return entries, mapError("unmastered entries", rows.Err())
}

func (r *sessionRepo) MarkMastered(ctx context.Context, setID, termID int64) error {
	res, err := exec(ctx, r.s.drv, builder.Update("sessions").
		Set("mastered", true).
		Where(entsql.And(
			entsql.EQ("set_id", setID),
			entsql.EQ("term_id", termID),
		)))
	if err != nil {
		return mapError("mark mastered", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapError("mark mastered", err)
	}
	if n == 0 {
		return notFound("mark mastered", "no session entry for set %d term %d", setID, termID)
	}
	return nil
}

func (r *sessionRepo) ClearSession(ctx context.Context, setID int64) error {
	err := r.s.withTx(ctx, func(tx dialect.Tx) error {
		_, err := exec(ctx, tx, builder.Delete("sessions").Where(entsql.EQ("set_id", setID)))
		return err
	})
	return mapError("clear session", err)
}

func (r *sessionRepo) Progress(ctx context.Context, setID int64) (Progress, error) {
	query, args := builder.Select(entsql.Count("*"), "COALESCE(SUM(mastered), 0)").
		From(builder.Table("sessions")).
		Where(entsql.EQ("set_id", setID)).
		Query()
	var rows entsql.Rows
	if err := r.s.drv.Query(ctx, query, args, &rows); err != nil {
		return Progress{}, mapError("progress", err)
	}
	defer rows.Close()

	var p Progress
	if rows.Next() {
		if err := rows.Scan(&p.Total, &p.Mastered); err != nil {
			return Progress{}, mapError("progress", err)
		}
	}
	return p, mapError("progress", rows.Err())
}

func sessionExists(ctx context.Context, q dialect.ExecQuerier, setID int64) (bool, error) {
	n, err := count(ctx, q, "sessions", entsql.EQ("set_id", setID))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
