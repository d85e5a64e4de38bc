package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// termBatch bounds the rows per INSERT so the bound-parameter count stays
// well inside SQLite's limit.
const termBatch = 250

// setRepo implements SetRepo.
type setRepo struct {
	s *Store
}

func (r *setRepo) SetExists(ctx context.Context, name string) (bool, error) {
	n, err := count(ctx, r.s.drv, "sets", entsql.EQ("name", name))
	if err != nil {
		return false, mapError("set exists", err)
	}
	return n > 0, nil
}

func (r *setRepo) SetByName(ctx context.Context, name string) (Set, error) {
	set, err := setByName(ctx, r.s.drv, name)
	if err != nil {
		return Set{}, mapError("set by name", err)
	}
	return set, nil
}

func (r *setRepo) CreateSet(ctx context.Context, name string) (int64, error) {
	id, err := insertSet(ctx, r.s.drv, name)
	if err != nil {
		return 0, mapError("create set", err)
	}
	return id, nil
}

func (r *setRepo) DeleteSet(ctx context.Context, id int64) error {
	err := r.s.withTx(ctx, func(tx dialect.Tx) error {
		n, err := count(ctx, tx, "sets", entsql.EQ("id", id))
		if err != nil {
			return err
		}
		if n == 0 {
			return notFound("delete set", "set %d", id)
		}
		return deleteSet(ctx, tx, id)
	})
	return mapError("delete set", err)
}

func (r *setRepo) ListSets(ctx context.Context) ([]Set, error) {
	query, args := builder.Select("id", "name").
		From(builder.Table("sets")).
		OrderBy("id").
		Query()
	var rows entsql.Rows
	if err := r.s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, mapError("list sets", err)
	}
	defer rows.Close()

	var sets []Set
	for rows.Next() {
		var set Set
		if err := rows.Scan(&set.ID, &set.Name); err != nil {
			return nil, mapError("list sets", err)
		}
		sets = append(sets, set)
	}
	return sets, mapError("list sets", rows.Err())
}

func (r *setRepo) Terms(ctx context.Context, setID int64) ([]Term, error) {
	query, args := builder.Select("id", "set_id", "term", "definition").
		From(builder.Table("terms")).
		Where(entsql.EQ("set_id", setID)).
		OrderBy("id").
		Query()
	var rows entsql.Rows
	if err := r.s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, mapError("terms", err)
	}
	defer rows.Close()

	var terms []Term
	for rows.Next() {
		var t Term
		if err := rows.Scan(&t.ID, &t.SetID, &t.Term, &t.Definition); err != nil {
			return nil, mapError("terms", err)
		}
		terms = append(terms, t)
	}
	return terms, mapError("terms", rows.Err())
}

func (r *setRepo) ImportSet(ctx context.Context, name string, terms []NewTerm, overwrite bool) (Set, error) {
	set := Set{Name: name}
	err := r.s.withTx(ctx, func(tx dialect.Tx) error {
		old, err := setByName(ctx, tx, name)
		switch {
		case err == nil:
			if !overwrite {
				return &Error{Kind: KindConstraint, Op: "import set", Err: fmt.Errorf("%q: %w", name, ErrSetExists)}
			}
			if err := deleteSet(ctx, tx, old.ID); err != nil {
				return fmt.Errorf("replace set %q: %w", name, err)
			}
			r.s.logger.Info("replacing set", "set", name, "old_id", old.ID)
		case kindOf(err) != KindNotFound:
			return err
		}

		set.ID, err = insertSet(ctx, tx, name)
		if err != nil {
			return err
		}
		return insertTerms(ctx, tx, set.ID, terms)
	})
	if err != nil {
		return Set{}, mapError("import set", err)
	}
	return set, nil
}

func (r *setRepo) Summaries(ctx context.Context) ([]SetSummary, error) {
	sets, err := r.ListSets(ctx)
	if err != nil {
		return nil, err
	}
	sessions := &sessionRepo{s: r.s}
	out := make([]SetSummary, 0, len(sets))
	for _, set := range sets {
		n, err := count(ctx, r.s.drv, "terms", entsql.EQ("set_id", set.ID))
		if err != nil {
			return nil, mapError("summaries", err)
		}
		p, err := sessions.Progress(ctx, set.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, SetSummary{Set: set, Terms: n, Progress: p})
	}
	return out, nil
}

func setByName(ctx context.Context, q dialect.ExecQuerier, name string) (Set, error) {
	query, args := builder.Select("id").
		From(builder.Table("sets")).
		Where(entsql.EQ("name", name)).
		Query()
	var rows entsql.Rows
	if err := q.Query(ctx, query, args, &rows); err != nil {
		return Set{}, err
	}
	defer rows.Close()
	id, err := entsql.ScanInt64(rows)
	if err != nil {
		return Set{}, err
	}
	return Set{ID: id, Name: name}, nil
}

func insertSet(ctx context.Context, q dialect.ExecQuerier, name string) (int64, error) {
	res, err := exec(ctx, q, builder.Insert("sets").Columns("name").Values(name))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func insertTerms(ctx context.Context, q dialect.ExecQuerier, setID int64, terms []NewTerm) error {
	for start := 0; start < len(terms); start += termBatch {
		end := min(start+termBatch, len(terms))
		ins := builder.Insert("terms").Columns("set_id", "term", "definition")
		for _, t := range terms[start:end] {
			ins.Values(setID, t.Term, t.Definition)
		}
		if _, err := exec(ctx, q, ins); err != nil {
			return fmt.Errorf("insert terms: %w", err)
		}
	}
	return nil
}

// deleteSet removes session rows, terms and the set itself, in that order,
// so foreign keys hold at every step.
func deleteSet(ctx context.Context, q dialect.ExecQuerier, id int64) error {
	steps := []struct {
		table string
		pred  *entsql.Predicate
	}{
		{"sessions", entsql.EQ("set_id", id)},
		{"terms", entsql.EQ("set_id", id)},
		{"sets", entsql.EQ("id", id)},
	}
	for _, st := range steps {
		if _, err := exec(ctx, q, builder.Delete(st.table).Where(st.pred)); err != nil {
			return fmt.Errorf("delete from %s: %w", st.table, err)
		}
	}
	return nil
}

