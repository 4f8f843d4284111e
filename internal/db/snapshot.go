package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/alexanderramin/notestudio/internal/domain"
)

// Meta describes when and by whom a snapshot was written.
type Meta struct {
	AppID     string
	WrittenAt time.Time
}

const (
	idKindString = "string"
	idKindNumber = "number"
	idKindNone   = "none"
)

func idColumns(id *domain.EntityID) (string, string) {
	if id == nil {
		return "", idKindNone
	}
	if id.Kind() == domain.IDNumber {
		return id.String(), idKindNumber
	}
	return id.String(), idKindString
}

func parseID(value, kind string) (*domain.EntityID, error) {
	switch kind {
	case idKindNone:
		return nil, nil
	case idKindString:
		return domain.NewStringID(value), nil
	case idKindNumber:
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("numeric id %q: %w", value, err)
		}
		id := domain.NumberID(n)
		return &id, nil
	default:
		return nil, fmt.Errorf("unknown id kind %q", kind)
	}
}

// WriteSnapshot replaces the database contents with state in one
// transaction. Projects, notes and steps keep their order via position.
func WriteSnapshot(ctx context.Context, uow UnitOfWork, state *domain.AppState, meta Meta) error {
	if state == nil {
		return fmt.Errorf("writing snapshot: nil state")
	}
	return uow.WithinTx(ctx, func(ctx context.Context, tx DBTX) error {
		for _, table := range []string{"steps", "notes", "projects", "settings", "snapshot_meta"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
				return fmt.Errorf("clearing %s: %w", table, err)
			}
		}

		for i := range state.Projects {
			if err := insertProject(ctx, tx, i, &state.Projects[i]); err != nil {
				return err
			}
		}
		if err := insertSettings(ctx, tx, state.Settings); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO snapshot_meta (id, written_at, app_id) VALUES ('current', ?, ?)`,
			meta.WrittenAt.UTC().Format(time.RFC3339), meta.AppID)
		if err != nil {
			return fmt.Errorf("writing snapshot meta: %w", err)
		}
		return nil
	})
}

func insertProject(ctx context.Context, tx DBTX, pos int, p *domain.Project) error {
	id, kind := idColumns(p.ID)
	res, err := tx.ExecContext(ctx,
		`INSERT INTO projects (id, id_kind, position, name, description, status, pinned)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, kind, pos, p.Name, p.Description, p.Status, boolToInt(p.Pinned))
	if err != nil {
		return fmt.Errorf("inserting project %q: %w", p.Name, err)
	}
	projectRow, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading project row id: %w", err)
	}

	for i := range p.Notes {
		n := &p.Notes[i]
		id, kind := idColumns(n.ID)
		res, err := tx.ExecContext(ctx,
			`INSERT INTO notes (project_row, id, id_kind, position, title, body) VALUES (?, ?, ?, ?, ?, ?)`,
			projectRow, id, kind, i, n.Title, n.Body)
		if err != nil {
			return fmt.Errorf("inserting note %q: %w", n.Title, err)
		}
		noteRow, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading note row id: %w", err)
		}
		if err := insertSteps(ctx, tx, projectRow, &noteRow, n.Steps); err != nil {
			return err
		}
	}
	return insertSteps(ctx, tx, projectRow, nil, p.Steps)
}

func insertSteps(ctx context.Context, tx DBTX, projectRow int64, noteRow *int64, steps []domain.Step) error {
	owner := "project"
	var note any
	if noteRow != nil {
		owner = "note"
		note = *noteRow
	}
	for i, st := range steps {
		id, kind := idColumns(st.ID)
		_, err := tx.ExecContext(ctx,
			`INSERT INTO steps (owner_kind, project_row, note_row, id, id_kind, position, text, done)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			owner, projectRow, note, id, kind, i, st.Text, boolToInt(st.Done))
		if err != nil {
			return fmt.Errorf("inserting step %q: %w", st.Text, err)
		}
	}
	return nil
}

func insertSettings(ctx context.Context, tx DBTX, s domain.Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("splitting settings: %w", err)
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := tx.ExecContext(ctx, `INSERT INTO settings (key, value) VALUES (?, ?)`, k, string(fields[k])); err != nil {
			return fmt.Errorf("inserting setting %s: %w", k, err)
		}
	}
	return nil
}

// ReadSnapshot rebuilds the state stored by WriteSnapshot.
func ReadSnapshot(ctx context.Context, q DBTX) (*domain.AppState, Meta, error) {
	state := domain.NewAppState()
	var meta Meta

	projectIdx, err := readProjects(ctx, q, state)
	if err != nil {
		return nil, meta, err
	}
	noteIdx, err := readNotes(ctx, q, state, projectIdx)
	if err != nil {
		return nil, meta, err
	}
	if err := readSteps(ctx, q, state, projectIdx, noteIdx); err != nil {
		return nil, meta, err
	}

	if err := readSettings(ctx, q, &state.Settings); err != nil {
		return nil, meta, err
	}

	var writtenAt string
	err = q.QueryRowContext(ctx, `SELECT written_at, app_id FROM snapshot_meta WHERE id = 'current'`).Scan(&writtenAt, &meta.AppID)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return nil, meta, fmt.Errorf("reading snapshot meta: %w", err)
	default:
		if meta.WrittenAt, err = time.Parse(time.RFC3339, writtenAt); err != nil {
			return nil, meta, fmt.Errorf("parsing written_at: %w", err)
		}
	}
	return state, meta, nil
}

type noteRef struct{ project, note int }

func readProjects(ctx context.Context, q DBTX, state *domain.AppState) (map[int64]int, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT row_id, id, id_kind, name, description, status, pinned FROM projects ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	projectIdx := map[int64]int{}
	for rows.Next() {
		var (
			row                int64
			id, kind           string
			name, desc, status string
			pinned             int
		)
		if err := rows.Scan(&row, &id, &kind, &name, &desc, &status, &pinned); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		p := domain.NewProject(name, desc)
		if p.ID, err = parseID(id, kind); err != nil {
			return nil, err
		}
		p.Status = status
		p.Pinned = pinned != 0
		projectIdx[row] = len(state.Projects)
		state.Projects = append(state.Projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projectIdx, nil
}

func readNotes(ctx context.Context, q DBTX, state *domain.AppState, projectIdx map[int64]int) (map[int64]noteRef, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT row_id, project_row, id, id_kind, title, body FROM notes ORDER BY project_row, position`)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	noteIdx := map[int64]noteRef{}
	for rows.Next() {
		var (
			row, projectRow int64
			id, kind        string
			title, body     string
		)
		if err := rows.Scan(&row, &projectRow, &id, &kind, &title, &body); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		pi := projectIdx[projectRow]
		n := domain.NewNote(title, body)
		if n.ID, err = parseID(id, kind); err != nil {
			return nil, err
		}
		p := &state.Projects[pi]
		noteIdx[row] = noteRef{project: pi, note: len(p.Notes)}
		p.Notes = append(p.Notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	return noteIdx, nil
}

func readSteps(ctx context.Context, q DBTX, state *domain.AppState, projectIdx map[int64]int, noteIdx map[int64]noteRef) error {
	rows, err := q.QueryContext(ctx,
		`SELECT project_row, note_row, id, id_kind, text, done FROM steps ORDER BY project_row, note_row, position`)
	if err != nil {
		return fmt.Errorf("listing steps: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			projectRow int64
			noteRow    sql.NullInt64
			id, kind   string
			text       string
			done       int
		)
		if err := rows.Scan(&projectRow, &noteRow, &id, &kind, &text, &done); err != nil {
			return fmt.Errorf("scanning step: %w", err)
		}
		st := domain.Step{Text: text, Done: done != 0}
		if st.ID, err = parseID(id, kind); err != nil {
			return err
		}
		if noteRow.Valid {
			ref := noteIdx[noteRow.Int64]
			n := &state.Projects[ref.project].Notes[ref.note]
			n.Steps = append(n.Steps, st)
			continue
		}
		p := &state.Projects[projectIdx[projectRow]]
		p.Steps = append(p.Steps, st)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("listing steps: %w", err)
	}
	return nil
}

func readSettings(ctx context.Context, q DBTX, out *domain.Settings) error {
	rows, err := q.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return fmt.Errorf("listing settings: %w", err)
	}
	defer rows.Close()

	fields := map[string]json.RawMessage{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return fmt.Errorf("scanning setting: %w", err)
		}
		fields[k] = json.RawMessage(v)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("listing settings: %w", err)
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("joining settings: %w", err)
	}
	var s domain.Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding settings: %w", err)
	}
	*out = s
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
