package db

import (
	"context"
	"fmt"

	"github.com/javiermolinar/horario/internal/catalog"
)

// SaveSubject inserts or replaces a subject.
func (s *SQLite) SaveSubject(ctx context.Context, sub *catalog.Subject) error {
	query := `
		INSERT INTO subjects (id, name, code, color) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, code = excluded.code, color = excluded.color
	`
	if _, err := s.db.ExecContext(ctx, query, sub.ID, sub.Name, sub.Code, sub.Color); err != nil {
		return fmt.Errorf("saving subject %d: %w", sub.ID, err)
	}
	return nil
}

// SaveTeacher inserts or replaces a teacher.
func (s *SQLite) SaveTeacher(ctx context.Context, t *catalog.Teacher) error {
	query := `
		INSERT INTO teachers (id, first_name, last_name, email) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET first_name = excluded.first_name, last_name = excluded.last_name, email = excluded.email
	`
	if _, err := s.db.ExecContext(ctx, query, t.ID, t.FirstName, t.LastName, t.Email); err != nil {
		return fmt.Errorf("saving teacher %d: %w", t.ID, err)
	}
	return nil
}

// SaveClass inserts or replaces a class.
func (s *SQLite) SaveClass(ctx context.Context, c *catalog.Class) error {
	query := `
		INSERT INTO classes (id, name, level) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, level = excluded.level
	`
	if _, err := s.db.ExecContext(ctx, query, c.ID, c.Name, c.Level); err != nil {
		return fmt.Errorf("saving class %d: %w", c.ID, err)
	}
	return nil
}

// SaveRoom inserts or replaces a room.
func (s *SQLite) SaveRoom(ctx context.Context, r *catalog.Room) error {
	query := `
		INSERT INTO rooms (code, name, capacity) VALUES (?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET name = excluded.name, capacity = excluded.capacity
	`
	if _, err := s.db.ExecContext(ctx, query, r.Code, r.Name, r.Capacity); err != nil {
		return fmt.Errorf("saving room %q: %w", r.Code, err)
	}
	return nil
}

// SaveStudent inserts or replaces a student.
func (s *SQLite) SaveStudent(ctx context.Context, st *catalog.Student) error {
	query := `
		INSERT INTO students (id, first_name, last_name, class_id) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET first_name = excluded.first_name, last_name = excluded.last_name, class_id = excluded.class_id
	`
	if _, err := s.db.ExecContext(ctx, query, st.ID, st.FirstName, st.LastName, st.ClassID); err != nil {
		return fmt.Errorf("saving student %d: %w", st.ID, err)
	}
	return nil
}

// SaveParent inserts or replaces a parent and its children.
func (s *SQLite) SaveParent(ctx context.Context, p *catalog.Parent) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO parents (id, first_name, last_name) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET first_name = excluded.first_name, last_name = excluded.last_name
	`
	if _, err := tx.ExecContext(ctx, query, p.ID, p.FirstName, p.LastName); err != nil {
		return fmt.Errorf("saving parent %d: %w", p.ID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM parent_children WHERE parent_id = ?`, p.ID); err != nil {
		return fmt.Errorf("clearing children of parent %d: %w", p.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO parent_children (parent_id, student_id) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, child := range p.ChildIDs {
		if _, err := stmt.ExecContext(ctx, p.ID, child); err != nil {
			return fmt.Errorf("linking student %d to parent %d: %w", child, p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// LoadCatalogs reads every catalog table into a snapshot.
func (s *SQLite) LoadCatalogs(ctx context.Context) (*catalog.Catalogs, error) {
	var (
		d   catalog.Data
		err error
	)

	d.Subjects, err = queryAll(ctx, s, `SELECT id, name, code, color FROM subjects ORDER BY id`,
		func(r rowScanner) (catalog.Subject, error) {
			var v catalog.Subject
			err := r.Scan(&v.ID, &v.Name, &v.Code, &v.Color)
			return v, err
		})
	if err != nil {
		return nil, fmt.Errorf("loading subjects: %w", err)
	}

	d.Teachers, err = queryAll(ctx, s, `SELECT id, first_name, last_name, email FROM teachers ORDER BY id`,
		func(r rowScanner) (catalog.Teacher, error) {
			var v catalog.Teacher
			err := r.Scan(&v.ID, &v.FirstName, &v.LastName, &v.Email)
			return v, err
		})
	if err != nil {
		return nil, fmt.Errorf("loading teachers: %w", err)
	}

	d.Classes, err = queryAll(ctx, s, `SELECT id, name, level FROM classes ORDER BY id`,
		func(r rowScanner) (catalog.Class, error) {
			var v catalog.Class
			err := r.Scan(&v.ID, &v.Name, &v.Level)
			return v, err
		})
	if err != nil {
		return nil, fmt.Errorf("loading classes: %w", err)
	}

	d.Rooms, err = queryAll(ctx, s, `SELECT code, name, capacity FROM rooms ORDER BY code`,
		func(r rowScanner) (catalog.Room, error) {
			var v catalog.Room
			err := r.Scan(&v.Code, &v.Name, &v.Capacity)
			return v, err
		})
	if err != nil {
		return nil, fmt.Errorf("loading rooms: %w", err)
	}

	d.Students, err = queryAll(ctx, s, `SELECT id, first_name, last_name, class_id FROM students ORDER BY id`,
		func(r rowScanner) (catalog.Student, error) {
			var v catalog.Student
			err := r.Scan(&v.ID, &v.FirstName, &v.LastName, &v.ClassID)
			return v, err
		})
	if err != nil {
		return nil, fmt.Errorf("loading students: %w", err)
	}

	d.Parents, err = queryAll(ctx, s, `SELECT id, first_name, last_name FROM parents ORDER BY id`,
		func(r rowScanner) (catalog.Parent, error) {
			var v catalog.Parent
			err := r.Scan(&v.ID, &v.FirstName, &v.LastName)
			return v, err
		})
	if err != nil {
		return nil, fmt.Errorf("loading parents: %w", err)
	}

	type link struct{ parent, student int64 }
	links, err := queryAll(ctx, s, `SELECT parent_id, student_id FROM parent_children ORDER BY parent_id, student_id`,
		func(r rowScanner) (link, error) {
			var v link
			err := r.Scan(&v.parent, &v.student)
			return v, err
		})
	if err != nil {
		return nil, fmt.Errorf("loading parent children: %w", err)
	}
	children := make(map[int64][]int64)
	for _, l := range links {
		children[l.parent] = append(children[l.parent], l.student)
	}
	for i := range d.Parents {
		d.Parents[i].ChildIDs = children[d.Parents[i].ID]
	}

	return catalog.New(d), nil
}

func queryAll[T any](ctx context.Context, s *SQLite, query string, scan func(rowScanner) (T, error)) ([]T, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
