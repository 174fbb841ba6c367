package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS subjects (
			id    INTEGER PRIMARY KEY,
			name  TEXT NOT NULL,
			code  TEXT NOT NULL DEFAULT '',
			color TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS teachers (
			id         INTEGER PRIMARY KEY,
			first_name TEXT NOT NULL DEFAULT '',
			last_name  TEXT NOT NULL,
			email      TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS classes (
			id    INTEGER PRIMARY KEY,
			name  TEXT NOT NULL,
			level TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS rooms (
			code     TEXT PRIMARY KEY COLLATE NOCASE,
			name     TEXT NOT NULL DEFAULT '',
			capacity INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS students (
			id         INTEGER PRIMARY KEY,
			first_name TEXT NOT NULL DEFAULT '',
			last_name  TEXT NOT NULL,
			class_id   INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS parents (
			id         INTEGER PRIMARY KEY,
			first_name TEXT NOT NULL DEFAULT '',
			last_name  TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS parent_children (
			parent_id  INTEGER NOT NULL,
			student_id INTEGER NOT NULL,
			PRIMARY KEY (parent_id, student_id)
		);

		CREATE TABLE IF NOT EXISTS lessons (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			class_id   INTEGER NOT NULL,
			subject_id INTEGER NOT NULL,
			teacher_id INTEGER NOT NULL,
			room       TEXT NOT NULL DEFAULT '',
			day        TEXT NOT NULL CHECK(day IN ('monday', 'tuesday', 'wednesday', 'thursday', 'friday', 'saturday', 'sunday')),
			start_time TIME NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_lessons_cell ON lessons(day, start_time);
		CREATE INDEX IF NOT EXISTS idx_lessons_class ON lessons(class_id);

		CREATE TABLE IF NOT EXISTS evaluations (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			class_id   INTEGER NOT NULL,
			subject_id INTEGER NOT NULL,
			teacher_id INTEGER NOT NULL,
			title      TEXT NOT NULL DEFAULT '',
			eval_date  DATE NOT NULL,
			start_time TIME NOT NULL,
			duration   INTEGER NOT NULL CHECK(duration BETWEEN 1 AND 4),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_evaluations_date ON evaluations(eval_date);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
