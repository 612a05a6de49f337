// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists parsed cutoff records in SQLite and answers
// eligibility queries over them.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/phuslu/log"

	"github.com/pdiddy/cutoff-engine/pkg/types"
)

const (
	// DefaultDBPath is used when no database path is configured.
	DefaultDBPath = "data/cutoffs.db"

	defaultPageSize = 10

	// cutoffBatchSize is the number of cutoff rows per multi-row insert.
	cutoffBatchSize = 25
)

// Store manages the cutoff SQLite database.
type Store struct {
	db       *sql.DB
	pageSize int
}

// NewStore opens or creates the database at cfg.DBPath and creates the
// schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = DefaultDBPath
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	s := &Store{db: db, pageSize: pageSize}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS colleges (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS courses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			college_id INTEGER NOT NULL REFERENCES colleges(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			choice_code TEXT NOT NULL,
			cap_round TEXT NOT NULL,
			UNIQUE(college_id, choice_code)
		)`,
		`CREATE TABLE IF NOT EXISTS stages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			course_id INTEGER NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			UNIQUE(course_id, name)
		)`,
		`CREATE TABLE IF NOT EXISTS cutoffs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			stage_id INTEGER NOT NULL REFERENCES stages(id) ON DELETE CASCADE,
			category TEXT NOT NULL,
			rank INTEGER NOT NULL,
			percent REAL NOT NULL,
			UNIQUE(stage_id, category)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_courses_college_id ON courses(college_id)`,
		`CREATE INDEX IF NOT EXISTS idx_stages_course_id ON stages(course_id)`,
		`CREATE INDEX IF NOT EXISTS idx_cutoffs_category ON cutoffs(category)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SeedSummary holds counts from a seeding run.
type SeedSummary struct {
	Colleges int
	Courses  int
	Stages   int
	Cutoffs  int
}

// Seed loads colleges into the database. Colleges are matched by code and
// keep their first stored name; courses are matched by choice code within a
// college, stages by label within a course, and cutoffs by category within a
// stage. Existing cutoffs are not overwritten, so seeding the same data
// twice is a no-op. Each college is written in its own transaction.
func (s *Store) Seed(ctx context.Context, colleges []types.College, w io.Writer) (SeedSummary, error) {
	fmt.Fprintf(w, "seeding %d colleges\n", len(colleges))

	var summary SeedSummary
	for i, c := range colleges {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if err := s.seedCollege(ctx, c, &summary); err != nil {
			return summary, fmt.Errorf("seeding college %s: %w", c.CollegeCode, err)
		}
		fmt.Fprintf(w, "college (%d/%d): %s\n", i+1, len(colleges), c.CollegeName)
	}

	fmt.Fprintf(w, "\ncolleges: %d, courses: %d, stages: %d, cutoffs: %d\n",
		summary.Colleges, summary.Courses, summary.Stages, summary.Cutoffs)
	return summary, nil
}

func (s *Store) seedCollege(ctx context.Context, c types.College, summary *SeedSummary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var collegeID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO colleges (code, name) VALUES (?, ?)
		 ON CONFLICT(code) DO UPDATE SET code=excluded.code
		 RETURNING id`,
		c.CollegeCode, c.CollegeName,
	).Scan(&collegeID)
	if err != nil {
		return fmt.Errorf("upserting college: %w", err)
	}

	var courses, stages, cutoffs int
	for _, course := range c.Courses {
		var courseID int64
		err := tx.QueryRowContext(ctx,
			`INSERT INTO courses (college_id, name, choice_code, cap_round) VALUES (?, ?, ?, ?)
			 ON CONFLICT(college_id, choice_code) DO UPDATE SET
				name=excluded.name, cap_round=excluded.cap_round
			 RETURNING id`,
			collegeID, course.CourseName, course.ChoiceCode, course.CapRound,
		).Scan(&courseID)
		if err != nil {
			return fmt.Errorf("upserting course %s: %w", course.ChoiceCode, err)
		}
		courses++

		for _, stage := range course.Stages {
			var stageID int64
			err := tx.QueryRowContext(ctx,
				`INSERT INTO stages (course_id, name) VALUES (?, ?)
				 ON CONFLICT(course_id, name) DO UPDATE SET name=excluded.name
				 RETURNING id`,
				courseID, stage.Stage,
			).Scan(&stageID)
			if err != nil {
				return fmt.Errorf("upserting stage %s of course %s: %w", stage.Stage, course.ChoiceCode, err)
			}
			stages++

			n, err := insertCutoffs(ctx, tx, stageID, stage.Categories)
			if err != nil {
				return fmt.Errorf("inserting cutoffs for course %s %s: %w", course.ChoiceCode, stage.Stage, err)
			}
			cutoffs += n
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	log.Debug().
		Str("college", c.CollegeCode).
		Int("courses", courses).
		Int("stages", stages).
		Int("cutoffs", cutoffs).
		Msg("seeded college")

	summary.Colleges++
	summary.Courses += courses
	summary.Stages += stages
	summary.Cutoffs += cutoffs
	return nil
}

// insertCutoffs writes categories in batches of cutoffBatchSize rows and
// returns how many rows were new.
func insertCutoffs(ctx context.Context, tx *sql.Tx, stageID int64, categories map[string]types.CategoryResult) (int, error) {
	codes := sortedCodes(categories)
	inserted := 0
	for start := 0; start < len(codes); start += cutoffBatchSize {
		end := min(start+cutoffBatchSize, len(codes))
		batch := codes[start:end]

		var qb strings.Builder
		qb.WriteString(`INSERT OR IGNORE INTO cutoffs (stage_id, category, rank, percent) VALUES `)
		args := make([]any, 0, len(batch)*4)
		for i, code := range batch {
			if i > 0 {
				qb.WriteString(", ")
			}
			qb.WriteString("(?, ?, ?, ?)")
			r := categories[code]
			args = append(args, stageID, code, r.Rank, r.Percent)
		}

		res, err := tx.ExecContext(ctx, qb.String(), args...)
		if err != nil {
			return inserted, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return inserted, err
		}
		inserted += int(n)
	}
	return inserted, nil
}

func sortedCodes(categories map[string]types.CategoryResult) []string {
	codes := make([]string, 0, len(categories))
	for code := range categories {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
