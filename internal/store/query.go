// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pdiddy/cutoff-engine/internal/cutoff"
)

// maxPageSize bounds the rows returned by one page.
const maxPageSize = 100

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return cutoff.IsCategory(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("registering category validation: %v", err))
	}
	return v
}

// QueryOptions holds parameters for an eligibility query.
type QueryOptions struct {
	// Query matches colleges whose name or code contains it, ignoring case.
	Query string

	// Courses keeps courses whose name contains any entry, ignoring case,
	// or whose choice code equals one.
	Courses []string

	// Category keeps only cutoffs for one category code.
	Category string `validate:"omitempty,category"`

	// Percent is the candidate's percentile. A cutoff is eligible when
	// Percent is at least the cutoff percent.
	Percent *float64 `validate:"omitempty,gte=0,lte=100"`

	// Page is 1-based; zero selects the first page.
	Page int `validate:"gte=0"`

	// PageSize is the number of colleges per page; zero uses the store default.
	PageSize int `validate:"gte=0,lte=100"`
}

// Validate reports invalid option values.
func (q QueryOptions) Validate() error {
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}
	return nil
}

// CutoffResult is one row of an eligibility query.
type CutoffResult struct {
	CollegeName     string   `json:"collegeName" yaml:"collegeName"`
	CourseName      string   `json:"courseName" yaml:"courseName"`
	CapRound        string   `json:"capRound" yaml:"capRound"`
	Stage           string   `json:"stage" yaml:"stage"`
	Category        string   `json:"category" yaml:"category"`
	RequiredPercent float64  `json:"requiredPercent" yaml:"requiredPercent"`
	YourPercent     *float64 `json:"yourPercent,omitempty" yaml:"yourPercent,omitempty"`
	Eligible        bool     `json:"eligible" yaml:"eligible"`
}

// Pagination describes one page of a paged result.
type Pagination struct {
	Page            int  `json:"page" yaml:"page"`
	PageSize        int  `json:"pageSize" yaml:"pageSize"`
	Total           int  `json:"total" yaml:"total"`
	TotalPages      int  `json:"totalPages" yaml:"totalPages"`
	HasNextPage     bool `json:"hasNextPage" yaml:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage" yaml:"hasPreviousPage"`
}

func newPagination(page, pageSize, total int) Pagination {
	totalPages := (total + pageSize - 1) / pageSize
	return Pagination{
		Page:            page,
		PageSize:        pageSize,
		Total:           total,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

// QueryPage is a page of eligibility results. Pagination counts colleges,
// not result rows.
type QueryPage struct {
	Results    []CutoffResult `json:"results" yaml:"results"`
	Pagination Pagination     `json:"pagination" yaml:"pagination"`
}

func (s *Store) page(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.pageSize
	}
	return page, min(pageSize, maxPageSize)
}

// collegeFilter returns the WHERE clause and arguments matching opts.Query.
func collegeFilter(query string) (string, []any) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "1=1", nil
	}
	return "(instr(lower(name), ?) > 0 OR instr(lower(code), ?) > 0)", []any{q, q}
}

// QueryCutoffs pages through colleges matching opts.Query and returns every
// cutoff of their matching courses, ordered by college, course, stage, and
// category insertion.
func (s *Store) QueryCutoffs(ctx context.Context, opts QueryOptions) (QueryPage, error) {
	if err := opts.Validate(); err != nil {
		return QueryPage{}, err
	}
	page, pageSize := s.page(opts.Page, opts.PageSize)
	where, args := collegeFilter(opts.Query)

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM colleges WHERE `+where, args...,
	).Scan(&total); err != nil {
		return QueryPage{}, fmt.Errorf("counting colleges: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM colleges WHERE `+where+` ORDER BY id LIMIT ? OFFSET ?`,
		append(args, pageSize, (page-1)*pageSize)...,
	)
	if err != nil {
		return QueryPage{}, fmt.Errorf("querying colleges: %w", err)
	}
	var ids []any
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return QueryPage{}, fmt.Errorf("scanning college: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return QueryPage{}, err
	}

	result := QueryPage{
		Results:    []CutoffResult{},
		Pagination: newPagination(page, pageSize, total),
	}
	if len(ids) == 0 {
		return result, nil
	}

	var qb strings.Builder
	qb.WriteString(
		`SELECT c.name, co.name, co.choice_code, co.cap_round, s.name, cu.category, cu.percent
		FROM courses co
		JOIN colleges c ON c.id = co.college_id
		JOIN stages s ON s.course_id = co.id
		JOIN cutoffs cu ON cu.stage_id = s.id
		WHERE co.college_id IN (?` + strings.Repeat(", ?", len(ids)-1) + `)`)
	qargs := ids
	if opts.Category != "" {
		qb.WriteString(` AND cu.category = ?`)
		qargs = append(qargs, opts.Category)
	}
	qb.WriteString(` ORDER BY c.id, co.id, s.id, cu.id`)

	crows, err := s.db.QueryContext(ctx, qb.String(), qargs...)
	if err != nil {
		return QueryPage{}, fmt.Errorf("querying cutoffs: %w", err)
	}
	defer crows.Close()

	for crows.Next() {
		var (
			r          CutoffResult
			choiceCode string
		)
		if err := crows.Scan(&r.CollegeName, &r.CourseName, &choiceCode, &r.CapRound,
			&r.Stage, &r.Category, &r.RequiredPercent); err != nil {
			return QueryPage{}, fmt.Errorf("scanning cutoff: %w", err)
		}
		if !courseMatches(opts.Courses, r.CourseName, choiceCode) {
			continue
		}
		if opts.Percent != nil {
			p := *opts.Percent
			r.YourPercent = &p
			r.Eligible = p >= r.RequiredPercent
		}
		result.Results = append(result.Results, r)
	}
	return result, crows.Err()
}

func courseMatches(filters []string, name, choiceCode string) bool {
	if len(filters) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, f := range filters {
		if strings.Contains(lower, strings.ToLower(f)) || choiceCode == f {
			return true
		}
	}
	return false
}

// CutoffRow is a stored cutoff with its stage.
type CutoffRow struct {
	ID       int64   `json:"id" yaml:"id"`
	StageID  int64   `json:"stageId" yaml:"stageId"`
	Stage    string  `json:"stage" yaml:"stage"`
	Category string  `json:"category" yaml:"category"`
	Rank     int     `json:"rank" yaml:"rank"`
	Percent  float64 `json:"percent" yaml:"percent"`
}

// CutoffPage is a page of stored cutoffs.
type CutoffPage struct {
	Results    []CutoffRow `json:"results" yaml:"results"`
	Pagination Pagination  `json:"pagination" yaml:"pagination"`
}

// ListCutoffs pages through all stored cutoffs in insertion order.
func (s *Store) ListCutoffs(ctx context.Context, page, pageSize int) (CutoffPage, error) {
	if page < 0 || pageSize < 0 {
		return CutoffPage{}, fmt.Errorf("invalid page %d or page size %d", page, pageSize)
	}
	page, pageSize = s.page(page, pageSize)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM cutoffs`).Scan(&total); err != nil {
		return CutoffPage{}, fmt.Errorf("counting cutoffs: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT cu.id, cu.stage_id, s.name, cu.category, cu.rank, cu.percent
		FROM cutoffs cu JOIN stages s ON s.id = cu.stage_id
		ORDER BY cu.id LIMIT ? OFFSET ?`,
		pageSize, (page-1)*pageSize,
	)
	if err != nil {
		return CutoffPage{}, fmt.Errorf("listing cutoffs: %w", err)
	}
	defer rows.Close()

	result := CutoffPage{
		Results:    []CutoffRow{},
		Pagination: newPagination(page, pageSize, total),
	}
	for rows.Next() {
		var r CutoffRow
		if err := rows.Scan(&r.ID, &r.StageID, &r.Stage, &r.Category, &r.Rank, &r.Percent); err != nil {
			return CutoffPage{}, fmt.Errorf("scanning cutoff: %w", err)
		}
		result.Results = append(result.Results, r)
	}
	return result, rows.Err()
}

// CourseNames returns the distinct non-empty course names, sorted.
func (s *Store) CourseNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT name FROM courses WHERE name != '' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning course: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
