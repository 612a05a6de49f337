// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cutoff

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/cutoff-engine/pkg/types"
)

const (
	choiceCodeMarker = "Choice Code"
	courseNameMarker = "Course Name"
	defaultStage     = "Stage-I"
)

// Line patterns. Each recognizer below wraps one of them and returns a typed
// result or false.
var (
	// collegeRe matches "1002 Government College of Engineering, Amravati (Government Autonomous)".
	collegeRe = regexp.MustCompile(`(\d{4})\s+([^(]+)\s*\([^)]+\)`)

	// choiceCodeRe matches "Choice Code : 100219110".
	choiceCodeRe = regexp.MustCompile(`Choice Code\s*:\s*(\d+)`)

	// courseNameRe matches "Course Name : Civil Engineering".
	courseNameRe = regexp.MustCompile(`Course Name\s*:\s*(.+)`)

	// stageRe matches a stage marker such as "Stage-I" or "Stage-IV".
	stageRe = regexp.MustCompile(`Stage-([IVX]+)`)

	// tripleRe matches an inline "GOPEN 1432 (91.37%)" cell.
	tripleRe = regexp.MustCompile(`([A-Z]+(?:-[A-Z]+)?)\s+(\d+)\s*\((\d+(?:\.\d*)?|\.\d+)%\)`)

	// codeTokenRe matches a single code-shaped token of a header row.
	codeTokenRe = regexp.MustCompile(`^[A-Z]+(?:-[A-Z]+)?$`)

	// valueRowRe matches "Stage-I 1432 (91.37%) 2087 (90.26%)" with an
	// optional stage marker and no category codes.
	valueRowRe = regexp.MustCompile(`^(?:Stage-([IVX]+)\s*)?((?:\d+\s*\((?:\d+(?:\.\d*)?|\.\d+)%\)\s*)+)$`)

	// valuePairRe matches one "1432 (91.37%)" pair inside a value row.
	valuePairRe = regexp.MustCompile(`(\d+)\s*\((\d+(?:\.\d*)?|\.\d+)%\)`)
)

// collegeHeader is a recognized college header line.
type collegeHeader struct {
	code string
	name string
}

func matchCollege(line string) (collegeHeader, bool) {
	m := collegeRe.FindStringSubmatch(line)
	if m == nil {
		return collegeHeader{}, false
	}
	return collegeHeader{code: m[1], name: strings.TrimSpace(m[2])}, true
}

func isCollegeHeader(line string) bool {
	return collegeRe.MatchString(line)
}

func isChoiceCodeLine(line string) bool {
	return strings.Contains(line, choiceCodeMarker)
}

func matchChoiceCode(line string) (string, bool) {
	m := choiceCodeRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func matchCourseName(line string) (string, bool) {
	if !strings.Contains(line, courseNameMarker) {
		return "", false
	}
	m := courseNameRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// matchStage returns the "Stage-<numeral>" label on the line, if any.
func matchStage(line string) (string, bool) {
	m := stageRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return "Stage-" + m[1], true
}

func isCategoryTrigger(line string) bool {
	return stageRe.MatchString(line) || containsTriggerCode(line)
}

// categoryCell is one category code paired with its cutoff figures.
type categoryCell struct {
	code   string
	result types.CategoryResult
}

// matchTriples finds every inline "<CODE> <rank> (<percent>%)" cell in blob.
// Codes outside the vocabulary are returned; callers filter them.
func matchTriples(blob string) []categoryCell {
	var cells []categoryCell
	for _, m := range tripleRe.FindAllStringSubmatch(blob, -1) {
		result, ok := parseResult(m[2], m[3])
		if !ok {
			continue
		}
		cells = append(cells, categoryCell{code: m[1], result: result})
	}
	return cells
}

// matchHeaderRow recognizes a table header such as
// "GOPEN GSC GSEBC LOPEN LST LOBC EWS". Every token must be code-shaped and
// at least one must be a known category.
func matchHeaderRow(line string) ([]string, bool) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil, false
	}
	known := false
	for _, tok := range tokens {
		if !codeTokenRe.MatchString(tok) {
			return nil, false
		}
		if IsCategory(tok) {
			known = true
		}
	}
	if !known {
		return nil, false
	}
	return tokens, true
}

// valueRow is a table row of cutoff figures without category codes. stage
// is empty when the row carries no stage marker.
type valueRow struct {
	stage  string
	values []types.CategoryResult
}

func matchValueRow(line string) (valueRow, bool) {
	m := valueRowRe.FindStringSubmatch(line)
	if m == nil {
		return valueRow{}, false
	}
	row := valueRow{}
	if m[1] != "" {
		row.stage = "Stage-" + m[1]
	}
	for _, p := range valuePairRe.FindAllStringSubmatch(m[2], -1) {
		result, ok := parseResult(p[1], p[2])
		if !ok {
			// Keep the column position of the remaining values.
			result = types.CategoryResult{Rank: -1}
		}
		row.values = append(row.values, result)
	}
	return row, true
}

// parseResult converts captured rank and percent digits. The patterns only
// capture well-formed numerals; a rank too large for int is rejected.
func parseResult(rank, percent string) (types.CategoryResult, bool) {
	r, err := strconv.Atoi(rank)
	if err != nil {
		return types.CategoryResult{}, false
	}
	p, err := strconv.ParseFloat(percent, 64)
	if err != nil {
		return types.CategoryResult{}, false
	}
	return types.CategoryResult{Rank: r, Percent: p}, true
}
