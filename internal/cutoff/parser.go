// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cutoff turns the plain text of a CAP cutoff list into College,
// Course, and Stage records.
//
// The text is scanned once, line by line. College headers open a college,
// "Choice Code" lines followed by a "Course Name" line open a course, and
// stage or category lines contribute cutoff figures to the open course.
// Lookahead windows never move the scan cursor, so a line read as part of a
// window is examined again when the scan reaches it.
package cutoff

import (
	"strings"

	"github.com/pdiddy/cutoff-engine/pkg/types"
)

const (
	// courseNameWindow is how many lines after a choice code may hold the
	// course name.
	courseNameWindow = 4

	// categoryWindow is how many lines after a trigger line are gathered
	// into one category block.
	categoryWindow = 9
)

// parser holds the scan position and the open college and course, by index
// into the output being built. The open course may belong to an earlier
// college than the open one: a college header does not close it.
type parser struct {
	lines    []string
	colleges []types.College
	college  int

	// courseCollege and course locate the open course.
	courseCollege int
	course        int

	// header is the most recent table header row seen in the open course.
	header []string
}

// Parse extracts colleges from text in document order. It never fails:
// lines that match nothing are skipped, and empty input yields an empty
// slice.
func Parse(text string) []types.College {
	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSpace(l)
	}

	p := &parser{
		lines:         lines,
		colleges:      []types.College{},
		college:       -1,
		courseCollege: -1,
		course:        -1,
	}
	for i := range p.lines {
		p.scanLine(i)
	}
	return p.colleges
}

func (p *parser) scanLine(i int) {
	line := p.lines[i]

	if p.course >= 0 {
		if header, ok := matchHeaderRow(line); ok {
			p.header = header
		}
	}

	if h, ok := matchCollege(line); ok {
		p.openCollege(h)
		return
	}

	if p.college >= 0 && isChoiceCodeLine(line) {
		if code, ok := matchChoiceCode(line); ok {
			p.openCourse(i, code)
		}
		return
	}

	if p.course >= 0 && isCategoryTrigger(line) {
		p.readCategories(i)
	}
}

func (p *parser) openCollege(h collegeHeader) {
	p.colleges = append(p.colleges, types.College{
		CollegeName: h.name,
		CollegeCode: h.code,
		Courses:     []types.Course{},
	})
	p.college = len(p.colleges) - 1
	p.header = nil
}

// openCourse looks for the course name below the choice code line at i. The
// first match wins; without one no course is opened and the previous course
// stays open.
func (p *parser) openCourse(i int, choiceCode string) {
	end := min(i+1+courseNameWindow, len(p.lines))
	for j := i + 1; j < end; j++ {
		name, ok := matchCourseName(p.lines[j])
		if !ok {
			continue
		}
		college := &p.colleges[p.college]
		college.Courses = append(college.Courses, types.Course{
			CourseName: name,
			ChoiceCode: choiceCode,
			CapRound:   types.CapRoundI,
			Stages:     []types.Stage{},
		})
		p.courseCollege = p.college
		p.course = len(college.Courses) - 1
		p.header = nil
		return
	}
}

// readCategories gathers the block starting at line i and merges every
// category cell found in it into the open course.
func (p *parser) readCategories(i int) {
	line := p.lines[i]
	label, ok := matchStage(line)
	if !ok {
		label = defaultStage
	}
	stage := p.stage(label)

	block := p.gatherBlock(i)

	for _, cell := range matchTriples(strings.Join(block, " ")) {
		p.put(stage, cell)
	}

	header := p.header
	for _, l := range block {
		if h, ok := matchHeaderRow(l); ok {
			header = h
			continue
		}
		row, ok := matchValueRow(l)
		if !ok {
			continue
		}
		target := stage
		if row.stage != "" {
			target = p.stage(row.stage)
		}
		for k, v := range row.values {
			if k >= len(header) {
				break
			}
			if v.Rank < 0 {
				continue
			}
			p.put(target, categoryCell{code: header[k], result: v})
		}
	}
}

// gatherBlock returns line i and the non-blank lines after it, up to
// categoryWindow of them, stopping before a college header or choice code.
func (p *parser) gatherBlock(i int) []string {
	block := []string{p.lines[i]}
	end := min(i+1+categoryWindow, len(p.lines))
	for j := i + 1; j < end; j++ {
		next := p.lines[j]
		if next == "" || isCollegeHeader(next) || isChoiceCodeLine(next) {
			break
		}
		block = append(block, next)
	}
	return block
}

// stage returns the index of the stage labelled label in the open course,
// appending an empty one when none exists.
func (p *parser) stage(label string) int {
	course := p.openCourseRef()
	if idx := course.StageByLabel(label); idx >= 0 {
		return idx
	}
	course.Stages = append(course.Stages, types.Stage{
		Stage:      label,
		Categories: map[string]types.CategoryResult{},
	})
	return len(course.Stages) - 1
}

// put records cell in the stage at index stage. Unknown codes are dropped
// and a repeated code overwrites the earlier figures.
func (p *parser) put(stage int, cell categoryCell) {
	if !IsCategory(cell.code) {
		return
	}
	p.openCourseRef().Stages[stage].Categories[cell.code] = cell.result
}

func (p *parser) openCourseRef() *types.Course {
	return &p.colleges[p.courseCollege].Courses[p.course]
}
