// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CapRoundI is the CAP round label assigned to every parsed course.
const CapRoundI = "CAP Round I"

// CategoryResult is the closing rank and percentile for one category in one
// stage.
type CategoryResult struct {
	// Rank is the merit rank of the last admitted candidate.
	Rank int `json:"rank" yaml:"rank"`

	// Percent is the percentile of the last admitted candidate (0-100).
	Percent float64 `json:"percent" yaml:"percent"`
}

// Stage holds the cutoffs published for one stage of a CAP round. Categories
// is keyed by category code (e.g. "GOPEN").
type Stage struct {
	Stage      string                    `json:"stage" yaml:"stage"`
	Categories map[string]CategoryResult `json:"categories" yaml:"categories"`
}

// Course is a single course offering identified by its choice code.
type Course struct {
	CourseName string  `json:"courseName" yaml:"courseName"`
	ChoiceCode string  `json:"choiceCode" yaml:"choiceCode"`
	CapRound   string  `json:"capRound" yaml:"capRound"`
	Stages     []Stage `json:"stages" yaml:"stages"`
}

// College is an institution header from the cutoff list together with the
// courses listed under it, in document order.
type College struct {
	CollegeName string   `json:"collegeName" yaml:"collegeName"`
	CollegeCode string   `json:"collegeCode" yaml:"collegeCode"`
	Courses     []Course `json:"courses" yaml:"courses"`
}

// StageByLabel returns the index of the stage with the given label, or -1.
func (c *Course) StageByLabel(label string) int {
	for i := range c.Stages {
		if c.Stages[i].Stage == label {
			return i
		}
	}
	return -1
}
