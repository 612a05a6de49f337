// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cutoff

import "strings"

// vocabulary lists the category codes kept in a stage, in the order the
// cutoff lists print them.
var vocabulary = []string{
	"GOPEN", "GSC", "GST", "GNTA", "GNTB", "GNTC", "GNTD", "GOBC", "GSEBC",
	"LOPEN", "LSC", "LST", "LNTA", "LNTB", "LNTC", "LNTD", "LOBC", "LSEBC",
	"EWS", "PWD-O", "DEF-O",
}

var vocabularySet = func() map[string]bool {
	m := make(map[string]bool, len(vocabulary))
	for _, code := range vocabulary {
		m[code] = true
	}
	return m
}()

// triggerCodes is the substring pre-filter that marks a line as part of a
// category table. It is narrower than the vocabulary.
var triggerCodes = []string{"GOPEN", "GSC", "GST", "GOBC", "LOPEN", "LSC", "EWS"}

// IsCategory reports whether code is a known category code.
func IsCategory(code string) bool {
	return vocabularySet[code]
}

// Categories returns the known category codes in print order.
func Categories() []string {
	out := make([]string, len(vocabulary))
	copy(out, vocabulary)
	return out
}

func containsTriggerCode(line string) bool {
	for _, code := range triggerCodes {
		if strings.Contains(line, code) {
			return true
		}
	}
	return false
}
