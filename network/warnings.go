package network

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Warning categories. Each is logged once per build, consolidated.
const (
	WarningUnknownRoute = "unknown_route"
	WarningZeroHeadway  = "zero_headway"
	WarningMissingStop  = "missing_stop"
	WarningDroppedEdge  = "dropped_edge"
)

// maxWarningExamples caps how many distinct example identifiers are kept
// per category.
const maxWarningExamples = 10

// warningInfo holds aggregated information about a specific warning type
type warningInfo struct {
	count    int
	seen     map[string]bool
	examples []string
}

// WarningAggregator collects recoverable data-quality warnings during a
// build and outputs one consolidated message per category instead of one
// line per occurrence.
type WarningAggregator struct {
	mu       sync.Mutex
	warnings map[string]*warningInfo
}

func NewWarningAggregator() *WarningAggregator {
	return &WarningAggregator{
		warnings: make(map[string]*warningInfo),
	}
}

// Add records a warning occurrence with an example identifier. Repeated
// identifiers count once per call but are kept as a single example.
func (w *WarningAggregator) Add(category, exampleID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	info := w.warnings[category]
	if info == nil {
		info = &warningInfo{seen: make(map[string]bool)}
		w.warnings[category] = info
	}
	info.count++
	if !info.seen[exampleID] && len(info.examples) < maxWarningExamples {
		info.seen[exampleID] = true
		info.examples = append(info.examples, exampleID)
	}
}

// Count returns the number of occurrences recorded for a category.
func (w *WarningAggregator) Count(category string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if info := w.warnings[category]; info != nil {
		return info.count
	}
	return 0
}

// Examples returns the distinct example identifiers kept for a category.
func (w *WarningAggregator) Examples(category string) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if info := w.warnings[category]; info != nil {
		out := make([]string, len(info.examples))
		copy(out, info.examples)
		return out
	}
	return nil
}

// LogAll outputs all collected warnings in consolidated form, one line per
// category, in a stable order.
func (w *WarningAggregator) LogAll() {
	w.mu.Lock()
	defer w.mu.Unlock()

	categories := make([]string, 0, len(w.warnings))
	for category := range w.warnings {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		logrus.Warn(formatWarning(category, w.warnings[category]))
	}
}

// formatWarning creates a human-readable warning message for one category.
func formatWarning(category string, info *warningInfo) string {
	var description, action string

	switch category {
	case WarningUnknownRoute:
		description = "trips whose route_id does not appear in the routes table"
		action = "Keeping these trips with an unmatched mode"
	case WarningZeroHeadway:
		description = "frequency windows with a headway of 0 seconds"
		action = "Discarding these windows"
	case WarningMissingStop:
		description = "stop_times references to stops missing from the stops table"
		action = "Removing edges that touch these stops"
	case WarningDroppedEdge:
		description = "traversals whose edge was dropped during geometry generation"
		action = "Marking these traversals as having no edge"
	default:
		description = "unknown issues"
		action = "Continuing with fallback behavior"
	}

	return fmt.Sprintf("Network build found %s (%d occurrences). %s. Examples: %s",
		description, info.count, action, strings.Join(info.examples, ", "))
}
