package catalog

import (
	"sort"
	"strings"
)

// GroupCount is a label and the number of books carrying it.
type GroupCount struct {
	Label string
	Count int
}

// GroupCounter is a multi-key group-by: a book adds one to the count of every distinct label
// it carries, so groups overlap.
type GroupCounter struct {
	counts map[string]int
}

func NewGroupCounter() *GroupCounter {
	return &GroupCounter{counts: make(map[string]int)}
}

// Add counts one book with the given labels. Duplicate and blank labels are ignored.
func (g *GroupCounter) Add(labels []string) {
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if strings.TrimSpace(l) == "" {
			continue
		}
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		g.counts[l]++
	}
}

// Len returns the number of distinct labels seen.
func (g *GroupCounter) Len() int {
	return len(g.counts)
}

// Top returns the n largest groups, count descending then label ascending.
func (g *GroupCounter) Top(n int) []GroupCount {
	groups := make([]GroupCount, 0, len(g.counts))
	for label, count := range g.counts {
		groups = append(groups, GroupCount{Label: label, Count: count})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Label < groups[j].Label
	})

	if n >= 0 && len(groups) > n {
		groups = groups[:n]
	}
	return groups
}
