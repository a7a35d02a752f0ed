// Package view contains the pure projections over the current entry list:
// free-text search, category partitioning and the victim leaderboard.
// Functions here never mutate their input and perform no I/O.
package view

import (
	"sort"
	"strings"

	"github.com/kalajat/archive/internal/models"
)

// UnknownVictim is the placeholder label used when an entry carries no
// victim name.
const UnknownVictim = "مجهول"

// LeaderboardSize caps how many victims the leaderboard returns.
const LeaderboardSize = 5

// Filter returns the entries whose victim name or content contains term,
// case-insensitively. An empty term matches everything. Input order is
// preserved, so a timestamp-descending feed stays sorted.
func Filter(entries []models.Entry, term string) []models.Entry {
	if term == "" {
		return entries
	}
	needle := strings.ToLower(term)

	filtered := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.VictimName), needle) ||
			strings.Contains(strings.ToLower(e.Content), needle) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// FilterByCategory keeps entries of the given category. CategoryAll passes
// everything through unchanged.
func FilterByCategory(entries []models.Entry, category models.Category) []models.Entry {
	if category == models.CategoryAll {
		return entries
	}
	filtered := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Category == category {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Leaderboard ranks victims by how many slip entries they have collected.
// Jokes are not attributed to a victim and are excluded from the count.
// Entries without a name count under UnknownVictim. The result is sorted by
// count descending, ties keep first-appearance order, and at most
// LeaderboardSize rows are returned.
func Leaderboard(entries []models.Entry) []models.Stat {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, e := range entries {
		if e.Category != models.CategorySlip {
			continue
		}
		name := e.VictimName
		if name == "" {
			name = UnknownVictim
		}
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}

	stats := make([]models.Stat, 0, len(order))
	for _, name := range order {
		stats = append(stats, models.Stat{Name: name, Count: counts[name]})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})

	if len(stats) > LeaderboardSize {
		stats = stats[:LeaderboardSize]
	}
	return stats
}
