package rules

import "sort"

// LeaderboardEntry is one ranked row of the leaderboard.
type LeaderboardEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// rankSnakes projects live snakes onto the top size entries, highest score
// first. Ties break on name then id so the order is stable between ticks.
func rankSnakes(snakes map[string]*Snake, size int) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(snakes))
	for _, s := range snakes {
		if s.IsDead {
			continue
		}
		entries = append(entries, LeaderboardEntry{ID: s.ID, Name: s.Name, Score: s.Score})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	if size > 0 && len(entries) > size {
		entries = entries[:size]
	}
	return entries
}

func sameLeaderboard(a, b []LeaderboardEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
