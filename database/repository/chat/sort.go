package chatRepo

import (
	"sort"

	"laohotel/models"
)

func newestFirst(entries []models.FlatHistoryEntry) []models.FlatHistoryEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Content.Timestamp.After(entries[j].Content.Timestamp)
	})
	return entries
}
