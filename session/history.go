package session

import "nlsqlchat/models"

// History keeps the most recent entries, newest first. It is not safe for concurrent use;
// Chat guards it with its own lock.
type History struct {
	limit   int
	entries []models.HistoryEntry
}

func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Add puts e in front and drops the oldest entries beyond the limit.
func (h *History) Add(e models.HistoryEntry) {
	h.entries = append([]models.HistoryEntry{e}, h.entries...)
	if h.limit > 0 && len(h.entries) > h.limit {
		h.entries = h.entries[:h.limit]
	}
}

func (h *History) At(i int) (models.HistoryEntry, bool) {
	if i < 0 || i >= len(h.entries) {
		return models.HistoryEntry{}, false
	}
	return h.entries[i], true
}

// Entries returns a copy, newest first.
func (h *History) Entries() []models.HistoryEntry {
	out := make([]models.HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}
