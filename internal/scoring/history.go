package scoring

import "encoding/json"

// HistoryDepth is the maximum number of undo snapshots kept per match.
const HistoryDepth = 10

// History is a fixed-capacity ring of state snapshots. Pushing beyond
// capacity evicts the oldest entry, so the bound is structural and no
// trimming is ever needed. The zero value is ready to use.
type History struct {
	entries [HistoryDepth]Snapshot
	start   int
	count   int
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return h.count
}

// Push appends a snapshot, evicting the oldest one when full.
func (h *History) Push(sn Snapshot) {
	if h.count < HistoryDepth {
		h.entries[(h.start+h.count)%HistoryDepth] = sn
		h.count++
		return
	}
	h.entries[h.start] = sn
	h.start = (h.start + 1) % HistoryDepth
}

// Pop removes and returns the most recent snapshot.
func (h *History) Pop() (Snapshot, bool) {
	if h.count == 0 {
		return Snapshot{}, false
	}
	h.count--
	i := (h.start + h.count) % HistoryDepth
	sn := h.entries[i]
	h.entries[i] = Snapshot{}
	return sn, true
}

// MarshalJSON serializes the ring as a plain array, oldest first, so the
// undo history survives persistence round trips.
func (h *History) MarshalJSON() ([]byte, error) {
	out := make([]Snapshot, 0, h.count)
	for i := 0; i < h.count; i++ {
		out = append(out, h.entries[(h.start+i)%HistoryDepth])
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores the ring from an array, keeping at most the last
// HistoryDepth entries.
func (h *History) UnmarshalJSON(data []byte) error {
	var entries []Snapshot
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*h = History{}
	for _, sn := range entries {
		h.Push(sn)
	}
	return nil
}
