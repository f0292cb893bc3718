package leaderboard

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kwabena/prepdeck/internal/store"
)

// AnonymousUser is recorded when a session finishes without a name.
const AnonymousUser = "Anonymous"

// Record is one completed-session entry in the score log. Records are
// append-only: never edited, never deleted.
type Record struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Score     int    `json:"score"`
	Total     int    `json:"total"`
	Subject   string `json:"subject"`
	Level     string `json:"level"`
	Timestamp string `json:"timestamp"`
}

// Recorder appends to and reads from the persisted score log.
type Recorder struct {
	path  string
	clock func() time.Time
}

// NewRecorder creates a Recorder over the score log at path.
func NewRecorder(path string) *Recorder {
	return &Recorder{path: path, clock: time.Now}
}

// Append writes one completed-session record with the current timestamp.
// A blank username is recorded as Anonymous. The existing log is re-read
// first so records written by other commands are never clobbered.
func (r *Recorder) Append(username string, score, total int, subject, level string) (Record, error) {
	if username == "" {
		username = AnonymousUser
	}

	rec := Record{
		ID:        uuid.New().String(),
		Username:  username,
		Score:     score,
		Total:     total,
		Subject:   subject,
		Level:     level,
		Timestamp: r.clock().Format(time.RFC3339),
	}

	records, err := r.All()
	if err != nil {
		// Fail-soft: a broken log is treated as empty, the append still
		// lands. The caller may have warned already via All.
		records = nil
	}
	records = append(records, rec)
	if err := store.Write(r.path, records); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// All returns every record in log order. A malformed log yields an empty
// slice plus the underlying error.
func (r *Recorder) All() ([]Record, error) {
	var records []Record
	if err := store.ReadInto(r.path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// TopN returns the n highest-scoring records. The sort is stable, so ties
// keep their original insertion order. n is clamped to [0, record count];
// zero or negative n yields an empty result.
func (r *Recorder) TopN(n int) ([]Record, error) {
	records, err := r.All()
	if err != nil {
		return nil, err
	}
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	if n < 0 {
		n = 0
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n], nil
}
