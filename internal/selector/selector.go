package selector

import (
	"errors"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/kwabena/prepdeck/internal/bank"
)

// All is the filter sentinel meaning "no restriction" on subject or level.
const All = "All"

// DailyExamSize caps the exam-of-the-day working set.
const DailyExamSize = 20

// ErrNoQuestions signals that a filter produced zero questions. The caller
// stays in selection mode; an empty working set is never handed out.
var ErrNoQuestions = errors.New("no questions for the selected subject and level")

// Filter returns the questions matching subject and level exactly. The All
// sentinel passes everything through for that dimension.
func Filter(pool []bank.Question, subject, level string) []bank.Question {
	var out []bank.Question
	for _, q := range pool {
		if subject != All && q.Subject != subject {
			continue
		}
		if level != All && q.Level != level {
			continue
		}
		out = append(out, q)
	}
	return out
}

// Practice builds a shuffled working set from the subject/level filter.
// The shuffle is freshly seeded on every call, so consecutive sessions
// over the same filter come out in different orders.
func Practice(pool []bank.Question, subject, level string) ([]bank.Question, error) {
	filtered := Filter(pool, subject, level)
	if len(filtered) == 0 {
		return nil, ErrNoQuestions
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	shuffled := make([]bank.Question, len(filtered))
	copy(shuffled, filtered)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled, nil
}

// ExamOfDay builds the deterministic daily subset: up to DailyExamSize
// questions drawn from the full pool with a PRNG seeded from dateKey
// (a YYYY-MM-DD string). Same pool + same date key = identical ordered
// subset, so everyone sees the same exam on a given day. The date is an
// explicit input, never read from the wall clock here.
func ExamOfDay(pool []bank.Question, dateKey string) ([]bank.Question, error) {
	if len(pool) == 0 {
		return nil, ErrNoQuestions
	}
	h := fnv.New64a()
	h.Write([]byte(dateKey))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))
	return sample(pool, DailyExamSize, rng), nil
}

// Mock builds a randomly sampled working set of min(n, pool size) items
// from the subject/level filter, freshly seeded per call.
func Mock(pool []bank.Question, subject, level string, n int) ([]bank.Question, error) {
	filtered := Filter(pool, subject, level)
	if len(filtered) == 0 {
		return nil, ErrNoQuestions
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return sample(filtered, n, rng), nil
}

// DateKey formats t as the calendar-date seed string for ExamOfDay.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// sample draws min(n, len(pool)) items without replacement.
func sample(pool []bank.Question, n int, rng *rand.Rand) []bank.Question {
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]bank.Question, 0, n)
	for _, i := range rng.Perm(len(pool))[:n] {
		out = append(out, pool[i])
	}
	return out
}
