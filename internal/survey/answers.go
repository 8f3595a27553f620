package survey

import "github.com/valdisnipers-collab/immuno-survey/internal/model"

// AnswerStore collects answers keyed by question id, ordered by first arrival.
// Setting a value for a question that already has one replaces it in place:
// exactly one live entry exists per question id.
type AnswerStore struct {
	entries []model.AnswerEntry
	index   map[string]int
}

// NewAnswerStore creates an empty AnswerStore.
func NewAnswerStore() *AnswerStore {
	return &AnswerStore{index: make(map[string]int)}
}

// Set upserts the answer for a question id. Last write wins.
func (s *AnswerStore) Set(questionID string, value any) {
	if i, ok := s.index[questionID]; ok {
		s.entries[i].Answer = value
		return
	}
	s.index[questionID] = len(s.entries)
	s.entries = append(s.entries, model.AnswerEntry{QuestionID: questionID, Answer: value})
}

// Get returns the live answer for a question id, if any.
func (s *AnswerStore) Get(questionID string) (any, bool) {
	i, ok := s.index[questionID]
	if !ok {
		return nil, false
	}
	return s.entries[i].Answer, true
}

// Has reports whether a question id holds a live entry.
func (s *AnswerStore) Has(questionID string) bool {
	_, ok := s.index[questionID]
	return ok
}

// Len returns the number of distinct answered questions.
func (s *AnswerStore) Len() int {
	return len(s.entries)
}

// Entries returns the answers in arrival order.
func (s *AnswerStore) Entries() []model.AnswerEntry {
	return append([]model.AnswerEntry(nil), s.entries...)
}
