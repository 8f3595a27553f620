package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/valdisnipers-collab/immuno-survey/internal/model"
	"github.com/valdisnipers-collab/immuno-survey/internal/repository"
)

// stubQuestionStore keeps questions in a map and serves List ordered by the
// display order, the way the real stores do.
type stubQuestionStore struct {
	questions map[string]model.Question
	listErr   error
}

func newStubQuestionStore() *stubQuestionStore {
	return &stubQuestionStore{questions: make(map[string]model.Question)}
}

func (s *stubQuestionStore) List(_ context.Context) ([]model.Question, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]model.Question, 0, len(s.questions))
	for _, q := range s.questions {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *stubQuestionStore) Get(_ context.Context, id string) (*model.Question, error) {
	q, ok := s.questions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &q, nil
}

func (s *stubQuestionStore) Create(_ context.Context, q *model.Question) error {
	s.questions[q.ID] = *q
	return nil
}

func (s *stubQuestionStore) Update(_ context.Context, q *model.Question) error {
	if _, ok := s.questions[q.ID]; !ok {
		return repository.ErrNotFound
	}
	s.questions[q.ID] = *q
	return nil
}

func (s *stubQuestionStore) Delete(_ context.Context, id string) error {
	if _, ok := s.questions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.questions, id)
	return nil
}

func (s *stubQuestionStore) UpsertBatch(_ context.Context, questions []model.Question) error {
	for _, q := range questions {
		s.questions[q.ID] = q
	}
	return nil
}

func newQuestionService(store repository.QuestionStore) *QuestionService {
	return NewQuestionService(store, nil, zerolog.Nop())
}

func TestCreateAssignsIDAndAppendsOrder(t *testing.T) {
	store := newStubQuestionStore()
	store.questions["existing"] = model.Question{ID: "existing", Text: "x", Type: model.QuestionTypeText, Order: 7}
	svc := newQuestionService(store)

	q, err := svc.Create(context.Background(), &model.CreateQuestionRequest{
		Text: "Tavs vecums:",
		Type: "scale",
		Min:  18,
		Max:  99,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(q.ID, "q_") {
		t.Fatalf("expected time-based id, got %q", q.ID)
	}
	if q.Order != 8 {
		t.Fatalf("expected order after the current max, got %d", q.Order)
	}
}

func TestCreateRejectsBadShapes(t *testing.T) {
	svc := newQuestionService(newStubQuestionStore())

	cases := []model.CreateQuestionRequest{
		{Text: "x", Type: "single"},                // choice without options
		{Text: "x", Type: "scale", Min: 0, Max: 5}, // min must be positive
		{Text: "x", Type: "scale", Min: 5, Max: 5}, // empty range
	}
	for _, req := range cases {
		if _, err := svc.Create(context.Background(), &req); !errors.Is(err, ErrInvalidQuestionShape) {
			t.Fatalf("%+v: expected ErrInvalidQuestionShape, got %v", req, err)
		}
	}
}

func TestUpdatePreservesOrder(t *testing.T) {
	store := newStubQuestionStore()
	store.questions["q1"] = model.Question{ID: "q1", Text: "old", Type: model.QuestionTypeText, Order: 3}
	svc := newQuestionService(store)

	q, err := svc.Update(context.Background(), "q1", &model.UpdateQuestionRequest{
		Text: "new",
		Type: "text",
	})
	if err != nil {
		t.Fatal(err)
	}
	if q.Order != 3 {
		t.Fatalf("update changed display order to %d", q.Order)
	}
	if store.questions["q1"].Text != "new" {
		t.Fatal("update did not persist")
	}
}

func TestSaveAllRewritesOrdersToPositions(t *testing.T) {
	store := newStubQuestionStore()
	svc := newQuestionService(store)

	// Payload orders are garbage on purpose; positions win.
	saved, err := svc.SaveAll(context.Background(), []model.SaveAllQuestion{
		{ID: "b", Text: "B", Type: "text"},
		{ID: "a", Text: "A", Type: "text"},
		{ID: "c", Text: "C", Type: "text"},
	})
	if err != nil {
		t.Fatal(err)
	}

	for i, q := range saved {
		if q.Order != i+1 {
			t.Fatalf("saved[%d].Order = %d", i, q.Order)
		}
	}

	listed, err := store.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	ids := []string{listed[0].ID, listed[1].ID, listed[2].ID}
	if ids[0] != "b" || ids[1] != "a" || ids[2] != "c" {
		t.Fatalf("persisted order = %v", ids)
	}
}

func TestSeedDefaultsMergesWithoutClearing(t *testing.T) {
	store := newStubQuestionStore()
	store.questions["custom"] = model.Question{ID: "custom", Text: "pašu jautājums", Type: model.QuestionTypeText, Order: 99}
	svc := newQuestionService(store)

	if err := svc.SeedDefaults(context.Background()); err != nil {
		t.Fatal(err)
	}

	if _, ok := store.questions["custom"]; !ok {
		t.Fatal("seeding cleared a custom question")
	}
	for _, d := range model.DefaultQuestions() {
		if _, ok := store.questions[d.ID]; !ok {
			t.Fatalf("default question %q missing after seed", d.ID)
		}
	}
}

func TestListOrDefaultsDegrades(t *testing.T) {
	store := newStubQuestionStore()
	svc := newQuestionService(store)

	// Empty store serves the default set.
	questions := svc.ListOrDefaults(context.Background())
	if len(questions) != len(model.DefaultQuestions()) {
		t.Fatalf("empty store returned %d questions", len(questions))
	}

	// Store failure also serves the default set.
	store.listErr = errors.New("connection refused")
	questions = svc.ListOrDefaults(context.Background())
	if len(questions) != len(model.DefaultQuestions()) {
		t.Fatalf("failing store returned %d questions", len(questions))
	}

	// A populated store wins over the defaults.
	store.listErr = nil
	store.questions["q1"] = model.Question{ID: "q1", Text: "x", Type: model.QuestionTypeText, Order: 1}
	questions = svc.ListOrDefaults(context.Background())
	if len(questions) != 1 || questions[0].ID != "q1" {
		t.Fatalf("populated store returned %+v", questions)
	}
}
