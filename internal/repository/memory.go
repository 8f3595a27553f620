package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/valdisnipers-collab/immuno-survey/internal/model"
)

// Memory is the in-memory backend used in demo mode and in tests. It
// implements QuestionStore, SubmissionStore, AdminStore and VotedFlagStore
// behind one mutex. A non-zero latency simulates the network delay of a real
// backend so demo mode behaves like the configured one.
type Memory struct {
	mu          sync.RWMutex
	latency     time.Duration
	questions   map[string]model.Question
	submissions []model.Submission
	byDevice    map[string]struct{}
	admins      map[string]model.Admin
	voted       map[string]bool
	nextSubID   int64
}

// NewMemory creates a Memory store seeded with the built-in default
// question set, matching what a fresh demo-mode launch presents.
func NewMemory(latency time.Duration) *Memory {
	m := &Memory{
		latency:   latency,
		questions: make(map[string]model.Question),
		byDevice:  make(map[string]struct{}),
		admins:    make(map[string]model.Admin),
		voted:     make(map[string]bool),
		nextSubID: 1,
	}
	for _, q := range model.DefaultQuestions() {
		m.questions[q.ID] = q
	}
	return m
}

// delay simulates one network round-trip, honoring context cancellation.
func (m *Memory) delay(ctx context.Context) error {
	if m.latency <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(m.latency):
		return nil
	}
}

// ─── QuestionStore ─────────────────────────────────────────────────────────

func (m *Memory) List(ctx context.Context) ([]model.Question, error) {
	if err := m.delay(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	questions := make([]model.Question, 0, len(m.questions))
	for _, q := range m.questions {
		questions = append(questions, q)
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].Order < questions[j].Order })
	return questions, nil
}

func (m *Memory) Get(ctx context.Context, id string) (*model.Question, error) {
	if err := m.delay(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	q, ok := m.questions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &q, nil
}

func (m *Memory) Create(ctx context.Context, q *model.Question) error {
	if err := m.delay(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.questions[q.ID] = *q
	return nil
}

func (m *Memory) Update(ctx context.Context, q *model.Question) error {
	if err := m.delay(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.questions[q.ID]; !ok {
		return ErrNotFound
	}
	m.questions[q.ID] = *q
	return nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	if err := m.delay(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.questions[id]; !ok {
		return ErrNotFound
	}
	delete(m.questions, id)
	return nil
}

func (m *Memory) UpsertBatch(ctx context.Context, questions []model.Question) error {
	if err := m.delay(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, q := range questions {
		m.questions[q.ID] = q
	}
	return nil
}

// ─── SubmissionStore ───────────────────────────────────────────────────────

func (m *Memory) Insert(ctx context.Context, sub *model.Submission) error {
	if err := m.delay(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byDevice[sub.DeviceID]; ok {
		return ErrDuplicateDevice
	}
	sub.ID = m.nextSubID
	m.nextSubID++
	m.submissions = append(m.submissions, *sub)
	m.byDevice[sub.DeviceID] = struct{}{}
	return nil
}

func (m *Memory) ExistsByDevice(ctx context.Context, deviceID string) (bool, error) {
	if err := m.delay(ctx); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.byDevice[deviceID]
	return ok, nil
}

func (m *Memory) ListSubmissions(ctx context.Context) ([]model.Submission, error) {
	if err := m.delay(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]model.Submission(nil), m.submissions...), nil
}

func (m *Memory) Count(ctx context.Context) (int, error) {
	if err := m.delay(ctx); err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.submissions), nil
}

// ─── AdminStore ────────────────────────────────────────────────────────────

func (m *Memory) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	if err := m.delay(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	admin, ok := m.admins[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &admin, nil
}

func (m *Memory) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	if err := m.delay(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	admin.ID = len(m.admins) + 1
	admin.CreatedAt = time.Now()
	m.admins[admin.Email] = *admin
	return nil
}

// ─── VotedFlagStore ────────────────────────────────────────────────────────

func (m *Memory) GetVoted(ctx context.Context, deviceID string) (bool, error) {
	if err := m.delay(ctx); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.voted[deviceID], nil
}

func (m *Memory) SetVoted(ctx context.Context, deviceID string) error {
	if err := m.delay(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.voted[deviceID] = true
	return nil
}

// SubmissionsView exposes the Memory store as a SubmissionStore. Needed
// because List would otherwise collide with the QuestionStore method set.
func (m *Memory) SubmissionsView() SubmissionStore { return memorySubmissions{m} }

// VotedFlagsView exposes the Memory store as a VotedFlagStore.
func (m *Memory) VotedFlagsView() VotedFlagStore { return memoryVotedFlags{m} }

// AdminsView exposes the Memory store as an AdminStore.
func (m *Memory) AdminsView() AdminStore { return memoryAdmins{m} }

type memorySubmissions struct{ m *Memory }

func (v memorySubmissions) Insert(ctx context.Context, sub *model.Submission) error {
	return v.m.Insert(ctx, sub)
}
func (v memorySubmissions) ExistsByDevice(ctx context.Context, deviceID string) (bool, error) {
	return v.m.ExistsByDevice(ctx, deviceID)
}
func (v memorySubmissions) List(ctx context.Context) ([]model.Submission, error) {
	return v.m.ListSubmissions(ctx)
}
func (v memorySubmissions) Count(ctx context.Context) (int, error) {
	return v.m.Count(ctx)
}

type memoryVotedFlags struct{ m *Memory }

func (v memoryVotedFlags) Get(ctx context.Context, deviceID string) (bool, error) {
	return v.m.GetVoted(ctx, deviceID)
}
func (v memoryVotedFlags) Set(ctx context.Context, deviceID string) error {
	return v.m.SetVoted(ctx, deviceID)
}

type memoryAdmins struct{ m *Memory }

func (v memoryAdmins) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	return v.m.GetByEmail(ctx, email)
}
func (v memoryAdmins) Create(ctx context.Context, admin *model.Admin) error {
	return v.m.CreateAdmin(ctx, admin)
}
