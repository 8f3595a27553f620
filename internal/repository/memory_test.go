package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/valdisnipers-collab/immuno-survey/internal/model"
)

func TestMemorySeededWithDefaults(t *testing.T) {
	m := NewMemory(0)

	questions, err := m.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(questions) != len(model.DefaultQuestions()) {
		t.Fatalf("fresh store holds %d questions", len(questions))
	}
	for i := 1; i < len(questions); i++ {
		if questions[i-1].Order > questions[i].Order {
			t.Fatal("list not ordered by display order")
		}
	}
}

func TestMemorySubmissionUniquePerDevice(t *testing.T) {
	m := NewMemory(0)
	subs := m.SubmissionsView()
	ctx := context.Background()

	first := &model.Submission{DeviceID: "deadbeef", CreatedAt: time.Now()}
	if err := subs.Insert(ctx, first); err != nil {
		t.Fatal(err)
	}
	if first.ID == 0 {
		t.Fatal("insert did not assign an id")
	}

	err := subs.Insert(ctx, &model.Submission{DeviceID: "deadbeef", CreatedAt: time.Now()})
	if !errors.Is(err, ErrDuplicateDevice) {
		t.Fatalf("expected ErrDuplicateDevice, got %v", err)
	}

	count, err := subs.Count(ctx)
	if err != nil || count != 1 {
		t.Fatalf("count=%d err=%v", count, err)
	}

	exists, err := subs.ExistsByDevice(ctx, "deadbeef")
	if err != nil || !exists {
		t.Fatalf("exists=%v err=%v", exists, err)
	}
}

func TestMemoryLatencyHonorsCancellation(t *testing.T) {
	m := NewMemory(5 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := m.List(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestMemoryVotedFlags(t *testing.T) {
	m := NewMemory(0)
	flags := m.VotedFlagsView()
	ctx := context.Background()

	voted, err := flags.Get(ctx, "deadbeef")
	if err != nil || voted {
		t.Fatalf("fresh device voted=%v err=%v", voted, err)
	}
	if err := flags.Set(ctx, "deadbeef"); err != nil {
		t.Fatal(err)
	}
	voted, err = flags.Get(ctx, "deadbeef")
	if err != nil || !voted {
		t.Fatalf("after set voted=%v err=%v", voted, err)
	}
}
