package survey

import (
	"errors"
	"testing"
	"time"

	"github.com/valdisnipers-collab/immuno-survey/internal/model"
)

func yesNoQuestion(id string, order int) model.Question {
	return model.Question{
		ID:    id,
		Text:  "Vai piekrīti?",
		Type:  model.QuestionTypeSingle,
		Order: order,
		Options: []model.Option{
			{ID: "o1", Text: "Jā", Value: "yes"},
			{ID: "o2", Text: "Nē", Value: "no"},
		},
	}
}

func scaleQuestion(id string, order int) model.Question {
	return model.Question{
		ID:    id,
		Text:  "Novērtē no 1 līdz 5:",
		Type:  model.QuestionTypeScale,
		Min:   1,
		Max:   5,
		Order: order,
	}
}

func textQuestion(id string, order int) model.Question {
	return model.Question{
		ID:    id,
		Text:  "Komentāri:",
		Type:  model.QuestionTypeText,
		Order: order,
	}
}

func TestNewEngineRejectsEmptySet(t *testing.T) {
	if _, err := NewEngine(nil, model.DeviceDesktop); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}

func TestAnswerLastWriteWins(t *testing.T) {
	e, err := NewEngine([]model.Question{yesNoQuestion("q1", 1)}, model.DeviceDesktop)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.Answer("q1", "yes"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Answer("q1", "no"); err != nil {
		t.Fatal(err)
	}

	if e.Answers().Len() != 1 {
		t.Fatalf("expected one stored answer, got %d", e.Answers().Len())
	}
	v, ok := e.Answers().Get("q1")
	if !ok || v != "no" {
		t.Fatalf("expected last value %q, got %v", "no", v)
	}
}

func TestAnswerValidation(t *testing.T) {
	e, err := NewEngine([]model.Question{
		yesNoQuestion("q1", 1),
		scaleQuestion("q2", 2),
	}, model.DeviceDesktop)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.Answer("missing", "yes"); !errors.Is(err, ErrUnknownQuestion) {
		t.Fatalf("expected ErrUnknownQuestion, got %v", err)
	}
	if _, err := e.Answer("q1", "maybe"); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer for unlisted option, got %v", err)
	}
	if _, err := e.Answer("q2", 9); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer for out-of-range scale, got %v", err)
	}
	if _, err := e.Answer("q2", 2.5); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer for fractional scale, got %v", err)
	}

	// JSON numbers arrive as float64; integral ones are valid.
	if _, err := e.Answer("q2", float64(3)); err != nil {
		t.Fatalf("integral float64 should normalize, got %v", err)
	}
	v, _ := e.Answers().Get("q2")
	if v != 3 {
		t.Fatalf("expected normalized int 3, got %v (%T)", v, v)
	}
}

func TestAdvanceRetreatClamped(t *testing.T) {
	e, err := NewEngine([]model.Question{
		yesNoQuestion("q1", 1),
		scaleQuestion("q2", 2),
	}, model.DeviceDesktop)
	if err != nil {
		t.Fatal(err)
	}

	e.Retreat()
	if e.Position() != 0 {
		t.Fatalf("retreat at first question moved to %d", e.Position())
	}

	e.Advance()
	e.Advance()
	e.Advance()
	if e.Position() != 1 {
		t.Fatalf("advance past last question moved to %d", e.Position())
	}
}

func TestIsCurrentAnswered(t *testing.T) {
	e, err := NewEngine([]model.Question{
		yesNoQuestion("q1", 1),
		textQuestion("q2", 2),
	}, model.DeviceDesktop)
	if err != nil {
		t.Fatal(err)
	}

	if e.IsCurrentAnswered() {
		t.Fatal("unanswered choice question reported answered")
	}
	if _, err := e.Answer("q1", "yes"); err != nil {
		t.Fatal(err)
	}
	if !e.IsCurrentAnswered() {
		t.Fatal("answered choice question reported unanswered")
	}

	// Text questions never block advancing, even with nothing typed.
	e.Advance()
	if !e.IsCurrentAnswered() {
		t.Fatal("text question should always count as answered")
	}
}

func TestMobileAutoAdvance(t *testing.T) {
	questions := []model.Question{
		yesNoQuestion("q1", 1),
		scaleQuestion("q2", 2),
		{
			ID:    "q3",
			Text:  "Izvēlies visus atbilstošos:",
			Type:  model.QuestionTypeMultiple,
			Order: 3,
			Options: []model.Option{
				{ID: "o1", Text: "A", Value: "a"},
				{ID: "o2", Text: "B", Value: "b"},
			},
		},
		textQuestion("q4", 4),
	}

	e, err := NewEngine(questions, model.DeviceMobile)
	if err != nil {
		t.Fatal(err)
	}

	advanced, err := e.Answer("q1", "yes")
	if err != nil {
		t.Fatal(err)
	}
	if !advanced || e.Position() != 1 {
		t.Fatalf("mobile single answer should auto-advance, pos=%d", e.Position())
	}

	// Answering a question that is not current does not move the position.
	if advanced, _ := e.Answer("q1", "no"); advanced {
		t.Fatal("answering a non-current question auto-advanced")
	}

	advanced, err = e.Answer("q2", 4)
	if err != nil {
		t.Fatal(err)
	}
	if !advanced || e.Position() != 2 {
		t.Fatalf("mobile scale answer should auto-advance, pos=%d", e.Position())
	}

	// Multiple-choice needs an explicit "next": picking one value must not
	// yank the remaining choices away.
	if advanced, _ := e.Answer("q3", "a"); advanced {
		t.Fatal("multiple question auto-advanced")
	}
	e.Advance()

	if advanced, _ := e.Answer("q4", "brīvs teksts"); advanced {
		t.Fatal("text question auto-advanced")
	}
}

func TestDesktopNeverAutoAdvances(t *testing.T) {
	e, err := NewEngine([]model.Question{
		yesNoQuestion("q1", 1),
		scaleQuestion("q2", 2),
	}, model.DeviceDesktop)
	if err != nil {
		t.Fatal(err)
	}

	advanced, err := e.Answer("q1", "yes")
	if err != nil {
		t.Fatal(err)
	}
	if advanced || e.Position() != 0 {
		t.Fatalf("desktop answer auto-advanced to %d", e.Position())
	}
}

func TestMobileNoAdvancePastLast(t *testing.T) {
	e, err := NewEngine([]model.Question{yesNoQuestion("q1", 1)}, model.DeviceMobile)
	if err != nil {
		t.Fatal(err)
	}

	advanced, err := e.Answer("q1", "yes")
	if err != nil {
		t.Fatal(err)
	}
	if advanced || e.Position() != 0 {
		t.Fatal("auto-advance moved past the last question")
	}
}

func TestBuildSubmissionQuestionOrder(t *testing.T) {
	e, err := NewEngine([]model.Question{
		yesNoQuestion("q1", 1),
		scaleQuestion("q2", 2),
		textQuestion("q3", 3),
	}, model.DeviceDesktop)
	if err != nil {
		t.Fatal(err)
	}

	// Answer out of order; q3 stays unanswered.
	if _, err := e.Answer("q2", 3); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Answer("q1", "yes"); err != nil {
		t.Fatal(err)
	}

	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	sub := e.BuildSubmission("c0ffee42", now)

	if sub.DeviceID != "c0ffee42" {
		t.Fatalf("device id = %q", sub.DeviceID)
	}
	if !sub.CreatedAt.Equal(now) {
		t.Fatalf("created at = %v", sub.CreatedAt)
	}
	if len(sub.Answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(sub.Answers))
	}
	if sub.Answers[0].QuestionID != "q1" || sub.Answers[0].Answer != "yes" {
		t.Fatalf("answers[0] = %+v", sub.Answers[0])
	}
	if sub.Answers[1].QuestionID != "q2" || sub.Answers[1].Answer != 3 {
		t.Fatalf("answers[1] = %+v", sub.Answers[1])
	}
}
