package survey

import (
	"errors"
	"time"

	"github.com/valdisnipers-collab/immuno-survey/internal/model"
)

// Engine errors.
var (
	ErrNoQuestions     = errors.New("question set is empty")
	ErrUnknownQuestion = errors.New("unknown question id")
	ErrInvalidAnswer   = errors.New("answer does not match question type")
)

// Engine walks an ordered question list one question at a time, tracking the
// current position and collecting answers. The question list is a snapshot
// taken at session start: admin edits never reshape a running session.
//
// The engine is not safe for concurrent use; the owning Session serializes
// access the way a single-threaded UI event loop would.
type Engine struct {
	questions []model.Question
	device    model.DeviceClass
	pos       int
	answers   *AnswerStore
}

// NewEngine creates an engine over a non-empty question snapshot. An empty
// list is a guarded precondition, not a presentable survey.
func NewEngine(questions []model.Question, device model.DeviceClass) (*Engine, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &Engine{
		questions: append([]model.Question(nil), questions...),
		device:    device,
		answers:   NewAnswerStore(),
	}, nil
}

// Questions returns the session's question snapshot.
func (e *Engine) Questions() []model.Question {
	return append([]model.Question(nil), e.questions...)
}

// Position returns the current question index.
func (e *Engine) Position() int { return e.pos }

// Answers exposes the engine's answer store.
func (e *Engine) Answers() *AnswerStore { return e.answers }

// Answer upserts the value for a question and reports whether the position
// auto-advanced. Mobile presentation advances after answering the current
// question unless its kind is multiple or text, and never past the last
// position. The value is validated against the question's kind first.
func (e *Engine) Answer(questionID string, value any) (bool, error) {
	q := e.find(questionID)
	if q == nil {
		return false, ErrUnknownQuestion
	}

	normalized, err := normalizeAnswer(q, value)
	if err != nil {
		return false, err
	}
	e.answers.Set(q.ID, normalized)

	if e.device != model.DeviceMobile {
		return false, nil
	}
	current := e.questions[e.pos]
	if current.ID != q.ID {
		return false, nil
	}
	if current.Type == model.QuestionTypeMultiple || current.Type == model.QuestionTypeText {
		return false, nil
	}
	if e.pos >= len(e.questions)-1 {
		return false, nil
	}
	e.pos++
	return true, nil
}

// Advance moves one question forward, clamped to the last position.
func (e *Engine) Advance() {
	if e.pos < len(e.questions)-1 {
		e.pos++
	}
}

// Retreat moves one question back, clamped to the first position.
func (e *Engine) Retreat() {
	if e.pos > 0 {
		e.pos--
	}
}

// IsCurrentAnswered gates the "next" action. Text questions always count as
// answered: empty text never blocks advancing. Pure, no side effects.
func (e *Engine) IsCurrentAnswered() bool {
	current := e.questions[e.pos]
	if current.Type == model.QuestionTypeText {
		return true
	}
	return e.answers.Has(current.ID)
}

// BuildSubmission packages the answer store into a submission record in
// question order, stamped with the given device id and time. It does not
// persist anything.
func (e *Engine) BuildSubmission(deviceID string, now time.Time) *model.Submission {
	answers := make([]model.AnswerEntry, 0, e.answers.Len())
	for _, q := range e.questions {
		if v, ok := e.answers.Get(q.ID); ok {
			answers = append(answers, model.AnswerEntry{QuestionID: q.ID, Answer: v})
		}
	}
	return &model.Submission{
		CreatedAt: now,
		DeviceID:  deviceID,
		Answers:   answers,
	}
}

func (e *Engine) find(questionID string) *model.Question {
	for i := range e.questions {
		if e.questions[i].ID == questionID {
			return &e.questions[i]
		}
	}
	return nil
}

// normalizeAnswer checks a raw answer value against the question's kind and
// returns the canonical stored shape: string for text and choice answers,
// int for scale answers. JSON numbers arrive as float64 and must be integral.
func normalizeAnswer(q *model.Question, value any) (any, error) {
	switch q.Type {
	case model.QuestionTypeText:
		s, ok := value.(string)
		if !ok {
			return nil, ErrInvalidAnswer
		}
		return s, nil

	case model.QuestionTypeSingle, model.QuestionTypeMultiple:
		s, ok := value.(string)
		if !ok {
			return nil, ErrInvalidAnswer
		}
		for _, opt := range q.Options {
			if opt.Value == s {
				return s, nil
			}
		}
		return nil, ErrInvalidAnswer

	case model.QuestionTypeScale:
		n, ok := toInt(value)
		if !ok || n < q.Min || n > q.Max {
			return nil, ErrInvalidAnswer
		}
		return n, nil
	}
	return nil, ErrInvalidAnswer
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	}
	return 0, false
}
