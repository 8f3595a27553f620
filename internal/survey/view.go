package survey

import "github.com/valdisnipers-collab/immuno-survey/internal/model"

// OptionView is one selectable item of a choice question. At most one option
// carries Selected for single questions; selecting replaces the prior choice.
type OptionView struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

// ScaleValue is one selectable button of a scale question.
type ScaleValue struct {
	Value    int  `json:"value"`
	Selected bool `json:"selected"`
}

// ScaleView expands a scale question into one button per integer in
// [min, max] inclusive, framed by the two boundary labels.
type ScaleView struct {
	Values   []ScaleValue `json:"values"`
	MinLabel string       `json:"minLabel"`
	MaxLabel string       `json:"maxLabel"`
}

// QuestionView is the logical widget for the current question: what a client
// renders without re-deriving any selection state.
type QuestionView struct {
	Index     int                `json:"index"`
	Total     int                `json:"total"`
	ID        string             `json:"id"`
	Text      string             `json:"text"`
	Type      model.QuestionType `json:"type"`
	Options   []OptionView       `json:"options,omitempty"`
	Scale     *ScaleView         `json:"scale,omitempty"`
	TextSoFar string             `json:"text_so_far,omitempty"`
	Answered  bool               `json:"answered"`
}

// CurrentView renders the widget for the current question.
func (e *Engine) CurrentView() QuestionView {
	q := e.questions[e.pos]
	view := QuestionView{
		Index:    e.pos,
		Total:    len(e.questions),
		ID:       q.ID,
		Text:     q.Text,
		Type:     q.Type,
		Answered: e.IsCurrentAnswered(),
	}

	answer, _ := e.answers.Get(q.ID)

	switch q.Type {
	case model.QuestionTypeSingle, model.QuestionTypeMultiple:
		selected, _ := answer.(string)
		view.Options = make([]OptionView, len(q.Options))
		for i, opt := range q.Options {
			view.Options[i] = OptionView{
				ID:       opt.ID,
				Text:     opt.Text,
				Value:    opt.Value,
				Selected: opt.Value == selected && selected != "",
			}
		}

	case model.QuestionTypeScale:
		chosen, hasChosen := answer.(int)
		scale := &ScaleView{MinLabel: q.MinLabel, MaxLabel: q.MaxLabel}
		for v := q.Min; v <= q.Max; v++ {
			scale.Values = append(scale.Values, ScaleValue{
				Value:    v,
				Selected: hasChosen && v == chosen,
			})
		}
		view.Scale = scale

	case model.QuestionTypeText:
		text, _ := answer.(string)
		view.TextSoFar = text
	}

	return view
}
