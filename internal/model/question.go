package model

// QuestionType determines which input widget and answer shape a question uses.
type QuestionType string

const (
	QuestionTypeSingle   QuestionType = "single"
	QuestionTypeMultiple QuestionType = "multiple"
	QuestionTypeScale    QuestionType = "scale"
	QuestionTypeText     QuestionType = "text"
)

// Valid reports whether t is one of the supported question types.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeSingle, QuestionTypeMultiple, QuestionTypeScale, QuestionTypeText:
		return true
	}
	return false
}

// Option is one selectable choice of a single/multiple question.
// Value is what gets stored in a submission; Text is what gets displayed.
type Option struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Value string `json:"value"`
}

// Question is the declarative description of one survey question.
// Scale questions use Min/Max bounds (inclusive) with two boundary labels;
// choice questions carry an ordered Options list. Order defines the
// presentation sequence within the question set.
type Question struct {
	ID       string       `json:"id"`
	Text     string       `json:"text"`
	Type     QuestionType `json:"type"`
	Options  []Option     `json:"options,omitempty"`
	Min      int          `json:"min,omitempty"`
	Max      int          `json:"max,omitempty"`
	MinLabel string       `json:"minLabel,omitempty"`
	MaxLabel string       `json:"maxLabel,omitempty"`
	Order    int          `json:"order"`
}

// OptionPayload mirrors Option for request binding.
type OptionPayload struct {
	ID    string `json:"id" binding:"required,max=64"`
	Text  string `json:"text" binding:"required,max=500"`
	Value string `json:"value" binding:"required,max=500"`
}

// CreateQuestionRequest is the payload for adding a question.
// The server assigns the id and appends at the end of the display order.
type CreateQuestionRequest struct {
	Text     string          `json:"text" binding:"required,min=1,max=2000"`
	Type     string          `json:"type" binding:"required,oneof=single multiple scale text"`
	Options  []OptionPayload `json:"options" binding:"omitempty,dive"`
	Min      int             `json:"min" binding:"min=0"`
	Max      int             `json:"max" binding:"min=0"`
	MinLabel string          `json:"minLabel" binding:"max=200"`
	MaxLabel string          `json:"maxLabel" binding:"max=200"`
}

// UpdateQuestionRequest replaces all mutable fields of an existing question.
// The id itself is immutable and comes from the URL.
type UpdateQuestionRequest struct {
	Text     string          `json:"text" binding:"required,min=1,max=2000"`
	Type     string          `json:"type" binding:"required,oneof=single multiple scale text"`
	Options  []OptionPayload `json:"options" binding:"omitempty,dive"`
	Min      int             `json:"min" binding:"min=0"`
	Max      int             `json:"max" binding:"min=0"`
	MinLabel string          `json:"minLabel" binding:"max=200"`
	MaxLabel string          `json:"maxLabel" binding:"max=200"`
}

// SaveAllQuestion is one entry of a bulk save. Position in the list, not the
// carried order value, decides the persisted display order.
type SaveAllQuestion struct {
	ID       string          `json:"id" binding:"required,max=64"`
	Text     string          `json:"text" binding:"required,min=1,max=2000"`
	Type     string          `json:"type" binding:"required,oneof=single multiple scale text"`
	Options  []OptionPayload `json:"options" binding:"omitempty,dive"`
	Min      int             `json:"min" binding:"min=0"`
	Max      int             `json:"max" binding:"min=0"`
	MinLabel string          `json:"minLabel" binding:"max=200"`
	MaxLabel string          `json:"maxLabel" binding:"max=200"`
}

// SaveAllRequest is the payload for persisting a reordered question list.
type SaveAllRequest struct {
	Questions []SaveAllQuestion `json:"questions" binding:"required,min=1,dive"`
}
