package model

import "time"

// AnswerEntry pairs a question id with its raw answer value. The value shape
// depends on the question type: string for text and choice answers, a number
// for scale answers.
type AnswerEntry struct {
	QuestionID string `json:"questionId"`
	Answer     any    `json:"answer"`
}

// Submission is one completed survey, keyed by device fingerprint.
// Immutable after insert — never updated or deleted by this service.
type Submission struct {
	ID        int64         `json:"id,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	DeviceID  string        `json:"device_id"`
	Answers   []AnswerEntry `json:"answers"`
}

// DeviceClass is a presentation hint chosen on the landing screen. It affects
// only navigation behavior (mobile auto-advances after an answer), never the
// collected data.
type DeviceClass string

const (
	DeviceMobile  DeviceClass = "mobile"
	DeviceDesktop DeviceClass = "desktop"
)

// StartSessionRequest opens a survey session. Screen dimensions feed the
// device fingerprint together with the User-Agent header.
type StartSessionRequest struct {
	DeviceClass  string `json:"device_class" binding:"required,oneof=mobile desktop"`
	ScreenWidth  int    `json:"screen_width" binding:"required,min=1"`
	ScreenHeight int    `json:"screen_height" binding:"required,min=1"`
}

// AnswerRequest records or replaces the answer for one question.
type AnswerRequest struct {
	QuestionID string `json:"question_id" binding:"required,max=64"`
	Answer     any    `json:"answer" binding:"required"`
}
