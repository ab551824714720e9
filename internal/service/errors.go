package service

import (
	"errors"
	"fmt"

	"github.com/pageza/nutrilog/backend/internal/types"
)

var (
	// ErrUpstream means the AI service could not be reached or answered
	// with a non-2xx status.
	ErrUpstream = errors.New("ai service request failed")
	// ErrMalformedReply means the AI service answered but the reply does
	// not have the expected shape.
	ErrMalformedReply = errors.New("ai service reply is malformed")

	ErrProfileRequired     = errors.New("a profile is required")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrInsufficientHistory = errors.New("not enough logged days")
	ErrInvalidImage        = errors.New("invalid image")
	ErrTaskInFlight        = errors.New("a task of this kind is already running")
	ErrTaskNotFound        = errors.New("task not found")
)

// MinRiskAssessmentDays is the number of distinct logged days a risk
// assessment needs.
const MinRiskAssessmentDays = 3

// InsufficientHistoryError reports how many more logged days are needed.
// It matches ErrInsufficientHistory with errors.Is.
type InsufficientHistoryError struct {
	Days     int
	Required int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("%s: have %d, need %d", ErrInsufficientHistory, e.Days, e.Required)
}

func (e *InsufficientHistoryError) Unwrap() error { return ErrInsufficientHistory }

// Remaining is the number of days still to log.
func (e *InsufficientHistoryError) Remaining() int {
	return e.Required - e.Days
}

// User-facing messages. The underlying cause is only logged.
const (
	MsgInvalidImage      = "請上傳有效的圖片檔案 (PNG, JPG, GIF, BMP, WebP)。"
	MsgProfileRequired   = "請先建立您的個人資料。"
	MsgAnalysisFailed    = "分析失敗，請稍後再試。"
	MsgRecommendFailed   = "生成建議失敗，請稍後再試。"
	MsgAssessmentFailed  = "評估生成失敗，請稍後再試。"
	MsgHistoryIncomplete = "還需要 %d 天的記錄"
)

// FailureMessage is the message shown when a task of kind fails.
func FailureMessage(kind types.TaskKind) string {
	switch kind {
	case types.TaskAnalysis:
		return MsgAnalysisFailed
	case types.TaskRecommendation:
		return MsgRecommendFailed
	case types.TaskRiskAssessment:
		return MsgAssessmentFailed
	}
	return "請稍後再試。"
}
