package nutrition

import "github.com/pageza/nutrilog/backend/internal/models"

// FallbackEvaluationMessage is returned for coefficients outside the five
// known levels.
const FallbackEvaluationMessage = "請根據您的活動水平調整您的生活方式。"

// EvaluationMessage returns the guidance text for an activity coefficient.
// Matching is by exact value, not by range.
func EvaluationMessage(activityLevel float64) string {
	switch activityLevel {
	case models.ActivitySedentary:
		return "您的活動水平屬於久坐類型。建議您嘗試每週增加2-3次輕度運動，如快走或騎自行車，這將有助於提高新陳代謝並改善整體健康。"
	case models.ActivityLight:
		return "您有輕度的身體活動，這是一個很好的開始！為了進一步提升健康水平，可以考慮將運動頻率增加到每週3-4次，並嘗試一些中等強度的活動。"
	case models.ActivityModerate:
		return "您的活動量已達到中等水平，非常棒！請繼續保持這個良好的習慣。規律的運動對維持體重和心血管健康至關重要。"
	case models.ActivityActive:
		return "您的活動量非常活躍，這對您的健康非常有益。請確保您的飲食能提供足夠的能量來支持您的運動量，並注意適當的休息與恢復。"
	case models.ActivityVeryActive:
		return "您達到了極高的活動水平，可能是一位運動員或從事高強度體力工作。在這種情況下，專業的營養支持和恢復策略至關重要，以確保身體機能處於最佳狀態。"
	default:
		return FallbackEvaluationMessage
	}
}
