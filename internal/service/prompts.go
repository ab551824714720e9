package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pageza/nutrilog/backend/internal/models"
)

// Gemini schema type names.
const (
	typeObject = "OBJECT"
	typeArray  = "ARRAY"
	typeString = "STRING"
	typeNumber = "NUMBER"
)

func object(required []string, props map[string]*GeminiSchema) *GeminiSchema {
	return &GeminiSchema{Type: typeObject, Properties: props, Required: required}
}

func arrayOf(items *GeminiSchema) *GeminiSchema {
	return &GeminiSchema{Type: typeArray, Items: items}
}

func str(desc string) *GeminiSchema {
	return &GeminiSchema{Type: typeString, Description: desc}
}

func num(desc string) *GeminiSchema {
	return &GeminiSchema{Type: typeNumber, Description: desc}
}

func described(s *GeminiSchema, desc string) *GeminiSchema {
	s.Description = desc
	return s
}

// AnalysisSchema constrains the food-image analysis reply.
var AnalysisSchema = object(
	[]string{"foodName", "mainComponents", "totalCalories", "nutritionTags", "dietaryAdvice"},
	map[string]*GeminiSchema{
		"foodName": str("The name of the food meal in Traditional Chinese."),
		"mainComponents": described(arrayOf(object(
			[]string{"name", "weight", "calories", "nutrients", "analysis"},
			map[string]*GeminiSchema{
				"name":     str("Name of the component in Traditional Chinese."),
				"weight":   num("Estimated weight in grams."),
				"calories": num("Estimated calories for this component."),
				"nutrients": object(
					[]string{"protein", "carbohydrates", "fat", "fiber", "sodium", "vitaminC", "calcium"},
					map[string]*GeminiSchema{
						"protein":       num("Protein in grams."),
						"carbohydrates": num("Carbohydrates in grams."),
						"fat":           num("Fat in grams."),
						"fiber":         num("Dietary fiber in grams."),
						"sodium":        num("Sodium in milligrams."),
						"vitaminC":      num("Vitamin C in milligrams."),
						"calcium":       num("Calcium in milligrams."),
					},
				),
				"analysis": str("A brief nutritional analysis of this component in Traditional Chinese."),
			},
		)), "List of main food components in the image."),
		"totalCalories": num("Total estimated calories for the entire meal."),
		"nutritionTags": described(arrayOf(str("")),
			`Keywords in Traditional Chinese describing the nutritional value, e.g., "高蛋白", "低碳水".`),
		"dietaryAdvice": described(arrayOf(str("")),
			"Recommendations or advice in Traditional Chinese related to this meal."),
	},
)

func mealSchema() *GeminiSchema {
	return object([]string{"name", "calories", "recipe"}, map[string]*GeminiSchema{
		"name":     str(""),
		"calories": num(""),
		"recipe": object([]string{"name", "ingredients", "instructions"}, map[string]*GeminiSchema{
			"name":         str(""),
			"ingredients":  arrayOf(str("")),
			"instructions": arrayOf(str("")),
		}),
	})
}

// RecommendationSchema constrains the meal and exercise plan reply.
var RecommendationSchema = object(
	[]string{"mealPlan", "exercisePlan"},
	map[string]*GeminiSchema{
		"mealPlan": object([]string{"breakfast", "lunch", "dinner", "snacks"}, map[string]*GeminiSchema{
			"breakfast": mealSchema(),
			"lunch":     mealSchema(),
			"dinner":    mealSchema(),
			"snacks":    mealSchema(),
		}),
		"exercisePlan": object([]string{"summary", "weeklySchedule"}, map[string]*GeminiSchema{
			"summary": str(""),
			"weeklySchedule": arrayOf(object([]string{"day", "focus", "exercises"}, map[string]*GeminiSchema{
				"day":   str(""),
				"focus": str(""),
				"exercises": arrayOf(object([]string{"name", "sets", "reps", "description"}, map[string]*GeminiSchema{
					"name":        str(""),
					"sets":        str(""),
					"reps":        str(""),
					"description": str(""),
				})),
			})),
		}),
	},
)

// RiskAssessmentSchema constrains the health-risk assessment reply.
var RiskAssessmentSchema = object(
	[]string{"overallRiskLevel", "summary", "potentialRisks"},
	map[string]*GeminiSchema{
		"overallRiskLevel": {Type: typeString, Enum: []string{
			string(models.RiskLow), string(models.RiskMedium), string(models.RiskHigh),
		}},
		"summary": str("A brief summary of the user's long-term health risks based on their diet."),
		"potentialRisks": arrayOf(object([]string{"riskName", "explanation", "recommendation"}, map[string]*GeminiSchema{
			"riskName":       str("Name of the potential health risk in Traditional Chinese."),
			"explanation":    str("Explanation of why this is a risk based on the provided data."),
			"recommendation": str("Actionable recommendations to mitigate this risk."),
		})),
	},
)

const analysisPrompt = "你是一個專業的營養分析師。請分析這張食物圖片的營養成分，並提供詳細的營養分析報告。你的回應必須是 JSON 格式並且嚴格遵守提供的 schema。"

const recommendationPrompt = `你是一位經驗豐富的註冊營養師和認證的私人教練，擅長為客戶打造高度個人化且可持續的健康計畫。
請根據以下用戶資料，為他/她量身定制一份詳細、實用的一日飲食菜單和一週運動計畫。
所有內容請使用繁體中文。

用戶資料:
%s- 飲食偏好: %s
- 日常活動/興趣: %s

任務要求:
1.  **一日飲食菜單 (Meal Plan):**
    -   設計一份包含早餐、午餐、晚餐和一次點心的一日菜單。
    -   菜單總熱量應約等於用戶的 TDEE，並根據其健康目標進行微調（減脂可略低，增肌可略高）。
    -   根據健康目標調整宏量營養素比例（例如，增肌需要更高蛋白質，減脂需要控制碳水和脂肪）。
    -   為每一餐提供一份簡單、易於製作的食譜，包含食材和步驟。
    -   **高度個人化:** 請務必考慮用戶的飲食偏好。例如，如果用戶喜歡甜食，請在點心中加入健康的甜味選擇（如水果、優格），而不是完全禁止。如果用戶不吃辣，請避免辛辣的食譜。

2.  **一週運動計畫 (Exercise Plan):**
    -   設計一份包含3-5天訓練的一週運動計畫，計畫必須實用且易於執行。
    -   計畫應與用戶的健康目標直接相關：
        -   **減重減脂:** 結合有氧運動和基礎力量訓練。
        -   **增肌塑形:** 側重於力量訓練，並輔以適量有氧。
        -   **維持健康:** 包含多樣化的運動。
    -   為每個訓練日指定訓練重點。
    -   為每個訓練動作提供名稱、建議組數和次數，以及簡短的動作描述。
    -   **高度個人化:** 請結合用戶的日常活動和興趣。例如，如果用戶活動水平較低但喜歡散步，請建議將散步升級為快走或增加時長，使其成為有效的運動。將建議融入用戶現有習慣中，使其更容易執行。

請嚴格按照提供的 JSON schema 格式返回你的回答。`

const riskAssessmentPrompt = `你是一位結合了數據分析能力的註冊營養師和預防醫學專家。你的任務是根據用戶的個人健康資料和長期的平均每日營養攝取數據，評估其潛在的健康風險，並提供專業、可行的預防建議。所有內容請使用繁體中文。

用戶資料:
%s
長期平均每日營養攝取:
- 總熱量: %.0f 大卡
- 蛋白質: %.1f 克
- 碳水化合物: %.1f 克
- 脂肪: %.1f 克
- 鈉: %.0f 毫克
- 膳食纖維: %.1f 克

任務要求:
1.  **綜合評估:**
    -   首先，提供一個整體的健康風險等級 (low, medium, high)。
    -   接著，撰寫一段簡潔的總結，概括用戶目前的飲食模式對長期健康的影響。

2.  **識別潛在風險:**
    -   根據提供的數據，識別出 2-3 個最主要的潛在健康風險。
    -   常見風險包括但不限於：第二型糖尿病（與高碳水/總熱量有關）、心血管疾病（與高脂肪/高鈉有關）、營養不均衡、膳食纖維攝取不足等。
    -   對於每一個識別出的風險:
        a.  **風險名稱 (riskName):** 清晰地命名風險，例如 "心血管健康風險"。
        b.  **解釋 (explanation):** 具體說明為什麼基於用戶的數據，這個風險值得關注。例如："您每日的平均脂肪和鈉攝取量偏高，長期下來可能增加高血壓和膽固醇問題的風險。"
        c.  **建議 (recommendation):** 提供 1-2 條具體、可行的改善建議。例如："建議您選擇瘦肉蛋白，並在烹飪時減少鹽的使用量。"

請嚴格按照提供的 JSON schema 格式返回你的回答。`

const unspecified = "無特別註明"

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// profileLines renders the shared "用戶資料" block.
func profileLines(p models.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- 年齡: %d\n", p.Age)
	fmt.Fprintf(&b, "- 性別: %s\n", p.Gender.Label())
	fmt.Fprintf(&b, "- 身高: %s cm\n", formatNumber(p.Height))
	fmt.Fprintf(&b, "- 體重: %s kg\n", formatNumber(p.Weight))
	fmt.Fprintf(&b, "- 每日總能量消耗 (TDEE): %.0f 大卡\n", p.TDEE)
	fmt.Fprintf(&b, "- 健康目標: %s\n", p.HealthGoal.Label())
	return b.String()
}

func orUnspecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return unspecified
	}
	return s
}

func structured(schema *GeminiSchema, parts ...GeminiPart) GeminiRequest {
	return GeminiRequest{
		Contents: []GeminiContent{{Role: "user", Parts: parts}},
		GenerationConfig: &GenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
		},
	}
}

// BuildAnalysisRequest asks for an analysis of a base64 JPEG.
func BuildAnalysisRequest(imageBase64 string) GeminiRequest {
	return structured(AnalysisSchema,
		GeminiPart{Text: analysisPrompt},
		GeminiPart{InlineData: &InlineData{MimeType: "image/jpeg", Data: imageBase64}},
	)
}

// BuildRecommendationRequest asks for a meal and exercise plan for p.
func BuildRecommendationRequest(p models.Profile) GeminiRequest {
	prompt := fmt.Sprintf(recommendationPrompt,
		profileLines(p),
		orUnspecified(p.DietaryPreferences),
		orUnspecified(p.CommonActivities),
	)
	return structured(RecommendationSchema, GeminiPart{Text: prompt})
}

// BuildRiskAssessmentRequest asks for a risk assessment of p eating avg per
// day.
func BuildRiskAssessmentRequest(p models.Profile, avg models.DailyTotals) GeminiRequest {
	prompt := fmt.Sprintf(riskAssessmentPrompt,
		profileLines(p),
		avg.Calories, avg.Protein, avg.Carbohydrates, avg.Fat, avg.Sodium, avg.Fiber,
	)
	return structured(RiskAssessmentSchema, GeminiPart{Text: prompt})
}
