package quiz

// Certification-readiness policy. Thresholds compare against the score
// percentage after one-decimal rounding, matching what the user sees.
const (
	DefaultReadyThreshold  = 80.0
	DefaultAlmostThreshold = 70.0

	ReadyLabel  = "Excellent - Ready for the exam"
	AlmostLabel = "Good - Almost ready"
	StudyLabel  = "Needs more study"
)

// ReadinessPolicy maps a score percentage to a qualitative label plus the CSS
// level class the presentation layer styles results with.
type ReadinessPolicy struct {
	ReadyThreshold  float64
	AlmostThreshold float64
}

func DefaultReadinessPolicy() ReadinessPolicy {
	return ReadinessPolicy{
		ReadyThreshold:  DefaultReadyThreshold,
		AlmostThreshold: DefaultAlmostThreshold,
	}
}

func (p ReadinessPolicy) Level(scorePercentage float64) (label, levelClass string) {
	switch {
	case scorePercentage >= p.ReadyThreshold:
		return ReadyLabel, "success"
	case scorePercentage >= p.AlmostThreshold:
		return AlmostLabel, "warning"
	default:
		return StudyLabel, "danger"
	}
}

// ScorePercentage is correct/total*100 rounded to one decimal place.
func ScorePercentage(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return roundOneDecimal(float64(correct) / float64(total) * 100)
}

type QuestionDetail struct {
	Question       Question `json:"question"`
	UserDisplay    string   `json:"user_answer"`
	CorrectDisplay string   `json:"correct_answer"`
	Correct        bool     `json:"is_correct"`
}

type Report struct {
	CorrectCount    int              `json:"correct_count"`
	TotalQuestions  int              `json:"total_questions"`
	ScorePercentage float64          `json:"score_percentage"`
	ReadinessLabel  string           `json:"certification_level"`
	LevelClass      string           `json:"level_class"`
	Details         []QuestionDetail `json:"question_details"`
}
