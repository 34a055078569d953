package model

// SectionResult is the immutable outcome of one finalized section.
// swagger:model SectionResult
type SectionResult struct {
	Section   SectionID      `json:"section"`
	Responses map[string]int `json:"responses"`
	Composite int            `json:"composite"`           // 0-100
	SubScores map[string]int `json:"subScores,omitempty"` // group code -> 0-100
}

// AssessmentData aggregates one result per scored section. Each slot is
// written exactly once, at finalization.
// swagger:model AssessmentData
type AssessmentData struct {
	Psychometric *SectionResult `json:"psychometric,omitempty"`
	Technical    *SectionResult `json:"technical,omitempty"`
	Wiscar       *SectionResult `json:"wiscar,omitempty"`
}

// Result returns the slot for a scored section, or nil for other ids.
func (d *AssessmentData) Result(id SectionID) *SectionResult {
	switch id {
	case SectionPsychometric:
		return d.Psychometric
	case SectionTechnical:
		return d.Technical
	case SectionWiscar:
		return d.Wiscar
	}
	return nil
}

// Complete reports whether all three scored sections have been finalized.
func (d *AssessmentData) Complete() bool {
	return d.Psychometric != nil && d.Technical != nil && d.Wiscar != nil
}

// Verdict is the three-way recommendation outcome.
type Verdict string

const (
	VerdictProceed        Verdict = "proceed"
	VerdictConditional    Verdict = "conditional"
	VerdictNotRecommended Verdict = "not_recommended"
)

// CareerMatch pairs a role with its derived match percentage.
type CareerMatch struct {
	Role        string `json:"role"`
	Description string `json:"description"`
	Match       int    `json:"match"`
}

// LearningPhase is one step of the fixed learning path.
type LearningPhase struct {
	Phase    int      `json:"phase"`
	Title    string   `json:"title"`
	Topics   []string `json:"topics"`
	Duration string   `json:"duration"`
}

// Recommendation is a pure function of a complete AssessmentData; it is
// recomputed on demand and never stored.
// swagger:model Recommendation
type Recommendation struct {
	OverallScore      int            `json:"overallScore"`
	PsychometricScore int            `json:"psychometricScore"`
	TechnicalScore    int            `json:"technicalScore"`
	ReadinessScore    int            `json:"readinessScore"`
	DimensionScores   map[string]int `json:"dimensionScores"`
	Verdict           Verdict        `json:"verdict"`
	Message           string         `json:"message"`
	CareerMatches     []CareerMatch  `json:"careerMatches"`
	LearningPath      []LearningPhase `json:"learningPath"`
	ActivePhase       int            `json:"activePhase"`
	NextSteps         []string       `json:"nextSteps"`
}
