package model

// SectionID identifies one of the fixed assessment sections.
type SectionID string

const (
	SectionPsychometric SectionID = "psychometric"
	SectionTechnical    SectionID = "technical"
	SectionWiscar       SectionID = "wiscar"
	SectionResults      SectionID = "results"
)

// ScoredSectionOrder is the fixed order in which the question sections are
// taken. The results section follows but carries no questions of its own.
var ScoredSectionOrder = []SectionID{SectionPsychometric, SectionTechnical, SectionWiscar}

// AnswerKind tags the question variant. agreement, confidence and scenario
// are five-point scales answered with 1-based values; multiple_choice is
// answered with the 0-based index of the chosen option and checked against
// CorrectIndex.
type AnswerKind string

const (
	KindAgreement      AnswerKind = "agreement"
	KindMultipleChoice AnswerKind = "multiple_choice"
	KindConfidence     AnswerKind = "confidence"
	KindScenario       AnswerKind = "scenario"
)

// Option is one selectable answer. Value follows the positional convention
// of the question's kind.
type Option struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// swagger:model Question
type Question struct {
	ID           string     `json:"id"`
	Prompt       string     `json:"prompt"`
	Category     string     `json:"category"`
	Kind         AnswerKind `json:"kind"`
	Options      []Option   `json:"options"`
	CorrectIndex int        `json:"-"` // multiple_choice only, never sent to clients
}

// ValidValue reports whether v is within the question's option domain.
func (q *Question) ValidValue(v int) bool {
	for _, o := range q.Options {
		if o.Value == v {
			return true
		}
	}
	return false
}

// MaxValue is the highest option value, the normalization ceiling for scale
// kinds.
func (q *Question) MaxValue() int {
	max := 0
	for _, o := range q.Options {
		if o.Value > max {
			max = o.Value
		}
	}
	return max
}

// Score returns the question's contribution in [0,1] for a recorded value:
// correctness for multiple choice, value/max for the scale kinds.
func (q *Question) Score(value int) float64 {
	if q.Kind == KindMultipleChoice {
		if value == q.CorrectIndex {
			return 1
		}
		return 0
	}
	max := q.MaxValue()
	if max == 0 {
		return 0
	}
	return float64(value) / float64(max)
}

// QuestionGroup names a scored subset of a section's questions: the technical
// sub-groups and the WISCAR dimensions.
type QuestionGroup struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	QuestionIDs []string `json:"questionIds"`
}

// ScoringRule selects how a section composite is computed.
type ScoringRule string

const (
	RuleCorrectness    ScoringRule = "correctness"
	RuleNormalizedMean ScoringRule = "normalized_mean"
)

// Section is an ordered battery of questions with one scoring rule.
type Section struct {
	ID          SectionID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Rule        ScoringRule `json:"rule"`
	Questions   []Question  `json:"questions"`
	Groups      []QuestionGroup `json:"groups,omitempty"`
}

// QuestionByID returns the section's question with the given id, or nil.
func (s *Section) QuestionByID(id string) *Question {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}
