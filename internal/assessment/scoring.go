package assessment

import (
	"math"

	"career_compass_backend/internal/model"
)

// ScoreSection reduces a section's responses to its SectionResult. Responses
// are assumed valid (SubmitAnswer gates the domain); unanswered questions are
// simply absent from the mean, and an empty group scores 0 rather than
// dividing by zero.
func ScoreSection(sec *model.Section, responses map[string]int) *model.SectionResult {
	result := &model.SectionResult{
		Section:   sec.ID,
		Responses: copyResponses(responses),
	}

	if len(sec.Groups) > 0 {
		result.SubScores = make(map[string]int, len(sec.Groups))
		for _, g := range sec.Groups {
			result.SubScores[g.Code] = scoreQuestions(sec, g.QuestionIDs, responses)
		}
	}

	switch sec.Rule {
	case model.RuleCorrectness:
		result.Composite = scoreAll(sec, responses)
	case model.RuleNormalizedMean:
		if len(sec.Groups) > 0 {
			// The composite of a dimensioned section is the mean of its
			// dimension scores, each rounded first.
			result.Composite = roundedMean(subScoreValues(sec, result.SubScores))
		} else {
			result.Composite = scoreAll(sec, responses)
		}
	}

	return result
}

func scoreAll(sec *model.Section, responses map[string]int) int {
	ids := make([]string, len(sec.Questions))
	for i := range sec.Questions {
		ids[i] = sec.Questions[i].ID
	}
	return scoreQuestions(sec, ids, responses)
}

// scoreQuestions is the shared percentage rule: the mean of per-question
// contributions (correctness 0/1 or value/max), scaled to 0-100 and rounded.
// Correctness divides by the full question count (a missing answer counts as
// wrong); the scale rules average over the answered subset.
func scoreQuestions(sec *model.Section, ids []string, responses map[string]int) int {
	sum := 0.0
	answered := 0
	total := 0
	for _, id := range ids {
		q := sec.QuestionByID(id)
		if q == nil {
			continue
		}
		total++
		v, ok := responses[id]
		if !ok {
			continue
		}
		sum += q.Score(v)
		answered++
	}

	count := answered
	if sec.Rule == model.RuleCorrectness {
		count = total
	}
	if count == 0 {
		return 0
	}
	return int(math.Round(sum / float64(count) * 100))
}

func subScoreValues(sec *model.Section, subScores map[string]int) []int {
	vals := make([]int, 0, len(sec.Groups))
	for _, g := range sec.Groups {
		vals = append(vals, subScores[g.Code])
	}
	return vals
}

func roundedMean(vals []int) int {
	if len(vals) == 0 {
		return 0
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return int(math.Round(float64(sum) / float64(len(vals))))
}

func copyResponses(responses map[string]int) map[string]int {
	out := make(map[string]int, len(responses))
	for k, v := range responses {
		out[k] = v
	}
	return out
}
