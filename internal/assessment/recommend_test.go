package assessment

import (
	"testing"

	"career_compass_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataWithComposites(psych, tech, wiscar int) *model.AssessmentData {
	return &model.AssessmentData{
		Psychometric: &model.SectionResult{Section: model.SectionPsychometric, Composite: psych},
		Technical:    &model.SectionResult{Section: model.SectionTechnical, Composite: tech},
		Wiscar: &model.SectionResult{
			Section:   model.SectionWiscar,
			Composite: wiscar,
			SubScores: map[string]int{"W": wiscar, "I": wiscar, "S": wiscar, "C": wiscar, "A": wiscar, "R": wiscar},
		},
	}
}

func TestRecommendVerdictBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		overall int
		verdict model.Verdict
	}{
		{"eighty proceeds", 80, model.VerdictProceed},
		{"seventy-nine is conditional", 79, model.VerdictConditional},
		{"sixty is conditional", 60, model.VerdictConditional},
		{"fifty-nine is not recommended", 59, model.VerdictNotRecommended},
		{"zero is not recommended", 0, model.VerdictNotRecommended},
		{"hundred proceeds", 100, model.VerdictProceed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Recommend(dataWithComposites(tt.overall, tt.overall, tt.overall))
			assert.Equal(t, tt.overall, rec.OverallScore)
			assert.Equal(t, tt.verdict, rec.Verdict)
			assert.NotEmpty(t, rec.Message)
		})
	}
}

func TestRecommendOverallIsRoundedMean(t *testing.T) {
	rec := Recommend(dataWithComposites(80, 50, 70))

	assert.Equal(t, 67, rec.OverallScore)
	assert.Equal(t, model.VerdictConditional, rec.Verdict)
	assert.Equal(t, "You're close – address a few key areas to prepare.", rec.Message)
}

func TestRecommendCareerMatches(t *testing.T) {
	rec := Recommend(dataWithComposites(80, 50, 70))

	require.Len(t, rec.CareerMatches, 5)

	byRole := make(map[string]int, len(rec.CareerMatches))
	for _, cm := range rec.CareerMatches {
		byRole[cm.Role] = cm.Match
	}

	assert.Equal(t, rec.OverallScore, byRole["Python Full Stack Developer"])
	assert.Equal(t, 70, byRole["Django Developer"], "max(technical, readiness)")
	assert.Equal(t, 50, byRole["Backend Engineer (Python)"])
	assert.Equal(t, 65, byRole["AI/ML-Enabled App Developer"], "round((50+80)/2)")
	assert.Equal(t, 60, byRole["Python DevOps Engineer"], "round((50+70)/2)")
}

func TestRecommendLearningPath(t *testing.T) {
	rec := Recommend(dataWithComposites(90, 90, 90))

	require.Len(t, rec.LearningPath, 6)
	for i, phase := range rec.LearningPath {
		assert.Equal(t, i+1, phase.Phase)
		assert.NotEmpty(t, phase.Title)
		assert.NotEmpty(t, phase.Topics)
		assert.NotEmpty(t, phase.Duration)
	}
	assert.Equal(t, "Python Foundations", rec.LearningPath[0].Title)
	assert.Equal(t, "Deployment & DevOps", rec.LearningPath[5].Title)
}

func TestRecommendActivePhase(t *testing.T) {
	tests := []struct {
		tech  int
		phase int
	}{
		{0, 1},
		{59, 1},
		{60, 3},
		{79, 3},
		{80, 4},
		{100, 4},
	}

	for _, tt := range tests {
		rec := Recommend(dataWithComposites(70, tt.tech, 70))
		assert.Equal(t, tt.phase, rec.ActivePhase, "tech=%d", tt.tech)
	}
}

func TestRecommendNextSteps(t *testing.T) {
	proceed := Recommend(dataWithComposites(90, 90, 90))
	require.Len(t, proceed.NextSteps, 3)
	assert.Contains(t, proceed.NextSteps[0], "Start Learning Now")

	// The conditional tier names the weaker area.
	weakTech := Recommend(dataWithComposites(80, 50, 70))
	require.Len(t, weakTech.NextSteps, 3)
	assert.Contains(t, weakTech.NextSteps[0], "programming basics and logical thinking")

	weakPsych := Recommend(dataWithComposites(50, 80, 70))
	assert.Contains(t, weakPsych.NextSteps[0], "psychological readiness and motivation")

	no := Recommend(dataWithComposites(30, 30, 30))
	require.Len(t, no.NextSteps, 3)
	assert.Contains(t, no.NextSteps[0], "Consider Alternatives")
}

func TestRecommendDimensionScores(t *testing.T) {
	data := dataWithComposites(70, 70, 70)
	data.Wiscar.SubScores = map[string]int{"W": 80, "I": 60, "S": 40, "C": 90, "A": 70, "R": 50}

	rec := Recommend(data)
	assert.Equal(t, data.Wiscar.SubScores, rec.DimensionScores)

	// The recommendation holds a copy, not the live map.
	data.Wiscar.SubScores["W"] = 0
	assert.Equal(t, 80, rec.DimensionScores["W"])
}

func TestRecommendDeterministic(t *testing.T) {
	a := Recommend(dataWithComposites(72, 64, 81))
	b := Recommend(dataWithComposites(72, 64, 81))
	assert.Equal(t, a, b)
}
