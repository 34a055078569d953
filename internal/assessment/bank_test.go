package assessment

import (
	"testing"

	"career_compass_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBankSections(t *testing.T) {
	b := NewDefaultBank()

	secs := b.Sections()
	require.Len(t, secs, 3)
	assert.Equal(t, model.SectionPsychometric, secs[0].ID)
	assert.Equal(t, model.SectionTechnical, secs[1].ID)
	assert.Equal(t, model.SectionWiscar, secs[2].ID)

	assert.Len(t, b.Section(model.SectionPsychometric).Questions, 10)
	assert.Len(t, b.Section(model.SectionTechnical).Questions, 6)
	assert.Len(t, b.Section(model.SectionWiscar).Questions, 12)

	assert.Nil(t, b.Section(model.SectionResults))
	assert.Nil(t, b.Section("bogus"))
}

func TestDefaultBankGroupsCoverQuestions(t *testing.T) {
	b := NewDefaultBank()

	for _, id := range []model.SectionID{model.SectionTechnical, model.SectionWiscar} {
		sec := b.Section(id)
		covered := make(map[string]bool)
		for _, g := range sec.Groups {
			for _, qid := range g.QuestionIDs {
				require.NotNil(t, sec.QuestionByID(qid), "group %s references %s", g.Code, qid)
				assert.False(t, covered[qid], "question %s grouped twice", qid)
				covered[qid] = true
			}
		}
		assert.Len(t, covered, len(sec.Questions), "section %s", id)
	}
}

func TestDefaultBankWiscarDimensions(t *testing.T) {
	sec := NewDefaultBank().Section(model.SectionWiscar)

	codes := make([]string, len(sec.Groups))
	for i, g := range sec.Groups {
		codes[i] = g.Code
		assert.Len(t, g.QuestionIDs, 2, "dimension %s", g.Code)
	}
	assert.Equal(t, []string{"W", "I", "S", "C", "A", "R"}, codes)
}

func TestNewBankRejectsInvalidSections(t *testing.T) {
	tests := []struct {
		name string
		sec  model.Section
	}{
		{
			name: "no questions",
			sec:  model.Section{ID: "empty", Rule: model.RuleNormalizedMean},
		},
		{
			name: "question without options",
			sec: model.Section{
				ID:        "bare",
				Rule:      model.RuleNormalizedMean,
				Questions: []model.Question{{ID: "q1", Kind: model.KindAgreement}},
			},
		},
		{
			name: "correct index out of bounds",
			sec: model.Section{
				ID:   "mc",
				Rule: model.RuleCorrectness,
				Questions: []model.Question{{
					ID:           "q1",
					Kind:         model.KindMultipleChoice,
					Options:      choiceOptions("a", "b"),
					CorrectIndex: 5,
				}},
			},
		},
		{
			name: "duplicate question id",
			sec: model.Section{
				ID:   "dup",
				Rule: model.RuleNormalizedMean,
				Questions: []model.Question{
					{ID: "q1", Kind: model.KindAgreement, Options: likertOptions()},
					{ID: "q1", Kind: model.KindAgreement, Options: likertOptions()},
				},
			},
		},
		{
			name: "group references unknown question",
			sec: model.Section{
				ID:   "ghost",
				Rule: model.RuleNormalizedMean,
				Questions: []model.Question{
					{ID: "q1", Kind: model.KindAgreement, Options: likertOptions()},
				},
				Groups: []model.QuestionGroup{{Code: "G", QuestionIDs: []string{"nope"}}},
			},
		},
		{
			name: "groups leave a question uncovered",
			sec: model.Section{
				ID:   "partial",
				Rule: model.RuleNormalizedMean,
				Questions: []model.Question{
					{ID: "q1", Kind: model.KindAgreement, Options: likertOptions()},
					{ID: "q2", Kind: model.KindAgreement, Options: likertOptions()},
				},
				Groups: []model.QuestionGroup{{Code: "G", QuestionIDs: []string{"q1"}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newBank(tt.sec)
			assert.Error(t, err)
		})
	}
}

func TestQuestionValueDomains(t *testing.T) {
	b := NewDefaultBank()

	likert := b.Section(model.SectionPsychometric).QuestionByID("problem_solving")
	require.NotNil(t, likert)
	for v := 1; v <= 5; v++ {
		assert.True(t, likert.ValidValue(v), "likert value %d", v)
	}
	assert.False(t, likert.ValidValue(0))
	assert.False(t, likert.ValidValue(6))

	mc := b.Section(model.SectionTechnical).QuestionByID("pattern_1")
	require.NotNil(t, mc)
	for v := 0; v <= 3; v++ {
		assert.True(t, mc.ValidValue(v), "choice index %d", v)
	}
	assert.False(t, mc.ValidValue(-1))
	assert.False(t, mc.ValidValue(4))
}
