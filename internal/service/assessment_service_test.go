package service

import (
	"os"
	"testing"
	"time"

	"career_compass_backend/internal/assessment"
	"career_compass_backend/internal/config"
	"career_compass_backend/internal/model"
	"career_compass_backend/internal/util"
	"career_compass_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func newTestService(cfg config.AssessmentConfig) *AssessmentService {
	return NewAssessmentService(assessment.NewDefaultBank(), cfg)
}

func answerAll(t *testing.T, svc *AssessmentService, runID string, sec *SectionResponse) {
	t.Helper()
	bank := assessment.NewDefaultBank()
	src := bank.Section(sec.Section)
	for _, q := range sec.Questions {
		v := src.QuestionByID(q.ID).CorrectIndex
		if q.Kind != model.KindMultipleChoice {
			v = 4
		}
		_, err := svc.SubmitAnswer(runID, SubmitAnswerRequest{QuestionID: q.ID, Value: &v})
		require.NoError(t, err)
	}
}

func TestServiceRunLifecycle(t *testing.T) {
	svc := newTestService(config.AssessmentConfig{AdvanceDelayMs: 0, RunTTLMinutes: 60})
	defer svc.Shutdown()

	run := svc.StartRun()
	require.NotEmpty(t, run.RunID)
	assert.Equal(t, assessment.RunStatusInProgress, run.Status)
	assert.Equal(t, model.SectionPsychometric, run.NextSection)
	assert.Equal(t, 1, svc.RunCount())

	got, err := svc.GetRun(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, run.RunID, got.RunID)

	_, err = svc.GetRun("nope")
	assert.ErrorIs(t, err, util.ErrRunNotFound)

	require.NoError(t, svc.DiscardRun(run.RunID))
	assert.Equal(t, 0, svc.RunCount())
	assert.ErrorIs(t, svc.DiscardRun(run.RunID), util.ErrRunNotFound)
}

func TestServiceFullAssessment(t *testing.T) {
	svc := newTestService(config.AssessmentConfig{AdvanceDelayMs: 0, RunTTLMinutes: 60})
	defer svc.Shutdown()

	run := svc.StartRun()

	_, err := svc.Recommendation(run.RunID)
	assert.ErrorIs(t, err, util.ErrPrematureCompletion)

	for _, id := range model.ScoredSectionOrder {
		sec, err := svc.StartSection(run.RunID, id)
		require.NoError(t, err)
		assert.Equal(t, id, sec.Section)

		answerAll(t, svc, run.RunID, sec)

		result, err := svc.FinalizeSection(run.RunID, id)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Composite, 0)
		assert.LessOrEqual(t, result.Composite, 100)
	}

	state, err := svc.GetRun(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, assessment.RunStatusCompleted, state.Status)

	rec, err := svc.Recommendation(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, 100, rec.TechnicalScore)
	assert.Equal(t, model.VerdictProceed, rec.Verdict)
	assert.Len(t, rec.CareerMatches, 5)
	assert.Len(t, rec.LearningPath, 6)
}

func TestServiceSectionOrderEnforced(t *testing.T) {
	svc := newTestService(config.AssessmentConfig{AdvanceDelayMs: 0, RunTTLMinutes: 60})
	defer svc.Shutdown()

	run := svc.StartRun()

	_, err := svc.StartSection(run.RunID, model.SectionWiscar)
	assert.ErrorIs(t, err, util.ErrOutOfOrderSection)

	_, err = svc.StartSection(run.RunID, "bogus")
	assert.ErrorIs(t, err, util.ErrUnknownSection)

	_, err = svc.FinalizeSection(run.RunID, model.SectionPsychometric)
	assert.ErrorIs(t, err, util.ErrSectionNotActive)
}

func TestServiceFinalizeChecksSectionMatch(t *testing.T) {
	svc := newTestService(config.AssessmentConfig{AdvanceDelayMs: 0, RunTTLMinutes: 60})
	defer svc.Shutdown()

	run := svc.StartRun()
	sec, err := svc.StartSection(run.RunID, model.SectionPsychometric)
	require.NoError(t, err)
	answerAll(t, svc, run.RunID, sec)

	_, err = svc.FinalizeSection(run.RunID, model.SectionTechnical)
	assert.ErrorIs(t, err, util.ErrSectionNotActive)

	_, err = svc.FinalizeSection(run.RunID, model.SectionPsychometric)
	assert.NoError(t, err)
}

func TestServiceDeferredAdvance(t *testing.T) {
	svc := newTestService(config.AssessmentConfig{AdvanceDelayMs: 5, RunTTLMinutes: 60})
	defer svc.Shutdown()

	run := svc.StartRun()
	sec, err := svc.StartSection(run.RunID, model.SectionPsychometric)
	require.NoError(t, err)

	v := 4
	resp, err := svc.SubmitAnswer(run.RunID, SubmitAnswerRequest{QuestionID: sec.Questions[0].ID, Value: &v})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Answered)
	assert.False(t, resp.SectionComplete)

	assert.Eventually(t, func() bool {
		q, err := svc.ActiveQuestion(run.RunID)
		return err == nil && q.Index == 1
	}, time.Second, 5*time.Millisecond, "cursor should advance after the delay")
}

func TestServiceJumpCancelsAdvance(t *testing.T) {
	svc := newTestService(config.AssessmentConfig{AdvanceDelayMs: 50, RunTTLMinutes: 60})
	defer svc.Shutdown()

	run := svc.StartRun()
	sec, err := svc.StartSection(run.RunID, model.SectionPsychometric)
	require.NoError(t, err)

	v := 4
	_, err = svc.SubmitAnswer(run.RunID, SubmitAnswerRequest{QuestionID: sec.Questions[0].ID, Value: &v})
	require.NoError(t, err)

	idx := 5
	q, err := svc.JumpTo(run.RunID, JumpRequest{Index: &idx})
	require.NoError(t, err)
	assert.Equal(t, 5, q.Index)

	// The pending advance was cancelled; the cursor stays where the jump
	// put it.
	time.Sleep(100 * time.Millisecond)
	q, err = svc.ActiveQuestion(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, 5, q.Index)
}

func TestServiceInvalidAnswerValues(t *testing.T) {
	svc := newTestService(config.AssessmentConfig{AdvanceDelayMs: 0, RunTTLMinutes: 60})
	defer svc.Shutdown()

	run := svc.StartRun()
	_, err := svc.StartSection(run.RunID, model.SectionPsychometric)
	require.NoError(t, err)

	bad := 9
	_, err = svc.SubmitAnswer(run.RunID, SubmitAnswerRequest{QuestionID: "problem_solving", Value: &bad})
	assert.ErrorIs(t, err, util.ErrInvalidResponse)

	v := 3
	_, err = svc.SubmitAnswer(run.RunID, SubmitAnswerRequest{QuestionID: "ghost", Value: &v})
	assert.ErrorIs(t, err, util.ErrUnknownQuestion)
}

func TestServiceSectionsStripAnswerKey(t *testing.T) {
	svc := newTestService(config.AssessmentConfig{AdvanceDelayMs: 0, RunTTLMinutes: 60})
	defer svc.Shutdown()

	secs := svc.Sections()
	require.Len(t, secs, 3)
	assert.Len(t, secs[0].Questions, 10)
	assert.Len(t, secs[1].Questions, 6)
	assert.Len(t, secs[2].Questions, 12)

	for _, q := range secs[1].Questions {
		assert.NotEmpty(t, q.Options)
	}
}

func TestServiceSweepIdleRuns(t *testing.T) {
	svc := newTestService(config.AssessmentConfig{AdvanceDelayMs: 0, RunTTLMinutes: 0})
	defer svc.Shutdown()

	svc.StartRun()
	svc.StartRun()
	require.Equal(t, 2, svc.RunCount())

	time.Sleep(time.Millisecond)
	assert.Equal(t, 2, svc.SweepIdleRuns())
	assert.Equal(t, 0, svc.RunCount())
}

func TestServiceUpdateConfig(t *testing.T) {
	svc := newTestService(config.AssessmentConfig{AdvanceDelayMs: 400, RunTTLMinutes: 60})
	defer svc.Shutdown()

	svc.UpdateConfig(config.AssessmentConfig{AdvanceDelayMs: 10, RunTTLMinutes: 5})
	assert.Equal(t, 10*time.Millisecond, svc.delay())
	assert.Equal(t, 5*time.Minute, svc.ttl())
}
