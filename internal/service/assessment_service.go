package service

import (
	"sync"
	"time"

	"career_compass_backend/internal/assessment"
	"career_compass_backend/internal/config"
	"career_compass_backend/internal/model"
	"career_compass_backend/internal/util"
	"career_compass_backend/pkg/logger"
	"career_compass_backend/pkg/monitoring"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AssessmentService orchestrates assessment runs. Runs live only in memory:
// a uuid-keyed registry fronted by a mutex, swept for idle entries by the
// app's background ticker.
type AssessmentService struct {
	bank      *assessment.Bank
	scheduler *assessment.AdvanceScheduler

	mu   sync.RWMutex
	runs map[string]*runEntry

	cfgMu        sync.RWMutex
	advanceDelay time.Duration
	runTTL       time.Duration
}

type runEntry struct {
	run      *assessment.Run
	lastSeen time.Time
}

func NewAssessmentService(bank *assessment.Bank, cfg config.AssessmentConfig) *AssessmentService {
	return &AssessmentService{
		bank:         bank,
		scheduler:    assessment.NewAdvanceScheduler(),
		runs:         make(map[string]*runEntry),
		advanceDelay: time.Duration(cfg.AdvanceDelayMs) * time.Millisecond,
		runTTL:       time.Duration(cfg.RunTTLMinutes) * time.Minute,
	}
}

// UpdateConfig applies reloaded assessment settings to live traffic.
func (s *AssessmentService) UpdateConfig(cfg config.AssessmentConfig) {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()
	s.advanceDelay = time.Duration(cfg.AdvanceDelayMs) * time.Millisecond
	s.runTTL = time.Duration(cfg.RunTTLMinutes) * time.Minute
}

func (s *AssessmentService) delay() time.Duration {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.advanceDelay
}

func (s *AssessmentService) ttl() time.Duration {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.runTTL
}

// RunResponse is the client view of a run's state.
type RunResponse struct {
	RunID          string               `json:"runId"`
	Status         assessment.RunStatus `json:"status"`
	ActiveSection  model.SectionID      `json:"activeSection,omitempty"`
	NextSection    model.SectionID      `json:"nextSection"`
	Answered       int                  `json:"answered"`
	Total          int                  `json:"total"`
	SectionResults model.AssessmentData `json:"sectionResults"`
}

// StartRun registers a fresh run and returns its id.
func (s *AssessmentService) StartRun() *RunResponse {
	id := uuid.NewString()
	run := assessment.NewRun(s.bank)

	s.mu.Lock()
	s.runs[id] = &runEntry{run: run, lastSeen: time.Now()}
	s.mu.Unlock()

	monitoring.RunsStarted.Inc()
	logger.Log.Info("assessment run started", zap.String("runId", id))
	return s.runState(id, run)
}

// GetRun returns the current state of a run.
func (s *AssessmentService) GetRun(id string) (*RunResponse, error) {
	run, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return s.runState(id, run), nil
}

// DiscardRun drops a run and any pending auto-advance.
func (s *AssessmentService) DiscardRun(id string) error {
	s.mu.Lock()
	_, ok := s.runs[id]
	delete(s.runs, id)
	s.mu.Unlock()

	if !ok {
		return util.ErrRunNotFound
	}
	s.scheduler.Cancel(id)
	logger.Log.Info("assessment run discarded", zap.String("runId", id))
	return nil
}

// SectionResponse describes a section to the client, with the answer key
// stripped from its questions.
type SectionResponse struct {
	Section   model.SectionID      `json:"section"`
	Title     string               `json:"title"`
	Questions []QuestionView       `json:"questions"`
	Groups    []model.QuestionGroup `json:"groups,omitempty"`
}

// QuestionView is a question as the client sees it. The correct option index
// never leaves the server.
type QuestionView struct {
	ID       string           `json:"id"`
	Prompt   string           `json:"prompt"`
	Category string           `json:"category"`
	Kind     model.AnswerKind `json:"kind"`
	Options  []model.Option   `json:"options"`
}

func questionView(q *model.Question) QuestionView {
	return QuestionView{
		ID:       q.ID,
		Prompt:   q.Prompt,
		Category: q.Category,
		Kind:     q.Kind,
		Options:  q.Options,
	}
}

// StartSection activates a section of a run and returns its questions.
func (s *AssessmentService) StartSection(id string, section model.SectionID) (*SectionResponse, error) {
	run, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	s.scheduler.Cancel(id)
	if err := run.StartSection(section); err != nil {
		return nil, err
	}

	sec := s.bank.Section(section)
	views := make([]QuestionView, len(sec.Questions))
	for i := range sec.Questions {
		views[i] = questionView(&sec.Questions[i])
	}
	return &SectionResponse{
		Section:   sec.ID,
		Title:     sec.Title,
		Questions: views,
		Groups:    sec.Groups,
	}, nil
}

type SubmitAnswerRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	Value      *int   `json:"value" binding:"required"`
}

type SubmitAnswerResponse struct {
	Answered        int  `json:"answered"`
	Total           int  `json:"total"`
	SectionComplete bool `json:"sectionComplete"`
}

// SubmitAnswer records a response and arms the deferred advance. A second
// answer before the timer fires supersedes the pending advance.
func (s *AssessmentService) SubmitAnswer(id string, req SubmitAnswerRequest) (*SubmitAnswerResponse, error) {
	run, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	answered, err := run.SubmitAnswer(req.QuestionID, *req.Value)
	if err != nil {
		return nil, err
	}
	_, total, err := run.Progress()
	if err != nil {
		return nil, err
	}

	complete := answered == total
	if !complete {
		s.scheduler.Schedule(id, s.delay(), func() {
			if _, err := run.Advance(); err != nil {
				logger.Log.Warn("deferred advance skipped",
					zap.String("runId", id), zap.Error(err))
			}
		})
	} else {
		s.scheduler.Cancel(id)
	}

	return &SubmitAnswerResponse{
		Answered:        answered,
		Total:           total,
		SectionComplete: complete,
	}, nil
}

type JumpRequest struct {
	Index *int `json:"index" binding:"required"`
}

// QuestionResponse is the question under the cursor plus progress counters.
type QuestionResponse struct {
	Question QuestionView    `json:"question"`
	Index    int             `json:"index"`
	Total    int             `json:"total"`
	Answered int             `json:"answered"`
	Section  model.SectionID `json:"section"`
}

// JumpTo moves the cursor explicitly, cancelling any pending auto-advance.
func (s *AssessmentService) JumpTo(id string, req JumpRequest) (*QuestionResponse, error) {
	run, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	s.scheduler.Cancel(id)
	if err := run.JumpTo(*req.Index); err != nil {
		return nil, err
	}
	return s.activeQuestion(run)
}

// ActiveQuestion returns the question under the cursor.
func (s *AssessmentService) ActiveQuestion(id string) (*QuestionResponse, error) {
	run, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return s.activeQuestion(run)
}

func (s *AssessmentService) activeQuestion(run *assessment.Run) (*QuestionResponse, error) {
	q, index, total, err := run.CurrentQuestion()
	if err != nil {
		return nil, err
	}
	answered, _, err := run.Progress()
	if err != nil {
		return nil, err
	}
	return &QuestionResponse{
		Question: questionView(q),
		Index:    index,
		Total:    total,
		Answered: answered,
		Section:  run.ActiveSection(),
	}, nil
}

// FinalizeSection commits the active section's score. The section id in the
// path must match the active one.
func (s *AssessmentService) FinalizeSection(id string, section model.SectionID) (*model.SectionResult, error) {
	run, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	if s.bank.Section(section) == nil {
		return nil, util.ErrUnknownSection
	}
	if run.ActiveSection() != section {
		return nil, util.ErrSectionNotActive
	}
	s.scheduler.Cancel(id)

	result, err := run.FinalizeSection()
	if err != nil {
		return nil, err
	}
	monitoring.SectionsFinalized.WithLabelValues(string(section)).Inc()
	logger.Log.Info("section finalized",
		zap.String("runId", id),
		zap.String("section", string(section)),
		zap.Int("composite", result.Composite))
	return result, nil
}

// Recommendation derives the final results for a completed run.
func (s *AssessmentService) Recommendation(id string) (*model.Recommendation, error) {
	run, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	rec, err := run.Recommendation()
	if err != nil {
		return nil, err
	}
	monitoring.Recommendations.WithLabelValues(string(rec.Verdict)).Inc()
	return rec, nil
}

// Sections lists the question bank, answer keys stripped.
func (s *AssessmentService) Sections() []SectionResponse {
	secs := s.bank.Sections()
	out := make([]SectionResponse, 0, len(secs))
	for _, sec := range secs {
		views := make([]QuestionView, len(sec.Questions))
		for i := range sec.Questions {
			views[i] = questionView(&sec.Questions[i])
		}
		out = append(out, SectionResponse{
			Section:   sec.ID,
			Title:     sec.Title,
			Questions: views,
			Groups:    sec.Groups,
		})
	}
	return out
}

// RunCount reports the number of live runs; used by the health check.
func (s *AssessmentService) RunCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}

// SweepIdleRuns drops runs untouched for longer than the TTL and returns how
// many were removed.
func (s *AssessmentService) SweepIdleRuns() int {
	cutoff := time.Now().Add(-s.ttl())

	s.mu.Lock()
	var expired []string
	for id, e := range s.runs {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, id)
			delete(s.runs, id)
		}
	}
	s.mu.Unlock()

	for _, id := range expired {
		s.scheduler.Cancel(id)
	}
	if len(expired) > 0 {
		logger.Log.Info("idle runs swept", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// Shutdown stops all pending advance timers.
func (s *AssessmentService) Shutdown() {
	s.scheduler.Stop()
}

func (s *AssessmentService) lookup(id string) (*assessment.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.runs[id]
	if !ok {
		return nil, util.ErrRunNotFound
	}
	e.lastSeen = time.Now()
	return e.run, nil
}

func (s *AssessmentService) runState(id string, run *assessment.Run) *RunResponse {
	resp := &RunResponse{
		RunID:          id,
		Status:         run.Status(),
		ActiveSection:  run.ActiveSection(),
		NextSection:    run.NextSection(),
		SectionResults: run.Data(),
	}
	if answered, total, err := run.Progress(); err == nil {
		resp.Answered = answered
		resp.Total = total
	}
	return resp
}
