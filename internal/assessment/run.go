package assessment

import (
	"sync"

	"career_compass_backend/internal/model"
	"career_compass_backend/internal/util"
)

// RunStatus enumerates the lifecycle states of a run.
type RunStatus string

const (
	RunStatusInProgress RunStatus = "IN_PROGRESS"
	RunStatusCompleted  RunStatus = "COMPLETED"
)

// Run is the finite-state object of one assessment: the active section, the
// question cursor, the response store and the committed section results. It
// is mutated only through the operations below, all guarded by one mutex so
// the auto-advance timer can call in from its own goroutine. Nothing here
// survives the process; a restart discards and recreates the whole thing.
type Run struct {
	mu sync.Mutex

	bank        *Bank
	active      model.SectionID
	questionIdx int
	responses   map[string]int
	data        model.AssessmentData
}

func NewRun(bank *Bank) *Run {
	return &Run{bank: bank}
}

// StartSection activates a section. Sections are taken in the fixed order;
// the active, unfinalized section may be restarted in place (its responses
// are kept), a finalized one may not be reopened.
func (r *Run) StartSection(id model.SectionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sec := r.bank.Section(id)
	if sec == nil {
		return util.ErrUnknownSection
	}
	if r.data.Result(id) != nil {
		return util.ErrSectionFinalized
	}
	if id == r.active {
		return nil
	}
	if id != r.nextSectionLocked() {
		return util.ErrOutOfOrderSection
	}

	r.active = id
	r.questionIdx = 0
	r.responses = make(map[string]int, len(sec.Questions))
	return nil
}

// nextSectionLocked is the first scored section without a committed result.
func (r *Run) nextSectionLocked() model.SectionID {
	for _, id := range model.ScoredSectionOrder {
		if r.data.Result(id) == nil {
			return id
		}
	}
	return model.SectionResults
}

// SubmitAnswer records (or overwrites) the response for a question of the
// active section and returns the section's answered count. On any error the
// store is untouched.
func (r *Run) SubmitAnswer(questionID string, value int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sec, err := r.activeSectionLocked()
	if err != nil {
		return 0, err
	}
	q := sec.QuestionByID(questionID)
	if q == nil {
		return 0, util.ErrUnknownQuestion
	}
	if !q.ValidValue(value) {
		return 0, util.ErrInvalidResponse
	}

	r.responses[questionID] = value
	return len(r.responses), nil
}

// Advance moves the cursor to the next unanswered question, or the next
// sequential one if everything ahead is answered. When the section is fully
// answered it reports completion and stays put: crossing the section
// boundary is the orchestrator's call, never the navigator's.
func (r *Run) Advance() (sectionComplete bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sec, err := r.activeSectionLocked()
	if err != nil {
		return false, err
	}
	if len(r.responses) == len(sec.Questions) {
		return true, nil
	}

	n := len(sec.Questions)
	// Prefer the first unanswered question after the cursor, wrapping.
	for step := 1; step <= n; step++ {
		idx := (r.questionIdx + step) % n
		if _, answered := r.responses[sec.Questions[idx].ID]; !answered {
			r.questionIdx = idx
			return false, nil
		}
	}
	if r.questionIdx < n-1 {
		r.questionIdx++
	}
	return false, nil
}

// JumpTo moves the cursor to any question of the active section. Review and
// back-navigation stay within the section; finalized sections are
// unreachable because they are never active.
func (r *Run) JumpTo(index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sec, err := r.activeSectionLocked()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(sec.Questions) {
		return util.ErrIndexOutOfRange
	}
	r.questionIdx = index
	return nil
}

// CurrentQuestion returns the question under the cursor along with its index
// and the section size.
func (r *Run) CurrentQuestion() (q *model.Question, index, total int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sec, err := r.activeSectionLocked()
	if err != nil {
		return nil, 0, 0, err
	}
	return &sec.Questions[r.questionIdx], r.questionIdx, len(sec.Questions), nil
}

// Progress reports answered and total counts for the active section.
func (r *Run) Progress() (answered, total int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sec, err := r.activeSectionLocked()
	if err != nil {
		return 0, 0, err
	}
	return len(r.responses), len(sec.Questions), nil
}

// IsSectionComplete reports whether every question of the active section has
// exactly one recorded response.
func (r *Run) IsSectionComplete() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	sec, err := r.activeSectionLocked()
	if err != nil {
		return false
	}
	return len(r.responses) == len(sec.Questions)
}

// FinalizeSection scores the active section and commits the result into the
// aggregate. Finalization is one-way: the slot is written exactly once and
// the section's responses become immutable.
func (r *Run) FinalizeSection() (*model.SectionResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sec, err := r.activeSectionLocked()
	if err != nil {
		return nil, err
	}
	if len(r.responses) != len(sec.Questions) {
		return nil, util.ErrSectionIncomplete
	}

	result := ScoreSection(sec, r.responses)
	switch sec.ID {
	case model.SectionPsychometric:
		r.data.Psychometric = result
	case model.SectionTechnical:
		r.data.Technical = result
	case model.SectionWiscar:
		r.data.Wiscar = result
	}

	r.active = ""
	r.questionIdx = 0
	r.responses = nil
	return result, nil
}

// ActiveSection returns the id of the section currently being answered, or
// the empty id between sections.
func (r *Run) ActiveSection() model.SectionID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// NextSection returns the section the orchestrator should start next;
// SectionResults once all scored sections are finalized.
func (r *Run) NextSection() model.SectionID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active != "" {
		return r.active
	}
	return r.nextSectionLocked()
}

// Status reports COMPLETED once all scored sections are finalized.
func (r *Run) Status() RunStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.data.Complete() {
		return RunStatusCompleted
	}
	return RunStatusInProgress
}

// Data returns a copy of the aggregate as committed so far.
func (r *Run) Data() model.AssessmentData {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data
}

// Recommendation derives the final recommendation. It refuses to run on a
// partial aggregate and never mutates anything.
func (r *Run) Recommendation() (*model.Recommendation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.data.Complete() {
		return nil, util.ErrPrematureCompletion
	}
	rec := Recommend(&r.data)
	return &rec, nil
}

func (r *Run) activeSectionLocked() (*model.Section, error) {
	if r.active == "" {
		return nil, util.ErrSectionNotActive
	}
	return r.bank.Section(r.active), nil
}
