package assessment

import (
	"fmt"

	"career_compass_backend/internal/model"
)

// Bank holds the fixed question batteries. It is built once at startup and
// never mutated afterwards.
type Bank struct {
	sections []model.Section
	byID     map[model.SectionID]*model.Section
}

func likertOptions() []model.Option {
	return []model.Option{
		{Value: 1, Label: "Strongly Disagree"},
		{Value: 2, Label: "Disagree"},
		{Value: 3, Label: "Neutral"},
		{Value: 4, Label: "Agree"},
		{Value: 5, Label: "Strongly Agree"},
	}
}

func scaleOptions(labels ...string) []model.Option {
	opts := make([]model.Option, len(labels))
	for i, l := range labels {
		opts[i] = model.Option{Value: i + 1, Label: l}
	}
	return opts
}

func choiceOptions(labels ...string) []model.Option {
	opts := make([]model.Option, len(labels))
	for i, l := range labels {
		opts[i] = model.Option{Value: i, Label: l}
	}
	return opts
}

func psychometricSection() model.Section {
	prompts := []struct {
		id, prompt, category string
	}{
		{"problem_solving", "I enjoy solving abstract problems using code and logic.", "Problem Solving"},
		{"flexibility", "I prefer tools that offer flexibility and creativity over rigid structures.", "Flexibility"},
		{"automation", "I often experiment with automating repetitive tasks in my daily life.", "Automation Interest"},
		{"learning_persistence", "When learning something new, I persist even when it becomes challenging.", "Grit"},
		{"curiosity", "I'm naturally curious about how websites and applications work behind the scenes.", "Technical Curiosity"},
		{"collaboration", "I enjoy collaborating with others to build something meaningful.", "Collaboration"},
		{"detail_oriented", "I pay attention to small details and catch errors that others might miss.", "Attention to Detail"},
		{"continuous_learning", "I actively seek out new technologies and programming concepts to learn.", "Growth Mindset"},
		{"user_focused", "I think about user experience when building or designing anything.", "User Focus"},
		{"systematic_thinking", "I like to break down complex problems into smaller, manageable parts.", "Systematic Thinking"},
	}

	qs := make([]model.Question, len(prompts))
	for i, p := range prompts {
		qs[i] = model.Question{
			ID:       p.id,
			Prompt:   p.prompt,
			Category: p.category,
			Kind:     model.KindAgreement,
			Options:  likertOptions(),
		}
	}

	return model.Section{
		ID:          model.SectionPsychometric,
		Title:       "Psychological Fit Assessment",
		Description: "Cognitive style, interests, motivation and personality alignment with Full Stack Python development.",
		Rule:        model.RuleNormalizedMean,
		Questions:   qs,
	}
}

func technicalSection() model.Section {
	return model.Section{
		ID:          model.SectionTechnical,
		Title:       "Technical Readiness Assessment",
		Description: "Logical reasoning, programming aptitude and Python-specific knowledge.",
		Rule:        model.RuleCorrectness,
		Questions: []model.Question{
			{
				ID:       "pattern_1",
				Prompt:   "What comes next in this sequence: 2, 6, 18, 54, ?",
				Category: "Logical Reasoning",
				Kind:     model.KindMultipleChoice,
				Options:  choiceOptions("162", "108", "72", "216"),
			},
			{
				ID:       "logic_1",
				Prompt:   "If all Pythons are snakes, and some snakes are venomous, which statement is definitely true?",
				Category: "Logical Reasoning",
				Kind:     model.KindMultipleChoice,
				Options: choiceOptions(
					"All Pythons are venomous",
					"Some Pythons might be venomous",
					"No Pythons are venomous",
					"All snakes are Pythons",
				),
				CorrectIndex: 1,
			},
			{
				ID:       "variables_1",
				Prompt:   "Which of these is the best variable name for storing a user's age?",
				Category: "Programming Fundamentals",
				Kind:     model.KindMultipleChoice,
				Options:  choiceOptions("a", "user_age", "x1", "data"),
				CorrectIndex: 1,
			},
			{
				ID:       "loops_1",
				Prompt:   "What would this pseudocode output?\n\nfor i from 1 to 3:\n    print i * 2",
				Category: "Programming Fundamentals",
				Kind:     model.KindMultipleChoice,
				Options:  choiceOptions("2, 4, 6", "1, 2, 3", "2, 4, 6, 8", "1, 4, 9"),
			},
			{
				ID:       "python_syntax_1",
				Prompt:   "Which Python code correctly creates a list of even numbers from 0 to 10?",
				Category: "Python & Web Development",
				Kind:     model.KindMultipleChoice,
				Options: choiceOptions(
					"[x for x in range(11) if x % 2 == 0]",
					"[x for x in range(10) if x % 2 == 1]",
					"[x*2 for x in range(5)]",
					"Both A and C are correct",
				),
				CorrectIndex: 3,
			},
			{
				ID:       "web_concepts_1",
				Prompt:   "What does REST stand for in web development?",
				Category: "Python & Web Development",
				Kind:     model.KindMultipleChoice,
				Options: choiceOptions(
					"Really Easy Server Technology",
					"Representational State Transfer",
					"Remote Execution Service Tool",
					"Rapid Enterprise Software Testing",
				),
				CorrectIndex: 1,
			},
		},
		Groups: []model.QuestionGroup{
			{
				Code:        "logical_reasoning",
				Name:        "A. Logical Reasoning",
				Description: "Pattern recognition and problem-solving",
				QuestionIDs: []string{"pattern_1", "logic_1"},
			},
			{
				Code:        "programming_concepts",
				Name:        "B. Programming Fundamentals",
				Description: "Basic programming knowledge and concepts",
				QuestionIDs: []string{"variables_1", "loops_1"},
			},
			{
				Code:        "python_specific",
				Name:        "C. Python & Web Development",
				Description: "Python syntax and web development concepts",
				QuestionIDs: []string{"python_syntax_1", "web_concepts_1"},
			},
		},
	}
}

func wiscarSection() model.Section {
	confidence := func() []model.Option {
		return scaleOptions("No experience", "Beginner", "Some experience", "Comfortable", "Advanced")
	}

	return model.Section{
		ID:          model.SectionWiscar,
		Title:       "Multi-Dimensional Readiness Assessment",
		Description: "Readiness across the six WISCAR dimensions for success in Full Stack Python development.",
		Rule:        model.RuleNormalizedMean,
		Questions: []model.Question{
			{
				ID:       "will_1",
				Prompt:   "I keep learning programming even when concepts become difficult to understand.",
				Category: "Will",
				Kind:     model.KindAgreement,
				Options:  likertOptions(),
			},
			{
				ID:       "will_2",
				Prompt:   "When I start a coding project, I usually finish it even if it takes longer than expected.",
				Category: "Will",
				Kind:     model.KindAgreement,
				Options:  likertOptions(),
			},
			{
				ID:       "interest_1",
				Prompt:   "I enjoy building websites or applications from scratch.",
				Category: "Interest",
				Kind:     model.KindAgreement,
				Options:  likertOptions(),
			},
			{
				ID:       "interest_2",
				Prompt:   "I find myself reading about web development trends in my free time.",
				Category: "Interest",
				Kind:     model.KindAgreement,
				Options:  likertOptions(),
			},
			{
				ID:       "skill_1",
				Prompt:   "Rate your confidence with Python basics (variables, loops, functions):",
				Category: "Skill",
				Kind:     model.KindConfidence,
				Options:  confidence(),
			},
			{
				ID:       "skill_2",
				Prompt:   "Rate your experience with web technologies (HTML, CSS, JavaScript):",
				Category: "Skill",
				Kind:     model.KindConfidence,
				Options:  confidence(),
			},
			{
				ID:       "cognitive_1",
				Prompt:   "I can easily break down complex problems into smaller, manageable steps.",
				Category: "Cognitive Readiness",
				Kind:     model.KindAgreement,
				Options:  likertOptions(),
			},
			{
				ID:       "cognitive_2",
				Prompt:   "I enjoy figuring out why something isn't working and finding the solution.",
				Category: "Cognitive Readiness",
				Kind:     model.KindAgreement,
				Options:  likertOptions(),
			},
			{
				ID:       "ability_1",
				Prompt:   "When I don't understand something, I actively try new ways to learn it.",
				Category: "Ability to Learn",
				Kind:     model.KindAgreement,
				Options:  likertOptions(),
			},
			{
				ID:       "ability_2",
				Prompt:   "I can identify my own learning strengths and weaknesses.",
				Category: "Ability to Learn",
				Kind:     model.KindAgreement,
				Options:  likertOptions(),
			},
			{
				ID:       "real_world_1",
				Prompt:   "How interested are you in building full-stack web applications for businesses?",
				Category: "Real-World Alignment",
				Kind:     model.KindScenario,
				Options:  scaleOptions("Not interested", "Slightly interested", "Moderately interested", "Very interested", "Extremely interested"),
			},
			{
				ID:       "real_world_2",
				Prompt:   "How appealing is working on both frontend user interfaces and backend server logic?",
				Category: "Real-World Alignment",
				Kind:     model.KindScenario,
				Options:  scaleOptions("Not appealing", "Slightly appealing", "Moderately appealing", "Very appealing", "Extremely appealing"),
			},
		},
		Groups: []model.QuestionGroup{
			{Code: "W", Name: "Will", Description: "Consistency of interest & perseverance", QuestionIDs: []string{"will_1", "will_2"}},
			{Code: "I", Name: "Interest", Description: "Curiosity about Python-based roles", QuestionIDs: []string{"interest_1", "interest_2"}},
			{Code: "S", Name: "Skill", Description: "Current capability assessment", QuestionIDs: []string{"skill_1", "skill_2"}},
			{Code: "C", Name: "Cognitive Readiness", Description: "Analytical thinking & pattern recognition", QuestionIDs: []string{"cognitive_1", "cognitive_2"}},
			{Code: "A", Name: "Ability to Learn", Description: "Self-reflection & metacognition", QuestionIDs: []string{"ability_1", "ability_2"}},
			{Code: "R", Name: "Real-World Alignment", Description: "Understanding of Python career paths", QuestionIDs: []string{"real_world_1", "real_world_2"}},
		},
	}
}

// NewDefaultBank builds the built-in question bank and asserts its
// invariants, panicking on violation. The data is fixed at build time, so a
// violation is a programming error and the process must not come up.
func NewDefaultBank() *Bank {
	b, err := newBank(psychometricSection(), technicalSection(), wiscarSection())
	if err != nil {
		panic(fmt.Sprintf("question bank invariant violated: %v", err))
	}
	return b
}

func newBank(sections ...model.Section) (*Bank, error) {
	b := &Bank{
		sections: sections,
		byID:     make(map[model.SectionID]*model.Section, len(sections)),
	}
	for i := range b.sections {
		sec := &b.sections[i]
		if _, dup := b.byID[sec.ID]; dup {
			return nil, fmt.Errorf("duplicate section %q", sec.ID)
		}
		b.byID[sec.ID] = sec
		if err := validateSection(sec); err != nil {
			return nil, fmt.Errorf("section %q: %w", sec.ID, err)
		}
	}
	return b, nil
}

func validateSection(sec *model.Section) error {
	if len(sec.Questions) == 0 {
		return fmt.Errorf("no questions")
	}

	seen := make(map[string]bool, len(sec.Questions))
	for i := range sec.Questions {
		q := &sec.Questions[i]
		if len(q.Options) == 0 {
			return fmt.Errorf("question %q has no options", q.ID)
		}
		if seen[q.ID] {
			return fmt.Errorf("duplicate question %q", q.ID)
		}
		seen[q.ID] = true
		if q.Kind == model.KindMultipleChoice {
			if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
				return fmt.Errorf("question %q correct index %d out of bounds", q.ID, q.CorrectIndex)
			}
		}
	}

	grouped := make(map[string]bool)
	for _, g := range sec.Groups {
		if len(g.QuestionIDs) == 0 {
			return fmt.Errorf("group %q is empty", g.Code)
		}
		for _, id := range g.QuestionIDs {
			if !seen[id] {
				return fmt.Errorf("group %q references unknown question %q", g.Code, id)
			}
			if grouped[id] {
				return fmt.Errorf("question %q appears in more than one group", id)
			}
			grouped[id] = true
		}
	}
	if len(sec.Groups) > 0 && len(grouped) != len(sec.Questions) {
		return fmt.Errorf("groups do not cover every question")
	}

	return nil
}

// Sections returns the scored sections in their fixed order.
func (b *Bank) Sections() []model.Section {
	return b.sections
}

// Section returns the section with the given id, or nil.
func (b *Bank) Section(id model.SectionID) *model.Section {
	return b.byID[id]
}
