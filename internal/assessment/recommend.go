package assessment

import (
	"math"

	"career_compass_backend/internal/model"
)

// Recommend derives the full results payload from a complete aggregate. It
// is a pure function: same inputs, same recommendation, no side effects.
func Recommend(data *model.AssessmentData) model.Recommendation {
	psych := data.Psychometric.Composite
	tech := data.Technical.Composite
	readiness := data.Wiscar.Composite

	overall := int(math.Round(float64(psych+tech+readiness) / 3))
	verdict, message := verdictFor(overall)

	dims := make(map[string]int, len(data.Wiscar.SubScores))
	for code, score := range data.Wiscar.SubScores {
		dims[code] = score
	}

	return model.Recommendation{
		OverallScore:      overall,
		PsychometricScore: psych,
		TechnicalScore:    tech,
		ReadinessScore:    readiness,
		DimensionScores:   dims,
		Verdict:           verdict,
		Message:           message,
		CareerMatches:     careerMatches(overall, psych, tech, readiness),
		LearningPath:      learningPath(),
		ActivePhase:       activePhase(tech),
		NextSteps:         nextSteps(verdict, tech),
	}
}

func verdictFor(overall int) (model.Verdict, string) {
	switch {
	case overall >= 80:
		return model.VerdictProceed, "You're strongly suited to dive into Full Stack Python. Start now!"
	case overall >= 60:
		return model.VerdictConditional, "You're close – address a few key areas to prepare."
	default:
		return model.VerdictNotRecommended, "Python Full Stack may not match your strengths right now. Consider an alternate track."
	}
}

func careerMatches(overall, psych, tech, readiness int) []model.CareerMatch {
	return []model.CareerMatch{
		{
			Role:        "Python Full Stack Developer",
			Description: "Build end-to-end web apps using Django/Flask and JS",
			Match:       overall,
		},
		{
			Role:        "Django Developer",
			Description: "Backend-heavy web dev with security, scalability",
			Match:       maxInt(tech, readiness),
		},
		{
			Role:        "Backend Engineer (Python)",
			Description: "API development, integrations, automation",
			Match:       tech,
		},
		{
			Role:        "AI/ML-Enabled App Developer",
			Description: "Python for backend + ML inference",
			Match:       int(math.Round(float64(tech+psych) / 2)),
		},
		{
			Role:        "Python DevOps Engineer",
			Description: "Automate, deploy and manage infrastructure",
			Match:       int(math.Round(float64(tech+readiness) / 2)),
		},
	}
}

func learningPath() []model.LearningPhase {
	return []model.LearningPhase{
		{
			Phase:    1,
			Title:    "Python Foundations",
			Topics:   []string{"Syntax, variables, control flow", "Functions and data structures", "Error handling"},
			Duration: "2-4 weeks",
		},
		{
			Phase:    2,
			Title:    "Web Basics",
			Topics:   []string{"HTML, CSS fundamentals", "JavaScript basics", "Git & GitHub"},
			Duration: "3-4 weeks",
		},
		{
			Phase:    3,
			Title:    "Web Framework",
			Topics:   []string{"Flask or Django", "Routing and templating", "Build a blog/TODO app"},
			Duration: "4-6 weeks",
		},
		{
			Phase:    4,
			Title:    "APIs & Integration",
			Topics:   []string{"REST APIs, JSON", "Authentication", "Database integration"},
			Duration: "3-4 weeks",
		},
		{
			Phase:    5,
			Title:    "Database Mastery",
			Topics:   []string{"SQL fundamentals", "ORM (Django/SQLAlchemy)", "Database design"},
			Duration: "2-3 weeks",
		},
		{
			Phase:    6,
			Title:    "Deployment & DevOps",
			Topics:   []string{"Docker basics", "CI/CD pipelines", "Cloud deployment"},
			Duration: "3-4 weeks",
		},
	}
}

// activePhase suggests where on the path to begin, from technical readiness
// alone: weak fundamentals restart at phase 1, moderate scores skip ahead to
// the framework phase, strong ones to APIs.
func activePhase(tech int) int {
	switch {
	case tech < 60:
		return 1
	case tech < 80:
		return 3
	default:
		return 4
	}
}

func nextSteps(verdict model.Verdict, tech int) []string {
	switch verdict {
	case model.VerdictProceed:
		return []string{
			"Start Learning Now: Begin with Python fundamentals on platforms like Python.org, Codecademy, or freeCodeCamp.",
			"Build Projects: Start with simple scripts, then move to web applications using Flask.",
			"Join Communities: Connect with Python developers on GitHub, Stack Overflow, and Reddit.",
		}
	case model.VerdictConditional:
		focus := "psychological readiness and motivation"
		if tech < 60 {
			focus = "programming basics and logical thinking"
		}
		return []string{
			"Strengthen Foundations: Focus on " + focus + ".",
			"Explore First: Try Python tutorials and see if you enjoy the learning process.",
			"Reassess in 3 Months: Retake this assessment after gaining some experience.",
		}
	default:
		return []string{
			"Consider Alternatives: Explore frontend development, data science, or no-code platforms.",
			"Build Interest: Try visual programming tools or game development to spark interest.",
			"Skill Development: Focus on general problem-solving and logical thinking skills first.",
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
