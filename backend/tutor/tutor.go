// Package tutor is the scripted response generator standing in for a real
// AI backend: keyword dispatch over canned templates, personalized by the
// stored profile. No model, no external calls, no randomness.
package tutor

import (
	"fmt"
	"strings"
)

// Profile is the slice of a user document the tutor personalizes with.
type Profile struct {
	FirstName      string
	Interests      []string
	EducationLevel string
	LearningGoals  string
}

// personalContext builds the personalization clause appended to every
// template, in fixed order: interests, education level, learning goals.
func personalContext(p Profile) string {
	var b strings.Builder
	if len(p.Interests) > 0 {
		b.WriteString(" The user is interested in ")
		b.WriteString(strings.Join(p.Interests, ", "))
		b.WriteString(".")
	}
	if p.EducationLevel != "" {
		b.WriteString(" They are at ")
		b.WriteString(p.EducationLevel)
		b.WriteString(" level.")
	}
	if p.LearningGoals != "" {
		b.WriteString(" Their learning goal is: ")
		b.WriteString(p.LearningGoals)
		b.WriteString(".")
	}
	return b.String()
}

// Reply picks a response template for the message. Dispatch is
// order-sensitive on the lower-cased input: quiz beats explain beats
// summarize; anything else gets the greeting echoing the message verbatim.
func Reply(message string, p Profile) string {
	context := personalContext(p)
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "quiz") || strings.Contains(lower, "test"):
		subject := "general knowledge"
		if len(p.Interests) > 0 {
			subject = p.Interests[0]
		}
		return fmt.Sprintf("I'd be happy to create a quiz for you about %s!%s What specific topic would you like to be quizzed on?", subject, context)

	case strings.Contains(lower, "explain") || strings.Contains(lower, "what is"):
		return fmt.Sprintf("I'll explain that concept in simple terms suitable for your level.%s Let me break it down for you...", context)

	case strings.Contains(lower, "summarize") || strings.Contains(lower, "summary"):
		return fmt.Sprintf("I can help summarize that content for you.%s Here are the key points...", context)
	}

	name := p.FirstName
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf("Hello %s!%s Regarding your question \"%s\", here's what I can tell you based on your learning profile and goals...", name, context, message)
}

// Welcome is the personalized greeting shown when a chat session opens.
func Welcome(p Profile) string {
	if p.FirstName == "" && len(p.Interests) == 0 && p.EducationLevel == "" && p.LearningGoals == "" {
		return "Hello! I'm Alex, your AI tutor. I'm here to help you with any questions about your courses, homework, or learning concepts. What would you like to know today?"
	}

	name := p.FirstName
	if name == "" {
		name = "there"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Welcome back, %s! ", name)
	if len(p.Interests) > 0 {
		fmt.Fprintf(&b, "I see you're interested in %s. ", strings.Join(p.Interests, " and "))
	}
	if p.EducationLevel != "" {
		fmt.Fprintf(&b, "As a %s student, ", p.EducationLevel)
	}
	if p.LearningGoals != "" {
		fmt.Fprintf(&b, "I'm here to help you work on your goal of %s. ", strings.ToLower(p.LearningGoals))
	}
	b.WriteString("What would you like to learn today? I can help explain concepts, create study materials, or quiz you on your subjects!")
	return b.String()
}
