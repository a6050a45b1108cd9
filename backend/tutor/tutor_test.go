package tutor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuizDispatchUsesFirstInterest(t *testing.T) {
	profile := Profile{Interests: []string{"Physics"}}

	reply := Reply("Can you quiz me on Physics?", profile)

	assert.Equal(t,
		"I'd be happy to create a quiz for you about Physics! The user is interested in Physics. What specific topic would you like to be quizzed on?",
		reply)
}

func TestQuizDispatchFallsBackWithoutInterests(t *testing.T) {
	reply := Reply("quiz me", Profile{})

	assert.Contains(t, reply, "a quiz for you about general knowledge")
}

func TestExplainDispatch(t *testing.T) {
	reply := Reply("What is photosynthesis?", Profile{})

	assert.Contains(t, reply, "I'll explain that concept in simple terms")
}

func TestSummaryDispatch(t *testing.T) {
	reply := Reply("Please give me a summary", Profile{})

	assert.Contains(t, reply, "I can help summarize that content")
}

func TestDispatchOrderQuizBeatsExplain(t *testing.T) {
	// quiz/test is checked before explain; a message containing both hits
	// the quiz template.
	reply := Reply("explain this quiz to me", Profile{})

	assert.Contains(t, reply, "create a quiz for you")
}

func TestGreetingEchoesMessageVerbatim(t *testing.T) {
	reply := Reply("hello", Profile{})

	assert.Equal(t,
		"Hello there! Regarding your question \"hello\", here's what I can tell you based on your learning profile and goals...",
		reply)
}

func TestGreetingUsesFirstName(t *testing.T) {
	reply := Reply("good morning", Profile{FirstName: "Ada"})

	assert.Contains(t, reply, "Hello Ada!")
}

func TestPersonalContextOrder(t *testing.T) {
	profile := Profile{
		Interests:      []string{"Math", "Physics"},
		EducationLevel: "high school",
		LearningGoals:  "pass finals",
	}

	reply := Reply("hello", profile)

	assert.Contains(t, reply,
		" The user is interested in Math, Physics. They are at high school level. Their learning goal is: pass finals.")
}

func TestGenerateQuizBySubject(t *testing.T) {
	quiz := GenerateQuiz("Physics", "advanced")

	assert.Equal(t, "Physics Quiz - advanced", quiz.Title)
	assert.Len(t, quiz.Questions, 1)
	assert.Equal(t, 0, quiz.Questions[0].CorrectAnswer)
}

func TestGenerateQuizUnknownSubjectFallsBack(t *testing.T) {
	quiz := GenerateQuiz("philosophy", "beginner")

	assert.Equal(t, "Mathematics Quiz - beginner", quiz.Title)
	assert.Len(t, quiz.Questions, 2)
}

func TestWelcomeWithoutProfile(t *testing.T) {
	message := Welcome(Profile{})

	assert.Contains(t, message, "I'm Alex, your AI tutor")
}

func TestWelcomePersonalized(t *testing.T) {
	message := Welcome(Profile{
		FirstName:     "Ada",
		Interests:     []string{"Math", "Physics"},
		LearningGoals: "Pass Finals",
	})

	assert.Contains(t, message, "Welcome back, Ada!")
	assert.Contains(t, message, "interested in Math and Physics")
	assert.Contains(t, message, "your goal of pass finals")
}
