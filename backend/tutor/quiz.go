package tutor

import (
	"fmt"
	"strings"
)

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

type Quiz struct {
	Title     string         `json:"title"`
	Questions []QuizQuestion `json:"questions"`
}

// GenerateQuiz looks up the fixed template for the lower-cased subject name;
// unmatched subjects fall back to the mathematics template.
func GenerateQuiz(subject, difficulty string) Quiz {
	switch strings.ToLower(subject) {
	case "physics":
		return physicsQuiz(difficulty)
	default:
		return mathematicsQuiz(difficulty)
	}
}

func mathematicsQuiz(difficulty string) Quiz {
	return Quiz{
		Title: fmt.Sprintf("Mathematics Quiz - %s", difficulty),
		Questions: []QuizQuestion{
			{
				Question:      "Solve for x: 2x + 5 = 13",
				Options:       []string{"x = 4", "x = 5", "x = 6", "x = 7"},
				CorrectAnswer: 0,
				Explanation:   "Subtract 5 from both sides: 2x = 8, then divide by 2: x = 4",
			},
			{
				Question:      "What is the area of a circle with radius 4?",
				Options:       []string{"16π", "8π", "12π", "4π"},
				CorrectAnswer: 0,
				Explanation:   "Area = πr² = π(4)² = 16π",
			},
		},
	}
}

func physicsQuiz(difficulty string) Quiz {
	return Quiz{
		Title: fmt.Sprintf("Physics Quiz - %s", difficulty),
		Questions: []QuizQuestion{
			{
				Question: "What is Newton's First Law of Motion?",
				Options: []string{
					"An object at rest stays at rest",
					"F = ma",
					"For every action there is an equal reaction",
					"Energy cannot be created or destroyed",
				},
				CorrectAnswer: 0,
				Explanation:   "Newton's First Law states that an object at rest stays at rest unless acted upon by a force.",
			},
		},
	}
}
