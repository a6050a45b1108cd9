package models

import (
	"time"

	"gorm.io/datatypes"
)

type Achievement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Tier        string `json:"tier"`
}

type WeeklyGoals struct {
	StudySessions    int `json:"studySessions"`
	StudyHours       int `json:"studyHours"`
	LessonsCompleted int `json:"lessonsCompleted"`
}

// Progress is the per-user progress document. One row per user id; absence
// reads as DefaultProgress, never as an error.
type Progress struct {
	UserID           string                            `gorm:"primaryKey" json:"userId"`
	Progress         float64                           `json:"progress"`
	StudyStreak      int                               `json:"studyStreak"`
	TotalStudyTime   float64                           `json:"totalStudyTime"`
	CompletedLessons int                               `json:"completedLessons"`
	CurrentCourse    string                            `json:"currentCourse"`
	Achievements     datatypes.JSONType[[]Achievement] `json:"achievements"`
	Courses          datatypes.JSONMap                 `json:"courses"`
	WeeklyGoals      datatypes.JSONType[WeeklyGoals]   `json:"weeklyGoals"`
	CreatedAt        time.Time                         `json:"createdAt"`
	LastUpdated      time.Time                         `json:"lastUpdated"`
}

func (Progress) TableName() string { return "progress" }

// DefaultProgress is the fixed shape returned for users that have no
// progress document yet. Reads never persist it.
func DefaultProgress(userID string) Progress {
	now := time.Now().UTC()
	return Progress{
		UserID:        userID,
		CurrentCourse: "Getting Started",
		Achievements:  datatypes.NewJSONType([]Achievement{}),
		Courses:       datatypes.JSONMap{},
		WeeklyGoals: datatypes.NewJSONType(WeeklyGoals{
			StudySessions:    5,
			StudyHours:       10,
			LessonsCompleted: 7,
		}),
		CreatedAt:   now,
		LastUpdated: now,
	}
}

// ProgressUpdate carries a partial progress update; nil fields survive the
// merge unchanged.
type ProgressUpdate struct {
	Progress         *float64               `json:"progress,omitempty"`
	StudyStreak      *int                   `json:"studyStreak,omitempty"`
	TotalStudyTime   *float64               `json:"totalStudyTime,omitempty"`
	CompletedLessons *int                   `json:"completedLessons,omitempty"`
	CurrentCourse    *string                `json:"currentCourse,omitempty"`
	Achievements     []Achievement          `json:"achievements,omitempty"`
	Courses          map[string]interface{} `json:"courses,omitempty"`
	WeeklyGoals      *WeeklyGoals           `json:"weeklyGoals,omitempty"`
}
