package store

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"edugpt/backend/models"
)

// ProgressStore is the data-access boundary for the progress collection.
type ProgressStore struct {
	DB *gorm.DB
}

func NewProgressStore(db *gorm.DB) *ProgressStore {
	return &ProgressStore{DB: db}
}

// Get returns the stored progress document, or the fixed default shape when
// none exists. Reading never creates a document.
func (s *ProgressStore) Get(userID string) (models.Progress, error) {
	var progress models.Progress
	err := s.DB.First(&progress, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultProgress(userID), nil
	}
	if err != nil {
		return models.Progress{}, err
	}
	return progress, nil
}

// Merge applies the non-nil fields of upd over the existing document (the
// default shape when none exists yet) and stamps lastUpdated. An existing
// document gets a merge-write of only the named columns; plain field merges
// are last-writer-wins.
func (s *ProgressStore) Merge(userID string, upd models.ProgressUpdate, now time.Time) (models.Progress, error) {
	var progress models.Progress
	err := s.DB.First(&progress, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = models.DefaultProgress(userID)
		progress.CreatedAt = now
		applyProgressUpdate(&progress, upd)
		progress.LastUpdated = now
		if err := s.DB.Create(&progress).Error; err != nil {
			return models.Progress{}, err
		}
		return progress, nil
	}
	if err != nil {
		return models.Progress{}, err
	}

	updates := map[string]interface{}{"last_updated": now}
	if upd.Progress != nil {
		updates["progress"] = *upd.Progress
	}
	if upd.StudyStreak != nil {
		updates["study_streak"] = *upd.StudyStreak
	}
	if upd.TotalStudyTime != nil {
		updates["total_study_time"] = *upd.TotalStudyTime
	}
	if upd.CompletedLessons != nil {
		updates["completed_lessons"] = *upd.CompletedLessons
	}
	if upd.CurrentCourse != nil {
		updates["current_course"] = *upd.CurrentCourse
	}
	if upd.Achievements != nil {
		updates["achievements"] = datatypes.NewJSONType(upd.Achievements)
	}
	if upd.Courses != nil {
		updates["courses"] = datatypes.JSONMap(upd.Courses)
	}
	if upd.WeeklyGoals != nil {
		updates["weekly_goals"] = datatypes.NewJSONType(*upd.WeeklyGoals)
	}
	if err := s.DB.Model(&models.Progress{}).Where("user_id = ?", userID).Updates(updates).Error; err != nil {
		return models.Progress{}, err
	}
	return s.Get(userID)
}

func applyProgressUpdate(progress *models.Progress, upd models.ProgressUpdate) {
	if upd.Progress != nil {
		progress.Progress = *upd.Progress
	}
	if upd.StudyStreak != nil {
		progress.StudyStreak = *upd.StudyStreak
	}
	if upd.TotalStudyTime != nil {
		progress.TotalStudyTime = *upd.TotalStudyTime
	}
	if upd.CompletedLessons != nil {
		progress.CompletedLessons = *upd.CompletedLessons
	}
	if upd.CurrentCourse != nil {
		progress.CurrentCourse = *upd.CurrentCourse
	}
	if upd.Achievements != nil {
		progress.Achievements = datatypes.NewJSONType(upd.Achievements)
	}
	if upd.Courses != nil {
		progress.Courses = datatypes.JSONMap(upd.Courses)
	}
	if upd.WeeklyGoals != nil {
		progress.WeeklyGoals = datatypes.NewJSONType(*upd.WeeklyGoals)
	}
}
