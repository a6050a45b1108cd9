package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"edugpt/backend/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func TestProgressLazyDefaultWithoutCreate(t *testing.T) {
	db := openTestDB(t)
	progress := NewProgressStore(db)

	got, err := progress.Get("u1")
	require.NoError(t, err)
	assert.Equal(t, float64(0), got.Progress)
	assert.Equal(t, 0, got.StudyStreak)
	assert.Equal(t, float64(0), got.TotalStudyTime)
	assert.Equal(t, 0, got.CompletedLessons)
	assert.Empty(t, got.Achievements.Data())
	assert.Equal(t, "Getting Started", got.CurrentCourse)
	assert.Equal(t, models.WeeklyGoals{StudySessions: 5, StudyHours: 10, LessonsCompleted: 7}, got.WeeklyGoals.Data())

	// Reading must not create a document.
	var count int64
	require.NoError(t, db.Model(&models.Progress{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestProgressMergePreservesDefaults(t *testing.T) {
	db := openTestDB(t)
	progress := NewProgressStore(db)

	value := 40.0
	_, err := progress.Merge("u1", models.ProgressUpdate{Progress: &value}, time.Now().UTC())
	require.NoError(t, err)

	got, err := progress.Get("u1")
	require.NoError(t, err)
	assert.Equal(t, 40.0, got.Progress)
	assert.Equal(t, 0, got.StudyStreak)
	assert.Empty(t, got.Achievements.Data())
	assert.Equal(t, models.WeeklyGoals{StudySessions: 5, StudyHours: 10, LessonsCompleted: 7}, got.WeeklyGoals.Data())
}

func TestProgressMergeIsPartial(t *testing.T) {
	db := openTestDB(t)
	progress := NewProgressStore(db)

	value := 40.0
	streak := 3
	_, err := progress.Merge("u1", models.ProgressUpdate{Progress: &value, StudyStreak: &streak}, time.Now().UTC())
	require.NoError(t, err)

	lessons := 7
	_, err = progress.Merge("u1", models.ProgressUpdate{CompletedLessons: &lessons}, time.Now().UTC())
	require.NoError(t, err)

	got, err := progress.Get("u1")
	require.NoError(t, err)
	assert.Equal(t, 40.0, got.Progress)
	assert.Equal(t, 3, got.StudyStreak)
	assert.Equal(t, 7, got.CompletedLessons)
}

func TestProgressMergeWritesOnlyNamedColumns(t *testing.T) {
	db := openTestDB(t)
	progress := NewProgressStore(db)

	value := 10.0
	_, err := progress.Merge("u1", models.ProgressUpdate{Progress: &value}, time.Now().UTC())
	require.NoError(t, err)

	// Another writer changes a column the next merge does not name.
	require.NoError(t, db.Model(&models.Progress{}).
		Where("user_id = ?", "u1").Update("study_streak", 9).Error)

	value = 20.0
	merged, err := progress.Merge("u1", models.ProgressUpdate{Progress: &value}, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 20.0, merged.Progress)
	assert.Equal(t, 9, merged.StudyStreak)
}

func TestChatAppendKeepsInsertionOrder(t *testing.T) {
	db := openTestDB(t)
	chats := NewChatStore(db)

	for i := 0; i < 3; i++ {
		err := chats.Append("u1",
			models.Message{Role: models.RoleUser, Content: fmt.Sprintf("question %d", i)},
			models.Message{Role: models.RoleAssistant, Content: fmt.Sprintf("answer %d", i)},
		)
		require.NoError(t, err)
	}

	history, err := chats.History("u1")
	require.NoError(t, err)
	require.Len(t, history, 6)
	for i := 0; i < 3; i++ {
		assert.Equal(t, models.RoleUser, history[2*i].Role)
		assert.Equal(t, fmt.Sprintf("question %d", i), history[2*i].Content)
		assert.Equal(t, models.RoleAssistant, history[2*i+1].Role)
		assert.Equal(t, fmt.Sprintf("answer %d", i), history[2*i+1].Content)
	}

	count, err := chats.Count("u1")
	require.NoError(t, err)
	assert.Equal(t, int64(6), count)
}

func TestChatClearEmptiesHistory(t *testing.T) {
	db := openTestDB(t)
	chats := NewChatStore(db)

	require.NoError(t, chats.Append("u1",
		models.Message{Role: models.RoleUser, Content: "hi"},
		models.Message{Role: models.RoleAssistant, Content: "hello"},
	))
	require.NoError(t, chats.Clear("u1"))

	history, err := chats.History("u1")
	require.NoError(t, err)
	assert.Empty(t, history)

	// The chat document survives with a fresh lastUpdated stamp.
	var chat models.Chat
	require.NoError(t, db.First(&chat, "user_id = ?", "u1").Error)
	assert.False(t, chat.LastUpdated.IsZero())
}

func TestChatHistoryAbsentIsEmpty(t *testing.T) {
	db := openTestDB(t)
	chats := NewChatStore(db)

	history, err := chats.History("nobody")
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}

func TestUserSyncCreatesThenTouches(t *testing.T) {
	db := openTestDB(t)
	users := NewUserStore(db)

	t1 := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	created, err := users.Sync("u1", "A@B.com", "Ada Lovelace", "student", t1)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", created.Email)
	assert.Equal(t, "student", created.Role)
	assert.False(t, created.ProfileCompleted)
	createdAt := created.CreatedAt

	t2 := t1.Add(time.Hour)
	touched, err := users.Sync("u1", "a@b.com", "Ada Lovelace", "student", t2)
	require.NoError(t, err)
	assert.Equal(t, createdAt.Unix(), touched.CreatedAt.Unix())
	assert.Equal(t, t2.Unix(), touched.LastLogin.Unix())
	assert.Equal(t, created.Email, touched.Email)
	assert.Equal(t, created.DisplayName, touched.DisplayName)
}

func TestUserCreateNormalizesEmail(t *testing.T) {
	db := openTestDB(t)
	users := NewUserStore(db)

	user := models.User{UID: "u1", Email: "Mixed@Case.COM"}
	require.NoError(t, users.Create(&user))

	got, err := users.Get("u1")
	require.NoError(t, err)
	assert.Equal(t, "mixed@case.com", got.Email)
	assert.Equal(t, "student", got.Role)
	assert.NotNil(t, got.Profile.Data().Interests)
}

func TestUserCreateAllowsSharedEmail(t *testing.T) {
	db := openTestDB(t)
	users := NewUserStore(db)

	// Documents are keyed by uid; the same address may appear under several
	// providers. Uniqueness lives in the identity accounts, not here.
	require.NoError(t, users.Create(&models.User{UID: "u1", Email: "a@b.com", AuthProvider: "email"}))
	require.NoError(t, users.Create(&models.User{UID: "u2", Email: "a@b.com", AuthProvider: "google"}))
	require.NoError(t, users.Create(&models.User{UID: "u3"}))
	require.NoError(t, users.Create(&models.User{UID: "u4"}))

	first, err := users.Get("u1")
	require.NoError(t, err)
	second, err := users.Get("u2")
	require.NoError(t, err)
	assert.Equal(t, first.Email, second.Email)
	assert.NotEqual(t, first.AuthProvider, second.AuthProvider)
}

func TestUserRecordActivityIncrements(t *testing.T) {
	db := openTestDB(t)
	users := NewUserStore(db)

	require.NoError(t, users.Create(&models.User{UID: "u1", Email: "a@b.com"}))

	now := time.Now().UTC()
	require.NoError(t, users.RecordActivity("u1", now))
	require.NoError(t, users.RecordActivity("u1", now))

	got, err := users.Get("u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.TotalSessions)
	assert.Equal(t, now.Unix(), got.LastActive.Unix())
}

func TestUserApplyUpdateReplacesProfile(t *testing.T) {
	db := openTestDB(t)
	users := NewUserStore(db)

	user := models.User{
		UID:     "u1",
		Email:   "a@b.com",
		Profile: datatypes.NewJSONType(models.Profile{Bio: "old bio"}),
	}
	require.NoError(t, users.Create(&user))

	completed := true
	err := users.ApplyUpdate("u1", models.UserUpdate{
		ProfileCompleted: &completed,
		Profile:          &models.Profile{Interests: []string{"Physics"}, EducationLevel: "college"},
	})
	require.NoError(t, err)

	got, err := users.Get("u1")
	require.NoError(t, err)
	assert.True(t, got.ProfileCompleted)
	assert.Equal(t, []string{"Physics"}, got.Profile.Data().Interests)
	assert.Equal(t, "college", got.Profile.Data().EducationLevel)
	// The profile sub-object is replaced wholesale.
	assert.Empty(t, got.Profile.Data().Bio)
	// Fields outside the update survive.
	assert.Equal(t, "a@b.com", got.Email)
}
