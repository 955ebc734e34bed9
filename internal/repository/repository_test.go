package repository

import (
	"fmt"
	"testing"

	"clipstream-backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		FullName:     username,
		AvatarUrl:    "http://blob/avatar/" + username,
		PasswordHash: []byte("x"),
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedVideo(t *testing.T, db *gorm.DB, ownerID uint, title string) *models.Video {
	t.Helper()
	video := models.Video{
		VideoUrl:     fmt.Sprintf("http://blob/video/%s", title),
		ThumbnailUrl: fmt.Sprintf("http://blob/thumb/%s", title),
		Title:        title,
		Description:  "about " + title,
		Duration:     12.5,
		IsPublished:  true,
		OwnerId:      ownerID,
	}
	require.NoError(t, db.Create(&video).Error)
	return &video
}

func seedComment(t *testing.T, db *gorm.DB, ownerID, videoID uint, content string) *models.Comment {
	t.Helper()
	comment := models.Comment{Content: content, VideoId: videoID, OwnerId: ownerID}
	require.NoError(t, db.Create(&comment).Error)
	return &comment
}
