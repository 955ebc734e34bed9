package repository

import (
	"time"

	"clipstream-backend/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsernameOrEmail matches either identifier; empty arguments never match.
func (r *UserRepository) FindByUsernameOrEmail(username, email string) (*models.User, error) {
	var user models.User
	q := r.db.Where("username = ? AND username <> ''", username).
		Or("email = ? AND email <> ''", email)
	if err := q.First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) SetRefreshToken(userID uint, token string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("refresh_token", token).Error
}

// SwapRefreshToken replaces the stored refresh token only if it still equals
// current. A false return means someone rotated first and the presented
// token is stale.
func (r *UserRepository) SwapRefreshToken(userID uint, current, next string) (bool, error) {
	res := r.db.Model(&models.User{}).
		Where("id = ? AND refresh_token = ?", userID, current).
		Update("refresh_token", next)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *UserRepository) ClearRefreshToken(userID uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("refresh_token", "").Error
}

func (r *UserRepository) UpdatePassword(userID uint, hash []byte) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("password_hash", hash).Error
}

func (r *UserRepository) UpdateDetails(userID uint, fields map[string]any) (*models.User, error) {
	if err := r.db.Model(&models.User{}).Where("id = ?", userID).
		Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.FindByID(userID)
}

func (r *UserRepository) UpdateAvatar(userID uint, url string) (*models.User, error) {
	return r.UpdateDetails(userID, map[string]any{"avatar_url": url})
}

func (r *UserRepository) UpdateCoverImage(userID uint, url string) (*models.User, error) {
	return r.UpdateDetails(userID, map[string]any{"cover_image_url": url})
}

// RecordWatch puts the video at the front of the user's history. A repeat
// watch moves the existing entry instead of duplicating it.
func (r *UserRepository) RecordWatch(userID, videoID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND video_id = ?", userID, videoID).
			Delete(&models.WatchHistoryEntry{}).Error; err != nil {
			return err
		}
		entry := models.WatchHistoryEntry{
			UserId:    userID,
			VideoId:   videoID,
			WatchedAt: time.Now(),
		}
		return tx.Create(&entry).Error
	})
}

// WatchHistory returns the user's history newest first, each entry with its
// video and the video's owner loaded.
func (r *UserRepository) WatchHistory(userID uint) ([]models.WatchHistoryEntry, error) {
	var entries []models.WatchHistoryEntry
	err := r.db.Where("user_id = ?", userID).
		Order("watched_at DESC, id DESC").
		Preload("Video.Owner").
		Find(&entries).Error
	return entries, err
}
