package repository

import (
	"fmt"
	"strings"

	"clipstream-backend/internal/models"

	"gorm.io/gorm"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Create(video *models.Video) error {
	return r.db.Create(video).Error
}

func (r *VideoRepository) FindByID(id uint) (*models.Video, error) {
	var video models.Video
	if err := r.db.First(&video, id).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *VideoRepository) FindWithOwner(id uint) (*models.Video, error) {
	var video models.Video
	if err := r.db.Preload("Owner").First(&video, id).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// Search matches the query against title and description, joins each hit
// with its owner and paginates. sortBy must be "views" or "createdAt" and
// sortDir "asc" or "desc"; the id column breaks ties so pages are stable.
func (r *VideoRepository) Search(query, sortBy, sortDir string, page, limit int) ([]models.Video, int64, error) {
	columns := map[string]string{
		"views":     "views",
		"createdAt": "created_at",
	}
	column, ok := columns[sortBy]
	if !ok {
		return nil, 0, fmt.Errorf("unsupported sort field %q", sortBy)
	}
	dir := strings.ToUpper(sortDir)
	if dir != "ASC" && dir != "DESC" {
		return nil, 0, fmt.Errorf("unsupported sort direction %q", sortDir)
	}

	pattern := "%" + strings.ToLower(query) + "%"
	filtered := r.db.Model(&models.Video{}).
		Where("is_published = ?", true).
		Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Session(&gorm.Session{})

	var total int64
	if err := filtered.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []models.Video
	err := filtered.
		Order(fmt.Sprintf("%s %s, id %s", column, dir, dir)).
		Limit(limit).
		Offset((page - 1) * limit).
		Preload("Owner").
		Find(&videos).Error
	return videos, total, err
}

func (r *VideoRepository) IncrementViews(id uint) error {
	return r.db.Model(&models.Video{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *VideoRepository) UpdateDetails(id uint, fields map[string]any) (*models.Video, error) {
	if err := r.db.Model(&models.Video{}).Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.FindByID(id)
}

func (r *VideoRepository) UpdateThumbnail(id uint, url string) (*models.Video, error) {
	return r.UpdateDetails(id, map[string]any{"thumbnail_url": url})
}

func (r *VideoRepository) TogglePublish(id uint) (*models.Video, error) {
	if err := r.db.Model(&models.Video{}).Where("id = ?", id).
		UpdateColumn("is_published", gorm.Expr("NOT is_published")).Error; err != nil {
		return nil, err
	}
	return r.FindByID(id)
}

// Delete removes the video together with its comments, likes, playlist
// memberships and history entries in one transaction, so no orphans are
// left behind.
func (r *VideoRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&models.Comment{}).Select("id").Where("video_id = ?", id)
		if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.PlaylistVideo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.WatchHistoryEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Video{}, id).Error
	})
}
