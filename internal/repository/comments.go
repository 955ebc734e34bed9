package repository

import (
	"clipstream-backend/internal/models"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *CommentRepository) FindByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepository) UpdateContent(id uint, content string) (*models.Comment, error) {
	if err := r.db.Model(&models.Comment{}).Where("id = ?", id).
		Update("content", content).Error; err != nil {
		return nil, err
	}
	return r.FindByID(id)
}

func (r *CommentRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, id).Error
	})
}

// ListByVideo returns a page of comments for a video, newest first, each
// with its owner loaded.
func (r *CommentRepository) ListByVideo(videoID uint, page, limit int) ([]models.Comment, int64, error) {
	filtered := r.db.Model(&models.Comment{}).Where("video_id = ?", videoID).
		Session(&gorm.Session{})

	var total int64
	if err := filtered.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := filtered.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Preload("Owner").
		Find(&comments).Error
	return comments, total, err
}
