package repository

import (
	"clipstream-backend/internal/models"

	"gorm.io/gorm"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// ToggleVideoLike removes the user's like on the video if present, creates
// it otherwise. The delete-first form relies on RowsAffected instead of a
// separate lookup, so two concurrent toggles cannot both see "absent" and
// insert twice; the unique index rejects the loser.
func (r *LikeRepository) ToggleVideoLike(ownerID, videoID uint) (added bool, err error) {
	res := r.db.Where("owner_id = ? AND video_id = ?", ownerID, videoID).
		Delete(&models.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}
	like := models.Like{OwnerId: ownerID, VideoId: &videoID}
	if err := r.db.Create(&like).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *LikeRepository) ToggleCommentLike(ownerID, commentID uint) (added bool, err error) {
	res := r.db.Where("owner_id = ? AND comment_id = ?", ownerID, commentID).
		Delete(&models.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}
	like := models.Like{OwnerId: ownerID, CommentId: &commentID}
	if err := r.db.Create(&like).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *LikeRepository) CountForVideo(videoID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("video_id = ?", videoID).Count(&count).Error
	return count, err
}

// LikedVideos returns the videos the user has liked, each with its owner.
// Comment likes are filtered out by the not-null condition on video_id.
func (r *LikeRepository) LikedVideos(ownerID uint) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.
		Where("owner_id = ? AND video_id IS NOT NULL", ownerID).
		Order("id DESC").
		Preload("Video.Owner").
		Find(&likes).Error
	return likes, err
}
