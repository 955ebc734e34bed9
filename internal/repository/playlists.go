package repository

import (
	"errors"

	"clipstream-backend/internal/models"

	"gorm.io/gorm"
)

type PlaylistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

func (r *PlaylistRepository) Create(playlist *models.Playlist) error {
	return r.db.Create(playlist).Error
}

func (r *PlaylistRepository) FindByID(id uint) (*models.Playlist, error) {
	var playlist models.Playlist
	if err := r.db.First(&playlist, id).Error; err != nil {
		return nil, err
	}
	return &playlist, nil
}

// FindWithVideos loads the playlist with its items in playlist order, each
// item carrying the video and the video's owner.
func (r *PlaylistRepository) FindWithVideos(id uint) (*models.Playlist, error) {
	var playlist models.Playlist
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Preload("Items.Video.Owner").
		First(&playlist, id).Error
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

// ListByOwner returns all playlists of a user with their videos joined the
// same way FindWithVideos does.
func (r *PlaylistRepository) ListByOwner(ownerID uint) ([]models.Playlist, error) {
	var playlists []models.Playlist
	err := r.db.
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Preload("Items.Video.Owner").
		Find(&playlists).Error
	return playlists, err
}

func (r *PlaylistRepository) UpdateDetails(id uint, fields map[string]any) (*models.Playlist, error) {
	if err := r.db.Model(&models.Playlist{}).Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.FindByID(id)
}

func (r *PlaylistRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&models.PlaylistVideo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Playlist{}, id).Error
	})
}

// AddVideo appends the video to the playlist. Adding a video that is
// already a member is a no-op; the unique index covers the concurrent case.
func (r *PlaylistRepository) AddVideo(playlistID, videoID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.PlaylistVideo
		err := tx.Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
			First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var maxPos int
		if err := tx.Model(&models.PlaylistVideo{}).
			Where("playlist_id = ?", playlistID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPos).Error; err != nil {
			return err
		}

		item := models.PlaylistVideo{
			PlaylistId: playlistID,
			VideoId:    videoID,
			Position:   maxPos + 1,
		}
		return tx.Create(&item).Error
	})
}

func (r *PlaylistRepository) RemoveVideo(playlistID, videoID uint) error {
	return r.db.Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&models.PlaylistVideo{}).Error
}
