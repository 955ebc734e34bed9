package controllers

import (
	"encoding/json"
	"strings"

	"clipstream-backend/internal/apperrors"
	"clipstream-backend/internal/models"
	"clipstream-backend/internal/repository"

	"github.com/gofiber/fiber/v3"
)

type PlaylistController struct {
	playlists *repository.PlaylistRepository
	videos    *repository.VideoRepository
	users     *repository.UserRepository
}

func NewPlaylistController(
	playlists *repository.PlaylistRepository,
	videos *repository.VideoRepository,
	users *repository.UserRepository,
) *PlaylistController {
	return &PlaylistController{playlists: playlists, videos: videos, users: users}
}

func (pc *PlaylistController) Create(c fiber.Ctx) error {
	var req PlaylistRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return apperrors.BadRequest("Invalid request body")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return apperrors.BadRequest("Playlist name is required")
	}

	playlist := models.Playlist{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		OwnerId:     currentUser(c).Id,
	}
	if err := pc.playlists.Create(&playlist); err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, toPlaylistResponse(&playlist), "Playlist created successfully")
}

func (pc *PlaylistController) UserPlaylists(c fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return err
	}
	if _, err := pc.users.FindByID(userID); err != nil {
		return apperrors.NotFound("User not found")
	}

	playlists, err := pc.playlists.ListByOwner(userID)
	if err != nil {
		return err
	}

	items := make([]PlaylistResponse, 0, len(playlists))
	for i := range playlists {
		items = append(items, toPlaylistResponse(&playlists[i]))
	}
	return respond(c, fiber.StatusOK, items, "User playlists fetched successfully")
}

func (pc *PlaylistController) GetByID(c fiber.Ctx) error {
	playlistID, err := parseIDParam(c, "playlistId")
	if err != nil {
		return err
	}

	playlist, err := pc.playlists.FindWithVideos(playlistID)
	if err != nil {
		return apperrors.NotFound("Playlist not found")
	}
	return respond(c, fiber.StatusOK, toPlaylistResponse(playlist), "Playlist fetched successfully")
}

func (pc *PlaylistController) Update(c fiber.Ctx) error {
	playlistID, err := parseIDParam(c, "playlistId")
	if err != nil {
		return err
	}

	var req PlaylistRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return apperrors.BadRequest("Invalid request body")
	}

	fields := map[string]any{}
	if name := strings.TrimSpace(req.Name); name != "" {
		fields["name"] = name
	}
	if description := strings.TrimSpace(req.Description); description != "" {
		fields["description"] = description
	}
	if len(fields) == 0 {
		return apperrors.BadRequest("At least one field is required to update playlist info")
	}

	if err := pc.requireOwnership(c, playlistID); err != nil {
		return err
	}

	playlist, err := pc.playlists.UpdateDetails(playlistID, fields)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, toPlaylistResponse(playlist), "Playlist updated successfully")
}

func (pc *PlaylistController) Delete(c fiber.Ctx) error {
	playlistID, err := parseIDParam(c, "playlistId")
	if err != nil {
		return err
	}
	if err := pc.requireOwnership(c, playlistID); err != nil {
		return err
	}
	if err := pc.playlists.Delete(playlistID); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{}, "Playlist deleted successfully")
}

// AddVideo appends a video to the playlist; adding a video already in the
// playlist is a no-op rather than an error.
func (pc *PlaylistController) AddVideo(c fiber.Ctx) error {
	playlistID, err := parseIDParam(c, "playlistId")
	if err != nil {
		return err
	}
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		return err
	}

	if err := pc.requireOwnership(c, playlistID); err != nil {
		return err
	}
	if _, err := pc.videos.FindByID(videoID); err != nil {
		return apperrors.NotFound("Video not found")
	}

	if err := pc.playlists.AddVideo(playlistID, videoID); err != nil {
		return err
	}

	playlist, err := pc.playlists.FindWithVideos(playlistID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, toPlaylistResponse(playlist), "Video added to playlist")
}

func (pc *PlaylistController) RemoveVideo(c fiber.Ctx) error {
	playlistID, err := parseIDParam(c, "playlistId")
	if err != nil {
		return err
	}
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		return err
	}

	if err := pc.requireOwnership(c, playlistID); err != nil {
		return err
	}

	if err := pc.playlists.RemoveVideo(playlistID, videoID); err != nil {
		return err
	}

	playlist, err := pc.playlists.FindWithVideos(playlistID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, toPlaylistResponse(playlist), "Video removed from playlist")
}

func (pc *PlaylistController) requireOwnership(c fiber.Ctx, playlistID uint) error {
	playlist, err := pc.playlists.FindByID(playlistID)
	if err != nil {
		return apperrors.NotFound("Playlist not found")
	}
	if playlist.OwnerId != currentUser(c).Id {
		return apperrors.Forbidden("You are not the owner of this playlist")
	}
	return nil
}
