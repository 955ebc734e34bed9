package controllers

import (
	"encoding/json"
	"strconv"
	"strings"

	"clipstream-backend/internal/apperrors"
	"clipstream-backend/internal/models"
	"clipstream-backend/internal/repository"

	"github.com/gofiber/fiber/v3"
)

type VideoController struct {
	videos  *repository.VideoRepository
	users   *repository.UserRepository
	likes   *repository.LikeRepository
	uploads Uploader
}

func NewVideoController(
	videos *repository.VideoRepository,
	users *repository.UserRepository,
	likes *repository.LikeRepository,
	uploads Uploader,
) *VideoController {
	return &VideoController{videos: videos, users: users, likes: likes, uploads: uploads}
}

// Feed runs the search feed: a non-empty text query matched against title
// and description, restricted sort keys, owner profile joined per hit.
func (v *VideoController) Feed(c fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		return apperrors.BadRequest("Need a valid query to fetch relevant results")
	}

	sortBy := c.Query("sortBy", "views")
	if sortBy != "views" && sortBy != "createdAt" {
		return apperrors.BadRequest("Invalid sort reference")
	}
	sortType := c.Query("sortType", "desc")
	if sortType != "asc" && sortType != "desc" {
		return apperrors.BadRequest("Invalid sort type")
	}

	page, limit := paginationParams(c)
	videos, total, err := v.videos.Search(query, sortBy, sortType, page, limit)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK,
		newPage(toVideoResponses(videos), total, page, limit),
		"Videos fetched successfully")
}

// GetByID returns one video with its owner and like count, bumps the view
// counter and records the watch in the requester's history.
func (v *VideoController) GetByID(c fiber.Ctx) error {
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		return err
	}

	video, err := v.videos.FindWithOwner(videoID)
	if err != nil {
		return apperrors.NotFound("Video not found")
	}

	if err := v.videos.IncrementViews(videoID); err != nil {
		return err
	}
	if err := v.users.RecordWatch(currentUser(c).Id, videoID); err != nil {
		return err
	}
	video.Views++

	likeCount, err := v.likes.CountForVideo(videoID)
	if err != nil {
		return err
	}

	resp := toVideoResponse(video)
	resp.LikesCount = likeCount
	return respond(c, fiber.StatusOK, resp, "Video fetched successfully")
}

// Publish uploads the video file and thumbnail to the blob store and
// creates the video owned by the requester.
func (v *VideoController) Publish(c fiber.Ctx) error {
	title := strings.TrimSpace(c.FormValue("title"))
	description := strings.TrimSpace(c.FormValue("description"))
	if title == "" || description == "" {
		return apperrors.BadRequest("Title and description are required")
	}

	videoFile, err := c.FormFile("videoFile")
	if err != nil {
		return apperrors.BadRequest("Video file is required")
	}
	thumbnailFile, err := c.FormFile("thumbnail")
	if err != nil {
		return apperrors.BadRequest("Thumbnail is required")
	}

	videoURL, err := uploadFormFile(c, v.uploads, videoFile, "video")
	if err != nil {
		return apperrors.Internal("Video upload failed")
	}
	thumbnailURL, err := uploadFormFile(c, v.uploads, thumbnailFile, "thumbnail")
	if err != nil {
		return apperrors.Internal("Thumbnail upload failed")
	}

	// The blob store reports no media duration, so the client supplies it.
	duration, _ := strconv.ParseFloat(c.FormValue("duration"), 64)

	video := models.Video{
		VideoUrl:     videoURL,
		ThumbnailUrl: thumbnailURL,
		Title:        title,
		Description:  description,
		Duration:     duration,
		IsPublished:  true,
		OwnerId:      currentUser(c).Id,
	}
	if err := v.videos.Create(&video); err != nil {
		return err
	}

	return respond(c, fiber.StatusCreated, toVideoResponse(&video), "Video successfully published")
}

// Update applies title/description changes; owner only.
func (v *VideoController) Update(c fiber.Ctx) error {
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		return err
	}

	var req UpdateVideoRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return apperrors.BadRequest("Invalid request body")
	}

	fields := map[string]any{}
	if title := strings.TrimSpace(req.Title); title != "" {
		fields["title"] = title
	}
	if description := strings.TrimSpace(req.Description); description != "" {
		fields["description"] = description
	}
	if len(fields) == 0 {
		return apperrors.BadRequest("At least one field is required to update video info")
	}

	if _, err := v.ownedVideo(c, videoID); err != nil {
		return err
	}

	video, err := v.videos.UpdateDetails(videoID, fields)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, toVideoResponse(video), "Video info updated successfully")
}

func (v *VideoController) Delete(c fiber.Ctx) error {
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		return err
	}
	video, err := v.ownedVideo(c, videoID)
	if err != nil {
		return err
	}
	if err := v.videos.Delete(videoID); err != nil {
		return err
	}
	removeBlob(c, v.uploads, video.VideoUrl)
	removeBlob(c, v.uploads, video.ThumbnailUrl)
	return respond(c, fiber.StatusOK, fiber.Map{}, "Video deleted successfully")
}

func (v *VideoController) TogglePublish(c fiber.Ctx) error {
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		return err
	}
	if _, err := v.ownedVideo(c, videoID); err != nil {
		return err
	}

	video, err := v.videos.TogglePublish(videoID)
	if err != nil {
		return err
	}

	message := "Video is now unpublished"
	if video.IsPublished {
		message = "Video is now published"
	}
	return respond(c, fiber.StatusOK, toVideoResponse(video), message)
}

func (v *VideoController) ChangeThumbnail(c fiber.Ctx) error {
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		return err
	}

	fh, err := c.FormFile("thumbnail")
	if err != nil {
		return apperrors.BadRequest("Thumbnail file is required")
	}

	existing, err := v.ownedVideo(c, videoID)
	if err != nil {
		return err
	}

	url, err := uploadFormFile(c, v.uploads, fh, "thumbnail")
	if err != nil {
		return apperrors.Internal("Thumbnail upload failed")
	}

	video, err := v.videos.UpdateThumbnail(videoID, url)
	if err != nil {
		return err
	}
	removeBlob(c, v.uploads, existing.ThumbnailUrl)
	return respond(c, fiber.StatusOK, toVideoResponse(video), "Video thumbnail successfully updated")
}

func (v *VideoController) ownedVideo(c fiber.Ctx, videoID uint) (*models.Video, error) {
	video, err := v.videos.FindByID(videoID)
	if err != nil {
		return nil, apperrors.NotFound("Video not found")
	}
	if video.OwnerId != currentUser(c).Id {
		return nil, apperrors.Forbidden("You are not the owner of this video")
	}
	return video, nil
}
