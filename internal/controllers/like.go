package controllers

import (
	"clipstream-backend/internal/apperrors"
	"clipstream-backend/internal/models"
	"clipstream-backend/internal/repository"

	"github.com/gofiber/fiber/v3"
)

type LikeController struct {
	likes    *repository.LikeRepository
	videos   *repository.VideoRepository
	comments *repository.CommentRepository
}

func NewLikeController(
	likes *repository.LikeRepository,
	videos *repository.VideoRepository,
	comments *repository.CommentRepository,
) *LikeController {
	return &LikeController{likes: likes, videos: videos, comments: comments}
}

func (lc *LikeController) ToggleVideo(c fiber.Ctx) error {
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		return err
	}
	if _, err := lc.videos.FindByID(videoID); err != nil {
		return apperrors.NotFound("Video not found")
	}

	added, err := lc.likes.ToggleVideoLike(currentUser(c).Id, videoID)
	if err != nil {
		return err
	}

	message := "Video like removed"
	if added {
		message = "Video liked successfully"
	}
	return respond(c, fiber.StatusOK, ToggleResponse{Active: added}, message)
}

func (lc *LikeController) ToggleComment(c fiber.Ctx) error {
	commentID, err := parseIDParam(c, "commentId")
	if err != nil {
		return err
	}
	if _, err := lc.comments.FindByID(commentID); err != nil {
		return apperrors.NotFound("Comment not found")
	}

	added, err := lc.likes.ToggleCommentLike(currentUser(c).Id, commentID)
	if err != nil {
		return err
	}

	message := "Comment like removed"
	if added {
		message = "Comment liked successfully"
	}
	return respond(c, fiber.StatusOK, ToggleResponse{Active: added}, message)
}

// LikedVideos lists the videos the requester has liked, newest like first.
func (lc *LikeController) LikedVideos(c fiber.Ctx) error {
	likes, err := lc.likes.LikedVideos(currentUser(c).Id)
	if err != nil {
		return err
	}

	videos := make([]models.Video, 0, len(likes))
	for i := range likes {
		if likes[i].Video != nil {
			videos = append(videos, *likes[i].Video)
		}
	}
	return respond(c, fiber.StatusOK, toVideoResponses(videos), "Liked videos fetched successfully")
}
