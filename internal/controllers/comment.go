package controllers

import (
	"encoding/json"
	"strings"

	"clipstream-backend/internal/apperrors"
	"clipstream-backend/internal/models"
	"clipstream-backend/internal/repository"

	"github.com/gofiber/fiber/v3"
)

type CommentController struct {
	comments *repository.CommentRepository
	videos   *repository.VideoRepository
}

func NewCommentController(
	comments *repository.CommentRepository,
	videos *repository.VideoRepository,
) *CommentController {
	return &CommentController{comments: comments, videos: videos}
}

func (cc *CommentController) Add(c fiber.Ctx) error {
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		return err
	}

	var req CommentRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return apperrors.BadRequest("Invalid request body")
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return apperrors.BadRequest("Comment content is required")
	}

	if _, err := cc.videos.FindByID(videoID); err != nil {
		return apperrors.NotFound("Video not found")
	}

	comment := models.Comment{
		Content: content,
		VideoId: videoID,
		OwnerId: currentUser(c).Id,
	}
	if err := cc.comments.Create(&comment); err != nil {
		return err
	}
	comment.Owner = currentUser(c)

	return respond(c, fiber.StatusCreated, toCommentResponse(&comment), "Comment added successfully")
}

func (cc *CommentController) List(c fiber.Ctx) error {
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		return err
	}
	if _, err := cc.videos.FindByID(videoID); err != nil {
		return apperrors.NotFound("Video not found")
	}

	page, limit := paginationParams(c)
	comments, total, err := cc.comments.ListByVideo(videoID, page, limit)
	if err != nil {
		return err
	}

	items := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, toCommentResponse(&comments[i]))
	}
	return respond(c, fiber.StatusOK, newPage(items, total, page, limit), "Comments fetched successfully")
}

func (cc *CommentController) Update(c fiber.Ctx) error {
	commentID, err := parseIDParam(c, "commentId")
	if err != nil {
		return err
	}

	var req CommentRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return apperrors.BadRequest("Invalid request body")
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return apperrors.BadRequest("Comment content is required")
	}

	if err := cc.requireOwnership(c, commentID); err != nil {
		return err
	}

	comment, err := cc.comments.UpdateContent(commentID, content)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, toCommentResponse(comment), "Comment updated successfully")
}

func (cc *CommentController) Delete(c fiber.Ctx) error {
	commentID, err := parseIDParam(c, "commentId")
	if err != nil {
		return err
	}
	if err := cc.requireOwnership(c, commentID); err != nil {
		return err
	}
	if err := cc.comments.Delete(commentID); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{}, "Comment deleted successfully")
}

func (cc *CommentController) requireOwnership(c fiber.Ctx, commentID uint) error {
	comment, err := cc.comments.FindByID(commentID)
	if err != nil {
		return apperrors.NotFound("Comment not found")
	}
	if comment.OwnerId != currentUser(c).Id {
		return apperrors.Forbidden("You are not the owner of this comment")
	}
	return nil
}
