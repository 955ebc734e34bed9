package controllers

import (
	"encoding/json"
	"strings"

	"clipstream-backend/internal/apperrors"
	"clipstream-backend/internal/repository"

	"github.com/gofiber/fiber/v3"
)

type UserController struct {
	users   *repository.UserRepository
	subs    *repository.SubscriptionRepository
	uploads Uploader
}

func NewUserController(
	users *repository.UserRepository,
	subs *repository.SubscriptionRepository,
	uploads Uploader,
) *UserController {
	return &UserController{users: users, subs: subs, uploads: uploads}
}

// UpdateDetails applies the supplied fields; at least one is required.
func (u *UserController) UpdateDetails(c fiber.Ctx) error {
	var req UpdateDetailsRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return apperrors.BadRequest("Invalid request body")
	}

	fields := map[string]any{}
	if name := strings.TrimSpace(req.FullName); name != "" {
		fields["full_name"] = name
	}
	if email := strings.ToLower(strings.TrimSpace(req.Email)); email != "" {
		fields["email"] = email
	}
	if len(fields) == 0 {
		return apperrors.BadRequest("At least one field is required")
	}

	user, err := u.users.UpdateDetails(currentUser(c).Id, fields)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, toUserResponse(user), "Account details updated")
}

func (u *UserController) UpdateAvatar(c fiber.Ctx) error {
	fh, err := c.FormFile("avatar")
	if err != nil {
		return apperrors.BadRequest("Avatar file is required")
	}
	url, err := uploadFormFile(c, u.uploads, fh, "avatar")
	if err != nil {
		return apperrors.Internal("Avatar upload failed")
	}

	previous := currentUser(c).AvatarUrl
	user, err := u.users.UpdateAvatar(currentUser(c).Id, url)
	if err != nil {
		return err
	}
	removeBlob(c, u.uploads, previous)
	return respond(c, fiber.StatusOK, toUserResponse(user), "Avatar updated")
}

func (u *UserController) UpdateCoverImage(c fiber.Ctx) error {
	fh, err := c.FormFile("coverImage")
	if err != nil {
		return apperrors.BadRequest("Cover image file is required")
	}
	url, err := uploadFormFile(c, u.uploads, fh, "cover")
	if err != nil {
		return apperrors.Internal("Cover image upload failed")
	}

	previous := currentUser(c).CoverImageUrl
	user, err := u.users.UpdateCoverImage(currentUser(c).Id, url)
	if err != nil {
		return err
	}
	removeBlob(c, u.uploads, previous)
	return respond(c, fiber.StatusOK, toUserResponse(user), "Cover image updated")
}

// ChannelProfile composes the public channel view: profile fields plus both
// subscription counts and whether the requester follows the channel.
func (u *UserController) ChannelProfile(c fiber.Ctx) error {
	username := strings.ToLower(strings.TrimSpace(c.Params("username")))
	if username == "" {
		return apperrors.BadRequest("Username is required")
	}

	channel, err := u.users.FindByUsername(username)
	if err != nil {
		return apperrors.NotFound("Channel does not exist")
	}

	subscriberCount, err := u.subs.CountSubscribers(channel.Id)
	if err != nil {
		return err
	}
	subscribedToCount, err := u.subs.CountSubscriptions(channel.Id)
	if err != nil {
		return err
	}
	isSubscribed, err := u.subs.IsSubscribed(currentUser(c).Id, channel.Id)
	if err != nil {
		return err
	}

	profile := ChannelProfileResponse{
		Username:          channel.Username,
		FullName:          channel.FullName,
		AvatarUrl:         channel.AvatarUrl,
		CoverImageUrl:     channel.CoverImageUrl,
		SubscriberCount:   subscriberCount,
		SubscribedToCount: subscribedToCount,
		IsSubscribed:      isSubscribed,
		CreatedAt:         channel.CreatedAt,
	}
	return respond(c, fiber.StatusOK, profile, "Channel profile fetched")
}

// WatchHistory returns the requester's history, newest first, with each
// video's owner nested.
func (u *UserController) WatchHistory(c fiber.Ctx) error {
	entries, err := u.users.WatchHistory(currentUser(c).Id)
	if err != nil {
		return err
	}

	videos := make([]VideoResponse, 0, len(entries))
	for i := range entries {
		if entries[i].Video != nil {
			videos = append(videos, toVideoResponse(entries[i].Video))
		}
	}
	return respond(c, fiber.StatusOK, videos, "Watch history fetched")
}
