package controllers

import (
	"clipstream-backend/internal/apperrors"
	"clipstream-backend/internal/repository"

	"github.com/gofiber/fiber/v3"
)

type SubscriptionController struct {
	subs  *repository.SubscriptionRepository
	users *repository.UserRepository
}

func NewSubscriptionController(
	subs *repository.SubscriptionRepository,
	users *repository.UserRepository,
) *SubscriptionController {
	return &SubscriptionController{subs: subs, users: users}
}

func (sc *SubscriptionController) Toggle(c fiber.Ctx) error {
	channelID, err := parseIDParam(c, "channelId")
	if err != nil {
		return err
	}
	if _, err := sc.users.FindByID(channelID); err != nil {
		return apperrors.NotFound("Channel not found")
	}

	subscribed, err := sc.subs.Toggle(currentUser(c).Id, channelID)
	if err != nil {
		return err
	}

	message := "Unsubscribed successfully"
	if subscribed {
		message = "Subscribed successfully"
	}
	return respond(c, fiber.StatusOK, ToggleResponse{Active: subscribed}, message)
}

func (sc *SubscriptionController) ChannelSubscribers(c fiber.Ctx) error {
	channelID, err := parseIDParam(c, "channelId")
	if err != nil {
		return err
	}
	if _, err := sc.users.FindByID(channelID); err != nil {
		return apperrors.NotFound("Channel not found")
	}

	subscribers, err := sc.subs.Subscribers(channelID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, subscribers, "Subscribers fetched successfully")
}

func (sc *SubscriptionController) SubscribedChannels(c fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return err
	}
	if _, err := sc.users.FindByID(userID); err != nil {
		return apperrors.NotFound("User not found")
	}

	channels, err := sc.subs.SubscribedChannels(userID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, channels, "Subscribed channels fetched successfully")
}
