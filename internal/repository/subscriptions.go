package repository

import (
	"clipstream-backend/internal/models"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Toggle follows the same conditional-delete pattern as the like toggles.
func (r *SubscriptionRepository) Toggle(subscriberID, channelID uint) (subscribed bool, err error) {
	res := r.db.Where("subscriber_id = ? AND subscribed_to_id = ?", subscriberID, channelID).
		Delete(&models.Subscription{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}
	sub := models.Subscription{SubscriberId: subscriberID, SubscribedToId: channelID}
	if err := r.db.Create(&sub).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *SubscriptionRepository) IsSubscribed(subscriberID, channelID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).
		Where("subscriber_id = ? AND subscribed_to_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count > 0, err
}

// CountSubscribers counts edges targeting the channel.
func (r *SubscriptionRepository) CountSubscribers(channelID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).
		Where("subscribed_to_id = ?", channelID).
		Count(&count).Error
	return count, err
}

// CountSubscriptions counts channels the user subscribes to.
func (r *SubscriptionRepository) CountSubscriptions(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).
		Where("subscriber_id = ?", userID).
		Count(&count).Error
	return count, err
}

// Subscribers returns the public profiles of everyone subscribed to the channel.
func (r *SubscriptionRepository) Subscribers(channelID uint) ([]models.PublicProfile, error) {
	var subs []models.Subscription
	if err := r.db.Where("subscribed_to_id = ?", channelID).
		Preload("Subscriber").
		Find(&subs).Error; err != nil {
		return nil, err
	}
	profiles := make([]models.PublicProfile, 0, len(subs))
	for _, s := range subs {
		if s.Subscriber != nil {
			profiles = append(profiles, s.Subscriber.PublicProfile())
		}
	}
	return profiles, nil
}

// SubscribedChannels returns the public profiles of channels the user follows.
func (r *SubscriptionRepository) SubscribedChannels(userID uint) ([]models.PublicProfile, error) {
	var subs []models.Subscription
	if err := r.db.Where("subscriber_id = ?", userID).
		Preload("SubscribedTo").
		Find(&subs).Error; err != nil {
		return nil, err
	}
	profiles := make([]models.PublicProfile, 0, len(subs))
	for _, s := range subs {
		if s.SubscribedTo != nil {
			profiles = append(profiles, s.SubscribedTo.PublicProfile())
		}
	}
	return profiles, nil
}
