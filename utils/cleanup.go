package utils

import (
	"time"

	"clipstream-backend/internal/repository"

	"github.com/sirupsen/logrus"
)

// StartCleanupTask periodically purges expired password-reset codes.
func StartCleanupTask(codes *repository.VerificationCodeRepository, interval time.Duration) {
	go func() {
		for {
			time.Sleep(interval)
			removed, err := codes.DeleteExpired(time.Now())
			if err != nil {
				logrus.WithError(err).Error("verification code cleanup failed")
				continue
			}
			if removed > 0 {
				logrus.WithField("removed", removed).Info("expired verification codes purged")
			}
		}
	}()
}
