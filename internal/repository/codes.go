package repository

import (
	"time"

	"clipstream-backend/internal/models"

	"gorm.io/gorm"
)

type VerificationCodeRepository struct {
	db *gorm.DB
}

func NewVerificationCodeRepository(db *gorm.DB) *VerificationCodeRepository {
	return &VerificationCodeRepository{db: db}
}

// Replace drops any previous code for the same user and purpose before
// storing the new one, so only the latest mailed code is usable.
func (r *VerificationCodeRepository) Replace(code *models.VerificationCode) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND purpose = ?", code.UserId, code.Purpose).
			Delete(&models.VerificationCode{}).Error; err != nil {
			return err
		}
		return tx.Create(code).Error
	})
}

func (r *VerificationCodeRepository) FindValid(userID uint, code, purpose string) (*models.VerificationCode, error) {
	var vc models.VerificationCode
	err := r.db.
		Where("user_id = ? AND code = ? AND purpose = ? AND expires_at > ?",
			userID, code, purpose, time.Now()).
		First(&vc).Error
	if err != nil {
		return nil, err
	}
	return &vc, nil
}

func (r *VerificationCodeRepository) Delete(id uint) error {
	return r.db.Delete(&models.VerificationCode{}, id).Error
}

// DeleteExpired removes codes past their expiry and reports how many went.
func (r *VerificationCodeRepository) DeleteExpired(now time.Time) (int64, error) {
	res := r.db.Where("expires_at < ?", now).Delete(&models.VerificationCode{})
	return res.RowsAffected, res.Error
}
