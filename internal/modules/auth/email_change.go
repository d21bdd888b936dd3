package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// emailChangeCodeRow backs the confirmation step of an email change.
// One row per user; requesting a new change overwrites it.
type emailChangeCodeRow struct {
	UserID    int64      `gorm:"column:user_id;primaryKey"`
	CodeHash  string     `gorm:"column:code_hash"`
	ExpiresAt time.Time  `gorm:"column:expires_at"`
	UsedAt    *time.Time `gorm:"column:used_at"`
	CreatedAt time.Time  `gorm:"column:created_at"`
}

func (emailChangeCodeRow) TableName() string { return "email_change_codes" }

// ChangeEmail records the new address as pending and mails a
// confirmation code. The authoritative email is untouched until
// ConfirmEmailChange succeeds, so status snapshots keep showing the
// old address in the meantime.
func (s *Service) ChangeEmail(ctx context.Context, userID int64, newEmail string) error {
	email := strings.ToLower(strings.TrimSpace(newEmail))

	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailAlreadyExists
	}

	if err := s.users.SetPendingEmail(ctx, userID, email); err != nil {
		return err
	}

	code, err := generateConfirmCode()
	if err != nil {
		return err
	}

	now := time.Now()
	row := emailChangeCodeRow{
		UserID:    userID,
		CodeHash:  hashConfirmCode(code, s.confirmPepper),
		ExpiresAt: now.Add(s.confirmCodeTTL),
		CreatedAt: now,
	}
	if err := s.users.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"code_hash":  row.CodeHash,
				"expires_at": row.ExpiresAt,
				"used_at":    nil,
			}),
		}).
		Create(&row).Error; err != nil {
		return err
	}

	return s.mailer.SendEmailChangeCode(ctx, email, code)
}

// ConfirmEmailChange promotes the pending address once the code checks
// out. Looked up by the current (old) email since the new one is not
// authoritative yet.
func (s *Service) ConfirmEmailChange(ctx context.Context, currentEmail, code string) error {
	user, err := s.users.GetByEmail(ctx, currentEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidConfirmCode
		}
		return err
	}
	if user.PendingEmail == "" {
		return ErrNoPendingEmail
	}

	var row emailChangeCodeRow
	if err := s.users.DB().WithContext(ctx).
		Where("user_id = ?", user.ID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidConfirmCode
		}
		return err
	}

	now := time.Now()
	if row.UsedAt != nil || !row.ExpiresAt.After(now) {
		return ErrConfirmCodeExpired
	}
	if hashConfirmCode(code, s.confirmPepper) != row.CodeHash {
		return ErrInvalidConfirmCode
	}

	if err := s.users.ApplyPendingEmail(ctx, user.ID); err != nil {
		return err
	}

	return s.users.DB().WithContext(ctx).
		Model(&emailChangeCodeRow{}).
		Where("user_id = ?", user.ID).
		Updates(map[string]any{"used_at": now}).Error
}

func generateConfirmCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func hashConfirmCode(code, pepper string) string {
	sum := sha256.Sum256([]byte(code + pepper))
	return hex.EncodeToString(sum[:])
}
