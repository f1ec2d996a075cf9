package pgsql

import (
	"database/sql"
	"time"

	"github.com/skillbridge/skillbridge_backend/internal/core/domain"
	"github.com/skillbridge/skillbridge_backend/internal/models"
)

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func stringFromNull(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

func timeFromNull(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func toModelCredentials(c domain.Credentials) models.CredentialColumns {
	return models.CredentialColumns{
		PasswordHash:               nullString(c.PasswordHash),
		GoogleID:                   nullString(c.GoogleID),
		IsEmailVerified:            c.IsEmailVerified,
		EmailVerificationTokenHash: nullString(c.EmailVerificationTokenHash),
		EmailVerificationExpiresAt: nullTime(c.EmailVerificationExpiresAt),
		PasswordResetTokenHash:     nullString(c.PasswordResetTokenHash),
		PasswordResetExpiresAt:     nullTime(c.PasswordResetExpiresAt),
		LoginAttempts:              c.LoginAttempts,
		LockUntil:                  nullTime(c.LockUntil),
		IsActive:                   c.IsActive,
		LastLogin:                  nullTime(c.LastLogin),
	}
}

func toDomainCredentials(m models.CredentialColumns) domain.Credentials {
	return domain.Credentials{
		PasswordHash:               stringFromNull(m.PasswordHash),
		GoogleID:                   stringFromNull(m.GoogleID),
		IsEmailVerified:            m.IsEmailVerified,
		EmailVerificationTokenHash: stringFromNull(m.EmailVerificationTokenHash),
		EmailVerificationExpiresAt: timeFromNull(m.EmailVerificationExpiresAt),
		PasswordResetTokenHash:     stringFromNull(m.PasswordResetTokenHash),
		PasswordResetExpiresAt:     timeFromNull(m.PasswordResetExpiresAt),
		LoginAttempts:              m.LoginAttempts,
		LockUntil:                  timeFromNull(m.LockUntil),
		IsActive:                   m.IsActive,
		LastLogin:                  timeFromNull(m.LastLogin),
	}
}

func toDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:      m.UserID,
		Name:        m.Name,
		Email:       m.Email,
		Role:        domain.UserRole(m.Role),
		Credentials: toDomainCredentials(m.CredentialColumns),
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

func toDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:   m.CompanyID,
		CompanyName: m.CompanyName,
		Email:       m.Email,
		IsApproved:  m.IsApproved,
		Credentials: toDomainCredentials(m.CredentialColumns),
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}
