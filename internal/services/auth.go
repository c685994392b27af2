package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"park-system/internal/models"
	"park-system/internal/utils"
)

// AuthService handles login, registration and profile management.
type AuthService struct {
	users UserRepository
	audit AuditLogRepository
	log   *logrus.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users UserRepository, audit AuditLogRepository, log *logrus.Logger) *AuthService {
	return &AuthService{users: users, audit: audit, log: log}
}

// Login authenticates a user by email and password. Any failure, unknown
// email or wrong password, reports the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, models.ErrInvalidCredentials
	}

	s.recordAudit(ctx, models.AuditUser, user.UserID, "logged in")
	return user, nil
}

// Register creates a new customer account with a sequential custNN id.
func (s *AuthService) Register(ctx context.Context, name, email, password string, profile models.CustomerProfile) (*models.User, error) {
	email = strings.TrimSpace(email)
	if err := models.ValidateEmailFormat(email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(password) == "" {
		return nil, errors.New("password is required")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	count, err := s.users.CountByRole(ctx, models.RoleCustomer)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		UserID:       models.CustomerID(count + 1),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleCustomer,
	}
	if profile.AgeGroup != "" {
		user.AgeGroup = profile.AgeGroup
	}
	if profile.Gender != "" {
		user.Gender = profile.Gender
	}
	if profile.Region != "" {
		user.Region = profile.Region
	}
	if profile.VisitorType != "" {
		user.VisitorType = profile.VisitorType
	}
	if profile.MarketingOptIn != nil {
		user.MarketingOptIn = *profile.MarketingOptIn
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, models.AuditUser, user.UserID, "registered")
	s.log.WithFields(logrus.Fields{"user_id": user.UserID}).Info("customer registered")
	return user, nil
}

// Logout records the end of a session in the audit trail.
func (s *AuthService) Logout(ctx context.Context, user *models.User) {
	s.recordAudit(ctx, models.AuditUser, user.UserID, "logged out")
}

// UpdateProfile updates a customer's demographic fields
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, profile models.CustomerProfile) error {
	if err := s.users.UpdateProfile(ctx, userID, profile); err != nil {
		return err
	}
	s.recordAudit(ctx, models.AuditUser, userID, "updated profile")
	return nil
}

// GetUser retrieves an account by user id
func (s *AuthService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *AuthService) recordAudit(ctx context.Context, category, userID, action string) {
	entry := &models.AuditLog{
		Timestamp: time.Now(),
		Category:  category,
		User:      userID,
		Action:    action,
	}
	if err := s.audit.Insert(ctx, entry); err != nil {
		s.log.WithError(err).Warn("failed to write audit log")
	}
}
