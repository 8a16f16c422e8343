package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/pkg/hash"
	jwthelp "github.com/Skotchmaster/shoe_shop/pkg/jwt"
	"github.com/Skotchmaster/shoe_shop/pkg/logging"
	"github.com/Skotchmaster/shoe_shop/pkg/mykafka"
	"github.com/Skotchmaster/shoe_shop/pkg/tokens"
	"github.com/Skotchmaster/shoe_shop/services/auth/internal/repo"
	"github.com/Skotchmaster/shoe_shop/services/auth/internal/transport"
)

const (
	EventVerificationRequested  = "verification_requested"
	EventUserVerified           = "user_verified"
	EventPasswordResetRequested = "password_reset_requested"
	EventPasswordResetSucceeded = "password_reset_succeeded"
	EventUserDeleted            = "user_deleted"

	verificationTTL = 24 * time.Hour
	resetTTL        = time.Hour
)

type AuthService struct {
	Repo      *repo.GormRepo
	Publisher mykafka.Publisher

	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	ClientURL string
}

// Session is a freshly issued access/refresh pair.
type Session struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
	User         *models.User
}

func (s Session) Response() transport.TokenResponse {
	return transport.TokenResponse{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		AccessExp:    s.AccessExp.Unix(),
		RefreshExp:   s.RefreshExp.Unix(),
		Role:         s.User.Role,
		User:         s.User,
	}
}

type emailEvent struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Code     string `json:"code,omitempty"`
	ResetURL string `json:"resetUrl,omitempty"`
}

func (s *AuthService) publish(ctx context.Context, typ string, u *models.User, data emailEvent) {
	if s.Publisher == nil {
		return
	}
	data.Email = u.Email
	data.Name = u.Name
	if err := s.Publisher.PublishEvent(ctx, mykafka.TopicUserEvents, u.ID.String(), mykafka.NewEvent(typ, data)); err != nil {
		logging.FromContext(ctx).Error("publish_failed", "svc", "auth", "type", typ, "user_id", u.ID, "error", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func verificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func resetToken() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func (s *AuthService) ttl() (time.Duration, time.Duration) {
	access, refresh := s.AccessTTL, s.RefreshTTL
	if access <= 0 {
		access = 15 * time.Minute
	}
	if refresh <= 0 {
		refresh = 7 * 24 * time.Hour
	}
	return access, refresh
}

func (s *AuthService) sign(u *models.User) (*Session, *models.RefreshToken, error) {
	accessTTL, refreshTTL := s.ttl()
	now := time.Now()
	sess := &Session{AccessExp: now.Add(accessTTL), RefreshExp: now.Add(refreshTTL), User: u}

	var err error
	sess.AccessToken, err = tokens.SignAccess(u.ID.String(), u.Role, sess.AccessExp, s.AccessSecret)
	if err != nil {
		return nil, nil, fmt.Errorf("sign access token: %w", err)
	}

	jti := jwthelp.NewJTI()
	sess.RefreshToken, err = tokens.SignRefresh(u.ID.String(), u.Role, jti, sess.RefreshExp, s.RefreshSecret)
	if err != nil {
		return nil, nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return sess, s.refreshRecord(u, jti, sess), nil
}

func (s *AuthService) issue(ctx context.Context, u *models.User) (*Session, error) {
	sess, record, err := s.sign(u)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SaveRefresh(ctx, record); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *AuthService) refreshRecord(u *models.User, jti string, sess *Session) *models.RefreshToken {
	return &models.RefreshToken{
		JTI:       jti,
		TokenHash: jwthelp.Sha256Hex(sess.RefreshToken),
		Subject:   u.ID.String(),
		Role:      u.Role,
		ExpiresAt: sess.RefreshExp.Unix(),
	}
}

func (s *AuthService) Signup(ctx context.Context, req transport.SignupRequest) (*Session, error) {
	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	code, err := verificationCode()
	if err != nil {
		return nil, err
	}
	expires := time.Now().UTC().Add(verificationTTL)

	u := &models.User{
		Email:               normalizeEmail(req.Email),
		PasswordHash:        pwHash,
		Name:                req.Name,
		PhoneNumber:         req.PhoneNumber,
		Role:                tokens.RoleCustomer,
		VerificationCode:    &code,
		VerificationExpires: &expires,
	}
	if err := s.Repo.CreateUser(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("user already exists: %w", ErrConflict)
		}
		return nil, err
	}

	sess, err := s.issue(ctx, u)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, EventVerificationRequested, u, emailEvent{Code: code})
	return sess, nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, code string) (*models.User, error) {
	u, err := s.Repo.FindByVerificationCode(ctx, strings.TrimSpace(code), time.Now().UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invalid or expired verification code: %w", ErrValidation)
		}
		return nil, err
	}

	u, err = s.Repo.UpdateUser(ctx, u.ID, map[string]any{
		"is_verified":          true,
		"verification_code":    nil,
		"verification_expires": nil,
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, EventUserVerified, u, emailEvent{})
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*Session, error) {
	u, err := s.Repo.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", ErrValidation)
		}
		return nil, err
	}
	if !hash.CheckPassword(u.PasswordHash, req.Password) {
		return nil, fmt.Errorf("invalid credentials: %w", ErrValidation)
	}
	if !u.IsVerified {
		return nil, fmt.Errorf("email is not verified: %w", ErrValidation)
	}

	u, err = s.Repo.UpdateUser(ctx, u.ID, map[string]any{"last_login": time.Now().UTC()})
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, u)
}

// Logout revokes refreshToken. An empty or unknown token is not an error.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.Repo.RevokeByHash(ctx, jwthelp.Sha256Hex(refreshToken))
}

// Refresh rotates refreshToken: the presented token is revoked and a new
// pair is issued with the user's current role.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token missing: %w", ErrUnauthorized)
	}
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", ErrUnauthorized)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", ErrUnauthorized)
	}
	u, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user no longer exists: %w", ErrUnauthorized)
		}
		return nil, err
	}

	sess, record, err := s.sign(u)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.RotateRefresh(ctx, claims.ID, record); err != nil {
		if errors.Is(err, repo.ErrTokenRevoked) {
			return nil, fmt.Errorf("refresh token expired or revoked: %w", ErrUnauthorized)
		}
		return nil, err
	}
	return sess, nil
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user not found: %w", ErrValidation)
		}
		return err
	}

	token, err := resetToken()
	if err != nil {
		return err
	}
	if _, err := s.Repo.UpdateUser(ctx, u.ID, map[string]any{
		"reset_token":         token,
		"reset_token_expires": time.Now().UTC().Add(resetTTL),
	}); err != nil {
		return err
	}

	resetURL := strings.TrimRight(s.ClientURL, "/") + "/reset-password/" + token
	s.publish(ctx, EventPasswordResetRequested, u, emailEvent{ResetURL: resetURL})
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	u, err := s.Repo.FindByResetToken(ctx, token, time.Now().UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("invalid or expired reset token: %w", ErrValidation)
		}
		return err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return err
	}
	if _, err := s.Repo.UpdateUser(ctx, u.ID, map[string]any{
		"password_hash":       pwHash,
		"reset_token":         nil,
		"reset_token_expires": nil,
	}); err != nil {
		return err
	}
	s.publish(ctx, EventPasswordResetSucceeded, u, emailEvent{})
	return nil
}

func parseUserID(userID string) (uuid.UUID, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("user not found: %w", ErrNotFound)
	}
	return id, nil
}

func (s *AuthService) CheckAuth(ctx context.Context, userID string) (*models.User, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	u, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found: %w", ErrNotFound)
		}
		return nil, err
	}
	return u, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req transport.ProfileRequest) (*models.User, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	u, err := s.Repo.UpdateUser(ctx, id, map[string]any{"name": req.Name, "phone_number": req.PhoneNumber})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found: %w", ErrNotFound)
		}
		return nil, err
	}
	return u, nil
}

func (s *AuthService) DeleteAccount(ctx context.Context, userID string) error {
	u, err := s.CheckAuth(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteUser(ctx, u.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user not found: %w", ErrNotFound)
		}
		return err
	}
	s.publish(ctx, EventUserDeleted, u, emailEvent{})
	return nil
}

// BootstrapManager creates a verified delivery manager account on first start.
func (s *AuthService) BootstrapManager(ctx context.Context, email, password string) (bool, error) {
	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return false, err
	}
	return s.Repo.EnsureUser(ctx, &models.User{
		Email:        normalizeEmail(email),
		PasswordHash: pwHash,
		Name:         "Delivery Manager",
		PhoneNumber:  "-",
		Role:         tokens.RoleManager,
		IsVerified:   true,
	})
}
