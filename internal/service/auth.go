package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/Skotchmaster/photo_share/internal/cache"
	"github.com/Skotchmaster/photo_share/internal/hash"
	"github.com/Skotchmaster/photo_share/internal/logging"
	"github.com/Skotchmaster/photo_share/internal/models"
	"github.com/Skotchmaster/photo_share/internal/repo"
	"github.com/Skotchmaster/photo_share/internal/tokens"
)

// LoginAccessTTL overrides the default access TTL on the login path only;
// the refresh path issues short-lived access tokens.
const LoginAccessTTL = 7200 * time.Second

const mailTimeout = 30 * time.Second

type AuthService struct {
	Repo     *repo.GormRepo
	Cache    *cache.UserCache
	Codec    *tokens.Codec
	Mailer   Mailer
	Producer Producer
	BaseURL  string
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Signup registers a new account. The confirmation mail and the domain
// event are dispatched in the background; their failure never fails the
// signup itself.
func (s *AuthService) Signup(ctx context.Context, email, username, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup", "email", email)

	if _, err := s.Repo.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if _, err := s.Repo.GetUserByUsername(ctx, username); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("signup_failed", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: pwHash,
		Role:         models.RoleUser,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	go s.sendConfirmationMail(user.Email, user.Username)
	s.publish(ctx, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	})

	l.Info("signup_successful", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Login verifies credentials and account state, then issues a fresh
// access+refresh pair. The refresh token is persisted before returning.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "email", email)

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "invalid password")
		return nil, ErrUnauthenticated
	}
	if user.BanStatus {
		l.Warn("login_failed", "reason", "account banned")
		return nil, ErrForbidden
	}
	if !user.Confirmed {
		l.Warn("login_failed", "reason", "email not confirmed")
		return nil, ErrUnauthenticated
	}

	pair, err := s.issuePair(ctx, user, LoginAccessTTL)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":     "user_logged_in",
		"user_id":  user.ID,
		"username": user.Username,
	})

	l.Info("login_successful", "user_id", user.ID)
	return pair, nil
}

// Refresh rotates the token pair. A presented token that does not match
// the stored one is treated as reuse of a rotated token: the stored token
// is cleared and the session is forced back to login.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	claims, err := s.Codec.Decode(refreshToken, tokens.ScopeRefresh)
	if err != nil {
		return nil, err
	}

	user, err := s.Repo.GetUserByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		l.Warn("refresh_rejected", "reason", "stored token mismatch", "user_id", user.ID)
		if err := s.Repo.UpdateRefreshToken(ctx, user, nil); err != nil {
			return nil, err
		}
		s.invalidate(ctx, user.Email)
		return nil, ErrUnauthenticated
	}

	return s.issuePair(ctx, user, tokens.AccessTTL)
}

// CurrentUser resolves the principal behind a bearer access token,
// reading through the cache to the database.
func (s *AuthService) CurrentUser(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := s.Codec.Decode(accessToken, tokens.ScopeAccess)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	if claims.Subject == "" {
		return nil, ErrUnauthenticated
	}
	return s.resolveByEmail(ctx, claims.Subject)
}

// resolveByEmail is the read-through path: cache first, database on miss,
// populate on fallback. Cache connectivity failures surface as errors so
// they are never mistaken for a miss.
func (s *AuthService) resolveByEmail(ctx context.Context, email string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.resolve", "email", email)

	user, ok, err := s.Cache.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if ok {
		return user, nil
	}

	user, err = s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	if err := s.Cache.Put(ctx, user); err != nil {
		l.Warn("cache_populate_failed", "error", err)
	}
	return user, nil
}

// RequestEmailConfirmation re-sends the confirmation mail. Returns true
// if the account is already confirmed and nothing was sent.
func (s *AuthService) RequestEmailConfirmation(ctx context.Context, email string) (bool, error) {
	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}
	if user.Confirmed {
		return true, nil
	}

	go s.sendConfirmationMail(user.Email, user.Username)
	return false, nil
}

// ConfirmEmail flips the confirmed flag. Idempotent for an already
// confirmed account.
func (s *AuthService) ConfirmEmail(ctx context.Context, token string) error {
	claims, err := s.Codec.Decode(token, tokens.ScopeEmail)
	if err != nil {
		return tokens.ErrInvalidToken
	}

	user, err := s.Repo.GetUserByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if user.Confirmed {
		return nil
	}

	if err := s.Repo.ConfirmEmail(ctx, user); err != nil {
		return err
	}
	s.invalidate(ctx, user.Email)
	return nil
}

// ForgotPassword generates a single-use reset token, persists it and
// mails it in the background.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	l := logging.FromContext(ctx).With("svc", "auth.forgot_password", "email", email)

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	token, err := newResetToken()
	if err != nil {
		return err
	}
	if err := s.Repo.SetResetPasswordToken(ctx, user, &token); err != nil {
		return err
	}
	s.invalidate(ctx, user.Email)

	mailCopy := *user
	go func() {
		mailCtx, cancel := context.WithTimeout(context.Background(), mailTimeout)
		defer cancel()
		if err := s.Mailer.SendPasswordReset(mailCtx, mailCopy.Email, mailCopy.Username, token); err != nil {
			l.Error("reset_mail_failed", "error", err)
		}
	}()

	l.Info("reset_token_issued", "user_id", user.ID)
	return nil
}

// ResetPassword consumes the reset token: on success the new hash is
// stored and the token cleared, so a second presentation fails.
func (s *AuthService) ResetPassword(ctx context.Context, email, token, newPassword, confirmPassword string) (*models.User, error) {
	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if user.ResetPasswordToken == nil || *user.ResetPasswordToken != token {
		return nil, ErrTokenMismatch
	}
	if newPassword != confirmPassword {
		return nil, ErrPasswordMismatch
	}

	pwHash, err := hash.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.UpdatePassword(ctx, user, pwHash); err != nil {
		return nil, err
	}
	s.invalidate(ctx, user.Email)
	return user, nil
}

// BanUser marks the account banned. There is no unban path.
func (s *AuthService) BanUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.Repo.BanUser(ctx, user); err != nil {
		return nil, err
	}
	s.invalidate(ctx, user.Email)

	s.publish(ctx, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":    "user_banned",
		"user_id": user.ID,
	})
	return user, nil
}

func (s *AuthService) issuePair(ctx context.Context, user *models.User, accessTTL time.Duration) (*TokenPair, error) {
	access, err := s.Codec.Issue(user.Email, tokens.ScopeAccess, accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.Codec.Issue(user.Email, tokens.ScopeRefresh, tokens.RefreshTTL)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.UpdateRefreshToken(ctx, user, &refresh); err != nil {
		return nil, err
	}
	s.invalidate(ctx, user.Email)

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) sendConfirmationMail(email, username string) {
	ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
	defer cancel()

	l := logging.FromContext(ctx).With("svc", "auth.confirmation_mail", "email", email)

	token, err := s.Codec.Issue(email, tokens.ScopeEmail, tokens.EmailTTL)
	if err != nil {
		l.Error("confirmation_token_failed", "error", err)
		return
	}
	if err := s.Mailer.SendConfirmation(ctx, email, username, s.BaseURL, token); err != nil {
		l.Error("confirmation_mail_failed", "error", err)
	}
}

// invalidate drops the cached snapshot after a user mutation. Best
// effort: a cache that cannot be reached must not fail the mutation.
func (s *AuthService) invalidate(ctx context.Context, email string) {
	if err := s.Cache.Invalidate(ctx, email); err != nil {
		logging.FromContext(ctx).Warn("cache_invalidate_failed", "email", email, "error", err)
	}
}

func (s *AuthService) publish(ctx context.Context, topic, key string, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_failed", "topic", topic, "error", err)
	}
}

func newResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
