package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/civic-complaints/internal/auth"
	"github.com/spec-kit/civic-complaints/internal/config"
	"github.com/spec-kit/civic-complaints/internal/domain"
	"github.com/spec-kit/civic-complaints/internal/persistence"
	"github.com/spec-kit/civic-complaints/internal/repository"
	apperrors "github.com/spec-kit/civic-complaints/pkg/util/errorutil"
)

// OTPStore holds short-lived official login codes.
type OTPStore interface {
	Set(ctx context.Context, phone, code string, ttl time.Duration) error
	Get(ctx context.Context, phone string) (string, error)
	Delete(ctx context.Context, phone string) error
}

// AuthService coordinates citizen registration/login and official OTP
// flows. SMS delivery is an external concern; codes are logged at debug
// level for development.
type AuthService struct {
	citizens   repository.CitizenRepository
	officials  repository.OfficialRepository
	otps       OTPStore
	tokenMgr   *auth.TokenManager
	logger     *zap.Logger
	bcryptCost int
	otpTTL     time.Duration
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	CitizenRepo  repository.CitizenRepository
	OfficialRepo repository.OfficialRepository
	OTPStore     OTPStore
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies, logger *zap.Logger) *AuthService {
	return &AuthService{
		citizens:   deps.CitizenRepo,
		officials:  deps.OfficialRepo,
		otps:       deps.OTPStore,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		logger:     logger,
		bcryptCost: cfg.Auth.BcryptCost,
		otpTTL:     cfg.Auth.OTPTTL(),
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// RegisterCitizen creates a new citizen account with a full integrity score.
func (s *AuthService) RegisterCitizen(ctx context.Context, name, email, password, phone string) (*domain.Citizen, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.citizens.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	citizen := &domain.Citizen{
		Name:           strings.TrimSpace(name),
		Email:          email,
		PasswordHash:   hash,
		Phone:          strings.TrimSpace(phone),
		Status:         domain.CitizenStatusActive,
		IntegrityScore: 100,
	}
	if err := s.citizens.Create(ctx, citizen); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(citizen.ID, domain.SubjectTypeCitizen)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return citizen, token, exp, nil
}

// LoginCitizen authenticates a citizen by email and password.
func (s *AuthService) LoginCitizen(ctx context.Context, email, password string) (*domain.Citizen, string, time.Time, error) {
	citizen, err := s.citizens.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if citizen.Status != domain.CitizenStatusActive {
		return nil, "", time.Time{}, apperrors.NewForbidden("account suspended")
	}
	if err := auth.ComparePassword(citizen.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(citizen.ID, domain.SubjectTypeCitizen)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return citizen, token, exp, nil
}

// RequestOfficialOTP issues a login code for a registered official's phone.
// The code stays valid for the configured TTL; requesting again replaces it.
func (s *AuthService) RequestOfficialOTP(ctx context.Context, phone string) error {
	phone = strings.TrimSpace(phone)
	if _, err := s.officials.GetByPhone(ctx, phone); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("official", map[string]any{"phone": phone})
		}
		return err
	}
	code, err := generateOTP()
	if err != nil {
		return err
	}
	if err := s.otps.Set(ctx, phone, code, s.otpTTL); err != nil {
		return err
	}
	s.logger.Debug("official otp issued", zap.String("phone", phone), zap.String("code", code))
	return nil
}

// VerifyOfficialOTP checks the code and issues an official token. Codes are
// single use.
func (s *AuthService) VerifyOfficialOTP(ctx context.Context, phone, code string) (*domain.Official, string, time.Time, error) {
	phone = strings.TrimSpace(phone)
	stored, err := s.otps.Get(ctx, phone)
	if err != nil {
		if errors.Is(err, persistence.ErrOTPNotFound) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid or expired code")
		}
		return nil, "", time.Time{}, err
	}
	if stored != strings.TrimSpace(code) {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid or expired code")
	}
	official, err := s.officials.GetByPhone(ctx, phone)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if err := s.otps.Delete(ctx, phone); err != nil {
		return nil, "", time.Time{}, err
	}
	token, exp, err := s.tokenMgr.GenerateToken(official.ID, domain.SubjectTypeOfficial)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return official, token, exp, nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
