package service

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/lms-papers-api/internal/models"
	appErrors "github.com/noah-isme/lms-papers-api/pkg/errors"
)

const defaultProfileImage = "https://images.pexels.com/photos/1642228/pexels-photo-1642228.jpeg"

type userRegistry interface {
	FindByEmail(ctx context.Context, email string) (*models.User, bool)
	ExistsByEmail(ctx context.Context, email string) bool
	Add(ctx context.Context, user models.User)
}

type sessionStore interface {
	Load() *models.User
	Save(user models.User) error
	Clear() error
}

// AuthConfig defines configuration for authentication flows. SimulatedLatency
// models the async boundary of the demo login; tests set it to zero.
type AuthConfig struct {
	TokenSecret      string
	TokenExpiry      time.Duration
	Issuer           string
	SimulatedLatency time.Duration
}

// AuthService owns the process-wide session: current user, loading flag and
// credential checks against the fixed registry. Concurrent login/register
// attempts are rejected while one is in flight; the original front end let
// them race with last-write-wins.
type AuthService struct {
	registry  userRegistry
	sessions  sessionStore
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig

	mu      sync.RWMutex
	session models.Session

	inflight sync.Mutex
}

// NewAuthService constructs an AuthService. The session starts in the loading
// state until Restore runs.
func NewAuthService(registry userRegistry, sessions sessionStore, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.TokenExpiry <= 0 {
		config.TokenExpiry = 24 * time.Hour
	}
	return &AuthService{
		registry:  registry,
		sessions:  sessions,
		validator: validate,
		logger:    logger,
		config:    config,
		session:   models.Session{Loading: true},
	}
}

// Restore loads the persisted session record on startup. Absent or corrupt
// storage means no session; the loading flag clears unconditionally.
func (s *AuthService) Restore(ctx context.Context) {
	user := s.sessions.Load()

	s.mu.Lock()
	s.session = models.Session{User: user, Loading: false}
	s.mu.Unlock()

	if user != nil {
		s.logger.Info("session restored", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	}
}

// Session returns a snapshot of the current session state.
func (s *AuthService) Session() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Login authenticates against the registry with a case-sensitive exact match
// on email and password. On success the password-stripped user becomes the
// session and is persisted; on failure the session is left unset.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	if !s.inflight.TryLock() {
		return nil, appErrors.ErrLoginInFlight
	}
	defer s.inflight.Unlock()

	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.simulateLatency(ctx); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "login interrupted")
	}

	user, ok := s.registry.FindByEmail(ctx, req.Email)
	if !ok {
		return nil, appErrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	return s.establishSession(user.Sanitized())
}

// Register creates a new student account. The email check is case-sensitive;
// name, email and password formats are otherwise not validated.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid register payload")
	}

	if !s.inflight.TryLock() {
		return nil, appErrors.ErrLoginInFlight
	}
	defer s.inflight.Unlock()

	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.simulateLatency(ctx); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "registration interrupted")
	}

	if s.registry.ExistsByEmail(ctx, req.Email) {
		return nil, appErrors.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Role:         models.RoleStudent,
		ProfileImage: defaultProfileImage,
		PasswordHash: string(hash),
	}
	s.registry.Add(ctx, user)

	return s.establishSession(user.Sanitized())
}

// Logout clears the current session and removes the persisted record. It
// always succeeds.
func (s *AuthService) Logout(ctx context.Context) {
	s.mu.Lock()
	s.session = models.Session{}
	s.mu.Unlock()

	if err := s.sessions.Clear(); err != nil {
		s.logger.Warn("failed to remove persisted session", zap.Error(err))
	}
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unexpected signing method")
		}
		return []byte(s.config.TokenSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	if !claims.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unknown role")
	}

	return claims, nil
}

func (s *AuthService) establishSession(user models.User) (*models.AuthResponse, error) {
	s.mu.Lock()
	s.session = models.Session{User: &user, Loading: true}
	s.mu.Unlock()

	if err := s.sessions.Save(user); err != nil {
		s.logger.Warn("failed to persist session record", zap.Error(err))
	}

	token, issuedAt, err := s.generateAccessToken(user)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	return &models.AuthResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.config.TokenExpiry.Seconds()),
		IssuedAt:    issuedAt,
		User:        user,
	}, nil
}

func (s *AuthService) generateAccessToken(user models.User) (string, time.Time, error) {
	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(s.config.TokenExpiry)
	claims := &models.JWTClaims{
		UserID: user.ID,
		Role:   user.Role,
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.TokenSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, issuedAt, nil
}

func (s *AuthService) setLoading(loading bool) {
	s.mu.Lock()
	s.session.Loading = loading
	s.mu.Unlock()
}

func (s *AuthService) simulateLatency(ctx context.Context) error {
	if s.config.SimulatedLatency <= 0 {
		return nil
	}
	timer := time.NewTimer(s.config.SimulatedLatency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
