package application

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/invoice-dashboard/internal/domain/entity"
	repo "github.com/oksasatya/invoice-dashboard/internal/domain/repository"
	"github.com/oksasatya/invoice-dashboard/internal/validation"
	"github.com/oksasatya/invoice-dashboard/pkg/helpers"
	"github.com/oksasatya/invoice-dashboard/pkg/mailer"
)

// Classified auth failures. Anything the sign-in flow cannot classify is
// returned as-is and must surface as a generic server failure upstream,
// never be swallowed.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionStore       = errors.New("session store failure")
	ErrUserNotFound       = errors.New("user not found")
)

const (
	MsgRegisterMissingFields = "Missing Fields. Failed to Register."
	MsgUserExists            = "User already exists."
	MsgRegisterDBError       = "Database Error: Failed to Register."
	MsgInvalidCredentials    = "Invalid credentials."
	MsgSomethingWentWrong    = "Something went wrong."
)

func sessionKey(userID string) string {
	return "user:session:" + userID
}

// TokenPair is a freshly minted access/refresh pair.
type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// SignInResult carries either an established session (User + Tokens) or a
// user-facing failure message. Message set means no session exists.
type SignInResult struct {
	User    *entity.User
	Tokens  TokenPair
	Message string
}

// UserService owns registration and sign-in against the credential store.
type UserService struct {
	Repo        repo.UserRepository
	JWT         *helpers.JWTManager
	Redis       *redis.Client
	Logger      *logrus.Logger
	Pub         *helpers.RabbitPublisher
	BcryptCost  int
	SessionTTL  time.Duration
	MailEnabled bool
}

func NewUserService(r repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, pub *helpers.RabbitPublisher, bcryptCost int, sessionTTL time.Duration, mailEnabled bool) *UserService {
	return &UserService{
		Repo:        r,
		JWT:         jwt,
		Redis:       rdb,
		Logger:      logger,
		Pub:         pub,
		BcryptCost:  bcryptCost,
		SessionTTL:  sessionTTL,
		MailEnabled: mailEnabled,
	}
}

// Authenticate checks the submitted secret against the stored hash. A missing
// user and a wrong password are indistinguishable to the caller; any other
// store failure propagates unclassified.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens mints the token pair and records the session hash in Redis.
// The session id inside the tokens must match the stored one for the
// authorization gate to accept them.
func (s *UserService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, fmt.Errorf("%w: %v", ErrSessionStore, err)
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, fmt.Errorf("%w: %v", ErrSessionStore, err)
	}

	key := sessionKey(u.ID)
	fields := map[string]any{
		"user_id":    u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"sid":        sid,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
	pipe := s.Redis.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, s.SessionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return TokenPair{}, fmt.Errorf("%w: %v", ErrSessionStore, err)
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// SignIn authenticates and establishes a session. Failures classify into
// exactly two user-facing messages; unclassified errors are returned to the
// caller to become a generic server failure.
func (s *UserService) SignIn(ctx context.Context, email, password string) (SignInResult, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return SignInResult{Message: MsgInvalidCredentials}, nil
		}
		return SignInResult{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		if errors.Is(err, ErrSessionStore) {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("issue tokens failed")
			return SignInResult{Message: MsgSomethingWentWrong}, nil
		}
		return SignInResult{}, err
	}
	return SignInResult{User: u, Tokens: pair}, nil
}

// Register creates the user and immediately signs them in with the plaintext
// credentials still in hand, so a successful registration lands on the
// dashboard with a live session.
func (s *UserService) Register(ctx context.Context, form url.Values) (SignInResult, error) {
	in, ok := validation.ParseRegistration(form)
	if !ok {
		return SignInResult{Message: MsgRegisterMissingFields}, nil
	}

	existing, err := s.Repo.GetByEmail(in.Email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return SignInResult{}, err
	}
	if existing != nil {
		return SignInResult{Message: MsgUserExists}, nil
	}

	hash, err := helpers.HashPassword(in.Password, s.BcryptCost)
	if err != nil {
		return SignInResult{}, err
	}
	u := &entity.User{
		ID:       uuid.NewString(),
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
	}
	if err := s.Repo.Create(u); err != nil {
		s.Logger.WithError(err).WithField("email", in.Email).Error("register insert failed")
		return SignInResult{Message: MsgRegisterDBError}, nil
	}

	s.enqueueWelcomeEmail(ctx, u)

	return s.SignIn(ctx, in.Email, in.Password)
}

// Logout drops the Redis session; the cookie pair is cleared by the handler.
func (s *UserService) Logout(ctx context.Context, userID string) {
	if err := s.Redis.Del(ctx, sessionKey(userID)).Err(); err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("session delete failed")
	}
}

func (s *UserService) GetProfile(userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *UserService) enqueueWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"Name": u.Name},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("welcome email enqueue failed")
	}
}
