package service

import (
	"context"
	"time"

	"ai-chatapp-be/internal/cache"
	"ai-chatapp-be/internal/config"
	"ai-chatapp-be/internal/dto"
	"ai-chatapp-be/internal/entity"
	"ai-chatapp-be/internal/pkg/logger"
	"ai-chatapp-be/internal/repository/memory"
	"ai-chatapp-be/internal/repository/specification"
	"ai-chatapp-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	GetUser(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	msgCache   *cache.MessageCache
	blacklist  *memory.TokenBlacklist
	log        logger.ILogger
	authCfg    config.AuthConfig

	warmLimit int
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	msgCache *cache.MessageCache,
	blacklist *memory.TokenBlacklist,
	log logger.ILogger,
	authCfg config.AuthConfig,
	warmLimit int,
) IAuthService {
	if warmLimit <= 0 {
		warmLimit = 100
	}
	return &authService{
		uowFactory: uowFactory,
		msgCache:   msgCache,
		blacklist:  blacklist,
		log:        log,
		authCfg:    authCfg,
		warmLimit:  warmLimit,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hash),
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("auth", "User registered", map[string]interface{}{
		"user_id": user.Id.String(),
	})

	return &dto.RegisterResponse{Id: user.Id, Email: user.Email}, nil
}

// Login verifies credentials, issues a token, then warms the message cache
// with the user's recent history. Warming never fails the login: its outcome
// travels back in the response for the client to inspect.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrBadCredentials
	}

	token, err := s.issueToken(user.Id)
	if err != nil {
		return nil, err
	}

	warm := s.warmCache(ctx, uow, user.Id)

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User: dto.UserResponse{
			Id:        user.Id,
			Email:     user.Email,
			FullName:  user.FullName,
			CreatedAt: user.CreatedAt,
		},
		Cache: warm,
	}, nil
}

func (s *authService) warmCache(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) cache.WarmResult {
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderByCreatedAt{Descending: true},
		specification.Paginate{Skip: 0, Limit: s.warmLimit},
	)
	if err != nil {
		s.log.Warn("auth", "History lookup for cache warm failed", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		return cache.WarmResult{Cached: false, Reason: "failed to load message history"}
	}
	return s.msgCache.Warm(ctx, userId, messages)
}

func (s *authService) issueToken(userId uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     userId.String(),
		"user_id": userId.String(),
		"iat":     now.Unix(),
		"exp":     now.Add(time.Duration(s.authCfg.TokenExpireMinutes) * time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.authCfg.JWTSecret))
}

// Logout blacklists the presented token for its remaining lifetime.
func (s *authService) Logout(ctx context.Context, token string) error {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.authCfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		// An invalid or expired token needs no revocation.
		return nil
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	s.blacklist.Revoke(token, exp.Time)
	return nil
}

func (s *authService) GetUser(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return &dto.UserResponse{
		Id:        user.Id,
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
	}, nil
}
