package auth

import (
	"context"
	"errors"
	"time"

	autherrors "go-staffhub/internal/auth/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (UserResponse, error)
	Login(ctx context.Context, username, password string) (LoginResponse, error)
	ListUsers(ctx context.Context) ([]UserResponse, error)
	GetUser(ctx context.Context, id string) (UserResponse, error)
	UpdateRole(ctx context.Context, id string, role string) (UserResponse, error)
	UpdateStatus(ctx context.Context, id string, isActive bool) (UserResponse, error)

	// VerifyCredentials is the shared primitive behind both authentication
	// strategies. The web surface calls it to open a session; Login calls it
	// before issuing a token.
	VerifyCredentials(ctx context.Context, username, password string) (Principal, error)
}

type service struct {
	repo   Repository
	tokens *TokenIssuer
	logger *zap.Logger
}

func NewService(repo Repository, tokens *TokenIssuer, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, tokens: tokens, logger: l}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (UserResponse, error) {
	s.logger.Debug("register requested", zap.String("username", req.Username))

	if !ValidRole(req.Role) {
		return UserResponse{}, autherrors.ErrInvalidRole
	}

	// Uniqueness is a check-then-act pre-check; there is no transactional
	// guard between the lookup and the insert.
	if _, err := s.repo.FindByUsername(ctx, req.Username); err == nil {
		return UserResponse{}, autherrors.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("register username lookup failed", zap.Error(err))
		return UserResponse{}, err
	}
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return UserResponse{}, autherrors.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("register email lookup failed", zap.Error(err))
		return UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	user := &User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Role:         req.Role,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Error("register persist failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role),
	)
	return mapToResponse(user), nil
}

func (s *service) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	user, err := s.verify(ctx, username, password)
	if err != nil {
		return LoginResponse{}, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error("token issue failed", zap.Error(err))
		return LoginResponse{}, err
	}

	s.logger.Info("login success", zap.String("user_id", user.ID.String()))
	return LoginResponse{
		Token: token,
		User:  mapToResponse(user),
	}, nil
}

func (s *service) VerifyCredentials(ctx context.Context, username, password string) (Principal, error) {
	user, err := s.verify(ctx, username, password)
	if err != nil {
		return Principal{}, err
	}

	return Principal{
		ID:       user.ID.String(),
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

// verify resolves and checks the account once; Login and VerifyCredentials
// both build on the returned entity instead of fetching it again.
func (s *service) verify(ctx context.Context, username, password string) (*User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		// Same failure for absent user and bad password.
		return nil, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, autherrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, autherrors.ErrAccountInactive
	}

	return user, nil
}

func (s *service) ListUsers(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list users failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = mapToResponse(&users[i])
	}
	return resp, nil
}

func (s *service) GetUser(ctx context.Context, id string) (UserResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(user), nil
}

func (s *service) UpdateRole(ctx context.Context, id string, role string) (UserResponse, error) {
	if !ValidRole(role) {
		return UserResponse{}, autherrors.ErrInvalidRole
	}

	uid, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	user.Role = role
	if err := s.repo.Update(ctx, user); err != nil {
		s.logger.Error("update role persist failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("user role updated",
		zap.String("user_id", id),
		zap.String("role", role),
	)
	return mapToResponse(user), nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, isActive bool) (UserResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	user.IsActive = isActive
	if err := s.repo.Update(ctx, user); err != nil {
		s.logger.Error("update status persist failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("user status updated",
		zap.String("user_id", id),
		zap.Bool("is_active", isActive),
	)
	return mapToResponse(user), nil
}

func mapToResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}
