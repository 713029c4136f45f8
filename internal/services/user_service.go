package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/San7122/shopsmart-pro-sub001/internal/auth"
	"github.com/San7122/shopsmart-pro-sub001/internal/cache"
	"github.com/San7122/shopsmart-pro-sub001/internal/models"
	"github.com/San7122/shopsmart-pro-sub001/internal/repositories"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountSuspended   = errors.New("account is suspended")
)

var slugCleanRegex = regexp.MustCompile(`[^a-z0-9]+`)

type UserService struct {
	Repo *repositories.UserRepository
	JWT  *auth.JWTManager
	TOTP *TOTPService
}

func NewUserService(repo *repositories.UserRepository, jwt *auth.JWTManager, totp *TOTPService) *UserService {
	return &UserService{Repo: repo, JWT: jwt, TOTP: totp}
}

// slugify turns a shop name into a URL segment: lowercase, hyphens, nothing else
func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugCleanRegex.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "shop"
	}
	return s
}

// uniqueSlug appends a numeric suffix until the slug is free
func (s *UserService) uniqueSlug(ctx context.Context, base string) string {
	slug := base
	for i := 2; ; i++ {
		if _, err := s.Repo.GetBySlug(ctx, slug); err != nil {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	if req.Name == "" || req.Email == "" || req.ShopName == "" {
		return nil, errors.New("name, email and shop_name are required")
	}
	if len(req.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	if existing, err := s.Repo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, errors.New("an account with this email already exists")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		Phone:        req.Phone,
		ShopName:     req.ShopName,
		ShopSlug:     s.uniqueSlug(ctx, slugify(req.ShopName)),
		PasswordHash: hash,
		IsActive:     true,
	}

	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.JWT.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Token: token, User: user}, nil
}

func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(req.Email)

	// Bcrypt is deliberately slow, skip it on a cache hit
	if userID, ok := cache.GetCachedAuth(ctx, email, req.Password); ok {
		user, err := s.Repo.Get(ctx, int(userID))
		if err == nil && user.IsActive {
			return s.issueTokens(user)
		}
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountSuspended
	}

	cache.CacheAuth(ctx, email, req.Password, int64(user.ID))
	return s.issueTokens(user)
}

func (s *UserService) issueTokens(user *models.User) (*models.AuthResponse, error) {
	if user.TOTPEnabled {
		tempToken, err := s.JWT.GenerateTempToken(user)
		if err != nil {
			return nil, err
		}
		return &models.AuthResponse{TempToken: tempToken, Requires2FA: true}, nil
	}

	token, err := s.JWT.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// Verify2FA completes a login for owners with 2FA enabled
func (s *UserService) Verify2FA(ctx context.Context, req *models.Verify2FARequest) (*models.AuthResponse, error) {
	claims, err := s.JWT.ValidateTempToken(req.TempToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.Repo.Get(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	ok, err := s.TOTP.ValidateCode(ctx, user.ID, req.Code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("invalid verification code")
	}

	token, err := s.JWT.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID int) (*models.User, error) {
	return s.Repo.Get(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int, req *models.UpdateUserRequest) (*models.User, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}

	user, err := s.Repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Phone = req.Phone
	if req.ShopName != "" && req.ShopName != user.ShopName {
		user.ShopName = req.ShopName
		// Slug is stable once issued: the storefront URL is already shared
	}
	if req.Password != "" {
		if len(req.Password) < 8 {
			return nil, errors.New("password must be at least 8 characters")
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.Repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
