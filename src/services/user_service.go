package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"fleet/src/models"
	"fleet/src/repositories"
	"fleet/src/schemas"
	"fleet/src/utils"

	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	users     repositories.UserRepository
	tokenAuth *jwtauth.JWTAuth
	tokenTTL  time.Duration
	now       Clock
	onChange  func()
}

func NewUserService(users repositories.UserRepository, tokenAuth *jwtauth.JWTAuth, tokenTTL time.Duration) *UserService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &UserService{users: users, tokenAuth: tokenAuth, tokenTTL: tokenTTL, now: time.Now, onChange: func() {}}
}

func (s *UserService) OnChange(fn func()) {
	s.onChange = fn
}

func (s *UserService) Register(ctx context.Context, req schemas.RegisterRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := strings.ToUpper(req.Role)
	if role == "" {
		role = utils.RoleStaff
	}
	user := models.User{
		ID:           uuid.NewString(),
		Fullname:     strings.TrimSpace(req.Fullname),
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, utils.BadRequest("username already taken")
		}
		return nil, err
	}
	s.onChange()
	return &user, nil
}

// Login checks the credentials and issues a signed token carrying the user id
// and role.
func (s *UserService) Login(ctx context.Context, req schemas.LoginRequest) (*schemas.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	invalid := utils.Unauthorized("invalid username or password")

	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, invalid
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, utils.Forbidden("user is inactive")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, invalid
	}

	claims := map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
	}
	jwtauth.SetIssuedAt(claims, s.now())
	jwtauth.SetExpiry(claims, s.now().Add(s.tokenTTL))
	_, token, err := s.tokenAuth.Encode(claims)
	if err != nil {
		return nil, err
	}

	return &schemas.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
		User:        *user,
	}, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, utils.NotFound("user not found")
	}
	return u, err
}

func (s *UserService) Update(ctx context.Context, id string, req schemas.UpdateUserRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Fullname != nil {
		user.Fullname = strings.TrimSpace(*req.Fullname)
	}
	if req.Username != nil {
		user.Username = strings.TrimSpace(*req.Username)
	}
	if req.Role != nil {
		user.Role = strings.ToUpper(*req.Role)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, utils.BadRequest("username already taken")
		}
		return nil, err
	}
	s.onChange()
	return user, nil
}

// Delete is a soft delete: the row stays for maintenance history.
func (s *UserService) Delete(ctx context.Context, id string) error {
	err := s.users.SoftDelete(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return utils.NotFound("user not found")
	}
	if err == nil {
		s.onChange()
	}
	return err
}
