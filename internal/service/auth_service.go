package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"starpro_store/internal/model"
	"starpro_store/internal/repository"
	"starpro_store/internal/utils"
	"starpro_store/internal/view"
)

var (
	ErrPhoneRegistered    = errors.New("mobile number already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingField       = errors.New("required field is empty")
)

// AuthResult is returned by every operation that changes the current session.
type AuthResult struct {
	Session *model.Session `json:"session,omitempty"`
	Token   string         `json:"token,omitempty"`
	Next    view.Route     `json:"next"`
}

// AuthService provides signup, login and logout against the users collection.
// Login uses credential matching only: the identifier is a username or phone
// and the password must match the stored hash.
type AuthService interface {
	Signup(ctx context.Context, req model.SignupRequest) (*AuthResult, error)
	Login(ctx context.Context, identifier, password string) (*AuthResult, error)
	Logout(ctx context.Context) (*AuthResult, error)
	Current(ctx context.Context) (*model.Session, error)
}

type authService struct {
	store    *repository.RecordStore
	sessions *repository.SessionHolder
	jwtUtil  *utils.JWTUtil
	logger   *slog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(store *repository.RecordStore, sessions *repository.SessionHolder, jwtUtil *utils.JWTUtil, logger *slog.Logger) AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		store:    store,
		sessions: sessions,
		jwtUtil:  jwtUtil,
		logger:   logger,
	}
}

// Signup registers a customer: the user record is appended, a customer record
// is prepended, both collections are persisted, and only then the new user
// becomes the current session.
func (s *authService) Signup(ctx context.Context, req model.SignupRequest) (*AuthResult, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	if name == "" || phone == "" || req.Password == "" {
		return nil, ErrMissingField
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		Username: phone,
		Password: hashedPassword,
		Role:     model.RoleCustomer,
		Name:     name,
		Phone:    phone,
		Email:    strings.TrimSpace(req.Email),
	}
	customer := model.Customer{
		Name:  name,
		Phone: phone,
		Email: user.Email,
	}

	user, customer, err = s.store.RegisterCustomer(ctx, user, customer)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicatePhone) {
			return nil, ErrPhoneRegistered
		}
		return nil, fmt.Errorf("failed to register customer: %w", err)
	}
	s.logger.Info("customer signed up", "phone", phone, "customer_id", customer.ID)

	return s.establish(ctx, user)
}

func (s *authService) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	for _, user := range s.store.FindUsersByIdentifier(identifier) {
		if utils.CheckPasswordHash(password, user.Password) {
			return s.establish(ctx, user)
		}
	}
	return nil, ErrInvalidCredentials
}

func (s *authService) Logout(ctx context.Context) (*AuthResult, error) {
	if err := s.sessions.Clear(ctx); err != nil {
		return nil, err
	}
	return &AuthResult{Next: view.RouteEntry}, nil
}

func (s *authService) Current(ctx context.Context) (*model.Session, error) {
	return s.sessions.Current(ctx)
}

func (s *authService) establish(ctx context.Context, user model.User) (*AuthResult, error) {
	sess := user.Session()
	if err := s.sessions.Set(ctx, sess); err != nil {
		return nil, err
	}

	token, err := s.jwtUtil.GenerateToken(sess.Username, sess.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{Session: &sess, Token: token, Next: view.RouteMain}, nil
}
