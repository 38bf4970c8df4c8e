package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/echonet/echonet/internal/auth"
	"github.com/echonet/echonet/internal/domain"
	"github.com/echonet/echonet/internal/events"
	"github.com/echonet/echonet/internal/repository"
	apperrors "github.com/echonet/echonet/pkg/util/errorutil"
)

// AuthService coordinates registration, login and account lookup.
type AuthService struct {
	users      repository.UserRepository
	issuer     *auth.Issuer
	hasher     auth.PasswordHasher
	dispatcher events.Dispatcher
	now        func() time.Time
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Issuer     *auth.Issuer
	Hasher     auth.PasswordHasher
	Dispatcher events.Dispatcher
	Clock      func() time.Time
}

// RegisterInput carries the full registration form.
type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
	Bio      string
	Location string
	Website  string
}

// LoginResult is returned by successful logins.
type LoginResult struct {
	User  *domain.User
	Token auth.Token
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &AuthService{
		users:      deps.UserRepo,
		issuer:     deps.Issuer,
		hasher:     deps.Hasher,
		dispatcher: deps.Dispatcher,
		now:        clock,
	}
}

// RegisterUser creates an account from the full registration form.
func (s *AuthService) RegisterUser(ctx context.Context, in RegisterInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	username := strings.ToLower(strings.TrimSpace(in.Username))
	email := normalizeEmail(in.Email)

	missing := map[string]any{}
	if name == "" {
		missing["name"] = "required"
	}
	if username == "" {
		missing["username"] = "required"
	}
	if email == "" {
		missing["email"] = "required"
	}
	if strings.TrimSpace(in.Password) == "" {
		missing["password"] = "required"
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", missing)
	}
	if !strings.Contains(email, "@") {
		return nil, apperrors.NewValidationError("invalid email", map[string]any{"email": email})
	}

	if err := s.ensureAvailable(ctx, email, username); err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:     name,
		Username: username,
		Email:    email,
		Bio:      strings.TrimSpace(in.Bio),
		Location: strings.TrimSpace(in.Location),
		Website:  strings.TrimSpace(in.Website),
	}
	if err := s.create(ctx, user, in.Password); err != nil {
		return nil, err
	}
	return user, nil
}

// RegisterSimple creates an account from email and password alone. The
// username is derived from the email local part plus a millisecond stamp.
func (s *AuthService) RegisterSimple(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, apperrors.NewValidationError("email and password required", nil)
	}
	at := strings.Index(email, "@")
	if at <= 0 {
		return nil, apperrors.NewValidationError("invalid email", map[string]any{"email": email})
	}
	local := email[:at]
	username := local + "_" + strconv.FormatInt(s.now().UnixMilli(), 10)

	if err := s.ensureAvailable(ctx, email, username); err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:     local,
		Username: username,
		Email:    email,
	}
	if err := s.create(ctx, user, password); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates by email and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	return s.authenticate(user, err, password)
}

// LoginByUsername authenticates by username and issues a token.
func (s *AuthService) LoginByUsername(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	return s.authenticate(user, err, password)
}

// GetUserByID returns the account with the given id.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.lookup(s.users.GetByID(ctx, id))
}

// GetUserByEmail returns the account with the given email.
func (s *AuthService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.lookup(s.users.GetByEmail(ctx, normalizeEmail(email)))
}

// GetUserByUsername returns the account with the given username.
func (s *AuthService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.lookup(s.users.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(username))))
}

func (s *AuthService) authenticate(user *domain.User, err error, password string) (*LoginResult, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if !user.IsActive {
		return nil, apperrors.NewUnauthorized("account is deactivated")
	}

	id := user.ID
	token, err := s.issuer.Issue(user.Email, &id)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &LoginResult{User: user, Token: token}, nil
}

func (s *AuthService) ensureAvailable(ctx context.Context, email, username string) error {
	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return apperrors.MapError(err)
	}
	if taken {
		return apperrors.NewConflict("email already registered", map[string]any{"email": email})
	}
	taken, err = s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return apperrors.MapError(err)
	}
	if taken {
		return apperrors.NewConflict("username already taken", map[string]any{"username": username})
	}
	return nil
}

func (s *AuthService) create(ctx context.Context, user *domain.User, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	user.PasswordHash = hash
	user.Role = domain.UserRoleUser
	user.IsActive = true

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return apperrors.NewConflict("account already exists", nil)
		}
		return apperrors.MapError(err)
	}

	publish(ctx, s.dispatcher, events.NewEvent(events.EventUserRegistered, user.ID, events.UserRegisteredPayload{
		Username: user.Username,
		Email:    user.Email,
	}))
	return nil
}

func (s *AuthService) lookup(user *domain.User, err error) (*domain.User, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// publish forwards an event when a dispatcher is configured. Handler failures
// are logged by the dispatcher and never fail the originating request.
func publish(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	_ = dispatcher.Publish(ctx, event)
}
