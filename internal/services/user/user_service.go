package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPinNotSet          = errors.New("pin is not set for this user")
)

// Store is the persistence surface the service needs. *UserRepo satisfies it;
// tests swap in a fake.
type Store interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Create(ctx context.Context, name, email, phone, passwordHash string, role Role) (*User, error)
	Update(ctx context.Context, id uuid.UUID, name, email, phone, passwordHash string, role Role, pinHash *string) (*User, error)
	RotateLoginTimes(ctx context.Context, id uuid.UUID, now time.Time) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AssignToAllProjects(ctx context.Context, userID uuid.UUID) error
}

// WelcomeMailer delivers the onboarding email. Failures are not the
// service's concern; implementations log and absorb them.
type WelcomeMailer interface {
	SendWelcome(user *User, plainPassword string)
}

type UserService struct {
	repo   Store
	mailer WelcomeMailer
}

func NewUserService(repo Store, mailer WelcomeMailer) *UserService {
	return &UserService{repo: repo, mailer: mailer}
}

// Register creates a portal user, links them to every existing project and
// kicks off the welcome email. The email is fire-and-forget: registration
// succeeds even when delivery fails.
func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("name, email and password are required")
	}

	role, err := ParseRole(req.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRole, req.Role)
	}

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailAlreadyTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to validate email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := s.repo.Create(ctx, req.Name, req.Email, req.Phone, string(hash), role)
	if err != nil {
		return nil, err
	}

	if err := s.repo.AssignToAllProjects(ctx, u.ID); err != nil {
		return nil, err
	}

	if s.mailer != nil {
		s.mailer.SendWelcome(u, req.Password)
	}

	return u, nil
}

// Authenticate checks the password and rotates the login timestamps on
// success.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.repo.RotateLoginTimes(ctx, u.ID, time.Now().UTC())
}

// AuthenticateByPIN is the same flow against the stored pin hash.
func (s *UserService) AuthenticateByPIN(ctx context.Context, email, pin string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if u.PinHash == nil {
		return nil, ErrPinNotSet
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*u.PinHash), []byte(pin)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.repo.RotateLoginTimes(ctx, u.ID, time.Now().UTC())
}

// Update rewrites the profile. The password is always re-hashed; a PIN is
// hashed only when supplied.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req *UpdateRequest) (*User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	role, err := ParseRole(req.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRole, req.Role)
	}

	// The portal keys the update form on the email; an unregistered email
	// means the caller is editing a user that does not exist.
	if _, err := s.repo.GetByEmail(ctx, req.Email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var pinHash *string
	if req.Pin != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(req.Pin), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash pin: %w", err)
		}
		s := string(h)
		pinHash = &s
	}

	return s.repo.Update(ctx, id, req.Name, req.Email, req.Phone, string(hash), role, pinHash)
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *UserService) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}
