package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	users       map[string]*User
	assignCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]*User{}}
}

func (f *fakeStore) GetByEmail(_ context.Context, email string) (*User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, ErrUserNotFound
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *fakeStore) List(_ context.Context) ([]*User, error) {
	out := make([]*User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeStore) Create(_ context.Context, name, email, phone, passwordHash string, role Role) (*User, error) {
	if _, ok := f.users[email]; ok {
		return nil, ErrEmailAlreadyTaken
	}
	u := &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		Phone:        &phone,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	f.users[email] = u
	return u, nil
}

func (f *fakeStore) Update(_ context.Context, id uuid.UUID, name, email, phone, passwordHash string, role Role, pinHash *string) (*User, error) {
	u, err := f.GetByID(context.Background(), id)
	if err != nil {
		return nil, err
	}
	u.Name, u.Email, u.Phone, u.PasswordHash, u.Role = name, email, &phone, passwordHash, role
	if pinHash != nil {
		u.PinHash = pinHash
	}
	return u, nil
}

func (f *fakeStore) RotateLoginTimes(_ context.Context, id uuid.UUID, now time.Time) (*User, error) {
	u, err := f.GetByID(context.Background(), id)
	if err != nil {
		return nil, err
	}
	u.LastLogin = u.RecentLogin
	u.RecentLogin = &now
	return u, nil
}

func (f *fakeStore) Delete(_ context.Context, id uuid.UUID) error {
	for email, u := range f.users {
		if u.ID == id {
			delete(f.users, email)
			return nil
		}
	}
	return ErrUserNotFound
}

func (f *fakeStore) AssignToAllProjects(_ context.Context, _ uuid.UUID) error {
	f.assignCalls++
	return nil
}

type recordingMailer struct {
	sent int
}

func (m *recordingMailer) SendWelcome(_ *User, _ string) { m.sent++ }

func TestRegisterThenAuthenticate(t *testing.T) {
	store := newFakeStore()
	mailer := &recordingMailer{}
	svc := NewUserService(store, mailer)
	ctx := context.Background()

	created, err := svc.Register(ctx, &RegisterRequest{
		Role:     "software-engineer",
		Name:     "Jo",
		Phone:    "0771234567",
		Email:    "jo@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, RoleSoftwareEngineer, created.Role)
	assert.NotEqual(t, "hunter22", created.PasswordHash)
	assert.Equal(t, 1, store.assignCalls)
	assert.Equal(t, 1, mailer.sent)

	u, err := svc.Authenticate(ctx, "jo@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotNil(t, u.RecentLogin)

	_, err = svc.Authenticate(ctx, "jo@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewUserService(newFakeStore(), nil)
	ctx := context.Background()

	req := &RegisterRequest{Role: "viewer", Name: "A", Email: "a@b.c", Password: "pw"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrEmailAlreadyTaken)
}

func TestRegisterUnknownRole(t *testing.T) {
	svc := NewUserService(newFakeStore(), nil)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Role: "manager", Name: "A", Email: "a@b.c", Password: "pw",
	})
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	svc := NewUserService(newFakeStore(), nil)

	_, err := svc.Authenticate(context.Background(), "nobody@example.com", "pw")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLoginRotation(t *testing.T) {
	store := newFakeStore()
	svc := NewUserService(store, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterRequest{Role: "admin", Name: "A", Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)

	first, err := svc.Authenticate(ctx, "a@b.c", "pw")
	require.NoError(t, err)
	require.Nil(t, first.LastLogin)
	firstLogin := *first.RecentLogin

	second, err := svc.Authenticate(ctx, "a@b.c", "pw")
	require.NoError(t, err)
	require.NotNil(t, second.LastLogin)
	assert.Equal(t, firstLogin, *second.LastLogin)
}

func TestAuthenticateByPIN(t *testing.T) {
	store := newFakeStore()
	svc := NewUserService(store, nil)
	ctx := context.Background()

	created, err := svc.Register(ctx, &RegisterRequest{Role: "admin", Name: "A", Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.AuthenticateByPIN(ctx, "a@b.c", "1234")
	assert.ErrorIs(t, err, ErrPinNotSet)

	_, err = svc.Update(ctx, created.ID, &UpdateRequest{
		Name: "A", Email: "a@b.c", Password: "pw", Role: "admin", Pin: "1234",
	})
	require.NoError(t, err)

	u, err := svc.AuthenticateByPIN(ctx, "a@b.c", "1234")
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", u.Email)

	_, err = svc.AuthenticateByPIN(ctx, "a@b.c", "9999")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateUnregisteredEmail(t *testing.T) {
	svc := NewUserService(newFakeStore(), nil)

	_, err := svc.Update(context.Background(), uuid.New(), &UpdateRequest{
		Name: "A", Email: "ghost@b.c", Password: "pw", Role: "admin",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestParseRoleFailsClosed(t *testing.T) {
	for _, raw := range []string{"", "superadmin", "ADMIN", "software engineer"} {
		_, err := ParseRole(raw)
		assert.Error(t, err, raw)
	}

	r, err := ParseRole("roming-quality-inspector")
	require.NoError(t, err)
	assert.Equal(t, RoleRoamingInspector, r)
}
