package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/coachportal/internal/telemetry/tracing"
	"github.com/2beens/coachportal/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrMissingCredentials = errors.New("missing credentials")
	ErrWrongCredentials   = errors.New("wrong credentials")
	ErrEmailRequired      = errors.New("email is required")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordsMismatch  = errors.New("passwords do not match")
	ErrGoogleDisabled     = errors.New("google sign-in is not configured")
)

//go:generate mockgen -source=$GOFILE -destination=identity_mocks_test.go -package=auth_test

type userRepo interface {
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, uid string) (User, error)
	UpdateEmail(ctx context.Context, uid, email string) error
	UpdatePasswordHash(ctx context.Context, uid, passwordHash string) error
}

type sessionService interface {
	Login(ctx context.Context, uid string, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
}

type tokenVerifier interface {
	Verify(ctx context.Context, idToken string) (string, error)
}

// Session is the outcome of a successful sign-in.
type Session struct {
	Token  string
	UserID string
	Email  string
}

// Identity owns portal accounts: sign-in, sign-out and credential updates.
type Identity struct {
	users    userRepo
	sessions sessionService
	google   tokenVerifier

	Now   func() time.Time
	NewID func() string
}

// NewIdentity creates the identity service. google may be nil, which
// disables Google sign-in.
func NewIdentity(users userRepo, sessions sessionService, google tokenVerifier) *Identity {
	return &Identity{
		users:    users,
		sessions: sessions,
		google:   google,
		Now:      time.Now,
		NewID:    uuid.NewString,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t\n") {
		return ErrInvalidEmail
	}
	return nil
}

func (i *Identity) SignIn(ctx context.Context, email, password string) (_ Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "identity.sign_in")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return Session{}, ErrMissingCredentials
	}

	user, err := i.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return Session{}, ErrWrongCredentials
		}
		return Session{}, fmt.Errorf("get user: %w", err)
	}

	if user.PasswordHash == "" || !pkg.CheckPasswordHash(password, user.PasswordHash) {
		return Session{}, ErrWrongCredentials
	}

	return i.startSession(ctx, user)
}

func (i *Identity) SignInWithGoogle(ctx context.Context, idToken string) (_ Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "identity.sign_in_google")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if i.google == nil {
		return Session{}, ErrGoogleDisabled
	}
	if idToken == "" {
		return Session{}, ErrMissingCredentials
	}

	email, err := i.google.Verify(ctx, idToken)
	if err != nil {
		log.Debugf("google id token rejected: %s", err)
		return Session{}, ErrWrongCredentials
	}

	user, err := i.FindOrCreateByEmail(ctx, email)
	if err != nil {
		return Session{}, err
	}

	return i.startSession(ctx, user)
}

func (i *Identity) startSession(ctx context.Context, user User) (Session, error) {
	token, err := i.sessions.Login(ctx, user.ID, i.Now())
	if err != nil {
		return Session{}, fmt.Errorf("start session: %w", err)
	}
	return Session{
		Token:  token,
		UserID: user.ID,
		Email:  user.Email,
	}, nil
}

func (i *Identity) SignOut(ctx context.Context, token string) (bool, error) {
	return i.sessions.Logout(ctx, token)
}

// FindOrCreateByEmail returns the account with the given email, creating a
// password-less one when there is none.
func (i *Identity) FindOrCreateByEmail(ctx context.Context, email string) (User, error) {
	email = normalizeEmail(email)
	user, err := i.users.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return User{}, fmt.Errorf("get user: %w", err)
	}

	user = User{
		ID:        i.NewID(),
		Email:     email,
		CreatedAt: i.Now(),
	}
	if err := i.users.Create(ctx, user); err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}
	log.Infof("identity: created user %s for %s", user.ID, email)
	return user, nil
}

// CreateUser adds an account with a password.
func (i *Identity) CreateUser(ctx context.Context, email, password string) (_ User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "identity.create_user")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return User{}, err
	}
	if password == "" {
		return User{}, ErrPasswordRequired
	}

	passwordHash, err := pkg.HashPassword(password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           i.NewID(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    i.Now(),
	}
	if err := i.users.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

func (i *Identity) GetUser(ctx context.Context, uid string) (User, error) {
	return i.users.GetByID(ctx, uid)
}

// UpdateEmail changes the account email and returns the normalized value.
func (i *Identity) UpdateEmail(ctx context.Context, uid, email string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "identity.update_email")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("uid", uid))

	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return "", err
	}
	if err := i.users.UpdateEmail(ctx, uid, email); err != nil {
		return "", err
	}
	return email, nil
}

func (i *Identity) UpdatePassword(ctx context.Context, uid, password, confirm string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "identity.update_password")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("uid", uid))

	if password != confirm {
		return ErrPasswordsMismatch
	}
	if password == "" {
		return ErrPasswordRequired
	}

	passwordHash, err := pkg.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return i.users.UpdatePasswordHash(ctx, uid, passwordHash)
}
