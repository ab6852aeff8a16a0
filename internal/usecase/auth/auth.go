package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
}

// EmailChecker decides whether an address is deliverable enough to accept.
type EmailChecker func(email string) bool

var (
	ErrMissingCredentials = httperr.ErrValidation("missing_credentials", "Email and password are required")
	ErrInvalidCredentials = httperr.ErrUnauthorized("invalid_credentials", "Invalid credentials")
	ErrAccountInactive    = httperr.ErrInactive("account_inactive", "Account is inactive")
	ErrInvalidEmail       = httperr.ErrValidation("invalid_email", "Email address is not valid")
	ErrInvalidEmailDomain = httperr.ErrValidation("invalid_email_domain", "Email domain does not appear to be valid")
)

// Session is what login and registration hand back to the client.
type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// ======================================================
// Register
// ======================================================

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
}

type Register struct {
	users        user.Repository
	hasher       auth.PasswordHasher
	tokens       TokenIssuer
	domainExists EmailChecker
}

// NewRegister builds the sign-up use case. domainExists may be nil to skip
// the DNS check.
func NewRegister(
	users user.Repository,
	hasher auth.PasswordHasher,
	tokens TokenIssuer,
	domainExists EmailChecker,
) *Register {
	return &Register{
		users:        users,
		hasher:       hasher,
		tokens:       tokens,
		domainExists: domainExists,
	}
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*Session, error) {
	email := user.NormalizeEmail(in.Email)

	switch {
	case strings.TrimSpace(in.FirstName) == "":
		return nil, httperr.ErrValidation("missing_field", "firstName is required")
	case strings.TrimSpace(in.LastName) == "":
		return nil, httperr.ErrValidation("missing_field", "lastName is required")
	case email == "":
		return nil, httperr.ErrValidation("missing_field", "email is required")
	case !validators.IsEmailSyntaxValid(email):
		return nil, ErrInvalidEmail
	case len(in.Password) < user.MinPasswordLength:
		return nil, user.ErrWeakPassword
	}

	if uc.domainExists != nil && !uc.domainExists(email) {
		return nil, ErrInvalidEmailDomain
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         string(user.RoleCustomer),
		Status:       string(user.StatusActive),
	}

	// the unique index is the authority on duplicates
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, err
	}

	token, err := uc.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, User: u}, nil
}

// ======================================================
// Login
// ======================================================

type Login struct {
	users  user.Repository
	hasher auth.PasswordHasher
	tokens TokenIssuer
}

func NewLogin(users user.Repository, hasher auth.PasswordHasher, tokens TokenIssuer) *Login {
	return &Login{users: users, hasher: hasher, tokens: tokens}
}

func (uc *Login) Execute(ctx context.Context, email, password string) (*Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	u, err := uc.users.FindByEmail(ctx, email)
	if httperr.KindOf(err) == httperr.KindNotFound {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if u.Status != string(user.StatusActive) {
		return nil, ErrAccountInactive
	}

	if !uc.hasher.Check(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, User: u}, nil
}

// ======================================================
// Profile
// ======================================================

type Me struct {
	users user.Repository
}

func NewMe(users user.Repository) *Me {
	return &Me{users: users}
}

func (uc *Me) Execute(ctx context.Context, p auth.Principal) (*models.User, error) {
	return uc.users.FindByID(ctx, p.UserID)
}
