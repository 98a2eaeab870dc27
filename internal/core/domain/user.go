package domain

import (
	"net/mail"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/savithru/pms-backend/internal/core/errors"
)

// Validation constants
const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MaxUsernameLength = 150
	MaxEmailLength    = 255
)

// UserRole distinguishes management staff from employees. Team heads are
// employees that head a particular project.
type UserRole string

const (
	RoleManagement UserRole = "MANAGEMENT"
	RoleEmployee   UserRole = "EMPLOYEE"
)

// User is a registered account.
type User struct {
	ID              int64
	Username        string
	Email           string
	Role            UserRole
	ProfilePhotoURL *string
	HashedPassword  string
	CreatedAt       time.Time
	IsActive        bool
}

// IsManagement reports whether the user belongs to the management role.
func (u *User) IsManagement() bool {
	return u.Role == RoleManagement
}

// UserRegistrationParams holds parameters for user registration.
type UserRegistrationParams struct {
	Username string
	Email    string
	Password string
	Role     UserRole
}

// Validate validates user registration parameters.
func (p *UserRegistrationParams) Validate() error {
	errs := apperrors.NewValidationErrors()

	if p.Username == "" {
		errs.Add("username", "Username is required")
	} else if len(p.Username) > MaxUsernameLength {
		errs.Add("username", "Username must be 150 characters or less")
	}

	if p.Email == "" {
		errs.Add("email", "Email is required")
	} else if len(p.Email) > MaxEmailLength {
		errs.Add("email", "Email must be 255 characters or less")
	} else if !isValidEmail(p.Email) {
		errs.Add("email", "Invalid email format")
	}

	if p.Role != RoleManagement && p.Role != RoleEmployee {
		errs.Add("role", "Role must be MANAGEMENT or EMPLOYEE")
	}

	for _, msg := range ValidatePassword(p.Password) {
		errs.Add("password", msg)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// ValidatePassword checks if a password meets security requirements.
// Returns a slice of error messages (empty if valid).
func ValidatePassword(password string) []string {
	var msgs []string

	if len(password) < MinPasswordLength {
		msgs = append(msgs, "Password must be at least 8 characters long")
	}
	if len(password) > MaxPasswordLength {
		msgs = append(msgs, "Password must be 128 characters or less")
	}

	var hasUpper, hasLower, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	if !hasUpper {
		msgs = append(msgs, "Password must contain at least one uppercase letter")
	}
	if !hasLower {
		msgs = append(msgs, "Password must contain at least one lowercase letter")
	}
	if !hasNumber {
		msgs = append(msgs, "Password must contain at least one number")
	}

	return msgs
}

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// CheckPassword verifies if the provided password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
	return err == nil
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	if len(ValidatePassword(password)) > 0 {
		return "", apperrors.ErrPasswordTooWeak
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// NewUser creates a new user with validated parameters.
func NewUser(params UserRegistrationParams) (*User, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	hashedPassword, err := HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	return &User{
		Username:       params.Username,
		Email:          params.Email,
		Role:           params.Role,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
		IsActive:       true,
	}, nil
}
