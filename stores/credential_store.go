package stores

import (
	"errors"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bloggapi/blogg/models"
	"github.com/bloggapi/blogg/utils"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user already exists")
	ErrRoleNotFound  = errors.New("role not found")
	ErrDuplicateRole = errors.New("role already exists")
	ErrAlreadyInRole = errors.New("user already in role")
	ErrWeakPassword  = errors.New("password does not meet policy")
)

// CredentialStore persists users, roles, role claims and membership.
// Passwords are only ever seen here as bcrypt hashes.
type CredentialStore struct {
	db *gorm.DB
}

func NewCredentialStore(db *gorm.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// FindByUsername returns the user or ErrUserNotFound.
func (s *CredentialStore) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CheckPassword compares the candidate against the stored hash.
func (s *CredentialStore) CheckPassword(user *models.User, password string) bool {
	return utils.CheckPassword(user.PasswordHash, password)
}

// CreateUser registers an account with a fresh security stamp. It fails
// with ErrDuplicateUser when the username is taken and ErrWeakPassword
// when the password violates policy.
func (s *CredentialStore) CreateUser(username, email, password string) (*models.User, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateUser
	}

	if !passwordMeetsPolicy(password) {
		return nil, ErrWeakPassword
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:      username,
		Email:         email,
		PasswordHash:  hash,
		SecurityStamp: uuid.NewString(),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// RolesOf returns the names of every role the user holds.
func (s *CredentialStore) RolesOf(user *models.User) ([]string, error) {
	var roles []models.Role
	if err := s.db.Model(user).Association("Roles").Find(&roles); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.Name)
	}
	return names, nil
}

// IsInRole reports role membership. Role names compare case-insensitively.
func (s *CredentialStore) IsInRole(user *models.User, roleName string) (bool, error) {
	names, err := s.RolesOf(user)
	if err != nil {
		return false, err
	}
	for _, name := range names {
		if strings.EqualFold(name, roleName) {
			return true, nil
		}
	}
	return false, nil
}

// CreateRole creates a role or fails with ErrDuplicateRole.
func (s *CredentialStore) CreateRole(name string) (*models.Role, error) {
	var count int64
	if err := s.db.Model(&models.Role{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateRole
	}

	role := models.Role{Name: name}
	if err := s.db.Create(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// FindRoleByName returns the role or ErrRoleNotFound.
func (s *CredentialStore) FindRoleByName(name string) (*models.Role, error) {
	var role models.Role
	if err := s.db.Where("name = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

// RoleExists reports whether a role with the name exists.
func (s *CredentialStore) RoleExists(name string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Role{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddClaimToRole appends a named permission claim to the role.
func (s *CredentialStore) AddClaimToRole(role *models.Role, claimValue string) error {
	claim := models.RoleClaim{
		RoleID:     role.ID,
		ClaimType:  models.ClaimTypePermission,
		ClaimValue: claimValue,
	}
	return s.db.Create(&claim).Error
}

// AssignRoleToUser adds the user to the role. It fails with
// ErrAlreadyInRole when the membership already exists.
func (s *CredentialStore) AssignRoleToUser(user *models.User, role *models.Role) error {
	in, err := s.IsInRole(user, role.Name)
	if err != nil {
		return err
	}
	if in {
		return ErrAlreadyInRole
	}
	return s.db.Model(user).Association("Roles").Append(role)
}

// passwordMeetsPolicy requires at least six characters mixing letters and
// digits.
func passwordMeetsPolicy(password string) bool {
	if len(password) < 6 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
