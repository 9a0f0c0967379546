package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Esaius2058/drive-x/logger"
	"github.com/Esaius2058/drive-x/models"
	"github.com/Esaius2058/drive-x/repositories"
	"github.com/Esaius2058/drive-x/storage"
	"github.com/Esaius2058/drive-x/utils"

	"gorm.io/gorm"
)

type SignUpInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type SessionOutput struct {
	User  AuthUser `json:"user"`
	Token string   `json:"session"`
}

type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (SessionOutput, error)
	Login(ctx context.Context, in LoginInput) (SessionOutput, error)
	Logout(ctx context.Context, token string, expiresAt time.Time) error
	ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error
	UpdateRole(ctx context.Context, userID uint, role string) error
	DeleteAccount(ctx context.Context, userID uint) error
}

type authService struct {
	txManager TxManager
	users     repositories.UserRepository
	folders   repositories.FolderRepository
	files     repositories.FileRepository
	revoked   repositories.RevokedTokenRepository
	objects   storage.ObjectStore
	resolver  folderResolver
}

func NewAuthService(
	txManager TxManager,
	users repositories.UserRepository,
	folders repositories.FolderRepository,
	files repositories.FileRepository,
	revoked repositories.RevokedTokenRepository,
	objects storage.ObjectStore,
) AuthService {
	return &authService{
		txManager: txManager,
		users:     users,
		folders:   folders,
		files:     files,
		revoked:   revoked,
		objects:   objects,
		resolver:  folderResolver{folders: folders},
	}
}

// SignUp creates the account and its root folder in one transaction:
// a user without a root folder must never exist.
func (s *authService) SignUp(ctx context.Context, in SignUpInput) (SessionOutput, error) {
	if err := utils.ValidatePersonName("first name", in.FirstName); err != nil {
		return SessionOutput{}, newAppError(http.StatusBadRequest, err.Error(), nil)
	}
	if err := utils.ValidatePersonName("last name", in.LastName); err != nil {
		return SessionOutput{}, newAppError(http.StatusBadRequest, err.Error(), nil)
	}
	if err := utils.ValidateEmail(in.Email); err != nil {
		return SessionOutput{}, newAppError(http.StatusBadRequest, err.Error(), nil)
	}
	if err := utils.PasswordStrengthError(in.Password); err != nil {
		return SessionOutput{}, newAppError(http.StatusBadRequest, err.Error(), nil)
	}

	count, err := s.users.CountByEmail(ctx, in.Email)
	if err != nil {
		return SessionOutput{}, newAppError(http.StatusInternalServerError, "failed to check email", err)
	}
	if count > 0 {
		return SessionOutput{}, newAppError(http.StatusBadRequest, "email already registered", nil)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return SessionOutput{}, newAppError(http.StatusInternalServerError, "failed to hash password", err)
	}

	user := models.User{
		Name:         in.FirstName + " " + in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         models.RoleClient,
	}

	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.users.Create(ctx, tx, &user); err != nil {
			return err
		}
		_, err := s.resolver.getOrCreateUserRootFolder(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		return SessionOutput{}, newAppError(http.StatusInternalServerError, "failed to create account", err)
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return SessionOutput{}, newAppError(http.StatusInternalServerError, "failed to generate token", err)
	}

	return SessionOutput{
		User:  AuthUser{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role},
		Token: token,
	}, nil
}

func (s *authService) Login(ctx context.Context, in LoginInput) (SessionOutput, error) {
	user, err := s.users.GetByEmail(ctx, nil, in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SessionOutput{}, newAppError(http.StatusUnauthorized, "invalid email or password", nil)
		}
		return SessionOutput{}, newAppError(http.StatusInternalServerError, "failed to query user", err)
	}

	if !utils.CheckPassword(in.Password, user.PasswordHash) {
		return SessionOutput{}, newAppError(http.StatusUnauthorized, "invalid email or password", nil)
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return SessionOutput{}, newAppError(http.StatusInternalServerError, "failed to generate token", err)
	}

	return SessionOutput{
		User:  AuthUser{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role},
		Token: token,
	}, nil
}

// Logout denylists the presented token until its natural expiry.
func (s *authService) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	if err := s.revoked.Revoke(ctx, token, time.Until(expiresAt)); err != nil {
		return newAppError(http.StatusInternalServerError, "failed to revoke session", err)
	}
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newAppError(http.StatusNotFound, "user not found", nil)
		}
		return newAppError(http.StatusInternalServerError, "failed to query user", err)
	}

	if !utils.CheckPassword(oldPassword, user.PasswordHash) {
		return newAppError(http.StatusForbidden, "old password is incorrect", nil)
	}
	if err := utils.PasswordStrengthError(newPassword); err != nil {
		return newAppError(http.StatusBadRequest, err.Error(), nil)
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return newAppError(http.StatusInternalServerError, "failed to hash password", err)
	}
	if err := s.users.UpdateByID(ctx, nil, userID, map[string]interface{}{"password_hash": hash}); err != nil {
		return newAppError(http.StatusInternalServerError, "failed to update password", err)
	}
	return nil
}

func (s *authService) UpdateRole(ctx context.Context, userID uint, role string) error {
	if role != models.RoleAdmin && role != models.RoleClient {
		return newAppError(http.StatusBadRequest, "invalid role", nil)
	}
	if err := s.users.UpdateByID(ctx, nil, userID, map[string]interface{}{"role": role}); err != nil {
		return newAppError(http.StatusInternalServerError, "failed to update role", err)
	}
	return nil
}

// DeleteAccount removes the user's file rows, folders and the user in
// one transaction, then clears the backing blobs. File logs stay: the
// audit trail is append-only. Blob removal is best effort; metadata is
// the source of truth and a leftover blob is unreachable garbage.
func (s *authService) DeleteAccount(ctx context.Context, userID uint) error {
	files, err := s.files.ListAllByUser(ctx, nil, userID)
	if err != nil {
		return newAppError(http.StatusInternalServerError, "failed to list files", err)
	}

	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.files.DeleteByUser(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.folders.DeleteByUser(ctx, tx, userID); err != nil {
			return err
		}
		return s.users.DeleteByID(ctx, tx, userID)
	})
	if err != nil {
		return newAppError(http.StatusInternalServerError, "failed to delete account", err)
	}

	for _, f := range files {
		if err := s.objects.Delete(ctx, f.StoragePath); err != nil {
			logger.Errorf("account %d deleted but blob %s remains: %v", userID, f.StoragePath, err)
		}
	}
	return nil
}
