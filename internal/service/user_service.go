package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"blog-service/internal/jwt"
	"blog-service/internal/model"
	"blog-service/internal/repository"
	"blog-service/internal/storage"
)

// MaxAvatarSize is the largest accepted avatar upload in bytes.
const MaxAvatarSize = 500_000

const minPasswordLength = 6

type LoginResult struct {
	Token string
	ID    uuid.UUID
	Name  string
}

type UserService interface {
	Register(ctx context.Context, name, email, password, password2 string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error)
	ChangeAvatar(ctx context.Context, callerID uuid.UUID, avatar *Attachment) (*model.User, error)
	EditProfile(ctx context.Context, callerID uuid.UUID, name, email, currentPassword, newPassword, newPassword2 string) (*model.User, error)
	ListAuthors(ctx context.Context) ([]model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	blobs    storage.BlobStore
}

func NewUserService(userRepo repository.UserRepository, blobs storage.BlobStore) UserService {
	return &userService{
		userRepo: userRepo,
		blobs:    blobs,
	}
}

func (s *userService) Register(ctx context.Context, name, email, password, password2 string) (*model.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrValidation
	}

	email = strings.ToLower(email)

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if len(strings.TrimSpace(password)) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	if password != password2 {
		return nil, ErrPasswordMismatch
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	newID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	user.ID = newID

	return user, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, ErrValidation
	}

	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, ID: user.ID, Name: user.Name}, nil
}

func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user, nil
}

func (s *userService) ChangeAvatar(ctx context.Context, callerID uuid.UUID, avatar *Attachment) (*model.User, error) {
	if avatar == nil || avatar.Filename == "" {
		return nil, ErrValidation
	}

	if len(avatar.Data) > MaxAvatarSize {
		return nil, ErrPayloadTooLarge
	}

	user, err := s.userRepo.FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	newName := storage.UniqueName(avatar.Filename)

	if user.Avatar != nil {
		if err := s.blobs.Delete(ctx, *user.Avatar); err != nil {
			// The reference is about to be overwritten either way; losing
			// the old file only leaks disk space, so keep going.
			slog.Warn("Failed to delete previous avatar", "user_id", callerID, "avatar", *user.Avatar, "error", err)
		}
	}

	if err := s.blobs.Save(ctx, newName, avatar.Data); err != nil {
		return nil, err
	}

	updated, err := s.userRepo.UpdateAvatar(ctx, callerID, newName)
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *userService) EditProfile(ctx context.Context, callerID uuid.UUID, name, email, currentPassword, newPassword, newPassword2 string) (*model.User, error) {
	if name == "" || email == "" || currentPassword == "" || newPassword == "" {
		return nil, ErrValidation
	}

	user, err := s.userRepo.FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	email = strings.ToLower(email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if existing != nil && existing.ID != callerID {
		return nil, ErrDuplicateEmail
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if newPassword != newPassword2 {
		return nil, ErrPasswordMismatch
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.userRepo.UpdateProfile(ctx, callerID, name, email, string(hashedPassword))
}

func (s *userService) ListAuthors(ctx context.Context) ([]model.User, error) {
	return s.userRepo.FindAll(ctx)
}
