package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"blog-service/internal/events"
	"blog-service/internal/model"
	"blog-service/internal/repository"
	"blog-service/internal/storage"
)

// MaxThumbnailSize is the largest accepted thumbnail upload in bytes.
const MaxThumbnailSize = 2_000_000

const minDescriptionLength = 12

type CreatePostInput struct {
	Title       string
	Category    string
	Description string
	Thumbnail   *Attachment
}

type EditPostInput struct {
	Title       string
	Category    string
	Description string
	Thumbnail   *Attachment
}

type PostService interface {
	Create(ctx context.Context, callerID uuid.UUID, in CreatePostInput) (*model.Post, error)
	List(ctx context.Context) ([]model.Post, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Post, error)
	ListByCategory(ctx context.Context, category string) ([]model.Post, error)
	ListByCreator(ctx context.Context, creator uuid.UUID) ([]model.Post, error)
	Edit(ctx context.Context, callerID, postID uuid.UUID, in EditPostInput) (*model.Post, error)
	Delete(ctx context.Context, callerID, postID uuid.UUID) error
}

type postService struct {
	postRepo  repository.PostRepository
	userRepo  repository.UserRepository
	blobs     storage.BlobStore
	publisher events.EventPublisher
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, blobs storage.BlobStore, pub events.EventPublisher) PostService {
	return &postService{
		postRepo:  postRepo,
		userRepo:  userRepo,
		blobs:     blobs,
		publisher: pub,
	}
}

func (s *postService) Create(ctx context.Context, callerID uuid.UUID, in CreatePostInput) (*model.Post, error) {
	if in.Title == "" || in.Category == "" || in.Description == "" || in.Thumbnail == nil {
		return nil, ErrValidation
	}

	if len(in.Thumbnail.Data) > MaxThumbnailSize {
		return nil, ErrPayloadTooLarge
	}

	newName := storage.UniqueName(in.Thumbnail.Filename)

	if err := s.blobs.Save(ctx, newName, in.Thumbnail.Data); err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:       in.Title,
		Category:    in.Category,
		Description: in.Description,
		Thumbnail:   newName,
		Creator:     callerID,
	}

	created, err := s.postRepo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.AdjustPostCount(ctx, callerID, 1); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		go s.publisher.PublishPostCreated(created)
	}

	return created, nil
}

func (s *postService) List(ctx context.Context) ([]model.Post, error) {
	return s.postRepo.FindAll(ctx)
}

func (s *postService) Get(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return post, nil
}

func (s *postService) ListByCategory(ctx context.Context, category string) ([]model.Post, error) {
	return s.postRepo.FindByCategory(ctx, category)
}

func (s *postService) ListByCreator(ctx context.Context, creator uuid.UUID) ([]model.Post, error) {
	return s.postRepo.FindByCreator(ctx, creator)
}

func (s *postService) Edit(ctx context.Context, callerID, postID uuid.UUID, in EditPostInput) (*model.Post, error) {
	if in.Title == "" || in.Category == "" || len(in.Description) < minDescriptionLength {
		return nil, ErrValidation
	}

	post, err := s.authorize(ctx, postID, callerID)
	if err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Category = in.Category
	post.Description = in.Description

	if in.Thumbnail != nil {
		if len(in.Thumbnail.Data) > MaxThumbnailSize {
			return nil, ErrPayloadTooLarge
		}

		newName := storage.UniqueName(in.Thumbnail.Filename)

		if err := s.blobs.Delete(ctx, post.Thumbnail); err != nil {
			return nil, err
		}
		if err := s.blobs.Save(ctx, newName, in.Thumbnail.Data); err != nil {
			return nil, err
		}

		post.Thumbnail = newName
	}

	updated, err := s.postRepo.Update(ctx, post)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUpdateFailed
		}
		return nil, err
	}

	return updated, nil
}

func (s *postService) Delete(ctx context.Context, callerID, postID uuid.UUID) error {
	post, err := s.authorize(ctx, postID, callerID)
	if err != nil {
		return err
	}

	// A missing file counts as deleted; only a real I/O failure stops the
	// record from going away.
	if err := s.blobs.Delete(ctx, post.Thumbnail); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	if err := s.userRepo.AdjustPostCount(ctx, post.Creator, -1); err != nil {
		return err
	}

	if s.publisher != nil {
		go s.publisher.PublishPostDeleted(postID, post.Creator)
	}

	return nil
}

// authorize loads the post and checks ownership before any mutation runs.
func (s *postService) authorize(ctx context.Context, postID, callerID uuid.UUID) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if post.Creator != callerID {
		return nil, ErrForbidden
	}

	return post, nil
}
