package service_test

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"blog-service/internal/model"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) (uuid.UUID, error) {
	id := uuid.New()
	copied := *user
	copied.ID = id
	r.users[id] = &copied
	return id, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id uuid.UUID, name, email, passwordHash string) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	u.Name = name
	u.Email = email
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	return u, nil
}

func (r *fakeUserRepo) UpdateAvatar(_ context.Context, id uuid.UUID, avatar string) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	u.Avatar = &avatar
	u.UpdatedAt = time.Now()
	return u, nil
}

func (r *fakeUserRepo) AdjustPostCount(_ context.Context, id uuid.UUID, delta int) error {
	u, ok := r.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.Posts += delta
	return nil
}

type fakePostRepo struct {
	posts map[uuid.UUID]*model.Post
}

func newFakePostRepo(posts ...*model.Post) *fakePostRepo {
	r := &fakePostRepo{posts: make(map[uuid.UUID]*model.Post)}
	for _, p := range posts {
		r.posts[p.ID] = p
	}
	return r
}

func (r *fakePostRepo) Create(_ context.Context, post *model.Post) (*model.Post, error) {
	copied := *post
	copied.ID = uuid.New()
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	r.posts[copied.ID] = &copied
	return &copied, nil
}

func (r *fakePostRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *p
	return &copied, nil
}

func (r *fakePostRepo) FindAll(_ context.Context) ([]model.Post, error) {
	out := make([]model.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePostRepo) FindByCategory(_ context.Context, category string) ([]model.Post, error) {
	var out []model.Post
	for _, p := range r.posts {
		if p.Category == category {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePostRepo) FindByCreator(_ context.Context, creator uuid.UUID) ([]model.Post, error) {
	var out []model.Post
	for _, p := range r.posts {
		if p.Creator == creator {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePostRepo) Update(_ context.Context, post *model.Post) (*model.Post, error) {
	existing, ok := r.posts[post.ID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	existing.Title = post.Title
	existing.Category = post.Category
	existing.Description = post.Description
	existing.Thumbnail = post.Thumbnail
	existing.UpdatedAt = time.Now()
	copied := *existing
	return &copied, nil
}

func (r *fakePostRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.posts, id)
	return nil
}

type fakeBlobStore struct {
	files     map[string][]byte
	deleted   []string
	saveErr   error
	deleteErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{files: make(map[string][]byte)}
}

func (s *fakeBlobStore) Save(_ context.Context, name string, data []byte) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.files[name] = data
	return nil
}

func (s *fakeBlobStore) Delete(_ context.Context, name string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	// Missing names still count as deleted, like the real stores.
	delete(s.files, name)
	s.deleted = append(s.deleted, name)
	return nil
}
