package http

import (
	"context"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"

	"social-api/internal/domain"
	"social-api/internal/repository"
)

type mockUserRepo struct {
	mu           sync.Mutex
	usersByID    map[string]domain.User
	usersByEmail map[string]string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:    make(map[string]domain.User),
		usersByEmail: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.usersByEmail[user.Email]; exists {
		return repository.ErrDuplicate
	}
	m.usersByID[user.ID] = user
	m.usersByEmail[user.Email] = user.ID
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	m.mu.Lock()
	id, ok := m.usersByEmail[email]
	m.mu.Unlock()
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.GetByID(ctx, id)
}

func (m *mockUserRepo) AdjustFollow(_ context.Context, id string, delta int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.usersByID[id]
	if !ok {
		return 0, pgx.ErrNoRows
	}
	user.Follow += delta
	m.usersByID[id] = user
	return user.Follow, nil
}

type mockPostRepo struct {
	mu    sync.Mutex
	users *mockUserRepo
	posts map[string]domain.Post
}

func newMockPostRepo(users *mockUserRepo) *mockPostRepo {
	return &mockPostRepo{users: users, posts: make(map[string]domain.Post)}
}

func (m *mockPostRepo) Create(ctx context.Context, post domain.Post) error {
	if _, err := m.users.GetByID(ctx, post.UserID); err != nil {
		return repository.ErrReferenceNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts[post.ID] = post
	return nil
}

func (m *mockPostRepo) List(_ context.Context) ([]domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Post, 0, len(m.posts))
	for _, p := range m.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockPostRepo) GetByID(_ context.Context, id string) (domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return domain.Post{}, pgx.ErrNoRows
	}
	return p, nil
}

func (m *mockPostRepo) Update(_ context.Context, id, title, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if title != "" {
		p.Title = title
	}
	if content != "" {
		p.Content = content
	}
	m.posts[id] = p
	return nil
}

func (m *mockPostRepo) Like(_ context.Context, id string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return 0, pgx.ErrNoRows
	}
	p.Likes++
	m.posts[id] = p
	return p.Likes, nil
}

func (m *mockPostRepo) AddComment(_ context.Context, comment domain.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[comment.PostID]
	if !ok {
		return repository.ErrReferenceNotFound
	}
	p.Comments = append(p.Comments, comment)
	m.posts[comment.PostID] = p
	return nil
}

func (m *mockPostRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.posts, id)
	return nil
}
