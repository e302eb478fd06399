package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"social-api/internal/domain"
	"social-api/internal/repository"
)

var (
	ErrPostNotFound        = errors.New("post not found")
	ErrNoPosts             = errors.New("no posts")
	ErrMissingPostID       = errors.New("post id is required")
	ErrPostInvalidInput    = errors.New("title and content are required")
	ErrCommentInvalidInput = errors.New("comment is required")
)

// PostService maneja publicaciones, likes y comentarios.
type PostService struct {
	logger *zap.Logger
	posts  repository.PostRepository
}

func NewPostService(logger *zap.Logger, posts repository.PostRepository) *PostService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostService{logger: logger, posts: posts}
}

func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if len(posts) == 0 {
		return nil, ErrNoPosts
	}
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, postID string) (domain.Post, error) {
	id, err := parsePostID(postID)
	if err != nil {
		return domain.Post{}, err
	}
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return domain.Post{}, s.mapNotFound(err, "get post")
	}
	return post, nil
}

func (s *PostService) Create(ctx context.Context, userID, title, content string) (domain.Post, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return domain.Post{}, ErrPostInvalidInput
	}
	uid, err := parseUserID(userID)
	if err != nil {
		return domain.Post{}, err
	}

	now := time.Now().UTC()
	post := domain.Post{
		ID:        uuid.NewString(),
		UserID:    uid,
		Title:     title,
		Content:   content,
		Comments:  []domain.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		if errors.Is(err, repository.ErrReferenceNotFound) {
			return domain.Post{}, ErrUserNotFound
		}
		return domain.Post{}, fmt.Errorf("create post: %w", err)
	}
	s.logger.Debug("post created", zap.String("post_id", post.ID), zap.String("user_id", uid))
	return post, nil
}

// Update deja intactos los campos vacíos.
func (s *PostService) Update(ctx context.Context, postID, title, content string) error {
	id, err := parsePostID(postID)
	if err != nil {
		return err
	}
	if err := s.posts.Update(ctx, id, strings.TrimSpace(title), strings.TrimSpace(content)); err != nil {
		return s.mapNotFound(err, "update post")
	}
	return nil
}

func (s *PostService) Like(ctx context.Context, postID string) (int, error) {
	id, err := parsePostID(postID)
	if err != nil {
		return 0, err
	}
	likes, err := s.posts.Like(ctx, id)
	if err != nil {
		return 0, s.mapNotFound(err, "like post")
	}
	return likes, nil
}

// AddComment agrega un comentario y devuelve la publicación actualizada.
func (s *PostService) AddComment(ctx context.Context, postID, comment string) (domain.Post, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return domain.Post{}, ErrCommentInvalidInput
	}
	id, err := parsePostID(postID)
	if err != nil {
		return domain.Post{}, err
	}

	err = s.posts.AddComment(ctx, domain.Comment{
		ID:        uuid.NewString(),
		PostID:    id,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrReferenceNotFound) {
			return domain.Post{}, ErrPostNotFound
		}
		return domain.Post{}, fmt.Errorf("add comment: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *PostService) Delete(ctx context.Context, postID string) error {
	id, err := parsePostID(postID)
	if err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return s.mapNotFound(err, "delete post")
	}
	s.logger.Debug("post deleted", zap.String("post_id", id))
	return nil
}

func (s *PostService) mapNotFound(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrPostNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func parsePostID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrMissingPostID
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", ErrPostNotFound
	}
	return id.String(), nil
}
