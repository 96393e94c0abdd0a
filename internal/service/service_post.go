// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/models"
)

// CanModify reports whether principal may update or delete post: only the
// author of a post may change it.
func CanModify(principal *models.Principal, post models.Post) bool {
	return principal.IsAuthenticated() && principal.ID() == post.UserID
}

type postService struct {
	postRepository store.PostRepository
	perPage        int

	logger *logger.Logger
}

func NewPostService(postRepository store.PostRepository, cfg config.App, logger *logger.Logger) PostService {
	return &postService{
		postRepository: postRepository,
		perPage:        cfg.PostsPerPage,
		logger:         logger,
	}
}

// Create stores a new post authored by principal.
func (p *postService) Create(ctx context.Context, principal *models.Principal, title, content string) (models.Post, error) {
	if !principal.IsAuthenticated() {
		return models.Post{}, ErrNotLoggedIn
	}

	post, err := p.postRepository.CreatePost(ctx, models.Post{
		Title:   title,
		Content: content,
		UserID:  principal.ID(),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", principal.ID()).Msg("post creation ended with error")
		return models.Post{}, fmt.Errorf("post creation ended with error: %w", err)
	}

	post.Author = principal.User
	return post, nil
}

// Get returns a post or ErrPostNotFound.
func (p *postService) Get(ctx context.Context, postID int64) (models.Post, error) {
	post, err := p.postRepository.GetPost(ctx, postID)
	if err != nil {
		return models.Post{}, p.postError(ctx, err, postID)
	}
	return post, nil
}

// ListRecent returns page number page of all posts, newest first.
// A page past the end is empty.
func (p *postService) ListRecent(ctx context.Context, page int) (models.PostsPage, error) {
	return p.list(ctx, nil, page)
}

// ListByAuthor returns page number page of the posts of author.
func (p *postService) ListByAuthor(ctx context.Context, author models.User, page int) (models.PostsPage, error) {
	return p.list(ctx, &author.UserID, page)
}

// Update edits a post on behalf of principal.
//
// The post must exist (ErrPostNotFound) and belong to principal
// (ErrForbidden). A non-zero update.Version that no longer matches the
// stored one yields ErrEditConflict.
func (p *postService) Update(ctx context.Context, principal *models.Principal, update models.PostUpdate) (models.Post, error) {
	log := logger.FromContext(ctx)

	post, err := p.Get(ctx, update.PostID)
	if err != nil {
		return models.Post{}, err
	}
	if !CanModify(principal, post) {
		log.Warn().Int64("post_id", post.PostID).Int64("user_id", principal.ID()).Msg("update of someone else's post refused")
		return models.Post{}, ErrForbidden
	}

	update.AuthorID = principal.ID()
	updated, err := p.postRepository.UpdatePost(ctx, update)
	if err != nil {
		return models.Post{}, p.postError(ctx, err, update.PostID)
	}

	return updated, nil
}

// Delete removes a post on behalf of principal with the same checks as
// Update.
func (p *postService) Delete(ctx context.Context, principal *models.Principal, postID int64) error {
	log := logger.FromContext(ctx)

	post, err := p.Get(ctx, postID)
	if err != nil {
		return err
	}
	if !CanModify(principal, post) {
		log.Warn().Int64("post_id", postID).Int64("user_id", principal.ID()).Msg("deletion of someone else's post refused")
		return ErrForbidden
	}

	if err := p.postRepository.DeletePost(ctx, postID, principal.ID()); err != nil {
		return p.postError(ctx, err, postID)
	}

	log.Info().Int64("post_id", postID).Msg("post deleted")
	return nil
}

func (p *postService) list(ctx context.Context, authorID *int64, page int) (models.PostsPage, error) {
	if page < 1 {
		page = 1
	}

	posts, total, err := p.postRepository.ListPosts(ctx, models.PostFilter{
		AuthorID: authorID,
		Limit:    uint64(p.perPage),
		Offset:   models.Offset(page, p.perPage),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Int("page", page).Msg("listing posts failed")
		return models.PostsPage{}, fmt.Errorf("listing posts failed: %w", err)
	}

	return models.PostsPage{
		Items:   posts,
		Page:    page,
		PerPage: p.perPage,
		Total:   total,
	}, nil
}

func (p *postService) postError(ctx context.Context, err error, postID int64) error {
	switch {
	case errors.Is(err, store.ErrPostNotFound):
		return fmt.Errorf("%w: %w", ErrPostNotFound, err)
	case errors.Is(err, store.ErrVersionConflict):
		return fmt.Errorf("%w: %w", ErrEditConflict, err)
	default:
		logger.FromContext(ctx).Err(err).Int64("post_id", postID).Msg("post storage failed")
		return fmt.Errorf("post storage failed: %w", err)
	}
}
