// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/models"
)

// postRepository is the database/sql implementation of [PostRepository].
// Reads join the author so every returned post carries its User.
type postRepository struct {
	*DB
	logger *logger.Logger
}

// NewPostRepository constructs a [PostRepository] backed by the provided
// database connection and logger.
func NewPostRepository(db *DB, logger *logger.Logger) PostRepository {
	logger.Debug().Msg("creating post repository")
	return &postRepository{
		DB:     db,
		logger: logger,
	}
}

// CreatePost inserts post with version 1 and the current time as its
// creation timestamp unless one is already set.
func (p *postRepository) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	log := logger.FromContext(ctx)

	if post.DatePosted.IsZero() {
		post.DatePosted = time.Now().UTC()
	}
	post.Version = 1

	query, args, err := p.builder.
		Insert(postsTable).
		Columns("title", "content", "date_posted", "version", "user_id").
		Values(post.Title, post.Content, post.DatePosted, post.Version, post.UserID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.Post{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := p.QueryRowContext(ctx, query, args...).Scan(&post.PostID); err != nil {
		log.Err(err).
			Str("func", "postRepository.CreatePost").
			Int64("user_id", post.UserID).
			Msg("failed to insert post")

		if domainErr := constraintError(err); domainErr != nil {
			return models.Post{}, domainErr
		}
		return models.Post{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	log.Info().
		Str("func", "postRepository.CreatePost").
		Int64("post_id", post.PostID).
		Int64("user_id", post.UserID).
		Msg("post created")

	return post, nil
}

// GetPost returns the post with postID and its author, or [ErrPostNotFound].
func (p *postRepository) GetPost(ctx context.Context, postID int64) (models.Post, error) {
	log := logger.FromContext(ctx)

	query, args, err := p.builder.
		Select(postColumns...).
		From(postsFromJoin).
		Where(sq.Eq{"p.id": postID}).
		ToSql()
	if err != nil {
		return models.Post{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var post models.Post
	err = p.withRetry(ctx, func() error {
		return scanPost(p.QueryRowContext(ctx, query, args...), &post)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Post{}, ErrPostNotFound
		}

		log.Err(err).
			Str("func", "postRepository.GetPost").
			Int64("post_id", postID).
			Msg("failed to query post")
		return models.Post{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return post, nil
}

// ListPosts returns one page of posts, newest first, together with the
// number of posts matching the filter. An offset past the last post yields
// an empty page.
func (p *postRepository) ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, int64, error) {
	log := logger.FromContext(ctx)

	countQuery := p.builder.Select("COUNT(*)").From(postsFromJoin)
	listQuery := p.builder.Select(postColumns...).From(postsFromJoin).OrderBy(postsOrder)
	if filter.AuthorID != nil {
		countQuery = countQuery.Where(sq.Eq{"p.user_id": *filter.AuthorID})
		listQuery = listQuery.Where(sq.Eq{"p.user_id": *filter.AuthorID})
	}
	if filter.Limit > 0 {
		listQuery = listQuery.Limit(filter.Limit).Offset(filter.Offset)
	}

	var total int64
	err := p.withRetry(ctx, func() error {
		query, args, err := countQuery.ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		return p.QueryRowContext(ctx, query, args...).Scan(&total)
	})
	if err != nil {
		log.Err(err).Str("func", "postRepository.ListPosts").Msg("failed to count posts")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if total == 0 || (filter.Limit > 0 && filter.Offset >= uint64(total)) {
		return []models.Post{}, total, nil
	}

	query, args, err := listQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var rows *sql.Rows
	err = p.withRetry(ctx, func() error {
		var queryErr error
		rows, queryErr = p.QueryContext(ctx, query, args...)
		return queryErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "postRepository.ListPosts").
			Uint64("offset", filter.Offset).
			Msg("failed to execute query for listing posts")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0, filter.Limit)
	for rows.Next() {
		var post models.Post
		if scanErr := scanPost(rows, &post); scanErr != nil {
			log.Err(scanErr).
				Str("func", "postRepository.ListPosts").
				Msg("failed to scan post row")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		posts = append(posts, post)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "postRepository.ListPosts").
			Msg("error occurred during rows iteration")
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return posts, total, nil
}

// UpdatePost changes title and/or content of a post owned by
// update.AuthorID in one conditional statement and bumps its version.
//
// When update.Version is non-zero the row is only touched if it still has
// that version. A statement that matches nothing is diagnosed with a
// follow-up lookup:
//   - no post with that id and author → [ErrPostNotFound]
//   - post exists with another version → [ErrVersionConflict]
func (p *postRepository) UpdatePost(ctx context.Context, update models.PostUpdate) (models.Post, error) {
	log := logger.FromContext(ctx)

	builder := p.builder.
		Update(postsTable).
		Set("version", sq.Expr("version + 1")).
		Where(sq.Eq{"id": update.PostID, "user_id": update.AuthorID})
	if update.Title != nil {
		builder = builder.Set("title", *update.Title)
	}
	if update.Content != nil {
		builder = builder.Set("content", *update.Content)
	}
	if update.Version != 0 {
		builder = builder.Where(sq.Eq{"version": update.Version})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return models.Post{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := p.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "postRepository.UpdatePost").
			Int64("post_id", update.PostID).
			Msg("failed to execute post update")
		return models.Post{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.Post{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected == 0 {
		return models.Post{}, p.diagnoseMissedUpdate(ctx, update)
	}

	log.Info().
		Str("func", "postRepository.UpdatePost").
		Int64("post_id", update.PostID).
		Msg("post updated")

	return p.GetPost(ctx, update.PostID)
}

func (p *postRepository) diagnoseMissedUpdate(ctx context.Context, update models.PostUpdate) error {
	log := logger.FromContext(ctx)

	query, args, err := p.builder.
		Select("version").
		From(postsTable).
		Where(sq.Eq{"id": update.PostID, "user_id": update.AuthorID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var currentVersion int64
	err = p.QueryRowContext(ctx, query, args...).Scan(&currentVersion)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		log.Warn().
			Str("func", "postRepository.UpdatePost").
			Int64("post_id", update.PostID).
			Msg("record not found")
		return ErrPostNotFound
	case err != nil:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	log.Warn().
		Str("func", "postRepository.UpdatePost").
		Int64("post_id", update.PostID).
		Int64("db_version", currentVersion).
		Int64("provided_version", update.Version).
		Msg("optimistic lock failed: version mismatch on update")

	return ErrVersionConflict
}

// DeletePost removes the post if it is owned by authorID.
func (p *postRepository) DeletePost(ctx context.Context, postID, authorID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := p.builder.
		Delete(postsTable).
		Where(sq.Eq{"id": postID, "user_id": authorID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := p.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "postRepository.DeletePost").
			Int64("post_id", postID).
			Msg("failed to delete post")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrPostNotFound
	}

	log.Info().
		Str("func", "postRepository.DeletePost").
		Int64("post_id", postID).
		Msg("post deleted")

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner, post *models.Post) error {
	return row.Scan(
		&post.PostID,
		&post.Title,
		&post.Content,
		&post.DatePosted,
		&post.Version,
		&post.UserID,
		&post.Author.UserID,
		&post.Author.Username,
		&post.Author.Email,
		&post.Author.ImageFile,
		&post.Author.CreatedAt,
	)
}
