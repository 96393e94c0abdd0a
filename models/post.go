package models

import "time"

// Post is a blog entry strongly owned by exactly one User.
type Post struct {
	// PostID is the server-assigned primary key.
	PostID int64 `json:"id"`

	// Title is the headline of the post.
	Title string `json:"title"`

	// Content is the post body.
	Content string `json:"content"`

	// DatePosted is set once at creation and never changes.
	DatePosted time.Time `json:"date_posted"`

	// Version is incremented on every successful edit and is used for
	// optimistic locking of concurrent updates.
	Version int64 `json:"version"`

	// UserID references the owning author. Immutable after creation.
	UserID int64 `json:"user_id"`

	// Author is the joined owner record; PasswordHash is never loaded.
	Author User `json:"author"`
}

// PostUpdate describes a partial edit of a post.
// Title and Content are optional; Version is the version the editor saw.
type PostUpdate struct {
	PostID   int64
	AuthorID int64
	Version  int64
	Title    *string
	Content  *string
}

// PostFilter narrows and pages a post listing. Results are always ordered
// by DatePosted descending.
type PostFilter struct {
	// AuthorID restricts the listing to a single author when non-nil.
	AuthorID *int64
	Limit    uint64
	Offset   uint64
}

// TableName returns the name of the database table
// associated with the Post model.
func (p Post) TableName() string {
	return "posts"
}
