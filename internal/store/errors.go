package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when a user insert or update
	// collides with the unique username constraint.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrEmailAlreadyExists is returned when a user insert or update
	// collides with the unique email constraint.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrAlreadyExists is returned for a unique violation on a constraint
	// that could not be attributed to a column.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrNoUserWasFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrPostNotFound is returned when the targeted post does not exist, or
	// does not belong to the author named in a mutation.
	ErrPostNotFound = errors.New("post was not found")

	// ErrVersionConflict is returned when an optimistic-locking check fails:
	// the post was edited by someone else after the form was rendered.
	ErrVersionConflict = errors.New("post version conflict occurred")

	// ErrPictureNotSaved is returned when a picture storage backend fails
	// to persist an upload.
	ErrPictureNotSaved = errors.New("picture was not saved")

	// ErrPictureNotDeleted is returned when a stored picture could not be
	// removed.
	ErrPictureNotDeleted = errors.New("picture was not deleted")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
