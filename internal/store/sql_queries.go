package store

// table and column names shared by the squirrel builders
const (
	usersTable = "users"
	postsTable = "posts"
)

var userColumns = []string{"id", "username", "email", "image_file", "password", "created_at"}

var postColumns = []string{
	"p.id", "p.title", "p.content", "p.date_posted", "p.version", "p.user_id",
	"u.id", "u.username", "u.email", "u.image_file", "u.created_at",
}

const (
	postsFromJoin = "posts p JOIN users u ON u.id = p.user_id"

	// newest first; id breaks ties between posts created in the same instant
	postsOrder = "p.date_posted DESC, p.id DESC"
)
