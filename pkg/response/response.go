package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
)

// Wire representations. Every resource carries a uri so clients can navigate
// without building paths themselves.

type User struct {
	Email string `json:"email"`
	URI   string `json:"uri"`
}

type Post struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	User  User   `json:"user"`
	URI   string `json:"uri"`
}

type Comment struct {
	Body string `json:"body"`
	User User   `json:"user"`
	URI  string `json:"uri"`
}

func UserURI(username string) string { return "/users/" + username }
func PostURI(id int64) string        { return "/posts/" + strconv.FormatInt(id, 10) }
func CommentURI(id int64) string     { return "/comments/" + strconv.FormatInt(id, 10) }

func NewUser(u *entity.User) User {
	return User{Email: u.Email, URI: UserURI(u.Username)}
}

func NewUsers(us []*entity.User) []User {
	out := make([]User, 0, len(us))
	for _, u := range us {
		out = append(out, NewUser(u))
	}
	return out
}

func NewPost(p *entity.Post) Post {
	return Post{
		Title: p.Title,
		Body:  p.Body,
		User:  User{Email: p.AuthorEmail, URI: UserURI(p.Author)},
		URI:   PostURI(p.ID),
	}
}

func NewPosts(ps []*entity.Post) []Post {
	out := make([]Post, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewPost(p))
	}
	return out
}

func NewComment(c *entity.Comment) Comment {
	return Comment{
		Body: c.Body,
		User: User{Email: c.AuthorEmail, URI: UserURI(c.Author)},
		URI:  CommentURI(c.ID),
	}
}

func NewComments(cs []*entity.Comment) []Comment {
	out := make([]Comment, 0, len(cs))
	for _, c := range cs {
		out = append(out, NewComment(c))
	}
	return out
}

// Error bodies are always a JSON object with an error message; the global
// 404 and 403 messages are part of the published contract.

func NotFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Entity doesn't exist"})
}

func Forbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access Forbidden"})
}

func BadRequest(c *gin.Context, msg string, details map[string]string) {
	body := gin.H{"error": msg}
	if len(details) > 0 {
		body["details"] = details
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, body)
}

func Conflict(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": msg})
}

func TooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
}
