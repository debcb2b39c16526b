package views

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/yatube-go/yatube/internal/repository"
	"github.com/yatube-go/yatube/pkg/paginator"
	"github.com/yatube-go/yatube/pkg/validator"
)

// Nav is the per-request state of the navigation bar. An empty Username
// renders the anonymous links.
type Nav struct {
	Username string
	Path     string
}

// PostList is one page of posts. BasePath is the listing URL the page
// links are built from.
type PostList struct {
	Posts     []repository.PostRow
	Page      paginator.Page
	BasePath  string
	HideGroup bool
}

type IndexPage struct {
	Nav
	List PostList
}

type GroupPage struct {
	Nav
	Group repository.Group
	List  PostList
}

type ProfilePage struct {
	Nav
	Author repository.User
	List   PostList
}

type PostPage struct {
	Nav
	Post        repository.PostRow
	AuthorPosts int64
	CanEdit     bool
}

// PostFormPage backs both create and edit. Group holds the submitted
// option value so a failed submit keeps the selection.
type PostFormPage struct {
	Nav
	Text   string
	Group  string
	Groups []repository.Group
	Errors validator.ValidationErrors
	IsEdit bool
	PostID int64
}

type SignupPage struct {
	Nav
	Username  string
	Email     string
	FirstName string
	LastName  string
	Errors    validator.ValidationErrors
}

type LoginPage struct {
	Nav
	Username string
	Next     string
	Errors   validator.ValidationErrors
}

type ErrorPage struct {
	Nav
	Code    int
	Title   string
	Message string
}

func Index(p IndexPage) templ.Component       { return page("posts/index.html", p) }
func Group(p GroupPage) templ.Component       { return page("posts/group_list.html", p) }
func Profile(p ProfilePage) templ.Component   { return page("posts/profile.html", p) }
func PostDetail(p PostPage) templ.Component   { return page("posts/post_detail.html", p) }
func PostForm(p PostFormPage) templ.Component { return page("posts/create_post.html", p) }
func Signup(p SignupPage) templ.Component     { return page("accounts/signup.html", p) }
func Login(p LoginPage) templ.Component       { return page("accounts/login.html", p) }
func LoggedOut(n Nav) templ.Component         { return page("accounts/logged_out.html", struct{ Nav }{n}) }

// Error renders the error page; a blank title falls back to the status text.
func Error(p ErrorPage) templ.Component {
	if p.Title == "" {
		p.Title = http.StatusText(p.Code)
	}
	return page("errors/error.html", p)
}

// Posts renders only the post list, the target of htmx pagination.
func Posts(l PostList) templ.Component { return partial("post_list", l) }
