package views_test

import (
	"bytes"
	"context"
	"io/fs"
	"net/http"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatube-go/yatube/internal/repository"
	"github.com/yatube-go/yatube/internal/views"
	"github.com/yatube-go/yatube/pkg/paginator"
	"github.com/yatube-go/yatube/pkg/validator"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

var (
	leo   = repository.User{ID: uuid.New(), Username: "leo", FirstName: "Leo", LastName: "Tolstoy"}
	books = repository.Group{ID: 3, Title: "Books", Slug: "books", Description: "About books"}
)

func samplePosts() []repository.PostRow {
	g := books
	return []repository.PostRow{
		{Post: repository.Post{ID: 2, Text: "Second **post**", CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), AuthorID: leo.ID, GroupID: &g.ID}, Author: leo, Group: &g},
		{Post: repository.Post{ID: 1, Text: "First post", CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), AuthorID: leo.ID}, Author: leo},
	}
}

func TestIndex(t *testing.T) {
	t.Parallel()

	out := renderString(t, views.Index(views.IndexPage{
		Nav:  views.Nav{Path: "/"},
		List: views.PostList{Posts: samplePosts(), Page: paginator.New("2", 25, 10), BasePath: "/"},
	}))

	assert.Contains(t, out, "<title>Latest posts · Yatube</title>")
	assert.Contains(t, out, `<a href="/posts/2/">`)
	assert.Contains(t, out, "<strong>post</strong>")
	assert.Contains(t, out, `href="/group/books/"`)
	assert.Contains(t, out, "1 March 2024")
	assert.Contains(t, out, "Page 2 of 3")
	assert.Contains(t, out, `href="/?page=1"`)
	assert.Contains(t, out, `href="/?page=3"`)
	assert.Contains(t, out, `href="/auth/login/"`)
	assert.NotContains(t, out, `href="/create/"`)
}

func TestNav_Authenticated(t *testing.T) {
	t.Parallel()

	out := renderString(t, views.Index(views.IndexPage{
		Nav:  views.Nav{Username: "leo", Path: "/"},
		List: views.PostList{Page: paginator.New("", 0, 10), BasePath: "/"},
	}))

	assert.Contains(t, out, `href="/create/"`)
	assert.Contains(t, out, `href="/profile/leo/"`)
	assert.Contains(t, out, `action="/auth/logout/"`)
	assert.Contains(t, out, "No posts yet.")
	assert.NotContains(t, out, `class="pagination"`)
}

func TestGroupAndProfile(t *testing.T) {
	t.Parallel()

	group := renderString(t, views.Group(views.GroupPage{
		Group: books,
		List:  views.PostList{Posts: samplePosts()[:1], Page: paginator.New("", 1, 10), BasePath: "/group/books/", HideGroup: true},
	}))
	assert.Contains(t, group, "<h1>Books</h1>")
	assert.Contains(t, group, "About books")
	assert.NotContains(t, group, "#Books")

	profile := renderString(t, views.Profile(views.ProfilePage{
		Author: leo,
		List:   views.PostList{Posts: samplePosts(), Page: paginator.New("", 2, 10), BasePath: "/profile/leo/"},
	}))
	assert.Contains(t, profile, "All posts of Leo Tolstoy")
	assert.Contains(t, profile, "Total posts: 2")
}

func TestPostDetail(t *testing.T) {
	t.Parallel()

	post := samplePosts()[0]
	post.Text = "Hello <script>alert(1)</script>"

	out := renderString(t, views.PostDetail(views.PostPage{Post: post, AuthorPosts: 2, CanEdit: true}))
	assert.Contains(t, out, "Author's posts: 2")
	assert.Contains(t, out, `href="/posts/2/edit/"`)
	assert.NotContains(t, out, "<script>alert")

	out = renderString(t, views.PostDetail(views.PostPage{Post: post}))
	assert.NotContains(t, out, "/edit/")
}

func TestPostForm(t *testing.T) {
	t.Parallel()

	errs := validator.ValidationErrors{{Field: "text", Message: "This field is required."}}
	out := renderString(t, views.PostForm(views.PostFormPage{
		Text:   "draft <b>",
		Group:  "3",
		Groups: []repository.Group{{ID: 1, Title: "Cats"}, books},
		Errors: errs,
	}))

	assert.Contains(t, out, `action="/create/"`)
	assert.Contains(t, out, "draft &lt;b&gt;")
	assert.Contains(t, out, `<option value="3" selected>Books</option>`)
	assert.Contains(t, out, `<option value="1">Cats</option>`)
	assert.Contains(t, out, "This field is required.")

	edit := renderString(t, views.PostForm(views.PostFormPage{IsEdit: true, PostID: 7}))
	assert.Contains(t, edit, `action="/posts/7/edit/"`)
	assert.Contains(t, edit, "<h1>Edit post</h1>")
}

func TestAccountsPages(t *testing.T) {
	t.Parallel()

	login := renderString(t, views.Login(views.LoginPage{
		Username: "leo",
		Next:     "/create/",
		Errors:   validator.ValidationErrors{{Message: "Please enter a correct username and password."}},
	}))
	assert.Contains(t, login, `name="next" value="/create/"`)
	assert.Contains(t, login, "Please enter a correct username and password.")

	signup := renderString(t, views.Signup(views.SignupPage{
		Username: "leo",
		Errors:   validator.ValidationErrors{{Field: "password2", Message: "Passwords differ."}},
	}))
	assert.Contains(t, signup, `value="leo"`)
	assert.Contains(t, signup, `name="password2"`)
	assert.Contains(t, signup, "Passwords differ.")

	assert.Contains(t, renderString(t, views.LoggedOut(views.Nav{})), "You have been logged out")
}

func TestError(t *testing.T) {
	t.Parallel()

	out := renderString(t, views.Error(views.ErrorPage{Nav: views.Nav{Path: "/unexisting_page/"}, Code: http.StatusNotFound}))
	assert.Contains(t, out, "404 · Not Found")
	assert.Contains(t, out, "<code>/unexisting_page/</code>")

	out = renderString(t, views.Error(views.ErrorPage{Code: http.StatusInternalServerError, Title: "Oops", Message: "try later"}))
	assert.Contains(t, out, "500 · Oops")
	assert.Contains(t, out, "try later")
}

func TestPosts_Partial(t *testing.T) {
	t.Parallel()

	out := renderString(t, views.Posts(views.PostList{Posts: samplePosts(), Page: paginator.New("1", 11, 10), BasePath: "/"}))
	assert.Contains(t, out, `<section id="post-list">`)
	assert.Contains(t, out, `hx-get="/?page=2"`)
	assert.NotContains(t, out, "<html")
}

func TestStatic(t *testing.T) {
	t.Parallel()

	data, err := fs.ReadFile(views.Static(), "static/css/yatube.css")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
