// Package posts serves the blog: the three paginated listings, post
// detail, and post creation and editing.
package posts

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/yatube-go/yatube"
	"github.com/yatube-go/yatube/internal/accounts"
	"github.com/yatube-go/yatube/internal/repository"
	"github.com/yatube-go/yatube/internal/views"
	"github.com/yatube-go/yatube/pkg/paginator"
	"github.com/yatube-go/yatube/pkg/validator"
)

// Store is the slice of the repository the post views need.
type Store interface {
	CountPosts(ctx context.Context) (int64, error)
	ListPosts(ctx context.Context, arg repository.ListPostsParams) ([]repository.PostRow, error)
	CountPostsByGroup(ctx context.Context, groupID int64) (int64, error)
	ListPostsByGroup(ctx context.Context, arg repository.ListPostsByGroupParams) ([]repository.PostRow, error)
	CountPostsByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
	ListPostsByAuthor(ctx context.Context, arg repository.ListPostsByAuthorParams) ([]repository.PostRow, error)
	GetPost(ctx context.Context, id int64) (repository.PostRow, error)
	CreatePost(ctx context.Context, arg repository.CreatePostParams) (repository.Post, error)
	UpdatePost(ctx context.Context, arg repository.UpdatePostParams) (repository.Post, error)
	GetUserByUsername(ctx context.Context, username string) (repository.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (repository.User, error)
}

type Handler struct {
	store   Store
	groups  *Groups
	perPage int
}

func NewHandler(store Store, groups *Groups) *Handler {
	return &Handler{store: store, groups: groups, perPage: paginator.DefaultPerPage}
}

func (h *Handler) Routes(r yatube.Router) {
	r.GET("/", h.index)
	r.GET("/group/{slug}/", h.groupPosts)
	r.GET("/profile/{username}/", h.profile)
	r.GET("/posts/{post_id}/", h.detail)
	r.Form("/create/", h.create, accounts.LoginRequired())
	r.Form("/posts/{post_id}/edit/", h.edit, accounts.LoginRequired())
}

func (h *Handler) index(c yatube.Context) error {
	total, err := h.store.CountPosts(c.Context())
	if err != nil {
		return err
	}
	page := paginator.New(c.Query("page"), total, h.perPage)

	rows, err := h.store.ListPosts(c.Context(), repository.ListPostsParams{Limit: page.Limit(), Offset: page.Offset()})
	if err != nil {
		return err
	}

	list := views.PostList{Posts: rows, Page: page, BasePath: "/"}
	return c.RenderPartial(http.StatusOK,
		views.Index(views.IndexPage{Nav: accounts.Nav(c), List: list}),
		views.Posts(list),
	)
}

func (h *Handler) groupPosts(c yatube.Context) error {
	group, err := h.groups.BySlug(c.Context(), c.Param("slug"))
	if errors.Is(err, repository.ErrNotFound) {
		return yatube.ErrNotFound("Group not found")
	}
	if err != nil {
		return err
	}

	total, err := h.store.CountPostsByGroup(c.Context(), group.ID)
	if err != nil {
		return err
	}
	page := paginator.New(c.Query("page"), total, h.perPage)

	rows, err := h.store.ListPostsByGroup(c.Context(), repository.ListPostsByGroupParams{
		GroupID: group.ID,
		Limit:   page.Limit(),
		Offset:  page.Offset(),
	})
	if err != nil {
		return err
	}

	list := views.PostList{Posts: rows, Page: page, BasePath: "/group/" + group.Slug + "/", HideGroup: true}
	return c.RenderPartial(http.StatusOK,
		views.Group(views.GroupPage{Nav: accounts.Nav(c), Group: group, List: list}),
		views.Posts(list),
	)
}

func (h *Handler) profile(c yatube.Context) error {
	author, err := h.store.GetUserByUsername(c.Context(), c.Param("username"))
	if errors.Is(err, repository.ErrNotFound) {
		return yatube.ErrNotFound("User not found")
	}
	if err != nil {
		return err
	}

	total, err := h.store.CountPostsByAuthor(c.Context(), author.ID)
	if err != nil {
		return err
	}
	page := paginator.New(c.Query("page"), total, h.perPage)

	rows, err := h.store.ListPostsByAuthor(c.Context(), repository.ListPostsByAuthorParams{
		AuthorID: author.ID,
		Limit:    page.Limit(),
		Offset:   page.Offset(),
	})
	if err != nil {
		return err
	}

	list := views.PostList{Posts: rows, Page: page, BasePath: "/profile/" + author.Username + "/"}
	return c.RenderPartial(http.StatusOK,
		views.Profile(views.ProfilePage{Nav: accounts.Nav(c), Author: author, List: list}),
		views.Posts(list),
	)
}

func (h *Handler) detail(c yatube.Context) error {
	post, err := h.postFromPath(c)
	if err != nil {
		return err
	}

	count, err := h.store.CountPostsByAuthor(c.Context(), post.AuthorID)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, views.PostDetail(views.PostPage{
		Nav:         accounts.Nav(c),
		Post:        post,
		AuthorPosts: count,
		CanEdit:     c.IsCurrentUser(post.AuthorID.String()),
	}))
}

func (h *Handler) create(c yatube.Context) error {
	formPage := views.PostFormPage{Nav: accounts.Nav(c)}
	if c.Request().Method != http.MethodPost {
		return h.renderForm(c, formPage)
	}

	var form PostForm
	groupID, errs, err := h.bind(c, &form)
	if err != nil {
		return err
	}
	if !errs.IsEmpty() {
		formPage.Text, formPage.Group, formPage.Errors = form.Text, form.Group, errs
		return h.renderForm(c, formPage)
	}

	authorID, err := uuid.Parse(c.UserID())
	if err != nil {
		return fmt.Errorf("session user id: %w", err)
	}
	author, err := h.store.GetUserByID(c.Context(), authorID)
	if err != nil {
		return err
	}

	post, err := h.store.CreatePost(c.Context(), repository.CreatePostParams{
		Text:     form.Text,
		AuthorID: author.ID,
		GroupID:  groupID,
	})
	if err != nil {
		return err
	}

	c.LogInfo("post created", "post_id", post.ID)
	return c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}

func (h *Handler) edit(c yatube.Context) error {
	post, err := h.postFromPath(c)
	if err != nil {
		return err
	}

	detailURL := fmt.Sprintf("/posts/%d/", post.ID)
	if !c.IsCurrentUser(post.AuthorID.String()) {
		return c.Redirect(http.StatusFound, detailURL)
	}

	formPage := views.PostFormPage{
		Nav:    accounts.Nav(c),
		Text:   post.Text,
		Group:  groupValue(post.GroupID),
		IsEdit: true,
		PostID: post.ID,
	}
	if c.Request().Method != http.MethodPost {
		return h.renderForm(c, formPage)
	}

	var form PostForm
	groupID, errs, err := h.bind(c, &form)
	if err != nil {
		return err
	}
	if !errs.IsEmpty() {
		formPage.Text, formPage.Group, formPage.Errors = form.Text, form.Group, errs
		return h.renderForm(c, formPage)
	}

	if _, err := h.store.UpdatePost(c.Context(), repository.UpdatePostParams{
		ID:      post.ID,
		Text:    form.Text,
		GroupID: groupID,
	}); err != nil {
		return err
	}

	return c.Redirect(http.StatusFound, detailURL)
}

// postFromPath loads the post named by {post_id}. Missing and
// non-numeric ids are both 404.
func (h *Handler) postFromPath(c yatube.Context) (repository.PostRow, error) {
	id, ok := yatube.Param[int64](c, "post_id")
	if !ok {
		return repository.PostRow{}, yatube.ErrNotFound("Post not found")
	}
	post, err := h.store.GetPost(c.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.PostRow{}, yatube.ErrNotFound("Post not found")
	}
	return post, err
}

// bind validates the submitted form, including the group choice.
func (h *Handler) bind(c yatube.Context, form *PostForm) (*int64, validator.ValidationErrors, error) {
	errs, err := c.Bind(form)
	if err != nil {
		return nil, nil, err
	}
	groupID, groupErrs, err := resolveGroup(c.Context(), h.groups, form.Group)
	if err != nil {
		return nil, nil, err
	}
	return groupID, append(errs, groupErrs...), nil
}

func (h *Handler) renderForm(c yatube.Context, p views.PostFormPage) error {
	groups, err := h.groups.All(c.Context())
	if err != nil {
		return err
	}
	p.Groups = groups
	return c.Render(http.StatusOK, views.PostForm(p))
}
