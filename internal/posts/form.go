package posts

import (
	"context"
	"errors"
	"strconv"

	"github.com/yatube-go/yatube/internal/repository"
	"github.com/yatube-go/yatube/pkg/validator"
)

const msgInvalidGroup = "Select a valid choice. That choice is not one of the available choices."

// PostForm is the submitted text and optional group id.
type PostForm struct {
	Text  string `form:"text" sanitize:"newlines,trim" validate:"required"`
	Group string `form:"group" sanitize:"trim"`
}

// resolveGroup turns the group field into a group id. Blank means no
// group; an id that is not a known group is a field error.
func resolveGroup(ctx context.Context, groups *Groups, raw string) (*int64, validator.ValidationErrors, error) {
	if raw == "" {
		return nil, nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, validator.ValidationErrors{}.Add("group", msgInvalidGroup), nil
	}
	grp, err := groups.ByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, validator.ValidationErrors{}.Add("group", msgInvalidGroup), nil
	}
	if err != nil {
		return nil, nil, err
	}
	return &grp.ID, nil, nil
}

func groupValue(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}
