package views

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/yatube-go/yatube/internal/repository"
	"github.com/yatube-go/yatube/pkg/markdown"
)

var funcs = template.FuncMap{
	"markdown":      markdown.Render,
	"date":          formatDate,
	"truncatewords": truncateWords,
	"pageURL":       pageURL,
	"cardOf":        cardOf,
}

type card struct {
	Post      repository.PostRow
	HideGroup bool
}

// cardOf bundles a post with list options for the post_card partial.
func cardOf(p repository.PostRow, hideGroup bool) card {
	return card{Post: p, HideGroup: hideGroup}
}

func formatDate(t time.Time) string {
	return t.Format("2 January 2006")
}

// truncateWords keeps the first n words and marks the cut with an ellipsis.
func truncateWords(n int, s string) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[:n], " ") + " …"
}

func pageURL(base string, n int) string {
	return fmt.Sprintf("%s?page=%d", base, n)
}
