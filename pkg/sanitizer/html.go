package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policiesOnce sync.Once
	strict       *bluemonday.Policy
	safe         *bluemonday.Policy
)

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	policiesOnce.Do(func() {
		strict = bluemonday.StrictPolicy()

		// Everything goldmark emits for a post body, minus raw HTML and images.
		safe = bluemonday.NewPolicy()
		safe.AllowStandardURLs()
		safe.AllowElements(
			"p", "br", "hr",
			"strong", "b", "em", "i", "del",
			"ul", "ol", "li",
			"h1", "h2", "h3", "h4", "h5", "h6",
			"code", "pre", "blockquote",
		)
		safe.AllowAttrs("href").OnElements("a")
		safe.RequireNoFollowOnLinks(true)
		safe.AddTargetBlankToFullyQualifiedLinks(true)
	})
	return strict, safe
}

// StripHTML removes every tag and returns escaped plain text.
func StripHTML(s string) string {
	p, _ := policies()
	return p.Sanitize(s)
}

// SanitizeHTML keeps basic formatting and links and drops everything
// executable.
func SanitizeHTML(s string) string {
	_, p := policies()
	return p.Sanitize(s)
}
