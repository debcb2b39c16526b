package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatube-go/yatube/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		`<p>Hello</p><script>alert('xss')</script>`: "Hello",
		`<p>Hello <strong>world</strong></p>`:        "Hello world",
		`<img src="x" onerror="alert(1)">`:           "",
		`<a href="javascript:alert(1)">click</a>`:    "click",
		"plain":                                      "plain",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizer.StripHTML(in), in)
	}
}

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "drops script",
			in:   `<p>Hello</p><script>alert('xss')</script>`,
			want: "<p>Hello</p>",
		},
		{
			name: "keeps formatting",
			in:   `<h2>T</h2><p><strong>b</strong> <em>i</em> <code>c</code></p>`,
			want: `<h2>T</h2><p><strong>b</strong> <em>i</em> <code>c</code></p>`,
		},
		{
			name: "relative link gets nofollow",
			in:   `<a href="/group/cats/">cats</a>`,
			want: `<a href="/group/cats/" rel="nofollow">cats</a>`,
		},
		{
			name: "javascript url removed",
			in:   `<a href="javascript:alert(1)">x</a>`,
			want: `x`,
		},
		{
			name: "event handler removed",
			in:   `<p onclick="alert(1)">x</p>`,
			want: `<p>x</p>`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, sanitizer.SanitizeHTML(tc.in))
		})
	}
}

func TestSanitizeHTML_AbsoluteLink(t *testing.T) {
	t.Parallel()

	out := sanitizer.SanitizeHTML(`<a href="https://example.com">x</a>`)
	assert.Contains(t, out, `target="_blank"`)
	assert.Contains(t, out, "nofollow")
	assert.Contains(t, out, "noopener")
}

func TestStringRules(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b", sanitizer.Trim("  a b \n"))
	assert.Equal(t, "leo@example.com", sanitizer.Email("  Leo@Example.COM "))
	assert.Equal(t, "a b c", sanitizer.Squash(" a \t b\n\nc "))
	assert.Equal(t, "leo.t_1", sanitizer.Username(" leo.t <_1>! "))
	assert.Equal(t, "a\nb\nc", sanitizer.Newlines("a\r\nb\rc"))
}

func TestSanitizeStruct(t *testing.T) {
	t.Parallel()

	type nested struct {
		Note string `sanitize:"strip"`
	}
	type form struct {
		Text     string  `sanitize:"newlines,trim"`
		Email    string  `sanitize:"email"`
		Nickname *string `sanitize:"trim"`
		Body     string  `sanitize:"html"`
		Raw      string
		Inner    nested
		private  string
	}

	nick := "  leo  "
	f := form{
		Text:     "  line one\r\nline two  ",
		Email:    " Leo@Example.com",
		Nickname: &nick,
		Body:     `<p>ok</p><script>x</script>`,
		Raw:      "  untouched  ",
		Inner:    nested{Note: "<b>hi</b>"},
		private:  "  x  ",
	}

	require.NoError(t, sanitizer.SanitizeStruct(&f))
	assert.Equal(t, "line one\nline two", f.Text)
	assert.Equal(t, "leo@example.com", f.Email)
	assert.Equal(t, "leo", *f.Nickname)
	assert.Equal(t, "<p>ok</p>", f.Body)
	assert.Equal(t, "  untouched  ", f.Raw)
	assert.Equal(t, "hi", f.Inner.Note)
	assert.Equal(t, "  x  ", f.private)
}

func TestSanitizeStruct_Errors(t *testing.T) {
	t.Parallel()

	type bad struct {
		Name string `sanitize:"shout"`
	}

	require.ErrorIs(t, sanitizer.SanitizeStruct(bad{}), sanitizer.ErrInvalidTarget)
	require.ErrorIs(t, sanitizer.SanitizeStruct((*bad)(nil)), sanitizer.ErrInvalidTarget)
	require.ErrorContains(t, sanitizer.SanitizeStruct(&bad{Name: "x"}), `unknown rule "shout"`)
}
