package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yatube-go/yatube/pkg/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		opts  []slug.Option
		want  string
	}{
		{name: "simple", input: "Hello World", want: "hello-world"},
		{name: "punctuation", input: "Hello, World!", want: "hello-world"},
		{name: "spaces collapse", input: "  Too   Many  ", want: "too-many"},
		{name: "numbers", input: "Price: $99.99", want: "price-99-99"},
		{name: "only symbols", input: "!@#$%", want: ""},
		{name: "empty", input: "", want: ""},
		{name: "diacritics", input: "Café résumé naïve", want: "cafe-resume-naive"},
		{name: "eszett", input: "Straße", want: "strasse"},
		{name: "cyrillic", input: "Лев Толстой", want: "lev-tolstoy"},
		{name: "cjk dropped", input: "go 语言 blog", want: "go-blog"},
		{name: "keep case", input: "Hello World", opts: []slug.Option{slug.Lowercase(false)}, want: "Hello-World"},
		{name: "separator", input: "Hello World", opts: []slug.Option{slug.Separator("_")}, want: "hello_world"},
		{
			name:  "truncates on word boundary",
			input: "this is a very long title",
			opts:  []slug.Option{slug.MaxLength(12)},
			want:  "this-is-a",
		},
		{
			name:  "exact boundary keeps word",
			input: "this is a very",
			opts:  []slug.Option{slug.MaxLength(9)},
			want:  "this-is-a",
		},
		{
			name:  "unlimited",
			input: "a b c d e f g h i j k l m n o p q r s t u v w x y z a b c d e f g h",
			opts:  []slug.Option{slug.MaxLength(0)},
			want:  "a-b-c-d-e-f-g-h-i-j-k-l-m-n-o-p-q-r-s-t-u-v-w-x-y-z-a-b-c-d-e-f-g-h",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, slug.Make(tc.input, tc.opts...))
		})
	}
}

func TestValid(t *testing.T) {
	t.Parallel()

	assert.True(t, slug.Valid("cats_and-dogs-2"))
	assert.False(t, slug.Valid(""))
	assert.False(t, slug.Valid("Cats"))
	assert.False(t, slug.Valid("cats dogs"))
	assert.False(t, slug.Valid("кошки"))
}
