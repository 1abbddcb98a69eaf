package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Electronics", "electronics"},
		{"spaces", "Home  Appliances", "home-appliances"},
		{"trimmed", "  Office Supplies  ", "office-supplies"},
		{"punctuation", "Books & Magazines!", "books-magazines"},
		{"digits", "Top 10 Deals", "top-10-deals"},
		{"non ascii dropped", "Café Münchner", "caf-mnchner"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Make(tc.in))
		})
	}
}

func TestNext(t *testing.T) {
	assert.Equal(t, "foo", Next("foo", nil))
	assert.Equal(t, "foo-1", Next("foo", []string{"foo"}))
	assert.Equal(t, "foo-2", Next("foo", []string{"foo", "foo-1"}))
	assert.Equal(t, "foo-1", Next("foo", []string{"foo", "foo-2"}))
	assert.Equal(t, "foo", Next("foo", []string{"bar", "foo-1"}))
}
