package pathmatch_test

import (
	"testing"

	"github.com/kildevaeld/polka/pathmatch"
	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		pattern string
		ok      bool
		params  map[string]string
	}{
		{"root", "/", "/", true, nil},
		{"literal", "/users", "/users", true, nil},
		{"literal_mismatch", "/users", "/items", false, nil},
		{"param", "/items/42", "/items/:id", true, map[string]string{"id": "42"}},
		{"param_and_literal_mismatch", "/things/42", "/items/:id", false, nil},
		{"two_params", "/users/7/posts/9", "/users/:uid/posts/:pid", true, map[string]string{"uid": "7", "pid": "9"}},
		{"too_few_segments", "/items", "/items/:id", false, nil},
		{"too_many_segments", "/items/42/extra", "/items/:id", false, nil},
		{"trailing_slash_ignored", "/items/42/", "/items/:id", true, map[string]string{"id": "42"}},
		{"single_param_segment", "/x", "/:name", true, map[string]string{"name": "x"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			match := pathmatch.Path(test.path)
			assert.Equal(t, test.ok, match.Against(test.pattern))
			for name, value := range test.params {
				assert.Equal(t, value, match.Params().ByName(name))
			}
		})
	}
}

func TestMatch_Reuse(t *testing.T) {
	match := pathmatch.Path("/items/42")

	assert.False(t, match.Against("/users/:id"))
	assert.True(t, match.Against("/items/:id"))
	assert.Equal(t, "42", match.Params().ByName("id"))

	// a later mismatch must not leave stale bindings behind a success check
	assert.True(t, match.Against("/:section/:id"))
	assert.Equal(t, "items", match.Params().ByName("section"))
}

func TestParams_ByName(t *testing.T) {
	params := pathmatch.Params{{Key: "id", Value: "42"}}
	assert.Equal(t, "42", params.ByName("id"))
	assert.Equal(t, "", params.ByName("missing"))
}
