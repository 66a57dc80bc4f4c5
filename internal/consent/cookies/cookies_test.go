package cookies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	pairs := Parse("a=1;  b=two ; ;c=x=y")
	assert.Equal(t, []Pair{
		{Name: "a", Value: "1"},
		{Name: "b", Value: "two"},
		{Name: "c", Value: "x"},
	}, pairs)
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse(" ; ;"))
}

func TestFindPrefix(t *testing.T) {
	t.Run("exact name", func(t *testing.T) {
		p, ok := FindPrefix("other=1; cookies_preferences_set_21_3=true", "cookies_preferences_set_21_3")
		require.True(t, ok)
		assert.Equal(t, "true", p.Value)
	})

	t.Run("prefix match is accepted", func(t *testing.T) {
		p, ok := FindPrefix("cookies_preferences_set_21_3_legacy=true", "cookies_preferences_set_21_3")
		require.True(t, ok)
		assert.Equal(t, "cookies_preferences_set_21_3_legacy", p.Name)
	})

	t.Run("first match wins", func(t *testing.T) {
		p, ok := FindPrefix("cookies_preferences_set_21_3=false; cookies_preferences_set_21_3=true", "cookies_preferences_set_21_3")
		require.True(t, ok)
		assert.Equal(t, "false", p.Value)
	})

	t.Run("name containing the prefix later does not match", func(t *testing.T) {
		_, ok := FindPrefix("x_cookies_preferences_set_21_3=true", "cookies_preferences_set_21_3")
		assert.False(t, ok)
	})

	t.Run("missing", func(t *testing.T) {
		_, ok := FindPrefix("a=1; b=2", "cookies_preferences_set_21_3")
		assert.False(t, ok)
	})
}

func TestEscapeComponent(t *testing.T) {
	assert.Equal(t, "%7B%22essential%22%3Atrue%2C%22usage%22%3Atrue%7D",
		EscapeComponent(`{"essential":true,"usage":true}`))
	assert.Equal(t, "a%20b", EscapeComponent("a b"))

	back, err := UnescapeComponent("%7B%22essential%22%3Atrue%2C%22usage%22%3Atrue%7D")
	require.NoError(t, err)
	assert.Equal(t, `{"essential":true,"usage":true}`, back)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "a=1; b=2", Format([]Pair{{"a", "1"}, {"b", "2"}}))
	assert.Equal(t, "", Format(nil))
}
