package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstSentence(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "No description available"},
		{"   ", "No description available"},
		{"Short description", "Short description"},
		{"First sentence. Second sentence.", "First sentence."},
		{"First line.\nSecond line.", "First line."},
		{"Exciting! And more.", "Exciting!"},
		{"Really? Yes.", "Really?"},
		{"Version v1.2.3 of the lib", "Version v1.2.3 of the lib"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FirstSentence(tc.in), "in=%q", tc.in)
	}
}

func TestEffectiveTimestamp(t *testing.T) {
	p := Project{UpdatedAt: "2024-06-01T00:00:00Z", CreatedAt: "2023-01-01T00:00:00Z"}
	assert.Equal(t, "2024-06-01T00:00:00Z", p.EffectiveTimestamp())

	p.UpdatedAt = ""
	assert.Equal(t, "2023-01-01T00:00:00Z", p.EffectiveTimestamp())
}

func TestLang(t *testing.T) {
	assert.Nil(t, Lang(""))

	got := Lang("Go")
	if assert.NotNil(t, got) {
		assert.Equal(t, "Go", *got)
	}
}

func TestUserPortalFileName(t *testing.T) {
	assert.Equal(t, "user_octocat_portfolio.json", UserPortalFileName("octocat"))
	assert.Equal(t, "user_jane_doe_portfolio.json", UserPortalFileName("Jane.Doe"))
}
