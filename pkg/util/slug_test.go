package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Simple name", input: "Electronics", want: "electronics"},
		{name: "Spaces become hyphens", input: "Home and Garden", want: "home-and-garden"},
		{name: "Punctuation stripped", input: "Kids' Toys & Games!", want: "kids-toys-games"},
		{name: "Hyphen runs collapse", input: "Audio -- Video", want: "audio-video"},
		{name: "Leading and trailing noise", input: "  --Sale Items--  ", want: "sale-items"},
		{name: "Unicode letters survive", input: "Café Münch", want: "café-münch"},
		{name: "Digits survive", input: "Top 10 Picks", want: "top-10-picks"},
		{name: "Empty input", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}
