package enhance

import (
	"strings"
	"testing"

	"github.com/medusa-io/medusa-backend/internal/models"
)

func TestBuildContext(t *testing.T) {
	tests := []struct {
		name string
		inf  *models.Influences
		want string
	}{
		{
			name: "nil influences",
			inf:  nil,
			want: "",
		},
		{
			name: "empty influences",
			inf:  &models.Influences{},
			want: "",
		},
		{
			name: "known genre",
			inf:  &models.Influences{Genre: "Horror"},
			want: "Genre: Horror, similar to The Shining and Hereditary",
		},
		{
			name: "genre lookup is case-insensitive",
			inf:  &models.Influences{Genre: "CYBERPUNK"},
			want: "Genre: CYBERPUNK, similar to Ghost in the Shell and Akira",
		},
		{
			name: "unknown genre contributes no fragment",
			inf:  &models.Influences{Genre: "mumblecore"},
			want: "",
		},
		{
			name: "reference only",
			inf:  &models.Influences{Reference: "Dune"},
			want: "Reference work: Dune",
		},
		{
			name: "style only",
			inf:  &models.Influences{Style: "oil painting"},
			want: "Style: oil painting",
		},
		{
			name: "all fields joined in order",
			inf:  &models.Influences{Genre: "noir", Reference: "Chinatown", Style: "high contrast"},
			want: "Genre: noir, similar to Chinatown and Double Indemnity. Reference work: Chinatown. Style: high contrast",
		},
		{
			name: "unknown genre with other fields",
			inf:  &models.Influences{Genre: "vaporwave", Style: "pastel"},
			want: "Style: pastel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildContext(tt.inf)
			if got != tt.want {
				t.Errorf("BuildContext() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildContext_GenrePrefix(t *testing.T) {
	got := BuildContext(&models.Influences{Genre: "horror"})
	if !strings.HasPrefix(got, "Genre: horror, similar to") {
		t.Errorf("expected genre fragment prefix, got %q", got)
	}
}
