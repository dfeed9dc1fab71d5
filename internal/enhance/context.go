package enhance

import (
	"fmt"
	"strings"

	"github.com/medusa-io/medusa-backend/internal/models"
)

// genreExamples maps a lowercase genre name to two well-known titles used to
// anchor the model's sense of the genre.
var genreExamples = map[string][2]string{
	"horror":      {"The Shining", "Hereditary"},
	"sci-fi":      {"Blade Runner 2049", "Arrival"},
	"fantasy":     {"The Lord of the Rings", "Pan's Labyrinth"},
	"noir":        {"Chinatown", "Double Indemnity"},
	"western":     {"The Good, the Bad and the Ugly", "Unforgiven"},
	"cyberpunk":   {"Ghost in the Shell", "Akira"},
	"romance":     {"Before Sunrise", "In the Mood for Love"},
	"thriller":    {"Se7en", "No Country for Old Men"},
	"documentary": {"Planet Earth", "Free Solo"},
	"anime":       {"Spirited Away", "Your Name"},
}

// BuildContext renders the optional influences into a compact steering
// string for the enhancement call. Absent fields contribute nothing; a genre
// with no table match contributes no fragment at all. Returns "" when no
// influence is usable.
func BuildContext(inf *models.Influences) string {
	if inf.Empty() {
		return ""
	}

	var fragments []string
	if inf.Genre != "" {
		if examples, ok := genreExamples[strings.ToLower(inf.Genre)]; ok {
			fragments = append(fragments, fmt.Sprintf("Genre: %s, similar to %s and %s",
				inf.Genre, examples[0], examples[1]))
		}
	}
	if inf.Reference != "" {
		fragments = append(fragments, fmt.Sprintf("Reference work: %s", inf.Reference))
	}
	if inf.Style != "" {
		fragments = append(fragments, fmt.Sprintf("Style: %s", inf.Style))
	}

	return strings.Join(fragments, ". ")
}
