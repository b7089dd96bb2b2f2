// Package grants loads the grant corpus the matcher is built from.
// Corpus ingestion itself is external; this package only parses an
// already-collected JSON corpus and normalizes it for matching.
package grants

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/david/grant-match/internal/models"
)

//go:embed data/grants.json
var grantsJSON embed.FS

var sanitizer = bluemonday.UGCPolicy()

// Load reads a grant corpus from the JSON file at path, falling back to
// the embedded default corpus when path is empty. Full descriptions are
// flattened to sanitized plain text once at load so the similarity
// corpus never sees markup.
func Load(path string) ([]models.Grant, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = grantsJSON.ReadFile("data/grants.json")
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading grant corpus: %w", err)
	}
	return Parse(data)
}

// Parse decodes and normalizes a JSON grant corpus.
func Parse(data []byte) ([]models.Grant, error) {
	var grants []models.Grant
	if err := json.Unmarshal(data, &grants); err != nil {
		return nil, fmt.Errorf("parsing grant corpus: %w", err)
	}

	for i := range grants {
		if err := validate(&grants[i]); err != nil {
			return nil, fmt.Errorf("grant %d: %w", i, err)
		}
		if grants[i].FullDescription != nil {
			text := HTMLToText(*grants[i].FullDescription)
			grants[i].FullDescription = &text
		}
	}
	return grants, nil
}

func validate(g *models.Grant) error {
	if g.ID == "" {
		return fmt.Errorf("missing id")
	}
	if g.Name == "" {
		return fmt.Errorf("grant %q missing name", g.ID)
	}
	if g.Amount < 0 {
		return fmt.Errorf("grant %q has negative amount", g.ID)
	}
	return nil
}

// HTMLToText sanitizes markup and flattens it to whitespace-normalized
// plain text. Non-HTML input passes through unchanged apart from
// whitespace normalization.
func HTMLToText(html string) string {
	clean := sanitizer.Sanitize(html)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(clean))
	if err != nil {
		return normalizeSpace(clean)
	}
	return normalizeSpace(doc.Text())
}

// normalizeSpace collapses multiple spaces into one and trims the string.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
