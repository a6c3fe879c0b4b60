// Package catalog holds the fallback product recommendations. The built-in
// list ships as YAML and can be replaced per category list by a file on disk.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/AnshRaj112/feedbackhub-backend/internal/models"
)

//go:embed default.yaml
var defaultYAML []byte

// Entry is one catalogue product. Price is whole rupees.
type Entry struct {
	ID     string `koanf:"id"`
	Title  string `koanf:"title"`
	Price  int    `koanf:"price"`
	Link   string `koanf:"link"`
	Source string `koanf:"source"`
	// Image is an optional Cloudinary public id.
	Image string `koanf:"image"`
}

type Category struct {
	Name     string  `koanf:"name"`
	Products []Entry `koanf:"products"`
}

type Catalog struct {
	PlaceholderImage string     `koanf:"placeholder_image"`
	Categories       []Category `koanf:"categories"`
	Default          []Entry    `koanf:"default"`
	// ImageIDs maps a lowercase title fragment (e.g. "air fryer") to a
	// Cloudinary public id for products that are not in the catalogue.
	ImageIDs map[string]string `koanf:"images"`

	images ImageResolver
}

// Load reads the embedded catalogue and, when path is set, overlays the YAML
// file at path. Top-level keys in the file replace the built-in ones.
func Load(path string, images ImageResolver) (*Catalog, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(defaultYAML), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load built-in catalog: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load catalog file %s: %w", path, err)
		}
	}

	c := &Catalog{}
	if err := k.Unmarshal("", c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(c.Default) == 0 {
		return nil, errors.New("catalog has no default products")
	}
	if images == nil {
		images = Placeholder(c.PlaceholderImage)
	}
	c.images = images
	return c, nil
}

// Recommendations returns the products listed for category, or the default
// list when the category is unknown. Matching ignores case.
func (c *Catalog) Recommendations(category string) []models.Product {
	entries := c.Default
	for _, cat := range c.Categories {
		if strings.EqualFold(cat.Name, strings.TrimSpace(category)) {
			entries = cat.Products
			break
		}
	}

	out := make([]models.Product, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.Product{
			ID:     e.ID,
			Title:  e.Title,
			Price:  FormatINR(e.Price),
			Image:  c.images.URL(e.Image),
			Link:   e.Link,
			Source: e.Source,
		})
	}
	return out
}

// ImageFor resolves a picture for a product title: the image of a catalogue
// entry with the same title, else the longest matching ImageIDs fragment, else
// the placeholder.
func (c *Catalog) ImageFor(title string) string {
	title = strings.TrimSpace(title)
	for _, e := range c.entries() {
		if e.Image != "" && strings.EqualFold(e.Title, title) {
			return c.images.URL(e.Image)
		}
	}

	lower := strings.ToLower(title)
	best, bestID := "", ""
	for fragment, id := range c.ImageIDs {
		f := strings.ToLower(strings.TrimSpace(fragment))
		if f == "" || id == "" || !strings.Contains(lower, f) {
			continue
		}
		if len(f) > len(best) || (len(f) == len(best) && f < best) {
			best, bestID = f, id
		}
	}
	if bestID != "" {
		return c.images.URL(bestID)
	}
	return c.images.URL("")
}

func (c *Catalog) entries() []Entry {
	all := append([]Entry(nil), c.Default...)
	for _, cat := range c.Categories {
		all = append(all, cat.Products...)
	}
	return all
}
