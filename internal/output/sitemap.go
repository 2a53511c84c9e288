package output

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/timmy/moviedir/internal/domain"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// BuildSitemap renders the site's URL set: home, the top-rated list and one
// detail page per movie.
func BuildSitemap(baseURL string, movies []domain.Movie, now time.Time) ([]byte, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("sitemap base URL is empty")
	}
	lastMod := now.UTC().Format("2006-01-02")

	set := urlSet{Xmlns: sitemapNamespace}
	set.URLs = append(set.URLs,
		sitemapURL{Loc: base, LastMod: lastMod, ChangeFreq: "daily", Priority: "1.0"},
		sitemapURL{Loc: base + "/top-rated", LastMod: lastMod, ChangeFreq: "daily", Priority: "0.8"},
	)
	for _, m := range movies {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        base + "/" + strconv.Itoa(m.ID),
			LastMod:    lastMod,
			ChangeFreq: "weekly",
			Priority:   "0.6",
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode sitemap: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

// WriteSitemap builds the sitemap and replaces the file at path.
func WriteSitemap(path, baseURL string, movies []domain.Movie, now time.Time) error {
	data, err := BuildSitemap(baseURL, movies, now)
	if err != nil {
		return err
	}
	if err := WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("failed to write sitemap %s: %w", path, err)
	}
	return nil
}
