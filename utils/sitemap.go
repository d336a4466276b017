package utils

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pollpeak/pulseearn/models"

	"gorm.io/gorm"
)

// Static routes always present in the sitemap
var sitemapStaticRoutes = []string{
	"/", "/polls", "/trivia", "/leaderboard", "/rewards", "/ambassador", "/about",
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// BuildSitemap queries active polls and trivia games and writes an XML
// sitemap to outPath.
func BuildSitemap(db *gorm.DB, siteURL, outPath string) error {
	base := strings.TrimRight(siteURL, "/")

	set := sitemapURLSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	now := time.Now().UTC().Format("2006-01-02")
	for _, route := range sitemapStaticRoutes {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        base + route,
			LastMod:    now,
			ChangeFreq: "daily",
		})
	}

	var polls []models.Poll
	if err := db.Where("is_active = ?", true).Find(&polls).Error; err != nil {
		return fmt.Errorf("failed to fetch active polls: %v", err)
	}
	for _, p := range polls {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     fmt.Sprintf("%s/polls/%s", base, p.Slug),
			LastMod: p.UpdatedAt.UTC().Format("2006-01-02"),
		})
	}

	var games []models.TriviaGame
	if err := db.Where("is_active = ?", true).Find(&games).Error; err != nil {
		return fmt.Errorf("failed to fetch active trivia games: %v", err)
	}
	for _, g := range games {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     fmt.Sprintf("%s/trivia/%s", base, g.Slug),
			LastMod: g.UpdatedAt.UTC().Format("2006-01-02"),
		})
	}

	data, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sitemap: %v", err)
	}

	content := []byte(xml.Header + string(data) + "\n")
	if err := os.WriteFile(outPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write sitemap: %v", err)
	}
	return nil
}
