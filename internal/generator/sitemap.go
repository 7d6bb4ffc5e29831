package generator

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
	"time"
)

const defaultBaseURL = "http://localhost"

type sitemapEntry struct {
	Route   string
	LastMod time.Time
}

func buildSitemap(baseURL string, routes []sitemapEntry, fallback time.Time) string {
	base := normalizeBaseURL(baseURL)

	entries := make([]sitemapEntry, 0, len(routes))
	seen := map[string]struct{}{}
	for _, entry := range routes {
		route := strings.TrimSpace(entry.Route)
		if route == "" {
			route = "/"
		}
		if !strings.HasPrefix(route, "/") {
			route = "/" + route
		}
		if _, ok := seen[route]; ok {
			continue
		}
		seen[route] = struct{}{}
		if entry.LastMod.IsZero() {
			entry.LastMod = fallback
		}
		entry.Route = route
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Route < entries[j].Route
	})

	var builder strings.Builder
	builder.WriteString(xml.Header)
	builder.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, entry := range entries {
		builder.WriteString("  <url>\n")
		builder.WriteString("    <loc>")
		_ = xml.EscapeText(&builder, []byte(base+entry.Route))
		builder.WriteString("</loc>\n")
		if !entry.LastMod.IsZero() {
			builder.WriteString(fmt.Sprintf("    <lastmod>%s</lastmod>\n", entry.LastMod.UTC().Format(time.RFC3339)))
		}
		builder.WriteString("  </url>\n")
	}
	builder.WriteString("</urlset>\n")
	return builder.String()
}

func buildRobots(baseURL string, includeSitemap bool) string {
	var builder strings.Builder
	builder.WriteString("User-agent: *\n")
	builder.WriteString("Allow: /\n")
	if includeSitemap {
		builder.WriteString("\n")
		builder.WriteString(fmt.Sprintf("Sitemap: %s/sitemap.xml\n", normalizeBaseURL(baseURL)))
	}
	return builder.String()
}

func normalizeBaseURL(baseURL string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return defaultBaseURL
	}
	return base
}
