package navigation

// DefaultLandingLinks is how many page links a landing card shows.
const DefaultLandingLinks = 3

// Link is a titled route.
type Link struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

// Card summarises one folder on the landing page.
type Card struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Slug        string `json:"slug"`
	PageCount   int    `json:"page_count"`
	Links       []Link `json:"links"`
}

// Landing builds section cards from tree, one per folder that has pages,
// listing at most maxLinks pages each. A non-positive maxLinks uses
// DefaultLandingLinks.
func Landing(tree Tree, maxLinks int) []Card {
	if maxLinks <= 0 {
		maxLinks = DefaultLandingLinks
	}
	cards := make([]Card, 0, len(tree))
	for _, section := range tree {
		if section.Folder == nil || len(section.Pages) == 0 {
			continue
		}
		links := make([]Link, 0, min(maxLinks, len(section.Pages)))
		for _, page := range section.Pages[:min(maxLinks, len(section.Pages))] {
			links = append(links, Link{Title: page.Title, Path: PagePath(section.Folder, page)})
		}
		cards = append(cards, Card{
			Title:       section.Folder.Name,
			Description: section.Folder.Description,
			Slug:        section.Folder.Slug,
			PageCount:   len(section.Pages),
			Links:       links,
		})
	}
	return cards
}
