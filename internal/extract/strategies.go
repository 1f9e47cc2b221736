package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kitbuilder587/boolsearch/internal/domain"
)

type linkStrategy func(doc *goquery.Document, base *url.URL) Link

const (
	searchResultSelector  = ".search-result a[href], a.search-result[href], .search-results .result a[href]"
	entryTitleSelector    = ".entry-title a[href], h2.post-title a[href], h3.post-title a[href]"
	articleHeaderSelector = "article header a[href], article h2 a[href], article h3 a[href]"

	cardBlockSelector = ".card, .post-card, .elementor-post, article"
	cardTitleSelector = ".card-title a[href], .entry-title a[href], h2 a[href], h3 a[href], a.card-link[href]"
)

// стратегии каждого семейства, по порядку приоритета
var strategies = map[TemplateFamily][]linkStrategy{
	FamilyGeneric: {
		selectorStrategy(searchResultSelector),
		selectorStrategy(entryTitleSelector),
		selectorStrategy(articleHeaderSelector),
		firstAnchor,
	},
	FamilyCard: {
		cardBlocks,
		selectorStrategy(entryTitleSelector),
		firstAnchor,
	},
}

func selectorStrategy(selector string) linkStrategy {
	return func(doc *goquery.Document, base *url.URL) Link {
		var found Link
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			found = linkFrom(s, base)
			return found.Empty()
		})
		return found
	}
}

// cardBlocks: сначала настоящие посты, потом остальное, вложения (attachment) в самом конце.
func cardBlocks(doc *goquery.Document, base *url.URL) Link {
	var posts, others, attachments []*goquery.Selection
	doc.Find(cardBlockSelector).Each(func(_ int, s *goquery.Selection) {
		switch {
		case isAttachment(s):
			attachments = append(attachments, s)
		case isPost(s):
			posts = append(posts, s)
		default:
			others = append(others, s)
		}
	})

	ordered := make([]*goquery.Selection, 0, len(posts)+len(others)+len(attachments))
	ordered = append(ordered, posts...)
	ordered = append(ordered, others...)
	ordered = append(ordered, attachments...)

	for _, block := range ordered {
		var found Link
		block.Find(cardTitleSelector).EachWithBreak(func(_ int, a *goquery.Selection) bool {
			found = linkFrom(a, base)
			return found.Empty()
		})
		if !found.Empty() {
			return found
		}
	}

	if base == nil {
		return Link{}
	}

	// любая ссылка внутри блока, но только на тот же хост
	for _, block := range ordered {
		var found Link
		block.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			link := linkFrom(a, base)
			if !link.Empty() && sameHost(link.URL, base) {
				found = link
				return false
			}
			return true
		})
		if !found.Empty() {
			return found
		}
	}

	return Link{}
}

func firstAnchor(doc *goquery.Document, base *url.URL) Link {
	var found Link
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		found = linkFrom(s, base)
		return found.Empty()
	})
	return found
}

func linkFrom(s *goquery.Selection, base *url.URL) Link {
	href, ok := s.Attr("href")
	if !ok {
		return Link{}
	}
	abs := absolute(href, base)
	if abs == "" {
		return Link{}
	}
	return Link{URL: abs, Text: truncate(collapse(s.Text()), MaxTitleLength)}
}

// absolute достраивает относительную ссылку от base; якоря и javascript: отбрасываются.
func absolute(href string, base *url.URL) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}

	if ref.Scheme != "http" && ref.Scheme != "https" {
		return ""
	}
	return ref.String()
}

func sameHost(link string, base *url.URL) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return domain.NormalizeDomain(u.Host) == domain.NormalizeDomain(base.Host)
}

func isPost(s *goquery.Selection) bool {
	if t, ok := s.Attr("data-type"); ok && t == "post" {
		return true
	}
	return s.HasClass("type-post") || s.HasClass("post") || s.HasClass("card--post")
}

func isAttachment(s *goquery.Selection) bool {
	if t, ok := s.Attr("data-type"); ok && t == "attachment" {
		return true
	}
	return s.HasClass("type-attachment") || s.HasClass("attachment") || s.HasClass("card--media")
}
