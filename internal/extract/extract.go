// Package extract достает заголовки и ссылки на результаты из статического HTML.
// Ошибок нет: пустая строка значит "ничего не нашли".
package extract

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 300
)

// TemplateFamily - группа шаблонов сайтов с одинаковой разметкой.
type TemplateFamily string

const (
	FamilyGeneric TemplateFamily = "generic"
	FamilyCard    TemplateFamily = "card"
)

func ParseTemplateFamily(s string) (TemplateFamily, error) {
	switch TemplateFamily(strings.ToLower(strings.TrimSpace(s))) {
	case "", FamilyGeneric:
		return FamilyGeneric, nil
	case FamilyCard:
		return FamilyCard, nil
	}
	return "", fmt.Errorf("unknown template family %q", s)
}

// Link - найденная ссылка, уже абсолютная.
type Link struct {
	URL  string
	Text string
}

func (l Link) Empty() bool { return l.URL == "" }

// Page - разобранный документ, один fetch можно опрашивать несколько раз.
type Page struct {
	doc *goquery.Document
}

func NewPage(html string) *Page {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// strings.Reader не падает; пустой документ вместо nil
		doc, _ = goquery.NewDocumentFromReader(strings.NewReader(""))
	}
	return &Page{doc: doc}
}

// Title - первый <title> со схлопнутыми пробелами, не длиннее MaxTitleLength рун.
func (p *Page) Title() string {
	return truncate(collapse(p.doc.Find("title").First().Text()), MaxTitleLength)
}

// Description: сначала meta description, потом og:description.
func (p *Page) Description() string {
	if desc, ok := p.doc.Find("meta[name='description']").Attr("content"); ok && strings.TrimSpace(desc) != "" {
		return truncate(collapse(desc), MaxDescriptionLength)
	}
	if desc, ok := p.doc.Find("meta[property='og:description']").Attr("content"); ok {
		return truncate(collapse(desc), MaxDescriptionLength)
	}
	return ""
}

// Text - видимый текст страницы, по нему ищем фразы "нет результатов".
func (p *Page) Text() string {
	body := p.doc.Find("body").First()
	if body.Length() == 0 {
		return collapse(p.doc.Text())
	}
	body = body.Clone()
	body.Find("script, style, noscript").Remove()
	return collapse(body.Text())
}

// FirstMatchingLink прогоняет стратегии семейства по порядку и возвращает первое попадание.
func (p *Page) FirstMatchingLink(baseURL string, family TemplateFamily) Link {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		base = nil
	}

	chain, ok := strategies[family]
	if !ok {
		chain = strategies[FamilyGeneric]
	}

	for _, s := range chain {
		if link := s(p.doc, base); !link.Empty() {
			return link
		}
	}
	return Link{}
}

func ExtractTitle(html string) string {
	return NewPage(html).Title()
}

func ExtractFirstMatchingLink(html, baseURL string, family TemplateFamily) string {
	return NewPage(html).FirstMatchingLink(baseURL, family).URL
}

// Text вытаскивает текст из HTML-фрагмента, например из WordPress-полей "rendered".
func Text(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return collapse(fragment)
	}
	return collapse(doc.Text())
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
