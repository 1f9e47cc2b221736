package export

import (
	"strings"

	"github.com/kitbuilder587/boolsearch/internal/domain"
)

const (
	tiscaliDomain  = "notizie.tiscali.it"
	tiscaliRegions = "https://notizie.tiscali.it/regioni/"
	articoliMarker = "/articoli/"
)

// одна статья tiscali доступна в каждой региональной ленте
var TiscaliRegions = []string{
	"valle-aosta",
	"piemonte",
	"lombardia",
	"trentino-alto-adige",
	"friuli-venezia-giulia",
	"emilia-romagna",
	"veneto",
	"liguria",
	"toscana",
	"umbria",
	"lazio",
	"marche",
	"abruzzo",
	"molise",
	"puglia",
	"campania",
	"basilicata",
	"calabria",
	"sicilia",
	"sardegna",
}

func regionalRows(row Row) []Row {
	if domain.NormalizeDomain(row.Domain) != tiscaliDomain {
		return nil
	}
	suffix, ok := articoliSuffix(row.URL)
	if !ok {
		return nil
	}

	rows := make([]Row, 0, len(TiscaliRegions))
	for _, region := range TiscaliRegions {
		rows = append(rows, Row{
			Domain:      tiscaliDomain + "/regioni/" + region,
			Article:     row.Article,
			SearchQuery: row.SearchQuery,
			URL:         tiscaliRegions + region + "/" + suffix,
			Title:       row.Title,
		})
	}
	return rows
}

// articoliSuffix возвращает "articoli/..." из ссылки, если он там есть.
func articoliSuffix(rawURL string) (string, bool) {
	idx := strings.Index(rawURL, articoliMarker)
	if idx < 0 || idx+len(articoliMarker) >= len(rawURL) {
		return "", false
	}
	return strings.TrimLeft(rawURL[idx:], "/"), true
}
