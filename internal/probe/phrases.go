package probe

import "strings"

// фразы, которыми CMS сообщают о пустой выдаче; сравнение без учета регистра
var noResultsPhrases = []string{
	"nessun risultato",
	"nessun articolo trovato",
	"non ci sono risultati",
	"la ricerca non ha prodotto risultati",
	"pagina non trovata",
	"no results found",
	"nothing found",
	"nothing matched your search",
	"page not found",
	"aucun résultat",
	"keine ergebnisse",
	"no se encontraron resultados",
	"sin resultados",
	"nenhum resultado",
}

func hasNoResults(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range noResultsPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
