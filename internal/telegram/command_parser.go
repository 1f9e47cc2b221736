package telegram

import (
	"strings"
)

// ParseCheckArgs: первое слово - домен, остальное - заголовок статьи.
// "/check example.it Titolo articolo" и просто "example.it Titolo articolo" равнозначны.
func ParseCheckArgs(text string) (domainName, article string, ok bool) {
	fields := strings.Fields(text)
	// команда отделяется от аргументов любым пробельным символом, в том числе переводом строки
	if len(fields) > 0 && strings.HasPrefix(fields[0], "/") {
		fields = fields[1:]
	}
	if len(fields) < 2 {
		return "", "", false
	}

	article = strings.Join(fields[1:], " ")
	article = strings.Trim(article, `"«»“”`)
	article = normalizeSpaces(article)
	if article == "" {
		return "", "", false
	}

	return fields[0], article, true
}

// ParseRunsArgs - необязательное имя проекта для /runs.
func ParseRunsArgs(args string) string {
	return normalizeSpaces(args)
}

func normalizeSpaces(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
