package domain

import (
	"strings"
	"unicode/utf8"
)

// Эвристики не подбирались, сохранены как есть для совместимости.
const (
	substringScore = 0.8
	minTokenLength = 3
)

// Similarity - дешевая лексическая близость заголовка кандидата к запросу, в [0, 1].
func Similarity(candidate, query string) float64 {
	a := strings.ToLower(strings.TrimSpace(candidate))
	b := strings.ToLower(strings.TrimSpace(query))

	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return substringScore
	}

	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)

	matches := 0
	for _, wa := range wordsA {
		if utf8.RuneCountInString(wa) <= minTokenLength {
			continue
		}
		for _, wb := range wordsB {
			if wa == wb {
				matches++
			}
		}
	}

	score := float64(matches) / float64(max(len(wordsA), len(wordsB)))
	// повторяющиеся слова могут дать больше пар, чем слов
	return min(score, 1.0)
}
