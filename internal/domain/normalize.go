package domain

import "strings"

const (
	MaxDomainLength = 253

	quoteCutset = " \t\r\n\"'`"
)

// NormalizeDomain приводит домен/URL к ключу хоста: без схемы, www., пути, порта и хвостовых точек.
// Проход повторяется до неподвижной точки, поэтому NormalizeDomain(NormalizeDomain(x)) == NormalizeDomain(x).
func NormalizeDomain(raw string) string {
	s := raw
	for {
		next := normalizePass(s)
		if next == s {
			return s
		}
		s = next
	}
}

func normalizePass(s string) string {
	s = strings.Trim(s, quoteCutset)
	s = strings.ToLower(s)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "*.")
	s = strings.TrimPrefix(s, "www.")
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}
	// хвосты вида "example.it.*" остаются от свободного ввода
	s = strings.TrimRight(s, ".*")
	return s
}

// IsValidDomain - грубая проверка, что строка похожа на хост.
func IsValidDomain(d string) bool {
	if d == "" || len(d) > MaxDomainLength {
		return false
	}
	if !strings.Contains(d, ".") || strings.HasPrefix(d, ".") {
		return false
	}
	return !strings.ContainsAny(d, " \t\r\n\"'`*")
}

// MatchesDomain - точное совпадение или поддомен.
func MatchesDomain(host, d string) bool {
	return host == d || strings.HasSuffix(host, "."+d)
}
