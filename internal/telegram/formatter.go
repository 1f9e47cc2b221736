package telegram

import (
	"fmt"
	"html"
	"strings"

	"github.com/kitbuilder587/boolsearch/internal/domain"
)

const dateLayout = "02/01/2006 15:04"

func FormatSearchResult(domainName, article string, res domain.SearchResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<b>%s</b>\n%s\n\n",
		html.EscapeString(domainName),
		html.EscapeString(article),
	))

	switch res.Outcome {
	case domain.OutcomeFound:
		escapedURL := html.EscapeString(res.URL)
		sb.WriteString(fmt.Sprintf("%s %s\n<a href=\"%s\">%s</a>",
			outcomeIcon(res.Outcome),
			html.EscapeString(res.Title),
			escapedURL,
			html.EscapeString(truncateURL(res.URL, 60)),
		))
		if res.Description != "" {
			sb.WriteString("\n\n<i>" + html.EscapeString(res.Description) + "</i>")
		}
	default:
		sb.WriteString(fmt.Sprintf("%s %s", outcomeIcon(res.Outcome), html.EscapeString(res.Error)))
	}

	return sb.String()
}

func FormatRunsList(runs []domain.RunSummary, total int) string {
	var sb strings.Builder
	sb.WriteString("<b>Ultime ricerche:</b>\n\n")

	for i, r := range runs {
		project := r.Project
		if project == "" {
			project = "senza progetto"
		}
		sb.WriteString(fmt.Sprintf("%d. %s [%s]\n   %s %d  %s %d  %s %d\n   <code>%s</code>\n\n",
			i+1,
			html.EscapeString(project),
			r.CreatedAt.Format(dateLayout),
			outcomeIcon(domain.OutcomeFound), r.Stats.Found,
			outcomeIcon(domain.OutcomeNotFound), r.Stats.NotFound,
			outcomeIcon(domain.OutcomeFailed), r.Stats.Failed,
			html.EscapeString(r.ID),
		))
	}

	sb.WriteString(fmt.Sprintf("Totale: %d", total))
	return sb.String()
}

func SplitMessage(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var messages []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			messages = append(messages, text)
			break
		}

		splitPoint := findSafeSplitPoint(text, maxLen)
		if splitPoint <= 0 || splitPoint > len(text) {
			splitPoint = maxLen
		}

		messages = append(messages, text[:splitPoint])
		text = text[splitPoint:]
	}

	return messages
}

func findSafeSplitPoint(text string, maxLen int) int {
	// ищем пробел или перевод строки, не ломая HTML-теги
	for i := maxLen - 1; i > maxLen/2; i-- {
		if i >= len(text) {
			continue
		}
		if isInsideHTMLTag(text, i) {
			continue
		}

		if text[i] == '\n' || text[i] == ' ' {
			return i + 1
		}
	}

	// внутри тега - ищем конец
	if maxLen < len(text) && isInsideHTMLTag(text, maxLen) {
		for i := maxLen; i < len(text); i++ {
			if text[i] == '>' {
				for j := i + 1; j < len(text) && j < i+50; j++ {
					if text[j] == '\n' || text[j] == ' ' {
						return j + 1
					}
				}
				return i + 1
			}
		}
	}

	for i := maxLen - 1; i > 0; i-- {
		if text[i] == ' ' || text[i] == '\n' {
			return i + 1
		}
	}

	return maxLen
}

func isInsideHTMLTag(text string, pos int) bool {
	if pos >= len(text) || pos < 0 {
		return false
	}
	for i := pos; i >= 0; i-- {
		if text[i] == '>' {
			return false
		}
		if text[i] == '<' {
			return true
		}
	}
	return false
}

func outcomeIcon(o domain.Outcome) string {
	switch o {
	case domain.OutcomeFound:
		return "●"
	case domain.OutcomeNotFound:
		return "○"
	default:
		return "✕"
	}
}

func truncateURL(url string, maxLen int) string {
	if len(url) <= maxLen {
		return url
	}
	return url[:maxLen-3] + "..."
}
