package telegram

import (
	"context"
	"errors"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/kitbuilder587/boolsearch/internal/domain"
)

const (
	messageLimit  = 4096 // лимит телеграма
	runsPageLimit = 10
)

type Handler struct {
	bot *Bot
}

func NewHandler(bot *Bot) *Handler {
	return &Handler{bot: bot}
}

func (h *Handler) HandleMessage(ctx context.Context, msg *tgbotapi.Message) {
	h.bot.logger.Info("received message",
		zap.Int64("user_id", msg.From.ID),
		zap.String("username", msg.From.UserName),
		zap.Bool("is_command", msg.IsCommand()),
	)

	if msg.IsCommand() {
		h.handleCommand(ctx, msg)
	} else {
		h.handleCheck(ctx, msg)
	}
}

func (h *Handler) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start", "help":
		h.handleHelp(ctx, msg)
	case "check":
		h.handleCheck(ctx, msg)
	case "runs":
		h.handleRuns(ctx, msg)
	default:
		h.bot.Send(msg.Chat.ID, "Comando sconosciuto. Usa /help per l'elenco dei comandi.")
	}
}

func (h *Handler) handleHelp(ctx context.Context, msg *tgbotapi.Message) {
	helpText := `<b>Comandi disponibili:</b>

/check dominio titolo - Cerca l'articolo sul dominio
/runs [progetto] - Ultime ricerche salvate
/help - Mostra questo aiuto

<b>Come usare:</b>
Invia dominio e titolo dell'articolo, ad esempio:
<code>example.it Titolo dell'articolo</code>`

	h.bot.Send(msg.Chat.ID, helpText)
}

func (h *Handler) handleCheck(ctx context.Context, msg *tgbotapi.Message) {
	if !h.allow(msg) {
		return
	}

	domainName, article, ok := ParseCheckArgs(msg.Text)
	if !ok {
		h.bot.Send(msg.Chat.ID, "Uso: /check dominio titolo dell'articolo\nEsempio: /check example.it Privacy Policy")
		return
	}

	h.bot.SendTyping(msg.Chat.ID)

	req := &domain.SearchRequest{Domain: domainName, Query: article}
	res, err := h.bot.searchService.Search(ctx, req)
	if err != nil {
		h.bot.logger.Warn("check failed",
			zap.Error(err),
			zap.Int64("user_id", msg.From.ID),
		)
		h.bot.Send(msg.Chat.ID, mapErrorToMessage(err))
		return
	}

	h.bot.logger.Info("check completed",
		zap.Int64("user_id", msg.From.ID),
		zap.String("domain", req.Domain),
		zap.String("outcome", res.Outcome.String()),
	)

	h.sendLong(msg.Chat.ID, FormatSearchResult(req.Domain, req.Query, res))
}

func (h *Handler) handleRuns(ctx context.Context, msg *tgbotapi.Message) {
	if !h.allow(msg) {
		return
	}

	filter := domain.RunFilter{
		Project: ParseRunsArgs(msg.CommandArguments()),
		Limit:   runsPageLimit,
	}
	runs, total, err := h.bot.runService.List(ctx, filter)
	if err != nil {
		h.bot.logger.Error("failed to list runs", zap.Error(err))
		h.bot.Send(msg.Chat.ID, mapErrorToMessage(err))
		return
	}

	if len(runs) == 0 {
		h.bot.Send(msg.Chat.ID, "Nessuna ricerca salvata.")
		return
	}

	h.sendLong(msg.Chat.ID, FormatRunsList(runs, total))
}

func (h *Handler) allow(msg *tgbotapi.Message) bool {
	key := rateLimitKey(msg.From.ID)
	if h.bot.rateLimiter.Allow(key) {
		return true
	}

	h.bot.logger.Warn("rate limit exceeded",
		zap.Int64("user_id", msg.From.ID),
		zap.Time("reset_at", h.bot.rateLimiter.ResetTime(key)),
	)
	h.bot.RecordRateLimitHit()
	h.bot.Send(msg.Chat.ID, "Troppe richieste. Attendi un minuto.")
	return false
}

// tg:<id>, чтобы ключи не пересекались с IP из HTTP
func rateLimitKey(userID int64) string {
	return "tg:" + strconv.FormatInt(userID, 10)
}

func (h *Handler) sendLong(chatID int64, text string) {
	for _, m := range SplitMessage(text, messageLimit) {
		if err := h.bot.Send(chatID, m); err != nil {
			h.bot.logger.Error("failed to send message", zap.Error(err))
		}
	}
}

func mapErrorToMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyDomain), errors.Is(err, domain.ErrEmptyQuery):
		return "Dominio e query sono richiesti"
	case errors.Is(err, domain.ErrInvalidDomain):
		return "Dominio non valido."
	case errors.Is(err, domain.ErrQueryTooLong):
		return "Titolo troppo lungo."
	case errors.Is(err, domain.ErrProviderNotConfigured):
		return domain.NotConfiguredMessage
	case errors.Is(err, domain.ErrStorageDisabled):
		return "Archivio ricerche non configurato."
	case errors.Is(err, domain.ErrRunNotFound):
		return "Ricerca non trovata."
	default:
		return "Si è verificato un errore. Riprova più tardi."
	}
}
