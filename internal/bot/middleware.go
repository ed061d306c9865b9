package bot

import (
	"sync"

	"golang.org/x/time/rate"
)

var limiters sync.Map // map[int64]*rate.Limiter

func (b *Bot) withRecovery(handler func()) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().Interface("panic", r).Msg("Recovered from panic in update handler")
		}
	}()
	handler()
}

func (b *Bot) isAdmin(chatID int64) bool {
	return b.adminSet[chatID]
}

// allowMessage enforces the per-chat message budget.
func (b *Bot) allowMessage(chatID int64) bool {
	if b.config.Bot.RateLimitMessages <= 0 {
		return true
	}

	if v, ok := limiters.Load(chatID); ok {
		return v.(*rate.Limiter).Allow()
	}

	window := b.config.Bot.RateLimitWindow
	if window <= 0 {
		window = 60
	}
	perSecond := float64(b.config.Bot.RateLimitMessages) / float64(window)
	lim := rate.NewLimiter(rate.Limit(perSecond), b.config.Bot.RateLimitMessages)

	actual, loaded := limiters.LoadOrStore(chatID, lim)
	if loaded {
		return actual.(*rate.Limiter).Allow()
	}
	return lim.Allow()
}
