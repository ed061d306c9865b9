package bot

import (
	"encoding/json"
	"fmt"

	"rentadmin/internal/events"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.tg.Send(msg); err != nil {
		b.logger.Error().Err(err).Msg("Failed to send message")
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	b.send(msg)
}

// Toasts are transient one-line status messages, success and failure
// variants only.

func (b *Bot) toastSuccess(chatID int64, text string) {
	b.sendMessage(chatID, "✅ "+text)
}

func (b *Bot) toastError(chatID int64, text string) {
	b.sendMessage(chatID, "⚠️ "+text)
}

// subscribeNotifications forwards domain events to every admin chat so
// operators see changes regardless of who made them.
func (b *Bot) subscribeNotifications() {
	notify := func(render func(p events.EntityEventPayload) string) events.EventHandler {
		return func(event *events.Event) error {
			var payload events.EntityEventPayload
			if err := json.Unmarshal(event.Payload, &payload); err != nil {
				return err
			}
			text := render(payload)
			for adminID := range b.adminSet {
				b.sendMessage(adminID, text)
			}
			return nil
		}
	}

	b.eventBus.Subscribe(events.EventBookingCreated, notify(func(p events.EntityEventPayload) string {
		return fmt.Sprintf("🔔 New booking #%d for %s (%s)", p.EntityID, orDash(p.Name), p.Status)
	}))
	b.eventBus.Subscribe(events.EventBookingStatusChanged, notify(func(p events.EntityEventPayload) string {
		return fmt.Sprintf("🔔 Booking #%d is now %s %s", p.EntityID, p.Status, statusEmoji(p.Status))
	}))
	b.eventBus.Subscribe(events.EventUserCreated, notify(func(p events.EntityEventPayload) string {
		return fmt.Sprintf("🔔 New user #%d: %s", p.EntityID, orDash(p.Name))
	}))
	b.eventBus.Subscribe(events.EventPropertyCreated, notify(func(p events.EntityEventPayload) string {
		return fmt.Sprintf("🔔 New property #%d: %s", p.EntityID, orDash(p.Name))
	}))
}
