package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"rentadmin/internal/form"
	"rentadmin/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleBookingsCallback(ctx context.Context, chatID int64, messageID int, args []string) {
	if len(args) == 0 {
		return
	}
	arg := ""
	if len(args) > 1 {
		arg = args[1]
	}

	session := b.sessions.get(chatID)

	switch args[0] {
	case "list":
		page, _ := strconv.Atoi(arg)
		b.showBookingsList(ctx, chatID, page)
	case "page":
		page, _ := strconv.Atoi(arg)
		session.bookPage = page
		b.showBookingsPage(chatID, messageID, page)
	case "add":
		b.startForm(ctx, chatID, formAddBooking, form.AddBooking, nil, 0)
	case "confirm":
		id, _ := strconv.ParseInt(arg, 10, 64)
		b.setBookingStatus(ctx, chatID, id, models.StatusConfirmed)
	case "cancel":
		id, _ := strconv.ParseInt(arg, 10, 64)
		b.setBookingStatus(ctx, chatID, id, models.StatusCancelled)
	case "del":
		id, _ := strconv.ParseInt(arg, 10, 64)
		b.confirmDelete(chatID, fmt.Sprintf("Delete booking #%d?", id), fmt.Sprintf("bookings:delok:%d", id), "bookings:page:0")
	case "delok":
		id, _ := strconv.ParseInt(arg, 10, 64)
		b.deleteBooking(ctx, chatID, id)
	}
}

func (b *Bot) showBookingsList(ctx context.Context, chatID int64, page int) {
	snapshot := b.stores.Bookings.Snapshot()
	if len(snapshot.Items) == 0 && !snapshot.Loading {
		if err := b.stores.Bookings.FetchAll(ctx); err != nil {
			b.toastError(chatID, "Failed to fetch bookings")
			return
		}
	}

	b.sessions.get(chatID).bookPage = page
	b.showBookingsPage(chatID, 0, page)
}

func (b *Bot) showBookingsPage(chatID int64, messageID, page int) {
	snapshot := b.stores.Bookings.Snapshot()
	bookings := snapshot.Items
	sortBookingsNewest(bookings)

	title := "📅 *Bookings*"
	if snapshot.Err != "" {
		title += "\n⚠️ " + snapshot.Err
	}

	b.renderPaginatedList(paginationParams{
		ChatID:     chatID,
		MessageID:  messageID,
		Page:       page,
		Title:      title,
		PagePrefix: "bookings:page:",
	}, len(bookings), func(startIdx, endIdx int) (string, [][]tgbotapi.InlineKeyboardButton) {
		var content strings.Builder
		var keyboard [][]tgbotapi.InlineKeyboardButton

		for _, booking := range bookings[startIdx:endIdx] {
			content.WriteString(fmt.Sprintf(
				"%s *#%d %s*\n%s → %s · %s · $%s\n\n",
				statusEmoji(booking.Status), booking.ID, orDash(booking.Property.Name),
				booking.StartDate, booking.EndDate, orDash(booking.User.Name),
				formatPrice(booking.TotalPrice),
			))

			row := []tgbotapi.InlineKeyboardButton{}
			if booking.Status != models.StatusConfirmed {
				row = append(row, tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("✅ Confirm #%d", booking.ID),
					fmt.Sprintf("bookings:confirm:%d", booking.ID),
				))
			}
			if booking.Status != models.StatusCancelled {
				row = append(row, tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("❌ Cancel #%d", booking.ID),
					fmt.Sprintf("bookings:cancel:%d", booking.ID),
				))
			}
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("🗑 #%d", booking.ID),
				fmt.Sprintf("bookings:del:%d", booking.ID),
			))
			keyboard = append(keyboard, row)
		}

		keyboard = append(keyboard, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("➕ Add booking", "bookings:add"),
		})
		return content.String(), keyboard
	})
}

func (b *Bot) setBookingStatus(ctx context.Context, chatID, id int64, status string) {
	if _, err := b.stores.Bookings.UpdateStatus(ctx, id, status); err != nil {
		b.toastError(chatID, fmt.Sprintf("Failed to update booking #%d", id))
		return
	}
	b.toastSuccess(chatID, fmt.Sprintf("Booking #%d %s", id, status))
	b.showBookingsPage(chatID, 0, b.sessions.get(chatID).bookPage)
}

func (b *Bot) deleteBooking(ctx context.Context, chatID, id int64) {
	if err := b.stores.Bookings.Remove(ctx, id); err != nil {
		b.toastError(chatID, "Failed to delete booking")
		return
	}
	b.toastSuccess(chatID, fmt.Sprintf("Booking #%d deleted", id))
	b.showBookingsPage(chatID, 0, b.sessions.get(chatID).bookPage)
}
