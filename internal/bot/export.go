package bot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"rentadmin/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Sheet1"

func (b *Bot) exportUsers(ctx context.Context, chatID int64) {
	snapshot := b.stores.Users.Snapshot()
	if len(snapshot.Items) == 0 {
		if err := b.stores.Users.FetchAll(ctx); err != nil {
			b.toastError(chatID, "Failed to fetch users")
			return
		}
		snapshot = b.stores.Users.Snapshot()
	}

	users := snapshot.Items
	sortUsersNewest(users)

	path, err := b.writeUsersWorkbook(users)
	if err != nil {
		b.logger.Error().Err(err).Msg("export users failed")
		b.toastError(chatID, "Export failed")
		return
	}

	b.sendDocument(chatID, path, fmt.Sprintf("%d users", len(users)))
}

func (b *Bot) writeUsersWorkbook(users []models.User) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	headers := []string{"ID", "Name", "Email", "Phone", "Role", "Created"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, h)
	}

	for row, u := range users {
		values := []interface{}{u.ID, u.Name, u.Email, u.Phone, u.Role, u.CreatedAt}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(exportSheet, cell, v)
		}
	}

	return b.saveWorkbook(f, "users")
}

func (b *Bot) exportBookings(ctx context.Context, chatID int64) {
	snapshot := b.stores.Bookings.Snapshot()
	if len(snapshot.Items) == 0 {
		if err := b.stores.Bookings.FetchAll(ctx); err != nil {
			b.toastError(chatID, "Failed to fetch bookings")
			return
		}
		snapshot = b.stores.Bookings.Snapshot()
	}

	bookings := snapshot.Items
	sortBookingsNewest(bookings)

	path, err := b.writeBookingsWorkbook(bookings)
	if err != nil {
		b.logger.Error().Err(err).Msg("export bookings failed")
		b.toastError(chatID, "Export failed")
		return
	}

	b.sendDocument(chatID, path, fmt.Sprintf("%d bookings", len(bookings)))
}

func (b *Bot) writeBookingsWorkbook(bookings []models.Booking) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	headers := []string{"ID", "Property", "Client", "Email", "Start", "End", "Status", "Total", "Created"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, h)
	}

	for row, booking := range bookings {
		values := []interface{}{
			booking.ID, booking.Property.Name, booking.User.Name, booking.User.Email,
			booking.StartDate, booking.EndDate, booking.Status, booking.TotalPrice, booking.CreatedAt,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(exportSheet, cell, v)
		}
	}

	return b.saveWorkbook(f, "bookings")
}

func (b *Bot) saveWorkbook(f *excelize.File, prefix string) (string, error) {
	if err := os.MkdirAll(b.config.Exports.Path, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s.xlsx", prefix, time.Now().Format("20060102_150405"))
	path := filepath.Join(b.config.Exports.Path, name)
	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}

func (b *Bot) sendDocument(chatID int64, path, caption string) {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = caption
	b.send(doc)
}
