package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"rentadmin/internal/api"
	"rentadmin/internal/form"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handlePropertiesCallback(ctx context.Context, chatID int64, messageID int, args []string) {
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
		b.showPropertiesList(ctx, chatID, page)
	case "page":
		page, _ := strconv.Atoi(arg)
		session.propsPage = page
		b.showPropertiesPage(chatID, messageID, page)
	case "view":
		id, _ := strconv.ParseInt(arg, 10, 64)
		b.showPropertyDetail(ctx, chatID, id)
	case "add":
		b.startForm(ctx, chatID, formAddProperty, form.AddProperty, nil, 0)
	case "edit":
		id, _ := strconv.ParseInt(arg, 10, 64)
		b.startEditPropertyForm(ctx, chatID, id)
	case "del":
		id, _ := strconv.ParseInt(arg, 10, 64)
		b.confirmDelete(chatID, fmt.Sprintf("Delete property #%d?", id), fmt.Sprintf("props:delok:%d", id), "props:page:0")
	case "delok":
		id, _ := strconv.ParseInt(arg, 10, 64)
		b.deleteProperty(ctx, chatID, id)
	}
}

func (b *Bot) showPropertiesList(ctx context.Context, chatID int64, page int) {
	snapshot := b.stores.Properties.Snapshot()
	if len(snapshot.Items) == 0 && !snapshot.Loading {
		if err := b.stores.Properties.FetchAll(ctx); err != nil {
			b.toastError(chatID, "Failed to fetch properties")
			return
		}
	}

	b.sessions.get(chatID).propsPage = page
	b.showPropertiesPage(chatID, 0, page)
}

func (b *Bot) showPropertiesPage(chatID int64, messageID, page int) {
	snapshot := b.stores.Properties.Snapshot()
	properties := snapshot.Items
	sortPropertiesNewest(properties)

	title := "🏠 *Properties*"
	if snapshot.Err != "" {
		title += "\n⚠️ " + snapshot.Err
	}

	b.renderPaginatedList(paginationParams{
		ChatID:     chatID,
		MessageID:  messageID,
		Page:       page,
		Title:      title,
		PagePrefix: "props:page:",
	}, len(properties), func(startIdx, endIdx int) (string, [][]tgbotapi.InlineKeyboardButton) {
		var content strings.Builder
		var keyboard [][]tgbotapi.InlineKeyboardButton

		for _, p := range properties[startIdx:endIdx] {
			content.WriteString(fmt.Sprintf("🏠 *%s* — %s, $%s\n", p.Name, p.Location, formatPrice(p.Price)))
			keyboard = append(keyboard, []tgbotapi.InlineKeyboardButton{
				tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("%s #%d", p.Name, p.ID),
					fmt.Sprintf("props:view:%d", p.ID),
				),
			})
		}

		keyboard = append(keyboard, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("➕ Add property", "props:add"),
		})
		return content.String(), keyboard
	})
}

func (b *Bot) showPropertyDetail(ctx context.Context, chatID, id int64) {
	property, err := b.stores.Properties.FetchOne(ctx, id)
	if api.IsNotFound(err) {
		b.sendMessage(chatID, fmt.Sprintf("Property #%d no longer exists.", id))
		return
	}
	if err != nil {
		b.toastError(chatID, "Failed to fetch property")
		return
	}

	var text strings.Builder
	text.WriteString(fmt.Sprintf("🏠 *%s*\n\n", property.Name))
	text.WriteString(fmt.Sprintf("ID: %d\n", property.ID))
	if property.UserID != 0 {
		text.WriteString(fmt.Sprintf("Owner: #%d\n", property.UserID))
	}
	text.WriteString(fmt.Sprintf("Location: %s\n", orDash(property.Location)))
	text.WriteString(fmt.Sprintf("Price: $%s\n", formatPrice(property.Price)))
	text.WriteString(fmt.Sprintf("Description: %s\n", orDash(property.Description)))
	for i, img := range property.Images {
		text.WriteString(fmt.Sprintf("Image %d: %s\n", i+1, img))
	}

	msg := tgbotapi.NewMessage(chatID, text.String())
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Edit", fmt.Sprintf("props:edit:%d", id)),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Delete", fmt.Sprintf("props:del:%d", id)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Back to properties", "props:page:0"),
		),
	)
	b.send(msg)
}

func (b *Bot) startEditPropertyForm(ctx context.Context, chatID, id int64) {
	property, err := b.stores.Properties.FetchOne(ctx, id)
	if err != nil {
		b.toastError(chatID, "Failed to fetch property")
		return
	}

	initial := map[string]string{
		"name":     property.Name,
		"location": property.Location,
		"price":    formatPrice(property.Price),
	}
	b.startForm(ctx, chatID, formEditProperty, form.EditProperty, initial, id)
}

func (b *Bot) deleteProperty(ctx context.Context, chatID, id int64) {
	if err := b.stores.Properties.Remove(ctx, id); err != nil {
		b.toastError(chatID, "Failed to delete property")
		return
	}
	b.toastSuccess(chatID, fmt.Sprintf("Property #%d deleted", id))
	b.showPropertiesPage(chatID, 0, b.sessions.get(chatID).propsPage)
}
