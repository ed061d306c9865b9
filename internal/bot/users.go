package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"rentadmin/internal/api"
	"rentadmin/internal/form"
	"rentadmin/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const roleFilterAll = "all"

func (b *Bot) handleUsersCallback(ctx context.Context, chatID int64, messageID int, args []string) {
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
		b.showUsersList(ctx, chatID, page, session.usersRole)
	case "page":
		page, _ := strconv.Atoi(arg)
		session.usersPage = page
		b.showUsersPage(chatID, messageID, page, session.usersRole)
	case "role":
		session.usersRole = arg
		session.usersPage = 0
		b.showUsersPage(chatID, messageID, 0, arg)
	case "view":
		id, _ := strconv.ParseInt(arg, 10, 64)
		b.showUserDetail(ctx, chatID, id)
	case "add":
		b.startForm(ctx, chatID, formAddUser, form.AddUser, nil, 0)
	case "edit":
		id, _ := strconv.ParseInt(arg, 10, 64)
		b.startEditUserForm(ctx, chatID, id)
	case "del":
		id, _ := strconv.ParseInt(arg, 10, 64)
		b.confirmDelete(chatID, fmt.Sprintf("Delete user #%d?", id), fmt.Sprintf("users:delok:%d", id), "users:page:0")
	case "delok":
		id, _ := strconv.ParseInt(arg, 10, 64)
		b.deleteUser(ctx, chatID, id)
	}
}

func (b *Bot) showUsersList(ctx context.Context, chatID int64, page int, role string) {
	snapshot := b.stores.Users.Snapshot()
	if len(snapshot.Items) == 0 && !snapshot.Loading {
		if err := b.stores.Users.FetchAll(ctx); err != nil {
			b.toastError(chatID, "Failed to fetch users")
			return
		}
	}

	session := b.sessions.get(chatID)
	session.usersPage = page
	session.usersRole = role
	b.showUsersPage(chatID, 0, page, role)
}

func (b *Bot) showUsersPage(chatID int64, messageID, page int, role string) {
	snapshot := b.stores.Users.Snapshot()

	users := snapshot.Items
	if role != roleFilterAll && role != "" {
		filtered := make([]models.User, 0, len(users))
		for _, u := range users {
			if u.Role == role {
				filtered = append(filtered, u)
			}
		}
		users = filtered
	}
	sortUsersNewest(users)

	title := "👤 *Users*"
	if role != roleFilterAll && role != "" {
		title = fmt.Sprintf("👤 *Users* (%s)", role)
	}
	if snapshot.Err != "" {
		title += "\n⚠️ " + snapshot.Err
	}

	b.renderPaginatedList(paginationParams{
		ChatID:     chatID,
		MessageID:  messageID,
		Page:       page,
		Title:      title,
		PagePrefix: "users:page:",
	}, len(users), func(startIdx, endIdx int) (string, [][]tgbotapi.InlineKeyboardButton) {
		var content strings.Builder
		var keyboard [][]tgbotapi.InlineKeyboardButton

		for _, u := range users[startIdx:endIdx] {
			content.WriteString(fmt.Sprintf("%s *%s* — %s\n", roleEmoji(u.Role), u.Name, u.Email))
			keyboard = append(keyboard, []tgbotapi.InlineKeyboardButton{
				tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("%s #%d", u.Name, u.ID),
					fmt.Sprintf("users:view:%d", u.ID),
				),
			})
		}

		keyboard = append(keyboard, roleFilterRow(role))
		keyboard = append(keyboard, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("➕ Add user", "users:add"),
		})
		return content.String(), keyboard
	})
}

func roleFilterRow(active string) []tgbotapi.InlineKeyboardButton {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(models.UserRoles)+1)
	for _, role := range append([]string{roleFilterAll}, models.UserRoles...) {
		label := role
		if role == active || (active == "" && role == roleFilterAll) {
			label = "• " + role
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, "users:role:"+role))
	}
	return row
}

func (b *Bot) showUserDetail(ctx context.Context, chatID, id int64) {
	user, err := b.stores.Users.FetchOne(ctx, id)
	if api.IsNotFound(err) {
		b.sendMessage(chatID, fmt.Sprintf("User #%d no longer exists.", id))
		return
	}
	if err != nil {
		b.toastError(chatID, "Failed to fetch user")
		return
	}

	var text strings.Builder
	text.WriteString(fmt.Sprintf("%s *%s*\n\n", roleEmoji(user.Role), user.Name))
	text.WriteString(fmt.Sprintf("ID: %d\n", user.ID))
	text.WriteString(fmt.Sprintf("Email: %s\n", orDash(user.Email)))
	text.WriteString(fmt.Sprintf("Phone: %s\n", orDash(user.Phone)))
	text.WriteString(fmt.Sprintf("Role: %s\n", user.Role))
	if user.ProfileImage != "" {
		text.WriteString(fmt.Sprintf("Photo: %s\n", user.ProfileImage))
	}
	if user.IntroVideo != "" {
		text.WriteString(fmt.Sprintf("Video: %s\n", user.IntroVideo))
	}

	msg := tgbotapi.NewMessage(chatID, text.String())
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Edit", fmt.Sprintf("users:edit:%d", id)),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Delete", fmt.Sprintf("users:del:%d", id)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Back to users", "users:page:0"),
		),
	)
	b.send(msg)
}

func (b *Bot) startEditUserForm(ctx context.Context, chatID, id int64) {
	user, err := b.stores.Users.FetchOne(ctx, id)
	if err != nil {
		b.toastError(chatID, "Failed to fetch user")
		return
	}

	initial := map[string]string{
		"name":  user.Name,
		"email": user.Email,
		"phone": user.Phone,
		"role":  user.Role,
	}
	b.startForm(ctx, chatID, formEditUser, form.EditUser, initial, id)
}

func (b *Bot) deleteUser(ctx context.Context, chatID, id int64) {
	if err := b.stores.Users.Remove(ctx, id); err != nil {
		b.toastError(chatID, "Failed to delete user")
		return
	}
	b.toastSuccess(chatID, fmt.Sprintf("User #%d deleted", id))
	session := b.sessions.get(chatID)
	b.showUsersPage(chatID, 0, session.usersPage, session.usersRole)
}

// confirmDelete shows a yes/no dialog. Nothing happens until the
// operator hits the confirm button.
func (b *Bot) confirmDelete(chatID int64, question, confirmData, backData string) {
	msg := tgbotapi.NewMessage(chatID, question)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Yes, delete", confirmData),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", backData),
		),
	)
	b.send(msg)
}
