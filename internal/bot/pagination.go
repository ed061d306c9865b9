package bot

import (
	"fmt"
	"strings"

	"rentadmin/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// pageWindow returns the visible page-number window around page: a
// contiguous range of at most models.PageWindowSize pages, clamped at
// both ends. Pages are zero-based internally, one-based on screen.
func pageWindow(page, totalPages int) (start, end int) {
	if totalPages <= 0 {
		return 0, 0
	}

	start = page - models.PageWindowSize/2
	if start < 0 {
		start = 0
	}
	end = start + models.PageWindowSize
	if end > totalPages {
		end = totalPages
		start = end - models.PageWindowSize
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

type paginationParams struct {
	ChatID     int64
	MessageID  int // 0 sends a new message, otherwise edits in place
	Page       int
	Title      string
	PagePrefix string // callback prefix; page index appended
}

// renderPaginatedList draws one page of a list plus its pagination
// controls: a window of page-number buttons and edge arrows.
func (b *Bot) renderPaginatedList(params paginationParams, totalCount int, renderer func(startIdx, endIdx int) (string, [][]tgbotapi.InlineKeyboardButton)) {
	itemsPerPage := b.config.Bot.PaginationSize
	if itemsPerPage <= 0 {
		itemsPerPage = models.DefaultPaginationSize
	}

	totalPages := (totalCount + itemsPerPage - 1) / itemsPerPage
	if params.Page >= totalPages && totalPages > 0 {
		params.Page = totalPages - 1
	}
	if params.Page < 0 {
		params.Page = 0
	}

	startIdx := params.Page * itemsPerPage
	endIdx := startIdx + itemsPerPage
	if endIdx > totalCount {
		endIdx = totalCount
	}

	content, keyboard := renderer(startIdx, endIdx)

	var message strings.Builder
	message.WriteString(fmt.Sprintf("%s\n\n", params.Title))
	if totalPages > 1 {
		message.WriteString(fmt.Sprintf("Page %d of %d\n\n", params.Page+1, totalPages))
	}
	if totalCount == 0 {
		message.WriteString("Nothing here yet.\n")
	}
	message.WriteString(content)

	if totalPages > 1 {
		winStart, winEnd := pageWindow(params.Page, totalPages)

		var pageButtons []tgbotapi.InlineKeyboardButton
		if winStart > 0 {
			pageButtons = append(pageButtons, tgbotapi.NewInlineKeyboardButtonData("⬅️", fmt.Sprintf("%s%d", params.PagePrefix, winStart-1)))
		}
		for p := winStart; p < winEnd; p++ {
			label := fmt.Sprintf("%d", p+1)
			if p == params.Page {
				label = fmt.Sprintf("·%d·", p+1)
			}
			pageButtons = append(pageButtons, tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s%d", params.PagePrefix, p)))
		}
		if winEnd < totalPages {
			pageButtons = append(pageButtons, tgbotapi.NewInlineKeyboardButtonData("➡️", fmt.Sprintf("%s%d", params.PagePrefix, winEnd)))
		}
		keyboard = append(keyboard, pageButtons)
	}

	keyboard = append(keyboard, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Back to menu", "menu"),
	})

	markup := tgbotapi.NewInlineKeyboardMarkup(keyboard...)

	if params.MessageID != 0 {
		editMsg := tgbotapi.NewEditMessageTextAndMarkup(params.ChatID, params.MessageID, message.String(), markup)
		editMsg.ParseMode = "Markdown"
		b.send(editMsg)
	} else {
		msg := tgbotapi.NewMessage(params.ChatID, message.String())
		msg.ReplyMarkup = markup
		msg.ParseMode = "Markdown"
		b.send(msg)
	}
}
