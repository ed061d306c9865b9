package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"rentadmin/internal/api"
	"rentadmin/internal/form"
	"rentadmin/internal/metrics"
	"rentadmin/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// startForm opens a schema-driven form in the chat and prompts the first
// field. Hidden fields are carried in the draft but never prompted.
func (b *Bot) startForm(ctx context.Context, chatID int64, purpose formPurpose, schema *form.Schema, initial map[string]string, targetID int64) {
	fields := make([]form.Field, 0, len(schema.Fields()))
	for _, f := range schema.Fields() {
		if f.Type != form.FieldHidden {
			fields = append(fields, f)
		}
	}

	session := b.sessions.get(chatID)
	session.form = &formSession{
		purpose:  purpose,
		draft:    form.NewDraft(schema, initial),
		fields:   fields,
		targetID: targetID,
	}

	b.sendMessage(chatID, "Answer each prompt in turn. /skip keeps the current value, /cancel discards the form.")
	b.promptCurrentField(ctx, chatID)
}

func (b *Bot) promptCurrentField(ctx context.Context, chatID int64) {
	session := b.sessions.get(chatID)
	s := session.form
	if s == nil {
		return
	}

	field, ok := s.current()
	if !ok {
		b.submitForm(ctx, chatID)
		return
	}

	switch field.Type {
	case form.FieldSelect:
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Choose %s:", field.Label))
		var rows [][]tgbotapi.InlineKeyboardButton
		for i, opt := range field.Options {
			label := opt.Label
			if opt.Value == s.draft.Value(field.Name) {
				label = "• " + label
			}
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("form:opt:%d", i)),
			))
		}
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
		b.send(msg)
	case form.FieldFile:
		prompt := fmt.Sprintf("Send %s as a photo or document, or /skip.", field.Label)
		if field.Name == "images" {
			prompt = "Send property images one by one; /skip when done."
		}
		if name := s.draft.FileName(field.Name); name != "" {
			prompt += fmt.Sprintf(" (current: %s)", name)
		}
		b.sendMessage(chatID, prompt)
	default:
		prompt := fmt.Sprintf("Enter %s:", field.Label)
		if v := s.draft.Value(field.Name); v != "" {
			prompt = fmt.Sprintf("Enter %s (current: %s, /skip to keep):", field.Label, v)
		}
		b.sendMessage(chatID, prompt)
	}
}

func (b *Bot) advanceForm(ctx context.Context, chatID int64) {
	session := b.sessions.get(chatID)
	if session.form == nil {
		return
	}
	session.form.idx++
	b.promptCurrentField(ctx, chatID)
}

func (b *Bot) handleFormInput(ctx context.Context, chatID int64, msg *tgbotapi.Message) {
	session := b.sessions.get(chatID)
	s := session.form
	if s == nil {
		return
	}
	field, ok := s.current()
	if !ok {
		return
	}

	if field.Type == form.FieldFile {
		b.handleFormFile(ctx, chatID, s, field, msg)
		return
	}

	// A file sent outside a file prompt is routed to its slot by media
	// type instead of being misread as text input.
	if hasAttachment(msg) {
		b.handleLooseUpload(ctx, chatID, s, msg)
		return
	}

	if err := s.draft.SetValue(field.Name, strings.TrimSpace(msg.Text)); err != nil {
		b.toastError(chatID, err.Error())
		b.promptCurrentField(ctx, chatID)
		return
	}
	b.advanceForm(ctx, chatID)
}

func (b *Bot) handleFormFile(ctx context.Context, chatID int64, s *formSession, field form.Field, msg *tgbotapi.Message) {
	upload, err := b.downloadUpload(ctx, msg)
	if err != nil {
		b.toastError(chatID, err.Error())
		b.promptCurrentField(ctx, chatID)
		return
	}

	if field.Name == "images" {
		err = s.draft.AppendFile(field.Name, upload, b.fileValidator())
	} else {
		err = s.draft.SetFile(field.Name, upload, b.fileValidator())
	}
	if err != nil {
		b.toastError(chatID, err.Error())
		b.promptCurrentField(ctx, chatID)
		return
	}

	if field.Name == "images" {
		b.sendMessage(chatID, fmt.Sprintf("Added %s. Send another image or /skip.", upload.FileName))
		return
	}
	b.advanceForm(ctx, chatID)
}

func (b *Bot) handleLooseUpload(ctx context.Context, chatID int64, s *formSession, msg *tgbotapi.Message) {
	upload, err := b.downloadUpload(ctx, msg)
	if err != nil {
		b.toastError(chatID, err.Error())
		b.promptCurrentField(ctx, chatID)
		return
	}

	slot, err := form.PlaceLooseUpload(s.draft, upload, b.fileValidator())
	if err != nil {
		b.toastError(chatID, err.Error())
		b.promptCurrentField(ctx, chatID)
		return
	}

	b.sendMessage(chatID, fmt.Sprintf("Saved %s as %s.", upload.FileName, slot))
	b.promptCurrentField(ctx, chatID)
}

func hasAttachment(msg *tgbotapi.Message) bool {
	return len(msg.Photo) > 0 || msg.Document != nil || msg.Video != nil
}

// handleFormSkip moves past the current field, keeping whatever value the
// draft already holds. Required fields are caught at submission.
func (b *Bot) handleFormSkip(ctx context.Context, chatID int64) {
	session := b.sessions.get(chatID)
	if session.form == nil {
		b.sendMessage(chatID, "No form is open.")
		return
	}
	b.advanceForm(ctx, chatID)
}

func (b *Bot) handleFormCallback(ctx context.Context, chatID int64, args []string) {
	session := b.sessions.get(chatID)
	s := session.form
	if s == nil || len(args) == 0 {
		return
	}

	switch args[0] {
	case "opt":
		field, ok := s.current()
		if !ok || field.Type != form.FieldSelect || len(args) < 2 {
			return
		}
		idx, err := strconv.Atoi(args[1])
		if err != nil || idx < 0 || idx >= len(field.Options) {
			return
		}
		if err := s.draft.SetValue(field.Name, field.Options[idx].Value); err != nil {
			b.toastError(chatID, err.Error())
			return
		}
		b.advanceForm(ctx, chatID)
	case "cancel":
		b.cancelForm(chatID)
	}
}

func (b *Bot) cancelForm(chatID int64) {
	session := b.sessions.get(chatID)
	if session.form == nil {
		b.sendMessage(chatID, "No form is open.")
		return
	}
	session.form = nil
	b.sendMessage(chatID, "Form discarded.")
	b.sendMainMenu(chatID)
}

func (b *Bot) submitForm(ctx context.Context, chatID int64) {
	session := b.sessions.get(chatID)
	s := session.form
	if s == nil {
		return
	}

	if err := s.draft.Validate(); err != nil {
		// The form stays open, repositioned at the first offending field.
		for _, f := range s.fields {
			if msg := s.draft.FieldError(f.Name); msg != "" {
				b.toastError(chatID, msg)
			}
		}
		s.idx = firstErrIdx(s)
		b.promptCurrentField(ctx, chatID)
		return
	}

	if !s.draft.BeginSubmit() {
		return
	}
	defer s.draft.EndSubmit()

	err := b.saveForm(ctx, s)
	if err != nil {
		metrics.IncFormSubmission(string(s.purpose), outcomeOf(err))
		if ve, ok := api.AsValidation(err); ok {
			for _, msg := range ve.FlatMessages() {
				b.toastError(chatID, msg)
			}
			s.idx = 0
			b.promptCurrentField(ctx, chatID)
			return
		}
		b.toastError(chatID, "Save failed, please try again.")
		b.promptCurrentField(ctx, chatID)
		return
	}

	metrics.IncFormSubmission(string(s.purpose), "success")
	session.form = nil
	b.toastSuccess(chatID, "Saved.")
	b.showAfterSave(ctx, chatID, s.purpose)
}

func firstErrIdx(s *formSession) int {
	for i, f := range s.fields {
		if s.draft.FieldError(f.Name) != "" {
			return i
		}
	}
	return s.idx
}

func outcomeOf(err error) string {
	if _, ok := api.AsValidation(err); ok {
		return "rejected"
	}
	return "error"
}

func (b *Bot) saveForm(ctx context.Context, s *formSession) error {
	switch s.purpose {
	case formAddUser:
		_, err := b.stores.Users.Create(ctx, form.BuildForm(s.draft))
		return err
	case formEditUser:
		_, err := b.stores.Users.Update(ctx, s.targetID, form.BuildForm(s.draft))
		return err
	case formAddProperty:
		f := form.BuildForm(s.draft)
		form.EnsureOwnerField(f, s.draft.Values())
		_, err := b.stores.Properties.Create(ctx, f)
		return err
	case formEditProperty:
		_, err := b.stores.Properties.Update(ctx, s.targetID, form.BuildForm(s.draft))
		return err
	case formAddBooking:
		_, err := b.stores.Bookings.Create(ctx, bookingRequestFrom(s.draft.Values()))
		return err
	default:
		return fmt.Errorf("unknown form purpose %q", s.purpose)
	}
}

// bookingRequestFrom maps draft values onto the JSON create body. Unset
// user and property references get client-local placeholders; a booking
// is never posted with zero references.
func bookingRequestFrom(values map[string]string) (req models.BookingRequest) {
	userID, propertyID := form.BookingRefs(values)
	req.Name = values["name"]
	req.Email = values["email"]
	req.Phone = values["phone"]
	req.Role = values["role"]
	req.UserID = userID
	req.PropertyID = propertyID
	req.PropertyName = values["property_name"]
	req.StartDate = values["start_date"]
	req.EndDate = values["end_date"]
	req.Status = values["status"]
	return req
}

func (b *Bot) showAfterSave(ctx context.Context, chatID int64, purpose formPurpose) {
	session := b.sessions.get(chatID)
	switch purpose {
	case formAddUser, formEditUser:
		_ = b.stores.Users.FetchAll(ctx)
		b.showUsersPage(chatID, 0, session.usersPage, session.usersRole)
	case formAddProperty, formEditProperty:
		_ = b.stores.Properties.FetchAll(ctx)
		b.showPropertiesPage(chatID, 0, session.propsPage)
	case formAddBooking:
		_ = b.stores.Bookings.FetchAll(ctx)
		b.showBookingsPage(chatID, 0, session.bookPage)
	}
}

// fileValidator enforces the size cap and per-slot media types.
func (b *Bot) fileValidator() form.FileValidator {
	maxBytes := b.config.Bot.MaxUploadBytes
	return func(upload form.Upload, fieldName string) error {
		if int64(len(upload.Data)) > maxBytes {
			return fmt.Errorf("file is too large (max %d MB)", maxBytes/(1024*1024))
		}
		switch fieldName {
		case "profile_image":
			if upload.ContentType != "image/jpeg" && upload.ContentType != "image/png" {
				return errors.New("profile image must be a JPEG or PNG")
			}
		case "intro_video":
			if upload.ContentType != "video/mp4" {
				return errors.New("intro video must be an MP4")
			}
		case "images":
			if !strings.HasPrefix(upload.ContentType, "image/") {
				return errors.New("property images must be image files")
			}
		}
		return nil
	}
}

// downloadUpload pulls the attached media off Telegram's file servers.
// Photos arrive as JPEG; documents and videos keep their declared type.
func (b *Bot) downloadUpload(ctx context.Context, msg *tgbotapi.Message) (form.Upload, error) {
	var fileID, fileName, contentType string

	switch {
	case len(msg.Photo) > 0:
		photo := msg.Photo[len(msg.Photo)-1]
		fileID = photo.FileID
		fileName = fmt.Sprintf("photo_%s.jpg", photo.FileUniqueID)
		contentType = "image/jpeg"
	case msg.Document != nil:
		fileID = msg.Document.FileID
		fileName = msg.Document.FileName
		contentType = msg.Document.MimeType
	case msg.Video != nil:
		fileID = msg.Video.FileID
		fileName = fmt.Sprintf("video_%s.mp4", msg.Video.FileUniqueID)
		contentType = "video/mp4"
	default:
		return form.Upload{}, errors.New("send a photo, document or video, or /skip")
	}

	url, err := b.tg.GetFileDirectURL(fileID)
	if err != nil {
		return form.Upload{}, fmt.Errorf("fetch file info: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return form.Upload{}, err
	}
	resp, err := b.files.Do(req)
	if err != nil {
		return form.Upload{}, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return form.Upload{}, fmt.Errorf("download file: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, b.config.Bot.MaxUploadBytes+1))
	if err != nil {
		return form.Upload{}, fmt.Errorf("read file: %w", err)
	}

	return form.Upload{FileName: fileName, ContentType: contentType, Data: data}, nil
}
