package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// Form accumulates a multipart/form-data request body: scalar fields as
// strings, uploads as file parts. It is built once and sent once.
type Form struct {
	buf    bytes.Buffer
	writer *multipart.Writer
	err    error
	closed bool
}

func NewForm() *Form {
	f := &Form{}
	f.writer = multipart.NewWriter(&f.buf)
	return f
}

// AddField appends a scalar field.
func (f *Form) AddField(name, value string) {
	if f.err != nil || f.closed {
		return
	}
	f.err = f.writer.WriteField(name, value)
}

// AddFile appends a file part with an explicit content type.
func (f *Form) AddFile(name, filename, contentType string, data []byte) {
	if f.err != nil || f.closed {
		return
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, escapeQuotes(name), escapeQuotes(filename)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := f.writer.CreatePart(header)
	if err != nil {
		f.err = err
		return
	}
	_, f.err = part.Write(data)
}

// AddIndexedFile appends a file part under "<name>[<index>]", the
// backend's convention for image arrays.
func (f *Form) AddIndexedFile(name string, index int, filename, contentType string, data []byte) {
	f.AddFile(fmt.Sprintf("%s[%d]", name, index), filename, contentType, data)
}

// Encode finalizes the body and returns it with its content type.
func (f *Form) Encode() (io.Reader, string, error) {
	if !f.closed {
		if closeErr := f.writer.Close(); closeErr != nil && f.err == nil {
			f.err = closeErr
		}
		f.closed = true
	}
	if f.err != nil {
		return nil, "", f.err
	}
	return bytes.NewReader(f.buf.Bytes()), f.writer.FormDataContentType(), nil
}

func escapeQuotes(s string) string {
	return strings.NewReplacer("\\", "\\\\", `"`, "\\\"").Replace(s)
}
