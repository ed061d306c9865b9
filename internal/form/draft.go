package form

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Upload is one selected file awaiting submission.
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// FileValidator is the caller-supplied guard invoked on every file
// selection; a non-nil error rejects the file before it enters the draft.
type FileValidator func(upload Upload, fieldName string) error

// Draft holds the in-progress, uncommitted edits of one open form. It is
// owned by the form flow for its lifetime and reset whenever fresh
// initial data is supplied.
type Draft struct {
	mu         sync.Mutex
	schema     *Schema
	values     map[string]string
	files      map[string][]Upload
	fileNames  map[string]string
	fieldErrs  map[string]string
	submitting bool
}

// NewDraft seeds a draft: non-nil initial data seeds every declared
// field, otherwise the schema defaults apply, so add and edit flows share
// one engine.
func NewDraft(schema *Schema, initial map[string]string) *Draft {
	d := &Draft{schema: schema}
	d.Reset(initial)
	return d
}

// Reset discards all edits and re-seeds.
func (d *Draft) Reset(initial map[string]string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.values = make(map[string]string, len(d.schema.fields))
	d.files = make(map[string][]Upload)
	d.fileNames = make(map[string]string)
	d.fieldErrs = make(map[string]string)
	d.submitting = false

	for _, f := range d.schema.fields {
		if initial != nil {
			d.values[f.Name] = initial[f.Name]
		} else {
			d.values[f.Name] = f.DefaultValue
		}
	}
}

// Schema returns the schema this draft interprets.
func (d *Draft) Schema() *Schema { return d.schema }

// SetValue updates one field and clears only that field's error.
func (d *Draft) SetValue(name, value string) error {
	field, ok := d.schema.Field(name)
	if !ok {
		return fmt.Errorf("unknown field %q", name)
	}
	if field.Type == FieldFile {
		return fmt.Errorf("field %q takes a file, not a value", name)
	}

	if field.Type == FieldSelect {
		valid := false
		for _, opt := range field.Options {
			if opt.Value == value {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("field %q: %q is not one of %s",
				name, value, strings.Join(field.OptionValues(), ", "))
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.values[name] = value
	delete(d.fieldErrs, name)
	return nil
}

// SetFile replaces the field's upload after the validator accepts it.
func (d *Draft) SetFile(name string, upload Upload, validate FileValidator) error {
	if err := d.checkFileField(name, upload, validate); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.files[name] = []Upload{upload}
	d.fileNames[name] = upload.FileName
	delete(d.fieldErrs, name)
	return nil
}

// AppendFile accumulates uploads on a field; used by image galleries
// where several new files join the already-persisted URLs.
func (d *Draft) AppendFile(name string, upload Upload, validate FileValidator) error {
	if err := d.checkFileField(name, upload, validate); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.files[name] = append(d.files[name], upload)
	d.fileNames[name] = upload.FileName
	delete(d.fieldErrs, name)
	return nil
}

func (d *Draft) checkFileField(name string, upload Upload, validate FileValidator) error {
	field, ok := d.schema.Field(name)
	if !ok {
		return fmt.Errorf("unknown field %q", name)
	}
	if field.Type != FieldFile {
		return fmt.Errorf("field %q does not take a file", name)
	}
	if validate != nil {
		if err := validate(upload, name); err != nil {
			return err
		}
	}
	return nil
}

// Value returns the current value of one field.
func (d *Draft) Value(name string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.values[name]
}

// Values returns a copy of the scalar draft state; untouched fields keep
// their seed, so the result is always a complete partial object.
func (d *Draft) Values() map[string]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]string, len(d.values))
	for k, v := range d.values {
		out[k] = v
	}
	return out
}

// Files returns the selected uploads per field.
func (d *Draft) Files() map[string][]Upload {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string][]Upload, len(d.files))
	for k, v := range d.files {
		out[k] = append([]Upload(nil), v...)
	}
	return out
}

// FileName returns the display name of the field's most recent upload.
func (d *Draft) FileName(name string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fileNames[name]
}

// FieldError returns the field's current validation message, if any.
func (d *Draft) FieldError(name string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fieldErrs[name]
}

// ErrMissingRequired reports a draft that failed required-field checks.
var ErrMissingRequired = errors.New("required fields missing")

// Validate enforces required fields before any network call. A required
// field passes with either a value or an upload.
func (d *Draft) Validate() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var missing []string
	for _, f := range d.schema.fields {
		if !f.Required {
			continue
		}
		if strings.TrimSpace(d.values[f.Name]) != "" || len(d.files[f.Name]) > 0 {
			continue
		}
		d.fieldErrs[f.Name] = f.Label + " is required"
		missing = append(missing, f.Label)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingRequired, strings.Join(missing, ", "))
	}
	return nil
}

// BeginSubmit marks the draft in flight; a second submission while one is
// pending is refused.
func (d *Draft) BeginSubmit() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.submitting {
		return false
	}
	d.submitting = true
	return true
}

// EndSubmit clears the in-flight flag after settlement.
func (d *Draft) EndSubmit() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.submitting = false
}

// Submitting reports whether a save is in flight.
func (d *Draft) Submitting() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.submitting
}
