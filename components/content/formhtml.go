package content

import (
	"fmt"
	"html"
	"strings"
)

// FormRenderer turns a Form into an HTML fragment. Inputs are named after
// their dotted path so the admin handlers can map submissions straight back
// into path edits.
type FormRenderer struct {
	// UploadURL, when set, enables the file picker on image controls.
	UploadURL string
}

// RenderForm renders every field of the form in order.
func (r FormRenderer) RenderForm(form Form) string {
	var b strings.Builder
	b.WriteString(`<div class="editor-form" data-section="` + html.EscapeString(form.Section) + `">`)
	for _, f := range form.Fields {
		r.renderField(&b, f, 0)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// RenderInvalid replaces the form when a section's stored content cannot be
// edited as a document.
func (r FormRenderer) RenderInvalid(section string) string {
	return `<div class="editor-form form-error" data-section="` + html.EscapeString(section) +
		`">Invalid data: this section does not hold an editable document.</div>`
}

func (r FormRenderer) renderField(b *strings.Builder, f Field, depth int) {
	switch f.Kind {
	case FieldText:
		r.renderLabel(b, f)
		fmt.Fprintf(b, `<input type="text" name="%s" value="%s">`,
			attr(f.Path.String()), attr(f.Value.Text()))
	case FieldLongText:
		r.renderLabel(b, f)
		fmt.Fprintf(b, `<textarea name="%s" rows="4">%s</textarea>`,
			attr(f.Path.String()), html.EscapeString(f.Value.Text()))
	case FieldImage:
		r.renderImage(b, f)
	case FieldCTA:
		r.renderCTA(b, f)
	case FieldArray:
		r.renderArray(b, f, depth)
	case FieldGroup:
		r.renderGroup(b, f, depth)
	}
}

func (r FormRenderer) renderLabel(b *strings.Builder, f Field) {
	fmt.Fprintf(b, `<label for="%s">%s</label>`, attr(f.Path.String()), html.EscapeString(f.Label))
}

// renderImage emits a URL input, a live preview when the URL is non-empty,
// and a file picker when an upload endpoint is configured.
func (r FormRenderer) renderImage(b *strings.Builder, f Field) {
	r.renderLabel(b, f)
	b.WriteString(`<div class="image-control">`)
	url := f.Value.Text()
	fmt.Fprintf(b, `<input type="text" name="%s" value="%s" placeholder="https://...">`,
		attr(f.Path.String()), attr(url))
	if url != "" {
		fmt.Fprintf(b, `<img class="image-preview" src="%s" alt="">`, attr(url))
	}
	if r.UploadURL != "" {
		fmt.Fprintf(b, `<input type="file" accept="image/*" data-upload-url="%s" data-target="%s">`,
			attr(r.UploadURL), attr(f.Path.String()))
	}
	b.WriteString(`</div>`)
}

// renderCTA emits a grouped pair: button label and destination URL.
func (r FormRenderer) renderCTA(b *strings.Builder, f Field) {
	b.WriteString(`<fieldset class="cta-control">`)
	fmt.Fprintf(b, `<legend>%s</legend>`, html.EscapeString(f.Label))
	fmt.Fprintf(b, `<input type="text" name="%s" value="%s" placeholder="Button text">`,
		attr(f.Path.String()), attr(f.Value.Text()))
	fmt.Fprintf(b, `<input type="text" name="%s" value="%s" placeholder="URL">`,
		attr(f.URLPath.String()), attr(f.URLValue.Text()))
	b.WriteString(`</fieldset>`)
}

func (r FormRenderer) renderArray(b *strings.Builder, f Field, depth int) {
	fmt.Fprintf(b, `<div class="array-control" data-path="%s">`, attr(f.Path.String()))
	fmt.Fprintf(b, `<h4>%s</h4>`, html.EscapeString(f.Label))
	for _, item := range f.Items {
		fmt.Fprintf(b, `<div class="array-item" data-id="%s">`, attr(item.ID))
		fmt.Fprintf(b, `<button type="button" class="remove-item" data-path="%s">Remove</button>`,
			attr(item.Path.String()))
		if item.Scalar {
			fmt.Fprintf(b, `<input type="text" name="%s" value="%s">`,
				attr(item.Path.String()), attr(item.Value.Text()))
		} else {
			for _, sub := range item.Fields {
				r.renderField(b, sub, depth+1)
			}
		}
		b.WriteString(`</div>`)
	}
	fmt.Fprintf(b, `<button type="button" class="add-item" data-path="%s">Add Item</button>`,
		attr(f.Path.String()))
	b.WriteString(`</div>`)
}

func (r FormRenderer) renderGroup(b *strings.Builder, f Field, depth int) {
	fmt.Fprintf(b, `<fieldset class="group-control"><legend>%s</legend>`, html.EscapeString(f.Label))
	for _, sub := range f.Fields {
		r.renderField(b, sub, depth+1)
	}
	b.WriteString(`</fieldset>`)
}

// attr escapes a string for use inside a double-quoted HTML attribute.
func attr(s string) string { return html.EscapeString(s) }
