// Package layout holds the page shell shared by every HTML page.
package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// FlashMessage is a one-shot notice carried across a redirect.
type FlashMessage struct {
	Type    string // "success", "error" or "info"
	Message string
}

// PageData is embedded in every page's data.
type PageData struct {
	Title string
	Flash *FlashMessage
}

// Page renders the document shell around body.
func Page(data PageData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>`+templ.EscapeString(title(data.Title))+`</title></head><body>`+
			`<header><nav><a href="/" class="brand">Pairings</a></nav></header><main>`); err != nil {
			return err
		}
		if err := Flash(data.Flash).Render(ctx, w); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// Flash renders the flash notice, or nothing.
func Flash(flash *FlashMessage) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if flash == nil || flash.Message == "" {
			return nil
		}
		_, err := io.WriteString(w, `<div class="flash flash-`+templ.EscapeString(flash.Type)+`" role="alert">`+
			templ.EscapeString(flash.Message)+`</div>`)
		return err
	})
}

func title(t string) string {
	if t == "" {
		return "Pairings"
	}
	return t + " - Pairings"
}
