package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/render"
)

// representable is anything answered in the three negotiated forms.
type representable interface {
	PlainText(human bool) string
	HTML() string
}

// reply couples a representation with its JSON body.
type reply struct {
	representable
	json any
}

// human reports whether ?human=true asks for sentences.
func human(r *http.Request) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get("human"))
	return v
}

// respond writes v in the content type the client accepts: HTML, plain
// text, or a JSON envelope by default.
func respond(w http.ResponseWriter, r *http.Request, status int, v reply) {
	render.Status(r, status)

	switch render.GetAcceptedContentType(r) {
	case render.ContentTypeHTML:
		render.HTML(w, r, v.HTML())
	case render.ContentTypePlainText:
		render.PlainText(w, r, v.PlainText(human(r)))
	default:
		render.JSON(w, r, v.json)
	}
}

// respondError answers err with its mapped status.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := errorFor(err)
	if err := apiErr.Render(w, r); err != nil {
		http.Error(w, apiErr.Message, http.StatusInternalServerError)
		return
	}
	if apiErr.StatusCode == http.StatusTooManyRequests {
		w.Header().Set("Retry-After", "60")
	}
	respond(w, r, apiErr.StatusCode, reply{
		representable: apiErr,
		json:          ErrorResponse{Success: false, Error: apiErr.Message},
	})
}

// textFunc adapts a plain text producer without HTML form.
type textFunc func(human bool) string

func (f textFunc) PlainText(human bool) string { return f(human) }
func (f textFunc) HTML() string                { return f(false) }
