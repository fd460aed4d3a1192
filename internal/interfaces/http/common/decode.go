package common

import (
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/ajg/form"
	"github.com/go-chi/render"
)

// DecodeBody decodes a form-encoded, multipart or JSON request body into v.
// Anything that is not a form is treated as JSON. Unknown keys are ignored in both cases.
func DecodeBody(r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, MaxSurveyRequestBody)

	switch {
	case render.GetRequestContentType(r) == render.ContentTypeForm:
		if err := r.ParseForm(); err != nil {
			return err
		}
		return decodeFormValues(r.PostForm, v)
	case isMultipart(r):
		if err := r.ParseMultipartForm(MaxSurveyRequestBody); err != nil {
			return err
		}
		return decodeFormValues(r.PostForm, v)
	default:
		return render.DecodeJSON(io.LimitReader(r.Body, MaxSurveyRequestBody), v)
	}
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// decodeFormValues keeps the first value of each key.
func decodeFormValues(values url.Values, v any) error {
	first := make(url.Values, len(values))
	for key, vs := range values {
		if len(vs) > 0 {
			first.Set(key, vs[0])
		}
	}
	dec := form.NewDecoder(nil)
	dec.IgnoreUnknownKeys(true)
	return dec.DecodeValues(v, first)
}
