package utils

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/go-playground/form/v4"
)

var formDecoder = form.NewDecoder()

// DecodeBody fills dst from a JSON body or from an urlencoded/multipart form,
// depending on the request Content-Type.
func DecodeBody(r *http.Request, dst any) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return err
		}
		return formDecoder.Decode(dst, r.PostForm)
	case "multipart/form-data":
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			return err
		}
		return formDecoder.Decode(dst, r.PostForm)
	default:
		return json.NewDecoder(r.Body).Decode(dst)
	}
}
