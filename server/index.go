package server

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"musicapp/logger"
)

//go:embed templates/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

type indexPage struct {
	Title string
}

// IndexHandler renders the landing page. Its content is loaded by the
// browser from the JSON API.
func IndexHandler(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, indexPage{Title: "Home"}); err != nil {
		logger.Error("Failed to render index page", logger.ErrorField(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Error("Failed to write index page", logger.ErrorField(err))
	}
}
