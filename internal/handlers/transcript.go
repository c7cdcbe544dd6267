package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"dashscribe/internal/contextutil"
	"dashscribe/internal/storage"
)

// TranscriptHandler serves the latest transcript of a video as an HTML page.
type TranscriptHandler struct {
	store    storage.QueryStore
	markdown goldmark.Markdown
	template *template.Template
}

// transcriptPageData holds template data for rendered transcript pages.
type transcriptPageData struct {
	Title    string
	Model    string
	RunID    string
	Segments int
	Content  template.HTML
}

var transcriptTemplate = template.Must(template.New("transcript").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}} transcript</title>
  <style>
    :root {
      color-scheme: dark;
    }
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 900px;
      line-height: 1.6;
      background: #0b1120;
      color: #e2e8f0;
    }
    header {
      margin-bottom: 1.5rem;
      border-bottom: 1px solid rgba(148, 163, 184, 0.2);
    }
    .meta {
      color: #94a3b8;
      font-size: 0.9rem;
    }
    article img {
      display: block;
      max-width: 300px;
      border-radius: 8px;
      margin: 0.5rem 0 1rem;
    }
    code {
      color: #fbbf24;
    }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    <p class="meta">Model: {{.Model}} &middot; Run: {{.RunID}} &middot; {{.Segments}} segments</p>
  </header>
  <article>{{.Content}}</article>
</body>
</html>`))

// NewTranscriptHandler creates a new handler for transcript pages.
func NewTranscriptHandler(store storage.QueryStore) *TranscriptHandler {
	return &TranscriptHandler{
		store: store,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		template: transcriptTemplate,
	}
}

// ServeHTTP handles GET /videos/{id}/transcript.
func (h *TranscriptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	video, err := h.store.GetVideo(ctx, storage.Lookup{ID: id})
	if err != nil {
		handleStoreError(ctx, w, err, "Failed to look up video")
		return
	}
	tr, err := h.store.LatestTranscription(ctx, id)
	if err != nil {
		handleStoreError(ctx, w, err, "Failed to look up transcription")
		return
	}
	segments, err := h.store.TextSegmentsByTranscription(ctx, tr.ID)
	if err != nil {
		handleStoreError(ctx, w, err, "Failed to load segments")
		return
	}

	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(transcriptMarkdown(segments)), &buf); err != nil {
		logger.ErrorContext(ctx, "failed to render markdown", "video_id", id, "error", err)
		http.Error(w, "failed to render transcript", http.StatusInternalServerError)
		return
	}

	page := transcriptPageData{
		Title:    video.Filename,
		Model:    tr.ModelName,
		RunID:    tr.RunID,
		Segments: len(segments),
		Content:  template.HTML(buf.String()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, page); err != nil {
		logger.ErrorContext(ctx, "failed to execute transcript template", "video_id", id, "error", err)
	}
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", `*`, `\*`, `_`, `\_`, `[`, `\[`, `]`, `\]`,
	`<`, `\<`, `>`, `\>`, `#`, `\#`, `!`, `\!`, `|`, `\|`, `~`, `\~`,
)

// segmentText collapses every whitespace run, newlines included, so a segment
// stays inside its own paragraph, then escapes markdown syntax.
func segmentText(text string) string {
	return markdownEscaper.Replace(strings.Join(strings.Fields(text), " "))
}

// transcriptMarkdown renders segments as one paragraph each, prefixed by
// their time range and followed by the segment thumbnail.
func transcriptMarkdown(segments []storage.TextSegment) string {
	if len(segments) == 0 {
		return "_No speech detected._\n"
	}

	var b strings.Builder
	for _, seg := range segments {
		fmt.Fprintf(&b, "`%s - %s` %s\n\n", formatTimestamp(seg.StartTime), formatTimestamp(seg.EndTime),
			segmentText(seg.Text))
		fmt.Fprintf(&b, "![segment %d](/api/segments/%d/thumbnail)\n\n", seg.ID, seg.ID)
	}
	return b.String()
}

// formatTimestamp formats seconds as mm:ss.s, or h:mm:ss.s past an hour.
func formatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := int(seconds) / 3600
	m := int(seconds) % 3600 / 60
	s := seconds - float64(h*3600+m*60)
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%04.1f", h, m, s)
	}
	return fmt.Sprintf("%02d:%04.1f", m, s)
}
