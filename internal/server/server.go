// Package server hosts the rendered panel over HTTP for local
// development and the demo harness. It serves the assembled panel
// document, streams re-render notifications over SSE, and exposes the
// copy, export and preference actions the panel toolbar calls.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	cellmd "github.com/avahl/go-cellmd"
	"github.com/avahl/go-cellmd/internal/hints"
	"github.com/avahl/go-cellmd/internal/prefs"
	"github.com/avahl/go-cellmd/internal/watch"
)

// sseBuffer sizes per-subscriber event queues. A subscriber that falls
// further behind loses intermediate render pings, which is harmless:
// each ping means "reload", not "apply this delta".
const sseBuffer = 8

// event is one server-sent event.
type event struct {
	Name string
	Data string
}

// Server wires the render service, the selection watcher and the
// preference store behind the panel's HTTP surface.
type Server struct {
	svc    *cellmd.Service
	store  *prefs.Store
	copier *cellmd.Copier

	mu      sync.RWMutex
	current watch.Update
	subs    map[chan event]struct{}
}

// New creates a Server around the given service and preference store.
func New(svc *cellmd.Service, store *prefs.Store) *Server {
	return &Server{
		svc:    svc,
		store:  store,
		copier: cellmd.NewCopier(),
		subs:   make(map[chan event]struct{}),
	}
}

// Consume applies watcher updates until the stream closes. Each update
// replaces the current panel state and pings subscribers to reload.
func (s *Server) Consume(updates <-chan watch.Update) {
	for u := range updates {
		s.mu.Lock()
		s.current = u
		s.mu.Unlock()
		s.broadcast(event{Name: "render", Data: u.State.String()})
	}
}

// Handler builds the gin engine with all panel routes.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", s.handlePanel)
	r.GET("/events", s.handleEvents)
	r.POST("/copy", s.handleCopy)
	r.POST("/copy-html", s.handleCopyHTML)
	r.GET("/export.md", s.handleExportMarkdown)
	r.GET("/export.png", s.handleExportImage)
	r.PUT("/prefs/font-size", s.handleSetFontSize)

	return r
}

// state returns the current panel state snapshot.
func (s *Server) state() watch.Update {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// renderCurrent assembles the panel document for the current state.
func (s *Server) renderCurrent(ctx context.Context) (string, *cellmd.RenderResult, error) {
	u := s.state()
	size := s.store.FontSize()

	switch u.State {
	case watch.StateReady:
		result, err := s.svc.Render(ctx, cellmd.Input{
			Snapshot: u.Snapshot,
			Theme:    u.Theme,
			FontSize: size,
		})
		if err != nil {
			return "", nil, err
		}
		return result.Document, result, nil

	case watch.StateUnsupportedField:
		doc, err := s.svc.ErrorDocument(ctx, u.Theme, size, u.Snapshot.FieldName,
			"This field type cannot be rendered. Select a text or URL field.")
		return doc, nil, err

	case watch.StateFetchFailed:
		doc, err := s.svc.ErrorDocument(ctx, u.Theme, size, u.Snapshot.FieldName,
			"Failed to load the cell content. Select the cell again to retry.")
		return doc, nil, err

	default:
		// Empty and Loading both show the selection prompt; a loading
		// flow that succeeds pings the panel to reload moments later.
		doc, err := s.svc.EmptyDocument(ctx, u.Theme, size)
		return doc, nil, err
	}
}

// handlePanel serves the assembled panel document.
func (s *Server) handlePanel(c *gin.Context) {
	doc, _, err := s.renderCurrent(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "render failed: %v", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
}

// handleEvents streams render pings and toast messages over SSE.
func (s *Server) handleEvents(c *gin.Context) {
	ch := make(chan event, sseBuffer)
	s.subscribe(ch)
	defer s.unsubscribe(ch)

	c.Stream(func(_ io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, ev.Data)
			return true
		}
	})
}

// handleCopy copies text to the system clipboard. The body carries the
// text to copy (a single code block); an empty body means the raw
// content of the current snapshot.
func (s *Server) handleCopy(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "invalid request body"})
		return
	}

	text := string(body)
	if text == "" {
		u := s.state()
		if u.State != watch.StateReady {
			c.JSON(http.StatusConflict, gin.H{"ok": false, "message": "Nothing to copy"})
			return
		}
		text = u.Snapshot.Content
	}

	if !s.copier.CopyText(text) {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": copyFailedMessage()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Copied"})
}

// handleCopyHTML re-renders the current snapshot and copies the
// sanitized HTML fragment.
func (s *Server) handleCopyHTML(c *gin.Context) {
	_, result, err := s.renderCurrent(c.Request.Context())
	if err != nil || result == nil {
		c.JSON(http.StatusConflict, gin.H{"ok": false, "message": "Nothing rendered to copy"})
		return
	}

	if !s.copier.CopyHTML(result) {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": copyFailedMessage()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Copied as HTML"})
}

// handleExportMarkdown serves the raw cell content as a Markdown
// download. The bytes are exactly the captured content.
func (s *Server) handleExportMarkdown(c *gin.Context) {
	u := s.state()
	if u.State != watch.StateReady {
		c.JSON(http.StatusConflict, gin.H{"ok": false, "message": "Nothing to export"})
		return
	}

	name, err := cellmd.ExportFileName(u.Snapshot.FieldName, "md", "", time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, cellmd.MarkdownMIMEType, []byte(u.Snapshot.Content))
}

// handleExportImage rasterizes the current panel and serves the PNG.
// Failures surface as a toast-friendly JSON error, not a broken panel.
func (s *Server) handleExportImage(c *gin.Context) {
	ctx := c.Request.Context()

	_, result, err := s.renderCurrent(ctx)
	if err != nil || result == nil {
		c.JSON(http.StatusConflict, gin.H{"ok": false, "message": "Nothing to export"})
		return
	}

	png, err := s.svc.ExportImagePNG(ctx, result)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Image export failed"})
		return
	}

	name, err := cellmd.ExportFileName(result.Snapshot.FieldName, "png", "", time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, cellmd.PNGMIMEType, png)
}

// handleSetFontSize persists the bucket named in the request body and
// pings the panel to reload with the new size.
func (s *Server) handleSetFontSize(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "invalid request body"})
		return
	}

	if err := s.store.SetFontSize(cellmd.FontSize(strings.TrimSpace(string(body)))); err != nil {
		if errors.Is(err, cellmd.ErrInvalidFontSize) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Saving preference failed"})
		return
	}

	s.broadcast(event{Name: "render", Data: "font-size"})
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Font size saved"})
}

// copyFailedMessage builds the copy failure toast, including the
// platform clipboard hint when one applies.
func copyFailedMessage() string {
	msg := "Copy failed"
	if h := hints.ForClipboard(); h != "" {
		msg += "." + strings.ReplaceAll(h, "\n  ", " ")
	}
	return msg
}

// subscribe registers an SSE listener.
func (s *Server) subscribe(ch chan event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[ch] = struct{}{}
}

// unsubscribe removes an SSE listener.
func (s *Server) unsubscribe(ch chan event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, ch)
}

// broadcast fans an event out to all subscribers without blocking on
// slow ones.
func (s *Server) broadcast(ev event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
