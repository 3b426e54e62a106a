package cellmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/avahl/go-cellmd/internal/fileutil"
	"github.com/avahl/go-cellmd/internal/process"
)

// imageRenderer abstracts panel-to-bitmap rasterization to allow
// different backends (and test fakes).
type imageRenderer interface {
	RenderPNG(ctx context.Context, htmlContent string) ([]byte, error)
	Close() error
}

// Compile-time interface check
var _ imageRenderer = (*rodImageRenderer)(nil)

// panelViewportWidth is the rasterization width in CSS pixels; the
// height follows the content (full-page capture).
const panelViewportWidth = 960

// rodImageRenderer rasterizes the rendered panel with headless Chrome
// via go-rod. Rod automatically downloads Chromium on first run if not
// found.
type rodImageRenderer struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

// newRodImageRenderer creates a rodImageRenderer with the given timeout.
func newRodImageRenderer(timeout time.Duration) *rodImageRenderer {
	return &rodImageRenderer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *rodImageRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	// Configure launcher
	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l
	return nil
}

// Close releases browser resources. The process group kill catches
// Chrome child processes a graceful close can leave behind.
func (r *rodImageRenderer) Close() error {
	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil

	if r.launcher != nil {
		process.KillProcessGroup(r.launcher.PID())
		r.launcher = nil
	}
	return err
}

// RenderPNG writes the panel document to a temp file, opens it in
// headless Chrome and captures a full-page PNG. Rasterization can fail
// for reasons outside our control (cross-origin assets, unsupported
// CSS); callers surface the failure as a toast, never a crash.
func (r *rodImageRenderer) RenderPNG(ctx context.Context, htmlContent string) ([]byte, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageExport, err)
	}
	defer cleanup()

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + tmpPath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             panelViewportWidth,
		Height:            1,
		DeviceScaleFactor: 2,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	// Wait for page to load with timeout from context or default
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// Check context after page load
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	png, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageExport, err)
	}

	return png, nil
}
