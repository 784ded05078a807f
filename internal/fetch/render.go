package fetch

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

// SettleDelay is how long the renderer waits after navigation by default.
const SettleDelay = 3 * time.Second

// Renderer loads pages in a headless browser. One browser process is started
// lazily and shared by every Fetch until Close.
type Renderer struct {
	userAgent string
	settle    time.Duration
	timeout   time.Duration
	execPath  string // browser binary; empty searches the usual locations

	mu          sync.Mutex
	allocCancel context.CancelFunc
	browser     context.Context
	cancel      context.CancelFunc
}

// NewRenderer creates a Renderer. Zero values select SettleDelay, Timeout and
// UserAgent.
func NewRenderer(settle, timeout time.Duration, userAgent string) *Renderer {
	if settle < 0 {
		settle = 0
	} else if settle == 0 {
		settle = SettleDelay
	}
	if timeout <= 0 {
		timeout = Timeout
	}
	if userAgent == "" {
		userAgent = UserAgent
	}
	return &Renderer{userAgent: userAgent, settle: settle, timeout: timeout}
}

// start launches the shared browser on first use. A failed launch leaves the
// Renderer unstarted so the next Fetch tries again.
func (r *Renderer) start() (context.Context, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(r.userAgent),
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
	)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browser, cancel := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(browser); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("starting browser: %w", err)
	}
	r.allocCancel, r.browser, r.cancel = allocCancel, browser, cancel
	return browser, nil
}

// Fetch navigates to url, waits for the settle delay and returns the rendered DOM.
func (r *Renderer) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	browser, err := r.start()
	if err != nil {
		return nil, err
	}
	tab, cancelTab := chromedp.NewContext(browser)
	defer cancelTab()
	tab, cancelTimeout := context.WithTimeout(tab, r.timeout)
	defer cancelTimeout()

	// Propagate caller cancellation into the tab.
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	var html string
	err = chromedp.Run(tab,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(r.settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("rendering %s: %w", url, ctx.Err())
		}
		return nil, fmt.Errorf("rendering %s: %w", url, err)
	}

	return Parse(strings.NewReader(html), url)
}

// Close shuts the browser down. The Renderer may be reused afterwards.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
		r.allocCancel()
	}
	r.browser, r.cancel, r.allocCancel = nil, nil, nil
}
