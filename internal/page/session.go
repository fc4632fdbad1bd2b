package page

import (
	"context"
	"strings"
	"time"

	pw "github.com/playwright-community/playwright-go"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Portal selectors. The portals this tool targets render standard login
// and search forms; the alternatives in each selector cover the known
// deployment variants.
const (
	loginUserSelector   = `input[name='username'], input[type='email'], #username`
	loginPassSelector   = `input[type='password']`
	loginSubmitSelector = `button[type='submit'], input[type='submit']`
	searchInputSelector = `input[type='search'], input[name*='search' i], #customer-search`
	resultRowSelector   = `table tbody tr, .customer-result, .search-result`
	noResultsText       = "No results"
)

// Options configures a portal session.
type Options struct {
	BaseURL     string
	Username    string
	Password    string
	Headless    bool
	SlowMo      time.Duration
	NavTimeout  time.Duration // per-navigation time limit
	NavInterval time.Duration // minimum spacing between navigations
}

// PlaywrightSession drives one exclusive browser session against the
// portal. Not safe for concurrent use; run one session per investigation.
type PlaywrightSession struct {
	opts    Options
	pw      *pw.Playwright
	browser pw.Browser
	page    pw.Page
	limiter *rate.Limiter
}

var _ Session = (*PlaywrightSession)(nil)

// NewSession launches a browser and opens a fresh page.
func NewSession(opts Options) (*PlaywrightSession, error) {
	if opts.NavTimeout == 0 {
		opts.NavTimeout = 30 * time.Second
	}
	if opts.NavInterval == 0 {
		opts.NavInterval = time.Second
	}

	runner, err := pw.Run()
	if err != nil {
		return nil, eris.Wrap(err, "page: start playwright")
	}

	browser, err := runner.Chromium.Launch(pw.BrowserTypeLaunchOptions{
		Headless: pw.Bool(opts.Headless),
		SlowMo:   pw.Float(float64(opts.SlowMo.Milliseconds())),
	})
	if err != nil {
		runner.Stop()
		return nil, eris.Wrap(err, "page: launch browser")
	}

	p, err := browser.NewPage()
	if err != nil {
		browser.Close()
		runner.Stop()
		return nil, eris.Wrap(err, "page: new page")
	}
	p.SetDefaultTimeout(float64(opts.NavTimeout.Milliseconds()))

	return &PlaywrightSession{
		opts:    opts,
		pw:      runner,
		browser: browser,
		page:    p,
		limiter: rate.NewLimiter(rate.Every(opts.NavInterval), 1),
	}, nil
}

// Login navigates to the portal login form and authenticates. Any failure
// here is fatal to the investigation; retry policy belongs to the caller.
func (s *PlaywrightSession) Login(ctx context.Context) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "page: login wait")
	}

	loginURL := strings.TrimRight(s.opts.BaseURL, "/") + "/login"
	if _, err := s.page.Goto(loginURL, pw.PageGotoOptions{
		WaitUntil: pw.WaitUntilStateNetworkidle,
	}); err != nil {
		return eris.Wrapf(err, "page: goto %s", loginURL)
	}

	if err := s.page.Locator(loginUserSelector).First().Fill(s.opts.Username); err != nil {
		return eris.Wrap(err, "page: fill username")
	}
	if err := s.page.Locator(loginPassSelector).First().Fill(s.opts.Password); err != nil {
		return eris.Wrap(err, "page: fill password")
	}
	if err := s.page.Locator(loginSubmitSelector).First().Click(); err != nil {
		return eris.Wrap(err, "page: submit login")
	}
	if err := s.page.WaitForLoadState(pw.PageWaitForLoadStateOptions{
		State: pw.LoadStateNetworkidle,
	}); err != nil {
		return eris.Wrap(err, "page: wait after login")
	}

	// Still on the login page means the credentials were rejected.
	if strings.Contains(s.page.URL(), "/login") {
		return eris.New("page: login rejected")
	}

	zap.L().Info("page: logged in", zap.String("url", s.page.URL()))
	return nil
}

// SearchCustomer runs the portal's customer search and opens the first
// matching record. Returns false when the search reports no results.
func (s *PlaywrightSession) SearchCustomer(ctx context.Context, name string) (bool, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return false, eris.Wrap(err, "page: search wait")
	}

	input := s.page.Locator(searchInputSelector).First()
	if err := input.Fill(name); err != nil {
		return false, eris.Wrap(err, "page: fill search")
	}
	if err := input.Press("Enter"); err != nil {
		return false, eris.Wrap(err, "page: submit search")
	}
	if err := s.page.WaitForLoadState(pw.PageWaitForLoadStateOptions{
		State: pw.LoadStateNetworkidle,
	}); err != nil {
		return false, eris.Wrap(err, "page: wait after search")
	}

	if n, err := s.page.GetByText(noResultsText).Count(); err == nil && n > 0 {
		zap.L().Info("page: search returned no results", zap.String("customer", name))
		return false, nil
	}

	rows := s.page.Locator(resultRowSelector)
	n, err := rows.Count()
	if err != nil || n == 0 {
		zap.L().Info("page: no result rows rendered", zap.String("customer", name))
		return false, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return false, eris.Wrap(err, "page: open result wait")
	}
	if err := rows.First().Click(); err != nil {
		return false, eris.Wrap(err, "page: open result")
	}
	if err := s.page.WaitForLoadState(pw.PageWaitForLoadStateOptions{
		State: pw.LoadStateNetworkidle,
	}); err != nil {
		return false, eris.Wrap(err, "page: wait for record page")
	}

	zap.L().Info("page: customer record opened", zap.String("url", s.page.URL()))
	return true, nil
}

// Context returns the page context for the current view.
func (s *PlaywrightSession) Context() Context {
	return pwContext{page: s.page}
}

// Screenshot captures the current page for the audit trail.
func (s *PlaywrightSession) Screenshot(path string) error {
	_, err := s.page.Screenshot(pw.PageScreenshotOptions{
		Path:     pw.String(path),
		FullPage: pw.Bool(true),
	})
	return eris.Wrapf(err, "page: screenshot %s", path)
}

// Close tears down the page, browser, and playwright runner.
func (s *PlaywrightSession) Close() error {
	if s.page != nil {
		_ = s.page.Close()
	}
	if s.browser != nil {
		_ = s.browser.Close()
	}
	if s.pw != nil {
		return s.pw.Stop()
	}
	return nil
}
