package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/seenimoa/equibull/internal/analysis"
	"github.com/seenimoa/equibull/internal/backend"
	"github.com/seenimoa/equibull/internal/config"
	"github.com/seenimoa/equibull/internal/datasource"
	"github.com/seenimoa/equibull/internal/newsletter"
	"github.com/seenimoa/equibull/pkg/models"
	"github.com/seenimoa/equibull/web"
)

// ════════════════════════════════════════════════════════════════════
// Test Helpers
// ════════════════════════════════════════════════════════════════════

// fakeBackend stands in for the recommendation backend.
type fakeBackend struct {
	srv            *httptest.Server
	newsHits       atomic.Int32
	subscribeHits  atomic.Int32
	newsStatus     int
	newsBody       string
	subscribeCode  int
	subscribeBody  string
	lastSubscribed atomic.Value
}

// newFakeBackend starts the fake after applying opts, so handlers only
// ever read the configured responses.
func newFakeBackend(t *testing.T, opts ...func(*fakeBackend)) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{
		newsStatus:    http.StatusOK,
		newsBody:      newsJSON(3),
		subscribeCode: http.StatusOK,
		subscribeBody: `{"success":true,"message":"Subscribed"}`,
	}
	for _, opt := range opts {
		opt(fb)
	}
	fb.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/news":
			fb.newsHits.Add(1)
			w.WriteHeader(fb.newsStatus)
			fmt.Fprint(w, fb.newsBody)
		case "/api/newsletter/subscribe":
			fb.subscribeHits.Add(1)
			var body struct{ Email string }
			_ = json.NewDecoder(r.Body).Decode(&body)
			fb.lastSubscribed.Store(body.Email)
			w.WriteHeader(fb.subscribeCode)
			fmt.Fprint(w, fb.subscribeBody)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(fb.srv.Close)
	return fb
}

func newsJSON(n int) string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf(`{"title":"Story %d","description":"Body","url":"https://example.com/%d","source":"ET","published_at":"2025-01-15T10:30:00Z","sentiment_score":0.5,"sentiment_label":"positive"}`, i, i)
	}
	return `{"success":true,"news":[` + strings.Join(items, ",") + `]}`
}

func testServer(t *testing.T, fb *fakeBackend) *Server {
	t.Helper()
	cfg := &config.Config{News: config.NewsConfig{Provider: config.ProviderBackend, Limit: 10}}
	client := backend.New(fb.srv.URL)

	srv, err := NewServer(cfg, Deps{
		News:       datasource.WithSentiment(datasource.FromBackend(client)),
		Newsletter: newsletter.NewService(client, nil),
		Analyzer:   analysis.New(0, nil),
		Logger:     zap.NewNop(),
		Version:    "test",
	})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go srv.wsHub.Run(ctx)
	return srv
}

func do(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func get(srv *Server, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return do(srv, req)
}

func postForm(srv *Server, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return do(srv, req)
}

func document(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	if err != nil {
		t.Fatalf("parse HTML: %v", err)
	}
	return doc
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func cookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// flashOf decodes the toast set by a redirecting handler.
func flashOf(t *testing.T, srv *Server, rec *httptest.ResponseRecorder) []web.Toast {
	t.Helper()
	c := cookie(rec, flashCookie)
	if c == nil {
		return nil
	}
	doc := document(t, get(srv, "/about", c))
	var toasts []web.Toast
	doc.Find(".toast").Each(func(_ int, s *goquery.Selection) {
		kind := web.ToastError
		if s.HasClass("toast-success") {
			kind = web.ToastSuccess
		}
		toasts = append(toasts, web.Toast{Kind: kind, Message: s.Text()})
	})
	return toasts
}

// ════════════════════════════════════════════════════════════════════
// Construction
// ════════════════════════════════════════════════════════════════════

func TestNewServer_RequiresServices(t *testing.T) {
	if _, err := NewServer(&config.Config{}, Deps{}); err == nil {
		t.Error("expected error for missing services")
	}
}

func TestHandleHealth(t *testing.T) {
	srv := testServer(t, newFakeBackend(t))

	for _, path := range []string{"/health", "/api/v1/health"} {
		rec := get(srv, path)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d", path, rec.Code)
		}
		resp := decodeResponse(t, rec)
		data, ok := resp.Data.(map[string]any)
		if !resp.Success || !ok {
			t.Fatalf("%s: unexpected response %+v", path, resp)
		}
		if data["status"] != "ok" || data["version"] != "test" || data["news_provider"] != "backend" {
			t.Errorf("%s: data %v", path, data)
		}
	}
}

func TestStaticAssets(t *testing.T) {
	srv := testServer(t, newFakeBackend(t))
	rec := get(srv, "/static/app.css")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Content-Type"), "text/css") {
		t.Errorf("Content-Type: got %q", rec.Header().Get("Content-Type"))
	}
}

// ════════════════════════════════════════════════════════════════════
// Pages
// ════════════════════════════════════════════════════════════════════

func TestHome_RendersEveryArticle(t *testing.T) {
	for _, n := range []int{0, 1, 3, 10} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			fb := newFakeBackend(t, func(fb *fakeBackend) { fb.newsBody = newsJSON(n) })
			srv := testServer(t, fb)

			doc := document(t, get(srv, "/"))
			if got := doc.Find(".news-card").Length(); got != n {
				t.Errorf("news cards: got %d, want %d", got, n)
			}
			if got := doc.Find(".toast").Length(); got != 0 {
				t.Errorf("toasts: got %d, want 0", got)
			}
		})
	}
}

func TestHome_NewsFailureShowsOneToast(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"success":false,"error":"db down"}`},
		{"not found", http.StatusNotFound, ``},
		{"success false", http.StatusOK, `{"success":false}`},
		{"garbage", http.StatusOK, `<html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := newFakeBackend(t, func(fb *fakeBackend) { fb.newsStatus, fb.newsBody = tt.status, tt.body })
			srv := testServer(t, fb)

			doc := document(t, get(srv, "/"))
			toasts := doc.Find(".toast")
			if toasts.Length() != 1 {
				t.Fatalf("toasts: got %d, want 1", toasts.Length())
			}
			if toasts.Text() != msgNewsFailed || !toasts.HasClass("toast-error") {
				t.Errorf("toast: got %q", toasts.Text())
			}
			if doc.Find(".news-card").Length() != 0 {
				t.Error("failed load should render no cards")
			}
			if fb.newsHits.Load() != 1 {
				t.Errorf("backend requests: got %d, want 1", fb.newsHits.Load())
			}
		})
	}
}

func TestHome_UsesConfiguredLimit(t *testing.T) {
	var gotLimit atomic.Value
	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit.Store(r.URL.Query().Get("limit"))
		fmt.Fprint(w, `{"success":true,"news":[]}`)
	}))
	defer backendSrv.Close()

	fb := &fakeBackend{srv: backendSrv}
	srv := testServer(t, fb)
	get(srv, "/")

	if got, _ := gotLimit.Load().(string); got != "10" {
		t.Errorf("limit: got %q, want 10", got)
	}
}

func TestNewsPage(t *testing.T) {
	fb := newFakeBackend(t)
	srv := testServer(t, fb)

	doc := document(t, get(srv, "/news"))
	if got := doc.Find(".news-card").Length(); got != 3 {
		t.Errorf("news cards: got %d, want 3", got)
	}
	if doc.Find(`a[href="/news?refresh=1"]`).Length() == 0 {
		t.Error("missing refresh link")
	}
	if got := strings.TrimSpace(doc.Find(".market-mood-detail").Text()); got != "average 0.50 across 3 articles" {
		t.Errorf("market mood: got %q", got)
	}
}

func TestNewsPage_Failure(t *testing.T) {
	fb := newFakeBackend(t, func(fb *fakeBackend) { fb.newsStatus = http.StatusBadGateway })
	srv := testServer(t, fb)

	doc := document(t, get(srv, "/news"))
	if doc.Find(".news-error").Length() != 1 {
		t.Error("expected error state with retry")
	}
	if doc.Find(".news-card").Length() != 0 {
		t.Error("failed load should render no cards")
	}
}

func TestAboutPage(t *testing.T) {
	srv := testServer(t, newFakeBackend(t))
	doc := document(t, get(srv, "/about"))
	if got := doc.Find("h1").Text(); got != "About Equibull" {
		t.Errorf("heading: got %q", got)
	}
	if !doc.Find(`nav a[href="/about"]`).HasClass("active") {
		t.Error("about nav entry should be active")
	}
}

func TestAnalysisPage(t *testing.T) {
	srv := testServer(t, newFakeBackend(t))

	doc := document(t, get(srv, "/analysis"))
	if doc.Find(".empty-state").Length() != 1 {
		t.Error("bare page should show the empty state")
	}

	doc = document(t, get(srv, "/analysis/reliance"))
	if got := doc.Find(".stock-overview h2").Text(); got != "Stock Overview - RELIANCE" {
		t.Errorf("heading: got %q", got)
	}
	if got := doc.Find(".recommendation .badge").First().Text(); !strings.Contains(got, "BUY") {
		t.Errorf("recommendation: got %q", got)
	}
	if v, _ := doc.Find(`input[name="symbol"]`).Attr("value"); v != "RELIANCE" {
		t.Errorf("search box: got %q", v)
	}
}

func TestAnalysisPage_QueryRedirects(t *testing.T) {
	srv := testServer(t, newFakeBackend(t))

	rec := get(srv, "/analysis?symbol=+tcs+")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/analysis/TCS" {
		t.Errorf("Location: got %q", loc)
	}
}

func TestAnalysisPage_BlankSymbol(t *testing.T) {
	srv := testServer(t, newFakeBackend(t))

	doc := document(t, get(srv, "/analysis?symbol=+++"))
	toasts := doc.Find(".toast")
	if toasts.Length() != 1 {
		t.Fatalf("toasts: got %d, want 1", toasts.Length())
	}
	if toasts.Text() != analysis.ErrEmptySymbol.Error() {
		t.Errorf("toast: got %q", toasts.Text())
	}
	if doc.Find(".stock-overview").Length() != 0 {
		t.Error("no results expected")
	}
}

// ════════════════════════════════════════════════════════════════════
// Subscription form
// ════════════════════════════════════════════════════════════════════

func TestSubscribe_InvalidEmailMakesNoRequest(t *testing.T) {
	emails := []string{"", "plainaddress", "user@", "@example.com", "user@example", "a b@example.com", "a@b@c.com"}
	for _, email := range emails {
		t.Run(email, func(t *testing.T) {
			fb := newFakeBackend(t)
			srv := testServer(t, fb)

			rec := postForm(srv, "/subscribe", url.Values{"email": {email}, "next": {"/"}})
			if rec.Code != http.StatusSeeOther {
				t.Fatalf("status: got %d, want 303", rec.Code)
			}
			if fb.subscribeHits.Load() != 0 {
				t.Errorf("backend requests: got %d, want 0", fb.subscribeHits.Load())
			}
			if cookie(rec, subscribedCookie) != nil {
				t.Error("subscribed cookie must not be set")
			}
			toasts := flashOf(t, srv, rec)
			if len(toasts) != 1 || toasts[0].Message != newsletter.ErrInvalidEmail.Error() {
				t.Errorf("toasts: got %+v", toasts)
			}
		})
	}
}

func TestSubscribe_Success(t *testing.T) {
	fb := newFakeBackend(t)
	srv := testServer(t, fb)

	rec := postForm(srv, "/subscribe", url.Values{"email": {"investor@example.com"}, "next": {"/about"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/about" {
		t.Errorf("Location: got %q", loc)
	}
	if fb.subscribeHits.Load() != 1 {
		t.Errorf("backend requests: got %d, want 1", fb.subscribeHits.Load())
	}
	if got, _ := fb.lastSubscribed.Load().(string); got != "investor@example.com" {
		t.Errorf("email sent: got %q", got)
	}

	sub := cookie(rec, subscribedCookie)
	if sub == nil {
		t.Fatal("subscribed cookie not set")
	}
	toasts := flashOf(t, srv, rec)
	if len(toasts) != 1 || toasts[0].Kind != web.ToastSuccess || toasts[0].Message != msgSubscribed {
		t.Errorf("toasts: got %+v", toasts)
	}

	doc := document(t, get(srv, "/", sub))
	if doc.Find("form.subscribe-form").Length() != 0 {
		t.Error("form should be replaced after subscribing")
	}
	if !strings.Contains(doc.Find(".subscribe-done").Text(), "Subscription Successful!") {
		t.Error("missing success panel")
	}
}

func TestSubscribe_BackendFailure(t *testing.T) {
	tests := []struct {
		name string
		code int
		body string
		want string
	}{
		{"server error", http.StatusInternalServerError, `{"success":false,"error":"ignored"}`, "HTTP error! status: 500"},
		{"conflict", http.StatusConflict, ``, "HTTP error! status: 409"},
		{"success false with error", http.StatusOK, `{"success":false,"error":"Email already subscribed"}`, "Email already subscribed"},
		{"success false bare", http.StatusOK, `{"success":false}`, "Failed to subscribe to newsletter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := newFakeBackend(t, func(fb *fakeBackend) { fb.subscribeCode, fb.subscribeBody = tt.code, tt.body })
			srv := testServer(t, fb)

			rec := postForm(srv, "/subscribe", url.Values{"email": {"investor@example.com"}})
			if fb.subscribeHits.Load() != 1 {
				t.Errorf("backend requests: got %d, want 1", fb.subscribeHits.Load())
			}
			if cookie(rec, subscribedCookie) != nil {
				t.Error("failure must not mark the browser as subscribed")
			}
			toasts := flashOf(t, srv, rec)
			if len(toasts) != 1 {
				t.Fatalf("toasts: got %d, want 1", len(toasts))
			}
			if toasts[0].Kind != web.ToastError || toasts[0].Message != tt.want {
				t.Errorf("toast: got %+v, want error %q", toasts[0], tt.want)
			}
		})
	}
}

func TestSubscribe_AlreadySubscribed(t *testing.T) {
	fb := newFakeBackend(t)
	srv := testServer(t, fb)

	sub := &http.Cookie{Name: subscribedCookie, Value: "1"}
	rec := postForm(srv, "/subscribe", url.Values{"email": {"investor@example.com"}}, sub)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want 303", rec.Code)
	}
	if fb.subscribeHits.Load() != 0 {
		t.Errorf("backend requests: got %d, want 0", fb.subscribeHits.Load())
	}
}

func TestSubscribe_RejectsOffsiteRedirect(t *testing.T) {
	srv := testServer(t, newFakeBackend(t))
	for _, next := range []string{"//evil.example", "/\t/evil.example", "/\n/evil.example", "/\r\n/evil.example"} {
		rec := postForm(srv, "/subscribe", url.Values{"email": {"x"}, "next": {next}})
		if loc := rec.Header().Get("Location"); loc != "/" {
			t.Errorf("next %q: Location got %q, want /", next, loc)
		}
	}
}

func TestFlashIsShownOnce(t *testing.T) {
	srv := testServer(t, newFakeBackend(t))
	rec := postForm(srv, "/subscribe", url.Values{"email": {"bad"}})
	flash := cookie(rec, flashCookie)
	if flash == nil {
		t.Fatal("flash cookie not set")
	}

	page := get(srv, "/about", flash)
	cleared := cookie(page, flashCookie)
	if cleared == nil || cleared.MaxAge >= 0 {
		t.Errorf("flash cookie should be cleared, got %+v", cleared)
	}
}

func TestTakeFlash_IgnoresGarbage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: flashCookie, Value: "%%%not-base64"})
	if got := takeFlash(httptest.NewRecorder(), req); got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}

func TestSafeNext(t *testing.T) {
	tests := map[string]string{
		"":                     "/",
		"/":                    "/",
		"/news":                "/news",
		"/analysis/TCS":        "/analysis/TCS",
		"//evil.example":       "/",
		`/\evil.example`:       "/",
		"https://evil.example": "/",
		"news":                 "/",
		"/\t/evil.example":     "/",
		"/\n/evil.example":     "/",
		"/news\x7f":            "/",
		"/news?refresh=1":      "/news?refresh=1",
	}
	for in, want := range tests {
		if got := safeNext(in); got != want {
			t.Errorf("safeNext(%q): got %q, want %q", in, got, want)
		}
	}
}

// ════════════════════════════════════════════════════════════════════
// JSON API
// ════════════════════════════════════════════════════════════════════

func TestNewsAPI(t *testing.T) {
	fb := newFakeBackend(t)
	srv := testServer(t, fb)

	rec := get(srv, "/api/v1/news?limit=3")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var resp struct {
		Success bool         `json:"success"`
		Data    NewsResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.Data.Count != 3 || len(resp.Data.News) != 3 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Data.Provider != "backend" {
		t.Errorf("Provider: got %q", resp.Data.Provider)
	}
	want := models.NewsSentiment{Score: 0.5, Label: models.SentimentPositive, Count: 3}
	if diff := cmp.Diff(want, resp.Data.Sentiment); diff != "" {
		t.Errorf("Sentiment mismatch (-want +got):\n%s", diff)
	}
}

func TestNewsAPI_BadLimit(t *testing.T) {
	fb := newFakeBackend(t)
	srv := testServer(t, fb)

	for _, limit := range []string{"0", "-1", "abc", "1000"} {
		rec := get(srv, "/api/v1/news?limit="+limit)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("limit=%s: status %d, want 400", limit, rec.Code)
		}
	}
	if fb.newsHits.Load() != 0 {
		t.Errorf("backend requests: got %d, want 0", fb.newsHits.Load())
	}
}

func TestNewsAPI_BackendError(t *testing.T) {
	fb := newFakeBackend(t, func(fb *fakeBackend) { fb.newsStatus = http.StatusServiceUnavailable })
	srv := testServer(t, fb)

	rec := get(srv, "/api/v1/news")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status: got %d, want 502", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Success || resp.Error != "HTTP error! status: 503" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestSubscribeAPI(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		code       int
		respBody   string
		wantStatus int
		wantError  string
		wantHits   int32
	}{
		{"ok", `{"email":"a@b.co"}`, http.StatusOK, `{"success":true}`, http.StatusOK, "", 1},
		{"invalid email", `{"email":"nope"}`, http.StatusOK, ``, http.StatusBadRequest, "Please enter a valid email address", 0},
		{"bad json", `{`, http.StatusOK, ``, http.StatusBadRequest, "", 0},
		{"backend status", `{"email":"a@b.co"}`, http.StatusInternalServerError, ``, http.StatusBadGateway, "HTTP error! status: 500", 1},
		{"backend refused", `{"email":"a@b.co"}`, http.StatusOK, `{"success":false,"error":"Already subscribed"}`, http.StatusBadGateway, "Already subscribed", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := newFakeBackend(t, func(fb *fakeBackend) { fb.subscribeCode, fb.subscribeBody = tt.code, tt.respBody })
			srv := testServer(t, fb)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/subscribe", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := do(srv, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			resp := decodeResponse(t, rec)
			if tt.wantError != "" && resp.Error != tt.wantError {
				t.Errorf("Error: got %q, want %q", resp.Error, tt.wantError)
			}
			if got := fb.subscribeHits.Load(); got != tt.wantHits {
				t.Errorf("backend requests: got %d, want %d", got, tt.wantHits)
			}
		})
	}
}

func TestAnalysisAPI(t *testing.T) {
	srv := testServer(t, newFakeBackend(t))

	rec := get(srv, "/api/v1/analysis/infy")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var resp struct {
		Data struct {
			Stock struct {
				Symbol string `json:"symbol"`
			} `json:"stock"`
			Recommendation struct {
				Recommendation string `json:"recommendation"`
			} `json:"recommendation"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.Stock.Symbol != "INFY" || resp.Data.Recommendation.Recommendation != "BUY" {
		t.Errorf("unexpected data: %+v", resp.Data)
	}

	if rec := get(srv, "/api/v1/analysis/%20"); rec.Code != http.StatusBadRequest {
		t.Errorf("blank symbol: status %d, want 400", rec.Code)
	}
}

func TestConfigAPI(t *testing.T) {
	srv := testServer(t, newFakeBackend(t))
	rec := get(srv, "/api/v1/config")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var resp struct {
		Data ConfigResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Data.Settings) == 0 || resp.Data.NewsLimit != 10 {
		t.Errorf("unexpected config: %+v", resp.Data)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{backend.ErrInvalidLimit, http.StatusBadRequest},
		{newsletter.ErrInvalidEmail, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", analysis.ErrEmptySymbol), http.StatusBadRequest},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{&backend.APIError{StatusCode: 500, Message: "HTTP error! status: 500"}, http.StatusBadGateway},
		{errors.New("dial tcp: refused"), http.StatusBadGateway},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v): got %d, want %d", tt.err, got, tt.want)
		}
	}
}
