package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/pairings-web/internal/factory"
	"github.com/mcoot/pairings-web/internal/testutil"
	"github.com/mcoot/pairings-web/internal/web"
	"github.com/mcoot/pairings-web/internal/web/handler"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	cookies *cookieJar
}

// newWebTestServer creates a web interface backed by an in-memory pairing service
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	app := factory.NewTestApp()
	conn, err := app.Connect()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
		_ = app.Close()
	})

	return newWebTestServerWith(t, conn)
}

// newWebTestServerWith creates a web interface over any backend
func newWebTestServerWith(t *testing.T, backend handler.Backend) *webTestServer {
	t.Helper()

	router := web.NewRouter(web.RouterConfig{
		Logger:  testutil.NopLogger(),
		Backend: backend,
	})

	return &webTestServer{
		t:       t,
		handler: router,
		cookies: newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	ts.cookies.extract(rr)

	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil)
}

// post makes a POST request with form data
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return ts.request(http.MethodPost, path, form)
}

// followRedirect follows a redirect and returns the response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	location := rr.Header().Get("Location")
	require.NotEmpty(ts.t, location, "Expected Location header for redirect")
	return ts.get(location)
}

// createTournament submits the home page form and returns the signed tournament link
func (ts *webTestServer) createTournament(name, rounds string) string {
	ts.t.Helper()
	rr := ts.post("/tournament", url.Values{"name": {name}, "rounds": {rounds}})
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after tournament creation")
	location := rr.Header().Get("Location")
	require.True(ts.t, strings.HasPrefix(location, "/tournament/"), location)
	return location
}

// signUp submits the sign-up form and returns the signed player link
func (ts *webTestServer) signUp(tournamentLink, name, rating string) string {
	ts.t.Helper()
	rr := ts.post(publicLink(tournamentLink)+"players", url.Values{"name": {name}, "rating": {rating}})
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after sign-up")
	location := rr.Header().Get("Location")
	require.True(ts.t, strings.HasPrefix(location, "/player/"), location)
	return location
}

// publicLink strips the proof from a signed link: "/kind/<uuid>/<proof>/" becomes "/kind/<uuid>/"
func publicLink(link string) string {
	parts := strings.Split(strings.Trim(link, "/"), "/")
	return "/" + parts[0] + "/" + parts[1] + "/"
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

// addTo adds all cookies to the request
func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

// extract extracts Set-Cookie headers from response
func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// Assertion helpers

// assertContainsElement asserts that the document contains an element matching the selector
func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

// assertNotContainsElement asserts that the document does not contain an element matching the selector
func assertNotContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() > 0 {
		t.Errorf("Expected NOT to find element matching %q, but found %d", selector, doc.Find(selector).Length())
	}
}

// assertContainsText asserts that the element matching the selector contains the text
func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	el := doc.Find(selector)
	if el.Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
		return
	}
	if !strings.Contains(el.Text(), text) {
		t.Errorf("Expected element %q to contain %q, but got %q", selector, text, el.Text())
	}
}
