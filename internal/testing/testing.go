// package testing contains shared testing utilities
package testing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/desertthunder/mlbv/internal/models"
)

// MockMediaGateway is a test double for the media gateway client.
//
// It records the media ids passed to InitPlaybackSession.
type MockMediaGateway struct {
	Candidates   []models.StreamCandidate
	Grant        *models.PlaybackGrant
	SearchErr    error
	PlaybackErr  error
	Searched     []int64
	PlaybackIDs  []string
	SessionCalls int
}

func (m *MockMediaGateway) ContentSearch(ctx context.Context, gamePk int64) ([]models.StreamCandidate, error) {
	m.Searched = append(m.Searched, gamePk)
	return m.Candidates, m.SearchErr
}

func (m *MockMediaGateway) InitSession(ctx context.Context) (string, string, error) {
	m.SessionCalls++
	return fmt.Sprintf("session-%d", m.SessionCalls), fmt.Sprintf("device-%d", m.SessionCalls), nil
}

func (m *MockMediaGateway) InitPlaybackSession(ctx context.Context, mediaID string) (*models.PlaybackGrant, error) {
	if _, _, err := m.InitSession(ctx); err != nil {
		return nil, err
	}
	m.PlaybackIDs = append(m.PlaybackIDs, mediaID)
	if m.PlaybackErr != nil {
		return nil, m.PlaybackErr
	}
	if m.Grant != nil {
		return m.Grant, nil
	}
	return &models.PlaybackGrant{URL: "https://example.com/" + mediaID + ".m3u8"}, nil
}

// MockScheduleService serves fixed schedules keyed by YYYY-MM-DD.
type MockScheduleService struct {
	Days map[string]*models.DaySchedule
	Err  error
}

func (m *MockScheduleService) FetchScheduleByDate(ctx context.Context, date time.Time, filter *models.ScheduleFilter) (*models.DaySchedule, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	day, ok := m.Days[date.Format(time.DateOnly)]
	if !ok || day == nil {
		return nil, nil
	}
	if filter == nil {
		return day, nil
	}
	kept := filter.Apply([]models.DaySchedule{*day})
	if len(kept) == 0 {
		return nil, nil
	}
	return &kept[0], nil
}

// IdentityProvider is an httptest server that imitates the MLB identity provider.
//
// Hits counts every request it serves.
type IdentityProvider struct {
	Server     *httptest.Server
	AuthServer string
	ClientID   string
	Code       string
	ExpiresIn  int
	AuthnFail  bool
	TokenFail  bool
	FormToken  bool // answer the token request form encoded instead of JSON
	hits       atomic.Int32
}

// NewIdentityProvider starts a fake IdP that issues a token valid for an hour. It is closed with the test.
func NewIdentityProvider(t *testing.T) *IdentityProvider {
	t.Helper()
	idp := &IdentityProvider{AuthServer: "test", ClientID: "client-abc", Code: "code-1", ExpiresIn: 3600}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/authn", idp.authn)
	mux.HandleFunc("GET /okta.js", idp.script)
	mux.HandleFunc("GET /oauth2/"+idp.AuthServer+"/v1/authorize", idp.authorize)
	mux.HandleFunc("POST /oauth2/"+idp.AuthServer+"/v1/token", idp.token)

	idp.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idp.hits.Add(1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(idp.Server.Close)
	return idp
}

// Hits returns the number of requests served.
func (p *IdentityProvider) Hits() int { return int(p.hits.Load()) }

// ScriptURL is the location of the fake Okta bundle.
func (p *IdentityProvider) ScriptURL() string { return p.Server.URL + "/okta.js" }

func (p *IdentityProvider) authn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || p.AuthnFail || body.Password != "secret" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errorCode":"E0000004","errorSummary":"Authentication failed"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"SUCCESS","sessionToken":"st-` + body.Username + `"}`))
}

func (p *IdentityProvider) script(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprintf(w, `!function(){var e={production:{clientId:"%s",issuer:"x"}};}();`, p.ClientID)
}

func (p *IdentityProvider) authorize(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("client_id") != p.ClientID || q.Get("code_challenge_method") != "S256" ||
		q.Get("code_challenge") == "" || q.Get("sessionToken") == "" ||
		q.Get("response_mode") != "okta_post_message" || q.Get("nonce") == "" || q.Get("state") == "" {
		http.Error(w, "bad authorize request", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	_, _ = fmt.Fprintf(w, `<html><head><script>var data = {};data.code = '%s';data.state = '%s';</script></head></html>`, p.Code, q.Get("state"))
}

func (p *IdentityProvider) token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil || p.TokenFail ||
		r.PostForm.Get("grant_type") != "authorization_code" ||
		r.PostForm.Get("code") != p.Code || r.PostForm.Get("code_verifier") == "" ||
		r.PostForm.Get("client_id") != p.ClientID {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
		return
	}
	if p.FormToken {
		w.Header().Set("Content-Type", "application/x-www-form-urlencoded")
		_, _ = fmt.Fprintf(w, "token_type=Bearer&expires_in=%d&access_token=access-token&scope=openid+profile+email&id_token=id-token", p.ExpiresIn)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = fmt.Fprintf(w, `{"token_type":"Bearer","expires_in":%d,"access_token":"access-token","scope":"openid profile email","id_token":"id-token"}`, p.ExpiresIn)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertNoFile(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("File should not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
