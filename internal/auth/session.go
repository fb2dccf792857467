package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mlbv/internal/models"
	"github.com/desertthunder/mlbv/internal/shared"
	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
)

// State is a step of the authorization flow.
type State int

const (
	Unauthenticated State = iota
	Authenticated
	CodeReceived
	Authorized
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticated:
		return "authenticated"
	case CodeReceived:
		return "code_received"
	case Authorized:
		return "authorized"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Endpoints locates the identity provider. Tests point these at an httptest server.
type Endpoints struct {
	IdentityURL   string // https://ids.mlb.com
	AuthServer    string // Okta authorization server id
	OktaScriptURL string
	RedirectURL   string
}

// DefaultEndpoints returns the production identity provider.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		IdentityURL:   "https://ids.mlb.com",
		AuthServer:    "aus1m088yK07noBfh356",
		OktaScriptURL: "https://www.mlbstatic.com/mlb.com/vendor/mlb-okta/mlb-okta.js",
		RedirectURL:   "https://www.mlb.com/login",
	}
}

func (e Endpoints) authnURL() string {
	return strings.TrimRight(e.IdentityURL, "/") + "/api/v1/authn"
}

func (e Endpoints) oauthBase() string {
	return strings.TrimRight(e.IdentityURL, "/") + "/oauth2/" + e.AuthServer + "/v1"
}

var scopes = []string{"openid", "profile", "email"}

// Credentials are the MLB.tv account username and password.
type Credentials struct {
	Username string
	Password string
}

// Authorization is the result of a successful [Session.Authorize].
type Authorization struct {
	Token     *models.SessionToken
	FromCache bool
	base      *http.Client
}

// Client returns an HTTP client that sends the bearer token on every request, using the session's transport.
func (a *Authorization) Client(ctx context.Context) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.base)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: a.Token.AccessToken,
		TokenType:   a.Token.TokenType,
		Expiry:      a.Token.ExpiresAt,
	}))
}

// SessionOpts configures a [Session]. Nil fields fall back to production defaults.
type SessionOpts struct {
	Client    *http.Client
	Endpoints *Endpoints
	Scraper   Scraper
	Cache     *TokenCache
	Logger    *log.Logger
	Now       func() time.Time
}

// Session runs the authorization state machine against one identity provider.
//
// A Session is not safe for concurrent use.
type Session struct {
	client    *http.Client
	endpoints Endpoints
	scraper   Scraper
	cache     *TokenCache
	logger    *log.Logger
	now       func() time.Time

	state        State
	sessionToken string
	clientID     string
	code         string
	verifier     string
	token        *models.SessionToken
}

// NewSession creates a session in the [Unauthenticated] state.
func NewSession(opts SessionOpts) *Session {
	s := &Session{
		client:  opts.Client,
		scraper: opts.Scraper,
		cache:   opts.Cache,
		logger:  opts.Logger,
		now:     opts.Now,
	}

	if s.client == nil {
		s.client = shared.NewHTTPClient(0)
	}
	if opts.Endpoints != nil {
		s.endpoints = *opts.Endpoints
	} else {
		s.endpoints = DefaultEndpoints()
	}
	if s.scraper == nil {
		s.scraper = PatternScraper{}
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// State returns the current step.
func (s *Session) State() State {
	return s.state
}

// Token returns the bearer token once the session is [Authorized].
func (s *Session) Token() *models.SessionToken {
	return s.token
}

// HTTPClient returns the unauthenticated client shared with the schedule service.
func (s *Session) HTTPClient() *http.Client {
	return s.client
}

func (s *Session) expect(want State, op string) error {
	if s.state != want {
		return fmt.Errorf("%w: %s requires %s, session is %s", shared.ErrInvalidState, op, want, s.state)
	}
	return nil
}

type authnOptions struct {
	MultiOptionalFactorEnroll bool `json:"multiOptionalFactorEnroll"`
	WarnBeforePasswordExpired bool `json:"warnBeforePasswordExpired"`
}

type authnRequest struct {
	Username string       `json:"username"`
	Password string       `json:"password"`
	Options  authnOptions `json:"options"`
}

// Authenticate logs in with credentials and stores the IdP session token.
func (s *Session) Authenticate(ctx context.Context, creds Credentials) error {
	if err := s.expect(Unauthenticated, "authenticate"); err != nil {
		return err
	}
	if creds.Username == "" || creds.Password == "" {
		return shared.ErrMissingCredentials
	}

	payload, err := json.Marshal(authnRequest{
		Username: creds.Username,
		Password: creds.Password,
		Options:  authnOptions{WarnBeforePasswordExpired: true},
	})
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoints.authnURL(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create authn request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	s.logger.Debug("authenticating", "user", creds.Username)
	body, err := shared.Do(s.client, req)
	if err != nil {
		if summary := gjson.GetBytes(body, "errorSummary").String(); summary != "" {
			return fmt.Errorf("%w: %w (%s)", shared.ErrAuthFailure, err, summary)
		}
		return fmt.Errorf("%w: %w", shared.ErrAuthFailure, err)
	}

	if !gjson.ValidBytes(body) {
		return fmt.Errorf("%w: %w: authn body is not JSON", shared.ErrAuthFailure, shared.ErrResponseParse)
	}
	token := gjson.GetBytes(body, "sessionToken").String()
	if token == "" {
		return fmt.Errorf("%w: %w: authn response has no sessionToken", shared.ErrAuthFailure, shared.ErrResponseParse)
	}

	s.sessionToken = token
	s.state = Authenticated
	return nil
}

// FetchAuthorizationCode scrapes the client id, then requests an authorization code with a fresh PKCE verifier.
func (s *Session) FetchAuthorizationCode(ctx context.Context) error {
	if err := s.expect(Authenticated, "fetch authorization code"); err != nil {
		return err
	}

	clientID, err := s.fetchClientID(ctx)
	if err != nil {
		return err
	}

	verifier := oauth2.GenerateVerifier()
	state, nonce := shared.GenerateID(), shared.GenerateID()

	authURL := s.oauthConfig(clientID).AuthCodeURL(state,
		oauth2.S256ChallengeOption(verifier),
		oauth2.SetAuthURLParam("nonce", nonce),
		oauth2.SetAuthURLParam("response_mode", "okta_post_message"),
		oauth2.SetAuthURLParam("sessionToken", s.sessionToken),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, authURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create authorize request: %w", err)
	}

	s.logger.Debug("requesting authorization code", "client_id", clientID)
	page, err := shared.Do(s.client, req)
	if err != nil {
		return fmt.Errorf("authorize request: %w", err)
	}

	code, err := s.scraper.AuthorizationCode(page)
	if err != nil {
		return err
	}

	s.clientID = clientID
	s.code = code
	s.verifier = verifier
	s.state = CodeReceived
	return nil
}

func (s *Session) fetchClientID(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoints.OktaScriptURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create okta script request: %w", err)
	}

	script, err := shared.Do(s.client, req)
	if err != nil {
		return "", fmt.Errorf("okta script: %w", err)
	}
	return s.scraper.ClientID(script)
}

func (s *Session) oauthConfig(clientID string) *oauth2.Config {
	base := s.endpoints.oauthBase()
	return &oauth2.Config{
		ClientID:    clientID,
		RedirectURL: s.endpoints.RedirectURL,
		Scopes:      scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   base + "/authorize",
			TokenURL:  base + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// ExchangeToken trades the authorization code for a bearer token and stamps its absolute expiry.
func (s *Session) ExchangeToken(ctx context.Context) error {
	if err := s.expect(CodeReceived, "exchange token"); err != nil {
		return err
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.client)
	tok, err := s.oauthConfig(s.clientID).Exchange(ctx, s.code, oauth2.VerifierOption(s.verifier))
	if err != nil {
		var rErr *oauth2.RetrieveError
		if errors.As(err, &rErr) && rErr.Response != nil {
			return fmt.Errorf("%w: %w: token endpoint returned status %d", shared.ErrTokenExchange, shared.ErrUnsuccessfulStatus, rErr.Response.StatusCode)
		}
		return fmt.Errorf("%w: %v", shared.ErrTokenExchange, err)
	}

	now := s.now()
	expiresIn := tok.ExpiresIn
	if expiresIn == 0 {
		switch raw := tok.Extra("expires_in").(type) {
		case float64:
			expiresIn = int64(raw)
		case int64:
			expiresIn = raw
		case string:
			expiresIn, _ = strconv.ParseInt(raw, 10, 64)
		}
		if expiresIn == 0 && !tok.Expiry.IsZero() {
			expiresIn = int64(tok.Expiry.Sub(now).Seconds())
		}
	}

	idToken, _ := tok.Extra("id_token").(string)
	scope, _ := tok.Extra("scope").(string)

	s.token = &models.SessionToken{
		TokenType:   tok.TokenType,
		AccessToken: tok.AccessToken,
		Scope:       scope,
		IDToken:     idToken,
		ExpiresIn:   expiresIn,
		ExpiresAt:   now.Add(time.Duration(expiresIn) * time.Second),
	}
	s.code, s.verifier = "", ""
	s.state = Authorized
	return nil
}

// Authorize returns a bearer token, from the cache when it is still valid or from a full run of the flow.
//
// Only a full run writes the cache.
func (s *Session) Authorize(ctx context.Context, creds Credentials) (*Authorization, error) {
	now := s.now()

	if s.state == Authorized && s.token.IsValid(now) {
		return &Authorization{Token: s.token, FromCache: true, base: s.client}, nil
	}

	if s.cache != nil {
		cached, err := s.cache.Load()
		if err != nil {
			s.logger.Warn("ignoring unreadable token cache", "path", s.cache.Path(), "error", err)
		} else if cached.IsValid(now) {
			s.logger.Debug("using cached token", "remaining", cached.Remaining(now).Round(time.Second))
			s.token = cached
			s.state = Authorized
			return &Authorization{Token: cached, FromCache: true, base: s.client}, nil
		}
	}

	s.reset()
	if err := s.Authenticate(ctx, creds); err != nil {
		return nil, err
	}
	if err := s.FetchAuthorizationCode(ctx); err != nil {
		return nil, err
	}
	if err := s.ExchangeToken(ctx); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Save(s.token); err != nil {
			s.logger.Warn("failed to write token cache", "path", s.cache.Path(), "error", err)
		}
	}

	s.logger.Info("authorized", "expires_at", s.token.ExpiresAt.Local().Format(time.Kitchen))
	return &Authorization{Token: s.token, base: s.client}, nil
}

func (s *Session) reset() {
	s.state = Unauthenticated
	s.sessionToken, s.clientID, s.code, s.verifier = "", "", "", ""
	s.token = nil
}
