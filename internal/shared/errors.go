package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// HTTP errors, shared by every upstream call
	ErrTransport          = fmt.Errorf("transport failure")
	ErrUnsuccessfulStatus = fmt.Errorf("unsuccessful status")
	ErrResponseParse      = fmt.Errorf("failed to parse response")
	ErrUnexpectedAPIShape = fmt.Errorf("unexpected API response shape")

	// Scraping errors
	ErrScrapePatternNotFound     = fmt.Errorf("scrape pattern not found")
	ErrClientIDNotFound          = fmt.Errorf("%w: client id", ErrScrapePatternNotFound)
	ErrAuthorizationCodeNotFound = fmt.Errorf("%w: authorization code", ErrScrapePatternNotFound)

	// Authentication errors
	ErrAuthFailure      = fmt.Errorf("authentication failed")
	ErrTokenExchange    = fmt.Errorf("token exchange failed")
	ErrInvalidState     = fmt.Errorf("invalid session state")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")

	// Media gateway errors
	ErrGraphQLRequest = fmt.Errorf("graphql request failed")
	ErrGraphQLParse   = fmt.Errorf("graphql response parse failed")

	// Selection errors
	ErrNoGameAvailable    = fmt.Errorf("no game available")
	ErrInvalidGameNumber  = fmt.Errorf("invalid game number")
	ErrGameNumberNotFound = fmt.Errorf("game number not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrInvalidDate     = fmt.Errorf("%w: date", ErrInvalidInput)
	ErrInvalidTeam     = fmt.Errorf("%w: team", ErrInvalidInput)
	ErrInvalidFeed     = fmt.Errorf("%w: feed", ErrInvalidInput)
	ErrInvalidFilter   = fmt.Errorf("%w: filter", ErrInvalidInput)
	ErrMissingArgument = fmt.Errorf("missing required argument")

	// Storage errors
	ErrRecordNotFound = fmt.Errorf("record not found")

	// Player errors
	ErrPlayerNotFound = fmt.Errorf("media player not found")
	ErrPlayerFailed   = fmt.Errorf("media player failed")
)
