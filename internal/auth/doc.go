// Package auth signs in to the MLB identity provider and produces an authorized HTTP client.
//
// # State Machine
//
// A [Session] moves through four states, each reachable only from its predecessor:
//
//  1. [Unauthenticated] → [Session.Authenticate] : credential login, yields an IdP session token
//  2. [Authenticated] → [Session.FetchAuthorizationCode] : scrapes the client id and the authorization code
//  3. [CodeReceived] → [Session.ExchangeToken] : PKCE authorization_code grant
//  4. [Authorized] : the bearer token is available
//
// Calling a step out of order fails with [shared.ErrInvalidState].
//
// # Token Cache
//
// [Session.Authorize] checks the [TokenCache] before touching the network.
// A cached token that is still valid skips all four requests and the cache is not rewritten.
// A full authorization writes the cache with the computed absolute expiry.
//
// # Scraping
//
// The client id lives in a JavaScript bundle and the authorization code is embedded in an HTML page.
// Both are extracted by a [Scraper]; [PatternScraper] is the only implementation.
package auth
