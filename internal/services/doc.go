// Package services implements clients for the MLB stats API and the MLB media gateway.
//
// # Schedule
//
// [ScheduleClient] issues one GET against /api/v1/schedule with a fixed set of hydrations
// (broadcasts, game content and highlights, linescore, team, probable pitchers).
// It needs no authorization.
//
//   - [ScheduleClient.FetchScheduleByDate] : zero or one day; more than one is [shared.ErrUnexpectedAPIShape]
//   - [ScheduleClient.FetchScheduleByRange] : every day in the range that has games
//   - [FindTeamGames] : nil when the team is not playing
//
// # Media Gateway
//
// [MediaGatewayClient] sends GraphQL operations to a single endpoint using the bearer client from package auth.
// Every request carries the bamsdk client headers.
//
//  1. contentSearch : stream candidates for a game
//  2. initSession : a device and session pair
//  3. initPlaybackSession : the playback URL for one stream
//
// A fresh session is created for every playback; pairs are never reused.
//
// # Error Handling
//
// Schedule failures wrap the shared HTTP errors:
//   - [shared.ErrTransport] : the request never completed
//   - [shared.ErrUnsuccessfulStatus] : non-2xx status
//   - [shared.ErrResponseParse] : the body did not decode
//
// Gateway failures additionally wrap [shared.ErrGraphQLRequest] (transport, status) or
// [shared.ErrGraphQLParse] (decode failures and GraphQL errors arrays). Nothing is retried.
package services
