// Package sleeper is a read-only client for the public Sleeper API.
//
// The API is stateless and unauthenticated. Every call fails with either a
// *NotFoundError (the identifier does not exist upstream, which Sleeper
// signals with a null body) or a *ConnectionError (transient transport
// failure). Callers decide retry policy; the client never retries.
package sleeper
