package globals

// Context keys
type ContextKey string

const SessionIDKey ContextKey = "sessionId"

// SessionHeader carries the shopper's session id; each session owns one cart.
const SessionHeader = "X-Session-ID"

// DefaultSession is used when a request carries no session header.
const DefaultSession = "default"
