package security

// User is the resolved identity threaded through the pipeline.
type User struct {
	ID    int64
	Email string
	Role  string
}

// Context is the per-request bundle of identity, session and network
// metadata. Built at the start of pipeline processing, handed by reference to
// the wrapped handler, discarded when the request completes.
type Context struct {
	User      *User
	SessionID string
	IPAddress string
	UserAgent string
}
