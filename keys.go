package responder

type Key string

const (
	// IpAddrKey stashes the IP address of an HTTP request.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"

	// ResponderKey stashes the *resp.Responder handlers build responses with.
	ResponderKey Key = "ResponderKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "responder context key: " + string(k)
}
