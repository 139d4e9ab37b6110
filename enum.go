package responder

// Enumerable is the interface implemented by types that can only be represented by enumerable, constant values.
//
// Values received from callers ought to be checked with Valid before use.
type Enumerable interface {
	String() string
	Valid() error
}
