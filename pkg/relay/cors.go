package relay

// CORSPolicy carries the single origin allowed to call the relay and
// produces the headers attached to every response.
//
// The relay fronts exactly one site, so the policy holds one fixed
// origin rather than a list. The headers ride on the responses
// themselves instead of a server middleware so that the Lambda
// transport, which has no middleware chain, emits byte-identical
// responses.
type CORSPolicy struct {
	origin string
}

// NewCORSPolicy creates a policy for the given allowed origin.
func NewCORSPolicy(origin string) CORSPolicy {
	return CORSPolicy{origin: origin}
}

// Origin returns the allowed origin.
func (p CORSPolicy) Origin() string {
	return p.origin
}

// Headers returns the response headers for one response: content type,
// allowed origin, allowed request headers, and allowed methods. Every
// relay response carries these, error responses and preflights included.
// A fresh map is returned on each call so callers may extend it.
func (p CORSPolicy) Headers() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  p.origin,
		"Access-Control-Allow-Headers": "Content-Type",
		"Access-Control-Allow-Methods": "POST, OPTIONS",
	}
}
