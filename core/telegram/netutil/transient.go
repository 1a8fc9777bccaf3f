// Package netutil classifies network failures seen while calling the Bot API.
package netutil

import (
	"errors"
	"net"
	"net/url"
)

// IsTransient reports whether err looks like a timeout or dial failure that
// could succeed on a later attempt. The bot never retries on its own; the
// flag only annotates failure logs.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && (opErr.Timeout() || opErr.Op == "dial") {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && (dnsErr.IsTimeout || dnsErr.IsTemporary) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
