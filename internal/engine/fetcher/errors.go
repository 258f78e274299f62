package fetcher

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
)

// FetchError reports a page that could not be retrieved, either because the
// transport failed or because the server answered with a non-2xx status
type FetchError struct {
	URL        string
	StatusCode int  // 0 when no response was received
	Insecure   bool // set when the failure happened on the unverified retry
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: HTTP %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error
func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsCertificateError reports whether err was caused by TLS certificate
// validation rather than by the network or the server
func IsCertificateError(err error) bool {
	if err == nil {
		return false
	}

	var verifyErr *tls.CertificateVerificationError
	if errors.As(err, &verifyErr) {
		return true
	}

	var unknownAuthority x509.UnknownAuthorityError
	var hostname x509.HostnameError
	var invalid x509.CertificateInvalidError
	var systemRoots x509.SystemRootsError
	return errors.As(err, &unknownAuthority) ||
		errors.As(err, &hostname) ||
		errors.As(err, &invalid) ||
		errors.As(err, &systemRoots)
}
