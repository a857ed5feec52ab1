package observability

import (
	"net/url"
)

// RedactDSN strips the credentials from a Sentry DSN, so that it is safe to
// print in logs.
func RedactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Host == "" {
		return "<invalid DSN>"
	}
	u.User = nil
	return u.String()
}
