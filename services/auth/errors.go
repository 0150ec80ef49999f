package auth

import "errors"

// ErrInvalidCredentials is returned for any failed login. It deliberately
// does not say whether the username or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrAdminMissing means the seed admin record could not be loaded after
// bootstrap. This is a server misconfiguration, not a client error.
var ErrAdminMissing = errors.New("admin user not found")
