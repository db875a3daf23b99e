package credentials

import "github.com/storepulse/storepulse-cli/tenants"

// Credentials is what survives a client restart: the opaque bearer token and
// the cached tenant record written together on every successful sign-in.
// An absent token means logged out.
type Credentials struct {
	Token  string          `json:"token"`
	Tenant *tenants.Tenant `json:"tenant"`
}
