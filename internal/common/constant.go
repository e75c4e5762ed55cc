// Package common contains shared constants, sentinel errors and small helpers
// used across StudyDeck client components.
package common

const (
	// AuthTokenKey is the single storage key holding the opaque credential.
	AuthTokenKey = "auth_token"

	// InstallationIDKey stores a random per-installation identifier.
	InstallationIDKey = "installation_id"

	// SecureStoreSaltKey stores the argon2 salt used to derive the sealing key
	// of the encrypted token store.
	SecureStoreSaltKey = "secure_store_salt"
)

const (
	// AuthorizationHeaderName carries the bearer credential on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the credential in the Authorization header.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName correlates client logs with server logs.
	RequestIDHeaderName = "X-Request-ID"
)
