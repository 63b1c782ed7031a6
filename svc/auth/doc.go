// Package auth verifies account credentials and manages the authenticated
// principal of a request.
//
// CredentialVerifier checks an email/password pair against stored bcrypt
// hashes and never reveals which half was wrong. Service builds on it to log
// accounts in (issuing a bearer token), register new accounts and change
// passwords. The Principal attached to a request context by the authentication
// guard is read back with PrincipalFromContext.
package auth
