// Package jwt issues and verifies the bearer tokens handed out after phone
// verification and login.
//
// Every token carries a unique jti so a single session can be revoked on
// logout without touching the account's other sessions.
package jwt
