// Package hash hashes and verifies secrets such as passwords.
//
// Only the hash is stored; verification compares the plaintext against it in
// constant time.
package hash
