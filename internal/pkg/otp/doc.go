// Package otp generates short numeric one-time codes delivered out of band,
// such as SMS verification codes.
package otp
