// Package sms sends text messages through a provider.
//
// Twilio is the production driver. The log driver prints messages instead of
// sending them and is meant for local development.
package sms
