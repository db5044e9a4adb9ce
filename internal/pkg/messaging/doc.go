// Package messaging publishes messages to a broker without tying business
// code to the broker client.
//
// NATS and Kafka are supported. The noop driver accepts and discards every
// message, which lets a deployment run without a broker.
package messaging
