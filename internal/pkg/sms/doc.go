// Package sms defines the contracts for sending text messages.
//
// The main purpose is to keep the rest of the application independent from a
// specific SMS gateway. Use cases work with the SMS interface and Message
// payload; concrete gateways (Twilio, MSG91, Fast2SMS, Textlocal) and a
// console fallback for local development are implemented in this package.
package sms
