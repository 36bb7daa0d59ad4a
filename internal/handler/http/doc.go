// Package http implements the REST transport of the vault.
//
// It wires the chi router, the request handlers and the middleware chain:
// trace ids, access logging, metrics, panic recovery, per-client rate
// limiting, response compression and bearer token authentication. Handlers
// only translate between HTTP and the service layer; they never see key
// material or ciphertext.
package http
