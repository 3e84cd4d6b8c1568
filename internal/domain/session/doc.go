// Package session tracks connected shell sessions.
//
// Each WebSocket shell connection gets its own lock controller; the registry
// keeps the live set so the REST surface can look sessions up by ID and
// report aggregate stats. Sessions are not persisted: they exist for the
// lifetime of the connection.
package session
