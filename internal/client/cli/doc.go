// Package cli provides the interactive GameKeeper command-line client.
//
// It wires configuration and the HTTP API client into a small REPL. A session
// starts with register or login, or resumes from a token passed with -token
// or GAMEKEEPER_TOKEN. While logged in, a background watcher sends
// heartbeats so the player stays on the online list, and tracks whether the
// server is reachable.
//
// Commands: register, login, verify, data, save, character, online,
// heartbeat, logout, exit.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
