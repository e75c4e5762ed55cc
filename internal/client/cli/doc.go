// Package cli provides the interactive StudyDeck command-line client.
//
// It wires configuration, the local database, the token store of the
// selected platform, the API client and the session store, then runs a
// REPL. On start it restores a persisted session, and a background watcher
// probes the server to switch between online and offline mode.
//
// Commands: help, register, login, logout, whoami, decks, streak, exit.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
