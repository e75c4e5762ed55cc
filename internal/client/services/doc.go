// Package services contains the application flows of the StudyDeck client:
// signing in and out, restoring a persisted session at startup, and the
// study reads shown by the CLI.
package services
