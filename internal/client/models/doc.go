// Package models defines the client-side data models exchanged with the
// StudyDeck API.
package models
