// Package api is the resilient JSON-over-HTTP client of StudyDeck.
//
// # Overview
//
// Client.Request builds a request, injects credentials, executes it, and
// classifies the outcome:
//  1. The credential is read from a TokenSource (never written here) and sent
//     as "Authorization: Bearer <token>" when present.
//  2. With WithSameOriginCookies the underlying http.Client also carries a
//     cookie jar restricted to one origin, so the server can authenticate by
//     cookie when an intermediary strips the header. Without it no cookies
//     are sent at all.
//  3. JSON bodies are parsed; empty or non-JSON bodies read as {}.
//  4. Success payloads are returned unmodified.
//
// # Error Handling
//
// Every failure is one of three concrete types, all implementing Failure:
//
//   - *TransportError: no response was received. errors.Is(err, ErrUnavailable).
//   - *HTTPError: non-2xx status. Message comes from the body's "error"
//     field, then "message", then a generic text with the status. A 401
//     matches ErrUnauthorized.
//   - *MalformedResponseError: a 2xx whose JSON body could not be parsed.
//     Its message is always MalformedResponseMessage.
//
// The client never changes session state. Reacting to a 401 (for example by
// logging out) is the caller's decision.
//
// # Soft reads
//
// SafeFetchArray and SafeFetchObject wrap a FetchFunc and substitute a safe
// default for any failure. Use them only for auxiliary reads whose failure
// the caller does not need to see.
//
// # Concurrency and Contexts
//
// A Client is safe for concurrent use. Completion order of concurrent
// requests is unspecified; sequence dependent calls explicitly. Every call
// honors ctx cancellation and deadlines.
package api
