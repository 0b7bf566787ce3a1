// Package usererr turns internal errors into messages fit for end users.
//
// Backend error bodies often ride inside error text as a JSON object with a
// "detail" field; Classify digs that detail out and otherwise falls back to a
// fixed message in the configured display language. The classification path
// never propagates a failure of its own.
package usererr
