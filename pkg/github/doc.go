// Package github implements the ruleset administration engine: a
// paginated REST transport, a generic fold-over-pages primitive,
// name/id resolution for the organization's teams, sanitization of
// externally supplied rule documents, name-keyed create-or-update
// reconciliation of repository rulesets, and an indented report
// emitter.
//
// Everything runs on a single control flow: each page fetch, detail
// fetch, or write is a blocking round trip completed before the next
// begins, and any unexpected response status aborts the whole run.
package github
