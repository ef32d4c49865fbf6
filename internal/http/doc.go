// Package http provides HTTP handlers and middleware for the recurrence preview API.
//
// The router exposes the following endpoints:
//   - POST /previews: computes an inline configuration. Body:
//     {"configuration": {...}, "reference": RFC3339?}. Response: the `previewResponse`
//     payload defined in preview_handler.go.
//   - GET /configurations, POST /configurations: list and store named configurations
//     exchanging the `configurationDTO` payload defined in configuration_handler.go.
//   - GET /configurations/{id}, PUT /configurations/{id}, DELETE /configurations/{id}:
//     read, replace and remove one stored configuration.
//   - GET /configurations/{id}/preview?reference=RFC3339: previews a stored configuration.
//   - GET /configurations/{id}/calendar.ics?reference=RFC3339: the same occurrences as a
//     text/calendar document with one VEVENT per occurrence.
//   - GET /health: reports storage reachability.
//
// Invalid configurations are answered with 422 and an `error_code` naming the
// schedule error kind; the message is rendered in the configuration's language.
package http
