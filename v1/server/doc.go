// Package server exposes the engine as a JSON administration API:
// auditing, subject listing and deletion, topic documentation and the
// archived specification documents.
//
// # Routes
//
//	GET    /health                          liveness, unauthenticated
//	POST   /api/check                       run the audit, return the report
//	GET    /api/schemas                     subject listing with details
//	DELETE /api/schemas/{subject}           delete one subject (?permanent=true)
//	POST   /api/schemas/bulk-delete         delete a list of subjects
//	POST   /api/schemas/purge               purge all soft-deleted subjects
//	GET    /api/topics                      topics implied by subject names
//	POST   /api/asyncapi/generate/{topic}   document a topic, store the YAML
//	GET    /api/asyncapi/specs              archived documents
//	GET    /api/asyncapi/specs/{name}       one document (?format=yaml)
//	GET    /api/history                     recent operation log entries
//
// Everything under /api requires HTTP basic auth when credentials are
// configured. Mutating routes append to the operation log and publish
// notifications; both are advisory and never fail the request.
//
// # Failure model
//
// Delete operations report per-subject failures inside their result
// bodies with status 200; the registry's refusal to delete a subject
// is data, not a transport error. HTTP error statuses are reserved for
// malformed requests, unknown documents and listing failures.
package server
