// Package api exposes the document ingestion pipeline over HTTP.
//
// Uploads arrive as multipart forms carrying the file and the target
// conversation id, matching the shape produced by chat frontends.
// The authenticated principal is read from the X-User-Principal header
// set by the fronting auth proxy.
package api
