// Package api contains the HTTP handlers for the public REST surface:
// account sign-up and sign-in, the Google OAuth flow, and the catalog CRUD
// endpoints. Handlers decode and validate requests, delegate to the stores
// and services, and translate internal errors into sanitized responses.
package api
