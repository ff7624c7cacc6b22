// Package client contains the client-side building blocks for BMIC.
//
// # Overview
//
// The package provides:
//  1. HTTPLookupClient, which fetches the remote login payload
//     ({"user": {...}, "token": "..."}) and reports reachability via Ping.
//  2. AvatarUploader, which asks the server for a presigned PUT URL, uploads
//     a local image and returns the public avatar URL.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) that opens the
//     SQLite database and applies embedded goose migrations.
//
// # Error Handling
//
// Failures are exposed as sentinel errors that callers match with errors.Is:
// ErrUnavailable (transport failure or a body that is not JSON), ErrRejected
// (non-2xx status or JSON of the wrong shape) and ErrUnauthorized (401/403,
// also wraps ErrRejected). A well-formed payload missing its user or token is
// returned without error.
//
// All operations accept context.Context and honor cancellation.
package client
