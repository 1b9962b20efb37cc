// Package client is the client-side boundary to the remote document store.
//
// # Overview
//
// The package provides:
//  1. The Remote Store Adapter contract (DocumentStore) used by the
//     repository services and the sync worker: Get, Set, Delete,
//     QueryByField and UpdateFields keyed by document path.
//  2. Client, which adds session and profile-picture calls, and its gRPC
//     implementation GRPCClient. The access token is injected by a unary
//     interceptor and gRPC status codes are mapped to sentinel errors.
//  3. Local store bootstrap (InitDatabase, OpenDB), which opens the SQLite
//     file, applies embedded migrations and wires the repositories.
//
// # Error Handling
//
// Failures are classified once, here, so callers can decide between retrying
// and giving up with errors.Is:
//
//   - ErrUnavailable, ErrUnauthorized and unclassified rpc errors are retryable.
//   - ErrRejected is terminal (see IsTerminal).
//   - ErrNotFound reports a missing document.
package client
