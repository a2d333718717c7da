// Package ipc serves medium lookups over JSON-RPC on a Unix domain socket and
// ships the matching client.
//
// The wire contract mirrors the lookup message: a CHECK_MEDIUM request with
// free text is answered with a MediumStatus. The server holds a file lock next
// to its socket so a second instance fails fast instead of stealing the path,
// and the client converts transport failures into {ok:false, error} so callers
// never see a bare error.
package ipc
