// Package storage defines the key-value contract between the session tracker
// and whatever persists identifier state.
//
// The tracker itself performs no I/O. Every read and write of the four
// well-known keys (client, session, event and sequence identifiers) goes
// through a caller-supplied Store. Adapters decide where the values live
// (process memory, response cookies, Redis, etcd) and what the Options
// attributes mean for their medium. An adapter that cannot honor an
// attribute ignores it.
//
// # Contract
//
//	type Store interface {
//	    Get(ctx context.Context, key Key) (string, error)
//	    Set(ctx context.Context, key Key, value string, opts Options) error
//	    Clear(ctx context.Context) error
//	}
//
// Get returns ErrNotFound for absent values; the tracker treats that (and
// any other Get failure) as "no prior state", never as fatal. Clear is a
// best-effort removal of all four keys.
//
// # Degradation
//
// An environment with no persistence at all is legal: a Store whose Get
// always returns ErrNotFound and whose Set is a no-op simply makes every
// tracker call behave as a brand-new client and session. That is an accepted
// degradation, not an error.
//
// # Concurrency
//
// The tracker assumes at most one in-flight Process call per logical session
// and takes no locks. Request-scoped adapters like cookiestore avoid shared
// state entirely by deriving reads from the incoming request and buffering
// writes for the outgoing response; shared-backend adapters (redistore,
// etcdstore) inherit the backend's own concurrency semantics.
package storage
