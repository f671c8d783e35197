// Package sessionkit derives client, session and event identifiers for
// stateless request handling, built on compact time-sortable push IDs.
//
// A Tracker turns "whatever identifier state the last request left behind"
// plus the current time into a fresh identifier waterfall: the client
// identifier survives for years, the session identifier regenerates after an
// inactivity timeout, and the event identifier regenerates on every call. A
// session/event sequence counter ("2-14": second session, fourteenth event)
// rides along.
//
// # Core Concepts
//
//   - Push ID: a sortable identifier embedding a millisecond timestamp and a
//     random or hashed suffix (package pushid).
//   - Waterfall: client → session → event. Expiry higher up forces
//     regeneration below, never the other way around.
//   - Storage collaborator: the caller-supplied key-value adapter that
//     persists the four values (package storage and its subpackages).
//   - Sequence: the "<session>-<event>" counter pair.
//
// # Getting Started
//
//	tracker := sessionkit.New(
//	    sessionkit.WithSessionTimeout(30 * time.Minute),
//	)
//
//	store := cookiestore.New(r.Header.Get("Cookie"))
//	result, err := tracker.Process(ctx, store)
//	if err != nil {
//	    return err
//	}
//	for _, c := range store.SetCookies() {
//	    w.Header().Add("Set-Cookie", c)
//	}
//
//	result.New.Session // current session ID
//	result.Changes.NewSession
//
// The tracker itself performs no I/O and holds no per-visitor state; every
// Process call is a pure transform over the store's contents plus one read
// of a pseudo-random sequence. Adapters exist for process memory, response
// cookies, Redis and etcd; anything implementing storage.Store works.
//
// # Error Handling
//
// Corrupt or missing stored identifiers are absorbed: they read as absent
// and the visitor is simply treated as new. Only two things fail a Process
// call: a nil store (ErrNoStore) and a storage write error. Errors are
// structured and work with errors.Is():
//
//	if errors.Is(err, sessionkit.ErrNoStore) {
//	    // caller forgot to supply storage
//	}
//
// # Configuration
//
// Options configure a Tracker directly; LoadConfig reads the same settings
// from a YAML file:
//
//	cfg, err := sessionkit.LoadConfig("sessionkit.yaml")
//	tracker := sessionkit.New(cfg.Options()...)
//
// # Observability
//
// Process emits one OpenTelemetry span per call, attributed with the
// new-client/new-session verdicts and sequence numbers. The default tracer
// is a no-op; supply one with WithTracer. Decision logging goes through
// log/slog at debug level.
package sessionkit
