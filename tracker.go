package sessionkit

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/tracknest/sessionkit/pushid"
	"github.com/tracknest/sessionkit/storage"
)

// Tracker derives the client/session/event identifier waterfall from prior
// stored state and the current time. Every Process call is a full
// state-in/state-out transform: the tracker holds configuration only, never
// session state, so one instance can serve any number of visitors as long as
// each brings its own storage collaborator.
type Tracker struct {
	cfg trackerConfig
}

// New creates a Tracker with the given options.
func New(opts ...Option) *Tracker {
	cfg := trackerConfig{
		sessionTimeout:   DefaultSessionTimeout,
		clientTTL:        DefaultClientTTL,
		randomnessLength: DefaultRandomnessLength,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.sessionTimeout <= 0 {
		cfg.sessionTimeout = DefaultSessionTimeout
	}
	if cfg.clientTTL <= 0 {
		cfg.clientTTL = DefaultClientTTL
	}
	if cfg.randomnessLength < pushid.MinRandomLength {
		cfg.randomnessLength = pushid.MinRandomLength
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.tracer == nil {
		cfg.tracer = noop.NewTracerProvider().Tracer("sessionkit")
	}
	if cfg.generator == nil {
		cfg.generator = pushid.NewGenerator()
	}
	return &Tracker{cfg: cfg}
}

// State is one snapshot of the identifier waterfall. Absent identifiers are
// zero-valued.
type State struct {
	// Client is the longest-lived identifier, minted once per visitor.
	Client pushid.ID

	// Session regenerates after the inactivity timeout.
	Session pushid.ID

	// Event regenerates on every Process call.
	Event pushid.ID

	// Sequence counts sessions and within-session events.
	Sequence Sequence
}

// Changes summarizes what a Process call regenerated.
type Changes struct {
	// NewClient is true when no prior client identifier existed.
	NewClient bool

	// NewSession is true when no prior session identifier existed or the
	// session had expired.
	NewSession bool
}

// Result is the outcome of one Process call.
type Result struct {
	// New is the post-transition state, already persisted.
	New State

	// Old is the pre-transition snapshot. Its Event field holds the
	// previous call's event identifier.
	Old State

	// Changes reports which identifiers were regenerated.
	Changes Changes
}

// Process runs one session-state transition against the supplied storage
// collaborator: it reads the prior identifiers, decides expiry, mints
// replacements, persists the new state and returns both snapshots.
//
// Corrupt or missing stored values degrade to "absent" and never fail the
// call. The only validation failure is a nil store; storage write failures
// propagate as KindStorage errors.
func (t *Tracker) Process(ctx context.Context, store storage.Store) (*Result, error) {
	const op = "Tracker.Process"

	if store == nil {
		return nil, &Error{Op: op, Kind: KindValidation, Err: ErrNoStore}
	}

	ctx, span := t.cfg.tracer.Start(ctx, "sessionkit.Process")
	defer span.End()

	now := t.cfg.now()
	old := t.readState(ctx, store)

	// Last activity is taken from the previous event first, then the
	// session, then the client.
	var lastActivity int64
	var hasActivity bool
	for _, id := range []pushid.ID{old.Event, old.Session, old.Client} {
		if !id.IsZero() {
			lastActivity = id.Millis
			hasActivity = true
			break
		}
	}

	expired := !hasActivity || now.UnixMilli()-lastActivity > t.cfg.sessionTimeout.Milliseconds()

	changes := Changes{
		NewClient:  old.Client.IsZero(),
		NewSession: old.Session.IsZero() || expired,
	}

	event, err := t.mint(now, "eID")
	if err != nil {
		return nil, &Error{Op: op, Kind: KindValidation, Err: err}
	}

	state := State{Event: event}

	state.Client = old.Client
	if changes.NewClient {
		state.Client = t.derive(event, now, "cID")
	}

	state.Session = old.Session
	if changes.NewSession {
		state.Session = t.derive(event, now, "sID")
	}

	seq := old.Sequence.next(!old.Sequence.IsZero(), changes.NewSession)
	state.Sequence = seq

	if err := t.persist(ctx, store, state, now); err != nil {
		return nil, &Error{Op: op, Kind: KindStorage, Err: err}
	}

	span.SetAttributes(
		attribute.Bool("session.new_client", changes.NewClient),
		attribute.Bool("session.new_session", changes.NewSession),
		attribute.Int("session.number", seq.Session),
		attribute.Int("session.event_number", seq.Event),
	)
	t.cfg.logger.DebugContext(ctx, "session processed",
		"new_client", changes.NewClient,
		"new_session", changes.NewSession,
		"sequence", seq.String(),
		"event_id", event.Raw)

	return &Result{New: state, Old: old, Changes: changes}, nil
}

// Reset instructs the storage collaborator to forget all four keys.
func (t *Tracker) Reset(ctx context.Context, store storage.Store) error {
	const op = "Tracker.Reset"

	if store == nil {
		return &Error{Op: op, Kind: KindValidation, Err: ErrNoStore}
	}
	if err := store.Clear(ctx); err != nil {
		return &Error{Op: op, Kind: KindStorage, Err: err}
	}
	return nil
}

// mint creates a fresh identifier at now, tagged with role when stubs are
// enabled.
func (t *Tracker) mint(now time.Time, role string) (pushid.ID, error) {
	opts := []pushid.Option{
		pushid.WithTime(now),
		pushid.WithLength(t.cfg.randomnessLength),
	}
	if t.cfg.useStubs {
		opts = append(opts, pushid.WithTag(role))
	}
	return t.cfg.generator.New(opts...)
}

// derive produces the client or session identifier when one must be minted
// in the same call as the event identifier. With stubs enabled each role
// gets its own tagged identifier; with stubs disabled all roles share the
// event identifier's string value, the legacy compatibility rule.
func (t *Tracker) derive(event pushid.ID, now time.Time, role string) pushid.ID {
	if !t.cfg.useStubs {
		return event
	}
	id, err := t.mint(now, role)
	if err != nil {
		// Role tags are fixed, valid strings; minting cannot fail for them.
		return event
	}
	return id
}

// readState loads and leniently decodes the prior snapshot. Missing keys,
// storage errors and unparseable identifiers all degrade to an absent field.
func (t *Tracker) readState(ctx context.Context, store storage.Store) State {
	var old State

	old.Client = t.readID(ctx, store, storage.KeyClient)
	old.Session = t.readID(ctx, store, storage.KeySession)
	old.Event = t.readID(ctx, store, storage.KeyEvent)

	raw, err := store.Get(ctx, storage.KeySequence)
	if err == nil {
		if seq, perr := ParseSequence(raw); perr == nil {
			old.Sequence = seq
		} else {
			t.cfg.logger.DebugContext(ctx, "ignoring unparseable sequence", "value", raw)
		}
	}
	return old
}

func (t *Tracker) readID(ctx context.Context, store storage.Store, key storage.Key) pushid.ID {
	raw, err := store.Get(ctx, key)
	if err != nil {
		if err != storage.ErrNotFound {
			t.cfg.logger.WarnContext(ctx, "storage read failed, treating as absent",
				"key", string(key), "error", err)
		}
		return pushid.ID{}
	}

	id, ok := pushid.ParseLenient(raw)
	if !ok {
		t.cfg.logger.DebugContext(ctx, "ignoring unparseable identifier",
			"key", string(key), "value", raw)
		return pushid.ID{}
	}
	return id
}

// persist writes the four values with their expiry policies: the client
// identifier long-term, everything else for one session timeout.
func (t *Tracker) persist(ctx context.Context, store storage.Store, state State, now time.Time) error {
	clientOpts := storage.Options{Expires: now.Add(t.cfg.clientTTL)}
	sessionOpts := storage.Options{Expires: now.Add(t.cfg.sessionTimeout)}

	if err := store.Set(ctx, storage.KeyClient, state.Client.Raw, clientOpts); err != nil {
		return err
	}
	if err := store.Set(ctx, storage.KeySession, state.Session.Raw, sessionOpts); err != nil {
		return err
	}
	if err := store.Set(ctx, storage.KeyEvent, state.Event.Raw, sessionOpts); err != nil {
		return err
	}
	return store.Set(ctx, storage.KeySequence, state.Sequence.String(), sessionOpts)
}
