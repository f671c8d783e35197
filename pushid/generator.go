package pushid

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tracknest/sessionkit/canonical"
)

// ErrInvalidTag is returned when a requested tag would break decoding. Tags
// travel between two hyphens in the encoded form, so a tag containing a
// hyphen or characters outside the alphabet would displace field boundaries
// on the way back.
var ErrInvalidTag = errors.New("pushid: tag contains characters outside alphabet")

// Source produces n characters drawn from Alphabet. The default source is a
// linear-congruential sequence; substitute a Source backed by crypto/rand
// for stronger uniqueness while keeping the alphabet/length contract.
type Source func(n int) string

// Generator mints push IDs. Each generator owns its own pseudo-random
// sequence and its own optional last-generated-ID cache. The zero value is
// not usable; construct with NewGenerator. Safe for concurrent use.
type Generator struct {
	mu      sync.Mutex
	seed    uint32
	source  Source
	now     func() time.Time
	last    ID
	hasLast bool
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithSource replaces the generator's randomness source.
func WithSource(src Source) GeneratorOption {
	return func(g *Generator) {
		g.source = src
	}
}

// WithSeed fixes the seed of the default linear-congruential source,
// producing a reproducible sequence. Useful in tests.
func WithSeed(seed uint32) GeneratorOption {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithClock replaces the generator's time source. Useful in tests.
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) {
		g.now = now
	}
}

// NewGenerator returns a generator whose default source is a
// linear-congruential sequence seeded from the current time.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		seed: uint32(time.Now().UnixMilli()),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// nextIndex advances the LCG and returns one alphabet index. Callers hold mu.
func (g *Generator) nextIndex() byte {
	g.seed = g.seed*1664525 + 1013904223
	return byte(g.seed>>24) & 0x3F
}

// randomness draws n alphabet characters. Callers hold mu.
func (g *Generator) randomness(n int) string {
	if g.source != nil {
		return g.source(n)
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = Alphabet[g.nextIndex()]
	}
	return string(b)
}

// Randomness draws n characters from the generator's source, clamped to a
// minimum of MinRandomLength.
func (g *Generator) Randomness(n int) string {
	if n < MinRandomLength {
		n = MinRandomLength
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.randomness(n)
}

// Last returns the most recently generated ID, if any. The cache is a
// convenience for interactive use; nothing in this module depends on it.
func (g *Generator) Last() (ID, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last, g.hasLast
}

// Option configures a single New call.
type Option func(*genConfig)

type genConfig struct {
	t          time.Time
	hasTime    bool
	tag        string
	length     int
	randomness string
	data       any
	hasData    bool
}

// WithTime sets the embedded timestamp. Defaults to the current time.
func WithTime(t time.Time) Option {
	return func(c *genConfig) {
		c.t = t
		c.hasTime = true
	}
}

// WithMillis sets the embedded timestamp in milliseconds since the epoch.
func WithMillis(ms int64) Option {
	return func(c *genConfig) {
		c.t = time.UnixMilli(ms)
		c.hasTime = true
	}
}

// WithTag sets the type tag. A non-empty tag selects the tagged encoding;
// the empty default selects legacy. Tags are validated against the alphabet.
func WithTag(tag string) Option {
	return func(c *genConfig) {
		c.tag = tag
	}
}

// WithLength sets the randomness length, clamped to a minimum of
// MinRandomLength. Defaults to MinRandomLength.
func WithLength(n int) Option {
	return func(c *genConfig) {
		c.length = n
	}
}

// WithRandomness supplies the suffix verbatim, bypassing generation.
func WithRandomness(r string) Option {
	return func(c *genConfig) {
		c.randomness = r
	}
}

// WithData derives the suffix deterministically by hashing the canonical
// serialization of v. Ignored when WithRandomness is also supplied.
func WithData(v any) Option {
	return func(c *genConfig) {
		c.data = v
		c.hasData = true
	}
}

// New mints an identifier. The only error conditions are an invalid tag and
// a WithData value that cannot be serialized.
func (g *Generator) New(opts ...Option) (ID, error) {
	cfg := genConfig{length: MinRandomLength}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.length < MinRandomLength {
		cfg.length = MinRandomLength
	}
	if err := validateTag(cfg.tag); err != nil {
		return ID{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	ms := cfg.t.UnixMilli()
	if !cfg.hasTime {
		ms = g.now().UnixMilli()
	}

	rnd := cfg.randomness
	switch {
	case rnd != "":
	case cfg.hasData:
		s, err := canonical.Serialize(cfg.data)
		if err != nil {
			return ID{}, fmt.Errorf("pushid: serialize data: %w", err)
		}
		rnd = canonical.Hash(s, cfg.length)
	default:
		rnd = g.randomness(cfg.length)
	}

	id := ID{
		Raw:        format(ms, cfg.tag, rnd),
		Millis:     ms,
		Randomness: rnd,
		Tag:        cfg.tag,
	}
	g.last = id
	g.hasLast = true
	return id, nil
}

func validateTag(tag string) error {
	for i := 0; i < len(tag); i++ {
		c := tag[i]
		if c >= 128 || alphaIndex[c] < 0 {
			return fmt.Errorf("%w: %q", ErrInvalidTag, tag)
		}
	}
	return nil
}

// defaultGenerator backs the package-level convenience functions.
var defaultGenerator = NewGenerator()

// New mints an identifier using the process-wide default generator.
func New(opts ...Option) (ID, error) {
	return defaultGenerator.New(opts...)
}

// Randomness draws n characters from the default generator's source.
func Randomness(n int) string {
	return defaultGenerator.Randomness(n)
}
