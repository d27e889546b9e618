package registry

import (
	"fmt"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"

	"fillwire.dev/fillwire/wire"
)

// NotFound is returned by Get/UpdateValue/administrative lookups for
// an id that is not registered.
var NotFound = fmt.Errorf("registry: tag not found")

// InvalidValue is returned when a caller attempts to store a value
// whose type does not match the tag's fixed DataType.
var InvalidValue = fmt.Errorf("registry: invalid value for tag type")

// Registry is the server-side tag store consumed by the protocol
// handlers. It is a small interface rather than a concrete struct so
// that handlers can be tested against an in-memory fake without a real
// server (spec.md §9 redesign flag: higher-order callbacks captured
// over a server process -> a Registry interface), grounded on the
// teacher's own Persister interface (common/persistance/persistence.go).
type Registry interface {
	// Insert adds tag, replacing any existing tag with the same id
	// (spec.md §3.4 invariant b; §9 open question b). Returns
	// wire.StatusMemoryOverflow-mapped error if the registry is full
	// and tag.ID is not already present.
	Insert(tag Tag) error
	// Get returns the tag for id, or NotFound.
	Get(id uint16) (Tag, error)
	// UpdateValue decodes a numeric 4-byte payload per the tag's
	// DataType and stores it, or returns NotFound / InvalidValue.
	UpdateValue(id uint16, payload [4]byte) error
	// SetValue stores v directly (used by the WriteString handler,
	// whose string body does not travel in a 4-byte payload).
	SetValue(id uint16, v Value) error
	// Remove deletes id; removing an absent id is a no-op (idempotent).
	Remove(id uint16)
	// List returns a snapshot of every registered tag.
	List() []Tag
	// ClientCount reports the number of currently connected clients.
	ClientCount() int
	// IncrClientCount adjusts the connected-client count by delta;
	// the server calls this on accept (+1) and on disconnect (-1).
	IncrClientCount(delta int)
}

// MemoryRegistry is the concrete, in-process Registry implementation.
// Tags live in an LRU-backed cache (github.com/hashicorp/golang-lru, a
// dependency carried over from the teacher's Agent.hostAuthCallbacksBySessionID
// cache in daemon/ssh_agent.go) sized to a fixed capacity: insertion
// beyond capacity for a new id is refused rather than silently
// evicting a live tag, since tags are authoritative process state, not
// a disposable cache (spec.md §3.3 MemoryOverflow). All composite
// read-modify-write operations additionally take mu, the single
// serialization point required by spec.md §5: two concurrent writes to
// the same tag id apply in some serial order, and a concurrent read
// never observes a torn value.
type MemoryRegistry struct {
	mu           sync.RWMutex
	cache        *lru.Cache
	capacity     int
	clientCount  int32
}

// NewMemoryRegistry creates a registry that holds at most capacity
// tags. A non-positive capacity means unbounded.
func NewMemoryRegistry(capacity int) *MemoryRegistry {
	size := capacity
	if size <= 0 {
		size = 1 << 20 // effectively unbounded for a tag registry
	}
	cache, err := lru.New(size)
	if err != nil {
		// lru.New only fails for size <= 0, excluded above.
		panic(err)
	}
	return &MemoryRegistry{cache: cache, capacity: capacity}
}

func (r *MemoryRegistry) Insert(tag Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.cache.Peek(tag.ID)
	if !exists && r.capacity > 0 && r.cache.Len() >= r.capacity {
		return wire.StatusMemoryOverflow
	}
	r.cache.Add(tag.ID, tag)
	return nil
}

func (r *MemoryRegistry) Get(id uint16) (Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.cache.Peek(id)
	if !ok {
		return Tag{}, NotFound
	}
	return v.(Tag), nil
}

func (r *MemoryRegistry) UpdateValue(id uint16, payload [4]byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.cache.Peek(id)
	if !ok {
		return NotFound
	}
	tag := v.(Tag)
	updated, err := tag.ApplyPayload(payload)
	if err != nil {
		return InvalidValue
	}
	r.cache.Add(id, updated)
	return nil
}

func (r *MemoryRegistry) SetValue(id uint16, value Value) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.cache.Peek(id)
	if !ok {
		return NotFound
	}
	tag := v.(Tag)
	updated, err := tag.WithValue(value)
	if err != nil {
		return InvalidValue
	}
	r.cache.Add(id, updated)
	return nil
}

func (r *MemoryRegistry) Remove(id uint16) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Remove(id)
}

func (r *MemoryRegistry) List() []Tag {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := r.cache.Keys()
	tags := make([]Tag, 0, len(keys))
	for _, k := range keys {
		if v, ok := r.cache.Peek(k); ok {
			tags = append(tags, v.(Tag))
		}
	}
	return tags
}

func (r *MemoryRegistry) ClientCount() int {
	return int(atomic.LoadInt32(&r.clientCount))
}

func (r *MemoryRegistry) IncrClientCount(delta int) {
	atomic.AddInt32(&r.clientCount, int32(delta))
}
