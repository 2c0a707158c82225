package extract

import (
	"io"
	"slices"
	"sync"

	"github.com/samber/lo"
)

// Factory builds a Reader on top of a raw byte stream. The stream passed in
// is already buffered; the factory must not close it.
type Factory func(r io.Reader, opts Options) (Reader, error)

// Sniffer probes the leading bytes of an unnamed stream for one format.
// Sniffers are tried in registration order during auto-detection, so formats
// with strong magic numbers should be registered before weaker probes.
type Sniffer struct {
	Name    string
	Match   func(leading []byte) bool
	Factory Factory
}

// Registry maps format names to factories and holds the ordered sniffer list
// used for auto-detection. The zero value is not usable; call NewRegistry.
type Registry struct {
	mu       sync.RWMutex
	formats  map[string]Factory
	sniffers []Sniffer
}

func NewRegistry() *Registry {
	return &Registry{
		formats: make(map[string]Factory),
	}
}

func (r *Registry) RegisterFormat(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formats[name] = factory
}

func (r *Registry) RegisterSniffer(s Sniffer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sniffers = append(r.sniffers, s)
}

// Create builds a Reader for the named format.
func (r *Registry) Create(name string, in io.Reader, opts Options) (Reader, error) {
	r.mu.RLock()
	factory, ok := r.formats[name]
	available := r.availableFormats()
	r.mu.RUnlock()
	if !ok {
		return nil, &UnsupportedFormatError{Name: name, Available: available}
	}
	return factory(in, opts)
}

// Sniff returns the first sniffer matching the leading bytes.
func (r *Registry) Sniff(leading []byte) (Sniffer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sniffers {
		if s.Match(leading) {
			return s, true
		}
	}
	return Sniffer{}, false
}

// AvailableFormats returns the sorted names of all registered formats.
func (r *Registry) AvailableFormats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.availableFormats()
}

func (r *Registry) availableFormats() []string {
	formats := lo.Keys(r.formats)
	slices.Sort(formats)
	return formats
}

// SnifferNames returns the sniffer names in probe order.
func (r *Registry) SnifferNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Map(r.sniffers, func(s Sniffer, _ int) string { return s.Name })
}
