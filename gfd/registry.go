package gfd

import (
	"fmt"
	"sync"

	"github.com/gfdtools/gfdfile"
)

// Codec decodes and encodes the body of one kind of resource.
type Codec struct {
	// Name is a readable name of the kind.
	Name string

	// Chunk is true if the kind may appear as a top-level chunk. Kinds that
	// only occur nested within another resource have no on-disk identifier.
	Chunk bool

	// Decode reads the body of a resource. The version of the resource is the
	// version of r. A nil Decode means the kind cannot be decoded.
	Decode func(r *Reader) (gfdfile.Resource, error)

	// Encode writes the body of res, which has the kind of the codec.
	Encode func(w *Writer, res gfdfile.Resource) error
}

var registry = struct {
	sync.RWMutex
	codecs map[gfdfile.Kind]Codec
}{codecs: map[gfdfile.Kind]Codec{}}

// Register associates a codec with a kind. Register panics if the kind is
// already registered, or if the codec has no Encode function. Codecs are
// expected to be registered during initialization.
func Register(kind gfdfile.Kind, codec Codec) {
	if codec.Encode == nil {
		panic(fmt.Sprintf("gfd: codec for %s has no encoder", kind))
	}
	registry.Lock()
	defer registry.Unlock()
	if _, ok := registry.codecs[kind]; ok {
		panic(fmt.Sprintf("gfd: codec for %s already registered", kind))
	}
	registry.codecs[kind] = codec
}

// Lookup returns the codec registered for kind.
func Lookup(kind gfdfile.Kind) (codec Codec, ok bool) {
	registry.RLock()
	defer registry.RUnlock()
	codec, ok = registry.codecs[kind]
	return codec, ok
}

// LookupResource returns the codec registered for the kind of res.
func LookupResource(res gfdfile.Resource) (codec Codec, ok bool) {
	return Lookup(res.Kind())
}

// Kinds returns the registered kinds.
func Kinds() []gfdfile.Kind {
	registry.RLock()
	defer registry.RUnlock()
	kinds := make([]gfdfile.Kind, 0, len(registry.codecs))
	for k := range registry.codecs {
		kinds = append(kinds, k)
	}
	return kinds
}

// decodeResource decodes the body of a resource of the given kind, tracking
// the nesting depth.
func decodeResource(r *Reader, kind gfdfile.Kind) (gfdfile.Resource, error) {
	codec, ok := Lookup(kind)
	if !ok {
		r.Fail(KindError{Kind: kind})
		return nil, r.Err()
	}
	if codec.Decode == nil {
		r.Fail(UnsupportedError{Kind: kind, Op: "decode"})
		return nil, r.Err()
	}
	if r.enter() {
		return nil, r.Err()
	}
	defer r.leave()
	if r.logger != nil {
		r.logger.Debug("decode", "kind", kind, "version", r.version, "offset", r.N())
	}
	res, err := codec.Decode(r)
	if err != nil {
		r.Fail(err)
		return nil, r.Err()
	}
	return res, nil
}

// encodeResource encodes the body of res, which must have the version of w.
func encodeResource(w *Writer, res gfdfile.Resource) error {
	codec, ok := LookupResource(res)
	if !ok {
		w.Fail(KindError{Kind: res.Kind()})
		return w.Err()
	}
	if v := res.Version(); v != w.version {
		w.Fail(VersionError{Kind: res.Kind(), Want: w.version, Actual: v})
		return w.Err()
	}
	if err := codec.Encode(w, res); err != nil {
		w.Fail(err)
		return w.Err()
	}
	return nil
}
