package tess

import "fmt"

// Default pool capacities, used when NewMeshPool is given non-positive
// limits.
const (
	// DefaultMaxPersistentMeshes is the default persistent-tier capacity.
	DefaultMaxPersistentMeshes = 1024
	// DefaultMaxFrameMeshes is the default frame-tier capacity.
	DefaultMaxFrameMeshes = 1024
)

// MeshTier identifies which pool tier owns a mesh.
type MeshTier uint8

const (
	// TierPersistent meshes survive across frames, keyed by content hash.
	TierPersistent MeshTier = iota
	// TierFrame meshes live until the next ResetFrame.
	TierFrame
)

// String returns a human-readable name for the tier.
func (t MeshTier) String() string {
	switch t {
	case TierPersistent:
		return "Persistent"
	case TierFrame:
		return "Frame"
	default:
		return "Unknown"
	}
}

// MeshRef is a value handle to a mesh owned by a MeshPool: a tier tag plus
// a stable index. It carries no ownership and must be resolved only through
// the pool that issued it. Refs from before a ResetFrame (frame tier) or
// ClearPersistent (persistent tier) fail lookup instead of resolving to
// recycled storage.
type MeshRef struct {
	tier       MeshTier
	index      uint32
	generation uint32
}

// Tier returns the pool tier the ref points into.
func (r MeshRef) Tier() MeshTier {
	return r.tier
}

// IsValid returns false for the zero MeshRef, which never resolves.
func (r MeshRef) IsValid() bool {
	return r.generation != 0
}

// MeshPool is the exclusive owner of all tessellated meshes, split into two
// fixed-capacity tiers: a persistent tier keyed by content hash that
// survives frames, and a frame tier reset wholesale once per frame.
//
// Exceeding a tier's capacity is a reported failure, never a silent
// eviction; callers fall back to an uncached frame allocation, or skip.
//
// The pool is not safe for concurrent use: tessellation is single-threaded
// per frame by contract, and the frame coordinator owns the pool.
type MeshPool struct {
	persistent    []*Mesh
	byHash        map[uint64]uint32
	frame         []*Mesh
	maxPersistent int
	maxFrame      int

	// Generation counters versioning outstanding refs. They start at 1 so
	// the zero MeshRef is never valid.
	persistentGen uint32
	frameGen      uint32

	hits   uint64
	misses uint64
}

// NewMeshPool creates a mesh pool with the given tier capacities.
// Non-positive capacities select the defaults.
func NewMeshPool(maxPersistent, maxFrame int) *MeshPool {
	if maxPersistent <= 0 {
		maxPersistent = DefaultMaxPersistentMeshes
	}
	if maxFrame <= 0 {
		maxFrame = DefaultMaxFrameMeshes
	}
	return &MeshPool{
		byHash:        make(map[uint64]uint32),
		maxPersistent: maxPersistent,
		maxFrame:      maxFrame,
		persistentGen: 1,
		frameGen:      1,
	}
}

// GetOrCreatePersistent returns a ref to the mesh stored under hash,
// invoking factory and storing its result on a miss. At most one mesh is
// ever stored per hash; on a hit the factory does not run.
//
// A full tier fails with ErrCapacityExceeded before the factory is invoked,
// so the caller can build the mesh once and fall back to AllocateFrame.
// A factory error is propagated and nothing is stored.
func (p *MeshPool) GetOrCreatePersistent(hash uint64, factory func() (*Mesh, error)) (MeshRef, error) {
	if idx, ok := p.byHash[hash]; ok {
		p.hits++
		return MeshRef{tier: TierPersistent, index: idx, generation: p.persistentGen}, nil
	}
	p.misses++

	if len(p.persistent) >= p.maxPersistent {
		return MeshRef{}, fmt.Errorf("%w: persistent tier full (%d meshes)", ErrCapacityExceeded, p.maxPersistent)
	}
	mesh, err := factory()
	if err != nil {
		return MeshRef{}, err
	}
	if mesh == nil {
		return MeshRef{}, fmt.Errorf("%w: factory returned no mesh", ErrInvalidState)
	}

	idx := uint32(len(p.persistent))
	p.persistent = append(p.persistent, mesh)
	p.byHash[hash] = idx
	return MeshRef{tier: TierPersistent, index: idx, generation: p.persistentGen}, nil
}

// AllocateFrame stores a mesh in the frame tier, with no deduplication, and
// returns a ref valid only until the next ResetFrame.
func (p *MeshPool) AllocateFrame(mesh *Mesh) (MeshRef, error) {
	if mesh == nil {
		return MeshRef{}, fmt.Errorf("%w: nil mesh", ErrInvalidState)
	}
	if len(p.frame) >= p.maxFrame {
		return MeshRef{}, fmt.Errorf("%w: frame tier full (%d meshes)", ErrCapacityExceeded, p.maxFrame)
	}
	idx := uint32(len(p.frame))
	p.frame = append(p.frame, mesh)
	return MeshRef{tier: TierFrame, index: idx, generation: p.frameGen}, nil
}

// ResetFrame invalidates all frame-tier meshes in O(1). The frame
// coordinator must call it exactly once per frame, before generating any of
// that frame's content. Every outstanding frame ref stops resolving.
func (p *MeshPool) ResetFrame() {
	p.frame = p.frame[:0]
	p.frameGen++
}

// ClearPersistent evicts the entire persistent tier, for example on a theme
// change that restyles every path. Every outstanding persistent ref stops
// resolving; callers must not retain refs across a clear.
func (p *MeshPool) ClearPersistent() {
	p.persistent = p.persistent[:0]
	clear(p.byHash)
	p.persistentGen++
}

// Lookup resolves a ref to its mesh. It returns false for refs issued
// before the owning tier's last reset or clear, for the zero ref, and for
// refs from another pool whose generation happens not to match.
func (p *MeshPool) Lookup(ref MeshRef) (*Mesh, bool) {
	switch ref.tier {
	case TierPersistent:
		if ref.generation != p.persistentGen || int(ref.index) >= len(p.persistent) {
			return nil, false
		}
		return p.persistent[ref.index], true
	case TierFrame:
		if ref.generation != p.frameGen || int(ref.index) >= len(p.frame) {
			return nil, false
		}
		return p.frame[ref.index], true
	default:
		return nil, false
	}
}

// Contains reports whether a mesh is stored under hash, without counting a
// hit or miss.
func (p *MeshPool) Contains(hash uint64) bool {
	_, ok := p.byHash[hash]
	return ok
}

// PersistentCount returns the number of persistent-tier meshes.
func (p *MeshPool) PersistentCount() int {
	return len(p.persistent)
}

// FrameCount returns the number of frame-tier meshes in the current frame.
func (p *MeshPool) FrameCount() int {
	return len(p.frame)
}

// PoolStats contains pool statistics for monitoring.
type PoolStats struct {
	// PersistentCount is the number of persistent meshes stored.
	PersistentCount int
	// MaxPersistent is the persistent tier capacity.
	MaxPersistent int
	// FrameCount is the number of frame meshes in the current frame.
	FrameCount int
	// MaxFrame is the frame tier capacity.
	MaxFrame int
	// Hits is the number of persistent cache hits.
	Hits uint64
	// Misses is the number of persistent cache misses.
	Misses uint64
	// HitRate is the persistent cache hit rate (0.0 to 1.0).
	HitRate float64
}

// Stats returns a snapshot of the pool statistics.
func (p *MeshPool) Stats() PoolStats {
	var hitRate float64
	if total := p.hits + p.misses; total > 0 {
		hitRate = float64(p.hits) / float64(total)
	}
	return PoolStats{
		PersistentCount: len(p.persistent),
		MaxPersistent:   p.maxPersistent,
		FrameCount:      len(p.frame),
		MaxFrame:        p.maxFrame,
		Hits:            p.hits,
		Misses:          p.misses,
		HitRate:         hitRate,
	}
}

// ResetStats resets the hit and miss counters to zero.
func (p *MeshPool) ResetStats() {
	p.hits = 0
	p.misses = 0
}
