// Package planet holds the frozen, shared-by-reference configuration the
// rest of the core consumes: voxel type and biome registries, and the
// PlanetDef that ties sampler parameters together. Registries are
// instance-scoped rather than package globals, so multiple independent
// worlds/schedulers can coexist in one process.
package planet

import (
	"errors"
	"fmt"

	"github.com/cubesphere-engine/terra/internal/voxel"
)

// ErrDuplicate is returned when registering a name that already exists.
var ErrDuplicate = errors.New("planet: duplicate registry name")

// DuplicateError wraps ErrDuplicate with the offending name.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("planet: duplicate name %q", e.Name)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }

// VoxelTypeRegistry maps names and TypeDefs to voxel.TypeID. Id 0 is
// reserved for Air and is pre-registered by NewVoxelTypeRegistry.
type VoxelTypeRegistry struct {
	defs   []voxel.TypeDef
	byName map[string]voxel.TypeID
	frozen bool
}

// NewVoxelTypeRegistry returns a registry with Air pre-registered at id 0.
func NewVoxelTypeRegistry() *VoxelTypeRegistry {
	r := &VoxelTypeRegistry{
		byName: make(map[string]voxel.TypeID),
	}
	r.defs = append(r.defs, voxel.TypeDef{Name: "air", Transparency: voxel.Transparent})
	r.byName["air"] = voxel.Air
	return r
}

// Register adds a voxel type definition and returns its assigned id.
func (r *VoxelTypeRegistry) Register(def voxel.TypeDef) (voxel.TypeID, error) {
	if r.frozen {
		return 0, fmt.Errorf("planet: cannot register %q after Freeze", def.Name)
	}
	if _, exists := r.byName[def.Name]; exists {
		return 0, &DuplicateError{Name: def.Name}
	}
	id := voxel.TypeID(len(r.defs))
	r.defs = append(r.defs, def)
	r.byName[def.Name] = id
	return id, nil
}

// LookupByName returns the id registered under name, if any.
func (r *VoxelTypeRegistry) LookupByName(name string) (voxel.TypeID, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// Get returns the definition for id. Panics on an out-of-range id: this
// is a programmer error (ids only ever come from this registry), not a
// runtime condition generation code should branch on.
func (r *VoxelTypeRegistry) Get(id voxel.TypeID) voxel.TypeDef {
	return r.defs[id]
}

// Len returns the number of registered voxel types, including Air.
func (r *VoxelTypeRegistry) Len() int { return len(r.defs) }

// Freeze marks the registry read-only. Called once at world construction,
// after which the registry may be shared by reference across worker
// goroutines without synchronization.
func (r *VoxelTypeRegistry) Freeze() { r.frozen = true }
