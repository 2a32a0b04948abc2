// Package registry operates the global registry of kernel models. Packages providing kernels
// register constructors in their init functions and the config layer looks them up by model.
package registry

import (
	"runtime"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"go.viam.com/voxelkernel/kernel"
	"go.viam.com/voxelkernel/utils"
	"go.viam.com/voxelkernel/voxels"
)

// Dependencies are the already built kernels and named volumes a constructor may refer to.
type Dependencies struct {
	Kernels map[string]kernel.Kernel
	Volumes map[string]*voxels.Voxels
}

// BinaryKernel returns the named binary kernel.
func (deps Dependencies) BinaryKernel(name string) (kernel.BinaryKernel, error) {
	k, ok := deps.Kernels[name]
	if !ok {
		return nil, errors.Errorf("kernel %q not found, composites may only reference kernels declared before them", name)
	}
	bk, ok := k.(kernel.BinaryKernel)
	if !ok {
		return nil, utils.NewUnexpectedTypeError[kernel.BinaryKernel](k)
	}
	return bk, nil
}

// CountKernel returns the named count kernel.
func (deps Dependencies) CountKernel(name string) (kernel.CountKernel, error) {
	k, ok := deps.Kernels[name]
	if !ok {
		return nil, errors.Errorf("kernel %q not found, composites may only reference kernels declared before them", name)
	}
	ck, ok := k.(kernel.CountKernel)
	if !ok {
		return nil, utils.NewUnexpectedTypeError[kernel.CountKernel](k)
	}
	return ck, nil
}

// Volume returns the named volume.
func (deps Dependencies) Volume(name string) (*voxels.Voxels, error) {
	v, ok := deps.Volumes[name]
	if !ok || v == nil {
		return nil, errors.Errorf("volume %q not provided", name)
	}
	return v, nil
}

type (
	// A CreateBinaryKernel creates a binary kernel from its attributes.
	CreateBinaryKernel func(attrs AttributeMap, deps Dependencies) (kernel.BinaryKernel, error)

	// A CreateCountKernel creates a count kernel from its attributes.
	CreateCountKernel func(attrs AttributeMap, deps Dependencies) (kernel.CountKernel, error)

	// An AttributeMapConverter converts an attribute map into a typed representation. Used to
	// validate attributes before anything is built.
	AttributeMapConverter func(attrs AttributeMap) (interface{}, error)
)

// RegDebugInfo represents some runtime information about the registration used
// for debugging purposes.
type RegDebugInfo struct {
	RegistrarLoc string
}

// BinaryKernelRegistration stores a binary kernel constructor (mandatory) and an attribute
// converter (optional).
type BinaryKernelRegistration struct {
	RegDebugInfo
	Constructor           CreateBinaryKernel
	AttributeMapConverter AttributeMapConverter
}

// CountKernelRegistration stores a count kernel constructor (mandatory) and an attribute
// converter (optional).
type CountKernelRegistration struct {
	RegDebugInfo
	Constructor           CreateCountKernel
	AttributeMapConverter AttributeMapConverter
}

var (
	registryMu           sync.RWMutex
	binaryKernelRegistry = map[string]BinaryKernelRegistration{}
	countKernelRegistry  = map[string]CountKernelRegistration{}
)

// RegisterBinaryKernel registers a binary kernel model. Registering the same model twice, in
// either registry, panics.
func RegisterBinaryKernel(model string, creator BinaryKernelRegistration) {
	creator.RegistrarLoc = getCallerName()
	registryMu.Lock()
	defer registryMu.Unlock()
	checkRegistration(model, creator.Constructor == nil)
	binaryKernelRegistry[model] = creator
}

// RegisterCountKernel registers a count kernel model. Registering the same model twice, in
// either registry, panics.
func RegisterCountKernel(model string, creator CountKernelRegistration) {
	creator.RegistrarLoc = getCallerName()
	registryMu.Lock()
	defer registryMu.Unlock()
	checkRegistration(model, creator.Constructor == nil)
	countKernelRegistry[model] = creator
}

func checkRegistration(model string, nilConstructor bool) {
	if model == "" {
		panic(errors.New("cannot register a kernel with an empty model"))
	}
	_, oldBinary := binaryKernelRegistry[model]
	_, oldCount := countKernelRegistry[model]
	if oldBinary || oldCount {
		panic(errors.Errorf("trying to register two kernels with the same model: %s", model))
	}
	if nilConstructor {
		panic(errors.Errorf("cannot register a nil constructor for kernel: %s", model))
	}
}

// LookupBinaryKernel looks up a binary kernel registration by model. nil is returned if
// there is no registration.
func LookupBinaryKernel(model string) *BinaryKernelRegistration {
	registryMu.RLock()
	defer registryMu.RUnlock()
	registration, ok := binaryKernelRegistry[model]
	if ok {
		return &registration
	}
	return nil
}

// LookupCountKernel looks up a count kernel registration by model. nil is returned if
// there is no registration.
func LookupCountKernel(model string) *CountKernelRegistration {
	registryMu.RLock()
	defer registryMu.RUnlock()
	registration, ok := countKernelRegistry[model]
	if ok {
		return &registration
	}
	return nil
}

// RegisteredBinaryKernels returns a copy of the registered binary kernels.
func RegisteredBinaryKernels() map[string]BinaryKernelRegistration {
	registryMu.RLock()
	defer registryMu.RUnlock()
	copied := make(map[string]BinaryKernelRegistration, len(binaryKernelRegistry))
	for model, reg := range binaryKernelRegistry {
		copied[model] = reg
	}
	return copied
}

// RegisteredCountKernels returns a copy of the registered count kernels.
func RegisteredCountKernels() map[string]CountKernelRegistration {
	registryMu.RLock()
	defer registryMu.RUnlock()
	copied := make(map[string]CountKernelRegistration, len(countKernelRegistry))
	for model, reg := range countKernelRegistry {
		copied[model] = reg
	}
	return copied
}

// Models returns every registered model, binary and count, sorted.
func Models() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	models := make([]string, 0, len(binaryKernelRegistry)+len(countKernelRegistry))
	for model := range binaryKernelRegistry {
		models = append(models, model)
	}
	for model := range countKernelRegistry {
		models = append(models, model)
	}
	sort.Strings(models)
	return models
}

func getCallerName() string {
	pc, _, _, ok := runtime.Caller(2)
	details := runtime.FuncForPC(pc)
	if ok && details != nil {
		return details.Name()
	}
	return "unknown"
}
