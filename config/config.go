// Package config defines the structures to configure a kernel pipeline and the means to read,
// validate and build one.
package config

import (
	"fmt"

	"github.com/pkg/errors"
	"go.viam.com/utils"

	"go.viam.com/voxelkernel/kernel"
	"go.viam.com/voxelkernel/registry"
	"go.viam.com/voxelkernel/spatialmath"
	rutils "go.viam.com/voxelkernel/utils"
)

// OperationKind selects which driver a pipeline runs.
type OperationKind string

// The known operation kinds.
const (
	OperationApply         = OperationKind("apply")
	OperationCount         = OperationKind("count")
	OperationUntilPositive = OperationKind("until_positive")
	OperationCountOnMask   = OperationKind("count_on_mask")
)

// A Config describes a kernel pipeline: how outside neighbors are treated, the kernels to
// build and the operation to run with one of them.
type Config struct {
	ConfigFilePath string `json:"-"`

	Outside   string         `json:"outside"`
	UseZ      bool           `json:"use_z"`
	Kernels   []KernelConfig `json:"kernels"`
	Operation Operation      `json:"operation"`
}

// A KernelConfig describes a single named kernel. Composite kernels refer to kernels declared
// before them by name.
type KernelConfig struct {
	Name       string                `json:"name"`
	Model      string                `json:"model"`
	Attributes registry.AttributeMap `json:"attributes,omitempty"`
}

// Operation describes what to run with the named kernel.
type Operation struct {
	Kind       OperationKind `json:"kind"`
	Kernel     string        `json:"kernel"`
	Box        *BoxConfig    `json:"box,omitempty"`
	Iterations int           `json:"iterations,omitempty"`
	Parallel   bool          `json:"parallel,omitempty"`
}

// BoxConfig is an inclusive bounding box.
type BoxConfig struct {
	Min [3]int `json:"min"`
	Max [3]int `json:"max"`
}

// BoundingBox converts the config into a box.
func (b *BoxConfig) BoundingBox() (spatialmath.BoundingBox, error) {
	return spatialmath.NewBoundingBox(
		spatialmath.NewPoint3i(b.Min[0], b.Min[1], b.Min[2]),
		spatialmath.NewPoint3i(b.Max[0], b.Max[1], b.Max[2]),
	)
}

// ApplicationParameters returns the parameters every kernel of the pipeline is applied with.
func (c *Config) ApplicationParameters() (kernel.ApplicationParameters, error) {
	policy, err := kernel.ParseOutsidePolicy(c.Outside)
	if err != nil {
		return kernel.ApplicationParameters{}, err
	}
	return kernel.NewApplicationParameters(policy, c.UseZ), nil
}

// FindKernel returns the kernel config with the given name, or nil.
func (c *Config) FindKernel(name string) *KernelConfig {
	for i := range c.Kernels {
		if c.Kernels[i].Name == name {
			return &c.Kernels[i]
		}
	}
	return nil
}

// Validate ensures all parts of the config are valid.
func (c *Config) Validate(path string) error {
	if c.Outside == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "outside")
	}
	if _, err := kernel.ParseOutsidePolicy(c.Outside); err != nil {
		return utils.NewConfigValidationError(path, err)
	}
	if len(c.Kernels) == 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "kernels")
	}
	seen := make(map[string]struct{}, len(c.Kernels))
	for idx := range c.Kernels {
		kernelPath := fmt.Sprintf("%s.kernels.%d", path, idx)
		if err := c.Kernels[idx].Validate(kernelPath); err != nil {
			return err
		}
		if _, ok := seen[c.Kernels[idx].Name]; ok {
			return utils.NewConfigValidationError(kernelPath,
				errors.Errorf("duplicate kernel name %q", c.Kernels[idx].Name))
		}
		seen[c.Kernels[idx].Name] = struct{}{}
	}
	return c.Operation.Validate(path+".operation", c)
}

// Validate ensures all parts of the config are valid.
func (kc *KernelConfig) Validate(path string) error {
	if kc.Name == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "name")
	}
	if kc.Model == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "model")
	}
	var converter registry.AttributeMapConverter
	if reg := registry.LookupBinaryKernel(kc.Model); reg != nil {
		converter = reg.AttributeMapConverter
	} else if reg := registry.LookupCountKernel(kc.Model); reg != nil {
		converter = reg.AttributeMapConverter
	} else {
		return utils.NewConfigValidationError(path, rutils.NewUnknownModelError("binary or count", kc.Model))
	}
	if converter == nil {
		return nil
	}
	if _, err := converter(kc.Attributes); err != nil {
		return utils.NewConfigValidationError(path, errors.Wrapf(err, "invalid attributes for kernel %q", kc.Name))
	}
	return nil
}

// Validate ensures all parts of the operation are valid for the kernels of conf.
func (op *Operation) Validate(path string, conf *Config) error {
	switch op.Kind {
	case OperationApply, OperationCount, OperationUntilPositive, OperationCountOnMask:
	case "":
		return utils.NewConfigValidationFieldRequiredError(path, "kind")
	default:
		return utils.NewConfigValidationError(path, errors.Errorf("unknown operation kind %q", op.Kind))
	}
	if op.Kernel == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "kernel")
	}
	kc := conf.FindKernel(op.Kernel)
	if kc == nil {
		return utils.NewConfigValidationError(path, errors.Errorf("operation references unknown kernel %q", op.Kernel))
	}
	if (op.Kind == OperationApply || op.Kind == OperationCountOnMask) && registry.LookupBinaryKernel(kc.Model) == nil {
		return utils.NewConfigValidationError(path,
			errors.Errorf("operation %q needs a binary kernel but %q is %q", op.Kind, op.Kernel, kc.Model))
	}
	if op.Iterations < 0 {
		return utils.NewConfigValidationError(path, errors.Errorf("iterations must be non-negative but got %d", op.Iterations))
	}
	if op.Iterations > 0 && op.Kind != OperationApply {
		return utils.NewConfigValidationError(path, errors.New("iterations only apply to the apply operation"))
	}
	if op.Box != nil {
		if _, err := op.Box.BoundingBox(); err != nil {
			return utils.NewConfigValidationError(path+".box", err)
		}
		if op.Kind == OperationApply {
			return utils.NewConfigValidationError(path, errors.New("apply runs over the whole volume and takes no box"))
		}
		if op.Parallel {
			return utils.NewConfigValidationError(path, errors.New("parallel operations run over the whole volume and take no box"))
		}
	}
	if op.Parallel && (op.Kind == OperationUntilPositive || op.Kind == OperationCountOnMask) {
		return utils.NewConfigValidationError(path, errors.Errorf("operation %q cannot run in parallel", op.Kind))
	}
	return nil
}
