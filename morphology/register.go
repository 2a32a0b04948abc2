package morphology

import (
	"github.com/pkg/errors"

	"go.viam.com/voxelkernel/kernel"
	"go.viam.com/voxelkernel/registry"
)

// Kernel models registered by this package.
const (
	ModelErosionCross      = "erosion_cross"
	ModelDilationCross     = "dilation_cross"
	ModelErosionBox        = "erosion_box"
	ModelDilationBox       = "dilation_box"
	ModelOutline           = "outline"
	ModelAnd               = "and"
	ModelConditional       = "conditional"
	ModelCountOffNeighbors = "count_off_neighbors"
	ModelAcceptedCount     = "accepted_count"
)

// BoxAttributes configures the box kernels.
type BoxAttributes struct {
	Size int `json:"size"`
}

// Validate ensures all parts of the attributes are valid.
func (attrs *BoxAttributes) Validate() error {
	if attrs.Size < 1 || attrs.Size%2 == 0 {
		return errors.Errorf("size must be a positive odd number but got %d", attrs.Size)
	}
	return nil
}

// AndAttributes names the two kernels of an AND composite.
type AndAttributes struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

// Validate ensures all parts of the attributes are valid.
func (attrs *AndAttributes) Validate() error {
	if attrs.First == "" || attrs.Second == "" {
		return errors.New("both first and second kernels are required")
	}
	return nil
}

// ConditionalAttributes gates a kernel on an intensity volume.
type ConditionalAttributes struct {
	Kernel    string `json:"kernel"`
	MinValue  int    `json:"min_value"`
	Intensity string `json:"intensity"`
}

// Validate ensures all parts of the attributes are valid.
func (attrs *ConditionalAttributes) Validate() error {
	if attrs.Kernel == "" {
		return errors.New("kernel is required")
	}
	if attrs.Intensity == "" {
		return errors.New("intensity volume is required")
	}
	if attrs.MinValue < 0 || attrs.MinValue > 255 {
		return errors.Errorf("min_value must be in [0, 255] but got %d", attrs.MinValue)
	}
	return nil
}

// AcceptedCountAttributes names the binary kernel to count.
type AcceptedCountAttributes struct {
	Kernel string `json:"kernel"`
}

// Validate ensures all parts of the attributes are valid.
func (attrs *AcceptedCountAttributes) Validate() error {
	if attrs.Kernel == "" {
		return errors.New("kernel is required")
	}
	return nil
}

type validator interface {
	Validate() error
}

// convertAttributes decodes and validates attributes of type T.
func convertAttributes[T validator](attrs registry.AttributeMap) (T, error) {
	conv, err := registry.TransformAttributeMap[T](attrs)
	if err != nil {
		return conv, err
	}
	if err := conv.Validate(); err != nil {
		return conv, err
	}
	return conv, nil
}

func converter[T validator]() registry.AttributeMapConverter {
	return func(attrs registry.AttributeMap) (interface{}, error) {
		return convertAttributes[T](attrs)
	}
}

func noAttributes(attrs registry.AttributeMap) (interface{}, error) {
	if len(attrs) != 0 {
		return nil, errors.New("kernel takes no attributes")
	}
	return struct{}{}, nil
}

func init() {
	registry.RegisterBinaryKernel(ModelErosionCross, registry.BinaryKernelRegistration{
		Constructor: func(attrs registry.AttributeMap, deps registry.Dependencies) (kernel.BinaryKernel, error) {
			return NewErosionCross(), nil
		},
		AttributeMapConverter: noAttributes,
	})
	registry.RegisterBinaryKernel(ModelDilationCross, registry.BinaryKernelRegistration{
		Constructor: func(attrs registry.AttributeMap, deps registry.Dependencies) (kernel.BinaryKernel, error) {
			return NewDilationCross(), nil
		},
		AttributeMapConverter: noAttributes,
	})
	registry.RegisterBinaryKernel(ModelErosionBox, registry.BinaryKernelRegistration{
		Constructor: func(attrs registry.AttributeMap, deps registry.Dependencies) (kernel.BinaryKernel, error) {
			conv, err := convertAttributes[*BoxAttributes](attrs)
			if err != nil {
				return nil, err
			}
			return NewErosionBox(conv.Size), nil
		},
		AttributeMapConverter: converter[*BoxAttributes](),
	})
	registry.RegisterBinaryKernel(ModelDilationBox, registry.BinaryKernelRegistration{
		Constructor: func(attrs registry.AttributeMap, deps registry.Dependencies) (kernel.BinaryKernel, error) {
			conv, err := convertAttributes[*BoxAttributes](attrs)
			if err != nil {
				return nil, err
			}
			return NewDilationBox(conv.Size), nil
		},
		AttributeMapConverter: converter[*BoxAttributes](),
	})
	registry.RegisterBinaryKernel(ModelOutline, registry.BinaryKernelRegistration{
		Constructor: func(attrs registry.AttributeMap, deps registry.Dependencies) (kernel.BinaryKernel, error) {
			return NewOutline(), nil
		},
		AttributeMapConverter: noAttributes,
	})
	registry.RegisterBinaryKernel(ModelAnd, registry.BinaryKernelRegistration{
		Constructor: func(attrs registry.AttributeMap, deps registry.Dependencies) (kernel.BinaryKernel, error) {
			conv, err := convertAttributes[*AndAttributes](attrs)
			if err != nil {
				return nil, err
			}
			first, err := deps.BinaryKernel(conv.First)
			if err != nil {
				return nil, err
			}
			second, err := deps.BinaryKernel(conv.Second)
			if err != nil {
				return nil, err
			}
			andKernel, err := kernel.NewAndKernel(first, second)
			if err != nil {
				return nil, err
			}
			return andKernel, nil
		},
		AttributeMapConverter: converter[*AndAttributes](),
	})
	registry.RegisterBinaryKernel(ModelConditional, registry.BinaryKernelRegistration{
		Constructor: func(attrs registry.AttributeMap, deps registry.Dependencies) (kernel.BinaryKernel, error) {
			conv, err := convertAttributes[*ConditionalAttributes](attrs)
			if err != nil {
				return nil, err
			}
			inner, err := deps.BinaryKernel(conv.Kernel)
			if err != nil {
				return nil, err
			}
			intensity, err := deps.Volume(conv.Intensity)
			if err != nil {
				return nil, err
			}
			return kernel.NewConditionalKernel(inner, conv.MinValue, intensity), nil
		},
		AttributeMapConverter: converter[*ConditionalAttributes](),
	})
	registry.RegisterCountKernel(ModelCountOffNeighbors, registry.CountKernelRegistration{
		Constructor: func(attrs registry.AttributeMap, deps registry.Dependencies) (kernel.CountKernel, error) {
			return NewCountOffNeighbors(), nil
		},
		AttributeMapConverter: noAttributes,
	})
	registry.RegisterCountKernel(ModelAcceptedCount, registry.CountKernelRegistration{
		Constructor: func(attrs registry.AttributeMap, deps registry.Dependencies) (kernel.CountKernel, error) {
			conv, err := convertAttributes[*AcceptedCountAttributes](attrs)
			if err != nil {
				return nil, err
			}
			inner, err := deps.BinaryKernel(conv.Kernel)
			if err != nil {
				return nil, err
			}
			return kernel.CountAccepted(inner), nil
		},
		AttributeMapConverter: converter[*AcceptedCountAttributes](),
	})
}
