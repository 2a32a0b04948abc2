package config

import (
	"context"
	"time"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/voxelkernel/kernel"
	"go.viam.com/voxelkernel/logging"
	"go.viam.com/voxelkernel/registry"
	"go.viam.com/voxelkernel/spatialmath"
	rutils "go.viam.com/voxelkernel/utils"
	"go.viam.com/voxelkernel/voxels"
)

// A Pipeline is a built, validated config ready to run against volumes. It holds only
// immutable kernels and may be run concurrently.
type Pipeline struct {
	params    kernel.ApplicationParameters
	kernels   map[string]kernel.Kernel
	operation Operation
	box       *spatialmath.BoundingBox
	logger    logging.Logger
}

// Result is the outcome of running a pipeline. Only the fields matching the operation kind
// are set. Center is the center of gravity of the output volume for apply and of the mask
// for count_on_mask; it stays nil when that region has no on voxels.
type Result struct {
	Kind   OperationKind
	Volume *voxels.BinaryVoxels
	Count  int
	Found  bool
	Center *r3.Vector
}

func centerOf(center r3.Vector, ok bool) *r3.Vector {
	if !ok {
		return nil
	}
	return &center
}

// Build validates conf and constructs its kernels in declaration order. deps supplies named
// volumes, such as intensity volumes for conditional kernels; it is not modified.
func Build(conf *Config, deps registry.Dependencies, logger logging.Logger) (*Pipeline, error) {
	if err := conf.Validate("pipeline"); err != nil {
		return nil, err
	}
	params, err := conf.ApplicationParameters()
	if err != nil {
		return nil, err
	}

	built := registry.Dependencies{
		Kernels: make(map[string]kernel.Kernel, len(deps.Kernels)+len(conf.Kernels)),
		Volumes: deps.Volumes,
	}
	for name, k := range deps.Kernels {
		built.Kernels[name] = k
	}
	for _, kc := range conf.Kernels {
		k, err := buildKernel(kc, built)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to build kernel %q", kc.Name)
		}
		built.Kernels[kc.Name] = k
		logger.Debugw("built kernel", "name", kc.Name, "model", kc.Model, "size", k.Size())
	}

	p := &Pipeline{
		params:    params,
		kernels:   built.Kernels,
		operation: conf.Operation,
		logger:    logger,
	}
	if conf.Operation.Box != nil {
		box, err := conf.Operation.Box.BoundingBox()
		if err != nil {
			return nil, err
		}
		p.box = &box
	}
	return p, nil
}

func buildKernel(kc KernelConfig, deps registry.Dependencies) (kernel.Kernel, error) {
	if reg := registry.LookupBinaryKernel(kc.Model); reg != nil {
		return reg.Constructor(kc.Attributes, deps)
	}
	if reg := registry.LookupCountKernel(kc.Model); reg != nil {
		return reg.Constructor(kc.Attributes, deps)
	}
	return nil, rutils.NewUnknownModelError("binary or count", kc.Model)
}

// Parameters are the application parameters of the pipeline.
func (p *Pipeline) Parameters() kernel.ApplicationParameters {
	return p.params
}

// Kernel returns the named kernel.
func (p *Pipeline) Kernel(name string) (kernel.Kernel, bool) {
	k, ok := p.kernels[name]
	return k, ok
}

// Kind is the configured operation kind.
func (p *Pipeline) Kind() OperationKind {
	return p.operation.Kind
}

// Box is the operation box, if one was configured.
func (p *Pipeline) Box() (spatialmath.BoundingBox, bool) {
	if p.box == nil {
		return spatialmath.BoundingBox{}, false
	}
	return *p.box, true
}

func (p *Pipeline) countKernel() (kernel.CountKernel, error) {
	switch k := p.kernels[p.operation.Kernel].(type) {
	case kernel.CountKernel:
		return k, nil
	case kernel.BinaryKernel:
		return kernel.CountAccepted(k), nil
	default:
		return nil, rutils.NewUnexpectedTypeError[kernel.CountKernel](k)
	}
}

func (p *Pipeline) binaryKernel() (kernel.BinaryKernel, error) {
	k, ok := p.kernels[p.operation.Kernel].(kernel.BinaryKernel)
	if !ok {
		return nil, rutils.NewUnexpectedTypeError[kernel.BinaryKernel](p.kernels[p.operation.Kernel])
	}
	return k, nil
}

func (p *Pipeline) boxOrWhole(vox *voxels.BinaryVoxels) spatialmath.BoundingBox {
	if p.box != nil {
		return *p.box
	}
	return spatialmath.NewBoundingBoxFromExtent(spatialmath.Point3i{}, vox.Extent())
}

// Run executes the configured operation against vox. mask is only used, and then required,
// by count_on_mask.
func (p *Pipeline) Run(ctx context.Context, vox *voxels.BinaryVoxels, mask *voxels.ObjectMask) (*Result, error) {
	if vox == nil {
		return nil, errors.New("no volume to run the pipeline on")
	}
	start := time.Now()
	logger := p.logger.Sublogger(string(p.operation.Kind))
	logger.Debugw("running operation",
		"kernel", p.operation.Kernel,
		"extent", vox.Extent().String(),
		"outside", p.params.Outside().String(),
		"use_z", p.params.UseZ(),
		"parallel", p.operation.Parallel,
	)

	result, err := p.run(ctx, vox, mask)
	if err != nil {
		logger.Errorw("operation failed", "kernel", p.operation.Kernel, "error", err)
		return nil, err
	}
	result.Kind = p.operation.Kind
	keysAndValues := []interface{}{
		"kernel", p.operation.Kernel,
		"count", result.Count,
		"found", result.Found,
		"duration", time.Since(start).String(),
	}
	if result.Center != nil {
		keysAndValues = append(keysAndValues, "center", []float64{result.Center.X, result.Center.Y, result.Center.Z})
	}
	logger.Infow("operation finished", keysAndValues...)
	return result, nil
}

func (p *Pipeline) run(ctx context.Context, vox *voxels.BinaryVoxels, mask *voxels.ObjectMask) (*Result, error) {
	switch p.operation.Kind {
	case OperationApply:
		k, err := p.binaryKernel()
		if err != nil {
			return nil, err
		}
		iterations := p.operation.Iterations
		if iterations == 0 {
			iterations = 1
		}
		out := vox
		for i := 0; i < iterations; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if p.operation.Parallel {
				out, err = kernel.ApplyParallel(ctx, k, out, p.params)
			} else {
				out, err = kernel.Apply(k, out, p.params)
			}
			if err != nil {
				return nil, errors.Wrapf(err, "iteration %d", i)
			}
		}
		return &Result{Volume: out, Count: out.CountOn(), Center: centerOf(out.CenterOfGravity())}, nil
	case OperationCount:
		k, err := p.countKernel()
		if err != nil {
			return nil, err
		}
		var count int
		if p.operation.Parallel {
			count, err = kernel.ApplyForCountParallel(ctx, k, vox, p.params)
		} else {
			count, err = kernel.ApplyForCountInBox(k, vox, p.boxOrWhole(vox), p.params)
		}
		if err != nil {
			return nil, err
		}
		return &Result{Count: count}, nil
	case OperationUntilPositive:
		k, err := p.countKernel()
		if err != nil {
			return nil, err
		}
		found, err := kernel.ApplyUntilPositive(k, vox, p.boxOrWhole(vox), p.params)
		if err != nil {
			return nil, err
		}
		return &Result{Found: found}, nil
	case OperationCountOnMask:
		if mask == nil {
			return nil, errors.New("count_on_mask needs an object mask")
		}
		k, err := p.binaryKernel()
		if err != nil {
			return nil, err
		}
		count, err := kernel.ApplyForCountOnMask(k, vox, mask, p.params)
		if err != nil {
			return nil, err
		}
		return &Result{Count: count, Center: centerOf(mask.CenterOfGravity())}, nil
	default:
		return nil, errors.Errorf("unknown operation kind %q", p.operation.Kind)
	}
}
