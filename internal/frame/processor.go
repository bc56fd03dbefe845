// Package frame turns an RGBA frame into an RGBA edge map.
//
// The whole call is synchronous and keeps nothing between calls. Failures
// never cross the boundary: they are logged and reported as a nil frame.
package frame

import (
	"errors"
	"fmt"

	"realtime-edge/internal/logger"
	"realtime-edge/internal/opencv/memory"
	"realtime-edge/internal/opencv/safe"
	"realtime-edge/internal/processing/chain"
	"realtime-edge/internal/processing/filters"

	"gocv.io/x/gocv"
)

const (
	component = "FrameProcessor"

	// Channels is the byte count per pixel on both sides of the boundary.
	Channels = 4
)

type Processor struct {
	logger logger.Logger
	memory *memory.Manager
	chain  *chain.ProcessingChain

	copyOut func(*safe.Mat, []byte) error
}

type Option func(*Processor)

func WithLogger(l logger.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

func WithMemoryManager(m *memory.Manager) Option {
	return func(p *Processor) {
		if m != nil {
			p.memory = m
		}
	}
}

func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		logger: logger.Nop(),
		memory: memory.NewManager(memory.DefaultMaxAllowed),
		chain:  chain.NewProcessingChain(filters.EdgeSteps()...),

		copyOut: (*safe.Mat).CopyBytesTo,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessBytes is Process over a plain slice. A nil slice is an inaccessible input.
func (p *Processor) ProcessBytes(input []byte, width, height int) []byte {
	return p.Process(Bytes(input), width, height)
}

// Process returns the edge frame, width*height*4 bytes, or nil on any failure.
func (p *Processor) Process(src Source, width, height int) []byte {
	return p.Run(src, width, height).Data
}

// Run is Process with the failure reason kept. The reason is also logged.
func (p *Processor) Run(src Source, width, height int) Result {
	if src == nil {
		return p.reject(fail(KindResourceAccess, errNilBuffer), width, height)
	}

	input, err := src.Acquire()
	if err != nil {
		return p.reject(fail(KindResourceAccess, err), width, height)
	}
	if input == nil {
		return p.reject(fail(KindResourceAccess, errNilBuffer), width, height)
	}

	b := &borrow{src: src}
	defer b.release()

	return p.run(input, width, height)
}

func (p *Processor) run(input []byte, width, height int) (result Result) {
	scope := p.memory.NewScope()
	defer scope.Close()

	var out []byte
	defer func() {
		if r := recover(); r != nil {
			p.memory.DiscardOutput(out)
			result = p.reject(fail(KindAlgorithm, fmt.Errorf("panic: %v", r)), width, height)
		}
	}()

	edges, err := p.detect(input, width, height, scope)
	if err != nil {
		return p.reject(fail(KindAlgorithm, err), width, height)
	}

	out, err = p.memory.AllocateOutput(width * height * Channels)
	if err != nil {
		return p.reject(fail(KindAllocation, err), width, height)
	}

	if err := p.copyOut(edges, out); err != nil {
		p.memory.DiscardOutput(out)
		return p.reject(fail(KindAlgorithm, err), width, height)
	}

	return Result{Data: out}
}

func (p *Processor) detect(input []byte, width, height int, scope *memory.Scope) (*safe.Mat, error) {
	if err := safe.ValidateFrame(len(input), width, height, Channels); err != nil {
		return nil, err
	}

	rgba, err := safe.NewMatFromBytes(height, width, gocv.MatTypeCV8UC4, input, "rgba_in")
	if err != nil {
		return nil, fmt.Errorf("input Mat: %w", err)
	}
	if err := scope.Adopt(rgba); err != nil {
		return nil, fmt.Errorf("input Mat: %w", err)
	}

	// Every step allocates through scope, so edges is closed with it.
	edges, err := p.chain.Execute(rgba, scope)
	if err != nil {
		return nil, err
	}

	if err := safe.ValidateChannels(edges, Channels, "edge output"); err != nil {
		return nil, err
	}
	if edges.Rows() != height || edges.Cols() != width {
		return nil, fmt.Errorf("edge output is %dx%d, want %dx%d", edges.Cols(), edges.Rows(), width, height)
	}

	return edges, nil
}

func (p *Processor) reject(r Result, width, height int) Result {
	fields := map[string]interface{}{
		"width":  width,
		"height": height,
	}

	var failure *Failure
	if errors.As(r.Err, &failure) {
		fields["kind"] = failure.Kind.String()
	}

	p.logger.Error(component, r.Err, fields)
	return r
}
