// Package pipeline splits a byte stream into blocks, transforms disjoint ranges of them on a
// fixed pool of workers and stitches the results back together in stream order.
//
// Workers never share mutable state: each one owns its input range and returns its own output,
// which is handed to the reassembler only after every worker has finished.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/idelchi/godes/internal/block"
	"github.com/idelchi/godes/internal/encryption"
)

// Request describes a single run.
type Request struct {
	// Mode selects encryption or decryption.
	Mode encryption.Mode

	// Key is the raw key material.
	Key []byte

	// Input is the whole stream to transform.
	Input []byte

	// Workers is the number of concurrent workers. Zero means one.
	Workers int
}

// WorkerStat reports what a single worker did.
type WorkerStat struct {
	Index   int
	Range   Range
	Elapsed time.Duration
}

// Result is the outcome of a successful run.
type Result struct {
	// Output is the transformed stream.
	Output []byte

	// Blocks is the number of blocks transformed.
	Blocks int

	// Workers holds per-worker statistics, ordered by worker index.
	Workers []WorkerStat

	// Elapsed is the wall time of the whole run.
	Elapsed time.Duration
}

// Deriver builds the block primitive from key material.
type Deriver func(key []byte) (Transformer, error)

// DeriveSchedule is the default Deriver, backed by the DES key schedule.
func DeriveSchedule(key []byte) (Transformer, error) {
	schedule, err := encryption.NewSchedule(key)
	if err != nil {
		return nil, err
	}

	return schedule, nil
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger used for lifecycle and worker timing events.
func WithLogger(log *zap.Logger) Option {
	return func(o *Orchestrator) { o.log = log }
}

// WithPolicy sets how padding is validated on decryption.
func WithPolicy(policy encryption.Policy) Option {
	return func(o *Orchestrator) { o.policy = policy }
}

// WithDeriver replaces the block primitive.
func WithDeriver(derive Deriver) Option {
	return func(o *Orchestrator) { o.derive = derive }
}

// Orchestrator drives one request through key loading, partitioning, the worker pool and
// reassembly. It is single-use and not safe for concurrent use.
type Orchestrator struct {
	log    *zap.Logger
	policy encryption.Policy
	derive Deriver
	state  State
}

// New creates an idle Orchestrator.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		log:    zap.NewNop(),
		policy: encryption.PolicyStrict,
		derive: DeriveSchedule,
		state:  Idle,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// State returns the current lifecycle stage.
func (o *Orchestrator) State() State {
	return o.state
}

// Run transforms req.Input. Either the full output is returned or an error; there is no
// partial result.
//
//nolint:cyclop
func (o *Orchestrator) Run(ctx context.Context, req Request) (res Result, err error) {
	if o.state != Idle {
		return Result{}, ErrAlreadyRun
	}

	defer func() {
		if err != nil {
			o.transition(Failed)
		}
	}()

	start := time.Now()

	if req.Mode != encryption.Encrypt && req.Mode != encryption.Decrypt {
		return Result{}, fmt.Errorf("%w: %d", encryption.ErrUnknownMode, req.Mode)
	}

	workers := req.Workers
	if workers == 0 {
		workers = 1
	}

	cipher, err := o.derive(req.Key)
	if err != nil {
		return Result{}, fmt.Errorf("deriving key schedule: %w", err)
	}

	o.transition(KeyLoaded)

	stream, err := o.split(req.Mode, req.Input)
	if err != nil {
		return Result{}, err
	}

	plan, err := Partition(len(stream), workers)
	if err != nil {
		return Result{}, fmt.Errorf("partitioning: %w", err)
	}

	o.transition(Partitioned)

	outputs, err := o.spawn(ctx, plan, stream, cipher, req)
	if err != nil {
		return Result{}, err
	}

	o.transition(Reassembling)

	data, err := reassemble(outputs, req.Mode, o.policy)
	if err != nil {
		return Result{}, fmt.Errorf("reassembling: %w", err)
	}

	stats := make([]WorkerStat, len(outputs))
	for i, out := range outputs {
		stats[i] = WorkerStat{Index: i, Range: plan.Ranges[i], Elapsed: out.elapsed}
	}

	o.transition(Done)

	return Result{
		Output:  data,
		Blocks:  plan.Blocks,
		Workers: stats,
		Elapsed: time.Since(start),
	}, nil
}

// split turns the input into the block stream for mode.
// Streams to encrypt always get room for the padding in their final block.
func (o *Orchestrator) split(mode encryption.Mode, input []byte) ([]block.Block, error) {
	if mode == encryption.Encrypt {
		return block.Split(input, true), nil
	}

	if len(input) == 0 || len(input)%block.Size != 0 {
		if o.policy != encryption.PolicyLenient {
			return nil, fmt.Errorf("%w: %d bytes", ErrInvalidBlockSize, len(input))
		}

		o.log.Warn("ciphertext is not block aligned, zero-filling final block", zap.Int("bytes", len(input)))
	}

	return block.Split(input, false), nil
}

// spawn runs one worker per range and waits for all of them.
// On the first failure the remaining workers are cancelled and no output is returned.
func (o *Orchestrator) spawn(
	ctx context.Context,
	plan Plan,
	stream []block.Block,
	cipher Transformer,
	req Request,
) ([]output, error) {
	group, gctx := errgroup.WithContext(ctx)
	results := make(chan output, plan.Workers())

	owner := plan.TailOwner()

	o.transition(Running)

	for i, rng := range plan.Ranges {
		w := &worker{
			index:  i,
			rng:    rng,
			input:  stream[rng.Start:rng.End:rng.End],
			cipher: cipher,
			mode:   req.Mode,
		}

		if req.Mode == encryption.Encrypt && i == owner {
			w.tail = &tail{length: len(req.Input)}
		}

		group.Go(func() error {
			out, err := w.run(gctx)
			if err != nil {
				return err
			}

			o.log.Debug("worker finished",
				zap.Int("worker", w.index),
				zap.Int("start", rng.Start),
				zap.Int("end", rng.End),
				zap.Duration("elapsed", out.elapsed),
			)

			results <- out

			return nil
		})
	}

	err := group.Wait()

	close(results)

	if err != nil {
		return nil, fmt.Errorf("running workers: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("running workers: %w", err)
	}

	outputs := make([]output, plan.Workers())
	for out := range results {
		outputs[out.index] = out
	}

	return outputs, nil
}

func (o *Orchestrator) transition(to State) {
	o.log.Debug("state", zap.Stringer("from", o.state), zap.Stringer("to", to))
	o.state = to
}
