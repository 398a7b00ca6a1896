// Package scenario holds the workloads run by vecbench: the random-fill
// sort, the growth trace and the snapshot round trip.
package scenario

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/rawbytedev/vector"
	"github.com/rawbytedev/vector/internal/config"
)

var ErrMismatch = errors.New("scenario: snapshot mismatch")

// NewRand returns a PCG source for seed, or a time-based one when seed is 0.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Fill returns a vector of n values drawn uniformly from [lo, hi).
// Elements are written through iterators.
func Fill(rng *rand.Rand, n int, lo, hi float64) *vector.Vector[float64] {
	v := vector.WithLen[float64](n)
	for it, end := v.Begin(), v.End(); it.NotEqual(end); it.Inc() {
		it.Set(lo + rng.Float64()*(hi-lo))
	}
	return v
}

type SortResult struct {
	Size         int
	SortedBefore bool
	SortedAfter  bool
	Elapsed      time.Duration
}

func RunSort(cfg config.SortConfig, rng *rand.Rand, log *zap.Logger) SortResult {
	v := Fill(rng, cfg.Size, cfg.Min, cfg.Max)
	v.SetLogger(log)
	res := SortResult{Size: v.Len(), SortedBefore: vector.IsSorted(v.Begin(), v.End())}

	start := time.Now()
	vector.Sort(v.Begin(), v.End())
	res.Elapsed = time.Since(start)
	res.SortedAfter = vector.IsSorted(v.Begin(), v.End())

	log.Info("sort finished",
		zap.Int("size", res.Size),
		zap.Bool("sorted_before", res.SortedBefore),
		zap.Bool("sorted_after", res.SortedAfter),
		zap.Duration("elapsed", res.Elapsed))
	return res
}

// GrowStep records the length at which capacity changed.
type GrowStep struct {
	Len int
	Cap int
}

// RunGrow pushes cfg.Pushes values after reserving cfg.Reserve slots and
// returns the initial state followed by one step per capacity change.
func RunGrow(cfg config.GrowConfig, log *zap.Logger) []GrowStep {
	v := vector.New[int]()
	v.SetLogger(log)
	if cfg.Reserve > 0 {
		v.Reserve(cfg.Reserve)
	}
	steps := []GrowStep{{Len: v.Len(), Cap: v.Cap()}}
	for i := 0; i < cfg.Pushes; i++ {
		before := v.Cap()
		v.PushBack(i * 1343 % 21)
		if v.Cap() != before {
			steps = append(steps, GrowStep{Len: v.Len(), Cap: v.Cap()})
		}
	}
	log.Info("grow finished",
		zap.Int("pushes", cfg.Pushes),
		zap.Int("len", v.Len()),
		zap.Int("cap", v.Cap()),
		zap.Int("reallocations", len(steps)-1))
	return steps
}

// RunSnapshot writes a snapshot of a random vector to path, reads it back
// and checks that contents and capacity survived.
func RunSnapshot(path string, cfg config.SortConfig, rng *rand.Rand, log *zap.Logger) error {
	v := Fill(rng, cfg.Size, cfg.Min, cfg.Max)
	data, err := v.MarshalBinary()
	if err != nil {
		return fmt.Errorf("scenario: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("scenario: write %s: %w", path, err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("scenario: read %s: %w", path, err)
	}
	var back vector.Vector[float64]
	if err := back.UnmarshalBinary(raw); err != nil {
		return fmt.Errorf("scenario: decode %s: %w", path, err)
	}
	if back.Len() != v.Len() || back.Cap() != v.Cap() {
		return fmt.Errorf("%w: len %d/%d cap %d/%d", ErrMismatch, back.Len(), v.Len(), back.Cap(), v.Cap())
	}
	for i, x := range v.All() {
		if y, _ := back.At(i); y != x {
			return fmt.Errorf("%w: element %d", ErrMismatch, i)
		}
	}
	log.Info("snapshot verified",
		zap.String("path", path),
		zap.Int("len", back.Len()),
		zap.Int("bytes", len(data)))
	return nil
}
