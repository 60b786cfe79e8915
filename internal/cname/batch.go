package cname

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
)

// BatchResult is one entry of a batch generation run. Generation over
// already-validated configurations cannot currently fail; Err exists for
// interface uniformity with future fallible generators and is always nil
// today.
type BatchResult struct {
	Record string
	Err    error
}

// BatchGenerate renders every configuration in parallel and returns one
// result per input, index-aligned with the input slice regardless of
// scheduling. Work is fanned out over up to runtime.NumCPU() goroutines
// that claim indices from a shared atomic counter and write into a
// pre-sized result slice, so output order is fixed by construction and
// no locks are needed. An empty input yields an empty result slice.
func BatchGenerate(configs []RecordConfig) []BatchResult {
	results := make([]BatchResult, len(configs))
	if len(configs) == 0 {
		return results
	}

	workers := runtime.NumCPU()
	if workers > len(configs) {
		workers = len(configs)
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1)) - 1
				if i >= len(configs) {
					return
				}
				results[i] = BatchResult{Record: configs[i].Generate()}
			}
		}()
	}
	wg.Wait()

	return results
}

// ExportBatchToFile generates all records and writes them to path joined
// by delimiter, overwriting any existing content in a single write. If
// any generation step fails, the first error (in input order) is
// returned and nothing is written. An empty batch is a valid no-op that
// still overwrites path with an empty file.
func ExportBatchToFile(configs []RecordConfig, path, delimiter string) error {
	results := BatchGenerate(configs)

	records := make([]string, len(results))
	for i, res := range results {
		if res.Err != nil {
			return fmt.Errorf("generating record %d: %w", i, res.Err)
		}
		records[i] = res.Record
	}

	if err := os.WriteFile(path, []byte(strings.Join(records, delimiter)), 0o644); err != nil {
		return fmt.Errorf("writing batch to %s: %w", path, err)
	}
	return nil
}
