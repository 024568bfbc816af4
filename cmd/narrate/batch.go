package main

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	narrate "github.com/alnah/go-narrate"
)

// Worker pool sizing.
const (
	minWorkers = 1
	maxWorkers = 16
)

// DocumentAssembler is the part of narrate.Assembler the CLI uses.
type DocumentAssembler interface {
	AssembleDocument(doc narrate.Document) string
	BuildPayload(doc narrate.Document) narrate.Payload
}

// Compile-time interface implementation check.
var _ DocumentAssembler = (*narrate.Assembler)(nil)

// job loads one document.
type job struct {
	source string
	load   func(ctx context.Context) (narrate.Document, error)
}

// Result holds the outcome of one document.
type Result struct {
	Source   string
	Doc      narrate.Document
	Body     string
	Payload  *narrate.Payload
	Err      error
	Duration time.Duration
}

// fileJobs returns one job per document file.
func fileJobs(paths []string) []job {
	jobs := make([]job, 0, len(paths))
	for _, p := range paths {
		jobs = append(jobs, job{
			source: p,
			load: func(context.Context) (narrate.Document, error) {
				return narrate.ReadDocumentFile(p)
			},
		})
	}
	return jobs
}

// resolverJobs returns one job per document id.
func resolverJobs(r narrate.Resolver, ids []string) []job {
	jobs := make([]job, 0, len(ids))
	for _, id := range ids {
		jobs = append(jobs, job{
			source: id,
			load: func(ctx context.Context) (narrate.Document, error) {
				return r.Document(ctx, id)
			},
		})
	}
	return jobs
}

// assembleBatch processes jobs concurrently. Results keep the order of jobs.
func assembleBatch(ctx context.Context, asm DocumentAssembler, jobs []job, workers int, payload bool) []Result {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := min(workers, len(jobs))
	concurrency = max(concurrency, 1)

	results := make([]Result, len(jobs))
	queue := make(chan int, len(jobs))
	var wg sync.WaitGroup

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range queue {
				if ctx.Err() != nil {
					results[idx] = Result{Source: jobs[idx].source, Err: ctx.Err()}
					continue
				}
				results[idx] = assembleOne(ctx, asm, jobs[idx], payload)
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// assembleOne loads and assembles a single document.
// Recovers from panics in host renderers or filters.
func assembleOne(ctx context.Context, asm DocumentAssembler, j job, payload bool) (result Result) {
	start := time.Now()
	result.Source = j.source

	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("internal error: %v", r)
		}
		result.Duration = time.Since(start)
	}()

	doc, err := j.load(ctx)
	if err != nil {
		result.Err = err
		return result
	}
	result.Doc = doc

	if payload {
		p := asm.BuildPayload(doc)
		result.Payload = &p
		result.Body = p.Body
		return result
	}

	result.Body = asm.AssembleDocument(doc)
	return result
}

// resolveWorkers determines the worker count.
// Priority: explicit flag > GOMAXPROCS (adjusted by automaxprocs for containers).
func resolveWorkers(flagWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}

	n := runtime.GOMAXPROCS(0)
	if n < minWorkers {
		return minWorkers
	}
	if n > maxWorkers {
		return maxWorkers
	}
	return n
}
