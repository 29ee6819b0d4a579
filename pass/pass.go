// Package pass orchestrates one generation pass: scan the declaration
// context, check output-identifier collisions, skip unchanged origin files,
// fan extraction and synthesis out to workers, and serialize writes through
// the dependency cache.
package pass

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gubacsiaronmate/markergen/decl"
	"github.com/gubacsiaronmate/markergen/emit"
	"github.com/gubacsiaronmate/markergen/extract"
	"github.com/gubacsiaronmate/markergen/scan"
	"github.com/gubacsiaronmate/markergen/synth"
)

// DefaultWorkers is the extraction/synthesis fan-out when config does not
// override it. Generation units are independent after scanning, so workers
// never contend on anything but the cache.
const DefaultWorkers = 4

// Context carries the shared state of one pass. It is constructed once per
// pass and passed explicitly to every component; nothing here is global.
type Context struct {
	// OutputRoot is where artifacts are written.
	OutputRoot string

	// Suffix and Extension define the output-naming policy.
	Suffix    string
	Extension string

	// Workers is the parallel extraction/synthesis fan-out.
	Workers int

	// Cache is the process-wide DependencyRecord store.
	Cache *emit.Cache

	// Log receives structured pass progress.
	Log *zap.SugaredLogger

	// PassID tags every log line of this pass.
	PassID string
}

// NewContext returns a pass context with defaults filled in and a fresh
// pass id.
func NewContext(outputRoot string, cache *emit.Cache, log *zap.SugaredLogger) *Context {
	return &Context{
		OutputRoot: outputRoot,
		Suffix:     synth.DefaultSuffix,
		Extension:  synth.DefaultExtension,
		Workers:    DefaultWorkers,
		Cache:      cache,
		Log:        log,
		PassID:     uuid.NewString(),
	}
}

// Result summarizes one completed pass. The pass always completes with a
// diagnostics list; diagnostics do not imply zero outputs were written.
type Result struct {
	// Written holds artifact paths written this pass, sorted.
	Written []string

	// Skipped holds origin files skipped as unchanged, sorted.
	Skipped []string

	// Pruned holds origin files whose records and outputs were removed
	// because the origin disappeared from the context, sorted.
	Pruned []string

	// Diagnostics is the accumulated diagnostic list.
	Diagnostics decl.Diagnostics
}

// originJob is the unit of worker fan-out: all declarations of one origin
// file. Grouping by origin keeps cache updates single-writer per origin.
type originJob struct {
	origin string
	hash   string
	decls  []decl.Declaration
}

// originOutcome is one worker's report for an origin file.
type originOutcome struct {
	origin  string
	hash    string
	written []string
	outputs []string
	diags   decl.Diagnostics
	failed  bool
}

// Run executes one generation pass over the supplied declaration context.
//
// Only a structural failure (the context itself could not be enumerated,
// which the loader reports before Run is ever called) or caller
// cancellation aborts a pass; everything else is recovered into
// diagnostics. On cancellation, outputs already written stay intact and
// the cache is consistent for them.
func Run(ctx context.Context, pc *Context, decls []decl.Declaration) (*Result, error) {
	res := &Result{}
	log := pc.Log.With("pass_id", pc.PassID)

	partition := scan.Scan(decls)
	res.Diagnostics = append(res.Diagnostics, partition.Invalid...)
	log.Debugw("Scan complete",
		"declarations", len(decls),
		"marked_valid", len(partition.Valid),
		"marked_invalid", len(partition.Invalid),
	)

	syn := &synth.Synthesizer{Suffix: pc.Suffix, Extension: pc.Extension}

	survivors, collisions := syn.Collisions(partition.Valid)
	res.Diagnostics = append(res.Diagnostics, collisions...)

	jobs, skipped, hashDiags := planOrigins(pc, survivors)
	res.Skipped = skipped
	res.Diagnostics = append(res.Diagnostics, hashDiags...)

	outcomes, err := fanOut(ctx, pc, syn, jobs, log)
	for _, oc := range outcomes {
		res.Diagnostics = append(res.Diagnostics, oc.diags...)
		res.Written = append(res.Written, oc.written...)
		if !oc.failed {
			pc.Cache.Update(oc.origin, oc.hash, oc.outputs, oc.written)
		}
	}
	sort.Strings(res.Written)
	if err != nil {
		// Abandoned between declarations. Written outputs and their cache
		// records are already consistent; skip pruning.
		return res, err
	}

	current := make(map[string]bool, len(decls))
	for _, d := range decls {
		current[d.OriginFile] = true
	}
	res.Pruned = pc.Cache.PruneStale(current)
	for _, origin := range res.Pruned {
		res.Diagnostics = append(res.Diagnostics, decl.Diagnostic{
			Identity: origin,
			Message:  "origin file removed; dependency record and outputs pruned",
			Severity: decl.SeverityInfo,
		})
	}

	log.Infow("Pass complete",
		"written", len(res.Written),
		"skipped", len(res.Skipped),
		"pruned", len(res.Pruned),
		"diagnostics", len(res.Diagnostics),
	)
	return res, nil
}

// planOrigins groups surviving declarations by origin file, hashes each
// origin once, and splits them into jobs needing regeneration and origins
// skipped as unchanged.
func planOrigins(pc *Context, decls []decl.Declaration) ([]originJob, []string, decl.Diagnostics) {
	byOrigin := make(map[string][]decl.Declaration)
	var order []string
	for _, d := range decls {
		if _, seen := byOrigin[d.OriginFile]; !seen {
			order = append(order, d.OriginFile)
		}
		byOrigin[d.OriginFile] = append(byOrigin[d.OriginFile], d)
	}

	var (
		jobs    []originJob
		skipped []string
		diags   decl.Diagnostics
	)
	for _, origin := range order {
		hash, err := emit.HashFile(origin)
		if err != nil {
			diags = append(diags, decl.Diagnostic{
				Identity: origin,
				Message:  "origin file unreadable: " + err.Error(),
				Severity: decl.SeverityError,
				Err:      err,
			})
			continue
		}
		if !pc.Cache.ShouldRegenerate(origin, hash) {
			skipped = append(skipped, origin)
			continue
		}
		jobs = append(jobs, originJob{origin: origin, hash: hash, decls: byOrigin[origin]})
	}
	sort.Strings(skipped)
	return jobs, skipped, diags
}

// fanOut runs extraction and synthesis for each origin job on a bounded
// worker pool. Scanning finished before this point, so workers share
// nothing mutable but the outcome slice.
func fanOut(ctx context.Context, pc *Context, syn *synth.Synthesizer, jobs []originJob, log *zap.SugaredLogger) ([]originOutcome, error) {
	workers := pc.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}
	if len(jobs) == 0 {
		return nil, ctx.Err()
	}

	writer := emit.NewWriter(pc.OutputRoot)
	jobCh := make(chan originJob)
	var (
		mu       sync.Mutex
		outcomes []originOutcome
		wg       sync.WaitGroup
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				oc := processOrigin(ctx, syn, writer, job, log)
				mu.Lock()
				outcomes = append(outcomes, oc)
				mu.Unlock()
			}
		}()
	}

	var err error
dispatch:
	for _, job := range jobs {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break dispatch
		case jobCh <- job:
		}
	}
	close(jobCh)
	wg.Wait()

	return outcomes, err
}

// processOrigin extracts, synthesizes, and writes every declaration of one
// origin file. A write failure marks the whole origin failed so its cache
// record stays untouched and the next pass retries it.
func processOrigin(ctx context.Context, syn *synth.Synthesizer, writer *emit.Writer, job originJob, log *zap.SugaredLogger) originOutcome {
	oc := originOutcome{origin: job.origin, hash: job.hash}

	for _, d := range job.decls {
		select {
		case <-ctx.Done():
			oc.failed = true
			return oc
		default:
		}

		members, mdiags := extract.Eligible(d)
		oc.diags = append(oc.diags, mdiags...)

		unit, err := syn.Render(d, members)
		if err != nil {
			oc.diags = append(oc.diags, decl.Diagnostic{
				Identity: d.Identity(),
				Message:  err.Error(),
				Severity: decl.SeverityError,
				Err:      err,
			})
			oc.failed = true
			continue
		}

		path, err := writer.Write(unit)
		if err != nil {
			oc.diags = append(oc.diags, decl.Diagnostic{
				Identity: d.Identity(),
				Message:  err.Error(),
				Severity: decl.SeverityError,
				Err:      err,
			})
			oc.failed = true
			continue
		}

		oc.written = append(oc.written, path)
		oc.outputs = append(oc.outputs, unit.Identifier)
		log.Debugw("Unit written", "identifier", unit.Identifier, "path", path)
	}

	return oc
}
