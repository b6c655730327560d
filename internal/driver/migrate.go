package driver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"synport/internal/cache"
	"synport/internal/diag"
	"synport/internal/fsys"
	"synport/internal/merge"
	"synport/internal/progress"
	"synport/internal/revision"
	"synport/internal/section"
	"synport/internal/source"
	"synport/internal/trace"
)

// ErrMissingMarker is recorded on items whose newest revision has no
// section marker.
var ErrMissingMarker = errors.New("section marker not found")

// EmptySectionPolicy decides what happens when the marker is absent.
type EmptySectionPolicy string

const (
	// EmptySectionSkip writes nothing and reports the directory as skipped.
	EmptySectionSkip EmptySectionPolicy = "skip"
	// EmptySectionHeaderOnly writes the header alone.
	EmptySectionHeaderOnly EmptySectionPolicy = "header-only"
)

// ParseEmptySectionPolicy validates a --empty-section value.
func ParseEmptySectionPolicy(s string) (EmptySectionPolicy, error) {
	switch EmptySectionPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", EmptySectionSkip:
		return EmptySectionSkip, nil
	case EmptySectionHeaderOnly:
		return EmptySectionHeaderOnly, nil
	default:
		return "", fmt.Errorf("invalid empty-section policy %q (expected skip|header-only)", s)
	}
}

// MigrateOptions configures a tree migration.
type MigrateOptions struct {
	Source string
	Output string

	Extension       string // source extension, default ".tes"
	Suffix          string // appended to the stem, default "_merged"
	OutputExtension string // default ".txt"
	Marker          string // default section.Marker
	Header          string // default merge.DefaultHeader

	EmptySection EmptySectionPolicy
	Resolver     revision.Resolver

	Jobs   int
	DryRun bool
	// Cache lets unchanged outputs be left alone. nil disables it.
	Cache    *cache.Cache
	Progress progress.Sink

	MaxDiagnostics int
}

// Defaults used when MigrateOptions fields are empty.
const (
	DefaultExtension       = ".tes"
	DefaultSuffix          = "_merged"
	DefaultOutputExtension = ".txt"
)

func (o MigrateOptions) withDefaults() MigrateOptions {
	if o.Extension == "" {
		o.Extension = DefaultExtension
	}
	if o.Suffix == "" {
		o.Suffix = DefaultSuffix
	}
	if o.OutputExtension == "" {
		o.OutputExtension = DefaultOutputExtension
	}
	if o.Marker == "" {
		o.Marker = section.Marker
	}
	if o.Header == "" {
		o.Header = merge.DefaultHeader
	}
	if o.EmptySection == "" {
		o.EmptySection = EmptySectionSkip
	}
	if o.Jobs <= 0 {
		o.Jobs = runtime.GOMAXPROCS(0)
	}
	o.Progress = progress.Or(o.Progress)
	return o
}

// ItemStatus is the outcome for one source directory.
type ItemStatus string

const (
	StatusMigrated  ItemStatus = "migrated"
	StatusUnchanged ItemStatus = "unchanged"
	StatusSkipped   ItemStatus = "skipped"
	StatusFailed    ItemStatus = "failed"
)

// DirResult describes what happened to one directory that held source files.
type DirResult struct {
	Dir    string     `json:"dir"`
	Source string     `json:"source,omitempty"`
	Token  string     `json:"token,omitempty"`
	Output string     `json:"output,omitempty"`
	Status ItemStatus `json:"status"`
	Reason string     `json:"reason,omitempty"`
	Err    error      `json:"-"`
}

// MigrateReport aggregates a whole run. Results are sorted by directory.
type MigrateReport struct {
	Source      string      `json:"source"`
	Output      string      `json:"output"`
	DryRun      bool        `json:"dry_run,omitempty"`
	Results     []DirResult `json:"results"`
	Migrated    int         `json:"migrated"`
	Unchanged   int         `json:"unchanged"`
	Skipped     int         `json:"skipped"`
	Failed      int         `json:"failed"`
	Diagnostics *diag.Bag   `json:"-"`
}

func (r *MigrateReport) add(res DirResult) {
	r.Results = append(r.Results, res)
	switch res.Status {
	case StatusMigrated:
		r.Migrated++
	case StatusUnchanged:
		r.Unchanged++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
}

// Succeeded counts directories that have an up-to-date output.
func (r *MigrateReport) Succeeded() int { return r.Migrated + r.Unchanged }

// Migrate converts every directory under opts.Source that holds source
// files. Per-directory problems are recorded in the report and never abort
// the run; the returned error covers invalid options, an unreadable source
// root and cancellation.
func Migrate(ctx context.Context, p fsys.Provider, opts MigrateOptions) (*MigrateReport, error) {
	opts = opts.withDefaults()
	report := &MigrateReport{
		Source:      opts.Source,
		Output:      opts.Output,
		DryRun:      opts.DryRun,
		Diagnostics: diag.NewBag(opts.MaxDiagnostics),
	}
	if err := merge.CheckHeader(opts.Header, opts.Marker); err != nil {
		return report, err
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	ctx, span := trace.Start(ctx, trace.ScopeRun, "migrate")
	defer func() {
		span.WithExtra("migrated", fmt.Sprint(report.Migrated)).
			WithExtra("skipped", fmt.Sprint(report.Skipped)).
			WithExtra("failed", fmt.Sprint(report.Failed)).
			End(opts.Source)
	}()

	dirs, err := p.ListDirectories(opts.Source)
	if err != nil {
		trace.Failure(trace.FromContext(ctx), trace.ScopeRun, "list", err, span.ID())
		return report, fmt.Errorf("migrate: %w", err)
	}

	// Each worker owns its slot; a zero Status means the directory had no
	// source files.
	results := make([]DirResult, len(dirs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.Jobs, max(len(dirs), 1)))
	for i, dir := range dirs {
		i, dir := i, dir
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = migrateDir(gctx, p, dir, opts, report.Diagnostics)
			return nil
		})
	}
	waitErr := g.Wait()

	for _, res := range results {
		if res.Status != "" {
			report.add(res)
		}
	}
	report.Diagnostics.Sort()
	if waitErr != nil {
		return report, waitErr
	}
	return report, ctx.Err()
}

func migrateDir(ctx context.Context, p fsys.Provider, dir string, opts MigrateOptions, bag *diag.Bag) DirResult {
	res := DirResult{Dir: dir}
	sink := opts.Progress

	names, err := p.ListFiles(dir, opts.Extension)
	if err != nil {
		bag.Add(diag.Error(diag.IOList, dir, "cannot list directory: %v", err))
		return failed(res, err, sink, progress.StageResolve, time.Now())
	}
	if len(names) == 0 {
		return DirResult{}
	}

	ctx, span := trace.Start(ctx, trace.ScopeDir, "dir")
	tracer := trace.FromContext(ctx)
	defer func() {
		span.WithExtra("status", string(res.Status)).End(dir)
	}()

	sink.OnEvent(progress.Event{Item: dir, Stage: progress.StageResolve, Status: progress.StatusQueued})
	started := time.Now()
	stage := func(st progress.Stage) {
		sink.OnEvent(progress.Event{Item: dir, Stage: st, Status: progress.StatusWorking, Elapsed: time.Since(started)})
	}

	stage(progress.StageResolve)
	best, err := opts.Resolver.Resolve(names)
	if err != nil {
		var nr *revision.NoRevisionFoundError
		if errors.As(err, &nr) {
			nr.Dir = dir
		}
		bag.Add(diag.Warning(diag.RevNoToken, dir, "Skipping directory due to error: %v", err))
		res.Status = StatusSkipped
		res.Reason = "no revision identifier"
		res.Err = err
		sink.OnEvent(progress.Event{Item: dir, Stage: progress.StageResolve, Status: progress.StatusSkipped, Err: err, Elapsed: time.Since(started)})
		return res
	}
	res.Source = filepath.Join(dir, best.Name)
	res.Token = best.Token.String()
	span.WithExtra("token", res.Token)
	if tied := tiedWith(opts.Resolver, names, best); len(tied) > 0 {
		bag.Add(diag.Info(diag.RevTieBroken, dir, "%s shares revision %s with %s; using %s",
			best.Name, res.Token, strings.Join(tied, ", "), best.Name))
	}

	outDir, err := source.MirrorPath(opts.Source, dir, opts.Output)
	if err != nil {
		bag.Add(diag.Error(diag.IOWrite, dir, "%v", err))
		return failed(res, err, sink, progress.StageResolve, started)
	}
	res.Output = filepath.Join(outDir, source.TrimExt(best.Name)+opts.Suffix+opts.OutputExtension)

	stage(progress.StageExtract)
	text, err := p.ReadText(res.Source)
	if err != nil {
		trace.Failure(tracer, trace.ScopeFile, "read", err, span.ID())
		code := diag.IORead
		if errors.Is(err, fsys.ErrUndecodable) {
			code = diag.IOUndecodable
		}
		bag.Add(diag.Error(code, res.Source, "%v", err))
		return failed(res, err, sink, progress.StageExtract, started)
	}
	trace.Point(tracer, trace.ScopeFile, "read", res.Source, span.ID())

	doc := section.Split(section.SplitLines(text), opts.Marker)
	header := merge.WithLineEnding(opts.Header, source.LineEnding(text))
	if !doc.Found {
		if opts.EmptySection != EmptySectionHeaderOnly {
			bag.Add(diag.Warning(diag.SecMissingMarker, res.Source, "marker %q not found; nothing written", opts.Marker))
			res.Status = StatusSkipped
			res.Reason = "missing marker"
			res.Err = ErrMissingMarker
			sink.OnEvent(progress.Event{Item: dir, Stage: progress.StageExtract, Status: progress.StatusSkipped, Err: ErrMissingMarker, Elapsed: time.Since(started)})
			return res
		}
		bag.Add(diag.Info(diag.SecHeaderOnly, res.Source, "marker %q not found; writing header only", opts.Marker))
		res.Reason = "header only"
	}

	stage(progress.StageMerge)
	merged := merge.Merge(header, doc.Body)

	stage(progress.StageWrite)
	entry, entryErr := cache.NewEntry(dir, best.Name, res.Token, text, header, res.Output, merged)
	if entryErr == nil && upToDate(p, opts.Cache, entry) {
		res.Status = StatusUnchanged
		sink.OnEvent(progress.Event{Item: dir, Stage: progress.StageWrite, Status: progress.StatusDone, Elapsed: time.Since(started)})
		return res
	}

	if opts.DryRun {
		res.Status = StatusMigrated
		if res.Reason == "" {
			res.Reason = "dry run"
		}
		sink.OnEvent(progress.Event{Item: dir, Stage: progress.StageWrite, Status: progress.StatusDone, Elapsed: time.Since(started)})
		return res
	}

	if err := p.EnsureDirectory(outDir); err != nil {
		trace.Failure(tracer, trace.ScopeFile, "mkdir", err, span.ID())
		bag.Add(diag.Error(diag.IOWrite, outDir, "%v", err))
		return failed(res, err, sink, progress.StageWrite, started)
	}
	if err := p.WriteText(res.Output, merged); err != nil {
		trace.Failure(tracer, trace.ScopeFile, "write", err, span.ID())
		bag.Add(diag.Error(diag.IOWrite, res.Output, "%v", err))
		return failed(res, err, sink, progress.StageWrite, started)
	}
	trace.Point(tracer, trace.ScopeFile, "write", res.Output, span.ID())

	if entryErr == nil {
		if err := opts.Cache.Put(entry); err != nil {
			trace.Failure(tracer, trace.ScopeFile, "cache", err, span.ID())
		}
	}

	res.Status = StatusMigrated
	sink.OnEvent(progress.Event{Item: dir, Stage: progress.StageWrite, Status: progress.StatusDone, Elapsed: time.Since(started)})
	return res
}

func failed(res DirResult, err error, sink progress.Sink, st progress.Stage, started time.Time) DirResult {
	res.Status = StatusFailed
	res.Err = err
	res.Reason = err.Error()
	sink.OnEvent(progress.Event{Item: res.Dir, Stage: st, Status: progress.StatusError, Err: err, Elapsed: time.Since(started)})
	return res
}

// tiedWith lists the other names carrying best's token.
func tiedWith(r revision.Resolver, names []string, best revision.Candidate) []string {
	var tied []string
	for _, c := range r.Candidates(names) {
		if c.OK && c.Name != best.Name && c.Token.Compare(best.Token) == 0 {
			tied = append(tied, c.Name)
		}
	}
	return tied
}

// upToDate reports whether the cache says entry was already written and the
// output on disk still has the recorded content.
func upToDate(p fsys.Provider, c *cache.Cache, entry cache.Entry) bool {
	prev, ok, err := c.Get(entry.Output)
	if err != nil || !ok || !prev.Matches(entry) {
		return false
	}
	existing, err := p.ReadText(entry.Output)
	if err != nil {
		return false
	}
	return source.Sum(existing) == entry.OutputHash
}
