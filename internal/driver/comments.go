package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"synport/internal/comments"
	"synport/internal/fsys"
	"synport/internal/progress"
	"synport/internal/trace"
)

// CommentOptions configures the comment-banner pass.
type CommentOptions struct {
	Root      string
	Extension string // default ".txt"
	Options   comments.Options
	// Check reports which files would change without writing.
	Check bool
	// Stdout returns rewritten content in the results instead of writing.
	Stdout   bool
	Progress progress.Sink
}

func (o CommentOptions) withDefaults() CommentOptions {
	if o.Extension == "" {
		o.Extension = DefaultOutputExtension
	}
	if o.Options == (comments.Options{}) {
		o.Options = comments.DefaultOptions()
	}
	o.Progress = progress.Or(o.Progress)
	return o
}

// CommentResult captures the result of rewriting a single file.
type CommentResult struct {
	Path      string `json:"path"`
	Blocks    int    `json:"blocks"`
	Changed   bool   `json:"changed"`
	Err       error  `json:"-"`
	Rewritten string `json:"-"`
}

// RewriteComments rewrites legacy REM banners in every matching file under
// opts.Root. Files without legacy blocks are never written. Per-file errors
// are recorded in the results and never stop the batch.
func RewriteComments(ctx context.Context, p fsys.Provider, opts CommentOptions) ([]CommentResult, error) {
	opts = opts.withDefaults()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, span := trace.Start(ctx, trace.ScopeRun, "comments")
	defer span.End(opts.Root)

	items, err := collectFiles(ctx, p, opts.Root, opts.Extension)
	if err != nil {
		trace.Failure(trace.FromContext(ctx), trace.ScopeRun, "list", err, span.ID())
		return nil, fmt.Errorf("comments: %w", err)
	}
	for _, it := range items {
		opts.Progress.OnEvent(progress.Event{Item: it.path, Stage: progress.StageRewrite, Status: progress.StatusQueued})
	}

	results := make([]CommentResult, 0, len(items))
	for _, it := range items {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if it.err != nil {
			trace.Failure(trace.FromContext(ctx), trace.ScopeFile, "list", it.err, span.ID())
			opts.Progress.OnEvent(progress.Event{Item: it.path, Stage: progress.StageRewrite, Status: progress.StatusError, Err: it.err})
			results = append(results, CommentResult{Path: it.path, Err: it.err})
			continue
		}
		results = append(results, rewriteFile(ctx, p, it.path, opts))
	}
	span.WithExtra("files", fmt.Sprint(len(results)))
	return results, nil
}

// RewriteCommentFile runs the comment pass on a single file.
func RewriteCommentFile(ctx context.Context, p fsys.Provider, path string, opts CommentOptions) CommentResult {
	return rewriteFile(ctx, p, path, opts.withDefaults())
}

func rewriteFile(ctx context.Context, p fsys.Provider, path string, opts CommentOptions) CommentResult {
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)
	started := time.Now()
	result := CommentResult{Path: path}
	done := func(status progress.Status) CommentResult {
		opts.Progress.OnEvent(progress.Event{Item: path, Stage: progress.StageRewrite, Status: status, Err: result.Err, Elapsed: time.Since(started)})
		return result
	}
	opts.Progress.OnEvent(progress.Event{Item: path, Stage: progress.StageRewrite, Status: progress.StatusWorking})

	text, err := p.ReadText(path)
	if err != nil {
		trace.Failure(tracer, trace.ScopeFile, "read", err, parent)
		result.Err = err
		return done(progress.StatusError)
	}

	rewritten, blocks := comments.RewriteWith(text, opts.Options)
	result.Blocks = blocks
	result.Changed = blocks > 0 && rewritten != text

	switch {
	case opts.Stdout:
		result.Rewritten = rewritten
		return done(progress.StatusDone)
	case opts.Check || !result.Changed:
		return done(progress.StatusSkipped)
	}

	if err := p.WriteText(path, rewritten); err != nil {
		trace.Failure(tracer, trace.ScopeFile, "write", err, parent)
		result.Err = err
		result.Changed = false
		return done(progress.StatusError)
	}
	trace.Point(tracer, trace.ScopeFile, "rewrite", fmt.Sprintf("%s (%d blocks)", path, blocks), parent)
	return done(progress.StatusDone)
}

// listedFile is a file to rewrite, or a directory whose listing failed.
type listedFile struct {
	path string
	err  error
}

// collectFiles fails only when the root cannot be walked; an unlistable
// directory becomes a single failed item.
func collectFiles(ctx context.Context, p fsys.Provider, root, ext string) ([]listedFile, error) {
	dirs, err := p.ListDirectories(root)
	if err != nil {
		return nil, err
	}
	var items []listedFile
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		names, err := p.ListFiles(dir, ext)
		if err != nil {
			items = append(items, listedFile{path: dir, err: err})
			continue
		}
		for _, name := range names {
			items = append(items, listedFile{path: filepath.Join(dir, name)})
		}
	}
	return items, nil
}
