package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"srcdep/internal/diag"
	"srcdep/internal/directive"
	"srcdep/internal/plan"
	"srcdep/internal/source"
)

// listSourceFiles resolves the target into a sorted file list. A file
// target is taken as-is; a directory is walked and filtered by the
// include globs matched against basenames.
func listSourceFiles(target string, include []string) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{target}, nil
	}

	var files []string
	err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if matchesAny(d.Name(), include) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Deterministic order regardless of walk internals.
	sort.Strings(files)
	return files, nil
}

func matchesAny(name string, globs []string) bool {
	if len(globs) == 0 {
		return true
	}
	for _, g := range globs {
		if ok, err := filepath.Match(g, name); err == nil && ok {
			return true
		}
	}
	return false
}

// Scan loads and scans every target file for directives in parallel.
// Load failures surface as IOLoadFileError diagnostics in the failing
// file's bag; the rest of the run continues.
func Scan(ctx context.Context, target string, opts Options) (*source.FileSet, []FileResult, error) {
	files, err := listSourceFiles(target, opts.Include)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(target)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Preload sequentially; FileSet is not safe for concurrent Add.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine owns a unique index, no mutex needed.
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(opts.MaxDiagnostics)

			if loadErr, failed := loadErrors[path]; failed {
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
					Primary:  source.Span{},
				})
				results[i] = FileResult{Path: path, Bag: bag}
				return nil
			}

			fileID := fileIDs[path]
			file := fileSet.Get(fileID)
			results[i] = scanOne(file, path, bag, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// scanOne scans a single loaded file, consulting the cache first.
func scanOne(file *source.File, path string, bag *diag.Bag, opts Options) FileResult {
	marker := opts.Marker
	if marker == "" {
		marker = directive.DefaultMarker
	}

	key := Digest(file.Hash)
	if dirs, hit, err := opts.Cache.Get(key, marker, file.ID); err == nil && hit {
		return FileResult{
			Path:       path,
			FileID:     file.ID,
			Directives: dirs,
			Bag:        bag,
			FromCache:  true,
		}
	}

	dirs := directive.ScanFile(file, directive.Options{
		Marker:   marker,
		Reporter: diag.BagReporter{Bag: bag},
	})

	// Only clean scans are cached, so a replay never hides a report.
	if bag.Len() == 0 && opts.Cache != nil {
		if err := opts.Cache.Put(key, marker, dirs); err != nil {
			diag.ReportWarning(diag.BagReporter{Bag: bag}, diag.ObsInfo, source.Span{},
				fmt.Sprintf("failed to write scan cache: %v", err)).Emit()
		}
	}

	return FileResult{
		Path:       path,
		FileID:     file.ID,
		Directives: dirs,
		Bag:        bag,
	}
}

// Plan runs the full pipeline: scan, per-file resolution, run-level
// override validation. The returned Result always carries a merged,
// sorted bag; files with fatal diagnostics are absent from the plan.
func Plan(ctx context.Context, target string, opts Options) (*Result, error) {
	fileSet, fileResults, err := Scan(ctx, target, opts)
	if err != nil {
		return nil, err
	}

	res := &Result{
		FileSet: fileSet,
		Files:   fileResults,
		Bag:     diag.NewBag(opts.MaxDiagnostics * (len(fileResults) + 1)),
	}

	declared := make(map[string]bool)
	for i := range fileResults {
		fr := &fileResults[i]

		for _, d := range fr.Directives {
			if d.Kind == directive.KindSwitchDecl {
				declared[d.Name] = true
			}
		}

		if fr.Bag.HasFatal() {
			continue
		}

		file := fileSet.Get(fr.FileID)
		fp, ok := plan.ResolveFile(file, fr.Directives, opts.Overrides, diag.BagReporter{Bag: fr.Bag})
		if !ok {
			continue
		}
		res.Plan.Files = append(res.Plan.Files, fp)
	}

	// An override naming a switch no scanned file declares is a user
	// error for the whole run.
	unknown := make([]string, 0)
	for name := range opts.Overrides {
		if !declared[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	runBag := diag.NewBag(opts.MaxDiagnostics)
	for _, name := range unknown {
		diag.ReportError(diag.BagReporter{Bag: runBag}, diag.SwUnknownSwitch, source.Span{},
			fmt.Sprintf("override for undeclared switch %q", name)).Emit()
	}

	for i := range fileResults {
		res.Bag.Merge(fileResults[i].Bag)
	}
	res.Bag.Merge(runBag)
	res.Bag.Sort()
	return res, nil
}
