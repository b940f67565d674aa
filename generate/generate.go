// Package generate runs the pipeline from one resource source to its
// accessor files: read, name the container, build accessors, report
// diagnostics, write outputs, record the run and fire the post-generate hook.
//
// Every Run works on fresh state; nothing carries over between calls
// except what the cache records on disk.
package generate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/resgen/accessor"
	"github.com/teranos/resgen/cache"
	"github.com/teranos/resgen/config"
	"github.com/teranos/resgen/errors"
	"github.com/teranos/resgen/logger"
	"github.com/teranos/resgen/resource"
	"github.com/teranos/resgen/source"
	"github.com/teranos/resgen/target"
	"github.com/teranos/resgen/version"
)

// Skip reasons
const (
	SkipLocalized = "localized"
	SkipUnchanged = "unchanged"
)

// Request is one input to generate
type Request struct {
	Input  string
	Config *config.Config
	// Cache, when set, lets unchanged inputs be skipped and records each run
	Cache *cache.Store
	// Sink receives diagnostics as they are produced
	Sink accessor.Sink
	// Force regenerates even when the cache says the outputs are fresh
	Force bool
	// SkipHooks suppresses the post-generate hook
	SkipHooks bool
	Logger    *zap.SugaredLogger

	// writeDir replaces the output directory files are written to without
	// changing what is generated
	writeDir string
}

// Report describes what a Run did
type Report struct {
	Input       string                `json:"input"`
	Language    string                `json:"language,omitempty"`
	Container   string                `json:"container,omitempty"`
	Skipped     string                `json:"skipped,omitempty"`
	Accessors   int                   `json:"accessors"`
	Unresolved  []string              `json:"unresolved,omitempty"`
	Diagnostics []accessor.Diagnostic `json:"diagnostics,omitempty"`
	Written     []string              `json:"written,omitempty"`
	RunID       string                `json:"run_id,omitempty"`
	DurationMS  int64                 `json:"duration_ms"`
}

// HasErrors reports whether any error-severity diagnostic was produced
func (r *Report) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == accessor.SeverityError {
			return true
		}
	}
	return false
}

// run carries the state of one Run call
type run struct {
	req    Request
	cfg    *config.Config
	lang   target.Language
	log    *zap.SugaredLogger
	report *Report
}

// Run generates the accessor files for req.Input.
// Fatal problems are both recorded as error diagnostics and returned.
func Run(ctx context.Context, req Request) (*Report, error) {
	start := time.Now()
	r, err := newRun(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		r.report.DurationMS = time.Since(start).Milliseconds()
	}()

	if source.IsLocalizedFile(req.Input) {
		r.report.Skipped = SkipLocalized
		r.log.Debugw("Skipping localized source", logger.FieldFile, req.Input)
		return r.report, nil
	}

	if err := r.execute(ctx); err != nil {
		return r.report, err
	}
	return r.report, nil
}

func newRun(req Request) (*run, error) {
	if req.Input == "" {
		return nil, errors.NewInvalidRequestError("no input file")
	}
	cfg := req.Config
	if cfg == nil {
		cfg = config.Default()
	}
	lang, err := target.Lookup(cfg.Generate.Language)
	if err != nil {
		return nil, err
	}
	log := req.Logger
	if log == nil {
		log = logger.ComponentLogger("generate")
	}
	return &run{
		req:  req,
		cfg:  cfg,
		lang: lang,
		log:  log.With(logger.FieldFile, req.Input, logger.FieldLanguage, lang.Name()),
		report: &Report{
			Input:    req.Input,
			Language: lang.Name(),
		},
	}, nil
}

func (r *run) execute(ctx context.Context) error {
	content, err := os.ReadFile(r.req.Input)
	if err != nil {
		return r.fatal(accessor.CodeUnreadableSource, errors.Wrapf(err, "failed to read %s", r.req.Input))
	}

	fingerprint := cache.Fingerprint(content, r.settings()...)
	absInput, err := filepath.Abs(r.req.Input)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve %s", r.req.Input)
	}

	if r.req.Cache != nil && !r.req.Force {
		fresh, err := r.req.Cache.Fresh(ctx, absInput, fingerprint)
		if err != nil {
			r.log.Warnw("Cache lookup failed, regenerating", logger.FieldError, err)
		} else if fresh {
			r.report.Skipped = SkipUnchanged
			r.log.Infow("Outputs up to date")
			return nil
		}
	}

	types := resource.NewTypeTable(r.cfg.Generate.StrictTypes)
	reader, err := source.ForPath(r.req.Input, types)
	if err != nil {
		return r.fatal(accessor.CodeUnreadableSource, err)
	}
	set, err := reader.Read(ctx, bytes.NewReader(content))
	if err != nil {
		code := accessor.CodeUnreadableSource
		if errors.Is(err, errors.ErrDuplicateKey) {
			code = accessor.CodeDuplicateKey
		}
		return r.fatal(code, errors.Wrapf(err, "%s", filepath.Base(r.req.Input)))
	}

	unit, err := r.unit()
	if err != nil {
		return err
	}

	result, err := accessor.Build(set, accessor.Options{
		Oracle:   r.lang,
		Reserved: unit.Declaration.Reserved(),
	})
	if err != nil {
		return err
	}
	unit.Accessors = result.Accessors
	r.report.Accessors = len(result.Accessors)
	r.report.Unresolved = result.ErrorKeys()

	for _, d := range result.Diagnostics() {
		r.diagnose(d)
	}

	written, kept, err := r.write(unit)
	if err != nil {
		return r.fatal(accessor.CodeOutputFailed, err)
	}
	r.report.Written = written

	if r.req.Cache != nil {
		r.record(ctx, absInput, fingerprint, append(append([]string{}, written...), kept...))
	}

	if !r.req.SkipHooks && len(written) > 0 {
		if err := runHook(ctx, r.cfg.Hooks.PostGenerate, absInput, written); err != nil {
			return r.fatal(accessor.CodeOutputFailed, err)
		}
	}

	r.log.Infow("Generated accessors",
		logger.FieldAccessors, r.report.Accessors,
		logger.FieldUnresolved, len(r.report.Unresolved),
		logger.FieldCount, len(written))
	return nil
}

// unit names the container and fills the emit unit
func (r *run) unit() (*target.Unit, error) {
	baseName := BaseName(r.req.Input)
	container, err := accessor.NewContainer(baseName, r.cfg.Generate.Namespace, r.lang)
	if err != nil {
		code := accessor.CodeInvalidNamespace
		if !r.lang.IsValidIdentifier(baseName) {
			if _, ok := accessor.Sanitize(baseName, false, r.lang); !ok {
				code = accessor.CodeInvalidContainer
			}
		}
		return nil, r.fatal(code, err)
	}
	r.report.Container = container.QualifiedName()

	unit := target.NewUnit(container, baseName, filepath.Base(r.req.Input))
	unit.Internal = r.cfg.Generate.Internal()
	unit.Declaration = r.cfg.Declaration
	unit.WPF = r.cfg.Generate.WPF
	outDir, err := filepath.Abs(OutputDir(r.cfg, r.req.Input))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve output directory for %s", r.req.Input)
	}
	unit.Directory = filepath.Base(outDir)
	return unit, nil
}

// write emits the accessors file every time and the write-once files (the
// container and any companions) only when absent. It returns the files it
// wrote and the write-once files it left alone.
func (r *run) write(unit *target.Unit) (written, kept []string, err error) {
	dir := r.req.writeDir
	if dir == "" {
		dir = OutputDir(r.cfg, r.req.Input)
	}
	if err := os.MkdirAll(dir, config.DefaultDirPermissions); err != nil {
		return nil, nil, errors.Wrapf(err, "failed to create output directory %s", dir)
	}

	accessors, err := r.lang.EmitAccessors(unit)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to emit accessors for %s", unit.BaseName)
	}
	path := filepath.Join(dir, target.AccessorsFileName(r.lang, unit.BaseName))
	if err := os.WriteFile(path, accessors, config.DefaultFilePermissions); err != nil {
		return nil, nil, errors.Wrapf(err, "failed to write %s", path)
	}
	written = append(written, path)

	once, err := r.writeOnceFiles(unit)
	if err != nil {
		return nil, nil, err
	}
	for _, f := range once {
		path := filepath.Join(dir, f.name)
		if _, err := os.Stat(path); err == nil {
			r.log.Debugw("Write-once file exists, leaving it alone", logger.FieldOutput, path)
			kept = append(kept, path)
			continue
		} else if !os.IsNotExist(err) {
			return nil, nil, errors.Wrapf(err, "failed to stat %s", path)
		}

		content, err := f.emit()
		if err != nil {
			return nil, nil, errors.Wrapf(err, "failed to emit %s", f.name)
		}
		if err := os.WriteFile(path, content, config.DefaultFilePermissions); err != nil {
			return nil, nil, errors.Wrapf(err, "failed to write %s", path)
		}
		written = append(written, path)
	}
	return written, kept, nil
}

// onceFile is a file written only when it does not exist yet
type onceFile struct {
	name string
	emit func() ([]byte, error)
}

// writeOnceFiles lists the container file and the language's companions
func (r *run) writeOnceFiles(unit *target.Unit) ([]onceFile, error) {
	var files []onceFile
	if r.cfg.Generate.Designer {
		files = append(files, onceFile{
			name: target.ContainerFileName(r.lang, unit.BaseName),
			emit: func() ([]byte, error) { return r.lang.EmitContainer(unit) },
		})
	}

	companions, ok := r.lang.(target.Companions)
	if !ok {
		return files, nil
	}
	emitted, err := companions.EmitCompanions(unit)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to emit companions for %s", unit.BaseName)
	}
	for _, f := range emitted {
		content := f.Content
		files = append(files, onceFile{
			name: f.Name,
			emit: func() ([]byte, error) { return content, nil },
		})
	}
	return files, nil
}

// record stores the run in the cache. A cache failure never fails generation.
func (r *run) record(ctx context.Context, absInput, fingerprint string, written []string) {
	outputs := make([]cache.Output, 0, len(written))
	for _, path := range written {
		sum, err := cache.HashFile(path)
		if err != nil {
			r.log.Warnw("Failed to hash output", logger.FieldOutput, path, logger.FieldError, err)
			return
		}
		abs, _ := filepath.Abs(path)
		outputs = append(outputs, cache.Output{Path: abs, SHA256: sum})
	}

	recorded, err := r.req.Cache.Record(ctx, cache.Run{
		InputPath:   absInput,
		Fingerprint: fingerprint,
		Language:    r.lang.Name(),
		Accessors:   r.report.Accessors,
		Unresolved:  len(r.report.Unresolved),
		Outputs:     outputs,
	})
	if err != nil {
		r.log.Warnw("Failed to record run", logger.FieldError, err)
		return
	}
	r.report.RunID = recorded.ID
}

// settings are the configuration values that change generated output
func (r *run) settings() []string {
	g := r.cfg.Generate
	d := r.cfg.Declaration
	return []string{
		version.Get().Version,
		r.lang.Name(),
		g.Namespace,
		g.ClassModifier,
		strconv.FormatBool(g.Designer),
		strconv.FormatBool(g.StrictTypes),
		strconv.FormatBool(g.WPF),
		OutputDir(r.cfg, r.req.Input),
		d.ResourceManagerProperty,
		d.CultureProperty,
		d.ResourceManagerField,
		d.CultureField,
	}
}

func (r *run) diagnose(d accessor.Diagnostic) {
	r.report.Diagnostics = append(r.report.Diagnostics, d)
	if r.req.Sink != nil {
		r.req.Sink.Report(d)
	}
	fields := []interface{}{
		logger.FieldErrorCode, d.Code,
		logger.FieldKey, d.Key,
		logger.FieldLine, d.Position.Line,
		logger.FieldColumn, d.Position.Column,
	}
	if d.Severity == accessor.SeverityError {
		r.log.Errorw(d.Message, fields...)
	} else {
		r.log.Warnw(d.Message, fields...)
	}
}

// fatal records err as an error diagnostic and returns it
func (r *run) fatal(code string, err error) error {
	r.diagnose(accessor.Diagnostic{
		Severity: accessor.SeverityError,
		Code:     code,
		Message:  err.Error(),
	})
	return err
}

// BaseName is the input file name without directory and extension
func BaseName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OutputDir is where the files for input are written
func OutputDir(cfg *config.Config, input string) string {
	if cfg.Generate.OutputDir != "" {
		return cfg.Generate.OutputDir
	}
	return filepath.Dir(input)
}
