package hooks

import (
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	log "github.com/xlab/suplog"
)

// Stage identifies a toolchain pipeline stage.
type Stage uint8

const (
	// StageCompile builds the hook project in release mode.
	StageCompile Stage = iota

	// StageOptimize flattens control flow and shrinks the raw artifact.
	StageOptimize

	// StageClean strips metadata from the flattened artifact.
	StageClean

	// StageConvert renders artifacts to readable text form (non-fatal).
	StageConvert

	// StageValidate runs the guard checker over the cleaned artifact.
	StageValidate

	// StageFinalize reads the cleaned artifact into the payload.
	StageFinalize
)

var stageNames = [...]string{
	StageCompile:  "compile",
	StageOptimize: "optimize",
	StageClean:    "clean",
	StageConvert:  "convert",
	StageValidate: "validate",
	StageFinalize: "finalize",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "unknown"
}

// Default toolchain programs and target. All are overridable via options.
const (
	// DefaultTargetTriple is the platform triple of the release artifact dir.
	DefaultTargetTriple = "wasm32-unknown-unknown"

	defaultCompiler  = "cargo"
	defaultOptimizer = "wasm-opt"
	defaultCleaner   = "hook-cleaner"
	defaultConverter = "wasm2wat"
	defaultValidator = "guard-checker"
)

// Pipeline drives the external build toolchain over a working directory
// and produces a deployable SetHookPayload. Stages run strictly in order:
// compile, optimize, clean, then the three debug text conversions
// concurrently, then validate and finalize.
//
// The working/target directory is shared mutable state; run at most one
// pipeline per directory at a time.
type Pipeline struct {
	workdir string
	triple  string
	runner  CommandRunner

	compiler  string
	optimizer string
	cleaner   string
	converter string
	validator string

	// continueOnError reproduces the legacy logged-only failure policy.
	continueOnError bool
}

// NewPipeline creates a pipeline over workdir with default tools and a
// process-spawning runner.
func NewPipeline(workdir string, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		workdir:   workdir,
		triple:    DefaultTargetTriple,
		runner:    ExecRunner{},
		compiler:  defaultCompiler,
		optimizer: defaultOptimizer,
		cleaner:   defaultCleaner,
		converter: defaultConverter,
		validator: defaultValidator,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Build runs the full toolchain for the named artifact and returns the
// payload with CreateCode attached. The payload carries API version 0 and
// a namespace digested from name + "namespace".
//
// Any stage failure aborts the build with a StageError carrying the tool's
// captured output, unless WithContinueOnError is set, in which case
// failures are logged and the pipeline proceeds (legacy behavior; the
// final artifact read still fails if nothing was produced).
func (p *Pipeline) Build(ctx context.Context, name string) (SetHookPayload, error) {
	payload := BuildPayload(BuildOptions{
		APIVersion:    Uint16(0),
		NamespaceSeed: name + "namespace",
	})

	raw := p.rawArtifact(name)
	flattened := p.siblingArtifact(raw, name+".flattened.wasm")
	cleaned := p.siblingArtifact(raw, name+".cleaned.wasm")

	if err := p.runStage(ctx, StageCompile, p.compiler, "build", "--release"); err != nil {
		return payload, err
	}
	if err := p.runStage(ctx, StageOptimize, p.optimizer,
		raw, "--flatten", "--rereloop", "-Oz", "-Oz", "-o", flattened); err != nil {
		return payload, err
	}
	if err := p.runStage(ctx, StageClean, p.cleaner, flattened, cleaned); err != nil {
		return payload, err
	}

	p.convertAll(ctx, raw, flattened, cleaned)

	if err := p.runStage(ctx, StageValidate, p.validator, cleaned); err != nil {
		return payload, err
	}

	code, err := os.ReadFile(cleaned)
	if err != nil {
		return payload, &StageError{
			Stage: StageFinalize,
			Err:   errors.Wrap(ErrMissingArtifact, err.Error()),
		}
	}

	return payload.WithCode(strings.ToUpper(hex.EncodeToString(code))), nil
}

// runStage invokes one external tool, logging its captured output. Under
// the default fail-fast policy a non-zero exit becomes a StageError.
func (p *Pipeline) runStage(ctx context.Context, stage Stage, tool string, args ...string) error {
	out, err := p.runner.Run(ctx, p.workdir, tool, args...)
	logStageOutput(stage, tool, out)
	if err == nil {
		return nil
	}
	if p.continueOnError {
		log.WithError(err).WithField("stage", stage.String()).
			Warningln("stage failed, continuing (legacy policy)")
		return nil
	}
	return &StageError{Stage: stage, Output: out, Err: err}
}

// convertAll renders the three artifact variants to text concurrently.
// Conversions are independent, jointly awaited, and never fatal.
func (p *Pipeline) convertAll(ctx context.Context, artifacts ...string) {
	var wg sync.WaitGroup
	for _, artifact := range artifacts {
		wg.Add(1)
		go func(in string) {
			defer wg.Done()
			out, err := p.runner.Run(ctx, p.workdir, p.converter, in, "-o", in+".wat")
			logStageOutput(StageConvert, p.converter, out)
			if err != nil {
				log.WithError(err).WithField("artifact", in).
					Warningln("debug conversion failed")
			}
		}(artifact)
	}
	wg.Wait()
}

// rawArtifact is the compiler's conventional release output path.
func (p *Pipeline) rawArtifact(name string) string {
	return filepath.Join(p.workdir, "target", p.triple, "release", name+".wasm")
}

// siblingArtifact places a derived artifact next to the raw one.
func (p *Pipeline) siblingArtifact(raw, name string) string {
	return filepath.Join(filepath.Dir(raw), name)
}

func logStageOutput(stage Stage, tool, out string) {
	out = strings.TrimSpace(out)
	if out == "" {
		return
	}
	log.WithField("stage", stage.String()).WithField("tool", tool).Infoln(out)
}
