package hooks

import "time"

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithRunner substitutes the command runner. Tests use this to return
// canned output without spawning processes.
func WithRunner(r CommandRunner) PipelineOption {
	return func(p *Pipeline) {
		p.runner = r
	}
}

// WithTargetTriple overrides the platform triple of the compiler's
// release output directory. Default is DefaultTargetTriple.
func WithTargetTriple(triple string) PipelineOption {
	return func(p *Pipeline) {
		p.triple = triple
	}
}

// WithCompiler overrides the compiler program. Default is "cargo".
func WithCompiler(bin string) PipelineOption {
	return func(p *Pipeline) {
		p.compiler = bin
	}
}

// WithOptimizer overrides the optimizer program. Default is "wasm-opt".
func WithOptimizer(bin string) PipelineOption {
	return func(p *Pipeline) {
		p.optimizer = bin
	}
}

// WithCleaner overrides the metadata cleaner. Default is "hook-cleaner".
func WithCleaner(bin string) PipelineOption {
	return func(p *Pipeline) {
		p.cleaner = bin
	}
}

// WithConverter overrides the text converter. Default is "wasm2wat".
func WithConverter(bin string) PipelineOption {
	return func(p *Pipeline) {
		p.converter = bin
	}
}

// WithValidator overrides the guard checker. Default is "guard-checker".
func WithValidator(bin string) PipelineOption {
	return func(p *Pipeline) {
		p.validator = bin
	}
}

// WithContinueOnError reproduces the legacy policy of logging stage
// failures and proceeding instead of aborting. Only useful when
// bit-identical behavior with old deployments is required; the build can
// then finalize a stale or missing artifact.
func WithContinueOnError(enabled bool) PipelineOption {
	return func(p *Pipeline) {
		p.continueOnError = enabled
	}
}

// SubmitterOption configures a Submitter.
type SubmitterOption func(*Submitter)

// WithMaxAttempts sets the attempt budget. Default is 3.
func WithMaxAttempts(n int) SubmitterOption {
	return func(s *Submitter) {
		if n > 0 {
			s.policy.MaxAttempts = n
		}
	}
}

// WithRetryDelay sets the fixed delay between attempts. Default is one
// second; there is no exponential growth and no jitter.
func WithRetryDelay(d time.Duration) SubmitterOption {
	return func(s *Submitter) {
		if d >= 0 {
			s.policy.Delay = d
		}
	}
}

// DeployerOption configures a Deployer.
type DeployerOption func(*Deployer)

// WithSubmitter substitutes the retrying submitter used for the final
// transaction submission.
func WithSubmitter(s *Submitter) DeployerOption {
	return func(d *Deployer) {
		d.submitter = s
	}
}
