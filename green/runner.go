// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package green

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"
)

// DefaultCLIPath is the executable used when Config.Path is empty.  A bare
// name is resolved against the search path of the calling process.
const DefaultCLIPath = "green-cli"

// waitDelay bounds how long a killed CLI may hold its output pipes open
// through child processes of its own.
const waitDelay = 5 * time.Second

// fixedEnv is applied to every invocation after the inherited environment
// and Config.Env, so it always wins.  It turns on the CLI's logging flags.
var fixedEnv = []string{
	"GREEN_CLI_L=-L",
	"GREEN_CLI_T=-T",
}

// Config houses the settings used to launch the external wallet CLI.
type Config struct {
	// Path is the executable to run.  It should be an absolute path; when
	// empty DefaultCLIPath is looked up on the search path.
	Path string

	// Env holds extra KEY=VALUE pairs layered over the inherited
	// environment of the calling process.
	Env []string
}

// CommandRunner executes the external wallet CLI.  Runner is the production
// implementation; tests substitute their own.
type CommandRunner interface {
	// RunAsync starts the CLI with the literal argument vector and returns
	// a future that delivers its standard output.
	RunAsync(ctx context.Context, args ...string) FutureOutput
}

// response is the outcome of a single CLI invocation.
type response struct {
	result string
	err    error
}

// FutureOutput is a future promise to deliver the standard output of a CLI
// invocation (or an applicable error).  It may be received from only once.
type FutureOutput chan *response

// Receive waits for the CLI invocation promised by the future to finish and
// returns its standard output.
func (f FutureOutput) Receive() (string, error) {
	r := <-f
	return r.result, r.err
}

// NewFutureOutput returns a future that is already resolved with the given
// standard output and error.
func NewFutureOutput(stdout string, err error) FutureOutput {
	responseChan := make(chan *response, 1)
	responseChan <- &response{result: stdout, err: err}
	return responseChan
}

// newFutureError returns a future that is already resolved with err.
func newFutureError(err error) FutureOutput {
	return NewFutureOutput("", err)
}

// Runner launches the external wallet CLI as a subprocess.  It holds no
// mutable state and is safe for concurrent use; every call spawns its own
// process.
type Runner struct {
	path string
	env  []string
}

// Ensure Runner satisfies the CommandRunner interface.
var _ CommandRunner = (*Runner)(nil)

// NewRunner returns a Runner for the given config.  A nil config selects
// DefaultCLIPath with no extra environment.
func NewRunner(cfg *Config) *Runner {
	r := &Runner{path: DefaultCLIPath}
	if cfg == nil {
		return r
	}
	if cfg.Path != "" {
		r.path = cfg.Path
	}
	r.env = append([]string(nil), cfg.Env...)
	return r
}

// Path returns the executable the runner launches.
func (r *Runner) Path() string {
	return r.path
}

// environ returns the environment of a child process.  Later entries win on
// duplicate keys.
func (r *Runner) environ() []string {
	env := os.Environ()
	env = append(env, r.env...)
	return append(env, fixedEnv...)
}

// command returns the exec.Cmd which will be used to start the CLI process.
func (r *Runner) command(ctx context.Context, args []string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, r.path, args...)
	cmd.Env = r.environ()
	cmd.WaitDelay = waitDelay
	return cmd
}

// RunAsync starts the CLI on its own goroutine and returns immediately.  The
// subprocess is bound to ctx: cancelling ctx kills it and the future
// resolves with ErrCanceled or ErrTimeout.
//
// See Run for the blocking version.
func (r *Runner) RunAsync(ctx context.Context, args ...string) FutureOutput {
	if ctx == nil {
		ctx = context.Background()
	}
	args = append([]string(nil), args...)

	responseChan := make(chan *response, 1)
	go func() {
		stdout, err := r.execute(ctx, args)
		responseChan <- &response{result: stdout, err: err}
	}()

	return responseChan
}

// Run invokes the CLI and blocks until it exits.  On exit status zero it
// returns standard output.  A non-zero exit yields an ErrCLI error carrying
// standard error; failing to spawn the process yields ErrIO.
func (r *Runner) Run(ctx context.Context, args ...string) (string, error) {
	return r.RunAsync(ctx, args...).Receive()
}

// execute runs the CLI to completion and maps its outcome to a result.
func (r *Runner) execute(ctx context.Context, args []string) (string, error) {
	cmd := r.command(ctx, args)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debugf("Running %s %s", r.path, subcommand(args))
	log.Tracef("Full argument vector: %q", args)

	err := cmd.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			log.Debugf("%s %s aborted: %v", r.path,
				subcommand(args), ctxErr)
			return "", contextError(ctxErr)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Debugf("%s %s exited with status %d", r.path,
				subcommand(args), exitErr.ExitCode())
			return "", cliError(lossyString(stderr.Bytes()))
		}

		return "", greenError(ErrIO, "unable to run "+r.path, err)
	}

	log.Debugf("%s %s returned %d %s", r.path, subcommand(args),
		stdout.Len(), pickNoun(stdout.Len(), "byte", "bytes"))

	return lossyString(stdout.Bytes()), nil
}

// contextError maps a context error to ErrTimeout or ErrCanceled.
func contextError(err error) Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return greenError(ErrTimeout, "operation timed out", err)
	}
	return greenError(ErrCanceled, "operation canceled", err)
}

// lossyString decodes b as UTF-8, replacing invalid sequences with U+FFFD.
func lossyString(b []byte) string {
	return strings.ToValidUTF8(string(b), "\uFFFD")
}

// subcommand returns the leading subcommand pair of args for logging.  The
// remaining arguments may carry request payloads and are left out.
func subcommand(args []string) string {
	if len(args) > 2 {
		args = args[:2]
	}
	return strings.Join(args, " ")
}
