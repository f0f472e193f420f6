// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package greentest provides a stand-in for the green-cli executable so the
// green package can be tested against a real subprocess.
//
// The stand-in is a POSIX shell script, so the harness is only usable where
// /bin/sh exists.  Every invocation is answered according to its leading verb
// and noun, for example "get utxos", with the stdout, stderr and exit status
// scripted through Reply.
package greentest

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/btcsuite/greenwallet/green"
)

// stubScript answers an invocation from the files in the harness directory.
// The argument vector and environment of the last invocation are recorded.
const stubScript = `#!/bin/sh
dir=%q
key="${1}_${2}"
printf '%%s\n' "$@" > "$dir/last_args"
env > "$dir/last_env"
if [ -f "$dir/$key.sleep" ]; then
	exec sleep "$(cat "$dir/$key.sleep")"
fi
if [ ! -f "$dir/$key.exit" ] && [ ! -f "$dir/$key.stdout" ]; then
	echo "unknown command: $1 $2" >&2
	exit 2
fi
if [ -f "$dir/$key.stdout" ]; then
	cat "$dir/$key.stdout"
fi
if [ -f "$dir/$key.stderr" ]; then
	cat "$dir/$key.stderr" >&2
fi
if [ -f "$dir/$key.exit" ]; then
	exit "$(cat "$dir/$key.exit")"
fi
exit 0
`

// Reply is the scripted outcome of one subcommand.
type Reply struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Harness owns a temporary directory holding the stub executable and its
// scripted replies.
type Harness struct {
	t   testing.TB
	dir string
	exe string
}

// New writes the stub executable into a fresh temporary directory that is
// removed when the test finishes.  The test is skipped on Windows.
func New(t testing.TB) *Harness {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("green-cli stub requires a POSIX shell")
	}

	dir := t.TempDir()
	exe := filepath.Join(dir, "green-cli")

	script := fmt.Sprintf(stubScript, dir)
	if err := os.WriteFile(exe, []byte(script), 0700); err != nil {
		t.Fatalf("unable to write green-cli stub: %v", err)
	}

	return &Harness{t: t, dir: dir, exe: exe}
}

// Path returns the location of the stub executable.
func (h *Harness) Path() string {
	return h.exe
}

// Config returns a green.Config launching the stub with the extra
// environment entries.
func (h *Harness) Config(env ...string) *green.Config {
	return &green.Config{Path: h.exe, Env: env}
}

// Client returns a client launching the stub.
func (h *Harness) Client(env ...string) *green.Client {
	return green.New(h.Config(env...))
}

// Script sets the reply to the subcommand "verb noun".
func (h *Harness) Script(verb, noun string, reply Reply) {
	h.t.Helper()

	key := verb + "_" + noun
	h.writeFile(key+".stdout", reply.Stdout)
	h.writeFile(key+".stderr", reply.Stderr)
	h.writeFile(key+".exit", strconv.Itoa(reply.ExitCode))
}

// Hang makes the subcommand "verb noun" sleep for d without producing
// output, so callers can exercise cancellation.
func (h *Harness) Hang(verb, noun string, d time.Duration) {
	h.t.Helper()

	secs := int(d.Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}
	h.writeFile(verb+"_"+noun+".sleep", strconv.Itoa(secs))
}

// LastArgs returns the argument vector of the most recent invocation.
func (h *Harness) LastArgs() []string {
	h.t.Helper()

	b := h.readFile("last_args")
	if len(b) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
}

// LastEnv returns the value of key in the environment of the most recent
// invocation and whether it was set.
func (h *Harness) LastEnv(key string) (string, bool) {
	h.t.Helper()

	scanner := bufio.NewScanner(bytes.NewReader(h.readFile("last_env")))
	for scanner.Scan() {
		k, v, ok := strings.Cut(scanner.Text(), "=")
		if ok && k == key {
			return v, true
		}
	}
	return "", false
}

func (h *Harness) writeFile(name, contents string) {
	h.t.Helper()

	path := filepath.Join(h.dir, name)
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		h.t.Fatalf("unable to write %s: %v", name, err)
	}
}

func (h *Harness) readFile(name string) []byte {
	h.t.Helper()

	b, err := os.ReadFile(filepath.Join(h.dir, name))
	if err != nil {
		h.t.Fatalf("unable to read %s: %v", name, err)
	}
	return b
}
