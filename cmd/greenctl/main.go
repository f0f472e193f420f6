// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/btcsuite/greenwallet/green"
	"github.com/btcsuite/greenwallet/internal/prompt"
)

// session carries what every subcommand needs to talk to green-cli and the
// operator.
type session struct {
	client *green.Client
	cfg    *configFlags
	out    io.Writer

	// in and interactive are used to confirm broadcasts.
	in          *bufio.Reader
	interactive bool
}

// callContext derives the context of a single green-cli invocation from ctx,
// applying --timeout when set.
func (s *session) callContext(ctx context.Context) (context.Context,
	context.CancelFunc) {

	if s.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, s.cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

// run dispatches the parsed subcommand.
func (s *session) run(ctx context.Context, subCmd string,
	config interface{}) error {

	switch subCmd {
	case balanceSubCmd:
		return s.balance(ctx)
	case feesSubCmd:
		return s.fees(ctx, config.(*feesConfig))
	case utxosSubCmd:
		return s.utxos(ctx, config.(*utxosConfig))
	case freezeSubCmd:
		return s.freeze(ctx, config.(*freezeConfig))
	case subaccountsSubCmd:
		return s.subaccounts(ctx, config.(*subaccountsConfig))
	case addressSubCmd:
		return s.address(ctx, config.(*addressConfig))
	case transactionsSubCmd:
		return s.transactions(ctx, config.(*transactionsConfig))
	case sendSubCmd:
		return s.send(ctx, config.(*sendConfig))
	case summarySubCmd:
		return s.summary(ctx)
	default:
		return fmt.Errorf("unknown sub-command '%s'", subCmd)
	}
}

func main() {
	subCmd, cfg, config, err := parseCommandLine(os.Args[1:])
	if err != nil {
		exitParseError(err)
	}

	if err := setLogLevels(cfg.DebugLevel); err != nil {
		printErrorAndExit(err)
	}
	if cfg.LogDir != "" {
		logFile := filepath.Join(cfg.LogDir, defaultLogFilename)
		if err := initLogRotator(logFile); err != nil {
			printErrorAndExit(err)
		}
	}

	// The rotator must be closed after any deferred work above it has
	// logged.
	err = func() error {
		defer func() {
			if logRotator != nil {
				logRotator.Close()
			}
		}()

		ctx, stop := signal.NotifyContext(
			context.Background(), os.Interrupt,
		)
		defer stop()

		s := &session{
			client:      green.New(cfg.greenConfig()),
			cfg:         cfg,
			out:         os.Stdout,
			in:          bufio.NewReader(os.Stdin),
			interactive: prompt.Interactive(),
		}

		log.Debugf("Running %s against %s", subCmd,
			cfg.CLIPath.Value)

		return s.run(ctx, subCmd, config)
	}()
	if err != nil {
		printErrorAndExit(err)
	}
}
