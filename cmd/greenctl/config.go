// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/greenwallet/green"
	"github.com/btcsuite/greenwallet/internal/cfgutil"
	"github.com/jessevdk/go-flags"
)

const (
	balanceSubCmd      = "balance"
	feesSubCmd         = "fees"
	utxosSubCmd        = "utxos"
	freezeSubCmd       = "freeze"
	subaccountsSubCmd  = "subaccounts"
	addressSubCmd      = "address"
	transactionsSubCmd = "transactions"
	sendSubCmd         = "send"
	summarySubCmd      = "summary"

	defaultLogLevel    = "info"
	defaultLogDirname  = "logs"
	defaultLogFilename = "greenctl.log"
)

var (
	greenctlHomeDir = btcutil.AppDataDir("greenctl", false)
	defaultLogDir   = filepath.Join(greenctlHomeDir, defaultLogDirname)
)

// configFlags holds the options shared by every subcommand.
type configFlags struct {
	CLIPath    *cfgutil.ExplicitString `long:"clipath" description:"Path to the green-cli executable (default: green-cli from PATH)"`
	Env        []string                `long:"env" description:"Extra KEY=VALUE environment entry for green-cli; may be repeated"`
	LogDir     string                  `long:"logdir" description:"Directory to log output"`
	DebugLevel string                  `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical}"`
	Timeout    time.Duration           `long:"timeout" description:"Abort each green-cli invocation after this long; 0 waits forever"`
	JSON       bool                    `long:"json" description:"Print results as JSON"`
}

type balanceConfig struct{}

type feesConfig struct {
	Blocks uint32 `long:"blocks" short:"b" description:"Only show the fee rate for confirmation within this many blocks"`
}

type utxosConfig struct {
	Subaccount       *uint32            `long:"subaccount" description:"Only outputs of this subaccount"`
	MinConfs         *uint32            `long:"minconf" description:"Minimum number of confirmations"`
	MaxConfs         *uint32            `long:"maxconf" description:"Maximum number of confirmations"`
	IncludeFrozen    bool               `long:"frozen" description:"Include frozen outputs"`
	ConfidentialOnly bool               `long:"confidential" description:"Only confidential outputs"`
	SortBy           cfgutil.SortByFlag `long:"sortby" description:"Sort order {value, value_desc, age, age_desc, confirmations, confirmations_desc}"`
	AssetID          string             `long:"asset" description:"Only outputs of this asset"`
	MinValue         *uint64            `long:"minvalue" description:"Minimum value in satoshi"`
	MaxValue         *uint64            `long:"maxvalue" description:"Maximum value in satoshi"`
	Summary          bool               `long:"summary" description:"Print per-asset totals instead of every output"`
}

type freezeConfig struct {
	Outpoint string `long:"utxo" short:"u" description:"Output to update as txid:vout" required:"true"`
	Unfreeze bool   `long:"unfreeze" description:"Unfreeze the output instead"`
	Memo     string `long:"memo" description:"Memo to attach to the output"`
}

type subaccountsConfig struct {
	Show   *uint32 `long:"show" description:"Show the subaccount with this pointer"`
	Create string  `long:"create" description:"Create a subaccount with this name"`
	Type   string  `long:"type" description:"Type of a created subaccount" default:"2of2"`
	Update *uint32 `long:"update" description:"Update the subaccount with this pointer"`
	Name   string  `long:"name" description:"New name of an updated subaccount"`
	Hide   bool    `long:"hide" description:"Hide an updated subaccount"`
	Unhide bool    `long:"unhide" description:"Unhide an updated subaccount"`
}

type addressConfig struct {
	New         bool    `long:"new" description:"Derive a fresh address instead of the current unused one"`
	Subaccount  *uint32 `long:"subaccount" description:"Subaccount to derive the address from"`
	Type        string  `long:"type" description:"Address type, such as p2wpkh"`
	Previous    bool    `long:"previous" description:"List previously generated addresses"`
	LastPointer *uint32 `long:"lastpointer" description:"Continue a previous address listing after this pointer"`
	Unused      bool    `long:"unused" description:"Only list unused previous addresses"`
}

type transactionsConfig struct {
	TxID       string  `long:"txid" description:"Show the details of this transaction"`
	Subaccount *uint32 `long:"subaccount" description:"Only transactions of this subaccount"`
	First      *uint32 `long:"first" description:"Index of the first transaction to list"`
	Count      *uint32 `long:"count" description:"Number of transactions to list"`
	AssetID    string  `long:"asset" description:"Only transactions of this asset"`
	NextPage   string  `long:"nextpage" description:"Continue a previous listing"`
}

type sendConfig struct {
	Address    string             `long:"address" short:"a" description:"Address to pay" required:"true"`
	Amount     cfgutil.AmountFlag `long:"amount" short:"v" description:"Amount to pay in BTC, or in satoshi with a sat suffix" required:"true"`
	AssetID    string             `long:"asset" description:"Asset to pay in"`
	FeeRate    uint64             `long:"feerate" description:"Fee rate in satoshi per vbyte"`
	Blocks     uint32             `long:"blocks" short:"b" description:"Use the estimated fee rate for confirmation within this many blocks"`
	Subaccount *uint32            `long:"subaccount" description:"Subaccount to pay from"`
	Memo       string             `long:"memo" description:"Transaction memo"`
	Inputs     []string           `long:"input" description:"Output to spend as txid:vout; may be repeated"`
	SendAll    bool               `long:"sendall" description:"Sweep the subaccount to the address"`
	Direct     bool               `long:"direct" description:"Let green-cli build, sign and broadcast in one step"`
	TxDir      string             `long:"txdir" description:"Directory for the pending transaction file"`
	Keep       bool               `long:"keep" description:"Keep the transaction file after broadcasting"`
	Yes        bool               `long:"yes" short:"y" description:"Broadcast without asking for confirmation"`
}

type summaryConfig struct{}

// parseCommandLine parses the command line and returns the active subcommand
// name together with the shared flags and that subcommand's config.
func parseCommandLine(args []string) (string, *configFlags, interface{},
	error) {

	cfg := &configFlags{
		CLIPath:    cfgutil.NewExplicitString(green.DefaultCLIPath),
		LogDir:     defaultLogDir,
		DebugLevel: defaultLogLevel,
	}
	parser := flags.NewParser(cfg, flags.Default)

	subCmds := []struct {
		name, short, long string
		config            interface{}
	}{
		{balanceSubCmd, "Show the wallet balance",
			"Show the balance of every asset held by the wallet",
			&balanceConfig{}},
		{feesSubCmd, "Show fee estimates",
			"Show the fee rate per confirmation target",
			&feesConfig{}},
		{utxosSubCmd, "List unspent outputs",
			"List unspent outputs grouped by asset",
			&utxosConfig{}},
		{freezeSubCmd, "Freeze or unfreeze an output",
			"Change the frozen status and memo of an unspent output",
			&freezeConfig{}},
		{subaccountsSubCmd, "Manage subaccounts",
			"List, show, create or update subaccounts",
			&subaccountsConfig{}},
		{addressSubCmd, "Show receive addresses",
			"Show the current or a new receive address, or list "+
				"previous addresses",
			&addressConfig{}},
		{transactionsSubCmd, "List transactions",
			"List wallet transactions or show one transaction",
			&transactionsConfig{}},
		{sendSubCmd, "Send a payment",
			"Build, sign and broadcast a payment to one address",
			&sendConfig{}},
		{summarySubCmd, "Summarize the wallet",
			"Show balance, fee estimates and outputs in one report",
			&summaryConfig{}},
	}

	configs := make(map[string]interface{}, len(subCmds))
	for _, subCmd := range subCmds {
		_, err := parser.AddCommand(
			subCmd.name, subCmd.short, subCmd.long, subCmd.config,
		)
		if err != nil {
			return "", nil, nil, err
		}
		configs[subCmd.name] = subCmd.config
	}

	if _, err := parser.ParseArgs(args); err != nil {
		return "", nil, nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return "", nil, nil, err
	}

	name := parser.Command.Active.Name
	return name, cfg, configs[name], nil
}

// validateConfig checks the shared flags and resolves paths in place.
func validateConfig(cfg *configFlags) error {
	if cfg.CLIPath.ExplicitlySet() {
		path := cfgutil.CleanAndExpandPath(cfg.CLIPath.Value)
		if err := cfgutil.CheckExecutable(path); err != nil {
			return fmt.Errorf("invalid --clipath: %v", err)
		}
		cfg.CLIPath.Value = path
	}

	for _, entry := range cfg.Env {
		key, _, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			return fmt.Errorf("invalid --env entry %q: want KEY=VALUE",
				entry)
		}
	}

	if cfg.Timeout < 0 {
		return errors.New("--timeout may not be negative")
	}

	if cfg.LogDir != "" {
		cfg.LogDir = cfgutil.CleanAndExpandPath(cfg.LogDir)
	}

	return nil
}

// greenConfig returns the library config described by the shared flags.
func (cfg *configFlags) greenConfig() *green.Config {
	var path string
	if cfg.CLIPath.ExplicitlySet() {
		path = cfg.CLIPath.Value
	}
	return &green.Config{Path: path, Env: cfg.Env}
}

// exitParseError exits after a failed parseCommandLine.  go-flags already
// printed its own errors, and asking for help is not a failure.
func exitParseError(err error) {
	var flagsErr *flags.Error
	if errors.As(err, &flagsErr) {
		if flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	printErrorAndExit(err)
}

func printErrorAndExit(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}
