// Package token implements ftaptctl's command surface over the managed
// asset: initialization, the privileged control operations and the
// read-only queries.
package token

import (
	"fmt"

	"github.com/fortuna-dev/ftapt/pkg/config"
	"github.com/fortuna-dev/ftapt/pkg/core/ledger"
	"github.com/fortuna-dev/ftapt/pkg/core/storage"
	tokensvc "github.com/fortuna-dev/ftapt/pkg/core/token"
	"github.com/fortuna-dev/ftapt/pkg/encoding/address"
	"github.com/fortuna-dev/ftapt/pkg/util"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var cfgFlags = []cli.Flag{
	cli.StringFlag{Name: "config, c", Usage: "path to the yaml config file"},
	cli.BoolFlag{Name: "debug, d", Usage: "enable debug logging"},
}

var adminFlag = cli.StringFlag{Name: "admin, a", Usage: "administrative identity asserting the operation", Required: true}

// NewCommands returns the token commands.
func NewCommands() []cli.Command {
	return []cli.Command{
		{
			Name:   "init",
			Usage:  "create the FTAPT asset and its control capabilities",
			Action: initToken,
			Flags: append([]cli.Flag{
				cli.StringFlag{Name: "deployer", Usage: "deployer identity (defaults to the fixed deployer address)"},
			}, cfgFlags...),
		},
		{
			Name:   "mint",
			Usage:  "mint new supply to a holder account",
			Action: mint,
			Flags: append([]cli.Flag{
				adminFlag,
				cli.StringFlag{Name: "to", Usage: "recipient address", Required: true},
				cli.StringFlag{Name: "amount", Usage: "amount to mint", Required: true},
			}, cfgFlags...),
		},
		{
			Name:   "transfer",
			Usage:  "move funds between holder accounts (admin override, ignores frozen flags)",
			Action: transfer,
			Flags: append([]cli.Flag{
				adminFlag,
				cli.StringFlag{Name: "from", Usage: "sender address", Required: true},
				cli.StringFlag{Name: "to", Usage: "recipient address", Required: true},
				cli.StringFlag{Name: "amount", Usage: "amount to transfer", Required: true},
			}, cfgFlags...),
		},
		{
			Name:   "burn",
			Usage:  "burn funds from a holder account",
			Action: burn,
			Flags: append([]cli.Flag{
				adminFlag,
				cli.StringFlag{Name: "from", Usage: "holder address", Required: true},
				cli.StringFlag{Name: "amount", Usage: "amount to burn", Required: true},
			}, cfgFlags...),
		},
		{
			Name:   "move",
			Usage:  "withdraw funds into a detached unit and deposit it to another account",
			Action: move,
			Flags: append([]cli.Flag{
				adminFlag,
				cli.StringFlag{Name: "from", Usage: "sender address", Required: true},
				cli.StringFlag{Name: "to", Usage: "recipient address", Required: true},
				cli.StringFlag{Name: "amount", Usage: "amount to move", Required: true},
			}, cfgFlags...),
		},
		{
			Name:   "freeze",
			Usage:  "set the frozen flag on a holder account",
			Action: freeze,
			Flags: append([]cli.Flag{
				adminFlag,
				cli.StringFlag{Name: "holder", Usage: "holder address", Required: true},
			}, cfgFlags...),
		},
		{
			Name:   "unfreeze",
			Usage:  "clear the frozen flag on a holder account",
			Action: unfreeze,
			Flags: append([]cli.Flag{
				adminFlag,
				cli.StringFlag{Name: "holder", Usage: "holder address", Required: true},
			}, cfgFlags...),
		},
		{
			Name:   "transfer-ownership",
			Usage:  "hand administrative control over to a new owner",
			Action: transferOwnership,
			Flags: append([]cli.Flag{
				adminFlag,
				cli.StringFlag{Name: "new-owner", Usage: "new owner address", Required: true},
			}, cfgFlags...),
		},
		{
			Name:   "balance",
			Usage:  "print the balance of a holder account",
			Action: balance,
			Flags: append([]cli.Flag{
				cli.StringFlag{Name: "holder", Usage: "holder address", Required: true},
			}, cfgFlags...),
		},
		{
			Name:   "supply",
			Usage:  "print the circulating supply",
			Action: supply,
			Flags:  cfgFlags,
		},
		{
			Name:   "metadata",
			Usage:  "print the asset handle and metadata",
			Action: metadata,
			Flags:  cfgFlags,
		},
		{
			Name:   "holders",
			Usage:  "list all holder accounts",
			Action: holders,
			Flags:  cfgFlags,
		},
	}
}

func newService(ctx *cli.Context) (*tokensvc.Service, *ledger.Ledger, error) {
	cfg := config.Default()
	if path := ctx.String("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, nil, err
		}
	}
	log, err := newLogger(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	store, err := storage.NewStore(cfg.ApplicationConfiguration.DBConfiguration)
	if err != nil {
		return nil, nil, fmt.Errorf("could not initialize storage: %w", err)
	}
	l := ledger.NewLedger(store, log)
	return tokensvc.NewService(l, log), l, nil
}

func newLogger(ctx *cli.Context, cfg config.Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.ApplicationConfiguration.LogLevel != "" {
		var err error
		level, err = zapcore.ParseLevel(cfg.ApplicationConfiguration.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("log setting: %w", err)
		}
	}
	if ctx.Bool("debug") {
		level = zapcore.DebugLevel
	}
	cc := zap.NewProductionConfig()
	cc.Level = zap.NewAtomicLevelAt(level)
	return cc.Build()
}

func parseAddress(s string) (util.Uint160, error) {
	u, err := address.StringToUint160(s)
	if err != nil {
		return u, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return u, nil
}

func initToken(ctx *cli.Context) error {
	svc, l, err := newService(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer l.Close()
	deployer := tokensvc.DeployerAddress
	if s := ctx.String("deployer"); s != "" {
		if deployer, err = parseAddress(s); err != nil {
			return cli.NewExitError(err, 1)
		}
	}
	if err := svc.Initialize(deployer); err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintf(ctx.App.Writer, "asset created: %s\n", tokensvc.AssetHandle().String())
	return nil
}

func mint(ctx *cli.Context) error {
	return runTransferLike(ctx, func(svc *tokensvc.Service, admin, _, to util.Uint160, amount util.Fixed8) error {
		return svc.Mint(admin, to, amount)
	}, false)
}

func transfer(ctx *cli.Context) error {
	return runTransferLike(ctx, func(svc *tokensvc.Service, admin, from, to util.Uint160, amount util.Fixed8) error {
		return svc.Transfer(admin, from, to, amount)
	}, true)
}

func burn(ctx *cli.Context) error {
	return runTransferLike(ctx, func(svc *tokensvc.Service, admin, from, _ util.Uint160, amount util.Fixed8) error {
		return svc.Burn(admin, from, amount)
	}, true)
}

func move(ctx *cli.Context) error {
	return runTransferLike(ctx, func(svc *tokensvc.Service, admin, from, to util.Uint160, amount util.Fixed8) error {
		unit, err := svc.Withdraw(admin, amount, from)
		if err != nil {
			return err
		}
		return svc.Deposit(admin, to, unit)
	}, true)
}

// runTransferLike factors the common admin/from/to/amount plumbing of the
// mutating commands. Commands without a sender (mint) or recipient (burn)
// simply don't declare the flag.
func runTransferLike(ctx *cli.Context, f func(svc *tokensvc.Service, admin, from, to util.Uint160, amount util.Fixed8) error, needFrom bool) error {
	svc, l, err := newService(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer l.Close()
	admin, err := parseAddress(ctx.String("admin"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	var from, to util.Uint160
	if needFrom {
		if from, err = parseAddress(ctx.String("from")); err != nil {
			return cli.NewExitError(err, 1)
		}
	}
	if s := ctx.String("to"); s != "" {
		if to, err = parseAddress(s); err != nil {
			return cli.NewExitError(err, 1)
		}
	}
	amount, err := util.Fixed8FromString(ctx.String("amount"))
	if err != nil {
		return cli.NewExitError(fmt.Errorf("invalid amount: %w", err), 1)
	}
	if err := f(svc, admin, from, to, amount); err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintln(ctx.App.Writer, "done")
	return nil
}

func freeze(ctx *cli.Context) error {
	return runFrozenFlag(ctx, true)
}

func unfreeze(ctx *cli.Context) error {
	return runFrozenFlag(ctx, false)
}

func runFrozenFlag(ctx *cli.Context, frozen bool) error {
	svc, l, err := newService(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer l.Close()
	admin, err := parseAddress(ctx.String("admin"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	holder, err := parseAddress(ctx.String("holder"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if frozen {
		err = svc.FreezeAccount(admin, holder)
	} else {
		err = svc.UnfreezeAccount(admin, holder)
	}
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintln(ctx.App.Writer, "done")
	return nil
}

func transferOwnership(ctx *cli.Context) error {
	svc, l, err := newService(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer l.Close()
	admin, err := parseAddress(ctx.String("admin"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	newOwner, err := parseAddress(ctx.String("new-owner"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if err := svc.TransferOwnership(admin, newOwner); err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintln(ctx.App.Writer, "done")
	return nil
}

func balance(ctx *cli.Context) error {
	svc, l, err := newService(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer l.Close()
	holder, err := parseAddress(ctx.String("holder"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	b, err := svc.BalanceOf(holder)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintf(ctx.App.Writer, "%s %s\n", b, tokensvc.Symbol)
	return nil
}

func supply(ctx *cli.Context) error {
	svc, l, err := newService(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer l.Close()
	s, err := svc.TotalSupply()
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintf(ctx.App.Writer, "%s %s\n", s, tokensvc.Symbol)
	return nil
}

func metadata(ctx *cli.Context) error {
	svc, l, err := newService(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer l.Close()
	a, err := svc.Metadata()
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	w := ctx.App.Writer
	fmt.Fprintf(w, "Handle:     %s\n", a.Hash)
	fmt.Fprintf(w, "Name:       %s\n", a.Name)
	fmt.Fprintf(w, "Symbol:     %s\n", a.Symbol)
	fmt.Fprintf(w, "Decimals:   %d\n", a.Decimals)
	fmt.Fprintf(w, "Icon:       %s\n", a.IconURL)
	fmt.Fprintf(w, "Project:    %s\n", a.ProjectURL)
	fmt.Fprintf(w, "Owner:      %s\n", address.Uint160ToString(a.Owner))
	fmt.Fprintf(w, "Supply:     %s\n", a.Supply)
	return nil
}

func holders(ctx *cli.Context) error {
	svc, l, err := newService(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer l.Close()
	if _, err := svc.Metadata(); err != nil {
		return cli.NewExitError(err, 1)
	}
	accs, err := l.Holders(tokensvc.AssetHandle())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	for _, acc := range accs {
		frozen := ""
		if acc.Frozen {
			frozen = " (frozen)"
		}
		fmt.Fprintf(ctx.App.Writer, "%s: %s%s\n", address.Uint160ToString(acc.Address), acc.Balance, frozen)
	}
	return nil
}
