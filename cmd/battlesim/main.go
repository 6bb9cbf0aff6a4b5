package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"fieldbattle/internal/battle"
	"fieldbattle/internal/config"
	"fieldbattle/internal/service"
	"fieldbattle/internal/storage/sqlite"
	"fieldbattle/internal/util"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "battlesim:", err)
		os.Exit(1)
	}
}

type options struct {
	env    config.Env
	out    string
	name   string
	n      int
	events bool
}

func parseFlags(args []string) (options, error) {
	var o options
	if err := config.ParseEnv(&o.env); err != nil {
		return o, err
	}
	fs := flag.NewFlagSet("battlesim", flag.ContinueOnError)
	fs.StringVar(&o.env.Data, "data", o.env.Data, "reference data and battles dir")
	fs.StringVar(&o.env.DB, "db", o.env.DB, "sqlite file for bookkeeping and reports (empty: none)")
	fs.IntVar(&o.env.Workers, "workers", o.env.Workers, "battles resolved in parallel")
	fs.Int64Var(&o.env.Seed, "seed", o.env.Seed, "base seed for battles without their own (0: random)")
	fs.StringVar(&o.env.LogLevel, "log-level", o.env.LogLevel, "debug, info, warn or error")
	fs.StringVar(&o.env.LogFormat, "log-format", o.env.LogFormat, "text or json")
	fs.StringVar(&o.out, "out", "out.json", "output file")
	fs.StringVar(&o.name, "battle", "", "resolve only the named battle")
	fs.IntVar(&o.n, "n", 1, "repeat the battle n times and write a summary")
	fs.BoolVar(&o.events, "events", false, "keep the event log of each battle")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	return o, nil
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	hopts := &slog.HandlerOptions{Level: lv}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, hopts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, hopts)), nil
	}
	return nil, fmt.Errorf("unknown log format %q", format)
}

func pick(defs []config.BattleDef, name string) ([]config.BattleDef, error) {
	if name == "" {
		return defs, nil
	}
	for _, d := range defs {
		if d.Name == name {
			return []config.BattleDef{d}, nil
		}
	}
	return nil, fmt.Errorf("no battle named %q", name)
}

func run(args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}
	log, err := newLogger(stderr, o.env.LogLevel, o.env.LogFormat)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	data, err := config.LoadAll(o.env.Data)
	if err != nil {
		return err
	}
	defs, err := pick(data.Battles, o.name)
	if err != nil {
		return err
	}
	if len(defs) == 0 {
		return errors.New("no battles to resolve")
	}

	if o.env.Seed == 0 {
		o.env.Seed = util.NewSeed()
	}
	log.Info("resolving battles", "count", len(defs), "seed", o.env.Seed, "workers", o.env.Workers)

	opts := []service.Option{
		service.WithWorkers(o.env.Workers),
		service.WithSeed(o.env.Seed),
		service.WithEvents(o.events),
		service.WithLogger(log),
	}
	if o.env.DB != "" {
		store, err := sqlite.Open(ctx, o.env.DB)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, service.WithStore(store))
	}
	runner, err := service.New(data, opts...)
	if err != nil {
		return err
	}

	if o.n > 1 {
		sum, err := runner.Repeat(ctx, defs[0], o.n)
		if err != nil {
			return err
		}
		if err := os.WriteFile(o.out, battle.MarshalPretty(sum), 0644); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Batch %d of %q done. A=%.2f B=%.2f draw=%d -> %s\n",
			sum.Runs, sum.Name, sum.WinRateA, sum.WinRateB, sum.Draws, o.out)
		return nil
	}

	outcomes, err := runner.Run(ctx, defs)
	if err != nil {
		return err
	}
	var payload any = outcomes
	if len(outcomes) == 1 {
		payload = outcomes[0]
	}
	if err := os.WriteFile(o.out, battle.MarshalPretty(payload), 0644); err != nil {
		return err
	}
	for _, oc := range outcomes {
		fmt.Fprintf(stdout, "%s: winner=%s phases=%d stored=%v\n",
			oc.Name, oc.Result.Winner, len(oc.Result.Records), oc.Stored)
	}
	fmt.Fprintf(stdout, "%d battle(s) resolved -> %s\n", len(outcomes), o.out)
	return nil
}
