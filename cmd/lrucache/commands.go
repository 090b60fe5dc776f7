package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lrucache/internal/trace"
)

func newReplayCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "replay <trace-file>",
		Short: "Replay a trace file of set/get/del operations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			ops, err := trace.Parse(f)
			if err != nil {
				return err
			}

			m, err := newManager()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			var onStep trace.StepFunc
			if verbose {
				onStep = func(op trace.Op, value string, found bool) {
					switch {
					case op.Kind == trace.KindGet && found:
						fmt.Fprintf(out, "%-20s -> %s\n", op, value)
					case op.Kind == trace.KindGet:
						fmt.Fprintf(out, "%-20s -> (miss)\n", op)
					case op.Kind == trace.KindSet && found:
						fmt.Fprintf(out, "%-20s (evicted)\n", op)
					default:
						fmt.Fprintf(out, "%s\n", op)
					}
				}
			}

			res, err := trace.Replay(cmd.Context(), m, ops, onStep)
			if err != nil {
				return err
			}
			printResult(cmd, res, m.Capacity())
			fmt.Fprintf(out, "order (last evicted first): [%s]\n", strings.Join(m.Keys(), " "))
			if next, ok := m.Oldest(); ok {
				fmt.Fprintf(out, "next eviction: %s\n", next.Key)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print every operation")
	return cmd
}

func newBenchCmd() *cobra.Command {
	var ops, keys int
	var seed uint64

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Replay a generated random workload and report the hit ratio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("ops") {
				cfg.Bench.Ops = ops
			}
			if cmd.Flags().Changed("keys") {
				cfg.Bench.Keys = keys
			}
			if cmd.Flags().Changed("seed") {
				cfg.Bench.Seed = seed
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			workload := trace.Generate(cfg.Bench.Ops, cfg.Bench.Keys, cfg.Bench.Seed)
			m, err := newManager()
			if err != nil {
				return err
			}

			start := time.Now()
			res, err := trace.Replay(cmd.Context(), m, workload, nil)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			logger.Info().
				Int("ops", res.Ops).
				Dur("duration", elapsed).
				Msg("bench finished")
			printResult(cmd, res, m.Capacity())
			return nil
		},
	}
	cmd.Flags().IntVar(&ops, "ops", 0, "number of operations")
	cmd.Flags().IntVar(&keys, "keys", 0, "size of the key space")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed")
	return cmd
}

func printResult(cmd *cobra.Command, res trace.Result, capacity int) {
	out := cmd.OutOrStdout()
	p, _ := cfg.EvictionPolicy()
	fmt.Fprintf(out, "policy:    %s\n", p)
	fmt.Fprintf(out, "capacity:  %d\n", capacity)
	fmt.Fprintf(out, "ops:       %d\n", res.Ops)
	fmt.Fprintf(out, "hits:      %d\n", res.Stats.Hits)
	fmt.Fprintf(out, "misses:    %d\n", res.Stats.Misses)
	fmt.Fprintf(out, "evictions: %d\n", res.Stats.Evictions)
	fmt.Fprintf(out, "deletes:   %d\n", res.Stats.Deletes)
	fmt.Fprintf(out, "hit ratio: %.4f\n", res.HitRatio())
}
