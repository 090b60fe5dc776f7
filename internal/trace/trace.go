// Package trace parses, generates and replays cache access workloads
package trace

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"

	"lrucache/internal/cache"
)

// A Kind is the type of a single operation
type Kind string

const (
	KindSet Kind = "set"
	KindGet Kind = "get"
	KindDel Kind = "del"
)

// An Op is one step of a workload
type Op struct {
	Kind  Kind
	Key   string
	Value string
}

func (o Op) String() string {
	if o.Kind == KindSet {
		return fmt.Sprintf("%s %s %s", o.Kind, o.Key, o.Value)
	}
	return fmt.Sprintf("%s %s", o.Kind, o.Key)
}

// A ParseError describes a malformed line of a trace
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("trace line %d %q: %s", e.Line, e.Text, e.Reason)
}

// Parse reads one operation per line: "set <key> <value>", "get <key>" or "del <key>".
// Empty lines and lines starting with # are skipped
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		kind := Kind(strings.ToLower(fields[0]))
		switch kind {
		case KindSet:
			if len(fields) != 3 {
				return nil, &ParseError{Line: line, Text: text, Reason: "set expects a key and a value"}
			}
			ops = append(ops, Op{Kind: kind, Key: fields[1], Value: fields[2]})
		case KindGet, KindDel:
			if len(fields) != 2 {
				return nil, &ParseError{Line: line, Text: text, Reason: fmt.Sprintf("%s expects a key", kind)}
			}
			ops = append(ops, Op{Kind: kind, Key: fields[1]})
		default:
			return nil, &ParseError{Line: line, Text: text, Reason: "unknown operation"}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}
	return ops, nil
}

// Generate returns n operations over keySpace keys, alternating set and get.
// The same seed always produces the same trace
func Generate(n, keySpace int, seed uint64) []Op {
	if keySpace < 1 {
		keySpace = 1
	}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	ops := make([]Op, n)
	for i := range ops {
		key := "k" + strconv.Itoa(r.IntN(keySpace))
		if i%2 == 0 {
			ops[i] = Op{Kind: KindSet, Key: key, Value: strconv.Itoa(i)}
		} else {
			ops[i] = Op{Kind: KindGet, Key: key}
		}
	}
	return ops
}

// A Result summarizes a replay. The counters are the difference of the
// manager's Stats before and after the replay
type Result struct {
	Ops   int
	Stats cache.Stats
}

// HitRatio returns hits divided by lookups
func (r Result) HitRatio() float64 {
	return r.Stats.HitRatio()
}

// A StepFunc observes every applied operation. For get, found reports a hit;
// for set, it reports an eviction; for del, whether the key was present
type StepFunc func(op Op, value string, found bool)

// Replay applies ops to m in order. It stops early when ctx is done
func Replay(ctx context.Context, m *cache.Manager[string, string], ops []Op, onStep StepFunc) (Result, error) {
	start := m.Stats()
	res := Result{}
	finish := func() Result {
		end := m.Stats()
		res.Stats = cache.Stats{
			Hits:      end.Hits - start.Hits,
			Misses:    end.Misses - start.Misses,
			Sets:      end.Sets - start.Sets,
			Evictions: end.Evictions - start.Evictions,
			Deletes:   end.Deletes - start.Deletes,
		}
		return res
	}

	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return finish(), fmt.Errorf("replay stopped after %d ops: %w", res.Ops, err)
		}
		var (
			value string
			found bool
		)
		switch op.Kind {
		case KindSet:
			found = m.Set(op.Key, op.Value)
		case KindGet:
			value, found = m.Get(op.Key)
		case KindDel:
			found = m.Delete(op.Key)
		default:
			return finish(), fmt.Errorf("unknown operation %q", op.Kind)
		}
		res.Ops++
		if onStep != nil {
			onStep(op, value, found)
		}
	}
	return finish(), nil
}
