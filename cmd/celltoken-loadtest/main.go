package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	goCellAuth "github.com/MrEthical07/goCellAuth"
	"github.com/MrEthical07/goCellAuth/envconf"
	"github.com/MrEthical07/goCellAuth/token"
	"github.com/google/uuid"
)

type tokenState struct {
	raw string
	mu  sync.Mutex
}

func main() {
	var (
		tokens      = flag.Int("tokens", 100000, "number of refresh tokens to seed")
		concurrency = flag.Int("concurrency", 256, "number of concurrent workers")
		ops         = flag.Int("ops", 200000, "operations per phase (parse + exchange + crosscell)")
		cellURL     = flag.String("cell-url", "", "issuing cell URL; if empty, CELLAUTH_CELL_URL env or a default is used")
		schema      = flag.String("schema", "", "client schema attached to seeded tokens")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *tokens <= 0 || *concurrency <= 0 || *ops <= 0 {
		logger.Error("tokens, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	cell := *cellURL
	if cell == "" {
		var envCfg struct {
			Cell struct {
				URL string
			}
		}
		if err := envconf.Load("CELLAUTH_", &envCfg); err != nil {
			logger.Error("load environment config", "err", err)
			os.Exit(1)
		}
		cell = envCfg.Cell.URL
	}
	if cell == "" {
		cell = "https://loadtest.example/"
	}

	auth, err := goCellAuth.New().
		WithCellURL(cell).
		WithLogger(logger).
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		logger.Error("build authority", "err", err)
		os.Exit(1)
	}
	defer auth.Close()

	fmt.Printf("using cell %s\n", auth.CellURL())

	states := make([]tokenState, *tokens)
	fmt.Printf("seeding %d refresh tokens...\n", *tokens)
	startSeed := time.Now()
	for i := 0; i < *tokens; i++ {
		minted, err := auth.IssueRefreshToken(ctx, uuid.NewString(), *schema)
		if err != nil {
			logger.Error("issue failed", "err", err)
			os.Exit(1)
		}
		states[i] = tokenState{raw: minted.TokenString()}
	}
	fmt.Printf("seeded in %s\n", time.Since(startSeed).Round(time.Millisecond))

	parseStats := runParsePhase(ctx, auth, states, *ops, *concurrency)
	exchangeStats := runExchangePhase(ctx, auth, states, *ops, *concurrency)
	crossStats := runCrossCellPhase(ctx, auth, states, *ops, *concurrency)

	fmt.Println("---- results ----")
	printStats("parse", parseStats)
	printStats("exchange", exchangeStats)
	printStats("crosscell", crossStats)

	snapshot := auth.MetricsSnapshot()
	fmt.Println("---- counters ----")
	fmt.Printf("parse_success=%d parse_failure=%d access_issued=%d refresh_rotated=%d refresh_expired=%d\n",
		snapshot.Counters[goCellAuth.MetricParseSuccess],
		snapshot.Counters[goCellAuth.MetricParseFailure],
		snapshot.Counters[goCellAuth.MetricAccessIssued],
		snapshot.Counters[goCellAuth.MetricRefreshRotated],
		snapshot.Counters[goCellAuth.MetricRefreshExpired],
	)
}

func runParsePhase(ctx context.Context, auth *goCellAuth.Authority, states []tokenState, ops, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*7919))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				idx := r.Intn(len(states))
				t0 := time.Now()
				_, err := auth.ParseRefreshToken(ctx, states[idx].raw)
				d := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

func runExchangePhase(ctx context.Context, auth *goCellAuth.Authority, states []tokenState, ops, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*6151))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				idx := r.Intn(len(states))
				state := &states[idx]

				state.mu.Lock()
				t0 := time.Now()
				res, err := auth.Exchange(ctx, state.raw, "", nil, "")
				d := time.Since(t0)
				if err == nil {
					state.raw = res.RefreshTokenString
				} else {
					atomic.AddInt64(&failures, 1)
				}
				state.mu.Unlock()

				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

func runCrossCellPhase(ctx context.Context, auth *goCellAuth.Authority, states []tokenState, ops, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	target := "https://partner.example/"
	roles := []token.Role{{Box: "box1", Name: "member"}}

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*5407))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				idx := r.Intn(len(states))
				state := &states[idx]

				state.mu.Lock()
				raw := state.raw
				state.mu.Unlock()

				t0 := time.Now()
				refresh, err := auth.ParseRefreshToken(ctx, raw)
				if err == nil {
					_, err = auth.RefreshAccess(ctx, refresh, target, roles, "")
				}
				d := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}

				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}
