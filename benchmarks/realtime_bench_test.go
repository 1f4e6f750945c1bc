package benchmarks

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"statechartx"
	"statechartx/realtime"
)

// These benchmarks measure the tick-batched Runtime's own behavior —
// throughput, latency from SendEvent to an observable transition, its
// bounded per-tick queue capacity, and time to drain one tick's batch —
// as distinct from the underlying interpreter's own Send cost, which
// transition_bench_test.go and throughput_bench_test.go cover directly.

func createBenchmarkMachine() *statechartx.Machine {
	stateA := &statechartx.State{
		ID:      "a",
		Initial: true,
		On:      []statechartx.Transition{{Event: "tick", Target: "b"}},
	}
	stateB := &statechartx.State{
		ID: "b",
		On: []statechartx.Transition{{Event: "tick", Target: "a"}},
	}
	machine, err := statechartx.NewMachine(stateA, stateB)
	if err != nil {
		panic(err)
	}
	return machine
}

// BenchmarkRealtimeThroughput measures actual events processed per second
// with verification that events were actually executed by the state machine.
func BenchmarkRealtimeThroughput(b *testing.B) {
	var processed int64

	stateA := &statechartx.State{
		ID:      "a",
		Initial: true,
		OnEntry: func() { atomic.AddInt64(&processed, 1) },
		On:      []statechartx.Transition{{Event: "tick", Target: "b"}},
	}
	stateB := &statechartx.State{
		ID:      "b",
		OnEntry: func() { atomic.AddInt64(&processed, 1) },
		On:      []statechartx.Transition{{Event: "tick", Target: "a"}},
	}

	machine, err := statechartx.NewMachine(stateA, stateB)
	if err != nil {
		b.Fatal(err)
	}

	rt := realtime.NewRuntime(machine, realtime.Config{
		TickRate:         1 * time.Millisecond, // 1000 Hz
		MaxEventsPerTick: 10000,
	})

	ctx := context.Background()
	if err := rt.Start(ctx); err != nil {
		b.Fatal(err)
	}
	defer rt.Stop()

	b.ResetTimer()
	b.ReportAllocs()

	successfulSends := 0
	for i := 0; i < b.N; i++ {
		if err := rt.SendEvent("tick", nil); err != nil {
			b.StopTimer()
			b.Logf("Stopped at backpressure after %d events (%.1f%% of b.N)",
				successfulSends, float64(successfulSends)/float64(b.N)*100)
			break
		}
		successfulSends++
	}

	if successfulSends > 0 {
		timeout := time.After(30 * time.Second)
		for {
			if atomic.LoadInt64(&processed) >= int64(successfulSends) {
				break
			}
			select {
			case <-timeout:
				b.Fatalf("timeout waiting for processing, processed: %d / %d successful sends",
					atomic.LoadInt64(&processed), successfulSends)
			default:
				time.Sleep(1 * time.Millisecond)
			}
		}
		b.ReportMetric(float64(successfulSends)/b.Elapsed().Seconds(), "events/sec")
	}
}

// BenchmarkRealtimeLatency measures time from SendEvent to actual state
// transition, including tick scheduling overhead.
func BenchmarkRealtimeLatency(b *testing.B) {
	transitioned := make(chan time.Time, 100)
	var sendTimes []time.Time
	var sendMu sync.Mutex

	stateA := &statechartx.State{
		ID:      "a",
		Initial: true,
		On:      []statechartx.Transition{{Event: "tick", Target: "b"}},
	}
	stateB := &statechartx.State{
		ID:      "b",
		OnEntry: func() { transitioned <- time.Now() },
		On:      []statechartx.Transition{{Event: "tick", Target: "a"}},
	}

	machine, err := statechartx.NewMachine(stateA, stateB)
	if err != nil {
		b.Fatal(err)
	}

	rt := realtime.NewRuntime(machine, realtime.Config{
		TickRate:         1 * time.Millisecond,
		MaxEventsPerTick: 1000,
	})

	ctx := context.Background()
	if err := rt.Start(ctx); err != nil {
		b.Fatal(err)
	}
	defer rt.Stop()

	b.ResetTimer()

	for i := 0; i < b.N && i < 50; i++ {
		sendMu.Lock()
		sendTimes = append(sendTimes, time.Now())
		sendMu.Unlock()

		if err := rt.SendEvent("tick", nil); err != nil {
			b.Logf("Stopped at backpressure after %d sends", len(sendTimes))
			break
		}
	}

	var totalLatency time.Duration
	successfulMeasurements := 0
	timeout := time.After(5 * time.Second)

	for i := 0; i < len(sendTimes); i++ {
		select {
		case completeTime := <-transitioned:
			latency := completeTime.Sub(sendTimes[i])
			totalLatency += latency
			successfulMeasurements++
		case <-timeout:
			b.Logf("timeout after %d/%d measurements", successfulMeasurements, len(sendTimes))
			goto done
		}
	}

done:
	if successfulMeasurements > 0 {
		avgLatency := totalLatency / time.Duration(successfulMeasurements)
		b.ReportMetric(float64(avgLatency.Nanoseconds()), "ns/latency")
		b.ReportMetric(float64(avgLatency.Microseconds()), "µs/latency")
		b.ReportMetric(float64(avgLatency.Milliseconds()), "ms/latency")
	}
}

// BenchmarkRealtimeQueueCapacity measures how many events can be queued
// before hitting the per-tick batch cap, showing the practical queue limit.
func BenchmarkRealtimeQueueCapacity(b *testing.B) {
	configs := []struct {
		name       string
		tickRate   time.Duration
		maxPerTick int
	}{
		{"60FPS", 16667 * time.Microsecond, 10000},
		{"1000Hz", 1 * time.Millisecond, 10000},
	}

	for _, cfg := range configs {
		b.Run(cfg.name, func(b *testing.B) {
			machine := createBenchmarkMachine()
			rt := realtime.NewRuntime(machine, realtime.Config{
				TickRate:         cfg.tickRate,
				MaxEventsPerTick: cfg.maxPerTick,
			})

			ctx := context.Background()
			if err := rt.Start(ctx); err != nil {
				b.Fatal(err)
			}
			defer rt.Stop()

			b.ResetTimer()

			successfulSends := 0
			for i := 0; i < b.N; i++ {
				if err := rt.SendEvent("tick", nil); err != nil {
					b.StopTimer()
					b.Logf("Queue capacity reached: %d events before backpressure", successfulSends)
					b.ReportMetric(float64(successfulSends), "events")
					return
				}
				successfulSends++
			}

			b.ReportMetric(float64(successfulSends), "events")
			b.Logf("Sent all %d events without backpressure", successfulSends)
		})
	}
}

// BenchmarkRealtimeTickProcessing measures how long it takes to process a
// batch of events accumulated within a single tick.
func BenchmarkRealtimeTickProcessing(b *testing.B) {
	var tickStartTime int64
	var tickEndTime int64
	var tickDurations []time.Duration
	var tickMu sync.Mutex

	stateA := &statechartx.State{
		ID:      "a",
		Initial: true,
		OnEntry: func() {
			if atomic.LoadInt64(&tickStartTime) == 0 {
				atomic.StoreInt64(&tickStartTime, time.Now().UnixNano())
			}
		},
		OnExit: func() { atomic.StoreInt64(&tickEndTime, time.Now().UnixNano()) },
		On:     []statechartx.Transition{{Event: "tick", Target: "b"}},
	}
	stateB := &statechartx.State{
		ID:     "b",
		OnExit: func() { atomic.StoreInt64(&tickEndTime, time.Now().UnixNano()) },
		On:     []statechartx.Transition{{Event: "tick", Target: "a"}},
	}

	machine, err := statechartx.NewMachine(stateA, stateB)
	if err != nil {
		b.Fatal(err)
	}

	rt := realtime.NewRuntime(machine, realtime.Config{
		TickRate:         10 * time.Millisecond,
		MaxEventsPerTick: 1000,
	})

	ctx := context.Background()
	if err := rt.Start(ctx); err != nil {
		b.Fatal(err)
	}
	defer rt.Stop()

	b.ResetTimer()

	batchSize := 100
	for i := 0; i < b.N; i++ {
		atomic.StoreInt64(&tickStartTime, 0)
		atomic.StoreInt64(&tickEndTime, 0)

		for j := 0; j < batchSize; j++ {
			if err := rt.SendEvent("tick", nil); err != nil {
				b.Logf("Backpressure at iteration %d, event %d", i, j)
				goto done
			}
		}

		time.Sleep(15 * time.Millisecond)

		startNano := atomic.LoadInt64(&tickStartTime)
		endNano := atomic.LoadInt64(&tickEndTime)
		if startNano > 0 && endNano > 0 {
			tickMu.Lock()
			tickDurations = append(tickDurations, time.Duration(endNano-startNano))
			tickMu.Unlock()
		}
	}

done:
	if len(tickDurations) > 0 {
		var total time.Duration
		for _, d := range tickDurations {
			total += d
		}
		avgDuration := total / time.Duration(len(tickDurations))
		b.ReportMetric(float64(avgDuration.Nanoseconds()), "ns/tick")
		b.ReportMetric(float64(avgDuration.Microseconds()), "µs/tick")
		b.ReportMetric(float64(batchSize), "events/tick")
	}
}
