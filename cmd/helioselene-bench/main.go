package main

import (
	"flag"
	"os"
	"strings"
	"time"

	"git.gammaspectra.live/P2Pool/helioselene-contest/bench"
	"git.gammaspectra.live/P2Pool/helioselene-contest/contest"
	"git.gammaspectra.live/P2Pool/helioselene-contest/entropy"
	"git.gammaspectra.live/P2Pool/helioselene-contest/utils"
)

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func main() {
	cfg := contest.DefaultBenchConfig()

	samples := flag.Int("samples", cfg.Samples, "Minimum number of timed batches per operation")
	minTime := flag.Duration("min-time", cfg.MinTime, "Minimum measuring time per operation")
	batchScale := flag.Float64("batch-scale", 1, "Scale factor applied to every operation batch size")
	seed := flag.String("seed", "", "Hex seed of the entropy stream. Random if empty, \"system\" samples from the operating system source without a seed")
	jsonPath := flag.String("json", "", "Write the report as JSON to this path")
	zmqEndpoint := flag.String("zmq", "", "Bind a ZeroMQ PUB socket on this endpoint and publish every series, for example tcp://127.0.0.1:5555")
	zmqSettle := flag.Duration("zmq-settle", time.Second, "Time given to ZeroMQ subscribers to connect before publishing")
	components := flag.String("components", "", "Comma separated components to measure. Any of "+strings.Join(contest.Components, ","))
	operations := flag.String("operations", "", "Comma separated operation names to measure, for example add,mul,inv")
	debug := flag.Bool("debug", false, "Log debug messages with their caller")
	flag.Parse()

	utils.SetDebug(*debug)
	// debug lines carry their caller
	utils.LogFile, utils.LogFunc = *debug, *debug

	cfg.Samples = *samples
	cfg.MinTime = *minTime
	cfg.BatchScale = *batchScale
	cfg.Components = splitList(*components)
	cfg.Operations = splitList(*operations)
	switch *seed {
	case "":
	case "system":
		cfg.SystemEntropy = true
	default:
		s, err := entropy.ParseSeed(*seed)
		if err != nil {
			utils.Fatalf("Bench", "invalid seed: %s", err)
		}
		cfg.Seed = &s
	}

	cfg.Sinks = append(cfg.Sinks, bench.TextSink{Writer: os.Stdout})
	if *jsonPath != "" {
		cfg.Sinks = append(cfg.Sinks, bench.JSONSink{Path: *jsonPath})
	}
	if *zmqEndpoint != "" {
		cfg.Sinks = append(cfg.Sinks, bench.ZMQSink{Endpoint: *zmqEndpoint, Settle: *zmqSettle})
	}

	if _, err := contest.Bench(cfg); err != nil {
		utils.Errorf("Bench", "%s", err)
		os.Exit(1)
	}
}
