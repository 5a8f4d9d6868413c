package main

import (
	"flag"
	"os"

	"git.gammaspectra.live/P2Pool/helioselene-contest/contest"
	"git.gammaspectra.live/P2Pool/helioselene-contest/entropy"
	"git.gammaspectra.live/P2Pool/helioselene-contest/utils"
)

func main() {
	cfg := contest.DefaultCheckConfig()

	iterations := flag.Int("iterations", cfg.Iterations, "Number of sampling rounds after the property suites")
	seed := flag.String("seed", "", "Hex seed of the entropy stream, to replay a previous run. Random if empty, \"system\" samples from the operating system source without a seed")
	skipAxioms := flag.Bool("skip-axioms", false, "Skip the structural property suites")
	debug := flag.Bool("debug", false, "Log debug messages with their caller")
	flag.Parse()

	utils.SetDebug(*debug)
	// debug lines carry their caller
	utils.LogFile, utils.LogFunc = *debug, *debug

	cfg.Iterations = *iterations
	cfg.SkipAxioms = *skipAxioms
	switch *seed {
	case "":
	case "system":
		cfg.SystemEntropy = true
	default:
		s, err := entropy.ParseSeed(*seed)
		if err != nil {
			utils.Fatalf("Check", "invalid seed: %s", err)
		}
		cfg.Seed = &s
	}

	if err := contest.Check(cfg); err != nil {
		utils.Errorf("Check", "%s", err)
		os.Exit(1)
	}
	utils.Noticef("Check", "candidate agrees with the reference")
}
