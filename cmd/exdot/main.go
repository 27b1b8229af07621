// Copyright 2025 The go-exblas Authors. SPDX-License-Identifier: Apache-2.0

// Command exdot is a diagnostic tool for the go-exblas library: it reports
// the selected accumulation strategy and CPU features, and computes
// reproducible dot products next to their non-reproducible counterparts.
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/viterin/vek"
	"golang.org/x/sys/cpu"

	"github.com/ajroetker/go-exblas/exblas"
)

var (
	flagSize   int
	flagSeed   int64
	flagFPE    int
	flagTriple bool
	flagFiles  []string
)

func main() {
	root := &cobra.Command{
		Use:          "exdot",
		Short:        "Reproducible (exactly-rounded) dot products",
		SilenceUsage: true,
	}

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Print dispatch strategy, CPU features, and bin layout",
		Run: func(cmd *cobra.Command, args []string) {
			printInfo()
		},
	}

	dotCmd := &cobra.Command{
		Use:   "dot",
		Short: "Compute an exact dot product and compare against naive sums",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDot()
		},
	}
	dotCmd.Flags().IntVarP(&flagSize, "size", "n", 1<<20, "vector length for generated input")
	dotCmd.Flags().Int64Var(&flagSeed, "seed", 42, "seed for generated input")
	dotCmd.Flags().IntVar(&flagFPE, "fpe", exblas.DefaultExpansionSize,
		"expansion cache size (3-8)")
	dotCmd.Flags().BoolVar(&flagTriple, "triple", false, "compute a triple product a·b·c")
	dotCmd.Flags().StringSliceVar(&flagFiles, "file", nil,
		"read operands from whitespace-separated float files instead of generating them")

	root.AddCommand(infoCmd, dotCmd)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func printInfo() {
	fmt.Printf("GOOS: %s\n", runtime.GOOS)
	fmt.Printf("GOARCH: %s\n", runtime.GOARCH)
	fmt.Printf("GOMAXPROCS: %d\n", runtime.GOMAXPROCS(0))
	fmt.Println()

	fmt.Printf("exblas strategy: %s\n", exblas.CurrentStrategy())
	fmt.Printf("exblas lane width: %d x float64\n", exblas.VecLanes)
	fmt.Printf("exblas superaccumulator: %d x int64 words\n", exblas.BinCount)
	fmt.Printf("EXBLAS_NO_VECTOR set: %v\n", exblas.NoVectorEnv())
	fmt.Println()

	if runtime.GOARCH == "amd64" {
		fmt.Printf("FMA: %v\n", cpu.X86.HasFMA)
		fmt.Printf("AVX: %v\n", cpu.X86.HasAVX)
		fmt.Printf("AVX2: %v\n", cpu.X86.HasAVX2)
		fmt.Printf("AVX512F: %v\n", cpu.X86.HasAVX512F)
	}
	if runtime.GOARCH == "arm64" {
		fmt.Printf("ASIMD: %v\n", cpu.ARM64.HasASIMD)
		fmt.Printf("FP: %v\n", cpu.ARM64.HasFP)
	}
}

func runDot() error {
	var a, b, c []float64
	switch {
	case len(flagFiles) == 0:
		a, b, c = generate(flagSize, flagSeed)
	case len(flagFiles) == 2 && !flagTriple, len(flagFiles) == 3 && flagTriple:
		var err error
		if a, err = readFloats(flagFiles[0]); err != nil {
			return err
		}
		if b, err = readFloats(flagFiles[1]); err != nil {
			return err
		}
		if flagTriple {
			if c, err = readFloats(flagFiles[2]); err != nil {
				return err
			}
		}
	default:
		return errors.Errorf("need %d --file operands, got %d",
			map[bool]int{false: 2, true: 3}[flagTriple], len(flagFiles))
	}

	n := min(len(a), len(b))
	if flagTriple {
		n = min(n, len(c))
	}

	superacc := make([]int64, exblas.BinCount)
	if flagTriple {
		exblas.ExDot3FPE(flagFPE, n, a, b, c, superacc)
	} else {
		exblas.ExDotFPE(flagFPE, n, a, b, superacc)
	}
	exact := exblas.Round(superacc)

	fmt.Printf("n: %d\n", n)
	fmt.Printf("exact (reproducible): %.17g\n", exact)
	if !flagTriple {
		fmt.Printf("vek.Dot:              %.17g\n", vek.Dot(a[:n], b[:n]))
	}
	fmt.Printf("naive float64 sum:    %.17g\n", naive(a, b, c, n, flagTriple))
	return nil
}

func generate(n int, seed int64) (a, b, c []float64) {
	rng := rand.New(rand.NewSource(seed))
	a = make([]float64, n)
	b = make([]float64, n)
	c = make([]float64, n)
	for i := range a {
		// Wide dynamic range so naive summation visibly drifts.
		a[i] = (rng.Float64() - 0.5) * float64(int64(1)<<(rng.Intn(40)))
		b[i] = (rng.Float64() - 0.5) * float64(int64(1)<<(rng.Intn(40)))
		c[i] = rng.Float64() - 0.5
	}
	return a, b, c
}

func naive(a, b, c []float64, n int, triple bool) float64 {
	var sum float64
	for i := 0; i < n; i++ {
		if triple {
			sum += a[i] * b[i] * c[i]
		} else {
			sum += a[i] * b[i]
		}
	}
	return sum
}

func readFloats(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening operand file %s", path)
	}
	defer f.Close()

	var vals []float64
	sc := bufio.NewScanner(f)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %q in %s", sc.Text(), path)
		}
		vals = append(vals, v)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return vals, nil
}
