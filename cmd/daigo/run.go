// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/akualab/daigo"
	"github.com/akualab/daigo/bp"
	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

var (
	flagUpdates   string
	flagMaxIter   int
	flagTol       float64
	flagLogDomain bool
	flagDamping   float64
	flagSeed      int64
)

var runCmd = &cobra.Command{
	Use:   "run [graph.yaml]",
	Short: "Run loopy belief propagation on a factor graph file and print beliefs",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagUpdates, "updates", "SEQFIX", "update schedule: SEQFIX, SEQRND, SEQMAX, PARALL")
	runCmd.Flags().IntVar(&flagMaxIter, "maxiter", 100, "maximum number of full iterations")
	runCmd.Flags().Float64Var(&flagTol, "tol", 1e-9, "convergence tolerance")
	runCmd.Flags().BoolVar(&flagLogDomain, "logdomain", false, "compute messages in the log domain")
	runCmd.Flags().Float64Var(&flagDamping, "damping", 0, "damping factor in [0,1)")
	runCmd.Flags().Int64Var(&flagSeed, "seed", 0, "SEQRND permutation seed (0: use engine default)")
}

func runRun(cmd *cobra.Command, args []string) error {
	fg, err := daigo.ReadFactorGraphFile(args[0])
	if err != nil {
		return err
	}

	kv := []interface{}{
		"tol", flagTol,
		"maxiter", flagMaxIter,
		"logdomain", flagLogDomain,
		"updates", flagUpdates,
		"damping", flagDamping,
	}
	if flagSeed != 0 {
		kv = append(kv, "seed", flagSeed)
	}
	props, err := bp.ParseProperties(daigo.NewPropertySet(kv...))
	if err != nil {
		return err
	}

	engine, err := bp.New(fg, props)
	if err != nil {
		return err
	}

	maxdiff, err := engine.Run()
	if err != nil {
		return err
	}
	glog.Infof("%s: converged in %d iterations, maxdiff=%g", engine.Identify(), engine.Iterations(), maxdiff)

	beliefs, err := engine.Beliefs()
	if err != nil {
		return err
	}
	for i, b := range beliefs {
		fmt.Printf("x%d: %v\n", fg.Var(i).Label, b.ToLinear().Values())
	}

	logZ, err := engine.LogZ()
	if err != nil {
		glog.Warningf("logZ: %v", err)
	} else {
		fmt.Printf("logZ: %g\n", logZ)
	}
	return nil
}
