// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/akualab/daigo"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [graph.yaml]",
	Short: "Print a factor graph's variables and factors",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	fg, err := daigo.ReadFactorGraphFile(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%d variables, %d factors\n", fg.NrVars(), fg.NrFactors())
	for i := 0; i < fg.NrVars(); i++ {
		v := fg.Var(i)
		fmt.Printf("  %s (%d neighboring factors)\n", v, len(fg.NbV(i)))
	}
	for I := 0; I < fg.NrFactors(); I++ {
		f := fg.FactorAt(I)
		fmt.Printf("  factor %d over %v: %v\n", I, f.Vars.Vars(), f.Values.Values())
	}
	return nil
}
