// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command daigo runs loopy belief propagation over a YAML-encoded
// factor graph. It replaces the teacher's codegangsta/cli-based gjoa
// command with a github.com/spf13/cobra tree, since the teacher's CLI
// library is not part of this pack's fetchable dependency set.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "daigo",
	Short: "Loopy belief propagation over discrete factor graphs",
}

func main() {
	defer glog.Flush()

	// glog registers -v, -logtostderr, etc. on flag.CommandLine; expose
	// them as persistent pflags so they work the way the teacher's
	// binaries expect.
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	rootCmd.AddCommand(runCmd, inspectCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
