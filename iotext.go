// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package daigo

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// wireVariable is the on-disk representation of a Variable, the way
// graph.go's Node/Edge carry yaml/json tags for the teacher's plain
// weighted graph.
type wireVariable struct {
	Label  int64 `yaml:"label" json:"label"`
	States int   `yaml:"states" json:"states"`
}

// wireFactor is the on-disk representation of a Factor: the labels of
// its variables (in any order -- NewVarSet sorts them by label) and its
// dense value table, indexed in the mixed-radix convention of
// varset.go (smallest label fastest-varying) whatever order the labels
// are listed in.
type wireFactor struct {
	Vars   []int64   `yaml:"vars" json:"vars"`
	Values []float64 `yaml:"values" json:"values"`
}

// wireGraph is the top-level on-disk factor graph document.
type wireGraph struct {
	Name      string         `yaml:"name,omitempty" json:"name,omitempty"`
	Variables []wireVariable `yaml:"variables" json:"variables"`
	Factors   []wireFactor   `yaml:"factors" json:"factors"`
}

// wireGraphToFactorGraph converts the decoded wire form into a
// *FactorGraph, shared by the YAML and JSON read paths.
func wireGraphToFactorGraph(wg wireGraph) (*FactorGraph, error) {
	vars := make([]Variable, len(wg.Variables))
	byLabel := make(map[int64]Variable, len(wg.Variables))
	for i, wv := range wg.Variables {
		vars[i] = Variable{Label: wv.Label, States: wv.States}
		byLabel[wv.Label] = vars[i]
	}

	factors := make([]Factor, len(wg.Factors))
	for i, wf := range wg.Factors {
		fvars := make([]Variable, len(wf.Vars))
		for j, label := range wf.Vars {
			v, ok := byLabel[label]
			if !ok {
				return nil, errInvalidFactorGraph(
					"factor references undeclared variable label")
			}
			fvars[j] = v
		}
		f, err := NewFactor(NewVarSet(fvars...), wf.Values)
		if err != nil {
			return nil, errors.Wrapf(err, "daigo: factor %d", i)
		}
		factors[i] = f
	}

	fg, err := NewFactorGraph(vars, factors)
	if err != nil {
		return nil, err
	}

	glog.Infof("Read factor graph %q: %d variables, %d factors.", wg.Name, len(vars), len(factors))
	return fg, nil
}

// factorGraphToWireGraph builds the wire form of fg, shared by the YAML
// and JSON write paths.
func factorGraphToWireGraph(fg *FactorGraph) wireGraph {
	wg := wireGraph{
		Variables: make([]wireVariable, fg.NrVars()),
		Factors:   make([]wireFactor, fg.NrFactors()),
	}
	for i := 0; i < fg.NrVars(); i++ {
		v := fg.Var(i)
		wg.Variables[i] = wireVariable{Label: v.Label, States: v.States}
	}
	for I := 0; I < fg.NrFactors(); I++ {
		f := fg.FactorAt(I)
		labels := make([]int64, f.Vars.Len())
		for j, v := range f.Vars.Vars() {
			labels[j] = v.Label
		}
		wg.Factors[I] = wireFactor{Vars: labels, Values: append([]float64{}, f.Values.Values()...)}
	}
	return wg
}

// ReadFactorGraph parses a YAML-encoded factor graph document from r.
func ReadFactorGraph(r io.Reader) (*FactorGraph, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "daigo: reading factor graph")
	}

	var wg wireGraph
	if err := yaml.Unmarshal(b, &wg); err != nil {
		return nil, errors.Wrap(err, "daigo: decoding factor graph yaml")
	}
	return wireGraphToFactorGraph(wg)
}

// ReadFactorGraphJSON parses a JSON-encoded factor graph document from
// r, the machine form attr.go and model/gmm/gmm.go use encoding/json
// for.
func ReadFactorGraphJSON(r io.Reader) (*FactorGraph, error) {
	var wg wireGraph
	if err := json.NewDecoder(r).Decode(&wg); err != nil {
		return nil, errors.Wrap(err, "daigo: decoding factor graph json")
	}
	return wireGraphToFactorGraph(wg)
}

// ReadFactorGraphFile reads and parses the named file, dispatching to
// the JSON decoder for a ".json" extension and the YAML decoder
// otherwise.
func ReadFactorGraphFile(path string) (*FactorGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "daigo: opening %s", path)
	}
	defer f.Close()
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ReadFactorGraphJSON(f)
	}
	return ReadFactorGraph(f)
}

// Write serializes fg as YAML to w.
func (fg *FactorGraph) Write(w io.Writer) error {
	b, err := yaml.Marshal(factorGraphToWireGraph(fg))
	if err != nil {
		return errors.Wrap(err, "daigo: encoding factor graph yaml")
	}
	_, err = w.Write(b)
	return err
}

// WriteJSON serializes fg as JSON to w.
func (fg *FactorGraph) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(factorGraphToWireGraph(fg)); err != nil {
		return errors.Wrap(err, "daigo: encoding factor graph json")
	}
	return nil
}

// WriteFile serializes fg to the named file, using JSON for a ".json"
// extension and YAML otherwise.
func (fg *FactorGraph) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "daigo: creating %s", path)
	}
	defer f.Close()
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return fg.WriteJSON(f)
	}
	return fg.Write(f)
}
