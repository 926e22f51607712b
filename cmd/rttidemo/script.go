/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"dirpx.dev/rtti"
	"dirpx.dev/rtti/ctyconv"
	"dirpx.dev/rtti/internal/ctxlog"
)

// scriptSchema lists the blocks of a script. Blocks run in source order.
var scriptSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "value", LabelNames: []string{"name"}},
		{Type: "invoke", LabelNames: []string{"target", "method"}},
		{Type: "dump", LabelNames: []string{"target"}},
	},
}

// valueBlock creates a named value of a registered type.
type valueBlock struct {
	Type string         `hcl:"type"`
	Init hcl.Expression `hcl:"init,optional"`
}

// invokeBlock calls a method on a named value. A non-empty result is
// printed, or stored under Into when set.
type invokeBlock struct {
	Args hcl.Expression `hcl:"args,optional"`
	Into string         `hcl:"into,optional"`
}

// dumpBlock prints a named value.
type dumpBlock struct{}

// outputSetter is implemented by values that print from their methods.
type outputSetter interface {
	SetOutput(w io.Writer)
}

// Runner executes scripts against the global descriptor registry.
// Values created by a script live until Close.
type Runner struct {
	out    io.Writer
	names  []string
	values map[string]rtti.Any
}

// NewRunner returns a Runner printing to out.
func NewRunner(out io.Writer) *Runner {
	return &Runner{out: out, values: make(map[string]rtti.Any)}
}

// RunFile parses and runs the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse script %s: %w", path, diags)
	}
	return r.run(ctx, file)
}

// Run parses and runs src. filename is used in diagnostics only.
func (r *Runner) Run(ctx context.Context, src []byte, filename string) error {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse script %s: %w", filename, diags)
	}
	return r.run(ctx, file)
}

// Value returns the value stored under name.
func (r *Runner) Value(name string) (rtti.Any, bool) {
	a, ok := r.values[name]
	return a, ok
}

// Close releases every value created by the script.
func (r *Runner) Close() {
	for _, name := range r.names {
		a := r.values[name]
		a.Release()
	}
	r.names = nil
	clear(r.values)
}

func (r *Runner) run(ctx context.Context, file *hcl.File) error {
	logger := ctxlog.FromContext(ctx)

	content, diags := file.Body.Content(scriptSchema)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode script: %w", diags)
	}

	for _, block := range content.Blocks {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Debug("Running script block.", "type", block.Type, "labels", block.Labels)

		var err error
		switch block.Type {
		case "value":
			err = r.runValue(logger, block)
		case "invoke":
			err = r.runInvoke(logger, block)
		case "dump":
			err = r.runDump(block)
		}
		if err != nil {
			return fmt.Errorf("%s: %s %s: %w", block.DefRange, block.Type, strings.Join(block.Labels, "."), err)
		}
	}
	return nil
}

func (r *Runner) runValue(logger *slog.Logger, block *hcl.Block) error {
	var decl valueBlock
	if diags := gohcl.DecodeBody(block.Body, nil, &decl); diags.HasErrors() {
		return diags
	}

	d, ok := rtti.DescriptorByName(decl.Type)
	if !ok {
		return fmt.Errorf("unknown type %q", decl.Type)
	}

	initial, diags := decl.Init.Value(r.evalContext(logger))
	if diags.HasErrors() {
		return diags
	}
	a, err := ctyconv.FromValue(initial, d)
	if err != nil {
		return err
	}
	r.store(block.Labels[0], a)
	return nil
}

func (r *Runner) runInvoke(logger *slog.Logger, block *hcl.Block) error {
	var decl invokeBlock
	if diags := gohcl.DecodeBody(block.Body, nil, &decl); diags.HasErrors() {
		return diags
	}

	target, method := block.Labels[0], block.Labels[1]
	self, ok := r.values[target]
	if !ok {
		return fmt.Errorf("unknown value %q", target)
	}

	argv, diags := decl.Args.Value(r.evalContext(logger))
	if diags.HasErrors() {
		return diags
	}
	args, err := r.arguments(self, method, argv)
	if err != nil {
		return err
	}
	defer func() {
		for i := range args {
			args[i].Release()
		}
	}()

	res, err := self.Invoke(method, args...)
	if err != nil {
		return err
	}
	if res.IsEmpty() {
		return nil
	}
	if decl.Into != "" {
		r.store(decl.Into, res)
		return nil
	}
	defer res.Release()
	return r.print(fmt.Sprintf("%s.%s", target, method), res)
}

// arguments converts the elements of argv to the parameter types of the
// method. Unknown methods and count mismatches yield empty arguments so the
// call itself reports the error.
func (r *Runner) arguments(self rtti.Any, method string, argv cty.Value) ([]rtti.Any, error) {
	var elems []cty.Value
	if !argv.IsNull() {
		ty := argv.Type()
		if !ty.IsTupleType() && !ty.IsListType() {
			return nil, fmt.Errorf("args must be a list, got %s", ty.FriendlyName())
		}
		elems = argv.AsValueSlice()
	}

	m, ok := self.Type().Method(method)
	if !ok || m.Arity() != len(elems) {
		return make([]rtti.Any, len(elems)), nil
	}

	params := m.Params()
	args := make([]rtti.Any, 0, len(elems))
	for i, v := range elems {
		a, err := ctyconv.FromValue(v, params[i])
		if err != nil {
			for j := range args {
				args[j].Release()
			}
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		args = append(args, a)
	}
	return args, nil
}

func (r *Runner) runDump(block *hcl.Block) error {
	var decl dumpBlock
	if diags := gohcl.DecodeBody(block.Body, nil, &decl); diags.HasErrors() {
		return diags
	}

	name := block.Labels[0]
	a, ok := r.values[name]
	if !ok {
		return fmt.Errorf("unknown value %q", name)
	}
	return r.print(name, a)
}

// print writes a as "label = value", or one line per attribute when a
// converts to an object.
func (r *Runner) print(label string, a rtti.Any) error {
	v, err := ctyconv.ToValue(a)
	if err != nil {
		return err
	}
	if !v.Type().IsObjectType() {
		s, err := ctyconv.Format(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(r.out, "%s = %s\n", label, s)
		return err
	}
	for _, attr := range ctyconv.AttributeNames(v) {
		s, err := ctyconv.Format(v.GetAttr(attr))
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(r.out, "%s.%s = %s\n", label, attr, s); err != nil {
			return err
		}
	}
	return nil
}

// store takes ownership of a under name, releasing any previous value.
func (r *Runner) store(name string, a rtti.Any) {
	if w, ok := a.Pointer().(outputSetter); ok {
		w.SetOutput(r.out)
	}
	if old, ok := r.values[name]; ok {
		old.Release()
	} else {
		r.names = append(r.names, name)
	}
	r.values[name] = a
}

// evalContext exposes every stored value as a variable.
func (r *Runner) evalContext(logger *slog.Logger) *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(r.values))
	for _, name := range r.names {
		v, err := ctyconv.ToValue(r.values[name])
		if err != nil {
			logger.Debug("Value is not visible to expressions.", "name", name, "error", err)
			continue
		}
		vars[name] = v
	}
	return &hcl.EvalContext{Variables: vars}
}
