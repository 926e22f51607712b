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

// Command rttidemo runs HCL scripts that create values of registered types
// and call their methods through the rtti engine.
//
// Usage:
//
//	rttidemo [options] SCRIPT
//
// A script is a sequence of blocks run in source order:
//
//	value "tom" {
//	  type = "Person"
//	  init = { name = "Tom", age = 18 }
//	}
//	invoke "tom" "say" { args = ["hello"] }
//	invoke "tom" "older" {
//	  args = [2]
//	  into = "elder"
//	}
//	dump "elder" {}
//
// Stored values are visible to later expressions by name, e.g. tom.name.
// RTTI_QUALIFIED_NAMES, RTTI_REJECT_DUPLICATES and RTTI_LOG_LEVEL configure
// the engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"dirpx.dev/rtti"
	"dirpx.dev/rtti/config"
	"dirpx.dev/rtti/internal/ctxlog"
)

// exitError carries a process exit code.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

func main() {
	if err := run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if e, ok := err.(*exitError); ok {
			os.Exit(e.code)
		}
		os.Exit(1)
	}
}

// run parses args, configures the engine and runs the script.
func run(ctx context.Context, out, errOut io.Writer, args []string) error {
	fs := flag.NewFlagSet("rttidemo", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		fmt.Fprintln(errOut, "Usage: rttidemo [options] SCRIPT")
		fs.PrintDefaults()
	}
	logFormat := fs.String("log-format", "text", "Log output format: 'text' or 'json'.")
	listTypes := fs.Bool("types", false, "List registered types and exit.")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return &exitError{code: 2, msg: err.Error()}
	}

	cfg, level, err := config.FromEnv()
	if err != nil {
		return err
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(*logFormat) {
	case "text":
		handler = slog.NewTextHandler(errOut, opts)
	case "json":
		handler = slog.NewJSONHandler(errOut, opts)
	default:
		return &exitError{code: 2, msg: fmt.Sprintf("invalid log format %q", *logFormat)}
	}
	logger := slog.New(handler)

	rtti.SetLogger(logger)
	rtti.SetConfig(cfg)
	ctx = ctxlog.WithLogger(ctx, logger)

	if *listTypes {
		return printTypes(out)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return &exitError{code: 2, msg: "exactly one script path is required"}
	}

	r := NewRunner(out)
	defer r.Close()

	logger.Debug("Running script.", "path", fs.Arg(0))
	return r.RunFile(ctx, fs.Arg(0))
}

// printTypes lists described types with their fields and methods.
func printTypes(out io.Writer) error {
	ds := rtti.Descriptors()
	slices.SortFunc(ds, func(a, b *rtti.Descriptor) int { return strings.Compare(a.Name(), b.Name()) })
	for _, d := range ds {
		if d.NumFields() == 0 && d.NumMethods() == 0 {
			continue
		}
		if _, err := fmt.Fprintf(out, "%s\n", d); err != nil {
			return err
		}
		for _, f := range d.Fields() {
			if _, err := fmt.Fprintf(out, "  field %s %s\n", f.Name(), f.Type()); err != nil {
				return err
			}
		}
		for _, m := range d.Methods() {
			params := make([]string, 0, m.Arity())
			for _, p := range m.Params() {
				params = append(params, p.String())
			}
			result := ""
			if m.Result() != nil {
				result = " " + m.Result().String()
			}
			if _, err := fmt.Fprintf(out, "  method %s(%s)%s\n", m.Name(), strings.Join(params, ", "), result); err != nil {
				return err
			}
		}
	}
	return nil
}
