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

package rtti_test

import (
	"fmt"
	"io"

	"dirpx.dev/rtti"
)

// Person is the reference type registered with fields and methods.
type Person struct {
	Name string
	Age  uint64
	out  io.Writer
}

func (p *Person) Say(msg string) {
	fmt.Fprintf(p.out, "%s say: %s\n", p.Name, msg)
}

func (p *Person) Greet(other string, times int) string {
	s := ""
	for i := 0; i < times; i++ {
		s += "hi " + other + "! "
	}
	return s
}

func (p *Person) Birthday() { p.Age++ }

func (p *Person) Older(years uint64) Person {
	return Person{Name: p.Name, Age: p.Age + years, out: p.out}
}

// Tagged owns a slice and deep-copies it.
type Tagged struct {
	Tags []string
}

func (t Tagged) Clone() Tagged {
	return Tagged{Tags: append([]string(nil), t.Tags...)}
}

// Handle counts Destroy calls.
type Handle struct {
	closed *int
}

func (h *Handle) Destroy() {
	if h.closed != nil {
		*h.closed++
	}
}

func init() {
	rtti.MustDescribe(func(b *rtti.TypeBuilder[Person]) {
		b.Name("Person")
		rtti.AddField(b, "name", func(p *Person) *string { return &p.Name })
		rtti.AddField(b, "age", func(p *Person) *uint64 { return &p.Age })
		rtti.Action1(b, "say", (*Person).Say)
		rtti.Func2(b, "greet", (*Person).Greet)
		rtti.Action0(b, "birthday", (*Person).Birthday)
		rtti.Func1(b, "older", (*Person).Older)
	})
}
