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
	"fmt"
	"io"
	"strings"

	"dirpx.dev/rtti"
)

// Person is the sample type scripts operate on.
type Person struct {
	Name string
	Age  uint64
	out  io.Writer
}

// SetOutput sets where Say prints.
func (p *Person) SetOutput(w io.Writer) { p.out = w }

func (p *Person) Say(msg string) {
	if p.out == nil {
		return
	}
	fmt.Fprintf(p.out, "%s say: %s\n", p.Name, msg)
}

func (p *Person) Greet(other string, times int) string {
	return strings.TrimSpace(strings.Repeat("hi "+other+"! ", times))
}

func (p *Person) Birthday() { p.Age++ }

func (p *Person) Older(years uint64) Person {
	return Person{Name: p.Name, Age: p.Age + years}
}

// Point is a plain value type with a computed method.
type Point struct {
	X, Y float64
}

func (p *Point) Add(o Point) Point { return Point{X: p.X + o.X, Y: p.Y + o.Y} }

func (p *Point) Scale(k float64) { p.X *= k; p.Y *= k }

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
	rtti.MustDescribe(func(b *rtti.TypeBuilder[Point]) {
		b.Name("Point")
		rtti.AddField(b, "x", func(p *Point) *float64 { return &p.X })
		rtti.AddField(b, "y", func(p *Point) *float64 { return &p.Y })
		rtti.Func1(b, "add", (*Point).Add)
		rtti.Action1(b, "scale", (*Point).Scale)
	})

	// Scalars usable as top-level script values.
	rtti.DescriptorOf[string]()
	rtti.DescriptorOf[int]()
	rtti.DescriptorOf[bool]()
}
