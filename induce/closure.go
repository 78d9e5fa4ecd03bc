// Copyright 2022 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package induce

import (
	"github.com/foil-induction/foil/model"
	"github.com/foil-induction/foil/term"
)

// Closure completes an example set by negation as failure over a finite
// constant pool: every assignment of constants to target's variables that
// is not already listed becomes a negative example. The given examples
// are returned first, then the generated negatives in enumeration order
// (constants cycled rightmost-fastest over the target's variables), so
// the result is deterministic for fixed inputs.
func Closure(target model.Literal, constants []term.Value, examples []model.Example) []model.Example {
	variables := target.Variables()
	if len(variables) > 0 && len(constants) == 0 {
		return append([]model.Example{}, examples...)
	}

	out := append([]model.Example{}, examples...)
	assignment := make([]int, len(variables))
	for {
		a := make(model.Assignment, len(variables))
		for i, v := range variables {
			a[v] = constants[assignment[i]]
		}
		if !hasAssignment(examples, a) {
			out = append(out, model.NewExample(a, model.Negative))
		}

		i := len(assignment) - 1
		for i >= 0 {
			assignment[i]++
			if assignment[i] < len(constants) {
				break
			}
			assignment[i] = 0
			i--
		}
		if i < 0 {
			return out
		}
	}
}

func hasAssignment(examples []model.Example, a model.Assignment) bool {
	for _, e := range examples {
		if e.Assignment.Equals(a) {
			return true
		}
	}
	return false
}
