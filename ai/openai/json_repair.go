// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package openai

import "strings"

// repairJSON fixes the defects small local models most often emit:
// keys missing their opening quote (`{class": ...`) and trailing commas
// before a closing bracket. Text inside string literals is left alone.
func repairJSON(s string) string {
	return dropTrailingCommas(quoteBareKeys(s))
}

// quoteBareKeys adds the missing opening quote to keys such as `, text":`.
func quoteBareKeys(s string) string {
	in := []rune(s)
	var out strings.Builder
	out.Grow(len(s) + 16)

	inString := false
	for i := 0; i < len(in); i++ {
		ch := in[i]
		out.WriteRune(ch)

		if inString {
			if ch == '\\' && i+1 < len(in) {
				i++
				out.WriteRune(in[i])
			} else if ch == '"' {
				inString = false
			}
			continue
		}
		if ch == '"' {
			inString = true
			continue
		}
		if ch != '{' && ch != ',' {
			continue
		}

		// Copy whitespace, then look for letters/underscores ending in '":'.
		j := i + 1
		for j < len(in) && isSpace(in[j]) {
			out.WriteRune(in[j])
			j++
		}
		k := j
		for k < len(in) && (isLetter(in[k]) || in[k] == '_') {
			k++
		}
		if k > j && k+1 < len(in) && in[k] == '"' && in[k+1] == ':' {
			out.WriteRune('"')
			out.WriteString(string(in[j:k]))
			out.WriteRune('"')
			i = k
			continue
		}
		i = j - 1
	}
	return out.String()
}

// dropTrailingCommas removes commas that directly precede '}' or ']'.
func dropTrailingCommas(s string) string {
	in := []rune(s)
	var out strings.Builder
	out.Grow(len(s))

	inString := false
	for i := 0; i < len(in); i++ {
		ch := in[i]
		if inString {
			out.WriteRune(ch)
			if ch == '\\' && i+1 < len(in) {
				i++
				out.WriteRune(in[i])
			} else if ch == '"' {
				inString = false
			}
			continue
		}
		if ch == '"' {
			inString = true
			out.WriteRune(ch)
			continue
		}
		if ch == ',' {
			j := i + 1
			for j < len(in) && isSpace(in[j]) {
				j++
			}
			if j < len(in) && (in[j] == '}' || in[j] == ']') {
				continue
			}
		}
		out.WriteRune(ch)
	}
	return out.String()
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}
