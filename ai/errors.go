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

package ai

import "errors"

var (
	// ErrInvalidMaxAttempts indicates a retry was requested with no attempts.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrMalformedResponse indicates the model output could not be decoded or
	// did not match the response schema.
	ErrMalformedResponse = errors.New("malformed model response")

	// ErrNoChoices indicates the model returned no completion choices.
	ErrNoChoices = errors.New("model returned no choices")
)
