// Copyright The hwgraph Authors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package util

// Append creates a new slice containing the result of appending the given
// item onto the back of slice.
func Append[T any](slice []T, item T) []T {
	n := len(slice)
	nslice := make([]T, n+1)
	copy(nslice[:n], slice)
	nslice[n] = item

	return nslice
}
