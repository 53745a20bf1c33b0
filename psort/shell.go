// Copyright 2025 go-parsort Authors
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

package psort

import "context"

// Shell sorts data in place with shell sort, running each gap phase in
// parallel. A phase with gap g has g tasks, one per offset in [0, g), each
// insertion-sorting the chain offset, offset+g, offset+2g, ... The chains of
// one phase are disjoint; the next phase starts only after all of them are
// done.
//
// On error the contents of data are undefined.
func (s *Sorter[T]) Shell(ctx context.Context, data []T) error {
	if err := ctx.Err(); err != nil {
		return classify(ctx, "Shell", err)
	}
	for gap := len(data) / 2; gap > 0; gap /= 2 {
		err := s.pool.ParallelForAtomic(ctx, gap, func(_ context.Context, offset int) error {
			sortStrided(data, offset, gap)
			return nil
		})
		if err != nil {
			return classify(ctx, "Shell", err)
		}
	}
	return nil
}
