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

package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestRunCommandCSV(t *testing.T) {
	stdout, _, err := execute(t, "run", "--sizes", "200,400", "--runs", "1", "-p", "2", "--threshold", "16", "--format", "csv")
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(stdout)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1+2*6)
	assert.Equal(t, []string{"size", "algorithm", "mean_ms", "min_ms", "max_ms", "sorted"}, rows[0])
	for _, row := range rows[1:] {
		assert.Equal(t, "true", row[5], "row %v", row)
	}
}

func TestRunCommandJSONFromPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sizes: [256]\nruns: 1\ncase: sorted\nalgorithms: [parallel-quick]\n"), 0o644))

	stdout, _, err := execute(t, "run", "--plan", path, "--format", "json")
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, CaseSorted, report.Plan.Case)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "parallel-quick", report.Results[0].Algorithm)
	assert.True(t, report.Results[0].Sorted)
}

func TestRunCommandText(t *testing.T) {
	stdout, stderr, err := execute(t, "run", "--sizes", "100", "--runs", "1", "-v")
	require.NoError(t, err)

	assert.Contains(t, stdout, "sequential-quick")
	assert.Contains(t, stdout, "parallel-shell")
	assert.Contains(t, stdout, "speedup")
	assert.Contains(t, stderr, "level=DEBUG")
}

func TestRunCommandRejectsBadFlags(t *testing.T) {
	_, _, err := execute(t, "run", "--sizes", "100", "--case", "zigzag")
	assert.ErrorIs(t, err, ErrInvalidPlan)

	_, _, err = execute(t, "run", "--sizes", "100", "--runs", "1", "--format", "xml")
	assert.ErrorContains(t, err, "unknown report format")
}

func TestCheckCommand(t *testing.T) {
	stdout, _, err := execute(t, "check", "-n", "2000", "-p", "3", "--threshold", "50")
	require.NoError(t, err)
	assert.Equal(t, 6, strings.Count(stdout, "sorted correctly: true"))
}
