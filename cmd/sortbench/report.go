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
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Report is the outcome of one benchmark session.
type Report struct {
	ID       uuid.UUID `json:"id"`
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
	Host     Host      `json:"host"`
	Plan     Plan      `json:"plan"`
	Results  []Result  `json:"results"`
}

// Result summarises the runs of one algorithm at one size.
type Result struct {
	Size      int     `json:"size"`
	Algorithm string  `json:"algorithm"`
	Family    string  `json:"family"`
	Variant   string  `json:"variant"`
	MeanMS    float64 `json:"mean_ms"`
	MinMS     float64 `json:"min_ms"`
	MaxMS     float64 `json:"max_ms"`
	Sorted    bool    `json:"sorted"`
}

func newResult(m Measurement) Result {
	return Result{
		Size:      m.Size,
		Algorithm: m.Algorithm.ID(),
		Family:    m.Algorithm.Family,
		Variant:   m.Algorithm.Variant,
		MeanMS:    millis(m.Mean()),
		MinMS:     millis(m.Min()),
		MaxMS:     millis(m.Max()),
		Sorted:    m.Sorted,
	}
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Speedup is the ratio of sequential to parallel mean time for one family
// at one size.
type Speedup struct {
	Size   int
	Family string
	Ratio  float64
}

// Speedups pairs sequential and parallel results of the same family and
// size. Families measured in only one variant are skipped.
func (r *Report) Speedups() []Speedup {
	type key struct {
		size   int
		family string
	}
	seq := lo.SliceToMap(
		lo.Filter(r.Results, func(res Result, _ int) bool { return res.Variant == "sequential" }),
		func(res Result) (key, float64) { return key{res.Size, res.Family}, res.MeanMS },
	)

	var out []Speedup
	for _, res := range r.Results {
		if res.Variant != "parallel" {
			continue
		}
		s, ok := seq[key{res.Size, res.Family}]
		if !ok || res.MeanMS == 0 {
			continue
		}
		out = append(out, Speedup{Size: res.Size, Family: res.Family, Ratio: s / res.MeanMS})
	}
	return out
}

// Write renders the report in the given format: text, json or csv.
func (r *Report) Write(w io.Writer, format string) error {
	switch format {
	case "text", "":
		return r.WriteText(w)
	case "json":
		return r.WriteJSON(w)
	case "csv":
		return r.WriteCSV(w)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// WriteText writes aligned tables of timings and speedups.
func (r *Report) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "run %s on %s/%s, %d CPUs, GOMAXPROCS=%d", r.ID, r.Host.GOOS, r.Host.GOARCH, r.Host.NumCPU, r.Host.GOMAXPROCS)
	if len(r.Host.Features) > 0 {
		fmt.Fprintf(w, " [%s]", strings.Join(r.Host.Features, " "))
	}
	fmt.Fprintf(w, "\ncase %s, %d runs per size\n\n", r.Plan.Case, r.Plan.Runs)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "size\talgorithm\tmean ms\tmin ms\tmax ms\tsorted\t")
	for _, res := range r.Results {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%.2f\t%.2f\t%t\t\n", res.Size, res.Algorithm, res.MeanMS, res.MinMS, res.MaxMS, res.Sorted)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	speedups := r.Speedups()
	if len(speedups) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "size\tfamily\tspeedup\t")
	for _, s := range speedups {
		fmt.Fprintf(tw, "%d\t%s\t%.2fx\t\n", s.Size, s.Family, s.Ratio)
	}
	return tw.Flush()
}

// WriteJSON writes the full report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteCSV writes one row per result.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"size", "algorithm", "mean_ms", "min_ms", "max_ms", "sorted"}); err != nil {
		return err
	}
	for _, res := range r.Results {
		row := []string{
			strconv.Itoa(res.Size),
			res.Algorithm,
			strconv.FormatFloat(res.MeanMS, 'f', 3, 64),
			strconv.FormatFloat(res.MinMS, 'f', 3, 64),
			strconv.FormatFloat(res.MaxMS, 'f', 3, 64),
			strconv.FormatBool(res.Sorted),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
