package scan_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"licmatch/internal/config"
	"licmatch/internal/logging"
	"licmatch/internal/scan"
	"licmatch/internal/store"
	"licmatch/internal/testsupport"
	"licmatch/internal/textdata"
)

const readme = "# Widget\n\nWidget renders widgets for the terminal.\n" +
	"Run it with widget serve and open the browser.\n\n## License\n\n" +
	testsupport.MITText +
	"\n## Contributing\n\nPull requests are welcome. Please open an issue first\n" +
	"to discuss what you would like to change.\n"

const notices = "Portions of this project are covered by the following notices.\n\n" +
	testsupport.MITText + "\n-----\n\n" + testsupport.ISCText + "\nEnd of notices.\n"

func goSource() string {
	var b strings.Builder
	b.WriteString("package main\n\nimport \"fmt\"\n\n")
	for _, line := range strings.Split(testsupport.ApacheHeader, "\n") {
		if line == "" {
			b.WriteString("//\n")
			continue
		}
		b.WriteString("// " + line + "\n")
	}
	b.WriteString("func main() {\n\tfmt.Println(\"hi\")\n}\n")
	return b.String()
}

func newStrategy(t *testing.T, opts ...testsupport.ConfigOption) *scan.Strategy {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	return scan.New(testsupport.NewStore(t, store.WithWorkers(cfg.Scan.Workers)), cfg.Scan, logging.NewNop())
}

func TestScanWholeDocument(t *testing.T) {
	for _, mode := range []string{config.ModeElimination, config.ModeTopDown} {
		t.Run(mode, func(t *testing.T) {
			strategy := newStrategy(t, testsupport.WithScanMode(mode))
			result, err := strategy.Scan(context.Background(), textdata.New(testsupport.MITText))
			if err != nil {
				t.Fatalf("Scan: %v", err)
			}
			if result.License == nil || result.License.Name != "MIT" || result.Score != 1 {
				t.Fatalf("unexpected result %+v", result)
			}
			if len(result.Containing) != 0 {
				t.Fatalf("shallow match should not search contained licenses: %+v", result.Containing)
			}
		})
	}
}

func checkRange(t *testing.T, got scan.Contained, name string, kind textdata.LicenseType, startLo, startHi, endLo, endHi int) {
	t.Helper()
	if got.License.Name != name || got.License.Kind != kind {
		t.Fatalf("got %s (%s), want %s (%s)", got.License.Name, got.License.Kind, name, kind)
	}
	if got.Score < 0.9 {
		t.Fatalf("score %f below threshold", got.Score)
	}
	r := got.LineRange
	if r.Start < startLo || r.Start > startHi || r.End < endLo || r.End > endHi {
		t.Fatalf("range [%d, %d) outside start [%d, %d] end [%d, %d]", r.Start, r.End, startLo, startHi, endLo, endHi)
	}
}

func TestScanEmbedded(t *testing.T) {
	tests := []struct {
		name  string
		mode  string
		text  string
		check func(t *testing.T, result scan.Result)
	}{
		{
			name: "readme elimination",
			mode: config.ModeElimination,
			text: readme,
			check: func(t *testing.T, result scan.Result) {
				if len(result.Containing) != 1 {
					t.Fatalf("expected one license, got %+v", result.Containing)
				}
				// MIT body runs from line 7 (title) to line 27 (last line).
				checkRange(t, result.Containing[0], "MIT", textdata.Original, 7, 11, 28, 29)
			},
		},
		{
			name: "readme top down",
			mode: config.ModeTopDown,
			text: readme,
			check: func(t *testing.T, result scan.Result) {
				if len(result.Containing) != 1 {
					t.Fatalf("expected one license, got %+v", result.Containing)
				}
				checkRange(t, result.Containing[0], "MIT", textdata.Original, 7, 11, 28, 29)
			},
		},
		{
			name: "source header elimination",
			mode: config.ModeElimination,
			text: goSource(),
			check: func(t *testing.T, result scan.Result) {
				if len(result.Containing) != 1 {
					t.Fatalf("expected one license, got %+v", result.Containing)
				}
				checkRange(t, result.Containing[0], "Apache-2.0", textdata.Header, 4, 6, 16, 18)
			},
		},
		{
			name: "source header top down",
			mode: config.ModeTopDown,
			text: goSource(),
			check: func(t *testing.T, result scan.Result) {
				if len(result.Containing) != 1 {
					t.Fatalf("expected one license, got %+v", result.Containing)
				}
				checkRange(t, result.Containing[0], "Apache-2.0", textdata.Header, 4, 6, 16, 18)
			},
		},
		{
			name: "two notices elimination",
			mode: config.ModeElimination,
			text: notices,
			check: func(t *testing.T, result scan.Result) {
				if result.License != nil {
					t.Fatalf("mixed document should not match as a whole: %+v", result.License)
				}
				if len(result.Containing) != 2 {
					t.Fatalf("expected two licenses, got %+v", result.Containing)
				}
				mit, isc := result.Containing[0], result.Containing[1]
				checkRange(t, mit, "MIT", textdata.Original, 2, 6, 22, 26)
				checkRange(t, isc, "ISC", textdata.Original, 26, 30, 41, 43)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy := newStrategy(t, testsupport.WithScanMode(tt.mode))
			result, err := strategy.Scan(context.Background(), textdata.New(tt.text))
			if err != nil {
				t.Fatalf("Scan: %v", err)
			}
			tt.check(t, result)
		})
	}
}

func TestScanWithoutOptimize(t *testing.T) {
	strategy := newStrategy(t, testsupport.WithOptimize(false))
	result, err := strategy.Scan(context.Background(), textdata.New(readme))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(result.Containing) != 0 {
		t.Fatalf("elimination without optimize should stop at the whole document: %+v", result.Containing)
	}
	if result.Score <= 0 || result.Score >= 1 {
		t.Fatalf("unexpected whole score %f", result.Score)
	}
}

func TestScanTextless(t *testing.T) {
	strategy := newStrategy(t)
	result, err := strategy.Scan(context.Background(), textdata.New(readme).WithoutText())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(result.Containing) != 0 {
		t.Fatalf("text-less input cannot be narrowed: %+v", result.Containing)
	}
}

func TestScanErrors(t *testing.T) {
	strategy := newStrategy(t, testsupport.WithScanMode("sideways"))
	if _, err := strategy.Scan(context.Background(), textdata.New(readme)); !errors.Is(err, scan.ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}

	empty := scan.New(store.New(), config.Default().Scan, nil)
	if _, err := empty.Scan(context.Background(), textdata.New(readme)); !errors.Is(err, store.ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestResultBest(t *testing.T) {
	tests := []struct {
		name      string
		result    scan.Result
		wantName  string
		wantScore float64
		wantOK    bool
	}{
		{name: "empty", result: scan.Result{}, wantOK: false},
		{
			name:      "whole document",
			result:    scan.Result{Score: 0.95, License: &scan.Identified{Name: "MIT"}},
			wantName:  "MIT",
			wantScore: 0.95,
			wantOK:    true,
		},
		{
			name: "best contained",
			result: scan.Result{Score: 0.5, Containing: []scan.Contained{
				{Score: 0.92, License: scan.Identified{Name: "ISC"}},
				{Score: 0.97, License: scan.Identified{Name: "Zlib"}},
			}},
			wantName:  "Zlib",
			wantScore: 0.97,
			wantOK:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, score, ok := tt.result.Best()
			if ok != tt.wantOK || got.Name != tt.wantName || score != tt.wantScore {
				t.Fatalf("Best() = %+v, %f, %v", got, score, ok)
			}
		})
	}
}

func TestResultRegion(t *testing.T) {
	whole := &scan.Identified{Name: "MIT"}
	isc := scan.Contained{Score: 0.92, License: scan.Identified{Name: "ISC"}, LineRange: scan.LineRange{Start: 3, End: 9}}
	zlib := scan.Contained{Score: 0.97, License: scan.Identified{Name: "Zlib"}, LineRange: scan.LineRange{Start: 12, End: 30}}

	tests := []struct {
		name   string
		result scan.Result
		want   scan.Contained
		wantOK bool
	}{
		{name: "nothing", result: scan.Result{Score: 0.3}},
		{
			name:   "whole document spans every line",
			result: scan.Result{Score: 0.95, License: whole},
			want:   scan.Contained{Score: 0.95, License: *whole, LineRange: scan.LineRange{Start: 0, End: 40}},
			wantOK: true,
		},
		{
			name:   "contained beats whole document",
			result: scan.Result{Score: 0.99, License: whole, Containing: []scan.Contained{isc}},
			want:   isc,
			wantOK: true,
		},
		{
			name:   "strongest contained",
			result: scan.Result{Score: 0.5, Containing: []scan.Contained{isc, zlib}},
			want:   zlib,
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.result.Region(40)
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("Region(40) = %+v, %v; want %+v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
