// Command ephem runs the ephemeris computations from the command line.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"go.ngs.io/ephemeris-api/internal/adapter/store"
	"go.ngs.io/ephemeris-api/internal/adapter/store/csv"
	"go.ngs.io/ephemeris-api/internal/adapter/store/source"
	"go.ngs.io/ephemeris-api/internal/domain"
	"go.ngs.io/ephemeris-api/internal/usecase"
)

const version = "0.1.0"

func main() {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, isTTY))
}

// optionalFloat is a float flag that records whether it was set.
type optionalFloat struct {
	value float64
	set   bool
}

func (f *optionalFloat) String() string {
	if f == nil || !f.set {
		return ""
	}
	return strconv.FormatFloat(f.value, 'f', -1, 64)
}

func (f *optionalFloat) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	f.value, f.set = v, true
	return nil
}

func (f *optionalFloat) ptr() *float64 {
	if !f.set {
		return nil
	}
	v := f.value
	return &v
}

// commonFlags are shared by every subcommand.
type commonFlags struct {
	dataDir string
	source  string
	deltaT  string
	json    bool
	timeStr string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.dataDir, "data-dir", getEnv("DATA_DIR", "./data"), "Directory of series files and bodies.csv")
	fs.StringVar(&c.source, "source", getEnv("SERIES_SOURCE", source.CSV), "Series source: csv, vsop87 or netcdf")
	fs.StringVar(&c.deltaT, "delta-t", getEnv("DELTA_T", domain.EspenakMeeusName), "Delta-T: espenak-meeus, table or constant seconds")
	fs.BoolVar(&c.json, "json", false, "Print JSON instead of a table")
	fs.StringVar(&c.timeStr, "time", "", "Instant as RFC3339 (UT)")
}

func (c *commonFlags) instant(jd *optionalFloat) (usecase.Instant, error) {
	in := usecase.Instant{JD: jd.ptr()}
	if c.timeStr != "" {
		t, err := time.Parse(time.RFC3339, c.timeStr)
		if err != nil {
			return in, fmt.Errorf("invalid -time (expected RFC3339): %w", err)
		}
		in.Time = &t
	}
	return in, nil
}

// useCase builds the use case over the configured stores. The series store
// is only opened when needSeries is set.
func (c *commonFlags) useCase(needSeries bool) (*usecase.EphemerisUseCase, error) {
	provider, err := csv.ParseDeltaTProvider(c.deltaT, c.dataDir)
	if err != nil {
		return nil, err
	}

	var series store.SeriesLoader
	if needSeries {
		if series, err = source.NewSeriesLoader(c.source, c.dataDir); err != nil {
			return nil, err
		}
	}
	return usecase.NewEphemerisUseCase(series, csv.NewShapeStore(c.dataDir), domain.NewTimeScaleConverter(provider), nil, nil), nil
}

func run(args []string, stdout, stderr io.Writer, styled bool) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 2
	}

	out := newPrinter(stdout, styled)
	ctx := context.Background()

	var err error
	switch args[0] {
	case "jd":
		err = runJD(ctx, args[1:], out, stderr)
	case "position":
		err = runPosition(ctx, args[1:], out, stderr)
	case "distance":
		err = runDistance(ctx, args[1:], out, stderr)
	case "sol":
		err = runSol(ctx, args[1:], out, stderr)
	case "planets":
		err = runPlanets(args[1:], out, stderr)
	case "version", "-version", "--version":
		_, _ = fmt.Fprintf(stdout, "ephem version %s\n", version)
		return 0
	case "help", "-help", "--help", "-h":
		printUsage(stdout)
		return 0
	default:
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		printUsage(stderr)
		return 2
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		_, _ = fmt.Fprintln(stderr, newPrinter(stderr, styled).errorLine(err))
		return 1
	}
	return 0
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func runJD(ctx context.Context, args []string, out *printer, stderr io.Writer) error {
	fs := newFlagSet("jd", stderr)
	var common commonFlags
	common.register(fs)
	var jd optionalFloat
	fs.Var(&jd, "jd", "Julian Date in the scale given by -scale")
	scale := fs.String("scale", usecase.ScaleUT, "Scale of -jd: ut, tt or tai")
	if err := fs.Parse(args); err != nil {
		return err
	}

	instant, err := common.instant(&jd)
	if err != nil {
		return err
	}
	uc, err := common.useCase(false)
	if err != nil {
		return err
	}

	resp, err := uc.ConvertTime(ctx, usecase.TimeRequest{Instant: instant, Scale: strings.ToLower(*scale)})
	if err != nil {
		return err
	}

	return out.print(common.json, "Time scales", []field{
		{"UTC", resp.UTC},
		{"JD (UT)", formatFloat(resp.JulianDateUT, 8)},
		{"JD (TT)", formatFloat(resp.JulianDateTT, 8)},
		{"JD (TAI)", formatFloat(resp.JulianDateTAI, 8)},
		{"Delta-T", formatFloat(resp.DeltaTSeconds, 3) + " s"},
		{"Days since J2000", formatFloat(resp.DaysSinceJ2000, 8)},
		{"Centuries since J2000", formatFloat(resp.CenturiesSinceJ2000, 10)},
	}, resp)
}

func runPosition(ctx context.Context, args []string, out *printer, stderr io.Writer) error {
	fs := newFlagSet("position", stderr)
	var common commonFlags
	common.register(fs)
	var jd optionalFloat
	fs.Var(&jd, "jd-tt", "Julian Date (TT)")
	body := fs.String("body", "earth", "Body name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	instant, err := common.instant(&jd)
	if err != nil {
		return err
	}
	uc, err := common.useCase(true)
	if err != nil {
		return err
	}

	resp, err := uc.Position(ctx, usecase.PositionRequest{Body: *body, Instant: instant})
	if err != nil {
		return err
	}

	return out.print(common.json, "Heliocentric position of "+resp.Body, []field{
		{"JD (TT)", formatFloat(resp.JulianDateTT, 8)},
		{"Longitude", formatFloat(resp.LongitudeDeg, 6) + "°"},
		{"Latitude", formatFloat(resp.LatitudeDeg, 6) + "°"},
		{"Radius", formatFloat(resp.RadiusAU, 8) + " AU"},
		{"Radius", formatFloat(resp.RadiusKm, 1) + " km"},
		{"Terms", strconv.Itoa(resp.Terms)},
	}, resp)
}

func runDistance(ctx context.Context, args []string, out *printer, stderr io.Writer) error {
	fs := newFlagSet("distance", stderr)
	var common commonFlags
	common.register(fs)
	body := fs.String("body", "earth", "Body name")
	var coords [4]optionalFloat
	for i, name := range []string{"lat1", "lon1", "lat2", "lon2"} {
		fs.Var(&coords[i], name, "Degrees")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	for i, name := range []string{"lat1", "lon1", "lat2", "lon2"} {
		if !coords[i].set {
			return fmt.Errorf("-%s is required", name)
		}
	}

	uc, err := common.useCase(false)
	if err != nil {
		return err
	}

	resp, err := uc.Distance(ctx, usecase.DistanceRequest{
		Body: *body,
		Lat1: coords[0].value, Lon1: coords[1].value,
		Lat2: coords[2].value, Lon2: coords[3].value,
	})
	if err != nil {
		return err
	}

	return out.print(common.json, "Distance on "+resp.Body, []field{
		{"Distance", formatFloat(resp.DistanceKm, 3) + " km"},
		{"Equatorial radius", formatFloat(resp.EquatorialRadiusKm, 3) + " km"},
		{"Polar radius", formatFloat(resp.PolarRadiusKm, 3) + " km"},
		{"Flattening", formatFloat(resp.Flattening, 8)},
	}, resp)
}

func runSol(ctx context.Context, args []string, out *printer, stderr io.Writer) error {
	fs := newFlagSet("sol", stderr)
	var common commonFlags
	common.register(fs)
	var jd optionalFloat
	fs.Var(&jd, "jd", "Julian Date (UT)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	instant, err := common.instant(&jd)
	if err != nil {
		return err
	}
	uc, err := common.useCase(false)
	if err != nil {
		return err
	}

	resp, err := uc.MarsSol(ctx, instant)
	if err != nil {
		return err
	}

	return out.print(common.json, "Mars Sol Date", []field{
		{"JD (UT)", formatFloat(resp.JulianDateUT, 8)},
		{"MSD", formatFloat(resp.MarsSolDate, 6)},
		{"Sol", strconv.FormatInt(resp.Sol, 10)},
	}, resp)
}

func runPlanets(args []string, out *printer, stderr io.Writer) error {
	fs := newFlagSet("planets", stderr)
	asJSON := fs.Bool("json", false, "Print JSON instead of a table")
	if err := fs.Parse(args); err != nil {
		return err
	}

	uc := usecase.NewEphemerisUseCase(nil, nil, nil, nil, nil)
	planets := uc.Planets()
	fields := make([]field, len(planets))
	for i, p := range planets {
		fields[i] = field{strconv.Itoa(p.Number), p.Name}
	}
	return out.print(*asJSON, "Planets", fields, planets)
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintf(w, `ephem v%s

USAGE:
  ephem <command> [flags]

COMMANDS:
  jd         Convert an instant between UT, TT and TAI (-time or -jd, -scale)
  position   Heliocentric ecliptic position (-body, -time or -jd-tt)
  distance   Surface distance on a body (-body, -lat1, -lon1, -lat2, -lon2)
  sol        Mars Sol Date (-time or -jd)
  planets    List planet numbers
  version    Show version information

COMMON FLAGS:
  -data-dir  Directory of series files and bodies.csv (env DATA_DIR, default ./data)
  -source    csv, vsop87 or netcdf (env SERIES_SOURCE, default csv)
  -delta-t   espenak-meeus, table (data-dir/deltat.csv) or constant seconds (env DELTA_T)
  -json      Print JSON

EXAMPLES:
  ephem jd -time 2000-01-01T12:00:00Z
  ephem position -body mars -jd-tt 2451545
  ephem distance -body earth -lat1 48.8364 -lon1 2.3372 -lat2 38.9214 -lon2 -77.0656
`, version)
}
