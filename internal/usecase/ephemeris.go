package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"go.ngs.io/ephemeris-api/internal/adapter/store"
	"go.ngs.io/ephemeris-api/internal/domain"
	"go.ngs.io/ephemeris-api/internal/logging"
	"go.ngs.io/ephemeris-api/internal/observability"
)

// Julian Dates accepted from callers: 4713 BC January 1 through the end of
// year 9999.
const (
	MinJulianDate = 0.0
	MaxJulianDate = 5373484.5
)

// Operation names used for metrics and spans.
const (
	OpTime     = "time"
	OpPosition = "position"
	OpDistance = "distance"
	OpMarsSol  = "mars_sol"
)

// Time scales accepted for a Julian Date input.
const (
	ScaleUT  = "ut"
	ScaleTT  = "tt"
	ScaleTAI = "tai"
)

// ComputationRecorder counts computations by operation and outcome.
type ComputationRecorder interface {
	ObserveComputation(operation string, err error)
}

// BodyLister is implemented by series stores that can enumerate their bodies.
type BodyLister interface {
	ListBodies() ([]string, error)
}

// Instant is a caller-supplied moment, either a calendar instant or a Julian
// Date. Exactly one must be set.
type Instant struct {
	Time *time.Time
	JD   *float64
}

// TimeRequest asks for a time scale conversion.
type TimeRequest struct {
	Instant
	Scale string // Scale of Instant.JD: ut (default), tt or tai.
}

// TimeResponse holds one instant in every supported scale.
type TimeResponse struct {
	UTC                 string  `json:"utc"`
	JulianDateUT        float64 `json:"jd_ut"`
	JulianDateTT        float64 `json:"jd_tt"`
	JulianDateTAI       float64 `json:"jd_tai"`
	DeltaTSeconds       float64 `json:"delta_t_seconds"`
	DaysSinceJ2000      float64 `json:"days_since_j2000"`
	YearsSinceJ2000     float64 `json:"years_since_j2000"`
	CenturiesSinceJ2000 float64 `json:"centuries_since_j2000"`
	MillenniaSinceJ2000 float64 `json:"millennia_since_j2000"`
}

// PositionRequest asks for a body's heliocentric position. Instant.JD is TT.
type PositionRequest struct {
	Body string
	Instant
}

// PositionResponse is a heliocentric ecliptic position.
type PositionResponse struct {
	Body         string  `json:"body"`
	JulianDateTT float64 `json:"jd_tt"`
	LongitudeRad float64 `json:"longitude_rad"`
	LatitudeRad  float64 `json:"latitude_rad"`
	LongitudeDeg float64 `json:"longitude_deg"`
	LatitudeDeg  float64 `json:"latitude_deg"`
	RadiusKm     float64 `json:"radius_km"`
	RadiusAU     float64 `json:"radius_au"`
	Terms        int     `json:"terms"`
}

// DistanceRequest asks for the surface distance between two points on a body.
type DistanceRequest struct {
	Body       string
	Lat1, Lon1 float64
	Lat2, Lon2 float64
}

// DistanceResponse is a geodesic distance on a body's spheroid.
type DistanceResponse struct {
	Body               string  `json:"body"`
	DistanceKm         float64 `json:"distance_km"`
	EquatorialRadiusKm float64 `json:"equatorial_radius_km"`
	PolarRadiusKm      float64 `json:"polar_radius_km"`
	Flattening         float64 `json:"flattening"`
}

// MarsSolResponse is a Mars Sol Date.
type MarsSolResponse struct {
	JulianDateUT float64 `json:"jd_ut"`
	MarsSolDate  float64 `json:"mars_sol_date"`
	Sol          int64   `json:"sol"`
}

// PlanetInfo pairs a planet number with its name.
type PlanetInfo struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// EphemerisUseCase orchestrates loading, validation and the domain computations.
type EphemerisUseCase struct {
	series    store.SeriesLoader
	shapes    store.ShapeLoader
	converter *domain.TimeScaleConverter
	recorder  ComputationRecorder
	log       logging.Logger
}

// NewEphemerisUseCase creates a new ephemeris use case. A nil converter uses
// the default delta-T model; recorder and log may be nil.
func NewEphemerisUseCase(series store.SeriesLoader, shapes store.ShapeLoader, converter *domain.TimeScaleConverter, recorder ComputationRecorder, log logging.Logger) *EphemerisUseCase {
	if converter == nil {
		converter = domain.NewTimeScaleConverter(nil)
	}
	if log == nil {
		log = logging.Noop()
	}
	return &EphemerisUseCase{
		series:    series,
		shapes:    shapes,
		converter: converter,
		recorder:  recorder,
		log:       log,
	}
}

// Converter returns the time scale converter in use.
func (uc *EphemerisUseCase) Converter() *domain.TimeScaleConverter {
	return uc.converter
}

// resolve turns an Instant into a Julian Date, converting calendar instants
// with CalendarToJulianDate.
func (in Instant) resolve() (float64, error) {
	switch {
	case in.Time != nil && in.JD != nil:
		return 0, &domain.InvalidArgumentError{Argument: "time", Reason: "time and jd are mutually exclusive"}
	case in.Time != nil:
		jd := domain.CalendarToJulianDate(*in.Time)
		if err := validateJD(jd, "time"); err != nil {
			return 0, err
		}
		return jd, nil
	case in.JD != nil:
		if err := validateJD(*in.JD, "jd"); err != nil {
			return 0, err
		}
		return *in.JD, nil
	default:
		return 0, &domain.InvalidArgumentError{Argument: "time", Reason: "either time or jd must be provided"}
	}
}

func validateJD(jd float64, arg string) error {
	if math.IsNaN(jd) || math.IsInf(jd, 0) {
		return &domain.InvalidArgumentError{Argument: arg, Reason: "must be a finite number"}
	}
	if jd < MinJulianDate || jd > MaxJulianDate {
		return &domain.InvalidArgumentError{Argument: arg, Reason: fmt.Sprintf("%v is outside [%v, %v]", jd, MinJulianDate, MaxJulianDate)}
	}
	return nil
}

// ConvertTime expresses an instant in UT, TT and TAI.
func (uc *EphemerisUseCase) ConvertTime(ctx context.Context, req TimeRequest) (resp *TimeResponse, err error) {
	ctx, span := observability.StartSpan(ctx, "usecase.ConvertTime", attribute.String("scale", req.Scale))
	defer func() { uc.finish(ctx, span, OpTime, err) }()

	jd, err := req.resolve()
	if err != nil {
		return nil, err
	}

	scale := req.Scale
	if scale == "" {
		scale = ScaleUT
	}
	if req.Time != nil && scale != ScaleUT {
		return nil, &domain.InvalidArgumentError{Argument: "scale", Reason: "a calendar time is always UT"}
	}

	var jdUT, jdTT, deltaT float64
	switch scale {
	case ScaleUT:
		jdUT = jd
		deltaT = uc.converter.DeltaTAt(jdUT)
		jdTT = jdUT + deltaT/domain.SecondsPerDay
	case ScaleTT, ScaleTAI:
		jdTT = jd
		if scale == ScaleTAI {
			jdTT = domain.TAIToTT(jd)
		}
		deltaT = uc.converter.DeltaTAt(jdTT)
		jdUT = jdTT - deltaT/domain.SecondsPerDay
	default:
		return nil, &domain.InvalidArgumentError{Argument: "scale", Reason: fmt.Sprintf("unknown time scale %q (want ut, tt or tai)", req.Scale)}
	}

	return &TimeResponse{
		UTC:                 domain.JulianDateToCalendar(jdUT).Format(time.RFC3339Nano),
		JulianDateUT:        jdUT,
		JulianDateTT:        jdTT,
		JulianDateTAI:       domain.TTToTAI(jdTT),
		DeltaTSeconds:       deltaT,
		DaysSinceJ2000:      domain.DaysSinceJ2000(jdTT),
		YearsSinceJ2000:     domain.YearsSinceJ2000(jdTT),
		CenturiesSinceJ2000: domain.CenturiesSinceJ2000(jdTT),
		MillenniaSinceJ2000: domain.MillenniaSinceJ2000(jdTT),
	}, nil
}

// Position computes a body's heliocentric ecliptic position. A calendar
// instant is treated as UT and converted to TT; a JD is taken as TT.
func (uc *EphemerisUseCase) Position(ctx context.Context, req PositionRequest) (resp *PositionResponse, err error) {
	ctx, span := observability.StartSpan(ctx, "usecase.Position", attribute.String("body", req.Body))
	defer func() { uc.finish(ctx, span, OpPosition, err) }()

	jd, err := req.resolve()
	if err != nil {
		return nil, err
	}
	jdTT := jd
	if req.Time != nil {
		jdTT = uc.converter.UTToTT(jd)
	}

	if uc.series == nil {
		return nil, &domain.DataNotFoundError{Body: req.Body, What: "coefficient table"}
	}
	table, err := uc.series.LoadSeries(req.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to load series: %w", err)
	}

	pos, err := domain.CalcPlanetPosition(table, jdTT)
	if err != nil {
		return nil, err
	}

	return &PositionResponse{
		Body:         table.Body(),
		JulianDateTT: jdTT,
		LongitudeRad: pos.Longitude,
		LatitudeRad:  pos.Latitude,
		LongitudeDeg: domain.NormalizeAngle360(domain.Rad2Deg(pos.Longitude)),
		LatitudeDeg:  domain.Rad2Deg(pos.Latitude),
		RadiusKm:     pos.Radius,
		RadiusAU:     pos.Radius / domain.AUKilometres,
		Terms:        table.Len(),
	}, nil
}

// Distance computes the geodesic distance between two points on a body.
func (uc *EphemerisUseCase) Distance(ctx context.Context, req DistanceRequest) (resp *DistanceResponse, err error) {
	ctx, span := observability.StartSpan(ctx, "usecase.Distance", attribute.String("body", req.Body))
	defer func() { uc.finish(ctx, span, OpDistance, err) }()

	loc1, err := domain.NewGeoCoordinate(req.Lat1, req.Lon1)
	if err != nil {
		return nil, renameArgument(err, "lat1", "lon1")
	}
	loc2, err := domain.NewGeoCoordinate(req.Lat2, req.Lon2)
	if err != nil {
		return nil, renameArgument(err, "lat2", "lon2")
	}

	if uc.shapes == nil {
		return nil, &domain.DataNotFoundError{Body: req.Body, What: "shape"}
	}
	shape, err := uc.shapes.LoadShape(req.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to load shape: %w", err)
	}

	d, err := domain.ShortestDistance(loc1, loc2, shape)
	if err != nil {
		return nil, err
	}

	body, _ := store.NormalizeBody(req.Body)
	return &DistanceResponse{
		Body:               body,
		DistanceKm:         d,
		EquatorialRadiusKm: shape.EquatorialRadius,
		PolarRadiusKm:      shape.PolarRadius,
		Flattening:         shape.Flattening(),
	}, nil
}

// renameArgument maps the generic latitude/longitude argument names onto the
// request parameter names.
func renameArgument(err error, latName, lonName string) error {
	var iae *domain.InvalidArgumentError
	if !errors.As(err, &iae) {
		return err
	}
	renamed := *iae
	switch iae.Argument {
	case "latitude":
		renamed.Argument = latName
	case "longitude":
		renamed.Argument = lonName
	}
	return &renamed
}

// MarsSol computes the Mars Sol Date. Instant.JD is UT.
func (uc *EphemerisUseCase) MarsSol(ctx context.Context, in Instant) (resp *MarsSolResponse, err error) {
	ctx, span := observability.StartSpan(ctx, "usecase.MarsSol")
	defer func() { uc.finish(ctx, span, OpMarsSol, err) }()

	jdUT, err := in.resolve()
	if err != nil {
		return nil, err
	}

	msd := domain.CalcMarsSolDate(jdUT)
	return &MarsSolResponse{
		JulianDateUT: jdUT,
		MarsSolDate:  msd,
		Sol:          int64(math.Floor(msd)),
	}, nil
}

// Planets returns every planet in number order.
func (uc *EphemerisUseCase) Planets() []PlanetInfo {
	planets := domain.AllPlanets()
	out := make([]PlanetInfo, len(planets))
	for i, p := range planets {
		out[i] = PlanetInfo{Number: int(p), Name: p.String()}
	}
	return out
}

// Planet maps a planet number to its name.
func (uc *EphemerisUseCase) Planet(number int) (PlanetInfo, error) {
	p, err := domain.PlanetByNumber(number)
	if err != nil {
		return PlanetInfo{}, err
	}
	return PlanetInfo{Number: int(p), Name: p.String()}, nil
}

// Bodies lists the bodies the series store can serve, sorted by name.
// Stores that cannot enumerate report an empty list.
func (uc *EphemerisUseCase) Bodies() ([]string, error) {
	lister, ok := uc.series.(BodyLister)
	if !ok {
		return []string{}, nil
	}
	bodies, err := lister.ListBodies()
	if err != nil {
		return nil, fmt.Errorf("failed to list bodies: %w", err)
	}
	sort.Strings(bodies)
	return bodies, nil
}

// finish records the outcome of one computation on metrics, span and log.
func (uc *EphemerisUseCase) finish(ctx context.Context, span trace.Span, op string, err error) {
	observability.EndSpan(span, err)
	if uc.recorder != nil {
		uc.recorder.ObserveComputation(op, err)
	}

	log := logging.FromContext(ctx, uc.log)
	if err != nil {
		log.Debug(ctx, "computation failed", logging.String("operation", op), logging.Err(err))
		return
	}
	log.Debug(ctx, "computation finished", logging.String("operation", op))
}
