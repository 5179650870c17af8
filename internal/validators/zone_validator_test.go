package validators

import (
	"encoding/json"
	"testing"
	"time"

	"skyfence/internal/utils"
)

func strptr(s string) *string  { return &s }
func intptr(i int) *int        { return &i }
func timeptr(t time.Time) *time.Time { return &t }

const validBoundary = `{"type":"Polygon","coordinates":[[[126.9,37.5],[126.9,37.6],[127.0,37.6],[127.0,37.5],[126.9,37.5]]]}`

func validCreateRequest() *ZoneRequest {
	return &ZoneRequest{
		Name:     strptr("Gimpo CTR"),
		Type:     strptr("RESTRICTED"),
		Boundary: json.RawMessage(validBoundary),
	}
}

func TestValidateZoneRequest_Create(t *testing.T) {
	polygon, ring, verr := ValidateZoneRequest(validCreateRequest(), true)
	if verr != nil {
		t.Fatalf("expected accept, got %v", verr)
	}
	if polygon == nil || len(ring) != 4 {
		t.Fatalf("expected parsed polygon with 4-point ring, got %v / %d", polygon, len(ring))
	}
}

func TestValidateZoneRequest_Precedence(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ZoneRequest)
		want   string
	}{
		{"missing name", func(r *ZoneRequest) { r.Name = nil }, ReasonNameRequired},
		{"blank name", func(r *ZoneRequest) { r.Name = strptr("   ") }, ReasonNameRequired},
		{"missing type", func(r *ZoneRequest) { r.Type = nil }, ReasonInvalidZoneType},
		{"unknown type", func(r *ZoneRequest) { r.Type = strptr("NOFLY") }, ReasonInvalidZoneType},
		{"negative altitude", func(r *ZoneRequest) { r.AltitudeLimit = intptr(-1) }, ReasonNegativeAltitudeLimit},
		{
			"time window too long",
			func(r *ZoneRequest) {
				long := make([]byte, 256)
				for i := range long {
					long[i] = 'x'
				}
				r.TimeWindow = strptr(string(long))
			},
			ReasonTimeWindowTooLong,
		},
		{"missing boundary", func(r *ZoneRequest) { r.Boundary = nil }, ReasonMissingGeometry},
		{
			"non-polygon boundary",
			func(r *ZoneRequest) { r.Boundary = json.RawMessage(`{"type":"Point","coordinates":[0,0]}`) },
			ReasonMalformedInput,
		},
		{
			"degenerate boundary",
			func(r *ZoneRequest) {
				r.Boundary = json.RawMessage(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[2,0],[0,0]]]}`)
			},
			ReasonDegenerateGeometry,
		},
		{
			"self-intersecting boundary",
			func(r *ZoneRequest) {
				r.Boundary = json.RawMessage(`{"type":"Polygon","coordinates":[[[0,0],[1,1],[1,0],[0,1],[0,0]]]}`)
			},
			ReasonSelfIntersecting,
		},
		{
			"name failure wins over bad boundary",
			func(r *ZoneRequest) {
				r.Name = nil
				r.Boundary = json.RawMessage(`not json`)
			},
			ReasonNameRequired,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)
			_, _, verr := ValidateZoneRequest(req, true)
			if verr == nil {
				t.Fatal("expected rejection")
			}
			if verr.Reason != tt.want {
				t.Fatalf("expected reason %s, got %s (%s)", tt.want, verr.Reason, verr.Message)
			}
		})
	}
}

func TestValidateZoneRequest_PartialUpdate(t *testing.T) {
	// Omitted fields keep their stored value; only supplied fields are
	// checked here.
	_, ring, verr := ValidateZoneRequest(&ZoneRequest{Name: strptr("Renamed")}, false)
	if verr != nil {
		t.Fatalf("name-only update should validate, got %v", verr)
	}
	if ring != nil {
		t.Fatal("no geometry supplied, no ring expected")
	}

	_, _, verr = ValidateZoneRequest(&ZoneRequest{
		Boundary: json.RawMessage(`{"type":"Polygon","coordinates":[[[0,0],[1,1],[1,0],[0,1],[0,0]]]}`),
	}, false)
	if verr == nil || verr.Reason != ReasonSelfIntersecting {
		t.Fatalf("supplied geometry must still be checked on update, got %v", verr)
	}
}

func TestValidateCreateSchedule(t *testing.T) {
	starts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	ends := starts.Add(2 * time.Hour)
	bad := -120.0

	if verr := ValidateCreateSchedule(&CreateScheduleRequest{
		Title: "Survey flight", StartsAt: timeptr(starts), EndsAt: timeptr(ends),
	}); verr != nil {
		t.Fatalf("expected accept, got %v", verr)
	}
	if verr := ValidateCreateSchedule(&CreateScheduleRequest{
		StartsAt: timeptr(starts), EndsAt: timeptr(ends),
	}); verr == nil || verr.Reason != ReasonTitleRequired {
		t.Fatalf("expected %s, got %v", ReasonTitleRequired, verr)
	}
	if verr := ValidateCreateSchedule(&CreateScheduleRequest{
		Title: "x", StartsAt: timeptr(ends), EndsAt: timeptr(starts),
	}); verr == nil || verr.Reason != ReasonInvalidTimeRange {
		t.Fatalf("expected %s, got %v", ReasonInvalidTimeRange, verr)
	}
	if verr := ValidateCreateSchedule(&CreateScheduleRequest{
		Title: "x", StartsAt: timeptr(starts), EndsAt: timeptr(ends), Lat: &bad,
	}); verr == nil || verr.Reason != ReasonInvalidCoordinate {
		t.Fatalf("expected %s, got %v", ReasonInvalidCoordinate, verr)
	}
}

func TestValidateTimeRange(t *testing.T) {
	from := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if verr := ValidateTimeRange(from, from.Add(time.Hour)); verr != nil {
		t.Fatalf("expected accept, got %v", verr)
	}
	if verr := ValidateTimeRange(from, from); verr == nil {
		t.Fatal("equal bounds must be rejected")
	}
	if verr := ValidateTimeRange(from.Add(time.Hour), from); verr == nil {
		t.Fatal("misordered bounds must be rejected")
	}
	if verr := ValidateTimeRange(time.Time{}, from); verr == nil {
		t.Fatal("missing bound must be rejected")
	}
}

func TestValidateZoneRequest_TimeWindowLimitBoundary(t *testing.T) {
	atLimit := make([]byte, utils.MaxTimeWindowLength)
	for i := range atLimit {
		atLimit[i] = 'x'
	}

	req := validCreateRequest()
	req.TimeWindow = strptr(string(atLimit))
	if _, _, verr := ValidateZoneRequest(req, true); verr != nil {
		t.Fatalf("window at the limit rejected: %v", verr)
	}

	req = validCreateRequest()
	req.TimeWindow = strptr(string(atLimit) + "x")
	_, _, verr := ValidateZoneRequest(req, true)
	if verr == nil || verr.Reason != ReasonTimeWindowTooLong {
		t.Fatalf("window over the limit accepted, got %v", verr)
	}
}
