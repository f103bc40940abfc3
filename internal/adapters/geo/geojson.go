package geo

import (
	"relief-dispatch-service/internal/domain"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Feature kinds written to the "kind" property.
const (
	KindLocation = "location"
	KindRoad     = "road"
	KindRun      = "run"
)

// NetworkFeatures renders the road network and every planned run as a
// FeatureCollection. Blocked roads and roads touching unknown locations
// are left out.
func NetworkFeatures(report domain.DeliveryReport, roads []domain.Road) *geojson.FeatureCollection {
	dir := report.Directory()
	fc := geojson.NewFeatureCollection()

	for _, id := range dir.IDs() {
		loc, _ := dir.Lookup(id)
		f := geojson.NewFeature(loc.Coordinates().Point())
		f.ID = loc.ID
		f.Properties["kind"] = KindLocation
		f.Properties["id"] = loc.ID
		f.Properties["name"] = loc.Name
		f.Properties["demand"] = loc.Demand
		f.Properties["delivered"] = report.Delivered[loc.ID]
		f.Properties["depot"] = loc.ID == report.Depot
		fc.Append(f)
	}

	for _, r := range roads {
		if r.Blocked {
			continue
		}
		line, ok := lineThrough(dir, []int{r.From, r.To})
		if !ok {
			continue
		}
		f := geojson.NewFeature(line)
		f.Properties["kind"] = KindRoad
		f.Properties["from_id"] = r.From
		f.Properties["to_id"] = r.To
		f.Properties["travel_time_minutes"] = r.TravelTime
		fc.Append(f)
	}

	for _, run := range report.Runs() {
		line, ok := lineThrough(dir, run.Path)
		if !ok {
			continue
		}
		f := geojson.NewFeature(line)
		f.Properties["kind"] = KindRun
		f.Properties["vehicle"] = run.Vehicle
		f.Properties["run"] = run.Number
		f.Properties["total_time"] = run.TotalTime
		f.Properties["load"] = run.Load
		f.Properties["stops"] = dir.Names(run.Stops)
		fc.Append(f)
	}

	return fc
}

func lineThrough(dir domain.Directory, ids []int) (orb.LineString, bool) {
	if len(ids) < 2 {
		return nil, false
	}
	line := make(orb.LineString, 0, len(ids))
	for _, id := range ids {
		loc, ok := dir.Lookup(id)
		if !ok {
			return nil, false
		}
		line = append(line, loc.Coordinates().Point())
	}
	return line, true
}
