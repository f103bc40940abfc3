package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const campsJSON = `{
  "meta": {"name": "Camps", "trucks": 2, "truck_capacity": 4},
  "locations": [
    {"id": 0, "name": "Depot", "latitude": 0, "longitude": 0, "demand": 0},
    {"id": 1, "name": "North", "latitude": 0.1, "longitude": 0, "demand": 4},
    {"id": 2, "name": "East", "latitude": 0, "longitude": 0.1, "demand": 3}
  ],
  "roads": [
    {"from_id": 0, "to_id": 1, "travel_time_minutes": 4},
    {"from_id": 1, "to_id": 0, "travel_time_minutes": 4},
    {"from_id": 0, "to_id": 2, "travel_time_minutes": 6},
    {"from_id": 2, "to_id": 0, "travel_time_minutes": 6}
  ]
}`

const strandedJSON = `{
  "meta": {"trucks": 1, "truck_capacity": 5},
  "locations": [
    {"id": 0, "name": "Depot", "latitude": 0, "longitude": 0, "demand": 0},
    {"id": 1, "name": "Near", "latitude": 0.1, "longitude": 0, "demand": 2},
    {"id": 2, "name": "Island", "latitude": 1, "longitude": 1, "demand": 2}
  ],
  "roads": [
    {"from_id": 0, "to_id": 1, "travel_time_minutes": 1},
    {"from_id": 1, "to_id": 0, "travel_time_minutes": 1}
  ]
}`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := execute(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunText(t *testing.T) {
	path := writeFile(t, "camps.json", campsJSON)

	code, out, _ := runCLI(t, "run", path)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Camps\n")
	// North is nearest; Truck 1 fills it, Truck 2 takes East.
	assert.Contains(t, out, "Truck 1 - Run 1: Depot -> North -> Depot | Time: 8 | Load: 4")
	assert.Contains(t, out, "Truck 2 - Run 1: Depot -> East -> Depot | Time: 12 | Load: 3")
	assert.Contains(t, out, "North: 4\nEast: 3")
	assert.Contains(t, out, "Truck 1: 1 runs\nTruck 2: 1 runs")
}

func TestRunJSONAndGeoJSON(t *testing.T) {
	path := writeFile(t, "camps.json", campsJSON)

	code, out, _ := runCLI(t, "run", "--format", "json", path)
	require.Equal(t, 0, code)
	var plan struct {
		Scenario       string `json:"scenario"`
		Complete       bool   `json:"complete"`
		TotalDelivered int    `json:"total_delivered"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, "camps", plan.Scenario)
	assert.True(t, plan.Complete)
	assert.Equal(t, 7, plan.TotalDelivered)

	code, out, _ = runCLI(t, "run", "-f", "geojson", path)
	require.Equal(t, 0, code)
	assert.Contains(t, out, `"FeatureCollection"`)

	code, out, _ = runCLI(t, "run", "-f", "frames", path)
	require.Equal(t, 0, code)
	var frames []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &frames))
	assert.Len(t, frames, 3)
}

func TestRunPartialExitsTwo(t *testing.T) {
	path := writeFile(t, "stranded.json", strandedJSON)

	code, out, errOut := runCLI(t, "run", path)
	assert.Equal(t, exitPartial, code)
	assert.Contains(t, out, "Unserved:\nIsland")
	assert.Contains(t, errOut, "warning:")
	assert.Contains(t, errOut, "Island")
}

func TestRunFailures(t *testing.T) {
	bad := writeFile(t, "bad.json", `{"meta": {"trucks": 0, "truck_capacity": 5}, "locations": [], "roads": []}`)

	code, _, errOut := runCLI(t, "run", bad)
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, errOut, "meta.trucks")

	code, _, _ = runCLI(t, "run", filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, exitFailure, code)

	code, _, errOut = runCLI(t, "run", "--format", "xml", bad)
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, errOut, "unknown format")

	code, _, _ = runCLI(t, "run")
	assert.Equal(t, exitFailure, code)
}

func TestBundledScenarios(t *testing.T) {
	code, out, _ := runCLI(t, "run", filepath.Join("..", "..", "data", "scenarios", "flood.json"))
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Harbor School: 25")

	code, out, _ = runCLI(t, "run", filepath.Join("..", "..", "data", "scenarios", "landslide.json"))
	assert.Equal(t, exitPartial, code)
	assert.Contains(t, out, "Valley Farm: 6")
	assert.Contains(t, out, "Unserved:\nRidge Village")
}
