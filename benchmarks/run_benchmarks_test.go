package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOutput = `goos: linux
goarch: amd64
pkg: github.com/getmockd/wirestub/pkg/wire
BenchmarkWire_Decode-8   	 1000000	      1183 ns/op	    4624 B/op	      21 allocs/op
BenchmarkWire_Encode-8   	  850000	      1402.5 ns/op	    1328 B/op	      30 allocs/op
PASS
ok  	github.com/getmockd/wirestub/pkg/wire	3.021s
`

func TestParseResults(t *testing.T) {
	results := parseResults("./pkg/wire", sampleOutput)
	require.Len(t, results, 2)
	assert.Equal(t, benchResult{Package: "./pkg/wire", Name: "BenchmarkWire_Decode", NsPerOp: 1183, BytesPerOp: 4624, AllocsPerOp: 21}, results[0])
	assert.Equal(t, "BenchmarkWire_Encode", results[1].Name)
	assert.InDelta(t, 1402.5, results[1].NsPerOp, 0.001)

	assert.Empty(t, parseResults("./pkg/wire", "FAIL\n"))
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "latest.json")
	rep := report{GoVersion: "go1.26", Results: []benchResult{{Name: "BenchmarkServer_RoundTrip", NsPerOp: 50000}}}
	require.NoError(t, writeReport(path, rep))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got report
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, rep, got)
}
