package github

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func emitterRule() Record {
	return Record{
		"name":        "default-branch-protection",
		"enforcement": "active",
		"target":      "branch",
		"bypass_actors": []any{
			map[string]any{"actor_id": 7, "actor_type": "Team", "bypass_mode": "always"},
		},
		"conditions": map[string]any{
			"ref_name": map[string]any{
				"include": []any{"~DEFAULT_BRANCH"},
				"exclude": []any{},
			},
		},
		"rules": []any{
			map[string]any{"type": "deletion"},
		},
	}
}

func TestEmitReport(t *testing.T) {
	var buf bytes.Buffer
	e := &Emitter{Indent: 2}
	require.NoError(t, e.Emit(&buf, []Record{emitterRule()}))

	want := `[
  {
    "name": "default-branch-protection",
    "enforcement": "active",
    "target": "branch",
    "bypass_actors": [
      {"actor_id":7,"actor_type":"Team","bypass_mode":"always"}
    ],
    "conditions": {
      "ref_name": {
        "exclude": [],
        "include": [
          "~DEFAULT_BRANCH"
        ]
      }
    },
    "rules": [
      {"type":"deletion"}
    ]
  }
]
`
	assert.Equal(t, want, buf.String())
}

func TestEmitOutputIsValidJSON(t *testing.T) {
	var buf bytes.Buffer
	e := &Emitter{Indent: 4}
	require.NoError(t, e.Emit(&buf, []Record{emitterRule(), emitterRule()}))

	var parsed []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	assert.Len(t, parsed, 2)
	assert.Equal(t, "default-branch-protection", parsed[0]["name"])
}

func TestEmitRoundTripsThroughLoader(t *testing.T) {
	var buf bytes.Buffer
	e := &Emitter{Indent: 2}
	require.NoError(t, e.Emit(&buf, []Record{emitterRule()}))

	var rules []Record
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &rules))
	require.Len(t, rules, 1)
	assert.Equal(t, "default-branch-protection", rules[0].Name())
}

func TestEmitEmpty(t *testing.T) {
	var buf bytes.Buffer
	e := &Emitter{Indent: 2}
	require.NoError(t, e.Emit(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestEmitIndentBounds(t *testing.T) {
	var buf bytes.Buffer
	for _, width := range []int{0, -1, 9} {
		e := &Emitter{Indent: width}
		assert.Error(t, e.Emit(&buf, nil), "indent %d", width)
	}
	for _, width := range []int{1, 8} {
		e := &Emitter{Indent: width}
		assert.NoError(t, e.Emit(&buf, nil), "indent %d", width)
	}
}

func TestEmitIndentWidth(t *testing.T) {
	var buf bytes.Buffer
	e := &Emitter{Indent: 4}
	require.NoError(t, e.Emit(&buf, []Record{{"name": "r", "enforcement": "active"}}))

	lines := strings.Split(buf.String(), "\n")
	assert.True(t, strings.HasPrefix(lines[1], "    {"))
	assert.True(t, strings.HasPrefix(lines[2], `        "name"`))
}

func TestEmitKeyOrder(t *testing.T) {
	rule := emitterRule()
	rule["id"] = float64(12)
	rule["source"] = "acme/widgets"
	rule["source_type"] = "Repository"

	var buf bytes.Buffer
	e := &Emitter{Indent: 2}
	require.NoError(t, e.Emit(&buf, []Record{rule}))

	out := buf.String()
	order := []string{`"id"`, `"source"`, `"source_type"`, `"name"`, `"enforcement"`, `"target"`, `"bypass_actors"`, `"conditions"`, `"rules"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(out, key+": ")
		require.NotEqual(t, -1, idx, "missing key %s", key)
		assert.Greater(t, idx, last, "key %s out of order", key)
		last = idx
	}
}

func TestEmitMapActors(t *testing.T) {
	var buf bytes.Buffer
	rule := emitterRule()
	rule["bypass_actors"] = []any{
		map[string]any{"actor_id": float64(1), "actor_type": "Team", "bypass_mode": "always"},
	}
	e := &Emitter{Indent: 2, MapActors: true, Resolver: NewResolver(teamStub(), "acme", nil)}
	require.NoError(t, e.Emit(&buf, []Record{rule}))

	assert.Contains(t, buf.String(), `"actor_name":"platform"`)
}

func TestEmitMapActorsToleratesUnknownID(t *testing.T) {
	var buf bytes.Buffer
	rule := emitterRule()
	rule["bypass_actors"] = []any{
		map[string]any{"actor_id": float64(999), "actor_type": "Team", "bypass_mode": "always"},
	}
	e := &Emitter{Indent: 2, MapActors: true, Resolver: NewResolver(teamStub(), "acme", nil)}
	require.NoError(t, e.Emit(&buf, []Record{rule}))

	assert.NotContains(t, buf.String(), "actor_name")
}

func TestEmitVerbose(t *testing.T) {
	rule := emitterRule()
	rule["created_at"] = "2024-01-01T00:00:00Z"
	rule["updated_at"] = "2024-06-01T00:00:00Z"
	rule["_links"] = map[string]any{
		"self": map[string]any{"href": "https://api.github.com/repos/acme/widgets/rulesets/12"},
	}

	var buf bytes.Buffer
	e := &Emitter{Indent: 2, Verbose: true}
	require.NoError(t, e.Emit(&buf, []Record{rule}))

	out := buf.String()
	assert.Contains(t, out, `"created_at": "2024-01-01T00:00:00Z"`)
	assert.Contains(t, out, `"link": "https://api.github.com/repos/acme/widgets/rulesets/12"`)
	assert.NotContains(t, out, "_links")
	assert.Greater(t, strings.Index(out, `"created_at"`), strings.Index(out, `"rules"`))
}

func TestEmitVerboseOffStripsProvenance(t *testing.T) {
	rule := emitterRule()
	rule["created_at"] = "2024-01-01T00:00:00Z"
	rule["_links"] = map[string]any{"self": map[string]any{"href": "https://example.test"}}

	var buf bytes.Buffer
	e := &Emitter{Indent: 2}
	require.NoError(t, e.Emit(&buf, []Record{rule}))

	out := buf.String()
	assert.NotContains(t, out, "created_at")
	assert.NotContains(t, out, "link")
}

func TestEmitStickyWriteError(t *testing.T) {
	e := &Emitter{Indent: 2}
	err := e.Emit(failWriter{}, []Record{emitterRule()})
	assert.Error(t, err)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, assert.AnError
}
