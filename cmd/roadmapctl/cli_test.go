package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/roadmap-aggregate-go/config"
	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
)

type harness struct {
	t          *testing.T
	dir        string
	configPath string
}

func givenHarness(t *testing.T) harness {
	t.Helper()

	for _, key := range []string{config.EnvStorageDriver, config.EnvPostgresDSN, config.EnvRedisAddr, config.EnvLogLevel} {
		t.Setenv(key, "")
	}

	dir := t.TempDir()
	configPath := filepath.Join(dir, "roadmap.yaml")
	content := "storage:\n  driver: memory\n  snapshot_file: " + filepath.Join(dir, "state.json") + "\n" +
		"log:\n  level: error\n" +
		"metrics:\n  enabled: true\n  textfile: " + filepath.Join(dir, "metrics.prom") + "\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	return harness{t: t, dir: dir, configPath: configPath}
}

func (h harness) run(args ...string) (string, error) {
	h.t.Helper()

	var stdout, stderr bytes.Buffer
	err := execute(append([]string{"--config", h.configPath}, args...), &stdout, &stderr)

	return stdout.String(), err
}

func (h harness) mustResult(args ...string) resultView {
	h.t.Helper()

	out, err := h.run(append([]string{"-o", "json"}, args...)...)
	require.NoError(h.t, err)

	view := resultView{}
	require.NoError(h.t, jsoniter.Unmarshal([]byte(out), &view), out)

	return view
}

func Test_CLI_BuildsRoadmapAcrossRuns(t *testing.T) {
	// arrange
	h := givenHarness(t)

	// act
	created := h.mustResult("create", "--title", "Product", "--owner", "alice")
	timeframe := h.mustResult("timeframe", "add", created.RoadmapID, "--name", "Q1", "--order", "0")
	initiative := h.mustResult("initiative", "add", created.RoadmapID, timeframe.CreatedID, "--title", "Auth", "--priority", "high")
	item := h.mustResult("item", "add", created.RoadmapID, timeframe.CreatedID, initiative.CreatedID, "--title", "Login")
	statusChanged := h.mustResult("item", "update", created.RoadmapID, timeframe.CreatedID, initiative.CreatedID, item.CreatedID,
		"--status", "in_progress")

	// assert
	assert.Equal(t, []string{roadmap.RoadmapCreatedEventType}, created.Events)
	assert.Equal(t, []string{roadmap.TimeframeAddedEventType}, timeframe.Events)
	assert.Equal(t, []string{roadmap.InitiativeAddedEventType}, initiative.Events)
	assert.Equal(t, []string{roadmap.ItemAddedEventType}, item.Events)
	assert.Equal(t, []string{roadmap.ItemStatusChangedEventType}, statusChanged.Events)
	assert.Equal(t, uint64(5), statusChanged.Revision)

	out, err := h.run("-o", "json", "show", created.RoadmapID)
	require.NoError(t, err)

	view := roadmapView{}
	require.NoError(t, jsoniter.Unmarshal([]byte(out), &view))
	assert.Equal(t, "Product", view.Roadmap.Title)
	assert.Equal(t, 1, view.Stats.Items)
	assert.Equal(t, 1, view.Stats.ItemsByStatus["in-progress"])
	assert.Equal(t, 1, view.Stats.InitiativesByLevel["high"])

	text, err := h.run("show", created.RoadmapID)
	require.NoError(t, err)
	assert.Contains(t, text, "Auth ("+initiative.CreatedID+") feature/high")
	assert.Contains(t, text, "Login ("+item.CreatedID+") in-progress")

	assert.FileExists(t, filepath.Join(h.dir, "metrics.prom"))
}

func Test_CLI_MoveInitiativeAndRemoveTimeframe(t *testing.T) {
	// arrange
	h := givenHarness(t)
	created := h.mustResult("create", "--title", "Product")
	q1 := h.mustResult("timeframe", "add", created.RoadmapID, "--name", "Q1", "--order", "0")
	q2 := h.mustResult("timeframe", "add", created.RoadmapID, "--name", "Q2", "--order", "1")
	initiative := h.mustResult("initiative", "add", created.RoadmapID, q1.CreatedID, "--title", "Auth")

	// act
	moved := h.mustResult("initiative", "move", created.RoadmapID, initiative.CreatedID, "--from", q1.CreatedID, "--to", q2.CreatedID)
	removed := h.mustResult("timeframe", "remove", created.RoadmapID, q1.CreatedID)

	// assert
	assert.Contains(t, moved.Events, roadmap.InitiativeMovedEventType)
	assert.Empty(t, removed.Events)

	out, err := h.run("-o", "json", "show", created.RoadmapID)
	require.NoError(t, err)

	view := roadmapView{}
	require.NoError(t, jsoniter.Unmarshal([]byte(out), &view))
	require.Len(t, view.Roadmap.Timeframes, 1)
	assert.Equal(t, "Q2", view.Roadmap.Timeframes[0].Name)
	require.Len(t, view.Roadmap.Timeframes[0].Initiatives, 1)
	assert.Equal(t, "medium", view.Roadmap.Timeframes[0].Initiatives[0].Priority)
}

func Test_CLI_CreateFromFile(t *testing.T) {
	// arrange
	h := givenHarness(t)
	file := filepath.Join(h.dir, "product.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
title: Product
owner: alice
timeframes:
  - name: Q1
    order: 0
    initiatives:
      - title: Auth
        category: tech-debt
        priority: high
        items:
          - title: Login
            status: blocked
`), 0o600))

	// act
	created := h.mustResult("create", "--file", file)

	// assert
	assert.Equal(t, []string{
		roadmap.RoadmapCreatedEventType,
	}, created.Events[:1])

	out, err := h.run("-o", "yaml", "show", created.RoadmapID)
	require.NoError(t, err)
	assert.Contains(t, out, "category: tech-debt")
	assert.Contains(t, out, "status: blocked")
}

func Test_CLI_ValidateAndRebalance(t *testing.T) {
	// arrange
	h := givenHarness(t)
	created := h.mustResult("create", "--title", "Product")
	q1 := h.mustResult("timeframe", "add", created.RoadmapID, "--name", "Q1")

	for _, title := range []string{"A", "B", "C", "D", "E", "F"} {
		h.mustResult("initiative", "add", created.RoadmapID, q1.CreatedID, "--title", title, "--priority", "high")
	}

	// act
	before, err := h.run("-o", "json", "validate", created.RoadmapID)
	require.NoError(t, err)

	rebalanced := h.mustResult("rebalance", created.RoadmapID)

	after, err := h.run("-o", "json", "validate", created.RoadmapID)
	require.NoError(t, err)

	// assert
	beforeView := validationView{}
	require.NoError(t, jsoniter.Unmarshal([]byte(before), &beforeView))
	assert.False(t, beforeView.Valid)

	assert.Equal(t, []string{roadmap.InitiativePriorityChangedEventType}, rebalanced.Events)

	afterView := validationView{}
	require.NoError(t, jsoniter.Unmarshal([]byte(after), &afterView))
	assert.True(t, afterView.Valid)
}

func Test_CLI_Notes(t *testing.T) {
	// arrange
	h := givenHarness(t)

	_, err := h.run("note", "add", "--title", "Caching", "--category", "infrastructure", "--priority", "low", "--timeline", "Q3")
	require.NoError(t, err)
	_, err = h.run("note", "add", "--title", "Onboarding")
	require.NoError(t, err)

	// act
	out, err := h.run("-o", "json", "note", "list", "--category", "infrastructure")

	// assert
	require.NoError(t, err)

	var notes []roadmap.NoteRecord
	require.NoError(t, jsoniter.Unmarshal([]byte(out), &notes))
	require.Len(t, notes, 1)
	assert.Equal(t, "Caching", notes[0].Title)

	_, err = h.run("note", "delete", notes[0].ID)
	require.NoError(t, err)

	_, err = h.run("note", "delete", notes[0].ID)
	assert.ErrorIs(t, err, errNotFound)
}

func Test_CLI_Errors(t *testing.T) {
	h := givenHarness(t)

	_, err := h.run("show", "missing")
	assert.ErrorIs(t, err, errNotFound)

	_, err = h.run("timeframe", "add", "missing", "--name", "Q1")
	assert.ErrorIs(t, err, errNotFound)

	_, err = h.run("-o", "xml", "list")
	assert.ErrorIs(t, err, errUnknownOutput)

	created := h.mustResult("create", "--title", "Product")
	_, err = h.run("initiative", "add", created.RoadmapID, "missing", "--title", "Auth")
	assert.ErrorIs(t, err, roadmap.ErrNotFound)

	_, err = h.run("initiative", "add", created.RoadmapID, "missing", "--title", "Auth", "--priority", "urgent")
	assert.ErrorIs(t, err, roadmap.ErrUnknownEnumValue)
}
