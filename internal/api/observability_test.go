package api

import (
	"testing"
	"time"

	"rsmg/internal/game"
	"rsmg/internal/levelio"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatherValue(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue metrics
				}
			}
			switch {
			case m.GetCounter() != nil:
				return m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				return m.GetGauge().GetValue()
			}
		}
	}
	return 0
}

func TestRecordTick(t *testing.T) {
	wonBefore := gatherValue(t, "rsmg_levels_won_total", nil)
	rocketsBefore := gatherValue(t, "rsmg_shots_total", map[string]string{"weapon": game.WeaponRocketLauncher})

	RecordTick(game.TickStats{
		Duration: time.Millisecond,
		Bullets:  4,
		Enemies:  2,
		Shots:    []game.ShotEvent{{WeaponID: game.WeaponRocketLauncher}, {WeaponID: game.WeaponRocketLauncher}},
		Won:      true,
	})

	assert.Equal(t, 4.0, gatherValue(t, "rsmg_bullets_active", nil))
	assert.Equal(t, 2.0, gatherValue(t, "rsmg_enemies_alive", nil))
	assert.Equal(t, wonBefore+1, gatherValue(t, "rsmg_levels_won_total", nil))
	assert.Equal(t, rocketsBefore+2, gatherValue(t, "rsmg_shots_total", map[string]string{"weapon": game.WeaponRocketLauncher}))
}

func TestRegisterInputStats(t *testing.T) {
	reg := prometheus.NewRegistry()
	enqueued, dropped := uint64(7), uint64(2)
	require.NoError(t, RegisterInputStats(reg, func() (uint64, uint64) { return enqueued, dropped }))

	read := func() map[string]float64 {
		families, err := reg.Gather()
		require.NoError(t, err)
		out := map[string]float64{}
		for _, mf := range families {
			out[mf.GetName()] = mf.GetMetric()[0].GetCounter().GetValue()
		}
		return out
	}

	assert.Equal(t, map[string]float64{"rsmg_input_batches_total": 7, "rsmg_input_dropped_total": 2}, read())

	dropped = 5
	assert.Equal(t, 5.0, read()["rsmg_input_dropped_total"], "read on every scrape")

	assert.Error(t, RegisterInputStats(reg, func() (uint64, uint64) { return 0, 0 }), "duplicate registration")
}

func TestRegisterInputStatsWithEngine(t *testing.T) {
	catalog, err := levelio.Builtin()
	require.NoError(t, err)
	e, err := game.NewEngine(game.EngineConfig{
		Levels: catalog,
		Input:  game.InputQueueConfig{BufferSize: 1},
	})
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	require.NoError(t, RegisterInputStats(reg, e.InputStats))

	assert.True(t, e.QueueIntents([]game.Intent{game.IntentMoveRight}))
	assert.False(t, e.QueueIntents([]game.Intent{game.IntentJump}))

	families, err := reg.Gather()
	require.NoError(t, err)
	got := map[string]float64{}
	for _, mf := range families {
		got[mf.GetName()] = mf.GetMetric()[0].GetCounter().GetValue()
	}
	assert.Equal(t, 1.0, got["rsmg_input_batches_total"])
	assert.Equal(t, 1.0, got["rsmg_input_dropped_total"])
}
