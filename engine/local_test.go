package engine

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"riskga/game"
	"riskga/player"
	"riskga/trainer/metrics"
)

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func baselines(n int) []game.Agent {
	agents := make([]game.Agent, n)
	for i := range agents {
		agents[i] = player.NewBaselinePlayer("baseline")
	}
	return agents
}

func TestLocalRun(t *testing.T) {
	agents := baselines(4)
	collector := metrics.NewCollector()
	e := NewLocal(game.StandardTopology(), agents, newTestRand(1), WithCollector(collector), WithMatchID("m1"))

	result, err := e.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, "m1", result.Match)
	require.True(t, result.HasWinner)
	require.Less(t, result.Winner, 4)
	require.Positive(t, result.Turns)
	require.LessOrEqual(t, result.Turns, MaxTurns)
	require.Len(t, result.Summaries, 4)
	require.False(t, result.EndTime.Before(result.StartTime))
	require.Equal(t, metrics.Snapshot{Started: 1, Completed: 1, Turns: result.Turns}, collector.Snapshot())
	for _, a := range agents {
		require.Nil(t, a.(*player.Player).Seat(), "agents are released after the match")
	}
}

func TestLocalTurnCap(t *testing.T) {
	collector := metrics.NewCollector()
	e := NewLocal(game.StandardTopology(), baselines(3), newTestRand(2), WithMaxTurns(5), WithCollector(collector))

	result, err := e.Run(context.Background())
	require.NoError(t, err, "reaching the turn cap is not an error")
	require.False(t, result.HasWinner)
	require.Equal(t, 5, result.Turns)
	require.Equal(t, 1, collector.Snapshot().Abandoned)
}

// cheater reinforces a territory it does not own.
type cheater struct {
	*player.Player
}

func (c cheater) Reinforce() (int, error) {
	seat := c.Seat()
	for id := 0; id < seat.Board.Size(); id++ {
		if seat.Board.Owner(id) != seat.Player {
			return id, nil
		}
	}
	return 0, nil
}

func TestLocalFailures(t *testing.T) {
	t.Run("illegal moves abort the match", func(t *testing.T) {
		agents := baselines(2)
		bad := cheater{player.NewBaselinePlayer("cheater")}
		agents[1] = bad
		collector := metrics.NewCollector()

		_, err := NewLocal(game.StandardTopology(), agents, newTestRand(3), WithCollector(collector)).Run(context.Background())
		require.ErrorIs(t, err, game.ErrInvalidMove)
		require.True(t, game.IsProtocolViolation(err))
		require.Equal(t, 1, collector.Snapshot().Failed)
		require.Nil(t, bad.Seat())
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewLocal(game.StandardTopology(), baselines(2), newTestRand(4)).Run(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("too few players", func(t *testing.T) {
		_, err := NewLocal(game.StandardTopology(), baselines(1), newTestRand(5)).Run(context.Background())
		require.Error(t, err)
	})
}
