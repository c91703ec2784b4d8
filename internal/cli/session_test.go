package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/khshaikh19/sortviz/pkg/domain"
	"github.com/khshaikh19/sortviz/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var instant = []string{"delay.min=0s", "delay.max=0s"}

func TestRunSession_JSON(t *testing.T) {
	var out bytes.Buffer
	err := RunSession(t.Context(), RunOptions{
		Overrides: instant,
		Algorithm: "bubble",
		Values:    []int{5, 3, 8, 1},
		JSON:      true,
	}, nil, &out)
	require.NoError(t, err)

	type line struct {
		Type   string         `json:"type"`
		Result *domain.Result `json:"result"`
		Final  []int          `json:"final"`
	}
	var lines []line
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var l line
		require.NoError(t, json.Unmarshal(sc.Bytes(), &l), sc.Text())
		lines = append(lines, l)
	}
	require.GreaterOrEqual(t, len(lines), 3)

	assert.Equal(t, runner.RecordStart, lines[0].Type)
	last := lines[len(lines)-1]
	assert.Equal(t, runner.RecordEnd, last.Type)
	assert.Equal(t, []int{1, 3, 5, 8}, last.Final)
	require.NotNil(t, last.Result)
	assert.Equal(t, domain.OutcomeCompleted, last.Result.Outcome)
	assert.Equal(t, uint64(len(lines)-2), last.Result.Events)
}

func TestRunSession_TextSummary(t *testing.T) {
	var out bytes.Buffer
	err := RunSession(t.Context(), RunOptions{
		Overrides: instant,
		Algorithm: "merge",
		Size:      20,
		Seed:      7,
	}, nil, &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Merge Sort: completed after")
	assert.Contains(t, text, "## Merge Sort: completed")
	assert.Contains(t, text, "| overwrite |")
}

func TestRunSession_Quiet(t *testing.T) {
	var out bytes.Buffer
	err := RunSession(t.Context(), RunOptions{
		Overrides: instant,
		Values:    []int{2, 1},
		Quiet:     true,
	}, nil, &out)
	require.NoError(t, err)

	assert.NotContains(t, out.String(), "##")
	assert.Contains(t, out.String(), "Bubble Sort: completed")
}

func TestRunSession_CancelledContextIsNotAnError(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	var out bytes.Buffer
	err := RunSession(ctx, RunOptions{
		Overrides: instant,
		Values:    []int{3, 2, 1},
		JSON:      true,
	}, nil, &out)
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestRunSession_Errors(t *testing.T) {
	t.Run("Unknown Algorithm", func(t *testing.T) {
		err := RunSession(t.Context(), RunOptions{Algorithm: "bogo"}, nil, &bytes.Buffer{})
		assert.ErrorIs(t, err, domain.ErrUnknownAlgorithm)
	})

	t.Run("Bad Override", func(t *testing.T) {
		err := RunSession(t.Context(), RunOptions{Overrides: []string{"nokey"}}, nil, &bytes.Buffer{})
		assert.Error(t, err)
	})

	t.Run("Speed Out Of Range", func(t *testing.T) {
		err := RunSession(t.Context(), RunOptions{Speed: 1000}, nil, &bytes.Buffer{})
		assert.ErrorContains(t, err, "speed 1000")
	})

	t.Run("Redis Unreachable", func(t *testing.T) {
		err := RunSession(t.Context(), RunOptions{
			Overrides: instant,
			RedisAddr: "127.0.0.1:1",
			Quiet:     true,
		}, nil, &bytes.Buffer{})
		assert.ErrorContains(t, err, "unreachable")
	})
}

func TestRunSession_RedisLock(t *testing.T) {
	mr := miniredis.RunT(t)

	t.Run("Free Lock", func(t *testing.T) {
		var out bytes.Buffer
		err := RunSession(t.Context(), RunOptions{
			Overrides: instant,
			Values:    []int{4, 2, 3},
			JSON:      true,
			RedisAddr: mr.Addr(),
		}, nil, &out)
		require.NoError(t, err)
		assert.False(t, mr.Exists(redisKeyPrefix+"lock:"+DefaultLockKey), "lock released after the run")
	})

	t.Run("Held Lock", func(t *testing.T) {
		require.NoError(t, mr.Set(redisKeyPrefix+"lock:shared", "someone-else"))
		defer mr.Del(redisKeyPrefix + "lock:shared")

		err := RunSession(t.Context(), RunOptions{
			Overrides: instant,
			Values:    []int{4, 2, 3},
			JSON:      true,
			RedisAddr: mr.Addr(),
			LockKey:   "shared",
		}, nil, &bytes.Buffer{})
		assert.ErrorIs(t, err, domain.ErrAlreadyRunning)
		assert.ErrorIs(t, err, domain.ErrLockHeld)
	})
}

func TestRunSession_StatusServer(t *testing.T) {
	var out bytes.Buffer
	err := RunSession(t.Context(), RunOptions{
		Overrides:   instant,
		Values:      []int{9, 8, 7},
		JSON:        true,
		MetricsAddr: "127.0.0.1:0",
	}, nil, &out)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out.String()), "}"))
}
