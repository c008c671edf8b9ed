package endpoints

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onepredict/lges-query-server/pkg/format"
)

func TestBuildMotorRows(t *testing.T) {
	t.Run("keeps the order of the motor numbers", func(t *testing.T) {
		numbers := []int{14, 3, 9, 1}
		rows, err := buildMotorRows(context.Background(), numbers, func(_ context.Context, n int) (format.Row, error) {
			// Finish out of order.
			time.Sleep(time.Duration(20-n) * time.Millisecond)
			return format.Row{"n": n}, nil
		})
		require.NoError(t, err)

		data, err := json.Marshal(rows)
		require.NoError(t, err)
		assert.Equal(t, `{"motor14":{"n":14},"motor3":{"n":3},"motor9":{"n":9},"motor1":{"n":1}}`, string(data))
	})

	t.Run("leaves out nil rows", func(t *testing.T) {
		rows, err := buildMotorRows(context.Background(), []int{1, 2, 3}, func(_ context.Context, n int) (format.Row, error) {
			if n == 2 {
				return nil, nil
			}
			return format.Row{}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"motor1", "motor3"}, rows.keys)
	})

	t.Run("returns the error of the first failing motor", func(t *testing.T) {
		_, err := buildMotorRows(context.Background(), []int{1, 2, 3, 4}, func(_ context.Context, n int) (format.Row, error) {
			if n >= 2 {
				// Later motors fail first.
				time.Sleep(time.Duration(5-n) * 5 * time.Millisecond)
				return nil, fmt.Errorf("motor %d", n)
			}
			return format.Row{}, nil
		})
		require.Error(t, err)
		assert.Equal(t, "motor 2", err.Error())
	})

	t.Run("bounds concurrent lookups", func(t *testing.T) {
		var running, peak atomic.Int32
		numbers := make([]int, 12)
		for i := range numbers {
			numbers[i] = i + 1
		}
		_, err := buildMotorRows(context.Background(), numbers, func(_ context.Context, n int) (format.Row, error) {
			cur := running.Add(1)
			for {
				old := peak.Load()
				if cur <= old || peak.CompareAndSwap(old, cur) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			running.Add(-1)
			return format.Row{}, nil
		})
		require.NoError(t, err)
		assert.LessOrEqual(t, peak.Load(), int32(motorFanout))
	})

	t.Run("empty", func(t *testing.T) {
		rows, err := buildMotorRows(context.Background(), nil, func(context.Context, int) (format.Row, error) {
			return nil, errors.New("not called")
		})
		require.NoError(t, err)
		data, _ := json.Marshal(rows)
		assert.Equal(t, `{}`, string(data))
	})
}

func TestMotorRowsSortBy(t *testing.T) {
	rows := newMotorRows()
	rows.add("motor9", format.Row{"display_num": 4})
	rows.add("motor10", format.Row{"display_num": 3})
	rows.add("motor12", format.Row{})
	rows.add("motor14", format.Row{"display_num": 1})

	rows.sortBy(byDisplayNum)
	assert.Equal(t, []string{"motor12", "motor14", "motor10", "motor9"}, rows.keys)
}
