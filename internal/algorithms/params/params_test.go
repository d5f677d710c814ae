package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt(t *testing.T) {
	m := map[string]interface{}{"a": 3, "b": 5.0, "c": 2.5, "d": "x", "e": int64(9), "f": uint8(4)}

	tests := []struct {
		key     string
		want    int
		wantErr bool
	}{
		{"a", 3, false},
		{"b", 5, false},
		{"c", 0, true},
		{"d", 0, true},
		{"e", 9, false},
		{"f", 4, false},
		{"missing", 11, false},
	}
	for _, tt := range tests {
		got, err := Int(m, tt.key, 11)
		if tt.wantErr {
			assert.Error(t, err, tt.key)
			continue
		}
		require.NoError(t, err, tt.key)
		assert.Equal(t, tt.want, got, tt.key)
	}
}

func TestFloatAndLevel(t *testing.T) {
	m := map[string]interface{}{"s": 2, "f": float32(0.5), "bad": true, "lvl": 256.0, "neg": -1}

	v, err := Float(m, "s", 0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	v, err = Float(m, "f", 0)
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)

	_, err = Float(m, "bad", 0)
	assert.Error(t, err)

	v, err = Float(nil, "s", 1.4)
	require.NoError(t, err)
	assert.Equal(t, 1.4, v)

	_, err = Level(m, "lvl", 0)
	assert.Error(t, err)
	_, err = Level(m, "neg", 0)
	assert.Error(t, err)

	l, err := Level(m, "missing", 80)
	require.NoError(t, err)
	assert.Equal(t, uint8(80), l)
}
