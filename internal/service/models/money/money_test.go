package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in    string
		cents int64
		fails bool
	}{
		{in: "79.99", cents: 7999},
		{in: "30.00", cents: 3000},
		{in: "30", cents: 3000},
		{in: "0.5", cents: 50},
		{in: ".99", cents: 99},
		{in: "-12.34", cents: -1234},
		{in: "", fails: true},
		{in: "1.234", fails: true},
		{in: "abc", fails: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, err := Parse(tt.in)
			if tt.fails {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cents, m.Cents())
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "30.00", FromCents(3000).String())
	assert.Equal(t, "0.05", FromCents(5).String())
	assert.Equal(t, "-1.50", FromCents(-150).String())
}

func TestMul(t *testing.T) {
	assert.Equal(t, FromCents(3000), FromCents(1000).Mul(3))
}

func TestJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(FromCents(7999))
	require.NoError(t, err)
	assert.Equal(t, `"79.99"`, string(data))

	var m Money
	require.NoError(t, json.Unmarshal([]byte(`"79.99"`), &m))
	assert.Equal(t, int64(7999), m.Cents())

	require.NoError(t, json.Unmarshal([]byte(`42.5`), &m))
	assert.Equal(t, int64(4250), m.Cents())
}

func TestScan(t *testing.T) {
	var m Money

	require.NoError(t, m.Scan("79.99"))
	assert.Equal(t, int64(7999), m.Cents())

	require.NoError(t, m.Scan([]byte("10.00")))
	assert.Equal(t, int64(1000), m.Cents())

	require.NoError(t, m.Scan(float64(29.99)))
	assert.Equal(t, int64(2999), m.Cents())

	assert.Error(t, m.Scan(true))
}

func TestValue(t *testing.T) {
	v, err := FromCents(3000).Value()
	require.NoError(t, err)
	assert.Equal(t, "30.00", v)
}
