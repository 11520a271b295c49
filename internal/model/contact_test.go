package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactUnmarshal(t *testing.T) {
	t.Run("string balance", func(t *testing.T) {
		var c Contact
		require.NoError(t, json.Unmarshal([]byte(`{"address":"12 Le Loi","balance":"$1,200.50"}`), &c))
		assert.Equal(t, "12 Le Loi", c.Address)
		assert.Equal(t, "$1,200.50", c.Balance)
		assert.Empty(t, c.Extra)
	})

	t.Run("numeric balance keeps its text", func(t *testing.T) {
		var c Contact
		require.NoError(t, json.Unmarshal([]byte(`{"address":"x","balance":1200.5}`), &c))
		assert.Equal(t, "1200.5", c.Balance)
	})

	t.Run("null balance is empty", func(t *testing.T) {
		var c Contact
		require.NoError(t, json.Unmarshal([]byte(`{"address":"x","balance":null}`), &c))
		assert.Equal(t, "", c.Balance)
	})

	t.Run("extra fields are kept", func(t *testing.T) {
		var c Contact
		require.NoError(t, json.Unmarshal([]byte(`{"address":"x","balance":"1","email":"a@b.c","age":30}`), &c))
		assert.Equal(t, []string{"age", "email"}, c.ExtraKeys())
	})

	t.Run("non-object is an error", func(t *testing.T) {
		var c Contact
		require.Error(t, json.Unmarshal([]byte(`[1,2]`), &c))
	})
}

func TestContactRoundTrip(t *testing.T) {
	input := `{"address":"x","age":30,"balance":"1","email":"a@b.c"}`

	var c Contact
	require.NoError(t, json.Unmarshal([]byte(input), &c))

	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
}

func TestContactBalanceTokenRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"number", `{"address":"x","balance":1200.5}`},
		{"integer", `{"address":"x","balance":7}`},
		{"null", `{"address":"x","balance":null}`},
		{"absent", `{"address":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Contact
			require.NoError(t, json.Unmarshal([]byte(tt.input), &c))
			out, err := json.Marshal(c)
			require.NoError(t, err)
			assert.JSONEq(t, tt.input, string(out))
		})
	}
}

func TestContactChangedBalanceIsWrittenAsText(t *testing.T) {
	var c Contact
	require.NoError(t, json.Unmarshal([]byte(`{"address":"x","balance":1200.5}`), &c))
	c.Balance = "99"

	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"address":"x","balance":"99"}`, string(out))
}
