package nqds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nqdsheat/domain/misfit"
	"nqdsheat/internal/errors"
)

func TestParseLine_Valid(t *testing.T) {
	r, err := ParseLine("1;Mod_12;NQDS QO - PROD1;-3.5\n")
	require.NoError(t, err)
	assert.Equal(t, misfit.Record{Iteration: 1, Model: 12, Attribute: "QO", Well: "PROD1", Value: -3.5}, r)
}

func TestParseLine_IgnoresExtraFieldsAndWhitespace(t *testing.T) {
	r, err := ParseLine(" 2 ; Mod_3 ;  NQDS   BHP :  INJ1  extra; 7e-1 ;trailing;fields\r\n")
	require.NoError(t, err)
	assert.Equal(t, 2, r.Iteration)
	assert.Equal(t, 3, r.Model)
	assert.Equal(t, "BHP", r.Attribute)
	assert.Equal(t, "INJ1", r.Well)
	assert.InDelta(t, 0.7, r.Value, 1e-12)
}

func TestParseLine_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few fields", "1;Mod_1;NQDS QO - PROD1"},
		{"iteration not integer", "one;Mod_1;NQDS QO - PROD1;1.0"},
		{"negative iteration", "-1;Mod_1;NQDS QO - PROD1;1.0"},
		{"model suffix not integer", "1;Model1;NQDS QO - PROD1;1.0"},
		{"model field too short", "1;Mod_;NQDS QO - PROD1;1.0"},
		{"model zero", "1;Mod_0;NQDS QO - PROD1;1.0"},
		{"name field too short", "1;Mod_1;NQDS QO PROD1;1.0"},
		{"value not float", "1;Mod_1;NQDS QO - PROD1;abc"},
		{"value not finite", "1;Mod_1;NQDS QO - PROD1;NaN"},
		{"empty line", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLine(tt.line)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrMalformedRecord)
		})
	}
}
