package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "citizengw/pkg/domain-errors"
)

// TestParseFiscalCode_Invariants validates the parsing invariant:
// "canonical identifiers must be in the fixed fiscal-code format".
func TestParseFiscalCode_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseFiscalCode("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		_, err := ParseFiscalCode("AAABBB01C02D345")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects lowercase", func(t *testing.T) {
		_, err := ParseFiscalCode(strings.ToLower("AAABBB01C02D345D"))
		require.Error(t, err)
	})

	t.Run("rejects invalid month letter", func(t *testing.T) {
		_, err := ParseFiscalCode("AAABBB01Z02D345D")
		require.Error(t, err)
	})

	t.Run("accepts valid code", func(t *testing.T) {
		fc, err := ParseFiscalCode("AAABBB01C02D345D")
		require.NoError(t, err)
		assert.Equal(t, FiscalCode("AAABBB01C02D345D"), fc)
	})

	t.Run("accepts omocode digit substitution", func(t *testing.T) {
		got, err := ParseFiscalCode("AAABBBLMCL2DL4VD")
		require.NoError(t, err)
		assert.Equal(t, FiscalCode("AAABBBLMCL2DL4VD"), got)
	})
}

// FuzzParseFiscalCode verifies parsing never panics on arbitrary input and
// always returns either a valid identifier or an error, never both.
func FuzzParseFiscalCode(f *testing.F) {
	f.Add("")
	f.Add("AAABBB01C02D345D")
	f.Add("aaabbb01c02d345d")
	f.Add("'; DROP TABLE citizen;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))
	f.Add("AAABBB01C02D345D\x00suffix")

	f.Fuzz(func(t *testing.T, input string) {
		fc, err := ParseFiscalCode(input)
		if err == nil {
			if len(fc) != 16 {
				t.Fatalf("accepted identifier with length %d: %q", len(fc), fc)
			}
		} else if fc != "" {
			t.Fatalf("returned both identifier %q and error %v", fc, err)
		}
	})
}
