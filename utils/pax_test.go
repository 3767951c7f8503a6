package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractPax(t *testing.T) {
	require.Equal(t, 2, ExtractPax("Doble 2 pax"))
	require.Equal(t, 4, ExtractPax("Familiar 4PAX vista mar"))
	require.Equal(t, 10, ExtractPax("Dormitorio 10 pax"))
	// Không có token thì mặc định 1
	require.Equal(t, 1, ExtractPax("Suite Presidencial"))
	require.Equal(t, 1, ExtractPax(""))
}
