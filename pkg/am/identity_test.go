package am

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateIdentity(t *testing.T) {
	require.NoError(t, ValidateIdentity(Identity{Name: "Ada", Email: "ada@example.com"}))
	require.Error(t, ValidateIdentity(Identity{Name: "", Email: "ada@example.com"}))
	require.Error(t, ValidateIdentity(Identity{Name: "Ada", Email: ""}))
	require.Error(t, ValidateIdentity(Identity{Name: "Ada", Email: "ada<x>@example.com"}))
}
