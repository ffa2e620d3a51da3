package mnemonic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveAccount_AddressMatchesAuthKey(t *testing.T) {
	m, err := Parse(testPhrase)
	require.NoError(t, err)

	acc, err := DeriveAccount(m, "", 0)
	require.NoError(t, err)

	authKey := acc.AuthKey()
	require.Equal(t, authKey.Bytes(), acc.Address().Bytes())
}

func TestDeriveAccount_DifferentIndicesDifferentAddresses(t *testing.T) {
	m, err := Parse(testPhrase)
	require.NoError(t, err)

	acc0, err := DeriveAccount(m, "", 0)
	require.NoError(t, err)
	acc1, err := DeriveAccount(m, "", 1)
	require.NoError(t, err)

	require.NotEqual(t, acc0.Address().Bytes(), acc1.Address().Bytes())
}
