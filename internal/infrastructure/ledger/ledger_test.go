package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransfer(t *testing.T) {
	l := New()
	require.NoError(t, l.Credit("u1", 100))

	require.NoError(t, l.Transfer(60, "u1", "treasury"))
	assert.Equal(t, int64(40), l.Balance("u1"))
	assert.Equal(t, int64(60), l.Balance("treasury"))
}

func TestTransferInsufficientFundsIsAtomic(t *testing.T) {
	l := New()
	require.NoError(t, l.Credit("u1", 10))

	err := l.Transfer(50, "u1", "treasury")
	require.Error(t, err)
	assert.Equal(t, int64(10), l.Balance("u1"))
	assert.Equal(t, int64(0), l.Balance("treasury"))
}

func TestNegativeAmountsRejected(t *testing.T) {
	l := New()
	assert.Error(t, l.Credit("u1", -1))
	assert.Error(t, l.Transfer(-1, "u1", "u2"))
}

func TestZeroTransferAlwaysSucceeds(t *testing.T) {
	l := New()
	require.NoError(t, l.Transfer(0, "u1", "treasury"))
	assert.Equal(t, int64(0), l.Balance("u1"))
}
