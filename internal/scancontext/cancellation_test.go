package scancontext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilTokenIsNeverCancelled(t *testing.T) {
	var token *CancellationToken
	assert.False(t, token.IsCancelled())
}

func TestCancelIsIdempotent(t *testing.T) {
	token := NewCancellationToken()
	token.Cancel()
	token.Cancel()
	assert.True(t, token.IsCancelled())
}

func TestResetClearsCancellation(t *testing.T) {
	token := NewCancellationToken()
	token.Cancel()
	token.Reset()
	assert.False(t, token.IsCancelled())
}
