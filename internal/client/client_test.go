package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsProtocol(t *testing.T) {
	protocols := []string{"WM_DELETE_WINDOW", "WM_TAKE_FOCUS"}
	assert.True(t, containsProtocol(protocols, "WM_DELETE_WINDOW"))
	assert.False(t, containsProtocol(protocols, "WM_PING"))
	assert.False(t, containsProtocol(nil, "WM_DELETE_WINDOW"))
}

func TestSatSub32(t *testing.T) {
	assert.Equal(t, uint32(8), satSub32(10, 2))
	assert.Equal(t, uint32(1), satSub32(2, 10))
	assert.Equal(t, uint32(1), satSub32(0, 0))
}
