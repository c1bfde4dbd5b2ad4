package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasProfile(t *testing.T) {
	assert.False(t, (&User{}).HasProfile())
	assert.False(t, (&User{Age: 30, Height: 175}).HasProfile())
	assert.True(t, (&User{Age: 30, Height: 175, Weight: 70}).HasProfile())
}

func TestOverweight(t *testing.T) {
	assert.False(t, (&User{Weight: 70, TargetWeight: 68}).Overweight())
	assert.False(t, (&User{Weight: 75, TargetWeight: 70}).Overweight(), "exactly 5 kg over is not flagged")
	assert.True(t, (&User{Weight: 76, TargetWeight: 70}).Overweight())
	assert.False(t, (&User{Weight: 70}).Overweight(), "no target weight set")
}
