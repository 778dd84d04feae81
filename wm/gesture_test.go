package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuppressorRefCounting(t *testing.T) {
	host := &fakeHost{}
	s := NewSuppressor(host)

	s.Acquire()
	s.Acquire()
	assert.True(t, s.Active())
	assert.Equal(t, []bool{true}, host.toggles, "only the first acquire toggles the host")

	s.Release()
	assert.True(t, s.Active())
	assert.Equal(t, []bool{true}, host.toggles, "inner release must not restore gestures")

	s.Release()
	assert.False(t, s.Active())
	assert.Equal(t, []bool{true, false}, host.toggles)
}

func TestSuppressorOverRelease(t *testing.T) {
	host := &fakeHost{}
	s := NewSuppressor(host)

	s.Release()
	assert.Empty(t, host.toggles)

	s.Acquire()
	s.Release()
	s.Release()
	assert.Equal(t, []bool{true, false}, host.toggles)
}

func TestSuppressorNilHost(t *testing.T) {
	s := NewSuppressor(nil)
	s.Acquire()
	assert.True(t, s.Active())
	s.Release()
	assert.False(t, s.Active())
}
