package logger

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestSetupLevels(t *testing.T) {
	prev := log.GetLevel()
	t.Cleanup(func() { log.SetLevel(prev) })

	Setup(true)
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	assert.Equal(t, log.DebugLevel, New("test").GetLevel())

	Setup(false)
	assert.Equal(t, log.WarnLevel, log.GetLevel())
	assert.Equal(t, "srv", New("srv").GetPrefix())
}
