package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("min-cov", 95.5)
	viper.Set("min-ident", 90.0)
	viper.Set("max-missing", 2)
	viper.Set("truncation", true)
	viper.Set("truncation-cov", 85.0)
	viper.Set("info", true)

	c := New()

	assert.Equal(t, 95.5, c.MinCoverage)
	assert.Equal(t, 90.0, c.MinIdentity)
	assert.Equal(t, 2, c.MaxMissing)
	assert.True(t, c.CheckTruncation)
	assert.Equal(t, 85.0, c.TruncationCoverage)
	assert.True(t, c.Info)
	assert.False(t, c.ReportIncomplete)
}
