package mssql

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schemalens/schemalens/pkg/logging"
)

func TestBuildConnectionString(t *testing.T) {
	cfg := &Config{
		Host:     "db.internal",
		Port:     1433,
		User:     "app",
		Password: "p@ss/word",
		Database: "sales",
	}

	got := buildConnectionString(cfg)

	assert.Contains(t, got, "sqlserver://")
	assert.Contains(t, got, "db.internal:1433")
	assert.Contains(t, got, "database=sales")
	assert.NotContains(t, got, "p@ss/word", "password must be url-escaped")
}

func TestConnectionStringSanitizedForLogs(t *testing.T) {
	cfg := &Config{Host: "db", Port: 1433, User: "app", Password: "s3cret", Database: "sales"}

	logged := logging.SanitizeConnectionString(buildConnectionString(cfg))
	assert.NotContains(t, logged, "s3cret")
	assert.Contains(t, logged, logging.RedactedText)
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a,b,c", []string{"a", "b", "c"}},
		{"a,,b", []string{"a", "b"}},
		{",a,", []string{"a"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitList(tt.in), "input %q", tt.in)
	}
}
