package main

import (
	"bytes"
	"testing"

	"skillshare/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		args    []string
		cmd     string
		version int
		wantErr bool
	}{
		{args: []string{"up"}, cmd: "up"},
		{args: []string{" STATUS "}, cmd: "status"},
		{args: []string{"auto"}, cmd: "auto"},
		{args: []string{"down", "1"}, cmd: "down", version: 1},
		{args: nil, wantErr: true},
		{args: []string{"down"}, wantErr: true},
		{args: []string{"down", "x"}, wantErr: true},
		{args: []string{"down", "0"}, wantErr: true},
		{args: []string{"sideways"}, wantErr: true},
	}
	for _, tt := range tests {
		cmd, version, err := parseCommand(tt.args)
		if tt.wantErr {
			assert.ErrorIs(t, err, errUsage, tt.args)
			continue
		}
		require.NoError(t, err, tt.args)
		assert.Equal(t, tt.cmd, cmd)
		assert.Equal(t, tt.version, version)
	}
}

func TestPrintStatus_NamesEmbeddedMigrations(t *testing.T) {
	all, err := database.GetMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, all)

	var out bytes.Buffer
	printStatus(&out, &database.SchemaStatus{Mode: "sql", Environment: "test", WillRunSQL: true}, all)
	assert.Contains(t, out.String(), "mode=sql env=test run_sql=true run_auto=false")
	assert.Contains(t, out.String(), "pending  000001_init")

	out.Reset()
	printStatus(&out, &database.SchemaStatus{Mode: "sql", AppliedVersions: []int{1}}, all)
	assert.Contains(t, out.String(), "applied  000001_init")
}

func TestUsageNamesBinary(t *testing.T) {
	assert.Contains(t, usageText, "skillshare-migrate")
}
