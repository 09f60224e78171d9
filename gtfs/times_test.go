package gtfs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/urban-transit/netbuild/gtfs"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{value: "00:00:00", want: 0},
		{value: "08:30:15", want: 30615},
		{value: "8:30:15", want: 30615},
		{value: "23:59:59", want: 86399},
		// Service past midnight stays an offset beyond 24h.
		{value: "25:15:00", want: 90900},
		{value: " 06:00:00 ", want: 21600},
		{value: "", wantErr: true},
		{value: "12:00", wantErr: true},
		{value: "12:60:00", wantErr: true},
		{value: "12:00:60", wantErr: true},
		{value: "-1:00:00", wantErr: true},
		{value: "ab:cd:ef", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := gtfs.ParseTime(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
