package refdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDwpRegionalCentre(t *testing.T) {
	tests := []struct {
		name    string
		benefit string
		office  string
		want    string
	}{
		{name: "bracketed pip office", benefit: "PIP", office: "DWP PIP (3)", want: "Bellevale"},
		{name: "bracketed with spaces", benefit: "PIP", office: "DWP PIP ( 1 )", want: "Newcastle"},
		{name: "plain esa office", benefit: "ESA", office: "Balham DRT", want: "Balham DRT"},
		{name: "case insensitive", benefit: "esa", office: "balham drt", want: "Balham DRT"},
		{name: "unknown office", benefit: "PIP", office: "DWP PIP (9)", want: ""},
		{name: "unknown benefit", benefit: "XX", office: "Balham DRT", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DwpRegionalCentre(tt.benefit, tt.office)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegionalProcessingCentre(t *testing.T) {
	tests := []struct {
		name       string
		postcode   string
		wantName   string
		wantRegion string
	}{
		{name: "two letter area", postcode: "TS1 1ST", wantName: "Newcastle", wantRegion: "North East"},
		{name: "single letter area", postcode: "B1 1AA", wantName: "Birmingham", wantRegion: "Midlands"},
		{name: "welsh area", postcode: "CF10 1AA", wantName: "Cardiff", wantRegion: "Wales"},
		{name: "london area", postcode: "SW1A 2AA", wantName: "Leeds", wantRegion: "London"},
		{name: "lowercase input", postcode: "g1 1aa", wantName: "Glasgow", wantRegion: "Scotland"},
		{name: "unknown area falls back", postcode: "ZZ9 9ZZ", wantName: "Bradford", wantRegion: "North East"},
		{name: "empty postcode falls back", postcode: "", wantName: "Bradford", wantRegion: "North East"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, region, err := RegionalProcessingCentre(tt.postcode)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantRegion, region)
		})
	}
}
