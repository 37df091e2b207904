package main

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/tarprobe"
)

func TestWriteText(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name   string
		result fileResult
		want   []string
	}{
		{
			name:   "error",
			result: fileResult{Path: "gone.tar", Error: "open gone.tar: no such file"},
			want:   []string{"gone.tar: error: open gone.tar: no such file\n"},
		},
		{
			name: "malformed keeps checksums",
			result: fileResult{
				Path: "bad.tar",
				Report: &tarprobe.Report{
					Message:   "InvalidHeaderException thrown at Entry number 2: bad checksum",
					Checksums: []tarprobe.Checksum{{Type: "CRC32", Value: "3610a686"}},
				},
			},
			want: []string{
				"bad.tar: malformed: InvalidHeaderException thrown at Entry number 2: bad checksum\n",
				"  CRC32    3610a686\n",
			},
		},
		{
			name: "well-formed compressed",
			result: fileResult{
				Path: "layer.tar.gz",
				Report: &tarprobe.Report{
					WellFormed: true,
					Version:    "ustar",
					Metadata: []tarprobe.Property{
						{Name: tarprobe.PropertyEntryCount, Value: int64(3)},
						{Name: tarprobe.PropertyCompressionType, Value: "gzip"},
						{Name: tarprobe.PropertyTOCDigest, Value: "sha256:abc"},
					},
				},
				Entries: []string{"a.txt"},
			},
			want: []string{
				"layer.tar.gz: well-formed (ustar, 3 entries, gzip)\n",
				"  TOC      sha256:abc\n",
				"  a.txt\n",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeText(&buf, tt.result))
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}
