package report_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegraft/codegraft/internal/report"
)

type sampleReport struct {
	Name  string `json:"name" yaml:"name"`
	Score int    `json:"score" yaml:"score"`
}

func TestParseFormat_KnownNames(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		want report.Format
	}{
		{name: "text", want: report.FormatText},
		{name: "json", want: report.FormatJSON},
		{name: "JSON", want: report.FormatJSON},
		{name: "yaml", want: report.FormatYAML},
		{name: "binary", want: report.FormatBinary},
		{name: "plot", want: report.FormatPlot},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := report.ParseFormat(tc.name)

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFormat_UnknownName(t *testing.T) {
	t.Parallel()

	_, err := report.ParseFormat("xml")

	require.ErrorIs(t, err, report.ErrUnknownFormat)
}

func TestWriteJSON_Indented(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := report.WriteJSON(sampleReport{Name: "quality", Score: 90}, &buf)

	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"quality\",\n  \"score\": 90\n}\n", buf.String())
}

func TestWriteYAML_Document(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := report.WriteYAML(sampleReport{Name: "quality", Score: 90}, &buf)

	require.NoError(t, err)
	assert.Equal(t, "name: quality\nscore: 90\n", buf.String())
}

func TestWrite_DispatchesBinary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := report.Write(sampleReport{Name: "quality", Score: 90}, report.FormatBinary, &buf)
	require.NoError(t, err)

	var decoded sampleReport

	require.NoError(t, report.DecodeEnvelope(&buf, &decoded))
	assert.Equal(t, sampleReport{Name: "quality", Score: 90}, decoded)
}

func TestWrite_TextIsNotAMachineFormat(t *testing.T) {
	t.Parallel()

	err := report.Write(sampleReport{}, report.FormatText, &bytes.Buffer{})

	require.ErrorIs(t, err, report.ErrUnknownFormat)
}
