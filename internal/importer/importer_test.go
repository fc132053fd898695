package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLines(t *testing.T) {
	res := ParseLines("Mario Rossi\r\n\n  - Luca   Bianchi \nMario Rossi\n* Anna Verdi")

	assert.Equal(t, []string{"Mario Rossi", "Luca Bianchi", "Anna Verdi"}, res.Names)
	assert.Equal(t, []Skipped{
		{Line: 2, Reason: SkipBlank},
		{Line: 4, Value: "Mario Rossi", Reason: SkipDuplicate},
	}, res.Skipped)
}

func TestParseLinesEmpty(t *testing.T) {
	res := ParseLines("")

	assert.Empty(t, res.Names)
	assert.NotNil(t, res.Names)
	assert.Len(t, res.Skipped, 1)
}

func TestParseHTML(t *testing.T) {
	page := `
		<html><body>
		<table>
			<tr><th>Nome</th><th>Club</th></tr>
			<tr><td> Mario Rossi </td><td>Rimini</td></tr>
			<tr><td>Luca Bianchi</td><td>Cervia</td></tr>
			<tr><td></td><td>-</td></tr>
			<tr><td>Luca Bianchi</td><td>Cervia</td></tr>
		</table>
		</body></html>`

	res, err := ParseHTML(strings.NewReader(page))
	require.NoError(t, err)

	assert.Equal(t, []string{"Mario Rossi", "Luca Bianchi"}, res.Names)
	require.Len(t, res.Skipped, 3)
	assert.Equal(t, SkipHeader, res.Skipped[0].Reason)
	assert.Equal(t, SkipBlank, res.Skipped[1].Reason)
	assert.Equal(t, SkipDuplicate, res.Skipped[2].Reason)
}

func TestParseHTMLWithoutTable(t *testing.T) {
	res, err := ParseHTML(strings.NewReader("<p>nothing here</p>"))
	require.NoError(t, err)
	assert.Empty(t, res.Names)
	assert.Empty(t, res.Skipped)
}
