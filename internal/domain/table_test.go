package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCSVBasic(t *testing.T) {
	body := "session_key,session_name\n9158,Race\n9159,Qualifying\n"

	table, err := DecodeCSV(strings.NewReader(body))
	require.NoError(t, err)

	require.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"session_key", "session_name"}, table.Columns())

	col, ok := table.Column("SESSION_NAME")
	require.True(t, ok)
	assert.Equal(t, "Race", table.Value(0, col))
	assert.Equal(t, "Qualifying", table.Value(1, col))
}

func TestDecodeCSVBlankBodyIsEmptyTable(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty", body: ""},
		{name: "whitespace", body: "  \n\t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := DecodeCSV(strings.NewReader(tt.body))
			require.NoError(t, err)
			assert.True(t, table.Empty())
		})
	}
}

func TestDecodeCSVMalformedBodyIsError(t *testing.T) {
	body := "a,b\n1,2,3\n"

	_, err := DecodeCSV(strings.NewReader(body))
	require.Error(t, err)
}

func TestDecodeCSVHeaderOnly(t *testing.T) {
	table, err := DecodeCSV(strings.NewReader("session_key,session_name\n"))
	require.NoError(t, err)
	assert.True(t, table.Empty())
	assert.Equal(t, []string{"session_key", "session_name"}, table.Columns())
}

func TestEncodeCSVHeaderToggle(t *testing.T) {
	table := NewTable([]string{"a", "b"}, [][]string{{"1", "2"}, {"3", "4"}})

	var withHeader strings.Builder
	require.NoError(t, table.EncodeCSV(&withHeader, true))
	assert.Equal(t, "a,b\n1,2\n3,4\n", withHeader.String())

	var dataOnly strings.Builder
	require.NoError(t, table.EncodeCSV(&dataOnly, false))
	assert.Equal(t, "1,2\n3,4\n", dataOnly.String())
}

func TestSessionKeysSkipsUnparseableRows(t *testing.T) {
	table := NewTable(
		[]string{"Session_Key", "session_name"},
		[][]string{{"9158", "Race"}, {"", "Sprint"}, {"abc", "Race"}, {" 9160 ", "Race"}},
	)

	assert.Equal(t, []int{9158, 9160}, table.SessionKeys())
}

func TestSessionKeysWithoutColumn(t *testing.T) {
	table := NewTable([]string{"meeting_key"}, [][]string{{"1"}})
	assert.Nil(t, table.SessionKeys())
}

func TestSelectProducesNewTable(t *testing.T) {
	table := NewTable([]string{"a"}, [][]string{{"1"}, {"2"}, {"3"}})

	got := table.Select([]bool{true, false, true})
	require.Equal(t, 2, got.Len())

	col, ok := got.Column("a")
	require.True(t, ok)
	assert.Equal(t, "1", got.Value(0, col))
	assert.Equal(t, "3", got.Value(1, col))
	assert.Equal(t, 3, table.Len())
}

func TestValueOutOfRange(t *testing.T) {
	table := NewTable([]string{"a"}, [][]string{{"1"}})

	assert.Equal(t, "", table.Value(5, 0))
	assert.Equal(t, "", table.Value(0, 5))
	assert.Equal(t, "", table.Value(-1, -1))
}
