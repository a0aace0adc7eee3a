package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRows_HeaderAndDefaults(t *testing.T) {
	in := "name,parent,enabled,image\nRock,,,rock.png\nMetal,Rock,false,\n"
	rows, err := readRows(strings.NewReader(in), false)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, seedRow{Name: "Rock", Enabled: true, Image: "rock.png"}, rows[0])
	assert.Equal(t, seedRow{Name: "Metal", Parent: "Rock", Enabled: false}, rows[1])
}

func TestReadRows_Latin1(t *testing.T) {
	// "Música" en ISO-8859-1
	in := []byte("M\xfasica,,true,\n")
	rows, err := readRows(bytes.NewReader(in), true)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Música", rows[0].Name)
}

func TestReadRows_Errors(t *testing.T) {
	cases := map[string]string{
		"nombre vacío":    " ,Rock,true,\n",
		"duplicado":       "Rock,,,\nRock,,,\n",
		"propio padre":    "Rock,Rock,,\n",
		"enabled erróneo": "Rock,,quizás,\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := readRows(strings.NewReader(in), false)
			assert.Error(t, err)
		})
	}
}

func TestOrderByParent(t *testing.T) {
	rows := []seedRow{
		{Name: "Thrash", Parent: "Metal"},
		{Name: "Metal", Parent: "Rock"},
		{Name: "Rock"},
		{Name: "Jazz", Parent: "Música"}, // padre fuera del archivo
	}
	out, err := orderByParent(rows)
	require.NoError(t, err)

	pos := make(map[string]int)
	for i, r := range out {
		pos[r.Name] = i
	}
	assert.Len(t, out, 4)
	assert.Less(t, pos["Rock"], pos["Metal"])
	assert.Less(t, pos["Metal"], pos["Thrash"])
}

func TestOrderByParent_Cycle(t *testing.T) {
	_, err := orderByParent([]seedRow{{Name: "A", Parent: "B"}, {Name: "B", Parent: "A"}})
	assert.ErrorContains(t, err, "ciclo")
}

func TestWriteSQL(t *testing.T) {
	var buf bytes.Buffer
	err := writeSQL(&buf, []seedRow{
		{Name: "Rock", Enabled: true, Image: "rock.png"},
		{Name: "Rock 'n' Roll", Parent: "Rock", Enabled: false},
	})
	require.NoError(t, err)
	sql := buf.String()

	assert.Contains(t, sql, "'"+categoryID("Rock").String()+"', 'Rock', 'rock.png', true, NULL")
	assert.Contains(t, sql, "'Rock ''n'' Roll', NULL, false, (SELECT id FROM category WHERE name = 'Rock')")
	assert.Equal(t, 2, strings.Count(sql, "ON CONFLICT (name) DO NOTHING;"))
	assert.True(t, strings.HasPrefix(sql, "-- +goose Up\n"))
}

func TestCategoryID_Stable(t *testing.T) {
	assert.Equal(t, categoryID("Rock"), categoryID("Rock"))
	assert.NotEqual(t, categoryID("Rock"), categoryID("rock"))
}
