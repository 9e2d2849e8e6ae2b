package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain(t *testing.T) {
	t.Helper()
	SetNoColor(true)
	t.Cleanup(func() { SetNoColor(false) })
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestTable_Render(t *testing.T) {
	plain(t)

	tbl := NewTable("Day", "Tasks", "Done")
	tbl.AddRow("Mon 03-11", "4", "3")
	tbl.AddRow("Tue 03-12", "12", "12")

	got := lines(tbl.Render())
	require.Len(t, got, 4, "header, rule and two rows")
	assert.Equal(t, "Day        Tasks  Done", got[0])
	assert.Equal(t, "─────────  ─────  ────", got[1])
	assert.Equal(t, "Mon 03-11  4      3   ", got[2])
	assert.Equal(t, 2, tbl.Len())
}

func TestTable_AlignRight(t *testing.T) {
	plain(t)

	tbl := NewTable("Habit", "Best").AlignRight(1)
	tbl.AddRow("Read", "7")
	tbl.AddRow("Run", "120")

	got := lines(tbl.Render())
	require.Len(t, got, 4)
	assert.Equal(t, "Read      7", got[2])
	assert.Equal(t, "Run     120", got[3])
}

func TestTable_StyledCellsAlign(t *testing.T) {
	SetNoColor(false)

	tbl := NewTable("Title", "ID")
	tbl.AddRow(StyleSuccess.Render("done"), "1")
	tbl.AddRow("open task", "2")

	for _, line := range lines(tbl.Render())[2:] {
		assert.Equal(t, len("open task")+2+len("ID"), lipgloss.Width(line), line)
	}
}

func TestTable_RowShape(t *testing.T) {
	plain(t)

	tbl := NewTable("A", "B")
	tbl.AddRow("only")
	tbl.AddRow("x", "y", "dropped")

	out := tbl.Render()
	assert.NotContains(t, out, "dropped")
	assert.Equal(t, "only   ", lines(out)[2])
}

func TestTable_Empty(t *testing.T) {
	assert.Empty(t, NewTable().Render())

	plain(t)
	assert.Len(t, lines(NewTable("ID").Render()), 2, "headers only")
}

func TestTable_Fprint(t *testing.T) {
	plain(t)

	tbl := NewTable("ID")
	tbl.AddRow("7")

	var buf bytes.Buffer
	require.NoError(t, tbl.Fprint(&buf))
	assert.Equal(t, tbl.String(), buf.String())
}

func TestSetNoColor(t *testing.T) {
	SetNoColor(true)
	assert.True(t, IsNoColor())
	assert.Equal(t, "streak", StyleHeader.Render("streak"))

	SetNoColor(false)
	assert.False(t, IsNoColor())
	assert.Equal(t, colorStyles[0].Render("streak"), StyleHeader.Render("streak"))
}
