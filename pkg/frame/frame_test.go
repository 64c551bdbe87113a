package frame

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func peopleFrame() *Frame {
	return New(
		[]string{"name", "age"},
		[]int{2, 4},
		[]map[string]string{
			{"name": "a", "age": "25"},
			{"name": "c"},
		},
	)
}

func TestNew(t *testing.T) {
	f := peopleFrame()

	assert.Equal(t, 2, f.Len())
	assert.Equal(t, []string{"name", "age"}, f.Columns())
	assert.Equal(t, []int{2, 4}, f.Index())
	assert.Equal(t, map[string]string{"name": "c", "age": ""}, f.Row(1))
	assert.Nil(t, f.Row(2))
	assert.Nil(t, f.Row(-1))
}

func TestNew_CopiesInput(t *testing.T) {
	columns := []string{"name"}
	index := []int{2}
	f := New(columns, index, []map[string]string{{"name": "a"}})

	columns[0] = "changed"
	index[0] = 9

	assert.Equal(t, []string{"name"}, f.Columns())
	assert.Equal(t, []int{2}, f.Index())

	f.Columns()[0] = "mutated"
	assert.Equal(t, "name", f.Columns()[0])
}

func TestFrame_Loc(t *testing.T) {
	f := peopleFrame()

	row, ok := f.Loc(4)
	require.True(t, ok)
	assert.Equal(t, "c", row["name"])

	_, ok = f.Loc(3)
	assert.False(t, ok)
}

func TestFrame_Column(t *testing.T) {
	f := peopleFrame()

	ages, ok := f.Column("age")
	require.True(t, ok)
	assert.Equal(t, []string{"25", ""}, ages)

	_, ok = f.Column("email")
	assert.False(t, ok)
}

func TestFrame_Empty(t *testing.T) {
	f := New([]string{"name"}, nil, nil)

	assert.Equal(t, 0, f.Len())
	names, ok := f.Column("name")
	require.True(t, ok)
	assert.Empty(t, names)

	var buf bytes.Buffer
	require.NoError(t, f.WriteCSV(&buf))
	assert.Equal(t, "row,name\n", buf.String())
}

func TestFrame_String(t *testing.T) {
	want := "   name  age\n" +
		"2  a     25\n" +
		"4  c     \n"
	assert.Equal(t, want, peopleFrame().String())
}

func TestFrame_WriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, peopleFrame().WriteCSV(&buf))

	assert.Equal(t, "row,name,age\n2,a,25\n4,c,\n", buf.String())
}

func TestFrame_WriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, peopleFrame().WriteXLSX(&buf, "People"))

	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer book.Close()

	assert.Equal(t, []string{"People"}, book.GetSheetList())

	rows, err := book.GetRows("People")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"row", "name", "age"}, rows[0])
	assert.Equal(t, []string{"2", "a", "25"}, rows[1])
	require.GreaterOrEqual(t, len(rows[2]), 2)
	assert.Equal(t, []string{"4", "c"}, rows[2][:2])
	for _, cell := range rows[2][2:] {
		assert.Empty(t, cell)
	}
}

func TestFrame_WriteXLSX_DefaultSheet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, peopleFrame().WriteXLSX(&buf, ""))

	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer book.Close()

	assert.Equal(t, []string{"Sheet1"}, book.GetSheetList())
}
