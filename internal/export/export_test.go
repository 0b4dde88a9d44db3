package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"finboard/internal/ledger"
	"finboard/internal/testutil"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("xlsx")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseFormat("pdf")
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestFormat_Metadata(t *testing.T) {
	at := time.Date(2025, time.January, 31, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "transactions_20250131_090500.csv", FormatCSV.Filename(at))
	assert.Equal(t, "transactions_20250131_090500.xlsx", FormatXLSX.Filename(at))
	assert.Contains(t, FormatCSV.ContentType(), "text/csv")
	assert.Contains(t, FormatXLSX.ContentType(), "spreadsheetml")
}

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, ledger.DemoRecords()[:3]))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, utf8BOM))

	rows, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, utf8BOM))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, headers, rows[0])
	assert.Equal(t, []string{"1", "2025-01-15", "Monthly Salary", "Salary", "income", "3500.00", "Bank Transfer", "completed"}, rows[1])
	assert.Equal(t, "Net", rows[4][2])
	assert.Equal(t, "1950.00", rows[4][5])
}

func TestWrite_XLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, ledger.DemoRecords()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 9)
	assert.Equal(t, headers, rows[0])
	assert.Equal(t, "Monthly Rent", rows[2][2])

	net, err := f.GetCellValue(sheetName, "F9")
	require.NoError(t, err)
	assert.Equal(t, "2390", net)
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, Format("pdf"), nil)
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}
