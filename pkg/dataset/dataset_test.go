package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `loan_id, no_of_dependents,education,income_annum,loan_amount,loan_term, cibil_score,residential_assets_value,commercial_assets_value,luxury_assets_value,bank_asset_value,loan_status
1,0,Graduate,500000,200000,10,750,300000,0,0,0,Approved
2,2, Not Graduate ,300000,250000,12,600,0,0,0,0,Rejected
3,1,graduate,400000,150000,8,700,100000,0,0,0,approved
`

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "loan_approval_dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("parses rows and trims header whitespace", func(t *testing.T) {
		frame, err := Load(writeSample(t, sampleCSV))
		require.NoError(t, err)

		assert.Len(t, frame.Rows, 3)
		// Headers carried surrounding whitespace in the source file.
		assert.True(t, frame.HasColumn(ColDependents))
		assert.True(t, frame.HasColumn(ColCibilScore))

		status, err := frame.Strings(ColLoanStatus)
		require.NoError(t, err)
		assert.Equal(t, []string{"Approved", "Rejected", "approved"}, status)
	})

	t.Run("missing file yields ErrDatasetNotFound", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDatasetNotFound))
	})

	t.Run("missing required column fails", func(t *testing.T) {
		path := writeSample(t, "loan_id,education\n1,Graduate\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "required column")
	})
}

func TestFrame_Floats(t *testing.T) {
	frame, err := Load(writeSample(t, sampleCSV))
	require.NoError(t, err)

	incomes, err := frame.Floats(ColIncome)
	require.NoError(t, err)
	assert.Equal(t, []float64{500000, 300000, 400000}, incomes)

	// Text columns propagate a NumericConversionError, not a silent zero.
	_, err = frame.Floats(ColEducation)
	require.Error(t, err)
	var convErr *NumericConversionError
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, ColEducation, convErr.Column)
	assert.Equal(t, 0, convErr.Row)
}

func TestFrame_AddColumn(t *testing.T) {
	frame, err := Load(writeSample(t, sampleCSV))
	require.NoError(t, err)

	require.NoError(t, frame.AddColumn("assets_total", []string{"300000", "0", "100000"}))
	totals, err := frame.Floats("assets_total")
	require.NoError(t, err)
	assert.Equal(t, []float64{300000, 0, 100000}, totals)

	assert.Error(t, frame.AddColumn("assets_total", []string{"1", "2", "3"}), "duplicate column")
	assert.Error(t, frame.AddColumn("short", []string{"1"}), "length mismatch")
}

func TestFrame_IsNumeric(t *testing.T) {
	frame, err := Load(writeSample(t, sampleCSV))
	require.NoError(t, err)

	assert.True(t, frame.IsNumeric(ColLoanID))
	assert.True(t, frame.IsNumeric(ColIncome))
	assert.False(t, frame.IsNumeric(ColEducation))
	assert.False(t, frame.IsNumeric("no_such_column"))
}
