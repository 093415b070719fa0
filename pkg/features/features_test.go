package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanworks/modelprep/internal/logging"
	"github.com/loanworks/modelprep/pkg/dataset"
)

func testFrame(t *testing.T) *dataset.Frame {
	t.Helper()
	frame := &dataset.Frame{
		Columns: []string{
			dataset.ColEducation, dataset.ColLoanStatus,
			dataset.ColResidential, dataset.ColCommercial,
			dataset.ColLuxury, dataset.ColBankAsset,
		},
	}
	rows := [][]string{
		{"Graduate", "Approved", "300000", "0", "0", "0"},
		{" Not Graduate ", "Rejected", "0", "0", "0", "0"},
		{"graduate", "approved", "100000", "0", "0", "0"},
	}
	for _, r := range rows {
		frame.Rows = append(frame.Rows, map[string]string{
			dataset.ColEducation:   r[0],
			dataset.ColLoanStatus:  r[1],
			dataset.ColResidential: r[2],
			dataset.ColCommercial:  r[3],
			dataset.ColLuxury:      r[4],
			dataset.ColBankAsset:   r[5],
		})
	}
	return frame
}

func quietLogger() *logging.Logger {
	logger := logging.New()
	logger.SetLevel(logging.FATAL)
	return logger
}

func TestIsGraduate(t *testing.T) {
	for _, synonym := range []string{"graduate", "grad", "g", "Graduate", " GRAD  ", "G"} {
		assert.True(t, IsGraduate(synonym), synonym)
	}
	for _, other := range []string{"not graduate", "postgrad", "", "0"} {
		assert.False(t, IsGraduate(other), other)
	}
}

func TestIsApproved(t *testing.T) {
	for _, synonym := range []string{"approved", "yes", "y", "1", "true", " Approved ", "TRUE"} {
		assert.True(t, IsApproved(synonym), synonym)
	}
	for _, other := range []string{"rejected", "no", "denied", "", "0"} {
		assert.False(t, IsApproved(other), other)
	}
}

func TestDerive(t *testing.T) {
	frame := testFrame(t)
	dist, err := Derive(frame, quietLogger())
	require.NoError(t, err)

	assert.Equal(t, Distribution{Approved: 2, Rejected: 1}, dist)
	assert.False(t, dist.SingleClass())

	educationNum, err := frame.Strings(ColEducationNum)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "0", "1"}, educationNum)

	totals, err := frame.Floats(ColAssetsTotal)
	require.NoError(t, err)
	assert.Equal(t, []float64{300000, 0, 100000}, totals)

	labels, err := Labels(frame)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 1}, labels)

	// Row count and order are preserved.
	assert.Len(t, frame.Rows, 3)
}

func TestDerive_AssetsExactSum(t *testing.T) {
	frame := testFrame(t)
	frame.Rows[0][dataset.ColCommercial] = "250000"
	frame.Rows[0][dataset.ColLuxury] = "700000"
	frame.Rows[0][dataset.ColBankAsset] = "50000"

	_, err := Derive(frame, quietLogger())
	require.NoError(t, err)

	totals, err := frame.Floats(ColAssetsTotal)
	require.NoError(t, err)
	assert.Equal(t, 300000.0+250000+700000+50000, totals[0])
	assert.Zero(t, totals[1], "all-zero assets stay zero")
}

func TestDerive_SingleClass(t *testing.T) {
	frame := testFrame(t)
	for i := range frame.Rows {
		frame.Rows[i][dataset.ColLoanStatus] = "Rejected"
	}

	dist, err := Derive(frame, quietLogger())
	require.NoError(t, err)
	assert.True(t, dist.SingleClass())
	assert.Equal(t, 3, dist.Rejected)
}

func TestDerive_BadAssetCell(t *testing.T) {
	frame := testFrame(t)
	frame.Rows[1][dataset.ColBankAsset] = "n/a"

	_, err := Derive(frame, quietLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assets_total")
}
