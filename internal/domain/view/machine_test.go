package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/song-critic/internal/domain/analysis"
)

func TestMachineInitialState(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, StateInput, m.State())
	assert.Nil(t, m.Result())
	a, b := m.Comparison()
	assert.Nil(t, a)
	assert.Nil(t, b)
	assert.Empty(t, m.Err())
}

func TestMachineShowReport(t *testing.T) {
	m := NewMachine()
	m.Fail("something broke")

	res := domain.Example()
	m.ShowReport(res)

	assert.Equal(t, StateReport, m.State())
	assert.Same(t, res, m.Result())
	assert.Empty(t, m.Err(), "entering the report view clears the last error")

	a, b := m.Comparison()
	assert.Nil(t, a)
	assert.Nil(t, b)
}

func TestMachineShowReportNilIgnored(t *testing.T) {
	m := NewMachine()
	m.ShowReport(nil)
	assert.Equal(t, StateInput, m.State())
	assert.Nil(t, m.Result())
}

func TestMachineFail(t *testing.T) {
	m := NewMachine()
	m.ShowReport(domain.Example())

	m.Fail("request was blocked for safety")

	assert.Equal(t, StateInput, m.State())
	assert.Equal(t, "request was blocked for safety", m.Err())
	assert.Nil(t, m.Result(), "a failed submission discards the held payload")
}

func TestMachineCompare(t *testing.T) {
	m := NewMachine()
	first := domain.Example()
	second := domain.Example()
	second.ID = "other"

	require.True(t, m.Compare(first, second))
	assert.Equal(t, StateComparison, m.State())
	a, b := m.Comparison()
	assert.Same(t, first, a)
	assert.Same(t, second, b)
	assert.Nil(t, m.Result(), "only one payload kind exists at a time")
}

func TestMachineCompareRejectsBadPair(t *testing.T) {
	m := NewMachine()
	res := domain.Example()

	assert.False(t, m.Compare(nil, res))
	assert.False(t, m.Compare(res, nil))
	assert.False(t, m.Compare(res, res))
	assert.Equal(t, StateInput, m.State(), "a rejected pair never transitions")
}

func TestMachineReset(t *testing.T) {
	m := NewMachine()
	m.ShowReport(domain.Example())

	m.Reset()

	assert.Equal(t, StateInput, m.State())
	assert.Nil(t, m.Result())
	assert.Empty(t, m.Err())
}
