package boiler

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetragramaton/bstat/internal/interface/modbus/mock"
)

func regBytes(vals ...int16) []byte {
	b := make([]byte, 0, 2*len(vals))
	for _, v := range vals {
		b = append(b, byte(uint16(v)>>8), byte(uint16(v)))
	}
	return b
}

func mustProfile(t *testing.T, name string) *Profile {
	t.Helper()
	p, err := Lookup(name)
	require.NoError(t, err)
	return p
}

func TestQuerySystemSupplyTemp(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	gomock.InOrder(
		client.EXPECT().ReadHoldingRegisters(uint16(0), uint16(7)).Return(regBytes(0, 0, 0, 0, 0, 0, 365), nil),
		client.EXPECT().ReadInputRegisters(uint16(3), uint16(9)).Return(regBytes(120, 0, 0, 55, 700, 650, 420, 380, 48), nil),
	)

	var seen []RegisterKind
	snap, err := NewDevice(client, mustProfile(t, "prestige")).Query(func(kind RegisterKind, regs []int16, readings []Reading) {
		seen = append(seen, kind)
	})
	require.NoError(t, err)
	assert.Equal(t, []RegisterKind{Holding, Input}, seen)

	r, ok := snap.Reading("System Supply Temp")
	require.True(t, ok)
	assert.InDelta(t, 36.5, r.Value(), 1e-9)
	assert.InDelta(t, 97.7, r.Fahrenheit(), 1e-9)

	setp, ok := snap.Reading("System Supply Setp")
	require.True(t, ok)
	assert.InDelta(t, 60.0, setp.Value(), 1e-9)

	rate, ok := snap.Reading("Firing Rate")
	require.True(t, ok)
	assert.InDelta(t, 48.0, rate.Value(), 1e-9)
}

func TestQueryShortReadStops(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	client.EXPECT().ReadHoldingRegisters(uint16(0), uint16(7)).Return(regBytes(1, 2, 3, 4, 5), nil)
	// no input read may follow

	called := false
	_, err := NewDevice(client, mustProfile(t, "prestige")).Query(func(RegisterKind, []int16, []Reading) {
		called = true
	})
	require.Error(t, err)
	assert.False(t, called)

	var short *ShortReadError
	require.True(t, errors.As(err, &short))
	assert.Equal(t, Holding, short.Kind)
	assert.Equal(t, Ref(0x40000), short.Address)
	assert.Equal(t, 7, short.Want)
	assert.Equal(t, 5, short.Got)
	assert.Equal(t, "Modbus read of 7 holding regs at addr 0x40000 returned 5", err.Error())
}

func TestQueryReadErrorOnInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	timeout := errors.New("serial: timeout")
	client.EXPECT().ReadHoldingRegisters(uint16(0), uint16(7)).Return(regBytes(0, 0, 0, 0, 0, 0, 365), nil)
	client.EXPECT().ReadInputRegisters(uint16(3), uint16(9)).Return(nil, timeout)

	snap, err := NewDevice(client, mustProfile(t, "prestige")).Query(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, timeout)

	var re *ReadError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, Input, re.Kind)
	assert.Equal(t, Ref(0x30003), re.Address)
	assert.Equal(t, uint16(9), re.Count)
	assert.Equal(t, []int16{0, 0, 0, 0, 0, 0, 365}, snap.Holding)
}

type recorder struct {
	events  []string
	confirm *Reading
}

func (r *recorder) Before([]int16)              { r.events = append(r.events, "before") }
func (r *recorder) Enabled(uint16)              { r.events = append(r.events, "enabled") }
func (r *recorder) Writing(int, int)            { r.events = append(r.events, "writing") }
func (r *recorder) After(_ []int16, c *Reading) { r.events = append(r.events, "after"); r.confirm = c }

func TestChangeSetpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	gomock.InOrder(
		client.EXPECT().ReadHoldingRegisters(uint16(0), uint16(7)).Return(regBytes(1, 0, 30, 0, 0, 0, 400), nil),
		client.EXPECT().WriteSingleRegister(uint16(0), uint16(4)).Return(regBytes(4), nil),
		client.EXPECT().WriteSingleRegister(uint16(2), uint16(46)).Return(regBytes(46), nil),
		client.EXPECT().ReadHoldingRegisters(uint16(0), uint16(7)).Return(regBytes(4, 0, 46, 0, 0, 0, 412), nil),
	)

	rec := &recorder{}
	after, err := NewDevice(client, mustProfile(t, "knight")).ChangeSetpoint(85, rec)
	require.NoError(t, err)
	assert.Equal(t, []int16{4, 0, 46, 0, 0, 0, 412}, after)
	assert.Equal(t, []string{"before", "enabled", "writing", "after"}, rec.events)
	require.NotNil(t, rec.confirm)
	assert.InDelta(t, 41.2, rec.confirm.Value(), 1e-9)
}

func TestChangeSetpointOutOfRangeNoIO(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	_, err := NewDevice(client, mustProfile(t, "knight")).ChangeSetpoint(150, &recorder{})
	assert.ErrorIs(t, err, ErrSetpointRange)
}

func TestChangeSetpointWithoutSetpointProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	_, err := NewDevice(client, mustProfile(t, "prestige")).ChangeSetpoint(85, &recorder{})
	assert.ErrorIs(t, err, ErrNoSetpoint)
}

func TestChangeSetpointUnconfirmedWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	client.EXPECT().ReadHoldingRegisters(uint16(0), uint16(7)).Return(regBytes(1, 0, 30, 0, 0, 0, 400), nil)
	client.EXPECT().WriteSingleRegister(uint16(0), uint16(4)).Return([]byte{}, nil)

	rec := &recorder{}
	_, err := NewDevice(client, mustProfile(t, "knight")).ChangeSetpoint(85, rec)
	var we *WriteError
	require.True(t, errors.As(err, &we))
	assert.Equal(t, Ref(0x40000), we.Address)
	assert.Equal(t, 0, we.Confirmed)
	assert.Equal(t, []string{"before"}, rec.events)
}

func TestWriteEchoMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	client.EXPECT().WriteSingleRegister(uint16(2), uint16(46)).Return(regBytes(45), nil)

	err := NewDevice(client, mustProfile(t, "knight")).Write(0x40002, 46)
	var we *WriteError
	require.True(t, errors.As(err, &we))
	assert.Contains(t, err.Error(), "slave echoed 45")
}
