package unit_test

import (
	"math"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/diskunit/pkg/safeconv"
	"github.com/Sumatoshi-tech/diskunit/pkg/unit"
)

func TestFormatCustomByte(t *testing.T) {
	t.Parallel()

	dev := testDevice()

	tests := []struct {
		name  string
		bytes int64
		unit  unit.Unit
		want  string
	}{
		{"zero bytes", 0, unit.Byte, "0B"},
		{"bytes", 1048576, unit.Byte, "1048576B"},
		{"sectors", 1048576, unit.Sector, "2048s"},
		{"sectors round down", 1048575, unit.Sector, "2047s"},
		{"cylinders", 3 * 8225280, unit.Cylinder, "3cyl"},
		{"cylinders round down", 3*8225280 - 1, unit.Cylinder, "2cyl"},
		{"mebibyte two decimals", 1048576, unit.Mebibyte, "1.00MiB"},
		{"megabyte two decimals", 1500000, unit.Megabyte, "1.50MB"},
		{"megabyte one decimal", 45600000, unit.Megabyte, "45.6MB"},
		{"megabyte no decimals", 123456789, unit.Megabyte, "123MB"},
		{"halfway rounds up", 100500, unit.Kilobyte, "101kB"},
		{"gibibyte", 1 << 30, unit.Gibibyte, "1.00GiB"},
		{"tebibyte", 1 << 40, unit.Tebibyte, "1.00TiB"},
		{"terabyte", 2500000000000, unit.Terabyte, "2.50TB"},
		{"percent", 536870912, unit.Percent, "50.0%"},
		{"chs", 32326 * 512, unit.CHS, "2,3,7"},
		{"compact bytes", 9999, unit.Compact, "9999B"},
		{"compact kilobytes", 15000, unit.Compact, "15.0kB"},
		{"compact megabytes", 5120000000, unit.Compact, "5120MB"},
		{"compact gigabytes", 20000000000, unit.Compact, "20.0GB"},
		{"compact terabytes", 50000000000000, unit.Compact, "50.0TB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := unit.FormatCustomByte(dev, tt.bytes, tt.unit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatCustomByte_UsesCanonicalName(t *testing.T) {
	t.Parallel()

	dev := testDevice()

	for _, u := range unit.All() {
		if u == unit.CHS || u == unit.Compact {
			continue
		}

		name, err := unit.Name(u)
		require.NoError(t, err)

		got, err := unit.FormatCustomByte(dev, 1<<30, u)
		require.NoError(t, err)
		assert.Regexp(t, `^[0-9.]+`+regexp.QuoteMeta(name)+`$`, got)
	}
}

func TestFormatCustomByte_Errors(t *testing.T) {
	t.Parallel()

	noGeometry := testDevice()
	noGeometry.BIOSGeometry = unit.Geometry{}

	_, err := unit.FormatCustomByte(testDevice(), 1, unit.Unit(42))
	require.ErrorIs(t, err, unit.ErrInvalidUnit)

	_, err = unit.FormatCustomByte(noGeometry, 1, unit.CHS)
	require.ErrorIs(t, err, unit.ErrNoGeometry)

	_, err = unit.FormatCustomByte(noGeometry, 1, unit.Cylinder)
	require.ErrorIs(t, err, unit.ErrNoGeometry)

	_, err = unit.FormatCustomByte(unit.Device{}, 1, unit.Sector)
	require.ErrorIs(t, err, unit.ErrInvalidSectorSize)

	_, err = unit.FormatCustomByte(unit.Device{SectorSize: 512}, 1, unit.Percent)
	require.ErrorIs(t, err, unit.ErrNoLength)
}

func TestFormatCustom(t *testing.T) {
	t.Parallel()

	dev := testDevice()

	got, err := unit.FormatCustom(dev, 2048, unit.Mebibyte)
	require.NoError(t, err)
	assert.Equal(t, "1.00MiB", got)

	got, err = unit.FormatCustom(dev, 2048, unit.Sector)
	require.NoError(t, err)
	assert.Equal(t, "2048s", got)

	_, err = unit.FormatCustom(unit.Device{}, 2048, unit.Byte)
	require.ErrorIs(t, err, unit.ErrInvalidSectorSize)

	_, err = unit.FormatCustom(dev, math.MaxInt64, unit.Byte)
	require.ErrorIs(t, err, safeconv.ErrOverflow)
}

func TestSettings_Format(t *testing.T) {
	t.Parallel()

	dev := testDevice()

	settings, err := unit.NewSettings(unit.Sector)
	require.NoError(t, err)

	got, err := settings.Format(dev, 63)
	require.NoError(t, err)
	assert.Equal(t, "63s", got)

	got, err = settings.FormatByte(dev, 4096)
	require.NoError(t, err)
	assert.Equal(t, "8s", got)

	require.NoError(t, settings.SetDefault(unit.Compact))

	got, err = settings.FormatByte(dev, 1<<30)
	require.NoError(t, err)
	assert.Equal(t, "1074MB", got)
}
