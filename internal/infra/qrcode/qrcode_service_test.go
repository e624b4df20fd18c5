package qrcode

import (
	"encoding/json"
	"testing"

	"trekmate/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47}

func TestQRCodeService_GenerateDestinationQR(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		level string
	}{
		{"Low error correction", 128, "L"},
		{"Medium error correction", 256, "M"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 512, "H"},
		{"Default error correction", 256, "invalid"},
		{"Default size", 0, "M"},
	}

	destination := &entity.Destination{ID: "everest-base-camp", Name: "Everest Base Camp", Location: "Khumbu"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewQRCodeService(tt.size, tt.level, "https://trekmate.app/share")

			png, err := svc.GenerateDestinationQR(destination)
			require.NoError(t, err)
			require.Greater(t, len(png), len(pngMagic))
			assert.Equal(t, pngMagic, png[:4])
		})
	}
}

func TestQRCodeService_RequiresDestinationID(t *testing.T) {
	svc := NewQRCodeService(256, "M", "")

	_, err := svc.GenerateDestinationQR(nil)
	assert.Error(t, err)

	_, err = svc.GenerateDestinationQR(&entity.Destination{Name: "No ID"})
	assert.Error(t, err)
}

func TestQRCodeService_ShareData(t *testing.T) {
	svc := NewQRCodeService(256, "M", "https://trekmate.app/share/").(*qrcodeService)

	data := svc.shareData(&entity.Destination{ID: "a b", Name: "GOKYO LAKES", Location: "Custom Trek"})

	assert.Equal(t, "https://trekmate.app/share/destinations/a%20b", data.URL)
	assert.Equal(t, "GOKYO LAKES", data.Name)

	noBase := NewQRCodeService(256, "M", "").(*qrcodeService)
	assert.Empty(t, noBase.shareData(&entity.Destination{ID: "x"}).URL)
}

func TestParseShareData(t *testing.T) {
	raw, err := json.Marshal(ShareData{Type: shareType, DestinationID: "d1", Name: "Langtang"})
	require.NoError(t, err)

	data, err := ParseShareData(string(raw))
	require.NoError(t, err)
	assert.Equal(t, "d1", data.DestinationID)

	_, err = ParseShareData(`{"type":"subscription","destination_id":"d1"}`)
	assert.Error(t, err)

	_, err = ParseShareData(`{"type":"destination"}`)
	assert.Error(t, err)

	_, err = ParseShareData("not json")
	assert.Error(t, err)
}
