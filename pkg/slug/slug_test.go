package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Simple name", "Electronics", "electronics"},
		{"Spaces become hyphens", "Gaming Laptops", "gaming-laptops"},
		{"Spanish accents", "Electrónica y Música", "electronica-y-musica"},
		{"Enye", "Año Nuevo", "ano-nuevo"},
		{"Punctuation collapsed", "Wi-Fi / Redes (5GHz)", "wi-fi-redes-5ghz"},
		{"Leading and trailing junk", "  ---Ofertas!  ", "ofertas"},
		{"Numbers preserved", "iPhone 15 Pro", "iphone-15-pro"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.input))
		})
	}
}
