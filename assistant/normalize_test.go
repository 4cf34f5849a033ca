package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "HOLA", "hola"},
		{"trims whitespace", "  horario \n", "horario"},
		{"strips accents", "¿Dónde está la dirección?", "¿donde esta la direccion?"},
		{"strips enye", "CONTRASEÑA", "contrasena"},
		{"plain ascii unchanged", "quiero entrar", "quiero entrar"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}
