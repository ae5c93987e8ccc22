package texto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-activos/pkg/texto"
)

func TestNormalizar(t *testing.T) {
	casos := []struct {
		in   string
		want string
	}{
		{"Categoría", "categoria"},
		{"CATEGORÍA", "categoria"},
		{"  Portátil Él  ", "portatil el"},
		{"ñoño", "nono"},
		{"pingüino", "pinguino"},
		{"sin-acentos", "sin-acentos"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range casos {
		assert.Equal(t, c.want, texto.Normalizar(c.in), "entrada %q", c.in)
	}
}

func TestNormalizar_EsIdempotente(t *testing.T) {
	in := "Número de Inventario Ñ-01"
	una := texto.Normalizar(in)
	assert.Equal(t, una, texto.Normalizar(una))
}
