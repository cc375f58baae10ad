package postgresql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterBuildsPositionalClauses(t *testing.T) {
	var f filter
	assert.Equal(t, "", f.where())

	f.add("t.estado = $%d", "ACTIVO")
	f.add("t.hora_entrada::date >= $%d::date", "2024-05-01")
	limit := f.next(10)

	assert.Equal(t, " WHERE t.estado = $1 AND t.hora_entrada::date >= $2::date", f.where())
	assert.Equal(t, "$3", limit)
	assert.Equal(t, []any{"ACTIVO", "2024-05-01", 10}, f.args)
}
