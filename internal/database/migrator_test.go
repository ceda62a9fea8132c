package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "migrations/001_setup.sql", names[0])

	body, err := fs.ReadFile(migrations, names[0])
	require.NoError(t, err)

	up, down, found := strings.Cut(string(body), "---- create above / drop below ----")
	require.True(t, found, "migration must carry a down section")

	for _, table := range []string{"users", "categories", "tags", "articles", "article_tags", "announcements"} {
		assert.Contains(t, up, "CREATE TABLE "+table+" ")
		assert.Contains(t, down, "DROP TABLE IF EXISTS "+table+";")
	}
}
