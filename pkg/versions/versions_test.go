package versions

import (
	"testing"

	"dver.dev/x/dver/pkg/sdkversion"
	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, versions ...string) []*semver.Version {
	parsed := make([]*semver.Version, 0, len(versions))
	for _, v := range versions {
		p, err := sdkversion.Parse(v)
		require.NoError(t, err)
		parsed = append(parsed, p)
	}
	return parsed
}

func TestNewInstalled(t *testing.T) {
	installed := parse(t, "8.0.100", "9.0.100", "8.0.406")
	active := installed[2]

	rows := NewInstalled(active, installed)
	require.Len(t, rows, 3)

	assert.Equal(t, "9.0.100", rows[0].Version.String())
	assert.Equal(t, "8.0.406", rows[1].Version.String())
	assert.Equal(t, "8.0.100", rows[2].Version.String())

	assert.False(t, rows[0].Active)
	assert.True(t, rows[1].Active)
	assert.True(t, rows[1].Installed)
	assert.False(t, rows[2].Active)
}

func TestNewInstalledNoActive(t *testing.T) {
	rows := NewInstalled(nil, parse(t, "8.0.406"))
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Active)
	assert.True(t, rows[0].Installed)
}

func TestNewRemoteMergesInstalled(t *testing.T) {
	catalog := parse(t, "9.0.100", "8.0.406")
	remote := map[*semver.Version][]string{
		catalog[0]: {"sts", "active"},
		catalog[1]: {"lts", "active"},
	}
	installed := parse(t, "8.0.406")

	rows := NewRemote(remote, installed)
	require.Len(t, rows, 2)

	assert.Equal(t, "9.0.100", rows[0].Version.String())
	assert.True(t, rows[0].Remote)
	assert.False(t, rows[0].Installed)

	assert.Equal(t, "8.0.406", rows[1].Version.String())
	assert.True(t, rows[1].Remote)
	assert.True(t, rows[1].Installed)
	assert.Equal(t, []string{"lts", "active"}, rows[1].Tags)
}

func TestSortDescendingIsTotal(t *testing.T) {
	versions := parse(t, "8.0.406-preview.1", "8.0.406", "10.0.100", "8.0.100")
	rows := NewInstalled(nil, versions)

	got := make([]string, 0, len(rows))
	for _, r := range rows {
		got = append(got, r.Version.String())
	}
	assert.Equal(t, []string{"10.0.100", "8.0.406", "8.0.406-preview.1", "8.0.100"}, got)
}

func TestTable(t *testing.T) {
	installed := parse(t, "8.0.406", "9.0.100")
	rendered := NewInstalled(installed[1], installed).Table()

	assert.Contains(t, rendered, "9.0.100")
	assert.Contains(t, rendered, "8.0.406")
	assert.Contains(t, rendered, "*")
}

func TestTableTags(t *testing.T) {
	catalog := parse(t, "8.0.406")
	rows := NewRemote(map[*semver.Version][]string{catalog[0]: {"lts"}}, nil)

	assert.Contains(t, rows.Table(), "(lts)")
}
