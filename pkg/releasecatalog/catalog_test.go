package releasecatalog

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"dver.dev/x/dver/pkg/rid"
	"dver.dev/x/dver/pkg/sdkversion"
	"dver.dev/x/dver/pkg/testutil"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog serves a two-channel index with one release per channel,
// archive entries targeting the platform the test runs on.
func fakeCatalog(t *testing.T) *httptest.Server {
	platformRid, err := rid.Current()
	require.NoError(t, err)

	var server *httptest.Server
	mux := http.NewServeMux()

	mux.HandleFunc("/releases-index.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"releases-index": [
			{"channel-version": "8.0", "latest-release": "8.0.15", "latest-sdk": "8.0.406",
			 "release-type": "lts", "support-phase": "active",
			 "releases.json": "%[1]s/8.0/releases.json"},
			{"channel-version": "9.0", "latest-release": "9.0.3", "latest-sdk": "9.0.202",
			 "release-type": "sts", "support-phase": "active",
			 "releases.json": "%[1]s/9.0/releases.json"}
		]}`, server.URL)
	})

	mux.HandleFunc("/8.0/releases.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"releases": [
			{"release-version": "8.0.15",
			 "sdk": {"version": "8.0.406", "files": [
				{"name": "dotnet-sdk-8.0.406%[2]s", "rid": "%[1]s",
				 "url": "%[3]s/archives/dotnet-sdk-8.0.406%[2]s", "hash": "abc123"}]},
			 "sdks": [
				{"version": "8.0.406", "files": []},
				{"version": "8.0.115", "files": [
					{"name": "dotnet-sdk-8.0.115%[2]s", "rid": "%[1]s",
					 "url": "%[3]s/archives/dotnet-sdk-8.0.115%[2]s", "hash": "def456"}]}
			 ]}
		]}`, platformRid, rid.ArchiveExt(), server.URL)
	})

	mux.HandleFunc("/9.0/releases.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"releases": []}`)
	})

	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	return NewWithCustomClient(server.URL+"/releases-index.json", server.Client())
}

func TestChannelsSortedHighestFirst(t *testing.T) {
	client := newTestClient(t, fakeCatalog(t))

	channels, err := client.Channels(testutil.Context(t))
	require.NoError(t, err)
	require.Len(t, channels, 2)
	assert.Equal(t, "9.0", channels[0].ChannelVersion)
	assert.Equal(t, "8.0", channels[1].ChannelVersion)
}

func TestLtsChannels(t *testing.T) {
	client := newTestClient(t, fakeCatalog(t))

	channels, err := client.LtsChannels(testutil.Context(t))
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, "8.0", channels[0].ChannelVersion)
	assert.Equal(t, "8.0.406", channels[0].LatestSdk)
}

func TestSdkArchive(t *testing.T) {
	client := newTestClient(t, fakeCatalog(t))

	version, err := sdkversion.Parse("8.0.406")
	require.NoError(t, err)

	archive, err := client.SdkArchive(testutil.Context(t), version)
	require.NoError(t, err)
	assert.Equal(t, "abc123", archive.Hash)
	assert.Contains(t, archive.URL, "dotnet-sdk-8.0.406")
}

func TestSdkArchiveFromSecondarySdkEntry(t *testing.T) {
	client := newTestClient(t, fakeCatalog(t))

	version, err := sdkversion.Parse("8.0.115")
	require.NoError(t, err)

	archive, err := client.SdkArchive(testutil.Context(t), version)
	require.NoError(t, err)
	assert.Equal(t, "def456", archive.Hash)
}

func TestSdkArchiveUnknownVersion(t *testing.T) {
	client := newTestClient(t, fakeCatalog(t))

	version, err := sdkversion.Parse("8.0.999")
	require.NoError(t, err)

	_, err = client.SdkArchive(testutil.Context(t), version)
	assert.Error(t, err)
}

func TestSdkArchiveNoChannelForVersion(t *testing.T) {
	client := newTestClient(t, fakeCatalog(t))

	version, err := sdkversion.Parse("7.0.100")
	require.NoError(t, err)

	_, err = client.SdkArchive(testutil.Context(t), version)
	assert.ErrorContains(t, err, "no release channel")
}

func TestCatalogUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server)
	_, err := client.Channels(testutil.Context(t))
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}

func TestAllSdksDeduplicatesPrimary(t *testing.T) {
	release := Release{
		Sdk: &Sdk{Version: "8.0.406"},
		Sdks: []Sdk{
			{Version: "8.0.406"},
			{Version: "8.0.115"},
		},
	}

	got := lo.Map(release.AllSdks(), func(s Sdk, _ int) string { return s.Version })
	assert.Equal(t, []string{"8.0.406", "8.0.115"}, got)
}
