package minecraft_test

import (
	"fmt"
	"testing"

	"github.com/minepkg/mcfetch/internals/minecraft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ExampleVersionManifest_MergeWith() {
	fabric := &minecraft.VersionManifest{
		ID:           "fabric-loader-0.14.21-1.20.1",
		InheritsFrom: "1.20.1",
		Libraries: minecraft.Libraries{
			{Name: "net.fabricmc:fabric-loader:0.14.21", URL: "https://maven.fabricmc.net/"},
		},
	}
	vanilla := &minecraft.VersionManifest{
		ID:        "1.20.1",
		MainClass: "net.minecraft.client.main.Main",
		Libraries: minecraft.Libraries{
			{Name: "com.mojang:logging:1.1.1"},
		},
	}
	// MergeWith modifies the child manifest
	fabric.MergeWith(vanilla)

	fmt.Println("ID:", fabric.ID)
	fmt.Println("Libraries:")
	for _, lib := range fabric.Libraries {
		fmt.Println(" - ", lib.Name)
	}
	// Output:
	// ID: fabric-loader-0.14.21-1.20.1
	// Libraries:
	//  -  net.fabricmc:fabric-loader:0.14.21
	//  -  com.mojang:logging:1.1.1
}

const manifestJSON = `{
  "id": "1.12.2",
  "type": "release",
  "assets": "1.12",
  "assetIndex": {"id": "1.12", "sha1": "1584b57c1a0b5e593fad1f5b8f78536ca640547b", "size": 143138, "totalSize": 129336389, "url": "https://launchermeta.mojang.com/v1/packages/1584b57c1a0b5e593fad1f5b8f78536ca640547b/1.12.json"},
  "downloads": {
    "client": {"sha1": "0f275bc1547d01fa5f56ba34bdc87d981ee12daf", "size": 10180113, "url": "https://launcher.mojang.com/v1/objects/0f275bc1547d01fa5f56ba34bdc87d981ee12daf/client.jar"}
  },
  "libraries": [
    {
      "name": "org.lwjgl.lwjgl:lwjgl-platform:2.9.4-nightly-20150209",
      "downloads": {
        "classifiers": {
          "natives-linux": {"path": "org/lwjgl/lwjgl/lwjgl-platform/2.9.4-nightly-20150209/lwjgl-platform-2.9.4-nightly-20150209-natives-linux.jar", "sha1": "931074f46c795d2f7b30ed6395df5715cfd7675b", "size": 578680, "url": "https://libraries.minecraft.net/org/lwjgl/lwjgl/lwjgl-platform/2.9.4-nightly-20150209/lwjgl-platform-2.9.4-nightly-20150209-natives-linux.jar"}
        }
      },
      "natives": {"linux": "natives-linux", "osx": "natives-osx", "windows": "natives-windows"},
      "rules": [{"action": "allow"}, {"action": "disallow", "os": {"name": "osx"}}]
    }
  ],
  "logging": {
    "client": {
      "argument": "-Dlog4j.configurationFile=${path}",
      "file": {"id": "client-1.12.xml", "sha1": "bd65e7d2e3c237be76cfbef4c2405033d7f91521", "size": 888, "url": "https://launcher.mojang.com/v1/objects/bd65e7d2e3c237be76cfbef4c2405033d7f91521/client-1.12.xml"},
      "type": "log4j2-xml"
    }
  }
}`

func TestParseVersionManifest(t *testing.T) {
	manifest, err := minecraft.ParseVersionManifest([]byte(manifestJSON))
	require.NoError(t, err)
	require.NoError(t, manifest.Validate())

	client, ok := manifest.Client()
	require.True(t, ok)
	assert.Equal(t, int64(10180113), client.Size)

	logging := manifest.LoggingFile()
	require.NotNil(t, logging)
	assert.Equal(t, "client-1.12.xml", logging.ID)

	require.Len(t, manifest.Libraries, 1)
	lib := manifest.Libraries[0]
	assert.Nil(t, lib.Downloads.Artifact)
	native, ok := lib.NativeArtifact(minecraft.NewPlatform("linux", "amd64"))
	require.True(t, ok)
	assert.Equal(t, "931074f46c795d2f7b30ed6395df5715cfd7675b", native.Sha1)
}

func TestVersionManifest_Validate(t *testing.T) {
	manifest := &minecraft.VersionManifest{ID: "broken"}
	err := manifest.Validate()
	assert.ErrorIs(t, err, minecraft.ErrNoClientDownload)
}

func TestVersionManifest_DeclaredSize(t *testing.T) {
	manifest := &minecraft.VersionManifest{
		ID:        "1.12.2",
		Downloads: map[string]minecraft.Artifact{"client": {URL: "https://example.com/client.jar", Size: 1000}},
		Libraries: minecraft.Libraries{
			{Name: "a:a:1", Downloads: &minecraft.LibraryDownloads{Artifact: &minecraft.Artifact{Size: 100}}},
			{
				Name: "b:b:1",
				Downloads: &minecraft.LibraryDownloads{Classifiers: map[string]minecraft.Artifact{
					"natives-linux":   {Size: 10},
					"natives-windows": {Size: 20},
				}},
				Natives: map[string]string{"linux": "natives-linux", "windows": "natives-windows"},
			},
			// legacy libraries declare no size
			{Name: "c:c:1", URL: "https://libraries.minecraft.net/"},
		},
		AssetIndex: minecraft.AssetIndexRef{Size: 5, TotalSize: 50000},
		Logging: &minecraft.Logging{Client: &minecraft.LoggingClient{
			File: &minecraft.Artifact{URL: "https://example.com/client.xml", Size: 1},
		}},
	}

	assert.Equal(t, int64(1000+100+10+5+50000+1), manifest.DeclaredSize(minecraft.NewPlatform("linux", "amd64")))
	assert.Equal(t, int64(1000+100+20+5+50000+1), manifest.DeclaredSize(minecraft.NewPlatform("windows", "amd64")))
}
