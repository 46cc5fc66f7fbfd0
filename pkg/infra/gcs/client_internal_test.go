package gcs

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestInvalidationPath(t *testing.T) {
	tests := map[string]string{
		"http://downloader.example.com/Minecraft-Mod-Language-Modpack.zip": "/Minecraft-Mod-Language-Modpack.zip",
		"https://cdn.example.com/a/b.zip?x=1":                              "/a/b.zip",
		"https://cdn.example.com":                                          "/",
		"pack.zip":                                                         "/pack.zip",
		"/pack.zip":                                                        "/pack.zip",
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			gt.Value(t, invalidationPath(in)).Equal(want)
		})
	}
}

func TestRefresh_WithoutURLMapIsSkipped(t *testing.T) {
	c := &client{cfg: Config{Bucket: "b"}}

	resp, err := c.Refresh(t.Context(), []string{"https://cdn.example.com/Minecraft-Mod-Language-Modpack.zip"})
	gt.NoError(t, err)

	var got struct {
		Skipped bool     `json:"skipped"`
		URLs    []string `json:"urls"`
	}
	gt.NoError(t, json.Unmarshal([]byte(resp), &got))
	gt.True(t, got.Skipped)
	gt.A(t, got.URLs).Equal([]string{"https://cdn.example.com/Minecraft-Mod-Language-Modpack.zip"})
}

func TestClose_WithoutStorageClient(t *testing.T) {
	gt.NoError(t, (&client{}).Close())
}
