package model

// SourcePathEntry pairs a file on disk with its path inside the archive
type SourcePathEntry struct {
	Source string `toml:"source"` // Path of the file to read
	Dest   string `toml:"dest"`   // Slash-separated path inside the archive
}

// Layout describes where packable files live relative to the repository root
type Layout struct {
	Marker      string            `toml:"marker"`       // Directory that marks the repository root
	ContentDir  string            `toml:"content_dir"`  // Root of the localization tree
	Suffix      string            `toml:"suffix"`       // File name suffix of localization files
	ArchiveName string            `toml:"archive_name"` // Output file name, written at the repository root
	Extras      []SourcePathEntry `toml:"extras"`       // Fixed files appended to every archive, Source is root-relative
}

// DefaultLayout returns the layout of the Minecraft mod language package repository
func DefaultLayout() *Layout {
	return &Layout{
		Marker:      ".git",
		ContentDir:  "project",
		Suffix:      "zh_cn.lang",
		ArchiveName: "Minecraft-Mod-Language-Modpack.zip",
		Extras: []SourcePathEntry{
			{Source: "project/pack.png", Dest: "pack.png"},
			{Source: "project/pack.mcmeta", Dest: "pack.mcmeta"},
			{Source: "README.md", Dest: "README.md"},
			{Source: "LICENSE", Dest: "LICENSE"},
			{Source: "database/asset_map.json", Dest: "assets/i18nmod/asset_map/asset_map.json"},
		},
	}
}
