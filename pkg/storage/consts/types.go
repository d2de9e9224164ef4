package consts

const (
	DefaultSourcesDir = "sources"
	DefaultOutputsDir = "outputs"
	DefaultInfoFile   = "info.json"

	DefaultStripFile = "rainbow.png"
	DefaultDiskFile  = "disk.png"

	DefaultFilePerm = 0660
	DefaultDirPerm  = 0750

	ThumbnailSide = 256
)
