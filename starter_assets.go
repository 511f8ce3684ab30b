package profilegen

import (
	"embed"
	"io/fs"
)

//go:embed assets/template.html assets/config/sample/*.yaml
var embeddedStarter embed.FS

// StarterFS exposes the starter page template and the sample configs laid out
// the way the generator expects them under its base directory:
//
//	template.html
//	config/sample/zh.yaml
//	config/sample/en.yaml
func StarterFS() fs.FS {
	sub, err := fs.Sub(embeddedStarter, "assets")
	if err != nil {
		return embeddedStarter
	}
	return sub
}
