package render

import (
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"runtime"

	"github.com/1siamBot/outpost/engine/catalog"
	"github.com/1siamBot/outpost/pkg/logger"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

// AlienModel is the sprite name used for aliens
const AlienModel = "alien"

// SpriteSet holds optional images keyed by a template's visual model.
// Anything missing is drawn as flat shapes instead.
type SpriteSet struct {
	byModel map[string]*ebiten.Image
}

// LoadSprites reads <dir>/<model>.png for every catalog model plus the
// alien. An empty dir searches the usual assets locations.
func LoadSprites(dir string, cat *catalog.Catalog) *SpriteSet {
	if dir == "" {
		dir = assetsDir()
	}
	ss := &SpriteSet{byModel: make(map[string]*ebiten.Image)}

	models := []string{AlienModel}
	for _, t := range cat.All() {
		models = append(models, t.Visual.Model)
	}
	for _, m := range models {
		if _, ok := ss.byModel[m]; ok || m == "" {
			continue
		}
		if img := loadFromFile(filepath.Join(dir, m+".png")); img != nil {
			ss.byModel[m] = img
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"dir":    dir,
		"loaded": len(ss.byModel),
		"wanted": len(models),
	}).Debug("sprites loaded")
	return ss
}

// Get returns the sprite for a model, or nil
func (ss *SpriteSet) Get(model string) *ebiten.Image {
	if ss == nil {
		return nil
	}
	return ss.byModel[model]
}

// Len returns how many sprites were found
func (ss *SpriteSet) Len() int {
	if ss == nil {
		return 0
	}
	return len(ss.byModel)
}

func assetsDir() string {
	exe, err := os.Executable()
	if err == nil {
		dir := filepath.Join(filepath.Dir(exe), "assets")
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
	}
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Join(filepath.Dir(filename), "..", "..", "assets")
	if _, err := os.Stat(dir); err == nil {
		return dir
	}
	return "assets"
}

func loadFromFile(path string) *ebiten.Image {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		logger.Log.WithError(err).WithField("path", path).Warn("could not decode sprite")
		return nil
	}
	return ebiten.NewImageFromImage(img)
}
