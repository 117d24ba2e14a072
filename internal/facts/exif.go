package facts

import (
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
	"github.com/spf13/afero"
)

// walkerFunc adapts a plain function to exif.Walker.
type walkerFunc func(name exif.FieldName, tag *tiff.Tag) error

func (f walkerFunc) Walk(name exif.FieldName, tag *tiff.Tag) error {
	return f(name, tag)
}

// decodeExif reads and decodes EXIF tags into a flat string map.
// Every field is stringified via its Tag.String() rendering; callers
// treat any error here as "no EXIF", never surfacing it further.
func decodeExif(fsys afero.Fs, path string) (map[string]string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return nil, err
	}

	out := map[string]string{}
	_ = x.Walk(walkerFunc(func(name exif.FieldName, tag *tiff.Tag) error {
		out[string(name)] = tag.String()
		return nil
	}))
	return out, nil
}
