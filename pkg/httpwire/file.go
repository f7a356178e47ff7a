package httpwire

import (
	"mime"
	"os"
	"path/filepath"
)

const defaultContentType = "application/octet-stream"

// ContentType guesses a media type from the file extension.
func ContentType(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return defaultContentType
}

// FileResponse builds a 200 reply for the file at path. Without a body only
// the size is taken from the file, as for HEAD. Failing to stat or read the
// file yields a 500 and the error.
func FileResponse(path string, withBody bool) (*Response, error) {
	if !withBody {
		info, err := os.Stat(path)
		if err != nil {
			return InternalServerError(), err
		}
		return OKLength(ContentType(path), info.Size()), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return InternalServerError(), err
	}
	if content == nil {
		content = []byte{}
	}
	return OK(ContentType(path), content), nil
}
