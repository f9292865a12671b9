package www

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

func (h *Handlers) apiUploadImage(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()
	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "empty filename")
		return
	}

	if err := os.MkdirAll(h.imagesDir, 0755); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	safeName := strings.ReplaceAll(filepath.Base(header.Filename), "..", "_")
	dest, err := os.Create(filepath.Join(h.imagesDir, safeName))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer dest.Close()
	if _, err := io.Copy(dest, file); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSONStatus(w, http.StatusCreated, map[string]string{
		"url": fmt.Sprintf("/assets/images/%s", safeName),
	})
}

func (h *Handlers) apiListImages(w http.ResponseWriter, r *http.Request) {
	out := []string{}
	entries, err := os.ReadDir(h.imagesDir)
	if err == nil {
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
				out = append(out, "/assets/images/"+e.Name())
			}
		}
		sort.Strings(out)
	}
	writeJSON(w, out)
}
