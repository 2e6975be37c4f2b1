package gui

import (
	"os"

	"github.com/san-kum/harmograph/internal/export"
)

func writeRecording(path string, rec *export.Recorder) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := rec.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
