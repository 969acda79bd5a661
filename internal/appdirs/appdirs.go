// Package appdirs provides the local folders where the app stores its files.
package appdirs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	xappdirs "github.com/chasinglogic/appdirs"
	"github.com/dustin/go-humanize"
)

const (
	appName       = "opencode-desktop"
	logFolderName = "log"
	logFileName   = "opencode-desktop.log"
)

// AppDirs represents the app's local directories for storing logs etc.
type AppDirs struct {
	Data     string
	Log      string
	Settings string
}

// New returns the app's folders and makes sure they exist.
func New() (AppDirs, error) {
	ad := xappdirs.New(appName)
	x := AppDirs{
		Data:     ad.UserData(),
		Log:      filepath.Join(ad.UserData(), logFolderName),
		Settings: ad.UserConfig(),
	}
	for _, p := range x.Folders() {
		if err := os.MkdirAll(p, os.ModePerm); err != nil {
			return x, err
		}
	}
	return x, nil
}

// Folders returns all folders.
func (ad AppDirs) Folders() []string {
	return []string{ad.Log, ad.Data, ad.Settings}
}

// LogFile returns the path of the log file.
func (ad AppDirs) LogFile() string {
	return filepath.Join(ad.Log, logFileName)
}

// DeleteAll deletes all folders and their content.
func (ad AppDirs) DeleteAll() error {
	for _, p := range ad.Folders() {
		if err := os.RemoveAll(p); err != nil {
			return err
		}
	}
	return nil
}

// Describe returns a human readable description of the folders and their size.
func (ad AppDirs) Describe() []string {
	labels := []string{"Logs", "Data", "Settings"}
	var lines []string
	for i, p := range ad.Folders() {
		lines = append(lines, fmt.Sprintf("%s: %s (%s)", labels[i], p, humanize.Bytes(folderSize(p))))
	}
	return lines
}

func folderSize(p string) uint64 {
	var n uint64
	err := filepath.WalkDir(p, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		n += uint64(info.Size())
		return nil
	})
	if err != nil {
		return 0
	}
	return n
}
