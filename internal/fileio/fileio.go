package fileio

import (
	"fmt"
	tea "github.com/charmbracelet/bubbletea"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"
)

type SaveCompleteMsg struct {
	FullPath, SuccessMessage, ErrMessage string
}

// GetSaveCommand writes content one line per entry to fileName. An empty fileName saves to a timestamped file in the
// working directory
func GetSaveCommand(fileName string, content []string) tea.Cmd {
	return func() tea.Msg {
		savePathWithFileName, err := saveToFile(fileName, content, time.Now())
		if err != nil {
			return SaveCompleteMsg{ErrMessage: err.Error()}
		}
		return SaveCompleteMsg{
			FullPath:       savePathWithFileName,
			SuccessMessage: fmt.Sprintf("Saved %d items to %s", len(content), savePathWithFileName),
		}
	}
}

func saveToFile(fileName string, fileContent []string, at time.Time) (string, error) {
	now := at.UTC().Format("20060102T150405Z")
	path := "."
	if fileName == "" {
		fileName = "shelf_" + now
	} else {
		if strings.HasPrefix(fileName, "~") {
			currUser, err := user.Current()
			if err != nil {
				return "", err
			}
			fileName = currUser.HomeDir + strings.TrimPrefix(fileName, "~")
		}

		if strings.Contains(fileName, string(os.PathSeparator)) {
			path = filepath.Dir(fileName)
			fileName = filepath.Base(fileName)
		}
	}

	// unless otherwise specified, make extension .txt
	if filepath.Ext(fileName) == "" {
		fileName += ".txt"
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(absPath, 0755); err != nil {
		return "", err
	}

	pathWithFileName := filepath.Join(absPath, fileName)

	// if file already exists at specified location, append timestamp to filename
	if exists, err := fileOrDirectoryExists(pathWithFileName); err == nil {
		if exists {
			// /home/test.txt -> /home/test_20210101T120000Z.txt
			extension := filepath.Ext(pathWithFileName)
			pathWithFileName = strings.TrimSuffix(pathWithFileName, extension) + "_" + now + extension
		}
	} else {
		return "", err
	}

	f, err := os.Create(pathWithFileName)
	if err != nil {
		return "", err
	}
	defer f.Close()

	for _, line := range fileContent {
		if _, writeErr := f.WriteString(line + "\n"); writeErr != nil {
			return "", writeErr
		}
	}
	return pathWithFileName, nil
}

func fileOrDirectoryExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
