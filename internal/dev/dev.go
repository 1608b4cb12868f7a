package dev

import (
	"fmt"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robinovitch61/shelf/internal/message"
	"log"
	"os"
)

var debugSet = os.Getenv("SHELF_DEBUG")
var debugPath = os.Getenv("SHELF_DEBUG_PATH")

// Debug appends msg to the debug log file when SHELF_DEBUG is set
func Debug(msg string) {
	if debugSet == "" {
		return
	}
	if debugPath == "" {
		debugPath = "shelf.log"
	}
	file, err := os.OpenFile(debugPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()
	logger := log.New(file, "", log.Ldate|log.Lmicroseconds)
	logger.Printf("%q", msg)
}

func DebugUpdateMsg(component string, msg tea.Msg) {
	if debugSet == "" {
		return
	}
	switch msg.(type) {
	case message.ToastTimeoutMsg:
	// skip logging messages that are too frequent
	default:
		Debug(fmt.Sprintf("Update %s: %T", component, msg))
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			Debug(fmt.Sprintf("  Key: '%v'", keyMsg.String()))
		}
	}
}
