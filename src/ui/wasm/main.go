package main

import (
	"evilground/src/logx"
	"evilground/src/ui/gui"
	"evilground/src/ui/gui/gbase/gconf"
	"fmt"
)

// browser console
func GetLogger() *logx.Logx {
	l := logx.NewLogx(
		logx.GetLoggerLevelByString("info"),
		false,
		true,
	)
	l.InitLogger(nil)
	return l
}

func RunGUI() error {
	logger := GetLogger()
	// served next to the wasm binary, saved to localStorage
	cfg, err := gconf.NewGUIConfig(gconf.DefaultFile)
	if err != nil {
		logger.Errorf("error read config: %v", err)
		return err
	}
	g, err := gui.NewGUI(cfg, "", logger)
	if err != nil {
		logger.Errorf("error init GUI: %v", err)
		return fmt.Errorf("error init GUI: %v", err)
	}
	return g.Run()
}

func main() {
	if err := RunGUI(); err != nil {
		fmt.Println(err)
	}
}
