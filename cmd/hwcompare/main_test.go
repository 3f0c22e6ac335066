package main

import (
	"errors"
	"testing"

	"github.com/mwiater/hwcompare/internal/appconfig"
)

func TestMainWiring(t *testing.T) {
	origLoadConfig := loadConfig
	origInitLogging := initLogging
	origCloseLogging := closeLogging
	origSetVersion := setVersionInfo
	origExecute := executeCmd
	t.Cleanup(func() {
		loadConfig = origLoadConfig
		initLogging = origInitLogging
		closeLogging = origCloseLogging
		setVersionInfo = origSetVersion
		executeCmd = origExecute
	})

	calls := struct {
		load    bool
		initLog bool
		close   bool
		version bool
		exec    bool
	}{}

	loadConfig = func(path string) (appconfig.Config, error) {
		calls.load = true
		if path != "" {
			t.Fatalf("expected empty path, got %q", path)
		}
		return appconfig.Config{LogFile: "test.log"}, nil
	}
	initLogging = func(path string) error {
		calls.initLog = true
		if path != "test.log" {
			t.Fatalf("expected log path test.log, got %q", path)
		}
		return nil
	}
	closeLogging = func() error {
		calls.close = true
		return nil
	}
	setVersionInfo = func(v, c, d string) {
		calls.version = true
		if v == "" || c == "" || d == "" {
			t.Fatalf("expected version info to be set")
		}
	}
	executeCmd = func() {
		calls.exec = true
	}

	main()

	if !calls.load || !calls.initLog || !calls.close || !calls.version || !calls.exec {
		t.Fatalf("expected all wiring calls, got %+v", calls)
	}
}

func TestMainFallsBackToDefaultLogFile(t *testing.T) {
	origLoadConfig := loadConfig
	origInitLogging := initLogging
	origCloseLogging := closeLogging
	origExecute := executeCmd
	t.Cleanup(func() {
		loadConfig = origLoadConfig
		initLogging = origInitLogging
		closeLogging = origCloseLogging
		executeCmd = origExecute
	})

	loadConfig = func(string) (appconfig.Config, error) {
		return appconfig.Config{}, errors.New("config file not found")
	}
	var got string
	initLogging = func(path string) error {
		got = path
		return nil
	}
	closeLogging = func() error { return nil }
	executeCmd = func() {}

	main()

	if got != appconfig.DefaultLogFile {
		t.Fatalf("expected %s, got %q", appconfig.DefaultLogFile, got)
	}
}
