// File: main_test.go
package main

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlePanic(t *testing.T) {
	t.Cleanup(func() {
		osWriteFile = os.WriteFile
		osExit = os.Exit
	})

	tests := []struct {
		name     string
		writeErr error
	}{
		{"panic is logged to file", nil},
		{"log write failure still exits", errors.New("disk full")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var written string
			exitCode := -1
			osWriteFile = func(name string, data []byte, perm os.FileMode) error {
				written = string(data)
				return tt.writeErr
			}
			osExit = func(code int) { exitCode = code }

			func() {
				defer handlePanic()
				panic("layout exploded")
			}()

			assert.Equal(t, 2, exitCode)
			assert.True(t, strings.HasPrefix(written, "panic: layout exploded"))
			assert.Contains(t, written, "goroutine")
		})
	}
}

func TestHandlePanicWithoutPanic(t *testing.T) {
	t.Cleanup(func() { osExit = os.Exit })
	called := false
	osExit = func(int) { called = true }

	func() {
		defer handlePanic()
	}()
	assert.False(t, called)
}
