// Package commands contiene la implementación de los comandos del CLI.
package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Formatos de salida.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// IOTuple entrada y salida de un comando (reemplazables en tests).
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO devuelve os.Stdin y os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

func outputJSON(v any, w io.Writer) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	_, _ = fmt.Fprintln(w, string(b))
	return nil
}

// confirm pregunta por Reader y acepta "s", "si" o "y".
func confirm(io IOTuple, question string) bool {
	_, _ = fmt.Fprintf(io.Writer, "%s (s/N): ", question)
	if io.Reader == nil {
		return false
	}
	line, _ := bufio.NewReader(io.Reader).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "si", "sí", "y", "yes":
		return true
	}
	return false
}
