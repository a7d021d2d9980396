package wire

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/getmockd/wirestub/pkg/message"
)

// readLine returns the next line without its LF or CRLF terminator. An
// unterminated final line is returned normally; io.EOF means nothing was
// left to read.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return trimEOL(line), nil
		}
		return "", err
	}
	return trimEOL(line), nil
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// readFirstLine skips blank lines and returns the first line with content.
// Robust servers ignore a stray CRLF where a start line is expected.
func readFirstLine(br *bufio.Reader, missing error) (string, error) {
	for {
		line, err := readLine(br)
		if errors.Is(err, io.EOF) {
			return "", &ProtocolError{Err: missing}
		}
		if err != nil {
			return "", fmt.Errorf("read start line: %w", err)
		}
		if strings.TrimSpace(line) != "" {
			return line, nil
		}
	}
}

// readHeaderFields reads header lines up to the first blank line or EOF.
// Lines without a colon, or with an empty name, are dropped.
func readHeaderFields(br *bufio.Reader) ([]message.HeaderField, error) {
	var fields []message.HeaderField
	for {
		line, err := readLine(br)
		if errors.Is(err, io.EOF) {
			return fields, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read headers: %w", err)
		}
		if strings.TrimSpace(line) == "" {
			return fields, nil
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		fields = append(fields, message.HeaderField{Name: name, Value: strings.TrimSpace(value)})
	}
}
