package util

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
)

// WriterOutput writes entries to any io.Writer
type WriterOutput struct {
	writer io.Writer
	closer io.Closer
	format LogFormat
	mu     sync.Mutex
}

// NewConsoleOutput writes entries to a console stream such as os.Stderr
func NewConsoleOutput(writer io.Writer, format LogFormat) Output {
	return &WriterOutput{writer: writer, format: format}
}

// NewFileOutput appends entries to the file at path
func NewFileOutput(path string, format LogFormat) (Output, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return &WriterOutput{writer: file, closer: file, format: format}, nil
}

func (o *WriterOutput) Write(entry LogEntry) error {
	line, err := formatEntry(entry, o.format)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	_, err = fmt.Fprintln(o.writer, line)
	return err
}

func (o *WriterOutput) Close() error {
	if o.closer == nil {
		return nil
	}
	return o.closer.Close()
}

func formatEntry(entry LogEntry, format LogFormat) (string, error) {
	if format == FormatJSON {
		data, err := sonic.Marshal(entry)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	var b strings.Builder
	b.WriteString(entry.Timestamp.Format("2006/01/02 15:04:05"))
	b.WriteString(" [")
	b.WriteString(entry.Level)
	b.WriteString("]")
	if entry.Component != "" {
		b.WriteString(" <")
		b.WriteString(entry.Component)
		b.WriteString(">")
	}
	b.WriteString(" ")
	b.WriteString(entry.Message)

	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, entry.Fields[k])
		}
	}
	return b.String(), nil
}
