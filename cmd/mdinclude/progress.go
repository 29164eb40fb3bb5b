package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
)

type SimpleProgress struct {
	writer  io.Writer
	enabled bool
}

func NewSimpleProgress(writer io.Writer, enabled bool) *SimpleProgress {
	return &SimpleProgress{
		writer:  writer,
		enabled: enabled,
	}
}

func (sp *SimpleProgress) Update(message string) {
	if !sp.enabled {
		return
	}
	fmt.Fprintf(sp.writer, "  %s\n", message)
}

// Done сообщает итог: куда записан результат и сколько в нем строк и байт
func (sp *SimpleProgress) Done(outputPath string, lines, size int) {
	if outputPath == "-" {
		outputPath = "stdout"
	}
	sp.Update(fmt.Sprintf("💾 Результат сохранен: %s (%s строк, %s)",
		outputPath, humanize.Comma(int64(lines)), humanize.Bytes(uint64(size))))
}
