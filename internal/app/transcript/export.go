package transcript

import (
	"fmt"
	"io"

	"github.com/tealeg/xlsx"

	"whisper-sync/internal/app/errors"
	"whisper-sync/internal/app/model"
	"whisper-sync/internal/app/player"
)

const sheetName = "Segments"

// ExcelFilename is the download name of an exported segment table.
const ExcelFilename = "transcription.xlsx"

// ToExcel writes one row per segment to an .xlsx workbook at outputFilePath.
func ToExcel(r *model.TranscriptionResult, outputFilePath string) error {
	file, err := workbook(r)
	if err != nil {
		return err
	}
	return errors.Wrapf(file.Save(outputFilePath), "save %s", outputFilePath)
}

// WriteExcel streams the workbook to w.
func WriteExcel(w io.Writer, r *model.TranscriptionResult) error {
	file, err := workbook(r)
	if err != nil {
		return err
	}
	return errors.Wrap(file.Write(w), "write workbook")
}

func workbook(r *model.TranscriptionResult) (*xlsx.File, error) {
	if r == nil {
		return nil, errors.New("no transcript to export")
	}
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(sheetName)
	if err != nil {
		return nil, errors.Wrap(err, "add sheet")
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "ID"
	headerRow.AddCell().Value = "Start"
	headerRow.AddCell().Value = "End"
	headerRow.AddCell().Value = "Time"
	headerRow.AddCell().Value = "Text"

	for _, seg := range r.SortedSegments() {
		row := sheet.AddRow()
		row.AddCell().Value = fmt.Sprint(seg.ID)
		row.AddCell().Value = fmt.Sprintf("%.2f", seg.Start)
		row.AddCell().Value = fmt.Sprintf("%.2f", seg.End)
		row.AddCell().Value = player.FormatTime(seg.Start)
		row.AddCell().Value = seg.Text
	}
	return file, nil
}
